package cps

import "github.com/cwbudde/go-jsengine/internal/ast"

// transformStatement rewrites stmt in place (recursing into every nested
// statement and expression) and returns the statement that should replace
// it in its parent's statement list — normally stmt itself, except where a
// `for await` loop is lowered to the block built by lowerForAwait.
func (t *transformer) transformStatement(stmt ast.Statement) ast.Statement {
	switch s := stmt.(type) {
	case nil:
		return nil
	case *ast.BlockStatement:
		for i, child := range s.Body {
			s.Body[i] = t.transformStatement(child)
		}
		return s
	case *ast.IfStatement:
		s.Test = t.transformExpression(s.Test)
		s.Consequent = t.transformStatement(s.Consequent)
		if s.Alternate != nil {
			s.Alternate = t.transformStatement(s.Alternate)
		}
		return s
	case *ast.WhileStatement:
		s.Test = t.transformExpression(s.Test)
		s.Body = t.transformStatement(s.Body)
		return s
	case *ast.DoWhileStatement:
		s.Body = t.transformStatement(s.Body)
		s.Test = t.transformExpression(s.Test)
		return s
	case *ast.ForStatement:
		if decl, ok := s.Init.(*ast.VariableDeclaration); ok {
			t.transformVariableDeclaration(decl)
		} else if expr, ok := s.Init.(ast.Expression); ok && expr != nil {
			s.Init = t.transformExpression(expr)
		}
		if s.Test != nil {
			s.Test = t.transformExpression(s.Test)
		}
		if s.Update != nil {
			s.Update = t.transformExpression(s.Update)
		}
		s.Body = t.transformStatement(s.Body)
		return s
	case *ast.ForInStatement:
		s.Right = t.transformExpression(s.Right)
		s.Body = t.transformStatement(s.Body)
		return s
	case *ast.ForOfStatement:
		s.Right = t.transformExpression(s.Right)
		s.Body = t.transformStatement(s.Body)
		if s.IsAwait {
			return t.lowerForAwait(s)
		}
		return s
	case *ast.TryStatement:
		s.Block = t.transformStatement(s.Block).(*ast.BlockStatement)
		if s.Handler != nil {
			s.Handler.Body = t.transformStatement(s.Handler.Body).(*ast.BlockStatement)
		}
		if s.Finalizer != nil {
			s.Finalizer = t.transformStatement(s.Finalizer).(*ast.BlockStatement)
		}
		return s
	case *ast.SwitchStatement:
		s.Discriminant = t.transformExpression(s.Discriminant)
		for _, c := range s.Cases {
			if c.Test != nil {
				c.Test = t.transformExpression(c.Test)
			}
			for i, stmt := range c.Consequent {
				c.Consequent[i] = t.transformStatement(stmt)
			}
		}
		return s
	case *ast.LabeledStatement:
		s.Body = t.transformStatement(s.Body)
		return s
	case *ast.FunctionDeclaration:
		t.transformFunctionLiteral(s.Function)
		return s
	case *ast.ClassDeclaration:
		t.transformClassExpression(s.Class)
		return s
	case *ast.VariableDeclaration:
		t.transformVariableDeclaration(s)
		return s
	case *ast.ExpressionStatement:
		if s.Expr != nil {
			s.Expr = t.transformExpression(s.Expr)
		}
		return s
	case *ast.ReturnStatement:
		if s.Argument != nil {
			s.Argument = t.transformExpression(s.Argument)
		}
		return s
	case *ast.ThrowStatement:
		s.Argument = t.transformExpression(s.Argument)
		return s
	default:
		// BreakStatement, ContinueStatement, DebuggerStatement, import/export
		// forms: no await/for-await/nested function body to reach through
		// these node shapes, so they pass through unchanged.
		return s
	}
}

func (t *transformer) transformVariableDeclaration(decl *ast.VariableDeclaration) {
	for _, d := range decl.Declarations {
		if d.Init != nil {
			d.Init = t.transformExpression(d.Init)
		}
	}
}

// transformFunctionLiteral recurses into a function's body. Async or not,
// the body still needs its nested `for await` loops lowered and its nested
// function literals visited; an async/generator function's own await/yield
// expressions are left as-is; the evaluator drives their suspension by
// running the function body as a coroutine (see internal/runtime.GeneratorData
// and the Open Question decision in DESIGN.md).
func (t *transformer) transformFunctionLiteral(fn *ast.FunctionLiteral) {
	if fn == nil {
		return
	}
	if fn.Body != nil {
		t.transformStatement(fn.Body)
	}
	if fn.ExprBody != nil {
		fn.ExprBody = t.transformExpression(fn.ExprBody)
	}
}

// transformClassExpression recurses into every method body (methods are
// the only place a class can hide an async/generator function or a nested
// for-await loop; field initializers are plain expressions, handled by the
// normal expression walk).
func (t *transformer) transformClassExpression(cls *ast.ClassExpression) {
	if cls == nil || cls.Body == nil {
		return
	}
	for _, m := range cls.Body.Methods {
		t.transformFunctionLiteral(m.Value)
	}
	for _, f := range cls.Body.Fields {
		if f.Value != nil {
			f.Value = t.transformExpression(f.Value)
		}
	}
}

// transformExpression recurses through every expression shape that can
// contain a nested function literal or a for-await loop reachable via a
// nested function body, rewriting in place.
func (t *transformer) transformExpression(expr ast.Expression) ast.Expression {
	switch e := expr.(type) {
	case nil:
		return nil
	case *ast.FunctionLiteral:
		t.transformFunctionLiteral(e)
		return e
	case *ast.CallExpression:
		e.Callee = t.transformExpression(e.Callee)
		for i, a := range e.Args {
			e.Args[i] = t.transformExpression(a)
		}
		return e
	case *ast.NewExpression:
		e.Callee = t.transformExpression(e.Callee)
		for i, a := range e.Args {
			e.Args[i] = t.transformExpression(a)
		}
		return e
	case *ast.MemberExpression:
		e.Object = t.transformExpression(e.Object)
		if e.Computed {
			e.Property = t.transformExpression(e.Property)
		}
		return e
	case *ast.AssignmentExpression:
		if pat, ok := e.Target.(ast.Expression); ok {
			e.Target = t.transformExpression(pat)
		}
		e.Value = t.transformExpression(e.Value)
		return e
	case *ast.BinaryExpression:
		e.Left = t.transformExpression(e.Left)
		e.Right = t.transformExpression(e.Right)
		return e
	case *ast.LogicalExpression:
		e.Left = t.transformExpression(e.Left)
		e.Right = t.transformExpression(e.Right)
		return e
	case *ast.UnaryExpression:
		e.Operand = t.transformExpression(e.Operand)
		return e
	case *ast.UpdateExpression:
		e.Operand = t.transformExpression(e.Operand)
		return e
	case *ast.ConditionalExpression:
		e.Test = t.transformExpression(e.Test)
		e.Consequent = t.transformExpression(e.Consequent)
		e.Alternate = t.transformExpression(e.Alternate)
		return e
	case *ast.SequenceExpression:
		for i, x := range e.Expressions {
			e.Expressions[i] = t.transformExpression(x)
		}
		return e
	case *ast.ArrayLiteral:
		for i, el := range e.Elements {
			if el != nil {
				e.Elements[i] = t.transformExpression(el)
			}
		}
		return e
	case *ast.ObjectLiteral:
		for _, p := range e.Properties {
			if p.Value != nil {
				p.Value = t.transformExpression(p.Value)
			}
		}
		return e
	case *ast.SpreadElement:
		e.Arg = t.transformExpression(e.Arg)
		return e
	case *ast.TemplateLiteral:
		for i, x := range e.Expressions {
			e.Expressions[i] = t.transformExpression(x)
		}
		return e
	case *ast.TaggedTemplateExpression:
		e.Tag = t.transformExpression(e.Tag)
		if e.Quasi != nil {
			t.transformExpression(e.Quasi)
		}
		return e
	case *ast.YieldExpression:
		if e.Argument != nil {
			e.Argument = t.transformExpression(e.Argument)
		}
		return e
	case *ast.AwaitExpression:
		e.Argument = t.transformExpression(e.Argument)
		return e
	case *ast.ClassExpression:
		t.transformClassExpression(e)
		return e
	default:
		// Identifier and literal nodes (string/number/bool/null/regex/this/
		// super) have no children to descend into.
		return e
	}
}
