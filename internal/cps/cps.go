// Package cps lowers `for await` loops into plain for-loops driving the
// async-iterator protocol explicitly with ordinary `await` expressions.
// It does not lower async/await or yield to an explicit state machine:
// both async function bodies and generator bodies are executed by the
// evaluator on a dedicated goroutine synchronized over a channel pair
// (see internal/runtime.GeneratorData), so `await` and `yield` round-trip
// through that channel directly wherever the parser left them. This
// package's remaining job is purely syntactic — desugaring `for await`,
// and recursing through the tree to find it wherever it is nested — see
// the Open Question decision in DESIGN.md.
package cps

import "github.com/cwbudde/go-jsengine/internal/ast"

// Transform walks prog, desugaring every `for await` loop in place, and
// returns the (possibly mutated) program. It is idempotent: calling it
// twice on the same *ast.Program is a no-op the second time, so callers do
// not need to track whether a given program has already passed through it.
func Transform(prog *ast.Program) *ast.Program {
	if prog == nil || transformed[prog] {
		return prog
	}
	t := &transformer{}
	for i, stmt := range prog.Body {
		prog.Body[i] = t.transformStatement(stmt)
	}
	transformed[prog] = true
	return prog
}

// transformed memoizes programs already processed by Transform. A
// *ast.Program is rewritten in place, so a back-to-back Transform call on
// the same pointer returns it at once instead of walking the already-lowered
// tree again.
var transformed = map[*ast.Program]bool{}

// NeedsTransformation reports whether prog contains an async function,
// generator, or for-await loop that Transform would touch. It looks through
// statements, variable initializers, class members and the top expression of
// an expression statement only; a function nested deeper inside an
// expression (a call argument, a return value, an object literal) is not
// found. Hosts can use this to skip the pass for plain synchronous scripts.
func NeedsTransformation(prog *ast.Program) bool {
	found := false
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		if found || n == nil {
			return
		}
		switch v := n.(type) {
		case *ast.FunctionLiteral:
			if v.IsAsync || v.IsGenerator {
				found = true
				return
			}
			if v.Body != nil {
				walk(v.Body)
			}
			if v.ExprBody != nil {
				walk(v.ExprBody)
			}
		case *ast.ForOfStatement:
			if v.IsAwait {
				found = true
				return
			}
			walk(v.Body)
		case *ast.Program:
			for _, s := range v.Body {
				walk(s)
			}
		case *ast.BlockStatement:
			for _, s := range v.Body {
				walk(s)
			}
		case *ast.ExpressionStatement:
			walk(v.Expr)
		case *ast.IfStatement:
			walk(v.Consequent)
			walk(v.Alternate)
		case *ast.WhileStatement:
			walk(v.Body)
		case *ast.DoWhileStatement:
			walk(v.Body)
		case *ast.ForStatement:
			walk(v.Body)
		case *ast.ForInStatement:
			walk(v.Body)
		case *ast.TryStatement:
			walk(v.Block)
			if v.Handler != nil {
				walk(v.Handler.Body)
			}
			if v.Finalizer != nil {
				walk(v.Finalizer)
			}
		case *ast.FunctionDeclaration:
			walk(v.Function)
		case *ast.ClassDeclaration:
			walk(v.Class)
		case *ast.ClassExpression:
			if v.Body != nil {
				for _, m := range v.Body.Methods {
					walk(m.Value)
				}
				for _, f := range v.Body.Fields {
					if f.Value != nil {
						walk(f.Value)
					}
				}
			}
		case *ast.VariableDeclaration:
			for _, d := range v.Declarations {
				if d.Init != nil {
					walk(d.Init)
				}
			}
		case *ast.SwitchStatement:
			for _, c := range v.Cases {
				for _, s := range c.Consequent {
					walk(s)
				}
			}
		}
	}
	walk(prog)
	return found
}

// transformer carries per-Transform-call state: currently just the gensym
// counter, kept on the struct (rather than a package global) so concurrent
// Transform calls on different programs cannot race over suffix numbers.
type transformer struct {
	sym gensym
}
