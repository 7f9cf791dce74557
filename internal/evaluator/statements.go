package evaluator

import (
	"github.com/cwbudde/go-jsengine/internal/ast"
	"github.com/cwbudde/go-jsengine/internal/runtime"
)

// hoistDeclarations implements spec.md §4.2's two-pass hoisting: var and
// function declarations are bound (var to Undefined, function to its
// closure value) before the block's statements execute, so forward
// references work. isFunctionScope is true for a Program/function body
// (where var-hoisting climbs no further) and false for an ordinary block
// (where only the let/const/class declarations at this level get their TDZ
// slots; var still hoists through to the nearest function/script scope by
// walking nested non-function statements too).
func (ev *Evaluator) hoistDeclarations(body []ast.Statement, env *runtime.Environment, isFunctionScope bool) {
	ev.hoistVarsAndFunctions(body, env, isFunctionScope)
	for _, stmt := range body {
		switch s := stmt.(type) {
		case *ast.VariableDeclaration:
			if s.Kind != ast.DeclVar {
				for _, d := range s.Declarations {
					declareLexicalPattern(env, d.Target, s.Kind)
				}
			}
		case *ast.ClassDeclaration:
			if s.Class.Name != nil {
				env.DeclareLexical(s.Class.Name.Name, runtime.BindingClass)
			}
		}
	}
}

// hoistVarsAndFunctions walks stmt bodies recursing into every statement
// shape that does not itself introduce a new function scope, collecting var
// bindings and top-level function declarations for this scope. Var bindings
// are collected only when declareVars is set (a function or script scope).
func (ev *Evaluator) hoistVarsAndFunctions(body []ast.Statement, env *runtime.Environment, declareVars bool) {
	var walkVars func(stmt ast.Statement)
	walkVars = func(stmt ast.Statement) {
		switch s := stmt.(type) {
		case *ast.VariableDeclaration:
			if s.Kind == ast.DeclVar {
				for _, d := range s.Declarations {
					declareVarPattern(env, d.Target)
				}
			}
		case *ast.BlockStatement:
			for _, c := range s.Body {
				walkVars(c)
			}
		case *ast.IfStatement:
			walkVars(s.Consequent)
			if s.Alternate != nil {
				walkVars(s.Alternate)
			}
		case *ast.WhileStatement:
			walkVars(s.Body)
		case *ast.DoWhileStatement:
			walkVars(s.Body)
		case *ast.ForStatement:
			if decl, ok := s.Init.(*ast.VariableDeclaration); ok && decl.Kind == ast.DeclVar {
				for _, d := range decl.Declarations {
					declareVarPattern(env, d.Target)
				}
			}
			walkVars(s.Body)
		case *ast.ForInStatement:
			if decl, ok := s.Left.(*ast.VariableDeclaration); ok && decl.Kind == ast.DeclVar {
				declareVarPattern(env, decl.Declarations[0].Target)
			}
			walkVars(s.Body)
		case *ast.ForOfStatement:
			if decl, ok := s.Left.(*ast.VariableDeclaration); ok && decl.Kind == ast.DeclVar {
				declareVarPattern(env, decl.Declarations[0].Target)
			}
			walkVars(s.Body)
		case *ast.TryStatement:
			walkVars(s.Block)
			if s.Handler != nil {
				walkVars(s.Handler.Body)
			}
			if s.Finalizer != nil {
				walkVars(s.Finalizer)
			}
		case *ast.SwitchStatement:
			for _, c := range s.Cases {
				for _, cs := range c.Consequent {
					walkVars(cs)
				}
			}
		case *ast.LabeledStatement:
			walkVars(s.Body)
		case *ast.WithStatement:
			walkVars(s.Body)
		}
	}
	for _, stmt := range body {
		if declareVars {
			walkVars(stmt)
		}
		if fn, ok := stmt.(*ast.FunctionDeclaration); ok && fn.Function.Name != nil {
			closure := ev.makeClosure(fn.Function, env)
			env.DeclareFunction(fn.Function.Name.Name, runtime.ObjectValue(closure))
		}
	}
}

func declareVarPattern(env *runtime.Environment, pat ast.Pattern) {
	for _, name := range patternNames(pat) {
		env.DeclareVar(name)
	}
}

func declareLexicalPattern(env *runtime.Environment, pat ast.Pattern, kind ast.DeclKind) {
	bk := runtime.BindingLet
	if kind == ast.DeclConst {
		bk = runtime.BindingConst
	}
	for _, name := range patternNames(pat) {
		env.DeclareLexical(name, bk)
	}
}

// patternNames collects every identifier a binding pattern introduces,
// recursing through destructuring shapes.
func patternNames(pat ast.Pattern) []string {
	switch p := pat.(type) {
	case *ast.Identifier:
		return []string{p.Name}
	case *ast.ArrayPattern:
		var out []string
		for _, el := range p.Elements {
			if el != nil {
				out = append(out, patternNames(el)...)
			}
		}
		return out
	case *ast.ObjectPattern:
		var out []string
		for _, prop := range p.Properties {
			out = append(out, patternNames(prop.Target)...)
		}
		if p.Rest != nil {
			out = append(out, patternNames(p.Rest.Target)...)
		}
		return out
	case *ast.AssignmentPattern:
		return patternNames(p.Target)
	case *ast.RestElement:
		return patternNames(p.Target)
	default:
		return nil
	}
}

// evalStatement executes stmt in env and returns its completion value (an
// ExpressionStatement's value, passed through blocks, if branches, labeled
// and with bodies, and export default; loops, try, switch and declarations
// yield Undefined on success) or a
// control-flow error: a *ThrowSignal/*BreakSignal/*ContinueSignal/
// *ReturnSignal for an abrupt JS completion, or a plain Go error for an
// internal failure.
func (ev *Evaluator) evalStatement(stmt ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		if s.Expr == nil {
			return runtime.Undefined, nil
		}
		return ev.evalExpression(s.Expr, env)
	case *ast.BlockStatement:
		return ev.evalBlock(s, env)
	case *ast.VariableDeclaration:
		return runtime.Undefined, ev.evalVariableDeclaration(s, env)
	case *ast.FunctionDeclaration:
		// Already hoisted by hoistVarsAndFunctions; nothing to do at the
		// statement's own source position.
		return runtime.Undefined, nil
	case *ast.ClassDeclaration:
		return ev.evalClassDeclaration(s, env)
	case *ast.IfStatement:
		test, err := ev.evalExpression(s.Test, env)
		if err != nil {
			return runtime.Undefined, err
		}
		if runtime.ToBoolean(test) {
			return ev.evalStatement(s.Consequent, env)
		}
		if s.Alternate != nil {
			return ev.evalStatement(s.Alternate, env)
		}
		return runtime.Undefined, nil
	case *ast.WhileStatement:
		return ev.evalWhile(s, env, "")
	case *ast.DoWhileStatement:
		return ev.evalDoWhile(s, env, "")
	case *ast.ForStatement:
		return ev.evalFor(s, env, "")
	case *ast.ForInStatement:
		return ev.evalForIn(s, env, "")
	case *ast.ForOfStatement:
		return ev.evalForOf(s, env, "")
	case *ast.ReturnStatement:
		var v runtime.Value = runtime.Undefined
		if s.Argument != nil {
			var err error
			v, err = ev.evalExpression(s.Argument, env)
			if err != nil {
				return runtime.Undefined, err
			}
		}
		return runtime.Undefined, &ReturnSignal{Value: v}
	case *ast.ThrowStatement:
		v, err := ev.evalExpression(s.Argument, env)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.Undefined, &ThrowSignal{Value: v}
	case *ast.BreakStatement:
		label := ""
		if s.Label != nil {
			label = s.Label.Name
		}
		return runtime.Undefined, &BreakSignal{Label: label}
	case *ast.ContinueStatement:
		label := ""
		if s.Label != nil {
			label = s.Label.Name
		}
		return runtime.Undefined, &ContinueSignal{Label: label}
	case *ast.TryStatement:
		return ev.evalTry(s, env)
	case *ast.SwitchStatement:
		return ev.evalSwitch(s, env)
	case *ast.LabeledStatement:
		return ev.evalLabeled(s, env)
	case *ast.WithStatement:
		return ev.evalWith(s, env)
	case *ast.EmptyStatement, *ast.DebuggerStatement:
		return runtime.Undefined, nil
	case *ast.ExportNamedDeclaration:
		if s.Declaration != nil {
			return ev.evalStatement(s.Declaration, env)
		}
		return runtime.Undefined, nil
	case *ast.ExportDefaultDeclaration:
		return ev.evalExportDefault(s, env)
	default:
		return runtime.Undefined, ev.throwError("SyntaxError", "unsupported statement form")
	}
}

func (ev *Evaluator) evalExportDefault(s *ast.ExportDefaultDeclaration, env *runtime.Environment) (runtime.Value, error) {
	switch d := s.Declaration.(type) {
	case ast.Expression:
		return ev.evalExpression(d, env)
	case ast.Statement:
		return ev.evalStatement(d, env)
	default:
		return runtime.Undefined, nil
	}
}

func (ev *Evaluator) evalBlock(b *ast.BlockStatement, env *runtime.Environment) (runtime.Value, error) {
	blockEnv := runtime.NewEnvironment(env, runtime.EnvBlock, env.EffectiveMode())
	ev.hoistDeclarations(b.Body, blockEnv, false)
	var result runtime.Value = runtime.Undefined
	for _, stmt := range b.Body {
		v, err := ev.evalStatement(stmt, blockEnv)
		if err != nil {
			return runtime.Undefined, err
		}
		result = v
	}
	return result, nil
}

func (ev *Evaluator) evalVariableDeclaration(decl *ast.VariableDeclaration, env *runtime.Environment) error {
	for _, d := range decl.Declarations {
		var v runtime.Value = runtime.Undefined
		if d.Init != nil {
			var err error
			v, err = ev.evalExpression(d.Init, env)
			if err != nil {
				return err
			}
		}
		if err := ev.bindPattern(d.Target, v, env, decl.Kind); err != nil {
			return err
		}
	}
	return nil
}

// bindPattern binds value against pat in env: for `var`, writes the
// already-hoisted var binding; for let/const, initializes the already
// TDZ-declared lexical binding (hoistDeclarations created the slot; this
// fills it in at the declaration's actual source position). Destructuring
// patterns recurse per spec.md §4.2's BindingInitialization.
func (ev *Evaluator) bindPattern(pat ast.Pattern, value runtime.Value, env *runtime.Environment, kind ast.DeclKind) error {
	switch p := pat.(type) {
	case *ast.Identifier:
		return ev.initBinding(p.Name, value, env, kind)
	case *ast.AssignmentPattern:
		if value.IsUndefined() {
			v, err := ev.evalExpression(p.Default, env)
			if err != nil {
				return err
			}
			value = v
		}
		return ev.bindPattern(p.Target, value, env, kind)
	case *ast.ArrayPattern:
		items, err := ev.iterateToSlice(value, env)
		if err != nil {
			return err
		}
		for i, el := range p.Elements {
			if el == nil {
				continue
			}
			var v runtime.Value = runtime.Undefined
			if rest, ok := el.(*ast.RestElement); ok {
				var tail []runtime.Value
				if i < len(items) {
					tail = items[i:]
				}
				restArr := runtime.ObjectValue(runtime.NewArray(ev.Realm.Intrinsics.ArrayPrototype, tail))
				if err := ev.bindPattern(rest.Target, restArr, env, kind); err != nil {
					return err
				}
				break
			}
			if i < len(items) {
				v = items[i]
			}
			if err := ev.bindPattern(el, v, env, kind); err != nil {
				return err
			}
		}
		return nil
	case *ast.ObjectPattern:
		seen := map[string]bool{}
		for _, prop := range p.Properties {
			key, err := ev.propertyKeyOf(prop.Key, prop.Computed, env)
			if err != nil {
				return err
			}
			seen[key.String()] = true
			v, err := ev.getProperty(value, key, env)
			if err != nil {
				return err
			}
			if err := ev.bindPattern(prop.Target, v, env, kind); err != nil {
				return err
			}
		}
		if p.Rest != nil {
			restObj := runtime.NewObject(ev.Realm.Intrinsics.ObjectPrototype)
			if obj := value.Object(); obj != nil {
				for _, k := range obj.OwnEnumerableStringKeys() {
					if seen[k] {
						continue
					}
					v, err := obj.Get(runtime.StringKey(k), value, ev.call)
					if err != nil {
						return err
					}
					restObj.DefineOwnProperty(runtime.StringKey(k), runtime.NewDataProperty(v, true, true, true))
				}
			}
			if err := ev.bindPattern(p.Rest.Target, runtime.ObjectValue(restObj), env, kind); err != nil {
				return err
			}
		}
		return nil
	default:
		return ev.throwError("SyntaxError", "invalid binding pattern")
	}
}

func (ev *Evaluator) initBinding(name string, value runtime.Value, env *runtime.Environment, kind ast.DeclKind) error {
	if kind == ast.DeclVar {
		b := env.OwnVar(name)
		if b == nil {
			b = env.DeclareVar(name)
		}
		b.Value = value
		b.Initialized = true
		return nil
	}
	b := env.OwnLexical(name)
	if b == nil {
		// A lexical name with no slot yet (one that neither
		// hoistDeclarations nor the caller declared) is declared here.
		bk := runtime.BindingLet
		if kind == ast.DeclConst {
			bk = runtime.BindingConst
		}
		b = env.DeclareLexical(name, bk)
	}
	b.Value = value
	b.Initialized = true
	return nil
}

func (ev *Evaluator) evalWhile(s *ast.WhileStatement, env *runtime.Environment, label string) (runtime.Value, error) {
	for {
		test, err := ev.evalExpression(s.Test, env)
		if err != nil {
			return runtime.Undefined, err
		}
		if !runtime.ToBoolean(test) {
			return runtime.Undefined, nil
		}
		if done, v, err := ev.runLoopBody(s.Body, env, label); done {
			return v, err
		}
	}
}

func (ev *Evaluator) evalDoWhile(s *ast.DoWhileStatement, env *runtime.Environment, label string) (runtime.Value, error) {
	for {
		if done, v, err := ev.runLoopBody(s.Body, env, label); done {
			return v, err
		}
		test, err := ev.evalExpression(s.Test, env)
		if err != nil {
			return runtime.Undefined, err
		}
		if !runtime.ToBoolean(test) {
			return runtime.Undefined, nil
		}
	}
}

func (ev *Evaluator) evalFor(s *ast.ForStatement, env *runtime.Environment, label string) (runtime.Value, error) {
	loopEnv := runtime.NewEnvironment(env, runtime.EnvBlock, env.EffectiveMode())
	switch init := s.Init.(type) {
	case *ast.VariableDeclaration:
		if init.Kind != ast.DeclVar {
			for _, d := range init.Declarations {
				declareLexicalPattern(loopEnv, d.Target, init.Kind)
			}
		} else {
			declareVarPattern(env, init.Declarations[0].Target)
		}
		if err := ev.evalVariableDeclaration(init, loopEnv); err != nil {
			return runtime.Undefined, err
		}
	case ast.Expression:
		if init != nil {
			if _, err := ev.evalExpression(init, loopEnv); err != nil {
				return runtime.Undefined, err
			}
		}
	}
	for {
		if s.Test != nil {
			test, err := ev.evalExpression(s.Test, loopEnv)
			if err != nil {
				return runtime.Undefined, err
			}
			if !runtime.ToBoolean(test) {
				return runtime.Undefined, nil
			}
		}
		if done, v, err := ev.runLoopBody(s.Body, loopEnv, label); done {
			return v, err
		}
		if s.Update != nil {
			if _, err := ev.evalExpression(s.Update, loopEnv); err != nil {
				return runtime.Undefined, err
			}
		}
	}
}

// runLoopBody evaluates one loop iteration's body statement, translating a
// matching break/continue signal into (done, value, err) for the caller's
// loop control: done=true with err=nil means "stop the loop normally",
// done=true with non-nil err means "propagate this error/signal upward",
// done=false means "this iteration completed, keep looping".
func (ev *Evaluator) runLoopBody(body ast.Statement, env *runtime.Environment, label string) (bool, runtime.Value, error) {
	_, err := ev.evalStatement(body, env)
	if err == nil {
		return false, runtime.Undefined, nil
	}
	if brk, ok := err.(*BreakSignal); ok {
		if brk.Label == "" || brk.Label == label {
			return true, runtime.Undefined, nil
		}
		return true, runtime.Undefined, err
	}
	if cont, ok := err.(*ContinueSignal); ok {
		if cont.Label == "" || cont.Label == label {
			return false, runtime.Undefined, nil
		}
		return true, runtime.Undefined, err
	}
	return true, runtime.Undefined, err
}

func (ev *Evaluator) evalForIn(s *ast.ForInStatement, env *runtime.Environment, label string) (runtime.Value, error) {
	right, err := ev.evalExpression(s.Right, env)
	if err != nil {
		return runtime.Undefined, err
	}
	obj := right.Object()
	if obj == nil {
		return runtime.Undefined, nil
	}
	seen := map[string]bool{}
	for cur := obj; cur != nil; cur = cur.Proto {
		for _, k := range cur.OwnEnumerableStringKeys() {
			if seen[k] {
				continue
			}
			seen[k] = true
			iterEnv := runtime.NewEnvironment(env, runtime.EnvBlock, env.EffectiveMode())
			if err := ev.bindForTarget(s.Left, runtime.NewString(k), iterEnv); err != nil {
				return runtime.Undefined, err
			}
			if done, v, err := ev.runLoopBody(s.Body, iterEnv, label); done {
				return v, err
			}
		}
	}
	return runtime.Undefined, nil
}

func (ev *Evaluator) evalForOf(s *ast.ForOfStatement, env *runtime.Environment, label string) (runtime.Value, error) {
	right, err := ev.evalExpression(s.Right, env)
	if err != nil {
		return runtime.Undefined, err
	}
	items, err := ev.iterateToSlice(right, env)
	if err != nil {
		return runtime.Undefined, err
	}
	for _, item := range items {
		iterEnv := runtime.NewEnvironment(env, runtime.EnvBlock, env.EffectiveMode())
		if err := ev.bindForTarget(s.Left, item, iterEnv); err != nil {
			return runtime.Undefined, err
		}
		if done, v, err := ev.runLoopBody(s.Body, iterEnv, label); done {
			return v, err
		}
	}
	return runtime.Undefined, nil
}

// bindForTarget binds one for-in/for-of iteration's value into the loop
// variable, handling both `for (const x ...)` and `for (x ...)` forms.
func (ev *Evaluator) bindForTarget(left ast.Node, value runtime.Value, env *runtime.Environment) error {
	if decl, ok := left.(*ast.VariableDeclaration); ok {
		declareLexicalPattern(env, decl.Declarations[0].Target, decl.Kind)
		return ev.bindPattern(decl.Declarations[0].Target, value, env, decl.Kind)
	}
	if pat, ok := left.(ast.Pattern); ok {
		return ev.assignToPattern(pat, value, env)
	}
	return ev.throwError("SyntaxError", "invalid for-loop binding")
}

func (ev *Evaluator) evalTry(s *ast.TryStatement, env *runtime.Environment) (runtime.Value, error) {
	_, err := ev.evalBlock(s.Block, env)
	if err != nil {
		if thrown, ok := err.(*ThrowSignal); ok && s.Handler != nil {
			catchEnv := runtime.NewEnvironment(env, runtime.EnvCatch, env.EffectiveMode())
			if s.Handler.Param != nil {
				declareLexicalPattern(catchEnv, s.Handler.Param, ast.DeclLet)
				if berr := ev.bindPattern(s.Handler.Param, thrown.Value, catchEnv, ast.DeclLet); berr != nil {
					err = berr
				} else {
					_, err = ev.evalBlock(s.Handler.Body, catchEnv)
				}
			} else {
				_, err = ev.evalBlock(s.Handler.Body, catchEnv)
			}
		}
	}
	if s.Finalizer != nil {
		_, finErr := ev.evalBlock(s.Finalizer, env)
		if finErr != nil {
			// A finally-block abrupt completion overrides whatever the
			// try/catch was about to propagate, per spec.md §4.2.
			return runtime.Undefined, finErr
		}
	}
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.Undefined, nil
}

func (ev *Evaluator) evalSwitch(s *ast.SwitchStatement, env *runtime.Environment) (runtime.Value, error) {
	disc, err := ev.evalExpression(s.Discriminant, env)
	if err != nil {
		return runtime.Undefined, err
	}
	switchEnv := runtime.NewEnvironment(env, runtime.EnvBlock, env.EffectiveMode())
	for _, c := range s.Cases {
		ev.hoistDeclarations(c.Consequent, switchEnv, false)
	}
	matchIdx := -1
	defaultIdx := -1
	for i, c := range s.Cases {
		if c.Test == nil {
			defaultIdx = i
			continue
		}
		test, err := ev.evalExpression(c.Test, switchEnv)
		if err != nil {
			return runtime.Undefined, err
		}
		if runtime.StrictEquals(disc, test) {
			matchIdx = i
			break
		}
	}
	if matchIdx == -1 {
		matchIdx = defaultIdx
	}
	if matchIdx == -1 {
		return runtime.Undefined, nil
	}
	for i := matchIdx; i < len(s.Cases); i++ {
		for _, cs := range s.Cases[i].Consequent {
			_, err := ev.evalStatement(cs, switchEnv)
			if err != nil {
				if brk, ok := err.(*BreakSignal); ok && brk.Label == "" {
					return runtime.Undefined, nil
				}
				return runtime.Undefined, err
			}
		}
	}
	return runtime.Undefined, nil
}

func (ev *Evaluator) evalLabeled(s *ast.LabeledStatement, env *runtime.Environment) (runtime.Value, error) {
	label := s.Label.Name
	var result runtime.Value
	var err error
	switch body := s.Body.(type) {
	case *ast.WhileStatement:
		result, err = ev.evalWhile(body, env, label)
	case *ast.DoWhileStatement:
		result, err = ev.evalDoWhile(body, env, label)
	case *ast.ForStatement:
		result, err = ev.evalFor(body, env, label)
	case *ast.ForInStatement:
		result, err = ev.evalForIn(body, env, label)
	case *ast.ForOfStatement:
		result, err = ev.evalForOf(body, env, label)
	default:
		result, err = ev.evalStatement(body, env)
		if brk, ok := err.(*BreakSignal); ok && brk.Label == label {
			return runtime.Undefined, nil
		}
	}
	return result, err
}

func (ev *Evaluator) evalWith(s *ast.WithStatement, env *runtime.Environment) (runtime.Value, error) {
	obj, err := ev.evalExpression(s.Object, env)
	if err != nil {
		return runtime.Undefined, err
	}
	o := obj.Object()
	if o == nil {
		return runtime.Undefined, ev.throwError("TypeError", "with statement requires an object")
	}
	withEnv := runtime.NewWithEnvironment(env, o)
	return ev.evalStatement(s.Body, withEnv)
}
