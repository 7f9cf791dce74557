package evaluator

import (
	"github.com/cwbudde/go-jsengine/internal/ast"
	"github.com/cwbudde/go-jsengine/internal/runtime"
)

func (ev *Evaluator) evalCall(c *ast.CallExpression, env *runtime.Environment) (runtime.Value, error) {
	if sup, ok := c.Callee.(*ast.SuperExpression); ok {
		return ev.evalSuperCall(sup, c, env)
	}
	// __debug() is a pseudo-call, not a real function: it needs env (the
	// current frame), which no ordinary native function receives, so it's
	// special-cased here rather than registered as a callable global.
	if id, ok := c.Callee.(*ast.Identifier); ok && id.Name == "__debug" {
		return ev.evalDebugCall(env)
	}

	var callee runtime.Value
	var this runtime.Value = runtime.Undefined
	var err error
	if m, ok := c.Callee.(*ast.MemberExpression); ok {
		callee, this, err = ev.evalMember(m, env)
		if err != nil {
			return runtime.Undefined, err
		}
		if m.Optional && this.IsNullish() {
			return runtime.Undefined, nil
		}
	} else {
		callee, err = ev.evalExpression(c.Callee, env)
		if err != nil {
			return runtime.Undefined, err
		}
	}
	if c.Optional && callee.IsNullish() {
		return runtime.Undefined, nil
	}
	fn := callee.Object()
	if fn == nil || fn.Function == nil {
		return runtime.Undefined, ev.throwError("TypeError", calleeDescription(c.Callee)+" is not a function")
	}
	args, err := ev.evalArguments(c.Args, env)
	if err != nil {
		return runtime.Undefined, err
	}
	return ev.callFunction(fn, this, args)
}

func calleeDescription(callee ast.Expression) string {
	if id, ok := callee.(*ast.Identifier); ok {
		return id.Name
	}
	if m, ok := callee.(*ast.MemberExpression); ok && !m.Computed {
		if id, ok := m.Property.(*ast.Identifier); ok {
			return id.Name
		}
	}
	return "value"
}

// evalSuperCall implements `super(...)`, only valid in a derived class's
// constructor: it resolves the superclass constructor off the current
// method's HomeObject.Proto.constructor and calls it against the already-
// allocated `this`. It does not run field initializers: the class
// constructor wrapper in classes.go has already run them before the
// constructor body, and so before this call.
func (ev *Evaluator) evalSuperCall(_ *ast.SuperExpression, c *ast.CallExpression, env *runtime.Environment) (runtime.Value, error) {
	home := ev.lookupHomeObject(env)
	this := ev.lookupThis(env)
	if home == nil || home.Proto == nil {
		return runtime.Undefined, ev.throwError("SyntaxError", "'super' keyword is unexpected here")
	}
	superCtorV, err := home.Proto.Get(runtime.StringKey("constructor"), runtime.ObjectValue(home.Proto), ev.call)
	if err != nil {
		return runtime.Undefined, err
	}
	superCtor := superCtorV.Object()
	if superCtor == nil || superCtor.Function == nil {
		return runtime.Undefined, ev.throwError("TypeError", "super constructor is not a function")
	}
	args, err := ev.evalArguments(c.Args, env)
	if err != nil {
		return runtime.Undefined, err
	}
	_, err = ev.callFunction(superCtor, this, args)
	return runtime.Undefined, err
}

func (ev *Evaluator) evalArguments(argExprs []ast.Expression, env *runtime.Environment) ([]runtime.Value, error) {
	var args []runtime.Value
	for _, a := range argExprs {
		if spread, ok := a.(*ast.SpreadElement); ok {
			v, err := ev.evalExpression(spread.Arg, env)
			if err != nil {
				return nil, err
			}
			items, err := ev.iterateToSlice(v, env)
			if err != nil {
				return nil, err
			}
			args = append(args, items...)
			continue
		}
		v, err := ev.evalExpression(a, env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

func (ev *Evaluator) evalNew(n *ast.NewExpression, env *runtime.Environment) (runtime.Value, error) {
	calleeV, err := ev.evalExpression(n.Callee, env)
	if err != nil {
		return runtime.Undefined, err
	}
	ctor := calleeV.Object()
	if ctor == nil || ctor.Function == nil {
		return runtime.Undefined, ev.throwError("TypeError", calleeDescription(n.Callee)+" is not a constructor")
	}
	args, err := ev.evalArguments(n.Args, env)
	if err != nil {
		return runtime.Undefined, err
	}
	return ev.construct(ctor, args)
}
