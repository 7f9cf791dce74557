package evaluator

import (
	"github.com/cwbudde/go-jsengine/internal/ast"
	"github.com/cwbudde/go-jsengine/internal/runtime"
)

// makeClosure builds a ClassFunction object over fn's IR, closing over env.
// The body is stored as whichever of BlockStatement/ExprBody fn actually
// has — never both, and never an unconditional assignment, since a nil
// *ast.BlockStatement boxed into the ast.Node interface is a non-nil
// interface wrapping nil (see runFunctionBody's type switch, which would
// otherwise wrongly pick the block-statement path).
func (ev *Evaluator) makeClosure(fn *ast.FunctionLiteral, env *runtime.Environment) *runtime.Object {
	obj := runtime.NewObject(ev.Realm.Intrinsics.FunctionPrototype)
	obj.Class = runtime.ClassFunction

	fd := &runtime.FunctionData{
		ClosureEnv:  env,
		ThisMode:    thisModeFor(fn),
		IsAsync:     fn.IsAsync,
		IsGenerator: fn.IsGenerator,
		Strict:      fn.Strict,
	}
	if fn.Name != nil {
		fd.Name = fn.Name.Name
	}
	if fn.Body != nil {
		fd.Body = fn.Body
	} else if fn.ExprBody != nil {
		fd.Body = fn.ExprBody
	}
	fd.Params = make([]runtime.ParamDescriptor, len(fn.Params))
	for i, p := range fn.Params {
		fd.Params[i] = runtime.ParamDescriptor{Pattern: p.Pattern, Default: p.Default, Rest: p.Rest}
	}
	obj.Function = fd

	obj.DefineOwnProperty(runtime.StringKey("length"), runtime.NewDataProperty(runtime.NewNumber(float64(fd.ExpectedArgCount())), false, false, true))
	obj.DefineOwnProperty(runtime.StringKey("name"), runtime.NewDataProperty(runtime.NewString(fd.Name), false, false, true))

	if !fn.IsArrow && !fn.IsGenerator && !fn.IsAsync {
		proto := runtime.NewObject(ev.Realm.Intrinsics.ObjectPrototype)
		proto.DefineOwnProperty(runtime.StringKey("constructor"), runtime.NewDataProperty(runtime.ObjectValue(obj), true, false, true))
		fd.ConstructorPrototype = proto
		obj.DefineOwnProperty(runtime.StringKey("prototype"), runtime.NewDataProperty(runtime.ObjectValue(proto), true, false, false))
	} else if fn.IsGenerator {
		fd.ConstructorPrototype = runtime.NewObject(ev.Realm.Intrinsics.GeneratorPrototype)
	}
	return obj
}

// nativeFunction wraps a Go closure as a callable JS function object, used
// for synthesized methods (generator .next/.throw/.return, promise
// reaction handlers) that have no IR body of their own.
func (ev *Evaluator) nativeFunction(name string, fn runtime.NativeFunc) *runtime.Object {
	obj := runtime.NewObject(ev.Realm.Intrinsics.FunctionPrototype)
	obj.Class = runtime.ClassFunction
	obj.Function = &runtime.FunctionData{Name: name, Native: fn}
	obj.DefineOwnProperty(runtime.StringKey("name"), runtime.NewDataProperty(runtime.NewString(name), false, false, true))
	return obj
}

func thisModeFor(fn *ast.FunctionLiteral) runtime.ThisMode {
	if fn.IsArrow {
		return runtime.ThisLexical
	}
	if fn.Strict {
		return runtime.ThisStrict
	}
	return runtime.ThisSloppyGlobal
}

// callFunction is the single entry point every call path (CallExpression,
// CallHook, tagged templates, iterator protocol, coercion) funnels through.
func (ev *Evaluator) callFunction(fn *runtime.Object, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	if fn == nil || fn.Function == nil {
		return runtime.Undefined, ev.throwError("TypeError", "value is not a function")
	}
	fd := fn.Function
	if fd.IsBound() {
		allArgs := append(append([]runtime.Value{}, fd.BoundArgs...), args...)
		return ev.callFunction(fd.BoundTarget, fd.BoundThis, allArgs)
	}
	if fd.IsNative() {
		return fd.Native(this, args)
	}
	if fd.IsGenerator {
		return runtime.ObjectValue(ev.newGenerator(fn, this, args)), nil
	}
	if fd.IsAsync {
		return ev.runAsyncFunction(fn, this, args)
	}

	ev.callDepth++
	defer func() { ev.callDepth-- }()
	if ev.callDepth > maxCallDepth {
		return runtime.Undefined, ev.throwError("RangeError", "Maximum call stack size exceeded")
	}

	callEnv := ev.newCallEnvironment(fn, this, args)
	if err := ev.bindParams(fd, callEnv, args); err != nil {
		return runtime.Undefined, err
	}
	return ev.runFunctionBody(fd, callEnv)
}

// newCallEnvironment binds `this` and the function's HomeObject (for
// super) per ThisMode. Arrow functions deliberately get no `this` binding
// at all here, so lookupThis falls through to the closure's captured
// environment instead of shadowing it — this package does not box
// primitive `this` values for sloppy-mode calls, a documented
// simplification over the full abstract-this-value algorithm.
func (ev *Evaluator) newCallEnvironment(fn *runtime.Object, this runtime.Value, args []runtime.Value) *runtime.Environment {
	env := runtime.NewEnvironment(fn.Function.ClosureEnv, runtime.EnvFunction, effectiveMode(fn.Function))
	if fn.Function.ThisMode != runtime.ThisLexical {
		if fn.Function.ThisMode == runtime.ThisSloppyGlobal && this.IsNullish() {
			this = runtime.ObjectValue(ev.Realm.Global)
		}
		b := env.DeclareVar("this")
		b.Value = this
		b.Initialized = true
	}
	if fn.Function.HomeObject != nil {
		b := env.DeclareVar(homeObjectBindingName)
		b.Value = runtime.ObjectValue(fn.Function.HomeObject)
		b.Initialized = true
	}
	argumentsArr := runtime.NewArray(ev.Realm.Intrinsics.ArrayPrototype, args)
	ab := env.DeclareVar("arguments")
	ab.Value = runtime.ObjectValue(argumentsArr)
	ab.Initialized = true
	return env
}

func effectiveMode(fd *runtime.FunctionData) runtime.Mode {
	if fd.Strict {
		return runtime.Strict
	}
	return runtime.Sloppy
}

// bindParams binds args against fd's parameter list, evaluating default
// initializers (in left-to-right scope, so later defaults can see earlier
// params) and collecting the rest parameter if any. Parameter bindings use
// BindingLet rather than a dedicated parameter-binding kind — a documented
// simplification, since this package never needs to distinguish "was a
// parameter" from "was declared with let" once the call is underway.
func (ev *Evaluator) bindParams(fd *runtime.FunctionData, env *runtime.Environment, args []runtime.Value) error {
	for i, p := range fd.Params {
		if p.Rest {
			var tail []runtime.Value
			if i < len(args) {
				tail = args[i:]
			}
			restArr := runtime.ObjectValue(runtime.NewArray(ev.Realm.Intrinsics.ArrayPrototype, tail))
			if err := ev.bindParamPattern(p.Pattern, restArr, env); err != nil {
				return err
			}
			continue
		}
		var v runtime.Value = runtime.Undefined
		if i < len(args) {
			v = args[i]
		}
		if v.IsUndefined() && p.Default != nil {
			dv, err := ev.evalExpression(p.Default, env)
			if err != nil {
				return err
			}
			v = dv
		}
		if err := ev.bindParamPattern(p.Pattern, v, env); err != nil {
			return err
		}
	}
	return nil
}

// bindParamPattern declares-and-initializes pat in env; pat is an ast.Node
// because runtime.ParamDescriptor.Pattern is typed that broadly, but it is
// always an ast.Pattern in practice (enforced by the parser).
func (ev *Evaluator) bindParamPattern(pat ast.Node, value runtime.Value, env *runtime.Environment) error {
	p, ok := pat.(ast.Pattern)
	if !ok {
		return ev.throwError("SyntaxError", "invalid parameter pattern")
	}
	declareLexicalPattern(env, p, ast.DeclLet)
	return ev.bindPattern(p, value, env, ast.DeclLet)
}

// runFunctionBody executes fd's body, which is either an *ast.BlockStatement
// (ordinary function: statements run, a *ReturnSignal is caught and
// unwrapped) or an ast.Expression (arrow concise body: the expression's
// value is the return value directly, no ReturnSignal involved).
func (ev *Evaluator) runFunctionBody(fd *runtime.FunctionData, env *runtime.Environment) (runtime.Value, error) {
	switch body := fd.Body.(type) {
	case *ast.BlockStatement:
		ev.hoistDeclarations(body.Body, env, true)
		for _, stmt := range body.Body {
			_, err := ev.evalStatement(stmt, env)
			if err != nil {
				if ret, ok := err.(*ReturnSignal); ok {
					return ret.Value, nil
				}
				return runtime.Undefined, err
			}
		}
		return runtime.Undefined, nil
	case ast.Expression:
		return ev.evalExpression(body, env)
	default:
		return runtime.Undefined, nil
	}
}

// construct implements `new`: a fresh instance chained to the constructor's
// .prototype runs the constructor body with that instance as `this`; an
// explicit object return wins over the instance, per the ordinary (not
// derived-class-deferred) [[Construct]] shape. Derived-class `this`
// deferred-until-super() semantics are not modeled — classes.go's
// synthesized default constructor calls super() eagerly as its first
// statement instead, which yields the same externally observable instance
// shape for every constructor this evaluator can produce.
func (ev *Evaluator) construct(ctor *runtime.Object, args []runtime.Value) (runtime.Value, error) {
	if ctor == nil || ctor.Function == nil {
		return runtime.Undefined, ev.throwError("TypeError", "not a constructor")
	}
	proto := ctor.Function.ConstructorPrototype
	if proto == nil {
		proto = ev.Realm.Intrinsics.ObjectPrototype
	}
	instance := runtime.NewObject(proto)
	this := runtime.ObjectValue(instance)
	result, err := ev.callFunction(ctor, this, args)
	if err != nil {
		return runtime.Undefined, err
	}
	if result.Kind() == runtime.KindObject {
		return result, nil
	}
	return this, nil
}
