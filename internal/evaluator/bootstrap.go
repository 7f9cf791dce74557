package evaluator

import (
	"math"

	"github.com/cwbudde/go-jsengine/internal/runtime"
)

// bootstrap wires up the realm's intrinsic prototypes/constructors and
// seeds the global environment, mirroring the teacher's approach of
// building the standard library as a tree of native-backed objects rather
// than loading bootstrap JS source. Coverage here is the narrow "core that
// every program touches" slice: Object/Function/Array/String/Number/
// Boolean/Error/Promise/console, the timer globals, and JSON (whose
// parse/stringify come from internal/builtins). No RegExp methods, typed
// arrays, or Map/Set constructors are installed as globals.
func (ev *Evaluator) bootstrap() {
	in := ev.Realm.Intrinsics

	in.ObjectPrototype = runtime.NewObject(nil)
	in.FunctionPrototype = runtime.NewObject(in.ObjectPrototype)
	in.ArrayPrototype = runtime.NewArray(in.ObjectPrototype, nil)
	in.StringPrototype = runtime.NewObject(in.ObjectPrototype)
	in.NumberPrototype = runtime.NewObject(in.ObjectPrototype)
	in.BooleanPrototype = runtime.NewObject(in.ObjectPrototype)
	in.SymbolPrototype = runtime.NewObject(in.ObjectPrototype)
	in.BigIntPrototype = runtime.NewObject(in.ObjectPrototype)
	in.ErrorPrototype = runtime.NewObject(in.ObjectPrototype)
	in.RegExpPrototype = runtime.NewObject(in.ObjectPrototype)
	in.PromisePrototype = runtime.NewObject(in.ObjectPrototype)
	in.GeneratorPrototype = runtime.NewObject(in.ObjectPrototype)
	in.MapPrototype = runtime.NewObject(in.ObjectPrototype)
	in.SetPrototype = runtime.NewObject(in.ObjectPrototype)

	// A generator object is its own iterator, so yield*, for-of, spread and
	// destructuring can consume it through Symbol.iterator.
	in.GeneratorPrototype.DefineOwnProperty(runtime.SymbolKey(ev.Realm.WellKnown.Iterator), runtime.NewDataProperty(runtime.ObjectValue(ev.nativeFunction("[Symbol.iterator]", func(this runtime.Value, _ []runtime.Value) (runtime.Value, error) {
		return this, nil
	})), true, false, true))

	ev.bootstrapObject()
	ev.bootstrapFunction()
	ev.bootstrapArray()
	ev.bootstrapString()
	ev.bootstrapError()
	ev.bootstrapPromise()
	ev.bootstrapConsole()
	ev.bootstrapGlobals()
	ev.bootstrapTimers()
	ev.bootstrapJSON()
}

func (ev *Evaluator) defineMethod(obj *runtime.Object, name string, fn runtime.NativeFunc) {
	obj.DefineOwnProperty(runtime.StringKey(name), runtime.NewDataProperty(runtime.ObjectValue(ev.nativeFunction(name, fn)), true, false, true))
}

func (ev *Evaluator) defineGlobal(name string, v runtime.Value, mutable bool) {
	var b *runtime.Binding
	if mutable {
		b = ev.Global.DeclareVar(name)
	} else {
		b = ev.Global.DeclareLexical(name, runtime.BindingConst)
	}
	b.Value = v
	b.Initialized = true
}

func (ev *Evaluator) bootstrapGlobals() {
	ev.defineGlobal("undefined", runtime.Undefined, false)
	ev.defineGlobal("NaN", runtime.NewNumber(math.NaN()), false)
	ev.defineGlobal("Infinity", runtime.NewNumber(math.Inf(1)), false)
	ev.defineGlobal("globalThis", runtime.ObjectValue(ev.Realm.Global), true)
	for name, ctor := range ev.Realm.Intrinsics.Constructors {
		ev.defineGlobal(name, runtime.ObjectValue(ctor), true)
	}
}

func (ev *Evaluator) bootstrapObject() {
	in := ev.Realm.Intrinsics
	ev.defineMethod(in.ObjectPrototype, "hasOwnProperty", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		obj := this.Object()
		if obj == nil {
			return runtime.False, nil
		}
		key, err := ev.toPropertyKey(argOrUndefined(args, 0))
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.NewBoolean(obj.HasOwnProperty(key)), nil
	})
	ev.defineMethod(in.ObjectPrototype, "isPrototypeOf", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		target := argOrUndefined(args, 0).Object()
		self := this.Object()
		if target == nil || self == nil {
			return runtime.False, nil
		}
		for cur := target.Proto; cur != nil; cur = cur.Proto {
			if cur == self {
				return runtime.True, nil
			}
		}
		return runtime.False, nil
	})
	ev.defineMethod(in.ObjectPrototype, "toString", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return runtime.NewString("[object Object]"), nil
	})

	ctor := ev.nativeFunction("Object", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if len(args) > 0 && args[0].Kind() == runtime.KindObject {
			return args[0], nil
		}
		return runtime.ObjectValue(runtime.NewObject(in.ObjectPrototype)), nil
	})
	ctor.Function.ConstructorPrototype = in.ObjectPrototype
	in.ObjectPrototype.DefineOwnProperty(runtime.StringKey("constructor"), runtime.NewDataProperty(runtime.ObjectValue(ctor), true, false, true))

	ev.defineMethod(ctor, "keys", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		obj := argOrUndefined(args, 0).Object()
		var keys []runtime.Value
		if obj != nil {
			for _, k := range obj.OwnEnumerableStringKeys() {
				keys = append(keys, runtime.NewString(k))
			}
		}
		return runtime.ObjectValue(runtime.NewArray(in.ArrayPrototype, keys)), nil
	})
	ev.defineMethod(ctor, "values", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		obj := argOrUndefined(args, 0).Object()
		var vals []runtime.Value
		if obj != nil {
			for _, k := range obj.OwnEnumerableStringKeys() {
				v, err := obj.Get(runtime.StringKey(k), argOrUndefined(args, 0), ev.call)
				if err != nil {
					return runtime.Undefined, err
				}
				vals = append(vals, v)
			}
		}
		return runtime.ObjectValue(runtime.NewArray(in.ArrayPrototype, vals)), nil
	})
	ev.defineMethod(ctor, "assign", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		target := argOrUndefined(args, 0).Object()
		if target == nil {
			return runtime.Undefined, ev.throwError("TypeError", "Object.assign target must be an object")
		}
		for _, srcV := range args[1:] {
			src := srcV.Object()
			if src == nil {
				continue
			}
			for _, k := range src.OwnEnumerableStringKeys() {
				v, err := src.Get(runtime.StringKey(k), srcV, ev.call)
				if err != nil {
					return runtime.Undefined, err
				}
				if _, err := target.Set(runtime.StringKey(k), v, target, ev.call); err != nil {
					return runtime.Undefined, err
				}
			}
		}
		return args[0], nil
	})
	in.Constructors["Object"] = ctor
}

func (ev *Evaluator) bootstrapFunction() {
	in := ev.Realm.Intrinsics
	ev.defineMethod(in.FunctionPrototype, "call", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		fn := this.Object()
		if fn == nil || fn.Function == nil {
			return runtime.Undefined, ev.throwError("TypeError", "Function.prototype.call called on non-function")
		}
		var callThis runtime.Value = runtime.Undefined
		var rest []runtime.Value
		if len(args) > 0 {
			callThis = args[0]
			rest = args[1:]
		}
		return ev.callFunction(fn, callThis, rest)
	})
	ev.defineMethod(in.FunctionPrototype, "apply", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		fn := this.Object()
		if fn == nil || fn.Function == nil {
			return runtime.Undefined, ev.throwError("TypeError", "Function.prototype.apply called on non-function")
		}
		callThis := argOrUndefined(args, 0)
		var rest []runtime.Value
		if len(args) > 1 {
			items, err := ev.iterateToSlice(args[1], nil)
			if err == nil {
				rest = items
			}
		}
		return ev.callFunction(fn, callThis, rest)
	})
	ev.defineMethod(in.FunctionPrototype, "bind", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		target := this.Object()
		if target == nil || target.Function == nil {
			return runtime.Undefined, ev.throwError("TypeError", "Function.prototype.bind called on non-function")
		}
		boundThis := argOrUndefined(args, 0)
		var boundArgs []runtime.Value
		if len(args) > 1 {
			boundArgs = append(boundArgs, args[1:]...)
		}
		bound := runtime.NewObject(in.FunctionPrototype)
		bound.Class = runtime.ClassBoundFunction
		bound.Function = &runtime.FunctionData{
			Name:        "bound " + target.Function.Name,
			BoundTarget: target,
			BoundThis:   boundThis,
			BoundArgs:   boundArgs,
		}
		return runtime.ObjectValue(bound), nil
	})
}

func (ev *Evaluator) bootstrapArray() {
	in := ev.Realm.Intrinsics
	ev.defineMethod(in.ArrayPrototype, "push", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		obj := this.Object()
		if obj == nil || obj.Array == nil {
			return runtime.Undefined, ev.throwError("TypeError", "Array.prototype.push called on non-array")
		}
		for _, v := range args {
			obj.Array.Push(v)
		}
		return runtime.NewNumber(float64(obj.Array.Length())), nil
	})
	ev.defineMethod(in.ArrayPrototype, "pop", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		obj := this.Object()
		if obj == nil || obj.Array == nil {
			return runtime.Undefined, nil
		}
		v, ok := obj.Array.Pop()
		if !ok {
			return runtime.Undefined, nil
		}
		return v, nil
	})
	ev.defineMethod(in.ArrayPrototype, "join", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		obj := this.Object()
		sep := ","
		if len(args) > 0 && !args[0].IsUndefined() {
			s, err := ev.toString(args[0])
			if err != nil {
				return runtime.Undefined, err
			}
			sep = s
		}
		if obj == nil || obj.Array == nil {
			return runtime.NewString(""), nil
		}
		out := ""
		for i := 0; i < obj.Array.Length(); i++ {
			if i > 0 {
				out += sep
			}
			v, _ := obj.Array.Get(i)
			if v.IsNullish() {
				continue
			}
			s, err := ev.toString(v)
			if err != nil {
				return runtime.Undefined, err
			}
			out += s
		}
		return runtime.NewString(out), nil
	})
	ev.defineMethod(in.ArrayPrototype, "forEach", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		obj := this.Object()
		fn := argOrUndefined(args, 0).Object()
		if obj == nil || obj.Array == nil || fn == nil || fn.Function == nil {
			return runtime.Undefined, ev.throwError("TypeError", "callback is not a function")
		}
		for i := 0; i < obj.Array.Length(); i++ {
			v, _ := obj.Array.Get(i)
			if _, err := ev.callFunction(fn, runtime.Undefined, []runtime.Value{v, runtime.NewNumber(float64(i)), this}); err != nil {
				return runtime.Undefined, err
			}
		}
		return runtime.Undefined, nil
	})
	ev.defineMethod(in.ArrayPrototype, "map", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		obj := this.Object()
		fn := argOrUndefined(args, 0).Object()
		if obj == nil || obj.Array == nil || fn == nil || fn.Function == nil {
			return runtime.Undefined, ev.throwError("TypeError", "callback is not a function")
		}
		out := make([]runtime.Value, obj.Array.Length())
		for i := range out {
			v, _ := obj.Array.Get(i)
			r, err := ev.callFunction(fn, runtime.Undefined, []runtime.Value{v, runtime.NewNumber(float64(i)), this})
			if err != nil {
				return runtime.Undefined, err
			}
			out[i] = r
		}
		return runtime.ObjectValue(runtime.NewArray(in.ArrayPrototype, out)), nil
	})
	ev.defineMethod(in.ArrayPrototype, "filter", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		obj := this.Object()
		fn := argOrUndefined(args, 0).Object()
		if obj == nil || obj.Array == nil || fn == nil || fn.Function == nil {
			return runtime.Undefined, ev.throwError("TypeError", "callback is not a function")
		}
		var out []runtime.Value
		for i := 0; i < obj.Array.Length(); i++ {
			v, _ := obj.Array.Get(i)
			r, err := ev.callFunction(fn, runtime.Undefined, []runtime.Value{v, runtime.NewNumber(float64(i)), this})
			if err != nil {
				return runtime.Undefined, err
			}
			if runtime.ToBoolean(r) {
				out = append(out, v)
			}
		}
		return runtime.ObjectValue(runtime.NewArray(in.ArrayPrototype, out)), nil
	})
	ev.defineMethod(in.ArrayPrototype, "slice", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		obj := this.Object()
		if obj == nil || obj.Array == nil {
			return runtime.ObjectValue(runtime.NewArray(in.ArrayPrototype, nil)), nil
		}
		n := obj.Array.Length()
		start, end := 0, n
		if len(args) > 0 {
			start = clampIndex(sliceIndexArg(args, 0, ev), n)
		}
		if len(args) > 1 && !args[1].IsUndefined() {
			end = clampIndex(sliceIndexArg(args, 1, ev), n)
		}
		var out []runtime.Value
		for i := start; i < end; i++ {
			v, _ := obj.Array.Get(i)
			out = append(out, v)
		}
		return runtime.ObjectValue(runtime.NewArray(in.ArrayPrototype, out)), nil
	})

	ctor := ev.nativeFunction("Array", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if len(args) == 1 && args[0].Kind() == runtime.KindNumber {
			return runtime.ObjectValue(runtime.NewArray(in.ArrayPrototype, make([]runtime.Value, int(args[0].Number())))), nil
		}
		return runtime.ObjectValue(runtime.NewArray(in.ArrayPrototype, args)), nil
	})
	ctor.Function.ConstructorPrototype = in.ArrayPrototype
	ev.defineMethod(ctor, "isArray", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		obj := argOrUndefined(args, 0).Object()
		return runtime.NewBoolean(obj != nil && obj.Class == runtime.ClassArray), nil
	})
	in.ArrayPrototype.DefineOwnProperty(runtime.StringKey("constructor"), runtime.NewDataProperty(runtime.ObjectValue(ctor), true, false, true))
	in.Constructors["Array"] = ctor
}

func sliceIndexArg(args []runtime.Value, i int, ev *Evaluator) int {
	n, err := ev.toNumber(args[i])
	if err != nil {
		return 0
	}
	return int(n)
}

func clampIndex(i, length int) int {
	if i < 0 {
		i += length
	}
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}

func (ev *Evaluator) bootstrapString() {
	in := ev.Realm.Intrinsics
	ctor := ev.nativeFunction("String", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if len(args) == 0 {
			return runtime.NewString(""), nil
		}
		s, err := ev.toString(args[0])
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.NewString(s), nil
	})
	ctor.Function.ConstructorPrototype = in.StringPrototype
	in.Constructors["String"] = ctor

	numberCtor := ev.nativeFunction("Number", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if len(args) == 0 {
			return runtime.NewNumber(0), nil
		}
		n, err := ev.toNumber(args[0])
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.NewNumber(n), nil
	})
	numberCtor.Function.ConstructorPrototype = in.NumberPrototype
	in.Constructors["Number"] = numberCtor

	booleanCtor := ev.nativeFunction("Boolean", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return runtime.NewBoolean(runtime.ToBoolean(argOrUndefined(args, 0))), nil
	})
	booleanCtor.Function.ConstructorPrototype = in.BooleanPrototype
	in.Constructors["Boolean"] = booleanCtor
}

func (ev *Evaluator) bootstrapError() {
	in := ev.Realm.Intrinsics
	ev.defineMethod(in.ErrorPrototype, "toString", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		obj := this.Object()
		if obj == nil || obj.Err == nil {
			return runtime.NewString("Error"), nil
		}
		return runtime.NewString(runtime.ErrorToString(obj.Err.NativeName, obj.Err.Message)), nil
	})
	in.ErrorPrototype.DefineOwnProperty(runtime.StringKey("name"), runtime.NewDataProperty(runtime.NewString("Error"), true, false, true))
	in.ErrorPrototype.DefineOwnProperty(runtime.StringKey("message"), runtime.NewDataProperty(runtime.NewString(""), true, false, true))

	makeCtor := func(name string, proto *runtime.Object) *runtime.Object {
		ctor := ev.nativeFunction(name, func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
			msg := ""
			if len(args) > 0 && !args[0].IsUndefined() {
				s, err := ev.toString(args[0])
				if err != nil {
					return runtime.Undefined, err
				}
				msg = s
			}
			return runtime.ObjectValue(runtime.NewError(proto, name, msg)), nil
		})
		ctor.Function.ConstructorPrototype = proto
		proto.DefineOwnProperty(runtime.StringKey("constructor"), runtime.NewDataProperty(runtime.ObjectValue(ctor), true, false, true))
		in.Constructors[name] = ctor
		return ctor
	}
	makeCtor("Error", in.ErrorPrototype)
	for _, name := range []string{"TypeError", "RangeError", "ReferenceError", "SyntaxError", "EvalError", "URIError"} {
		proto := runtime.NewObject(in.ErrorPrototype)
		proto.DefineOwnProperty(runtime.StringKey("name"), runtime.NewDataProperty(runtime.NewString(name), true, false, true))
		in.ErrorSubPrototypes[name] = proto
		makeCtor(name, proto)
	}

	// AggregateError takes (errors, message) rather than (message), per
	// Promise.any's rejection shape, so it gets its own constructor instead
	// of going through makeCtor.
	aggProto := runtime.NewObject(in.ErrorPrototype)
	aggProto.DefineOwnProperty(runtime.StringKey("name"), runtime.NewDataProperty(runtime.NewString("AggregateError"), true, false, true))
	in.ErrorSubPrototypes["AggregateError"] = aggProto
	aggCtor := ev.nativeFunction("AggregateError", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		errs, err := ev.iterateToSlice(argOrUndefined(args, 0), nil)
		if err != nil {
			return runtime.Undefined, err
		}
		msg := ""
		if len(args) > 1 && !args[1].IsUndefined() {
			s, err := ev.toString(args[1])
			if err != nil {
				return runtime.Undefined, err
			}
			msg = s
		}
		return runtime.ObjectValue(ev.newAggregateError(errs, msg)), nil
	})
	aggCtor.Function.ConstructorPrototype = aggProto
	aggProto.DefineOwnProperty(runtime.StringKey("constructor"), runtime.NewDataProperty(runtime.ObjectValue(aggCtor), true, false, true))
	in.Constructors["AggregateError"] = aggCtor
}

// newAggregateError builds an AggregateError object carrying an `errors`
// array, used both by the AggregateError constructor and by Promise.any
// once every input promise has rejected.
func (ev *Evaluator) newAggregateError(errs []runtime.Value, message string) *runtime.Object {
	in := ev.Realm.Intrinsics
	o := runtime.NewError(in.ErrorSubPrototypes["AggregateError"], "AggregateError", message)
	o.DefineOwnProperty(runtime.StringKey("errors"), runtime.NewDataProperty(runtime.ObjectValue(runtime.NewArray(in.ArrayPrototype, errs)), true, false, true))
	return o
}

func (ev *Evaluator) bootstrapPromise() {
	in := ev.Realm.Intrinsics
	ev.defineMethod(in.PromisePrototype, "then", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		p := this.Object()
		if p == nil || p.Promise == nil {
			return runtime.Undefined, ev.throwError("TypeError", "Promise.prototype.then called on non-promise")
		}
		downstream := runtime.NewPromiseObject(in.PromisePrototype)
		onFulfil := runtime.Reaction{Downstream: downstream, Handler: argOrUndefined(args, 0).Object()}
		onReject := runtime.Reaction{Downstream: downstream, Handler: argOrUndefined(args, 1).Object()}
		p.Promise.AddReaction(onFulfil, onReject)
		switch p.Promise.State {
		case runtime.PromiseFulfilled:
			ev.scheduleReaction(onFulfil, true, p.Promise.Value)
		case runtime.PromiseRejected:
			ev.scheduleReaction(onReject, false, p.Promise.Value)
		}
		return runtime.ObjectValue(downstream), nil
	})
	ev.defineMethod(in.PromisePrototype, "catch", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		thenFn := in.PromisePrototype.GetOwnProperty(runtime.StringKey("then")).Value.Object()
		return ev.callFunction(thenFn, this, []runtime.Value{runtime.Undefined, argOrUndefined(args, 0)})
	})
	ev.defineMethod(in.PromisePrototype, "finally", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		fn := argOrUndefined(args, 0).Object()
		wrap := ev.nativeFunction("", func(_ runtime.Value, cbArgs []runtime.Value) (runtime.Value, error) {
			if fn != nil {
				if _, err := ev.callFunction(fn, runtime.Undefined, nil); err != nil {
					return runtime.Undefined, err
				}
			}
			return argOrUndefined(cbArgs, 0), nil
		})
		thenProp := in.PromisePrototype.GetOwnProperty(runtime.StringKey("then"))
		thenFn := thenProp.Value.Object()
		return ev.callFunction(thenFn, this, []runtime.Value{runtime.ObjectValue(wrap), runtime.ObjectValue(wrap)})
	})

	ctor := ev.nativeFunction("Promise", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		executor := argOrUndefined(args, 0).Object()
		if executor == nil || executor.Function == nil {
			return runtime.Undefined, ev.throwError("TypeError", "Promise resolver is not a function")
		}
		p := runtime.NewPromiseObject(in.PromisePrototype)
		resolve := ev.nativeFunction("", func(_ runtime.Value, a []runtime.Value) (runtime.Value, error) {
			ev.resolvePromiseWith(p, argOrUndefined(a, 0))
			return runtime.Undefined, nil
		})
		reject := ev.nativeFunction("", func(_ runtime.Value, a []runtime.Value) (runtime.Value, error) {
			ev.settlePromise(p, false, argOrUndefined(a, 0))
			return runtime.Undefined, nil
		})
		if _, err := ev.callFunction(executor, runtime.Undefined, []runtime.Value{runtime.ObjectValue(resolve), runtime.ObjectValue(reject)}); err != nil {
			ev.settlePromise(p, false, ev.errorValue(err))
		}
		return runtime.ObjectValue(p), nil
	})
	ctor.Function.ConstructorPrototype = in.PromisePrototype
	ev.defineMethod(ctor, "resolve", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		v := argOrUndefined(args, 0)
		if obj := v.Object(); obj != nil && obj.Class == runtime.ClassPromise {
			return v, nil
		}
		p := runtime.NewPromiseObject(in.PromisePrototype)
		ev.resolvePromiseWith(p, v)
		return runtime.ObjectValue(p), nil
	})
	ev.defineMethod(ctor, "reject", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		p := runtime.NewPromiseObject(in.PromisePrototype)
		ev.settlePromise(p, false, argOrUndefined(args, 0))
		return runtime.ObjectValue(p), nil
	})
	in.Constructors["Promise"] = ctor
	ev.bootstrapPromiseCombinators(ctor)
}

func (ev *Evaluator) bootstrapConsole() {
	console := runtime.NewObject(ev.Realm.Intrinsics.ObjectPrototype)
	logFn := func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			s, err := ev.toString(a)
			if err != nil {
				return runtime.Undefined, err
			}
			parts[i] = s
		}
		out := ""
		for i, p := range parts {
			if i > 0 {
				out += " "
			}
			out += p
		}
		ev.Console = append(ev.Console, out)
		return runtime.Undefined, nil
	}
	ev.defineMethod(console, "log", logFn)
	ev.defineMethod(console, "error", logFn)
	ev.defineMethod(console, "warn", logFn)
	ev.defineMethod(console, "info", logFn)
	ev.Global.DeclareVar("console").Value = runtime.ObjectValue(console)
	ev.Global.OwnVar("console").Initialized = true
}
