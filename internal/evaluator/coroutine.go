package evaluator

import (
	"github.com/cwbudde/go-jsengine/internal/ast"
	"github.com/cwbudde/go-jsengine/internal/runtime"
)

// newGenerator allocates a generator object and starts its body on a
// dedicated goroutine, suspended before running any user code until the
// first .next()/.return()/.throw() call arrives on ResumeCh. The goroutine
// runs against a shallow copy of ev with coroutine set, so evalYield (deep
// in the body's call stack) can find its way back to this gen's channels
// without threading a parameter through every evalExpression/evalStatement
// call.
func (ev *Evaluator) newGenerator(fn *runtime.Object, this runtime.Value, args []runtime.Value) *runtime.Object {
	proto := fn.Function.ConstructorPrototype
	if proto == nil {
		proto = ev.Realm.Intrinsics.GeneratorPrototype
	}
	obj := runtime.NewGeneratorObject(proto, fn.Function.IsAsync)
	gen := obj.Generator

	go func() {
		first := <-gen.ResumeCh
		if first.Kind == runtime.ResumeThrow {
			gen.YieldCh <- runtime.YieldMsg{Done: true, Err: &ThrowSignal{Value: first.Arg}}
			return
		}
		if first.Kind == runtime.ResumeReturn {
			gen.YieldCh <- runtime.YieldMsg{Value: first.Arg, Done: true}
			return
		}
		genEv := *ev
		genEv.coroutine = gen
		genEv.callDepth = 0
		callEnv := genEv.newCallEnvironment(fn, this, args)
		if err := genEv.bindParams(fn.Function, callEnv, args); err != nil {
			gen.YieldCh <- runtime.YieldMsg{Done: true, Err: err}
			return
		}
		v, err := genEv.runFunctionBody(fn.Function, callEnv)
		gen.YieldCh <- runtime.YieldMsg{Value: v, Done: true, Err: err}
	}()

	obj.DefineOwnProperty(runtime.StringKey("next"), runtime.NewDataProperty(runtime.ObjectValue(ev.nativeFunction("next", func(_ runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return ev.resumeGenerator(obj, runtime.ResumeNext, argOrUndefined(args, 0))
	})), true, false, true))
	obj.DefineOwnProperty(runtime.StringKey("throw"), runtime.NewDataProperty(runtime.ObjectValue(ev.nativeFunction("throw", func(_ runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return ev.resumeGenerator(obj, runtime.ResumeThrow, argOrUndefined(args, 0))
	})), true, false, true))
	obj.DefineOwnProperty(runtime.StringKey("return"), runtime.NewDataProperty(runtime.ObjectValue(ev.nativeFunction("return", func(_ runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return ev.resumeGenerator(obj, runtime.ResumeReturn, argOrUndefined(args, 0))
	})), true, false, true))
	return obj
}

func argOrUndefined(args []runtime.Value, i int) runtime.Value {
	if i < len(args) {
		return args[i]
	}
	return runtime.Undefined
}

// resumeGenerator drives genObj's coroutine one step and wraps the result
// in the {value, done} iterator-result shape .next/.throw/.return return.
func (ev *Evaluator) resumeGenerator(genObj *runtime.Object, kind runtime.ResumeKind, arg runtime.Value) (runtime.Value, error) {
	gen := genObj.Generator
	switch gen.State {
	case runtime.GeneratorCompleted:
		if kind == runtime.ResumeThrow {
			return runtime.Undefined, &ThrowSignal{Value: arg}
		}
		return ev.iterResult(arg, true), nil
	case runtime.GeneratorExecuting:
		return runtime.Undefined, ev.throwError("TypeError", "Generator is already running")
	}
	gen.State = runtime.GeneratorExecuting
	gen.ResumeCh <- runtime.ResumeMsg{Kind: kind, Arg: arg}
	msg := <-gen.YieldCh
	if msg.Done {
		gen.State = runtime.GeneratorCompleted
		if msg.Err != nil {
			return runtime.Undefined, msg.Err
		}
		return ev.iterResult(msg.Value, true), nil
	}
	gen.State = runtime.GeneratorSuspendedYield
	return ev.iterResult(msg.Value, false), nil
}

func (ev *Evaluator) iterResult(value runtime.Value, done bool) runtime.Value {
	o := runtime.NewObject(ev.Realm.Intrinsics.ObjectPrototype)
	o.DefineOwnProperty(runtime.StringKey("value"), runtime.NewDataProperty(value, true, true, true))
	o.DefineOwnProperty(runtime.StringKey("done"), runtime.NewDataProperty(runtime.NewBoolean(done), true, true, true))
	return runtime.ObjectValue(o)
}

// evalYield implements `yield`/`yield*`, only reachable while ev.coroutine
// is set (i.e. running on a generator body's dedicated goroutine).
func (ev *Evaluator) evalYield(y *ast.YieldExpression, env *runtime.Environment) (runtime.Value, error) {
	if ev.coroutine == nil {
		return runtime.Undefined, ev.throwError("SyntaxError", "yield is only valid inside a generator function")
	}
	var arg runtime.Value = runtime.Undefined
	if y.Argument != nil {
		v, err := ev.evalExpression(y.Argument, env)
		if err != nil {
			return runtime.Undefined, err
		}
		arg = v
	}
	if !y.Delegate {
		return ev.doYield(arg)
	}
	items, err := ev.iterateToSlice(arg, env)
	if err != nil {
		return runtime.Undefined, err
	}
	var last runtime.Value = runtime.Undefined
	for _, item := range items {
		v, err := ev.doYield(item)
		if err != nil {
			return runtime.Undefined, err
		}
		last = v
	}
	return last, nil
}

func (ev *Evaluator) doYield(value runtime.Value) (runtime.Value, error) {
	gen := ev.coroutine
	gen.YieldCh <- runtime.YieldMsg{Value: value}
	msg := <-gen.ResumeCh
	switch msg.Kind {
	case runtime.ResumeThrow:
		return runtime.Undefined, &ThrowSignal{Value: msg.Arg}
	case runtime.ResumeReturn:
		return runtime.Undefined, &ReturnSignal{Value: msg.Arg}
	default:
		return msg.Arg, nil
	}
}

// runAsyncFunction starts fn's body on a dedicated goroutine exactly like a
// generator's, but drives it to completion itself (rather than waiting on
// external .next() calls), translating each `await` into a real promise
// subscription scheduled through ev.Scheduler, and settles the returned
// promise when the body finally completes.
func (ev *Evaluator) runAsyncFunction(fn *runtime.Object, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	promise := runtime.NewPromiseObject(ev.Realm.Intrinsics.PromisePrototype)
	gen := &runtime.GeneratorData{
		State:    runtime.GeneratorSuspendedStart,
		ResumeCh: make(chan runtime.ResumeMsg),
		YieldCh:  make(chan runtime.YieldMsg),
		IsAsync:  true,
	}
	go func() {
		<-gen.ResumeCh
		asyncEv := *ev
		asyncEv.coroutine = gen
		asyncEv.callDepth = 0
		callEnv := asyncEv.newCallEnvironment(fn, this, args)
		if err := asyncEv.bindParams(fn.Function, callEnv, args); err != nil {
			gen.YieldCh <- runtime.YieldMsg{Done: true, Err: err}
			return
		}
		v, err := asyncEv.runFunctionBody(fn.Function, callEnv)
		gen.YieldCh <- runtime.YieldMsg{Value: v, Done: true, Err: err}
	}()
	ev.driveAsync(gen, promise, runtime.ResumeMsg{Kind: runtime.ResumeNext})
	return runtime.ObjectValue(promise), nil
}

func (ev *Evaluator) driveAsync(gen *runtime.GeneratorData, promise *runtime.Object, resume runtime.ResumeMsg) {
	gen.ResumeCh <- resume
	msg := <-gen.YieldCh
	if msg.Done {
		if msg.Err != nil {
			ev.settlePromise(promise, false, ev.errorValue(msg.Err))
			return
		}
		ev.resolvePromiseWith(promise, msg.Value)
		return
	}
	ev.awaitValue(msg.Value, gen, promise)
}

// awaitValue subscribes to the awaited operand if it is thenable, or just
// schedules a microtask to resume immediately otherwise — await on a
// non-promise value still costs one microtask tick, per spec.md §4.6.
func (ev *Evaluator) awaitValue(v runtime.Value, gen *runtime.GeneratorData, promise *runtime.Object) {
	thenFn, ok := ev.thenable(v)
	if !ok {
		ev.Scheduler.EnqueueMicrotask(func() {
			ev.driveAsync(gen, promise, runtime.ResumeMsg{Kind: runtime.ResumeNext, Arg: v})
		})
		return
	}
	onFulfil := ev.nativeFunction("", func(_ runtime.Value, args []runtime.Value) (runtime.Value, error) {
		ev.driveAsync(gen, promise, runtime.ResumeMsg{Kind: runtime.ResumeNext, Arg: argOrUndefined(args, 0)})
		return runtime.Undefined, nil
	})
	onReject := ev.nativeFunction("", func(_ runtime.Value, args []runtime.Value) (runtime.Value, error) {
		ev.driveAsync(gen, promise, runtime.ResumeMsg{Kind: runtime.ResumeThrow, Arg: argOrUndefined(args, 0)})
		return runtime.Undefined, nil
	})
	if _, err := ev.callFunction(thenFn, v, []runtime.Value{runtime.ObjectValue(onFulfil), runtime.ObjectValue(onReject)}); err != nil {
		ev.driveAsync(gen, promise, runtime.ResumeMsg{Kind: runtime.ResumeThrow, Arg: ev.errorValue(err)})
	}
}

// evalAwait suspends the current async function's goroutine, handing the
// awaited value out through YieldCh for driveAsync/awaitValue to subscribe
// to, and blocks until the driver resumes it with the settled value (or a
// throw).
func (ev *Evaluator) evalAwait(a *ast.AwaitExpression, env *runtime.Environment) (runtime.Value, error) {
	if ev.coroutine == nil {
		return runtime.Undefined, ev.throwError("SyntaxError", "await is only valid in an async function")
	}
	v, err := ev.evalExpression(a.Argument, env)
	if err != nil {
		return runtime.Undefined, err
	}
	gen := ev.coroutine
	gen.YieldCh <- runtime.YieldMsg{Value: v}
	msg := <-gen.ResumeCh
	if msg.Kind == runtime.ResumeThrow {
		return runtime.Undefined, &ThrowSignal{Value: msg.Arg}
	}
	return msg.Arg, nil
}

// thenable reports whether v carries a callable .then method, per the
// generic thenable-adoption algorithm promises use for both native
// promises and host/library promise-likes.
func (ev *Evaluator) thenable(v runtime.Value) (*runtime.Object, bool) {
	obj := v.Object()
	if obj == nil {
		return nil, false
	}
	thenV, err := obj.Get(runtime.StringKey("then"), v, ev.call)
	if err != nil {
		return nil, false
	}
	thenFn := thenV.Object()
	if thenFn == nil || thenFn.Function == nil {
		return nil, false
	}
	return thenFn, true
}

// settlePromise transitions promise and schedules every pending reaction
// as a microtask, per spec.md §4.5/PromiseReactionJob.
func (ev *Evaluator) settlePromise(promise *runtime.Object, fulfilled bool, value runtime.Value) {
	reactions := promise.Promise.Settle(fulfilled, value)
	for _, r := range reactions {
		ev.scheduleReaction(r, fulfilled, value)
	}
}

// resolvePromiseWith settles promise with result, adopting result's state
// if result is itself thenable (promise resolution procedure) instead of
// fulfilling with the thenable object itself.
func (ev *Evaluator) resolvePromiseWith(promise *runtime.Object, result runtime.Value) {
	if thenFn, ok := ev.thenable(result); ok {
		onFulfil := ev.nativeFunction("", func(_ runtime.Value, args []runtime.Value) (runtime.Value, error) {
			ev.settlePromise(promise, true, argOrUndefined(args, 0))
			return runtime.Undefined, nil
		})
		onReject := ev.nativeFunction("", func(_ runtime.Value, args []runtime.Value) (runtime.Value, error) {
			ev.settlePromise(promise, false, argOrUndefined(args, 0))
			return runtime.Undefined, nil
		})
		if _, err := ev.callFunction(thenFn, result, []runtime.Value{runtime.ObjectValue(onFulfil), runtime.ObjectValue(onReject)}); err != nil {
			ev.settlePromise(promise, false, ev.errorValue(err))
		}
		return
	}
	ev.settlePromise(promise, true, result)
}

func (ev *Evaluator) scheduleReaction(r runtime.Reaction, fulfilled bool, value runtime.Value) {
	ev.Scheduler.EnqueueMicrotask(func() {
		if r.Handler == nil {
			ev.settlePromise(r.Downstream, fulfilled, value)
			return
		}
		result, err := ev.callFunction(r.Handler, runtime.Undefined, []runtime.Value{value})
		if err != nil {
			ev.settlePromise(r.Downstream, false, ev.errorValue(err))
			return
		}
		ev.resolvePromiseWith(r.Downstream, result)
	})
}

// errorValue turns an internal evaluator error into a value a promise can
// reject with or a catch clause can bind: a *ThrowSignal's payload passes
// through unchanged, anything else (a Go-level failure with no JS value of
// its own) is wrapped as a generic Error.
func (ev *Evaluator) errorValue(err error) runtime.Value {
	if th, ok := err.(*ThrowSignal); ok {
		return th.Value
	}
	return runtime.ObjectValue(runtime.NewError(ev.Realm.Intrinsics.ErrorPrototype, "Error", err.Error()))
}
