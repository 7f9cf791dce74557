package evaluator

import "github.com/cwbudde/go-jsengine/internal/runtime"

// bootstrapPromiseCombinators wires Promise.all/race/allSettled/any onto
// ctor, per spec.md §4.5's fan-in semantics. Each combinator adopts its
// inputs through subscribeCombinator rather than the public .then method,
// since the fan-in bookkeeping (remaining counter, settled-once guard) lives
// in Go closures, not in JS-visible reaction handlers.
func (ev *Evaluator) bootstrapPromiseCombinators(ctor *runtime.Object) {
	in := ev.Realm.Intrinsics

	ev.defineMethod(ctor, "all", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		items, err := ev.iterateToSlice(argOrUndefined(args, 0), nil)
		if err != nil {
			return runtime.Undefined, err
		}
		result := runtime.NewPromiseObject(in.PromisePrototype)
		if len(items) == 0 {
			ev.settlePromise(result, true, runtime.ObjectValue(runtime.NewArray(in.ArrayPrototype, nil)))
			return runtime.ObjectValue(result), nil
		}
		values := make([]runtime.Value, len(items))
		remaining := len(items)
		settled := false
		for i, item := range items {
			idx := i
			ev.subscribeCombinator(item, func(v runtime.Value) {
				if settled {
					return
				}
				values[idx] = v
				remaining--
				if remaining == 0 {
					settled = true
					ev.settlePromise(result, true, runtime.ObjectValue(runtime.NewArray(in.ArrayPrototype, values)))
				}
			}, func(reason runtime.Value) {
				if settled {
					return
				}
				settled = true
				ev.settlePromise(result, false, reason)
			})
		}
		return runtime.ObjectValue(result), nil
	})

	ev.defineMethod(ctor, "race", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		items, err := ev.iterateToSlice(argOrUndefined(args, 0), nil)
		if err != nil {
			return runtime.Undefined, err
		}
		result := runtime.NewPromiseObject(in.PromisePrototype)
		settled := false
		for _, item := range items {
			ev.subscribeCombinator(item, func(v runtime.Value) {
				if settled {
					return
				}
				settled = true
				ev.settlePromise(result, true, v)
			}, func(reason runtime.Value) {
				if settled {
					return
				}
				settled = true
				ev.settlePromise(result, false, reason)
			})
		}
		return runtime.ObjectValue(result), nil
	})

	ev.defineMethod(ctor, "allSettled", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		items, err := ev.iterateToSlice(argOrUndefined(args, 0), nil)
		if err != nil {
			return runtime.Undefined, err
		}
		result := runtime.NewPromiseObject(in.PromisePrototype)
		if len(items) == 0 {
			ev.settlePromise(result, true, runtime.ObjectValue(runtime.NewArray(in.ArrayPrototype, nil)))
			return runtime.ObjectValue(result), nil
		}
		records := make([]runtime.Value, len(items))
		remaining := len(items)
		for i, item := range items {
			idx := i
			ev.subscribeCombinator(item, func(v runtime.Value) {
				records[idx] = ev.settledRecord("fulfilled", "value", v)
				remaining--
				if remaining == 0 {
					ev.settlePromise(result, true, runtime.ObjectValue(runtime.NewArray(in.ArrayPrototype, records)))
				}
			}, func(reason runtime.Value) {
				records[idx] = ev.settledRecord("rejected", "reason", reason)
				remaining--
				if remaining == 0 {
					ev.settlePromise(result, true, runtime.ObjectValue(runtime.NewArray(in.ArrayPrototype, records)))
				}
			})
		}
		return runtime.ObjectValue(result), nil
	})

	ev.defineMethod(ctor, "any", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		items, err := ev.iterateToSlice(argOrUndefined(args, 0), nil)
		if err != nil {
			return runtime.Undefined, err
		}
		result := runtime.NewPromiseObject(in.PromisePrototype)
		if len(items) == 0 {
			ev.settlePromise(result, false, runtime.ObjectValue(ev.newAggregateError(nil, "All promises were rejected")))
			return runtime.ObjectValue(result), nil
		}
		errs := make([]runtime.Value, len(items))
		remaining := len(items)
		settled := false
		for i, item := range items {
			idx := i
			ev.subscribeCombinator(item, func(v runtime.Value) {
				if settled {
					return
				}
				settled = true
				ev.settlePromise(result, true, v)
			}, func(reason runtime.Value) {
				if settled {
					return
				}
				errs[idx] = reason
				remaining--
				if remaining == 0 {
					settled = true
					ev.settlePromise(result, false, runtime.ObjectValue(ev.newAggregateError(errs, "All promises were rejected")))
				}
			})
		}
		return runtime.ObjectValue(result), nil
	})
}

// settledRecord builds the {status, value} or {status, reason} object
// Promise.allSettled resolves with for each input, per its fan-in contract.
func (ev *Evaluator) settledRecord(status, key string, v runtime.Value) runtime.Value {
	o := runtime.NewObject(ev.Realm.Intrinsics.ObjectPrototype)
	o.DefineOwnProperty(runtime.StringKey("status"), runtime.NewDataProperty(runtime.NewString(status), true, true, true))
	o.DefineOwnProperty(runtime.StringKey(key), runtime.NewDataProperty(v, true, true, true))
	return runtime.ObjectValue(o)
}

// subscribeCombinator adopts v as a promise (wrapping non-thenables
// immediately) and invokes onFulfil/onReject through the normal reaction
// microtask machinery, the same path Promise.prototype.then uses, so
// ordering matches spec.md §4.5/§5 exactly.
func (ev *Evaluator) subscribeCombinator(v runtime.Value, onFulfil, onReject func(runtime.Value)) {
	in := ev.Realm.Intrinsics
	p := runtime.NewPromiseObject(in.PromisePrototype)
	ev.resolvePromiseWith(p, v)

	fulfilHandler := ev.nativeFunction("", func(_ runtime.Value, a []runtime.Value) (runtime.Value, error) {
		onFulfil(argOrUndefined(a, 0))
		return runtime.Undefined, nil
	})
	rejectHandler := ev.nativeFunction("", func(_ runtime.Value, a []runtime.Value) (runtime.Value, error) {
		onReject(argOrUndefined(a, 0))
		return runtime.Undefined, nil
	})
	downstream := runtime.NewPromiseObject(in.PromisePrototype)
	fr := runtime.Reaction{Downstream: downstream, Handler: fulfilHandler}
	rr := runtime.Reaction{Downstream: downstream, Handler: rejectHandler}
	p.Promise.AddReaction(fr, rr)

	switch p.Promise.State {
	case runtime.PromiseFulfilled:
		ev.scheduleReaction(fr, true, p.Promise.Value)
	case runtime.PromiseRejected:
		ev.scheduleReaction(rr, false, p.Promise.Value)
	}
}
