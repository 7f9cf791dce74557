package evaluator

import "github.com/cwbudde/go-jsengine/internal/runtime"

// bootstrapTimers registers setTimeout/clearTimeout and setInterval/
// clearInterval as globals backed directly by ev.Scheduler, per spec.md
// §4.5's deadline-sorted macrotask queue. This package never imports
// internal/eventloop itself (Scheduler is the seam, see evaluator.go), so
// whether and when a callback fires is up to the Scheduler: the real timer
// heap fires it, while evaluator_test.go's microtask-only fake never does.
func (ev *Evaluator) bootstrapTimers() {
	ev.defineGlobal("setTimeout", runtime.ObjectValue(ev.nativeFunction("setTimeout", ev.setTimeout)), true)
	ev.defineGlobal("clearTimeout", runtime.ObjectValue(ev.nativeFunction("clearTimeout", ev.clearTimer)), true)
	// setInterval/clearInterval are Annex-B-adjacent conveniences, not part
	// of the core timer primitive spec.md names, but every host environment
	// this engine is meant to slot into (and every example in the testable
	// scenarios) expects them to exist alongside setTimeout.
	ev.defineGlobal("setInterval", runtime.ObjectValue(ev.nativeFunction("setInterval", ev.setInterval)), true)
	ev.defineGlobal("clearInterval", runtime.ObjectValue(ev.nativeFunction("clearInterval", ev.clearTimer)), true)
}

func (ev *Evaluator) timerArgs(args []runtime.Value) (*runtime.Object, float64, []runtime.Value, error) {
	fn := argOrUndefined(args, 0).Object()
	if fn == nil || fn.Function == nil {
		return nil, 0, nil, ev.throwError("TypeError", "callback is not a function")
	}
	delay := 0.0
	if len(args) > 1 && !args[1].IsUndefined() {
		d, err := ev.toNumber(args[1])
		if err != nil {
			return nil, 0, nil, err
		}
		delay = d
	}
	var extra []runtime.Value
	if len(args) > 2 {
		extra = append(extra, args[2:]...)
	}
	return fn, delay, extra, nil
}

func (ev *Evaluator) setTimeout(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	fn, delay, extra, err := ev.timerArgs(args)
	if err != nil {
		return runtime.Undefined, err
	}
	id := ev.Scheduler.EnqueueMacrotask(delay, func() {
		ev.callFunction(fn, runtime.Undefined, extra)
	})
	return runtime.NewNumber(float64(id)), nil
}

// setInterval re-enqueues itself after every firing. The scheduler mints a
// fresh macrotask id each time it's re-armed, but script only ever sees the
// id from the first registration, so cancellation is tracked through a
// shared flag keyed by that first id rather than by the scheduler's id.
func (ev *Evaluator) setInterval(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	fn, delay, extra, err := ev.timerArgs(args)
	if err != nil {
		return runtime.Undefined, err
	}
	cancelled := new(bool)
	var fire func()
	fire = func() {
		if *cancelled {
			return
		}
		ev.callFunction(fn, runtime.Undefined, extra)
		if *cancelled {
			return
		}
		ev.Scheduler.EnqueueMacrotask(delay, fire)
	}
	id := ev.Scheduler.EnqueueMacrotask(delay, fire)
	ev.intervalCancel[id] = cancelled
	return runtime.NewNumber(float64(id)), nil
}

func (ev *Evaluator) clearTimer(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	if len(args) == 0 || args[0].IsUndefined() {
		return runtime.Undefined, nil
	}
	id, err := ev.toNumber(args[0])
	if err != nil {
		return runtime.Undefined, err
	}
	n := int(id)
	ev.Scheduler.ClearMacrotask(n)
	if cancelled, ok := ev.intervalCancel[n]; ok {
		*cancelled = true
		delete(ev.intervalCancel, n)
	}
	return runtime.Undefined, nil
}
