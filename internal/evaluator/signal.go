package evaluator

import "github.com/cwbudde/go-jsengine/internal/runtime"

// Statement and expression evaluation both return (runtime.Value, error).
// Ordinary Go errors mean an internal failure; a JS-level abrupt
// completion — throw, break, continue, return — is represented instead by
// one of the four signal types below, propagated up through the same error
// return the way the teacher's interpreter threads a control value back
// through its eval return, just typed as a Go error instead of a sentinel
// Value variant (our Value is a concrete struct, not an interface, so it
// cannot carry its own "this is a signal" tag the way the teacher's could).

// ThrowSignal carries a thrown JS value up to the nearest catch handler or,
// failing that, out of EvalProgram as an uncaught exception.
type ThrowSignal struct{ Value runtime.Value }

func (s *ThrowSignal) Error() string { return "uncaught exception" }

// BreakSignal unwinds to the nearest enclosing loop or switch whose label
// matches (or, when Label is empty, the nearest unlabeled one).
type BreakSignal struct{ Label string }

func (s *BreakSignal) Error() string { return "break" }

// ContinueSignal unwinds to the nearest enclosing loop whose label matches
// (or, when Label is empty, the nearest unlabeled one), then continues it.
type ContinueSignal struct{ Label string }

func (s *ContinueSignal) Error() string { return "continue" }

// ReturnSignal unwinds to the function call boundary, carrying the
// returned value.
type ReturnSignal struct{ Value runtime.Value }

func (s *ReturnSignal) Error() string { return "return" }

// throwError builds a ThrowSignal wrapping a constructed Error object of
// the given native error kind (e.g. "TypeError", "RangeError").
func (ev *Evaluator) throwError(kind, message string) error {
	proto := ev.Realm.Intrinsics.ErrorSubPrototypes[kind]
	if proto == nil {
		proto = ev.Realm.Intrinsics.ErrorPrototype
	}
	obj := runtime.NewError(proto, kind, message)
	return &ThrowSignal{Value: runtime.ObjectValue(obj)}
}
