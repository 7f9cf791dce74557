package evaluator

import (
	"github.com/cwbudde/go-jsengine/internal/builtins"
	"github.com/cwbudde/go-jsengine/internal/runtime"
)

// bootstrapJSON wires the JSON global's parse/stringify onto
// internal/builtins' gjson/sjson-backed implementation, the one hook
// surface spec.md §1 calls out by name.
func (ev *Evaluator) bootstrapJSON() {
	in := ev.Realm.Intrinsics
	obj := runtime.NewObject(in.ObjectPrototype)
	ev.defineMethod(obj, "parse", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		text, err := ev.toString(argOrUndefined(args, 0))
		if err != nil {
			return runtime.Undefined, err
		}
		v, err := builtins.ParseJSON(in, text)
		if err != nil {
			if pe, ok := err.(*builtins.ParseError); ok {
				return runtime.Undefined, ev.throwError("SyntaxError", pe.Message)
			}
			return runtime.Undefined, err
		}
		return v, nil
	})
	ev.defineMethod(obj, "stringify", func(this runtime.Value, args []runtime.Value) (runtime.Value, error) {
		text, ok, err := builtins.StringifyJSON(ev.call, argOrUndefined(args, 0))
		if err != nil {
			return runtime.Undefined, err
		}
		if !ok {
			return runtime.Undefined, nil
		}
		return runtime.NewString(text), nil
	})
	ev.defineGlobal("JSON", runtime.ObjectValue(obj), true)
}
