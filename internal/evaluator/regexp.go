package evaluator

import "github.com/cwbudde/go-jsengine/internal/runtime"

// newRegExp compiles a literal /pattern/flags into a RegExp-classed value,
// translating a compile failure into a catchable SyntaxError instead of a
// bare Go error.
func (ev *Evaluator) newRegExp(pattern, flags string) (runtime.Value, error) {
	data, err := runtime.CompileRegExp(pattern, flags)
	if err != nil {
		return runtime.Undefined, ev.throwError("SyntaxError", err.Error())
	}
	return runtime.ObjectValue(runtime.NewRegExpObject(ev.Realm.Intrinsics.RegExpPrototype, data)), nil
}
