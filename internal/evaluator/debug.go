package evaluator

import (
	"github.com/cwbudde/go-jsengine/internal/builtins"
	"github.com/cwbudde/go-jsengine/internal/runtime"
)

// evalDebugCall implements __debug(), spec.md §4.5's primitive for
// snapshotting the current frame's variables into a debug queue the host
// can observe through pkg/jsengine.Engine.DebugMessages. The snapshot is
// best-effort: values that don't serialize (functions, symbols) are simply
// omitted by StringifyJSON, same as JSON.stringify would omit them.
func (ev *Evaluator) evalDebugCall(env *runtime.Environment) (runtime.Value, error) {
	snap := env.Snapshot()
	obj := runtime.NewObject(ev.Realm.Intrinsics.ObjectPrototype)
	for name, v := range snap {
		obj.DefineOwnProperty(runtime.StringKey(name), runtime.NewDataProperty(v, true, true, true))
	}
	text, ok, err := builtins.StringifyJSON(ev.call, runtime.ObjectValue(obj))
	if err != nil {
		return runtime.Undefined, err
	}
	if ok {
		ev.Scheduler.PushDebugSnapshot([]byte(text))
	}
	return runtime.Undefined, nil
}
