package evaluator

import "github.com/cwbudde/go-jsengine/internal/runtime"

// NativeFunction wraps fn as a callable JS function object under name, for
// hosts (pkg/jsengine.Engine.SetGlobalFunction) installing Go-backed
// globals from outside this package.
func (ev *Evaluator) NativeFunction(name string, fn runtime.NativeFunc) *runtime.Object {
	return ev.nativeFunction(name, fn)
}

// DefineGlobalFunction installs fn as a mutable global binding named name,
// the host-facing counterpart of bootstrap.go's defineGlobal calls.
func (ev *Evaluator) DefineGlobalFunction(name string, fn *runtime.Object) {
	ev.defineGlobal(name, runtime.ObjectValue(fn), true)
}
