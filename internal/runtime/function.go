package runtime

import "github.com/cwbudde/go-jsengine/internal/ast"

// ThisMode selects how a function resolves `this` at call time, per
// spec.md §3's Function value description.
type ThisMode uint8

const (
	ThisLexical ThisMode = iota // arrow functions: captured, never rebound
	ThisStrict                  // strict functions: this is exactly the call receiver
	ThisSloppyGlobal            // sloppy functions: undefined/null receiver coerces to globalThis
)

// ParamDescriptor describes one formal parameter: its binding pattern (for
// destructuring), an optional default-value initializer expression, and
// whether it is the trailing rest parameter. Patterns/defaults are IR nodes,
// evaluated by the evaluator at call time against the fresh call environment.
type ParamDescriptor struct {
	Pattern ast.Node
	Default ast.Expression
	Rest    bool
}

// NativeFunc is the signature of a host-implemented callable: receiver,
// arguments, and the realm's allocator/throw hooks are reached through the
// closure the host builds it with.
type NativeFunc func(this Value, args []Value) (Value, error)

// FunctionData is the internal slot populated on ClassFunction/
// ClassBoundFunction objects, per spec.md §3's three Function value
// variants: closure, native, and bound.
type FunctionData struct {
	Name   string
	Params []ParamDescriptor
	Body   ast.Node // function body IR; nil for native functions

	// Closure variant.
	ClosureEnv *Environment
	HomeObject *Object // for super lookups
	ThisMode   ThisMode
	IsAsync    bool
	IsGenerator bool
	Strict     bool

	// Native variant (Body == nil, ClosureEnv == nil).
	Native NativeFunc

	// Bound variant.
	BoundTarget *Object
	BoundThis   Value
	BoundArgs   []Value

	// Constructor linkage: the object assigned to Function.prototype, used
	// as the [[Prototype]] of instances created via `new`.
	ConstructorPrototype *Object
}

// IsNative reports whether this function has no IR body (host-implemented).
func (f *FunctionData) IsNative() bool { return f.Native != nil }

// IsBound reports whether this function wraps another via Function.prototype.bind.
func (f *FunctionData) IsBound() bool { return f.BoundTarget != nil }

// ExpectedArgCount returns the function's `.length`: the count of
// leading parameters before the first one with a default or the rest
// parameter, per the standard Function.length algorithm.
func (f *FunctionData) ExpectedArgCount() int {
	n := 0
	for _, p := range f.Params {
		if p.Rest || p.Default != nil {
			break
		}
		n++
	}
	return n
}
