package runtime

import "fmt"

// Mode is an environment record's strictness mode, per spec.md §3.
type Mode uint8

const (
	Sloppy Mode = iota
	Strict
	SloppyAnnexB
)

func (m Mode) String() string {
	switch m {
	case Strict:
		return "Strict"
	case SloppyAnnexB:
		return "SloppyAnnexB"
	default:
		return "Sloppy"
	}
}

// EnvKind classifies an environment record's origin, per spec.md §3. No
// tracing event carries it; nothing in this module emits scope traces.
type EnvKind uint8

const (
	EnvScript EnvKind = iota
	EnvFunction
	EnvBlock
	EnvModule
	EnvWith
	EnvCatch
	EnvEval
)

func (k EnvKind) String() string {
	switch k {
	case EnvFunction:
		return "Function"
	case EnvBlock:
		return "Block"
	case EnvModule:
		return "Module"
	case EnvWith:
		return "With"
	case EnvCatch:
		return "Catch"
	case EnvEval:
		return "Eval"
	default:
		return "Script"
	}
}

// BindingKind distinguishes how a name was declared, governing mutability
// and hoisting behaviour.
type BindingKind uint8

const (
	BindingVar BindingKind = iota
	BindingLet
	BindingConst
	BindingClass
	BindingParameter
	BindingFunction
)

// Binding is one entry in an environment's lexical or var table, per
// spec.md §3: kind, mutability, TDZ initialisation state.
type Binding struct {
	Kind        BindingKind
	Value       Value
	Initialized bool // false while in the temporal dead zone
}

// Mutable reports whether this binding may be reassigned after
// initialization (const bindings, once initialized, may never be
// reassigned — spec.md §3 invariant).
func (b *Binding) Mutable() bool { return b.Kind != BindingConst }

// Environment is one frame of the scope chain, per spec.md §3: a parent
// pointer, mode flag, kind, and two binding tables (lexical and var).
type Environment struct {
	Parent *Environment
	Mode   Mode
	Kind   EnvKind

	lexical map[string]*Binding
	vars    map[string]*Binding

	// WithObject is non-nil only for EnvWith frames: lookups consult this
	// object's properties (respecting Symbol.unscopables) before the
	// frame's own bindings, per spec.md §4.4.
	WithObject *Object
}

// NewEnvironment allocates a fresh environment frame.
func NewEnvironment(parent *Environment, kind EnvKind, mode Mode) *Environment {
	return &Environment{
		Parent:  parent,
		Kind:    kind,
		Mode:    mode,
		lexical: make(map[string]*Binding),
		vars:    make(map[string]*Binding),
	}
}

// NewWithEnvironment allocates a With-scope frame bound to obj.
func NewWithEnvironment(parent *Environment, obj *Object) *Environment {
	e := NewEnvironment(parent, EnvWith, parent.EffectiveMode())
	e.WithObject = obj
	return e
}

// EffectiveMode returns this frame's mode, inheriting from the parent when
// unset is not applicable (environments always carry an explicit mode set
// at construction; this accessor exists so With-frames can inherit it).
func (e *Environment) EffectiveMode() Mode { return e.Mode }

// DeclareLexical creates an uninitialized (TDZ) let/const/class binding.
func (e *Environment) DeclareLexical(name string, kind BindingKind) *Binding {
	b := &Binding{Kind: kind}
	e.lexical[name] = b
	return b
}

// DeclareVar creates (or returns the existing) var/function binding, hoisted
// to this frame's var table. Redeclaration of `var` is idempotent per
// ECMAScript hoisting semantics.
func (e *Environment) DeclareVar(name string) *Binding {
	if b, ok := e.vars[name]; ok {
		return b
	}
	b := &Binding{Kind: BindingVar, Value: Undefined, Initialized: true}
	e.vars[name] = b
	return b
}

// DeclareFunction re-seats a hoisted Annex B function binding at each
// execution, per spec.md §4.4: "The hoisted definition is re-seated at each
// execution so redeclarations of non-configurable globals succeed."
func (e *Environment) DeclareFunction(name string, fn Value) *Binding {
	b := &Binding{Kind: BindingFunction, Value: fn, Initialized: true}
	e.vars[name] = b
	return b
}

// OwnLexical returns this frame's own lexical binding for name, or nil.
func (e *Environment) OwnLexical(name string) *Binding { return e.lexical[name] }

// OwnVar returns this frame's own var binding for name, or nil.
func (e *Environment) OwnVar(name string) *Binding { return e.vars[name] }

// Snapshot returns every initialized binding owned directly by this frame
// (not its ancestors), keyed by name. It backs the __debug() primitive's
// "snapshot the current frame's variables" behaviour from spec.md §4.5;
// TDZ bindings are omitted since they carry no observable value yet.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.lexical)+len(e.vars))
	for name, b := range e.vars {
		if b.Initialized {
			out[name] = b.Value
		}
	}
	for name, b := range e.lexical {
		if b.Initialized {
			out[name] = b.Value
		}
	}
	return out
}

// ErrNotFound is returned by Resolve when no frame in the chain binds name.
var ErrNotFound = fmt.Errorf("binding not found")

// ResolvedBinding pairs a binding with the frame that owns it, needed by
// assignment to know which frame's const-ness/TDZ applies.
type ResolvedBinding struct {
	Binding *Binding
	Frame   *Environment
}

// Resolve walks the parent chain per spec.md §4.4's Variable lookup
// algorithm, consulting With-object properties first (via unscopablesCheck)
// before a frame's own bindings. unscopablesCheck reports whether name is
// listed truthily under Symbol.unscopables on the With object, in which
// case this frame is skipped entirely for that lookup — the evaluator
// supplies this predicate since it alone can invoke property getters.
func (e *Environment) Resolve(name string, unscopablesCheck func(withObj *Object, name string) bool) (*ResolvedBinding, error) {
	for f := e; f != nil; f = f.Parent {
		if f.Kind == EnvWith && f.WithObject != nil {
			if f.WithObject.HasOwnProperty(StringKey(name)) {
				if unscopablesCheck == nil || !unscopablesCheck(f.WithObject, name) {
					// With-scope bindings are represented by a synthetic,
					// always-initialized var binding the evaluator
					// refreshes from/to the object on read/write.
					return &ResolvedBinding{Binding: &Binding{Kind: BindingVar, Initialized: true}, Frame: f}, nil
				}
			}
		}
		if b, ok := f.lexical[name]; ok {
			return &ResolvedBinding{Binding: b, Frame: f}, nil
		}
		if b, ok := f.vars[name]; ok {
			return &ResolvedBinding{Binding: b, Frame: f}, nil
		}
	}
	return nil, ErrNotFound
}
