package runtime

// ModuleRecord is one resolved-and-evaluated module's namespace, cached by
// resolved specifier in the Realm's module registry (spec.md §3/§4.4).
type ModuleRecord struct {
	Specifier string
	Namespace *Object // own properties are the live-binding named exports, plus "default"
	Evaluated bool
}

// ModuleLoader resolves and loads module source text. The realm stores it in
// Loader, but nothing in this module invokes it: the evaluator rejects an
// import declaration as an unsupported statement form.
type ModuleLoader func(specifier, referrer string) (resolved string, source string, err error)

// Intrinsics holds the root constructors/prototypes every object in the
// realm ultimately chains up to, per spec.md §3 ("process-wide holder of
// the root intrinsics").
type Intrinsics struct {
	ObjectPrototype   *Object
	FunctionPrototype *Object
	ArrayPrototype    *Object
	StringPrototype   *Object
	NumberPrototype   *Object
	BooleanPrototype  *Object
	SymbolPrototype   *Object
	BigIntPrototype   *Object
	ErrorPrototype    *Object
	// ErrorSubPrototypes holds TypeError.prototype, RangeError.prototype, etc.
	ErrorSubPrototypes map[string]*Object
	RegExpPrototype    *Object
	DatePrototype      *Object
	MapPrototype       *Object
	SetPrototype       *Object
	WeakMapPrototype   *Object
	WeakSetPrototype   *Object
	PromisePrototype   *Object
	GeneratorPrototype *Object
	ArrayBufferPrototype *Object
	DataViewPrototype    *Object
	TypedArrayPrototype  *Object

	// Constructors, keyed by name, so global-object wiring and
	// `instanceof`/species lookups can find them uniformly.
	Constructors map[string]*Object
}

// Realm is the process-wide holder spec.md §3 describes: root intrinsics,
// the global object, the module registry, and the module loader callback.
// Lifecycle: one realm per engine instance, torn down when the engine is
// disposed (Dispose releases the Arena as one unit).
type Realm struct {
	Arena      *Arena
	Intrinsics *Intrinsics
	WellKnown  *wellKnownSymbols
	Global     *Object

	modules map[string]*ModuleRecord
	Loader  ModuleLoader

	// EnableAnnexBFunctionExtensions mirrors the engine option named in
	// spec.md §4.4; defaults true.
	EnableAnnexBFunctionExtensions bool
}

// NewRealm allocates a realm with a fresh arena and an empty (caller must
// populate) global object. Intrinsic wiring (prototypes/constructors) is the
// evaluator's bootstrap responsibility, not the runtime package's, since it
// requires native function bodies the runtime layer does not define.
func NewRealm() *Realm {
	arena := NewArena()
	global := NewObject(nil)
	arena.PutObject(global)
	return &Realm{
		Arena:                          arena,
		Intrinsics:                     &Intrinsics{Constructors: make(map[string]*Object), ErrorSubPrototypes: make(map[string]*Object)},
		WellKnown:                      newWellKnownSymbols(),
		Global:                         global,
		modules:                        make(map[string]*ModuleRecord),
		EnableAnnexBFunctionExtensions: true,
	}
}

// LookupModule returns the cached module record for a resolved specifier, if any.
func (r *Realm) LookupModule(resolved string) (*ModuleRecord, bool) {
	m, ok := r.modules[resolved]
	return m, ok
}

// RegisterModule caches a module record under its resolved specifier for
// LookupModule. Nothing in this module calls it, so no record is ever cached.
func (r *Realm) RegisterModule(m *ModuleRecord) {
	r.modules[m.Specifier] = m
}

// Dispose tears down the realm: the arena and every dependent structure are
// released as one, per spec.md §3. No finalizers run user code.
func (r *Realm) Dispose() {
	r.Arena.Release()
	r.modules = nil
	r.Global = nil
}
