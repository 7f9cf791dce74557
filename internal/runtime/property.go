package runtime

// PropertyKey is a string or symbol key into an object's property table.
// Objects keep string-keyed and symbol-keyed entries in one insertion-ordered
// sequence, matching spec.md §3's "insertion-ordered mapping" requirement,
// but iteration helpers that must exclude symbols (Object.keys et al, per
// spec.md §4.4) filter on IsSymbol.
type PropertyKey struct {
	str    string
	sym    *Symbol
	isSym  bool
}

func StringKey(s string) PropertyKey  { return PropertyKey{str: s} }
func SymbolKey(s *Symbol) PropertyKey { return PropertyKey{sym: s, isSym: true} }

func (k PropertyKey) IsSymbol() bool   { return k.isSym }
func (k PropertyKey) String() string   { return k.str }
func (k PropertyKey) Symbol() *Symbol  { return k.sym }

// Property is a property record per spec.md §3: either a data record
// (Value/Writable) or an accessor record (Get/Set), never both. The
// invariant ("an accessor record must not expose value/writable; a data
// record must not expose get/set") is enforced by IsAccessor rather than by
// the zero value, since Value's zero value is a legitimate Undefined.
type Property struct {
	Value        Value
	Get          *Object // nil if absent
	Set          *Object // nil if absent
	Writable     bool
	Enumerable   bool
	Configurable bool
	accessor     bool
}

// NewDataProperty builds a data property record.
func NewDataProperty(v Value, writable, enumerable, configurable bool) *Property {
	return &Property{Value: v, Writable: writable, Enumerable: enumerable, Configurable: configurable}
}

// NewAccessorProperty builds an accessor property record.
func NewAccessorProperty(get, set *Object, enumerable, configurable bool) *Property {
	return &Property{Get: get, Set: set, Enumerable: enumerable, Configurable: configurable, accessor: true}
}

func (p *Property) IsAccessor() bool { return p.accessor }
func (p *Property) IsData() bool     { return !p.accessor }

// Freeze forces writable=false, configurable=false per spec.md §4.4.
func (p *Property) Freeze() {
	p.Writable = false
	p.Configurable = false
}

// Seal forces configurable=false per spec.md §4.4.
func (p *Property) Seal() {
	p.Configurable = false
}
