package runtime

import "fmt"

// Symbol is a unique-identity value with an optional description, per
// spec.md §3. Equality is pointer identity; two symbols with the same
// description are still distinct.
type Symbol struct {
	Description string
	wellKnown   string // non-empty for the pre-interned well-known symbols
}

func (s *Symbol) String() string {
	if s == nil {
		return "Symbol()"
	}
	return fmt.Sprintf("Symbol(%s)", s.Description)
}

// NewSymbol allocates a fresh, uniquely-identified symbol.
func NewUniqueSymbol(description string) *Symbol {
	return &Symbol{Description: description}
}

// Well-known symbols, pre-interned once per realm (spec.md §3). Stored on
// the Realm so multiple engine instances do not alias identity across realms.
type wellKnownSymbols struct {
	Iterator      *Symbol
	AsyncIterator *Symbol
	Unscopables   *Symbol
	ToPrimitive   *Symbol
	ToStringTag   *Symbol
	HasInstance   *Symbol
}

func newWellKnownSymbols() *wellKnownSymbols {
	mk := func(name string) *Symbol {
		return &Symbol{Description: "Symbol." + name, wellKnown: name}
	}
	return &wellKnownSymbols{
		Iterator:      mk("iterator"),
		AsyncIterator: mk("asyncIterator"),
		Unscopables:   mk("unscopables"),
		ToPrimitive:   mk("toPrimitive"),
		ToStringTag:   mk("toStringTag"),
		HasInstance:   mk("hasInstance"),
	}
}
