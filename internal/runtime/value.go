// Package runtime holds the value model the evaluator operates over: the
// tagged-union Value, property records, environments, the realm, and the
// arena that owns every heap object for one engine instance. It generalizes
// internal/jsonvalue's Kind+union-struct shape from a JSON-only value to the
// full set of ECMAScript value kinds named in spec.md §3.
package runtime

import "math/big"

// Kind is the tag of a Value's active payload.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindBigInt
	KindString
	KindSymbol
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindBigInt:
		return "bigint"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a tagged union mirroring spec.md §3's Data Model. It intentionally
// avoids interface{} for the primitive payloads, the same tradeoff
// internal/jsonvalue.Value makes, so comparisons and hashing stay cheap and
// explicit rather than routed through Go's dynamic dispatch.
type Value struct {
	kind Kind

	b      bool
	num    float64
	bigint *big.Int
	str    string
	sym    *Symbol
	obj    *Object
}

// Undefined is the unique sentinel distinct from Null, per spec.md §3.
var Undefined = Value{kind: KindUndefined}

// Null is the JS null value.
var Null = Value{kind: KindNull}

// True and False are the two boolean values.
var True = Value{kind: KindBoolean, b: true}
var False = Value{kind: KindBoolean, b: false}

// NewBoolean returns the canonical True/False value for b.
func NewBoolean(b bool) Value {
	if b {
		return True
	}
	return False
}

// NewNumber returns a Number value.
func NewNumber(n float64) Value { return Value{kind: KindNumber, num: n} }

// NewBigInt returns a BigInt value. The big.Int is not copied; callers must
// not mutate it after handing it to NewBigInt.
func NewBigInt(n *big.Int) Value { return Value{kind: KindBigInt, bigint: n} }

// NewString returns a String value. Go strings already hold UTF-8; the
// lexer/evaluator treat indices as UTF-16 code unit offsets per spec.md §3
// via the utf16 helpers in coercion.go, rather than re-encoding storage.
func NewString(s string) Value { return Value{kind: KindString, str: s} }

// NewSymbol wraps a *Symbol as a Value.
func NewSymbol(s *Symbol) Value { return Value{kind: KindSymbol, sym: s} }

// ObjectValue wraps an *Object as a Value. Named distinctly from
// object.go's NewObject(proto) (which allocates a fresh *Object) since the
// two constructors take the same argument type for different purposes.
func ObjectValue(o *Object) Value { return Value{kind: KindObject, obj: o} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsUndefined() bool { return v.kind == KindUndefined }
func (v Value) IsNull() bool      { return v.kind == KindNull }
func (v Value) IsNullish() bool   { return v.kind == KindUndefined || v.kind == KindNull }
func (v Value) IsBoolean() bool   { return v.kind == KindBoolean }
func (v Value) IsNumber() bool    { return v.kind == KindNumber }
func (v Value) IsBigInt() bool    { return v.kind == KindBigInt }
func (v Value) IsString() bool    { return v.kind == KindString }
func (v Value) IsSymbol() bool    { return v.kind == KindSymbol }
func (v Value) IsObject() bool    { return v.kind == KindObject }

// Bool returns the boolean payload; zero value if v is not a Boolean.
func (v Value) Bool() bool { return v.b }

// Number returns the float64 payload; zero value if v is not a Number.
func (v Value) Number() float64 { return v.num }

// BigInt returns the *big.Int payload; nil if v is not a BigInt.
func (v Value) BigInt() *big.Int { return v.bigint }

// Str returns the string payload; empty if v is not a String.
func (v Value) Str() string { return v.str }

// SymbolValue returns the *Symbol payload; nil if v is not a Symbol.
func (v Value) SymbolValue() *Symbol { return v.sym }

// Object returns the *Object payload; nil if v is not an Object.
func (v Value) Object() *Object { return v.obj }

// SameValue implements the SameValue algorithm (used by Object.is): like
// strict equality but NaN equals NaN and +0 does not equal -0.
func SameValue(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindUndefined, KindNull:
		return true
	case KindBoolean:
		return a.b == b.b
	case KindNumber:
		if isNaN(a.num) && isNaN(b.num) {
			return true
		}
		if a.num == 0 && b.num == 0 {
			return isNegZero(a.num) == isNegZero(b.num)
		}
		return a.num == b.num
	case KindBigInt:
		return a.bigint.Cmp(b.bigint) == 0
	case KindString:
		return a.str == b.str
	case KindSymbol:
		return a.sym == b.sym
	case KindObject:
		return a.obj == b.obj
	default:
		return false
	}
}

func isNaN(f float64) bool    { return f != f }
func isNegZero(f float64) bool { return f == 0 && (1/f) < 0 }
