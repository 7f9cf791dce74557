package runtime

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// CallHook is the function-invocation hook the evaluator supplies so
// runtime-level coercion algorithms (ToPrimitive, ToString, loose equality)
// can call back into user-level valueOf/toString/Symbol.toPrimitive methods
// without runtime importing the evaluator package.
type CallHook func(fn *Object, this Value, args []Value) (Value, error)

// Hint selects the preferred primitive kind for ToPrimitive, per spec.md §4.4.
type Hint uint8

const (
	HintDefault Hint = iota
	HintNumber
	HintString
)

// ToPrimitive implements spec.md §4.4's ToPrimitive(hint): try
// Symbol.toPrimitive, then the hint-ordered pair of valueOf/toString.
func ToPrimitive(v Value, hint Hint, wk *wellKnownSymbols, call CallHook) (Value, error) {
	if v.Kind() != KindObject {
		return v, nil
	}
	obj := v.Object()

	if exotic := obj.GetOwnPropertyThroughProto(SymbolKey(wk.ToPrimitive)); exotic != nil && exotic.IsData() && exotic.Value.Kind() == KindObject {
		hintStr := "default"
		switch hint {
		case HintNumber:
			hintStr = "number"
		case HintString:
			hintStr = "string"
		}
		return call(exotic.Value.Object(), v, []Value{NewString(hintStr)})
	}

	methods := []string{"valueOf", "toString"}
	if hint == HintString {
		methods = []string{"toString", "valueOf"}
	}
	for _, name := range methods {
		p := obj.GetOwnPropertyThroughProto(StringKey(name))
		if p == nil || !p.IsData() || p.Value.Kind() != KindObject || p.Value.Object().Function == nil {
			continue
		}
		result, err := call(p.Value.Object(), v, nil)
		if err != nil {
			return Undefined, err
		}
		if result.Kind() != KindObject {
			return result, nil
		}
	}
	return NewString("[object Object]"), nil
}

// GetOwnPropertyThroughProto walks the prototype chain looking for key,
// returning the first matching property record (own or inherited).
func (o *Object) GetOwnPropertyThroughProto(key PropertyKey) *Property {
	for cur := o; cur != nil; cur = cur.Proto {
		if p, ok := cur.props[key]; ok {
			return p
		}
	}
	return nil
}

// ToBoolean implements the standard ToBoolean coercion: falsy values are
// undefined, null, false, +0/-0/NaN, "", and 0n; everything else (including
// every object) is truthy.
func ToBoolean(v Value) bool {
	switch v.Kind() {
	case KindUndefined, KindNull:
		return false
	case KindBoolean:
		return v.Bool()
	case KindNumber:
		n := v.Number()
		return n != 0 && !isNaN(n)
	case KindBigInt:
		return v.BigInt().Sign() != 0
	case KindString:
		return v.Str() != ""
	default:
		return true
	}
}

// ToNumber implements spec.md §4.4's ToNumber algorithm.
func ToNumber(v Value, wk *wellKnownSymbols, call CallHook) (float64, error) {
	switch v.Kind() {
	case KindUndefined:
		return math.NaN(), nil
	case KindNull:
		return 0, nil
	case KindBoolean:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	case KindNumber:
		return v.Number(), nil
	case KindBigInt:
		f, _ := new(big.Float).SetInt(v.BigInt()).Float64()
		return f, nil
	case KindString:
		s := strings.TrimSpace(v.Str())
		if s == "" {
			return 0, nil
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n, nil
		}
		if n, err := strconv.ParseInt(s, 0, 64); err == nil {
			return float64(n), nil
		}
		return math.NaN(), nil
	case KindObject:
		prim, err := ToPrimitive(v, HintNumber, wk, call)
		if err != nil {
			return 0, err
		}
		if prim.Kind() == KindObject {
			return math.NaN(), nil
		}
		return ToNumber(prim, wk, call)
	default:
		return math.NaN(), nil
	}
}

// ToString implements spec.md §4.4's ToString algorithm: arrays join with
// commas (nulls/undefineds become empty), plain objects become
// "[object Object]", numbers format with the shortest round-trippable
// decimal, -0 prints as "0".
func ToString(v Value, wk *wellKnownSymbols, call CallHook) (string, error) {
	switch v.Kind() {
	case KindUndefined:
		return "undefined", nil
	case KindNull:
		return "null", nil
	case KindBoolean:
		if v.Bool() {
			return "true", nil
		}
		return "false", nil
	case KindNumber:
		return FormatNumber(v.Number()), nil
	case KindBigInt:
		return v.BigInt().String(), nil
	case KindString:
		return v.Str(), nil
	case KindSymbol:
		return "", ErrSymbolToString
	case KindObject:
		obj := v.Object()
		if obj.Class == ClassArray {
			return arrayJoin(obj, wk, call)
		}
		prim, err := ToPrimitive(v, HintString, wk, call)
		if err != nil {
			return "", err
		}
		if prim.Kind() == KindObject {
			return "[object Object]", nil
		}
		return ToString(prim, wk, call)
	default:
		return "", nil
	}
}

func arrayJoin(obj *Object, wk *wellKnownSymbols, call CallHook) (string, error) {
	if obj.Array == nil {
		return "", nil
	}
	parts := make([]string, len(obj.Array.Elements))
	for i, el := range obj.Array.Elements {
		if el.IsNullish() {
			parts[i] = ""
			continue
		}
		s, err := ToString(el, wk, call)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ","), nil
}

// ErrSymbolToString is the TypeError-shaped sentinel ToString returns for a
// Symbol operand (implicit string coercion of a Symbol always throws).
var ErrSymbolToString = &CoercionError{Message: "Cannot convert a Symbol value to a string"}

// CoercionError is a lightweight error carrying the message the evaluator
// wraps into a genuine TypeError object at the call site (runtime cannot
// allocate evaluator-level Error objects without importing the evaluator).
type CoercionError struct{ Message string }

func (e *CoercionError) Error() string { return e.Message }

// FormatNumber renders n the way ToString does: shortest round-trippable
// decimal, -0 prints as "0", non-finite values print their IEEE-754 names.
func FormatNumber(n float64) string {
	if isNaN(n) {
		return "NaN"
	}
	if math.IsInf(n, 1) {
		return "Infinity"
	}
	if math.IsInf(n, -1) {
		return "-Infinity"
	}
	if n == 0 {
		return "0"
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// StrictEquals implements spec.md §4.4's strict equality: same-type only,
// NaN !== NaN, +0 === -0.
func StrictEquals(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindUndefined, KindNull:
		return true
	case KindBoolean:
		return a.Bool() == b.Bool()
	case KindNumber:
		return a.Number() == b.Number() // NaN != NaN falls out of IEEE-754 comparison
	case KindBigInt:
		return a.BigInt().Cmp(b.BigInt()) == 0
	case KindString:
		return a.Str() == b.Str()
	case KindSymbol:
		return a.SymbolValue() == b.SymbolValue()
	case KindObject:
		return a.Object() == b.Object()
	default:
		return false
	}
}

// LooseEquals implements spec.md §4.4's 11-step loose-equality coercion.
func LooseEquals(a, b Value, wk *wellKnownSymbols, call CallHook) (bool, error) {
	if a.Kind() == b.Kind() {
		return StrictEquals(a, b), nil
	}
	if a.IsNullish() && b.IsNullish() {
		return true, nil
	}
	if a.IsNullish() || b.IsNullish() {
		return false, nil
	}
	if a.IsNumber() && b.IsString() {
		bn, err := ToNumber(b, wk, call)
		if err != nil {
			return false, err
		}
		return a.Number() == bn, nil
	}
	if a.IsString() && b.IsNumber() {
		return LooseEquals(b, a, wk, call)
	}
	if a.IsBigInt() && b.IsString() {
		n, ok := new(big.Int).SetString(strings.TrimSpace(b.Str()), 10)
		if !ok {
			return false, nil
		}
		return a.BigInt().Cmp(n) == 0, nil
	}
	if a.IsString() && b.IsBigInt() {
		return LooseEquals(b, a, wk, call)
	}
	if a.IsBoolean() {
		return LooseEquals(NewNumber(boolToFloat(a.Bool())), b, wk, call)
	}
	if b.IsBoolean() {
		return LooseEquals(a, NewNumber(boolToFloat(b.Bool())), wk, call)
	}
	if (a.IsNumber() || a.IsString() || a.IsBigInt()) && b.IsObject() {
		prim, err := ToPrimitive(b, HintDefault, wk, call)
		if err != nil {
			return false, err
		}
		return LooseEquals(a, prim, wk, call)
	}
	if a.IsObject() && (b.IsNumber() || b.IsString() || b.IsBigInt()) {
		return LooseEquals(b, a, wk, call)
	}
	if a.IsBigInt() && b.IsNumber() {
		bf := b.Number()
		if isNaN(bf) || math.IsInf(bf, 0) {
			return false, nil
		}
		af, _ := new(big.Float).SetInt(a.BigInt()).Float64()
		return af == bf, nil
	}
	if a.IsNumber() && b.IsBigInt() {
		return LooseEquals(b, a, wk, call)
	}
	return false, nil
}
