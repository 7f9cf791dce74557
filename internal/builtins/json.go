// Package builtins holds the narrow set of host-facing hooks spec.md §1
// calls out by name (JSON.parse/JSON.stringify) — the pieces of a standard
// library that are small, stable, and worth backing with a real JSON
// engine (tidwall/gjson + tidwall/sjson) rather than hand-rolled parsing,
// without pulling the rest of a general-purpose standard library into the
// core. internal/evaluator wires these functions onto the global JSON
// object at bootstrap; this package never imports internal/evaluator
// itself (CallFunc is the seam, mirroring internal/runtime.Object.Get's
// own call-hook parameter).
package builtins

import (
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/cwbudde/go-jsengine/internal/runtime"
)

// CallFunc is the evaluator's function-invocation hook, threaded through so
// ToJSON/getter access can call back into user code without an import
// cycle — the same pattern internal/runtime.Object.Get already uses.
type CallFunc func(fn *runtime.Object, this runtime.Value, args []runtime.Value) (runtime.Value, error)

// ParseError is returned by ParseJSON for malformed input, surfaced by the
// evaluator as a thrown SyntaxError per spec.md §7's parse-error row.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string { return e.Message }

// ParseJSON implements JSON.parse's grammar using gjson's parser, building
// plain runtime.Value trees (objects via in.ObjectPrototype, arrays via
// in.ArrayPrototype) from the parsed result.
func ParseJSON(in *runtime.Intrinsics, text string) (runtime.Value, error) {
	if !gjson.Valid(text) {
		return runtime.Undefined, &ParseError{Message: "Unexpected token in JSON"}
	}
	return gjsonToValue(in, gjson.Parse(text)), nil
}

func gjsonToValue(in *runtime.Intrinsics, r gjson.Result) runtime.Value {
	switch r.Type {
	case gjson.Null:
		return runtime.Null
	case gjson.False:
		return runtime.NewBoolean(false)
	case gjson.True:
		return runtime.NewBoolean(true)
	case gjson.Number:
		return runtime.NewNumber(r.Num)
	case gjson.String:
		return runtime.NewString(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			var elems []runtime.Value
			r.ForEach(func(_, v gjson.Result) bool {
				elems = append(elems, gjsonToValue(in, v))
				return true
			})
			return runtime.ObjectValue(runtime.NewArray(in.ArrayPrototype, elems))
		}
		obj := runtime.NewObject(in.ObjectPrototype)
		r.ForEach(func(k, v gjson.Result) bool {
			obj.DefineOwnProperty(runtime.StringKey(k.Str), runtime.NewDataProperty(gjsonToValue(in, v), true, true, true))
			return true
		})
		return runtime.ObjectValue(obj)
	default:
		return runtime.Undefined
	}
}

// StringifyJSON implements the core of JSON.stringify: walk v (following
// property getters through call), building the output text incrementally
// with sjson.SetRaw rather than assembling a Go interface{} tree first.
// Replacer functions/arrays and the indent argument are Non-goals-adjacent
// conveniences this hook surface doesn't cover. Reports ok=false when v
// itself would stringify to "undefined" (a bare function or undefined at
// the top level), matching JSON.stringify's own "returns undefined" case.
func StringifyJSON(call CallFunc, v runtime.Value) (text string, ok bool, err error) {
	raw, ok, err := stringifyValue(call, v)
	if err != nil || !ok {
		return "", ok, err
	}
	return raw, true, nil
}

func stringifyValue(call CallFunc, v runtime.Value) (string, bool, error) {
	switch v.Kind() {
	case runtime.KindUndefined:
		return "", false, nil
	case runtime.KindSymbol:
		return "", false, nil
	case runtime.KindNull:
		return "null", true, nil
	case runtime.KindBoolean:
		if v.Bool() {
			return "true", true, nil
		}
		return "false", true, nil
	case runtime.KindNumber:
		n := v.Number()
		if n != n { // NaN
			return "null", true, nil
		}
		return strconv.FormatFloat(n, 'g', -1, 64), true, nil
	case runtime.KindString:
		return quoteJSONString(v.Str()), true, nil
	case runtime.KindObject:
		return stringifyObject(call, v.Object())
	default:
		return "", false, nil
	}
}

func stringifyObject(call CallFunc, obj *runtime.Object) (string, bool, error) {
	if obj == nil {
		return "null", true, nil
	}
	if toJSON, err := obj.Get(runtime.StringKey("toJSON"), runtime.ObjectValue(obj), call); err == nil {
		if fn := toJSON.Object(); fn != nil && fn.Function != nil {
			replaced, err := call(fn, runtime.ObjectValue(obj), nil)
			if err != nil {
				return "", false, err
			}
			return stringifyValue(call, replaced)
		}
	}
	if obj.Function != nil {
		return "", false, nil
	}
	if obj.Class == runtime.ClassArray {
		doc := "[]"
		n := obj.Array.Length()
		for i := 0; i < n; i++ {
			elem, _ := obj.Array.Get(i)
			raw, ok, err := stringifyValue(call, elem)
			if err != nil {
				return "", false, err
			}
			if !ok {
				raw = "null" // JSON.stringify serializes array holes/undefined as null
			}
			updated, err := sjson.SetRaw(doc, fmt.Sprintf("%d", i), raw)
			if err != nil {
				return "", false, err
			}
			doc = updated
		}
		return doc, true, nil
	}

	keys := obj.OwnEnumerableStringKeys() // already insertion order, per spec.md §4.4
	doc := "{}"
	for _, key := range keys {
		prop, err := obj.Get(runtime.StringKey(key), runtime.ObjectValue(obj), call)
		if err != nil {
			return "", false, err
		}
		raw, ok, err := stringifyValue(call, prop)
		if err != nil {
			return "", false, err
		}
		if !ok {
			continue // undefined/function-valued properties are omitted, not nulled
		}
		updated, err := sjson.SetRaw(doc, sjsonEscapedKey(key), raw)
		if err != nil {
			return "", false, err
		}
		doc = updated
	}
	return doc, true, nil
}

// quoteJSONString renders s as a properly escaped JSON string literal by
// routing it through sjson.Set (which owns string escaping) and lifting
// the quoted result back out with gjson, instead of reimplementing JSON
// string-escaping rules by hand.
func quoteJSONString(s string) string {
	doc, err := sjson.Set(`{}`, "v", s)
	if err != nil {
		return strconv.Quote(s)
	}
	return gjson.Get(doc, "v").Raw
}

// sjsonEscapedKey escapes sjson path metacharacters (".", "*", "?") in a
// property name so arbitrary JS identifiers/strings can be used as object
// keys without sjson misreading them as path syntax.
func sjsonEscapedKey(key string) string {
	out := make([]byte, 0, len(key))
	for i := 0; i < len(key); i++ {
		switch key[i] {
		case '.', '*', '?', '\\':
			out = append(out, '\\')
		}
		out = append(out, key[i])
	}
	return string(out)
}
