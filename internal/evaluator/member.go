package evaluator

import (
	"github.com/cwbudde/go-jsengine/internal/ast"
	"github.com/cwbudde/go-jsengine/internal/runtime"
)

// evalMember evaluates a MemberExpression, returning both the property
// value and the base object it was read off of (the receiver a following
// CallExpression needs for `this`, e.g. `obj.method()`).
func (ev *Evaluator) evalMember(m *ast.MemberExpression, env *runtime.Environment) (runtime.Value, runtime.Value, error) {
	if _, ok := m.Object.(*ast.SuperExpression); ok {
		return ev.evalSuperMember(m, env)
	}
	base, err := ev.evalExpression(m.Object, env)
	if err != nil {
		return runtime.Undefined, runtime.Undefined, err
	}
	if m.Optional && base.IsNullish() {
		return runtime.Undefined, base, nil
	}
	key, err := ev.memberKey(m, env)
	if err != nil {
		return runtime.Undefined, runtime.Undefined, err
	}
	v, err := ev.getProperty(base, key, env)
	return v, base, err
}

func (ev *Evaluator) evalSuperMember(m *ast.MemberExpression, env *runtime.Environment) (runtime.Value, runtime.Value, error) {
	home := ev.lookupHomeObject(env)
	this := ev.lookupThis(env)
	if home == nil || home.Proto == nil {
		return runtime.Undefined, this, ev.throwError("SyntaxError", "'super' keyword is unexpected here")
	}
	key, err := ev.memberKey(m, env)
	if err != nil {
		return runtime.Undefined, this, err
	}
	v, err := home.Proto.Get(key, this, ev.call)
	return v, this, err
}

// lookupHomeObject walks up to find the nearest enclosing method's
// HomeObject, stored as a synthetic binding named "%homeObject%" in the
// function's call environment (see callable.go's newCallEnvironment).
func (ev *Evaluator) lookupHomeObject(env *runtime.Environment) *runtime.Object {
	rb, err := env.Resolve(homeObjectBindingName, nil)
	if err != nil {
		return nil
	}
	return rb.Binding.Value.Object()
}

const homeObjectBindingName = "%homeObject%"

func (ev *Evaluator) memberKey(m *ast.MemberExpression, env *runtime.Environment) (runtime.PropertyKey, error) {
	if m.Computed {
		v, err := ev.evalExpression(m.Property, env)
		if err != nil {
			return runtime.PropertyKey{}, err
		}
		return ev.toPropertyKey(v)
	}
	return ev.propertyKeyOf(m.Property, false, env)
}

// getProperty reads key off v, per spec.md §4.4: strings index by UTF-16
// code unit for numeric keys and expose "length"; arrays resolve dense
// indices through ArrayData before falling back to the ordinary property
// table; everything else goes through Object.Get's prototype walk.
func (ev *Evaluator) getProperty(v runtime.Value, key runtime.PropertyKey, env *runtime.Environment) (runtime.Value, error) {
	switch v.Kind() {
	case runtime.KindUndefined, runtime.KindNull:
		return runtime.Undefined, ev.throwError("TypeError", "Cannot read properties of "+ev.typeOf(v)+" (reading '"+key.String()+"')")
	case runtime.KindString:
		return ev.getStringProperty(v.Str(), key)
	case runtime.KindObject:
		obj := v.Object()
		if obj.Class == runtime.ClassArray && !key.IsSymbol() {
			if key.String() == "length" {
				return runtime.NewNumber(float64(obj.Array.Length())), nil
			}
			if idx, ok := arrayIndex(key.String()); ok {
				if val, found := obj.Array.Get(idx); found {
					return val, nil
				}
				return runtime.Undefined, nil
			}
		}
		return obj.Get(key, v, ev.call)
	default:
		proto := ev.prototypeFor(v)
		if proto != nil {
			return proto.Get(key, v, ev.call)
		}
		return runtime.Undefined, nil
	}
}

func (ev *Evaluator) prototypeFor(v runtime.Value) *runtime.Object {
	switch v.Kind() {
	case runtime.KindNumber:
		return ev.Realm.Intrinsics.NumberPrototype
	case runtime.KindBoolean:
		return ev.Realm.Intrinsics.BooleanPrototype
	case runtime.KindBigInt:
		return ev.Realm.Intrinsics.BigIntPrototype
	case runtime.KindSymbol:
		return ev.Realm.Intrinsics.SymbolPrototype
	default:
		return nil
	}
}

func (ev *Evaluator) getStringProperty(s string, key runtime.PropertyKey) (runtime.Value, error) {
	if key.IsSymbol() {
		return ev.Realm.Intrinsics.StringPrototype.Get(key, runtime.NewString(s), ev.call)
	}
	if key.String() == "length" {
		return runtime.NewNumber(float64(len(utf16Units(s)))), nil
	}
	if idx, ok := arrayIndex(key.String()); ok {
		units := utf16Units(s)
		if idx < 0 || idx >= len(units) {
			return runtime.Undefined, nil
		}
		return runtime.NewString(string(units[idx])), nil
	}
	return ev.Realm.Intrinsics.StringPrototype.Get(key, runtime.NewString(s), ev.call)
}

// arrayIndex reports whether s is a canonical array index string ("0",
// "1", "23", ...), per spec.md §4.4's CanonicalNumericIndexString.
func arrayIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for i, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		if i == 0 && r == '0' && len(s) > 1 {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// setProperty writes value at key on v, with the same array fast path
// getProperty uses; a primitive receiver (a string included) throws a
// TypeError.
func (ev *Evaluator) setProperty(v runtime.Value, key runtime.PropertyKey, value runtime.Value) error {
	obj := v.Object()
	if obj == nil {
		return ev.throwError("TypeError", "Cannot set properties of "+ev.typeOf(v))
	}
	if obj.Class == runtime.ClassArray && !key.IsSymbol() {
		if key.String() == "length" {
			n, err := ev.toNumber(value)
			if err != nil {
				return err
			}
			obj.Array.SetLength(int(n))
			return nil
		}
		if idx, ok := arrayIndex(key.String()); ok {
			obj.Array.Set(idx, value)
			return nil
		}
	}
	_, err := obj.Set(key, value, obj, ev.call)
	return err
}

func (ev *Evaluator) evalAssignment(a *ast.AssignmentExpression, env *runtime.Environment) (runtime.Value, error) {
	if a.Operator == "=" {
		v, err := ev.evalExpression(a.Value, env)
		if err != nil {
			return runtime.Undefined, err
		}
		if err := ev.assignToPattern(a.Target, v, env); err != nil {
			return runtime.Undefined, err
		}
		return v, nil
	}
	target, ok := a.Target.(ast.Expression)
	if !ok {
		return runtime.Undefined, ev.throwError("SyntaxError", "invalid compound assignment target")
	}
	cur, err := ev.evalExpression(target, env)
	if err != nil {
		return runtime.Undefined, err
	}
	switch a.Operator {
	case "&&=":
		if !runtime.ToBoolean(cur) {
			return cur, nil
		}
	case "||=":
		if runtime.ToBoolean(cur) {
			return cur, nil
		}
	case "??=":
		if !cur.IsNullish() {
			return cur, nil
		}
	}
	rhs, err := ev.evalExpression(a.Value, env)
	if err != nil {
		return runtime.Undefined, err
	}
	var result runtime.Value
	switch a.Operator {
	case "&&=", "||=", "??=":
		result = rhs
	default:
		op := a.Operator[:len(a.Operator)-1] // "+=" -> "+"
		result, err = ev.applyBinaryOp(op, cur, rhs)
		if err != nil {
			return runtime.Undefined, err
		}
	}
	if err := ev.assignToPattern(a.Target, result, env); err != nil {
		return runtime.Undefined, err
	}
	return result, nil
}

// assignToPattern assigns value into target, which is either a plain
// reference (Identifier/MemberExpression, for `=` on a previously declared
// binding or `+=` et al.) or a destructuring pattern (for `[a, b] = ...`/
// `{a, b} = ...`). Unlike bindPattern (used by declarations), this never
// creates new bindings — every leaf must already exist.
func (ev *Evaluator) assignToPattern(target ast.Node, value runtime.Value, env *runtime.Environment) error {
	switch t := target.(type) {
	case *ast.Identifier:
		return ev.assignIdentifier(t.Name, value, env)
	case *ast.MemberExpression:
		return ev.assignMember(t, value, env)
	case *ast.AssignmentPattern:
		if value.IsUndefined() {
			dv, err := ev.evalExpression(t.Default, env)
			if err != nil {
				return err
			}
			value = dv
		}
		return ev.assignToPattern(t.Target, value, env)
	case *ast.ArrayPattern:
		items, err := ev.iterateToSlice(value, env)
		if err != nil {
			return err
		}
		for i, el := range t.Elements {
			if el == nil {
				continue
			}
			if rest, ok := el.(*ast.RestElement); ok {
				var tail []runtime.Value
				if i < len(items) {
					tail = items[i:]
				}
				restArr := runtime.ObjectValue(runtime.NewArray(ev.Realm.Intrinsics.ArrayPrototype, tail))
				if err := ev.assignToPattern(rest.Target, restArr, env); err != nil {
					return err
				}
				break
			}
			var v runtime.Value = runtime.Undefined
			if i < len(items) {
				v = items[i]
			}
			if err := ev.assignToPattern(el, v, env); err != nil {
				return err
			}
		}
		return nil
	case *ast.ObjectPattern:
		seen := map[string]bool{}
		for _, prop := range t.Properties {
			key, err := ev.propertyKeyOf(prop.Key, prop.Computed, env)
			if err != nil {
				return err
			}
			seen[key.String()] = true
			v, err := ev.getProperty(value, key, env)
			if err != nil {
				return err
			}
			if err := ev.assignToPattern(prop.Target, v, env); err != nil {
				return err
			}
		}
		if t.Rest != nil {
			restObj := runtime.NewObject(ev.Realm.Intrinsics.ObjectPrototype)
			if obj := value.Object(); obj != nil {
				for _, k := range obj.OwnEnumerableStringKeys() {
					if seen[k] {
						continue
					}
					v, err := obj.Get(runtime.StringKey(k), value, ev.call)
					if err != nil {
						return err
					}
					restObj.DefineOwnProperty(runtime.StringKey(k), runtime.NewDataProperty(v, true, true, true))
				}
			}
			if err := ev.assignToPattern(t.Rest.Target, runtime.ObjectValue(restObj), env); err != nil {
				return err
			}
		}
		return nil
	case *ast.RestElement:
		return ev.assignToPattern(t.Target, value, env)
	default:
		return ev.throwError("ReferenceError", "invalid assignment target")
	}
}

func (ev *Evaluator) assignIdentifier(name string, value runtime.Value, env *runtime.Environment) error {
	rb, err := env.Resolve(name, ev.unscopablesCheck)
	if err != nil {
		if env.EffectiveMode() == runtime.Strict {
			return ev.throwError("ReferenceError", name+" is not defined")
		}
		// Sloppy-mode implicit global creation, per spec.md §4.4 Annex B.
		b := ev.Global.DeclareVar(name)
		b.Value = value
		b.Initialized = true
		return nil
	}
	if rb.Frame.Kind == runtime.EnvWith {
		return ev.setProperty(runtime.ObjectValue(rb.Frame.WithObject), runtime.StringKey(name), value)
	}
	if !rb.Binding.Mutable() && rb.Binding.Initialized {
		return ev.throwError("TypeError", "Assignment to constant variable.")
	}
	rb.Binding.Value = value
	rb.Binding.Initialized = true
	return nil
}

func (ev *Evaluator) assignMember(m *ast.MemberExpression, value runtime.Value, env *runtime.Environment) error {
	if _, ok := m.Object.(*ast.SuperExpression); ok {
		this := ev.lookupThis(env)
		key, err := ev.memberKey(m, env)
		if err != nil {
			return err
		}
		return ev.setProperty(this, key, value)
	}
	base, err := ev.evalExpression(m.Object, env)
	if err != nil {
		return err
	}
	key, err := ev.memberKey(m, env)
	if err != nil {
		return err
	}
	return ev.setProperty(base, key, value)
}

// iterateToSlice materializes every value an iterable produces, used by
// spread, destructuring, yield*, and for-of. Arrays and
// strings take a direct fast path; anything else goes through the
// Symbol.iterator protocol's next()/done/value shape.
func (ev *Evaluator) iterateToSlice(v runtime.Value, env *runtime.Environment) ([]runtime.Value, error) {
	if v.Kind() == runtime.KindString {
		var out []runtime.Value
		for _, u := range utf16Units(v.Str()) {
			out = append(out, runtime.NewString(string(u)))
		}
		return out, nil
	}
	obj := v.Object()
	if obj == nil {
		return nil, ev.throwError("TypeError", ev.typeOf(v)+" is not iterable")
	}
	if obj.Class == runtime.ClassArray {
		out := make([]runtime.Value, obj.Array.Length())
		for i := range out {
			out[i], _ = obj.Array.Get(i)
		}
		return out, nil
	}
	iterFnV, err := obj.Get(runtime.SymbolKey(ev.Realm.WellKnown.Iterator), v, ev.call)
	if err != nil {
		return nil, err
	}
	iterFn := iterFnV.Object()
	if iterFn == nil || iterFn.Function == nil {
		return nil, ev.throwError("TypeError", "value is not iterable")
	}
	iterator, err := ev.callFunction(iterFn, v, nil)
	if err != nil {
		return nil, err
	}
	iterObj := iterator.Object()
	if iterObj == nil {
		return nil, ev.throwError("TypeError", "iterator result is not an object")
	}
	var out []runtime.Value
	for {
		nextFnV, err := iterObj.Get(runtime.StringKey("next"), iterator, ev.call)
		if err != nil {
			return nil, err
		}
		nextFn := nextFnV.Object()
		if nextFn == nil || nextFn.Function == nil {
			return nil, ev.throwError("TypeError", "iterator.next is not a function")
		}
		res, err := ev.callFunction(nextFn, iterator, nil)
		if err != nil {
			return nil, err
		}
		resObj := res.Object()
		if resObj == nil {
			return nil, ev.throwError("TypeError", "iterator result is not an object")
		}
		done, err := resObj.Get(runtime.StringKey("done"), res, ev.call)
		if err != nil {
			return nil, err
		}
		if runtime.ToBoolean(done) {
			break
		}
		val, err := resObj.Get(runtime.StringKey("value"), res, ev.call)
		if err != nil {
			return nil, err
		}
		out = append(out, val)
	}
	return out, nil
}

// utf16Units splits s into its UTF-16 code units' string forms, per
// spec.md §3's "indices are UTF-16 code unit offsets" rule. Astral
// characters (outside the BMP) split into a surrogate pair, matching how
// JS string indexing actually behaves.
func utf16Units(s string) []rune {
	var out []rune
	for _, r := range s {
		if r > 0xFFFF {
			r -= 0x10000
			out = append(out, rune(0xD800+(r>>10)), rune(0xDC00+(r&0x3FF)))
			continue
		}
		out = append(out, r)
	}
	return out
}
