package evaluator

import (
	"math"
	"math/big"

	"github.com/cwbudde/go-jsengine/internal/ast"
	"github.com/cwbudde/go-jsengine/internal/runtime"
)

// call is the CallHook the evaluator hands down into internal/runtime's
// coercion/property algorithms, closing over nothing but ev itself.
func (ev *Evaluator) call(fn *Object, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	return ev.callFunction(fn, this, args)
}

// Object is a local alias so call's signature matches runtime.CallHook
// without spelling out the qualified name at every use in this file.
type Object = runtime.Object

func (ev *Evaluator) evalExpression(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.NumericLiteral:
		return runtime.NewNumber(e.Value), nil
	case *ast.BigIntLiteral:
		n := new(big.Int)
		n.SetString(e.Raw, 10)
		return runtime.NewBigInt(n), nil
	case *ast.StringLiteral:
		return runtime.NewString(e.Value), nil
	case *ast.BooleanLiteral:
		return runtime.NewBoolean(e.Value), nil
	case *ast.NullLiteral:
		return runtime.Null, nil
	case *ast.Identifier:
		return ev.lookupIdentifier(e.Name, env)
	case *ast.ThisExpression:
		return ev.lookupThis(env), nil
	case *ast.TemplateLiteral:
		return ev.evalTemplateLiteral(e, env)
	case *ast.TaggedTemplateExpression:
		return ev.evalTaggedTemplate(e, env)
	case *ast.ArrayLiteral:
		return ev.evalArrayLiteral(e, env)
	case *ast.ObjectLiteral:
		return ev.evalObjectLiteral(e, env)
	case *ast.FunctionLiteral:
		return runtime.ObjectValue(ev.makeClosure(e, env)), nil
	case *ast.ClassExpression:
		return ev.evalClassExpression(e, env)
	case *ast.UnaryExpression:
		return ev.evalUnary(e, env)
	case *ast.UpdateExpression:
		return ev.evalUpdate(e, env)
	case *ast.BinaryExpression:
		return ev.evalBinary(e, env)
	case *ast.LogicalExpression:
		return ev.evalLogical(e, env)
	case *ast.ConditionalExpression:
		test, err := ev.evalExpression(e.Test, env)
		if err != nil {
			return runtime.Undefined, err
		}
		if runtime.ToBoolean(test) {
			return ev.evalExpression(e.Consequent, env)
		}
		return ev.evalExpression(e.Alternate, env)
	case *ast.SequenceExpression:
		var v runtime.Value = runtime.Undefined
		for _, x := range e.Expressions {
			var err error
			v, err = ev.evalExpression(x, env)
			if err != nil {
				return runtime.Undefined, err
			}
		}
		return v, nil
	case *ast.AssignmentExpression:
		return ev.evalAssignment(e, env)
	case *ast.MemberExpression:
		v, _, err := ev.evalMember(e, env)
		return v, err
	case *ast.CallExpression:
		return ev.evalCall(e, env)
	case *ast.NewExpression:
		return ev.evalNew(e, env)
	case *ast.SpreadElement:
		// A bare SpreadElement is only reachable as a call/array/object
		// element, all handled by their own spread-aware loops; evaluating
		// it directly just yields the spread source itself.
		return ev.evalExpression(e.Arg, env)
	case *ast.YieldExpression:
		return ev.evalYield(e, env)
	case *ast.AwaitExpression:
		return ev.evalAwait(e, env)
	case *ast.RegExpLiteral:
		return ev.newRegExp(e.Pattern, e.Flags)
	case *ast.SuperExpression:
		// Bare `super` only appears as a CallExpression callee or
		// MemberExpression object, both special-cased by their evaluators;
		// reached directly only for malformed input.
		return runtime.Undefined, ev.throwError("SyntaxError", "'super' keyword is only valid inside a class")
	default:
		return runtime.Undefined, ev.throwError("SyntaxError", "unsupported expression form")
	}
}

func (ev *Evaluator) lookupThis(env *runtime.Environment) runtime.Value {
	rb, err := env.Resolve("this", nil)
	if err != nil {
		return runtime.Undefined
	}
	return rb.Binding.Value
}

func (ev *Evaluator) lookupIdentifier(name string, env *runtime.Environment) (runtime.Value, error) {
	rb, err := env.Resolve(name, ev.unscopablesCheck)
	if err != nil {
		return runtime.Undefined, ev.throwError("ReferenceError", name+" is not defined")
	}
	if rb.Frame.Kind == runtime.EnvWith {
		return ev.getProperty(runtime.ObjectValue(rb.Frame.WithObject), runtime.StringKey(name), env)
	}
	if !rb.Binding.Initialized {
		return runtime.Undefined, ev.throwError("ReferenceError", "Cannot access '"+name+"' before initialization")
	}
	return rb.Binding.Value, nil
}

// unscopablesCheck implements the evaluator-supplied predicate
// Environment.Resolve needs to consult Symbol.unscopables on a With object,
// since only the evaluator can invoke the property getter that exposes it.
func (ev *Evaluator) unscopablesCheck(withObj *runtime.Object, name string) bool {
	unscopables, err := withObj.Get(runtime.SymbolKey(ev.Realm.WellKnown.Unscopables), runtime.ObjectValue(withObj), ev.call)
	if err != nil || unscopables.Kind() != runtime.KindObject {
		return false
	}
	v, err := unscopables.Object().Get(runtime.StringKey(name), unscopables, ev.call)
	if err != nil {
		return false
	}
	return runtime.ToBoolean(v)
}

func (ev *Evaluator) evalTemplateLiteral(t *ast.TemplateLiteral, env *runtime.Environment) (runtime.Value, error) {
	out := t.Quasis[0].Cooked
	for i, expr := range t.Expressions {
		v, err := ev.evalExpression(expr, env)
		if err != nil {
			return runtime.Undefined, err
		}
		s, err := ev.toString(v)
		if err != nil {
			return runtime.Undefined, err
		}
		out += s
		out += t.Quasis[i+1].Cooked
	}
	return runtime.NewString(out), nil
}

func (ev *Evaluator) evalTaggedTemplate(t *ast.TaggedTemplateExpression, env *runtime.Environment) (runtime.Value, error) {
	tagVal, err := ev.evalExpression(t.Tag, env)
	if err != nil {
		return runtime.Undefined, err
	}
	fn := tagVal.Object()
	if fn == nil || fn.Function == nil {
		return runtime.Undefined, ev.throwError("TypeError", "tag is not a function")
	}
	strings := make([]runtime.Value, len(t.Quasi.Quasis))
	raw := make([]runtime.Value, len(t.Quasi.Quasis))
	for i, q := range t.Quasi.Quasis {
		strings[i] = runtime.NewString(q.Cooked)
		raw[i] = runtime.NewString(q.Raw)
	}
	stringsArr := runtime.NewArray(ev.Realm.Intrinsics.ArrayPrototype, strings)
	rawArr := runtime.NewArray(ev.Realm.Intrinsics.ArrayPrototype, raw)
	stringsArr.DefineOwnProperty(runtime.StringKey("raw"), runtime.NewDataProperty(runtime.ObjectValue(rawArr), false, false, false))
	args := []runtime.Value{runtime.ObjectValue(stringsArr)}
	for _, expr := range t.Quasi.Expressions {
		v, err := ev.evalExpression(expr, env)
		if err != nil {
			return runtime.Undefined, err
		}
		args = append(args, v)
	}
	return ev.callFunction(fn, runtime.Undefined, args)
}

func (ev *Evaluator) evalArrayLiteral(a *ast.ArrayLiteral, env *runtime.Environment) (runtime.Value, error) {
	var elems []runtime.Value
	for _, el := range a.Elements {
		if el == nil {
			elems = append(elems, runtime.Undefined)
			continue
		}
		if spread, ok := el.(*ast.SpreadElement); ok {
			v, err := ev.evalExpression(spread.Arg, env)
			if err != nil {
				return runtime.Undefined, err
			}
			items, err := ev.iterateToSlice(v, env)
			if err != nil {
				return runtime.Undefined, err
			}
			elems = append(elems, items...)
			continue
		}
		v, err := ev.evalExpression(el, env)
		if err != nil {
			return runtime.Undefined, err
		}
		elems = append(elems, v)
	}
	return runtime.ObjectValue(runtime.NewArray(ev.Realm.Intrinsics.ArrayPrototype, elems)), nil
}

func (ev *Evaluator) evalObjectLiteral(o *ast.ObjectLiteral, env *runtime.Environment) (runtime.Value, error) {
	obj := runtime.NewObject(ev.Realm.Intrinsics.ObjectPrototype)
	for _, p := range o.Properties {
		if p.Kind == PropSpread {
			v, err := ev.evalExpression(p.Value, env)
			if err != nil {
				return runtime.Undefined, err
			}
			if src := v.Object(); src != nil {
				for _, k := range src.OwnEnumerableStringKeys() {
					pv, err := src.Get(runtime.StringKey(k), v, ev.call)
					if err != nil {
						return runtime.Undefined, err
					}
					obj.DefineOwnProperty(runtime.StringKey(k), runtime.NewDataProperty(pv, true, true, true))
				}
			}
			continue
		}
		key, err := ev.propertyKeyOf(p.Key, p.Computed, env)
		if err != nil {
			return runtime.Undefined, err
		}
		switch p.Kind {
		case PropGet:
			fn := ev.makeClosure(p.Value.(*ast.FunctionLiteral), env)
			existing := obj.GetOwnProperty(key)
			var setFn *runtime.Object
			if existing != nil && existing.IsAccessor() {
				setFn = existing.Set
			}
			obj.DefineOwnProperty(key, runtime.NewAccessorProperty(fn, setFn, true, true))
		case PropSet:
			fn := ev.makeClosure(p.Value.(*ast.FunctionLiteral), env)
			existing := obj.GetOwnProperty(key)
			var getFn *runtime.Object
			if existing != nil && existing.IsAccessor() {
				getFn = existing.Get
			}
			obj.DefineOwnProperty(key, runtime.NewAccessorProperty(getFn, fn, true, true))
		case PropMethod:
			fn := ev.makeClosure(p.Value.(*ast.FunctionLiteral), env)
			fn.Function.HomeObject = obj
			obj.DefineOwnProperty(key, runtime.NewDataProperty(runtime.ObjectValue(fn), true, true, true))
		default:
			v, err := ev.evalExpression(p.Value, env)
			if err != nil {
				return runtime.Undefined, err
			}
			obj.DefineOwnProperty(key, runtime.NewDataProperty(v, true, true, true))
		}
	}
	return runtime.ObjectValue(obj), nil
}

// PropSpread/PropGet/PropSet/PropMethod alias ast's PropertyKind constants
// so this file's switch reads without the ast. qualifier on every case.
const (
	PropSpread = ast.PropSpread
	PropGet    = ast.PropGet
	PropSet    = ast.PropSet
	PropMethod = ast.PropMethod
)

func (ev *Evaluator) propertyKeyOf(keyExpr ast.Expression, computed bool, env *runtime.Environment) (runtime.PropertyKey, error) {
	if computed {
		v, err := ev.evalExpression(keyExpr, env)
		if err != nil {
			return runtime.PropertyKey{}, err
		}
		if v.Kind() == runtime.KindSymbol {
			return runtime.SymbolKey(v.SymbolValue()), nil
		}
		s, err := ev.toString(v)
		if err != nil {
			return runtime.PropertyKey{}, err
		}
		return runtime.StringKey(s), nil
	}
	switch k := keyExpr.(type) {
	case *ast.Identifier:
		return runtime.StringKey(k.Name), nil
	case *ast.StringLiteral:
		return runtime.StringKey(k.Value), nil
	case *ast.NumericLiteral:
		return runtime.StringKey(runtime.FormatNumber(k.Value)), nil
	case *ast.PrivateName:
		return runtime.StringKey(k.Name), nil
	default:
		return runtime.PropertyKey{}, ev.throwError("SyntaxError", "invalid property key")
	}
}

func (ev *Evaluator) evalUnary(u *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, error) {
	if u.Operator == "typeof" {
		if ident, ok := u.Operand.(*ast.Identifier); ok {
			if _, err := env.Resolve(ident.Name, ev.unscopablesCheck); err != nil {
				return runtime.NewString("undefined"), nil
			}
		}
		v, err := ev.evalExpression(u.Operand, env)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.NewString(ev.typeOf(v)), nil
	}
	if u.Operator == "delete" {
		if m, ok := u.Operand.(*ast.MemberExpression); ok {
			objV, err := ev.evalExpression(m.Object, env)
			if err != nil {
				return runtime.Undefined, err
			}
			key, err := ev.memberKey(m, env)
			if err != nil {
				return runtime.Undefined, err
			}
			if o := objV.Object(); o != nil {
				return runtime.NewBoolean(o.DeleteOwnProperty(key)), nil
			}
		}
		return runtime.True, nil
	}
	v, err := ev.evalExpression(u.Operand, env)
	if err != nil {
		return runtime.Undefined, err
	}
	switch u.Operator {
	case "void":
		return runtime.Undefined, nil
	case "!":
		return runtime.NewBoolean(!runtime.ToBoolean(v)), nil
	case "-":
		if v.Kind() == runtime.KindBigInt {
			return runtime.NewBigInt(new(big.Int).Neg(v.BigInt())), nil
		}
		n, err := ev.toNumber(v)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.NewNumber(-n), nil
	case "+":
		n, err := ev.toNumber(v)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.NewNumber(n), nil
	case "~":
		if v.Kind() == runtime.KindBigInt {
			return runtime.NewBigInt(new(big.Int).Not(v.BigInt())), nil
		}
		n, err := ev.toNumber(v)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.NewNumber(float64(^toInt32(n))), nil
	default:
		return runtime.Undefined, ev.throwError("SyntaxError", "unknown unary operator "+u.Operator)
	}
}

func (ev *Evaluator) typeOf(v runtime.Value) string {
	switch v.Kind() {
	case runtime.KindUndefined:
		return "undefined"
	case runtime.KindNull:
		return "object"
	case runtime.KindBoolean:
		return "boolean"
	case runtime.KindNumber:
		return "number"
	case runtime.KindBigInt:
		return "bigint"
	case runtime.KindString:
		return "string"
	case runtime.KindSymbol:
		return "symbol"
	case runtime.KindObject:
		if v.Object().Function != nil {
			return "function"
		}
		return "object"
	default:
		return "undefined"
	}
}

func toInt32(n float64) int32 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return int32(int64(n))
}

func toUint32(n float64) uint32 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return uint32(int64(n))
}

func (ev *Evaluator) evalUpdate(u *ast.UpdateExpression, env *runtime.Environment) (runtime.Value, error) {
	old, err := ev.evalExpression(u.Operand, env)
	if err != nil {
		return runtime.Undefined, err
	}
	var updated runtime.Value
	if old.Kind() == runtime.KindBigInt {
		delta := big.NewInt(1)
		if u.Operator == "--" {
			delta = big.NewInt(-1)
		}
		updated = runtime.NewBigInt(new(big.Int).Add(old.BigInt(), delta))
	} else {
		n, err := ev.toNumber(old)
		if err != nil {
			return runtime.Undefined, err
		}
		old = runtime.NewNumber(n)
		if u.Operator == "++" {
			updated = runtime.NewNumber(n + 1)
		} else {
			updated = runtime.NewNumber(n - 1)
		}
	}
	if err := ev.assignToPattern(u.Operand, updated, env); err != nil {
		return runtime.Undefined, err
	}
	if u.Prefix {
		return updated, nil
	}
	return old, nil
}

func (ev *Evaluator) evalBinary(b *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	if b.Operator == "instanceof" {
		left, err := ev.evalExpression(b.Left, env)
		if err != nil {
			return runtime.Undefined, err
		}
		right, err := ev.evalExpression(b.Right, env)
		if err != nil {
			return runtime.Undefined, err
		}
		return ev.instanceOf(left, right)
	}
	if b.Operator == "in" {
		left, err := ev.evalExpression(b.Left, env)
		if err != nil {
			return runtime.Undefined, err
		}
		right, err := ev.evalExpression(b.Right, env)
		if err != nil {
			return runtime.Undefined, err
		}
		o := right.Object()
		if o == nil {
			return runtime.Undefined, ev.throwError("TypeError", "Cannot use 'in' operator on a non-object")
		}
		key, err := ev.toPropertyKey(left)
		if err != nil {
			return runtime.Undefined, err
		}
		for cur := o; cur != nil; cur = cur.Proto {
			if cur.HasOwnProperty(key) {
				return runtime.True, nil
			}
		}
		return runtime.False, nil
	}
	left, err := ev.evalExpression(b.Left, env)
	if err != nil {
		return runtime.Undefined, err
	}
	right, err := ev.evalExpression(b.Right, env)
	if err != nil {
		return runtime.Undefined, err
	}
	return ev.applyBinaryOp(b.Operator, left, right)
}

func (ev *Evaluator) applyBinaryOp(op string, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case "===":
		return runtime.NewBoolean(runtime.StrictEquals(left, right)), nil
	case "!==":
		return runtime.NewBoolean(!runtime.StrictEquals(left, right)), nil
	case "==":
		eq, err := ev.looseEquals(left, right)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.NewBoolean(eq), nil
	case "!=":
		eq, err := ev.looseEquals(left, right)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.NewBoolean(!eq), nil
	case "+":
		return ev.add(left, right)
	case "-", "*", "/", "%", "**":
		return ev.arithmetic(op, left, right)
	case "&", "|", "^", "<<", ">>", ">>>":
		return ev.bitwise(op, left, right)
	case "<", ">", "<=", ">=":
		return ev.relational(op, left, right)
	default:
		return runtime.Undefined, ev.throwError("SyntaxError", "unknown binary operator "+op)
	}
}

func (ev *Evaluator) add(left, right runtime.Value) (runtime.Value, error) {
	lp, err := runtime.ToPrimitive(left, runtime.HintDefault, ev.Realm.WellKnown, ev.call)
	if err != nil {
		return runtime.Undefined, ev.wrapCoercionErr(err)
	}
	rp, err := runtime.ToPrimitive(right, runtime.HintDefault, ev.Realm.WellKnown, ev.call)
	if err != nil {
		return runtime.Undefined, ev.wrapCoercionErr(err)
	}
	if lp.Kind() == runtime.KindString || rp.Kind() == runtime.KindString {
		ls, err := ev.toString(lp)
		if err != nil {
			return runtime.Undefined, err
		}
		rs, err := ev.toString(rp)
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.NewString(ls + rs), nil
	}
	if lp.Kind() == runtime.KindBigInt && rp.Kind() == runtime.KindBigInt {
		return runtime.NewBigInt(new(big.Int).Add(lp.BigInt(), rp.BigInt())), nil
	}
	ln, err := ev.toNumber(lp)
	if err != nil {
		return runtime.Undefined, err
	}
	rn, err := ev.toNumber(rp)
	if err != nil {
		return runtime.Undefined, err
	}
	return runtime.NewNumber(ln + rn), nil
}

func (ev *Evaluator) arithmetic(op string, left, right runtime.Value) (runtime.Value, error) {
	if left.Kind() == runtime.KindBigInt && right.Kind() == runtime.KindBigInt {
		l, r := left.BigInt(), right.BigInt()
		res := new(big.Int)
		switch op {
		case "-":
			res.Sub(l, r)
		case "*":
			res.Mul(l, r)
		case "/":
			if r.Sign() == 0 {
				return runtime.Undefined, ev.throwError("RangeError", "Division by zero")
			}
			res.Quo(l, r)
		case "%":
			if r.Sign() == 0 {
				return runtime.Undefined, ev.throwError("RangeError", "Division by zero")
			}
			res.Rem(l, r)
		case "**":
			res.Exp(l, r, nil)
		}
		return runtime.NewBigInt(res), nil
	}
	ln, err := ev.toNumber(left)
	if err != nil {
		return runtime.Undefined, err
	}
	rn, err := ev.toNumber(right)
	if err != nil {
		return runtime.Undefined, err
	}
	switch op {
	case "-":
		return runtime.NewNumber(ln - rn), nil
	case "*":
		return runtime.NewNumber(ln * rn), nil
	case "/":
		return runtime.NewNumber(ln / rn), nil
	case "%":
		return runtime.NewNumber(math.Mod(ln, rn)), nil
	case "**":
		return runtime.NewNumber(math.Pow(ln, rn)), nil
	default:
		return runtime.Undefined, ev.throwError("SyntaxError", "unknown arithmetic operator "+op)
	}
}

func (ev *Evaluator) bitwise(op string, left, right runtime.Value) (runtime.Value, error) {
	ln, err := ev.toNumber(left)
	if err != nil {
		return runtime.Undefined, err
	}
	rn, err := ev.toNumber(right)
	if err != nil {
		return runtime.Undefined, err
	}
	l, r := toInt32(ln), toInt32(rn)
	switch op {
	case "&":
		return runtime.NewNumber(float64(l & r)), nil
	case "|":
		return runtime.NewNumber(float64(l | r)), nil
	case "^":
		return runtime.NewNumber(float64(l ^ r)), nil
	case "<<":
		return runtime.NewNumber(float64(l << (uint32(r) & 31))), nil
	case ">>":
		return runtime.NewNumber(float64(l >> (uint32(r) & 31))), nil
	case ">>>":
		return runtime.NewNumber(float64(toUint32(ln) >> (toUint32(rn) & 31))), nil
	default:
		return runtime.Undefined, ev.throwError("SyntaxError", "unknown bitwise operator "+op)
	}
}

func (ev *Evaluator) relational(op string, left, right runtime.Value) (runtime.Value, error) {
	lp, err := runtime.ToPrimitive(left, runtime.HintNumber, ev.Realm.WellKnown, ev.call)
	if err != nil {
		return runtime.Undefined, ev.wrapCoercionErr(err)
	}
	rp, err := runtime.ToPrimitive(right, runtime.HintNumber, ev.Realm.WellKnown, ev.call)
	if err != nil {
		return runtime.Undefined, ev.wrapCoercionErr(err)
	}
	if lp.Kind() == runtime.KindString && rp.Kind() == runtime.KindString {
		ls, rs := lp.Str(), rp.Str()
		switch op {
		case "<":
			return runtime.NewBoolean(ls < rs), nil
		case ">":
			return runtime.NewBoolean(ls > rs), nil
		case "<=":
			return runtime.NewBoolean(ls <= rs), nil
		default:
			return runtime.NewBoolean(ls >= rs), nil
		}
	}
	ln, err := ev.toNumber(lp)
	if err != nil {
		return runtime.Undefined, err
	}
	rn, err := ev.toNumber(rp)
	if err != nil {
		return runtime.Undefined, err
	}
	if math.IsNaN(ln) || math.IsNaN(rn) {
		return runtime.False, nil
	}
	switch op {
	case "<":
		return runtime.NewBoolean(ln < rn), nil
	case ">":
		return runtime.NewBoolean(ln > rn), nil
	case "<=":
		return runtime.NewBoolean(ln <= rn), nil
	default:
		return runtime.NewBoolean(ln >= rn), nil
	}
}

func (ev *Evaluator) instanceOf(left, right runtime.Value) (runtime.Value, error) {
	ctor := right.Object()
	if ctor == nil || ctor.Function == nil {
		return runtime.Undefined, ev.throwError("TypeError", "Right-hand side of 'instanceof' is not callable")
	}
	hasInstance, err := ctor.Get(runtime.SymbolKey(ev.Realm.WellKnown.HasInstance), right, ev.call)
	if err == nil && hasInstance.Kind() == runtime.KindObject && hasInstance.Object().Function != nil {
		res, err := ev.callFunction(hasInstance.Object(), right, []runtime.Value{left})
		if err != nil {
			return runtime.Undefined, err
		}
		return runtime.NewBoolean(runtime.ToBoolean(res)), nil
	}
	obj := left.Object()
	if obj == nil {
		return runtime.False, nil
	}
	proto := ctor.Function.ConstructorPrototype
	for cur := obj.Proto; cur != nil; cur = cur.Proto {
		if cur == proto {
			return runtime.True, nil
		}
	}
	return runtime.False, nil
}

func (ev *Evaluator) evalLogical(l *ast.LogicalExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := ev.evalExpression(l.Left, env)
	if err != nil {
		return runtime.Undefined, err
	}
	switch l.Operator {
	case "&&":
		if !runtime.ToBoolean(left) {
			return left, nil
		}
	case "||":
		if runtime.ToBoolean(left) {
			return left, nil
		}
	case "??":
		if !left.IsNullish() {
			return left, nil
		}
	}
	return ev.evalExpression(l.Right, env)
}

func (ev *Evaluator) toNumber(v runtime.Value) (float64, error) {
	n, err := runtime.ToNumber(v, ev.Realm.WellKnown, ev.call)
	if err != nil {
		return 0, ev.wrapCoercionErr(err)
	}
	return n, nil
}

func (ev *Evaluator) toString(v runtime.Value) (string, error) {
	s, err := runtime.ToString(v, ev.Realm.WellKnown, ev.call)
	if err != nil {
		return "", ev.wrapCoercionErr(err)
	}
	return s, nil
}

func (ev *Evaluator) looseEquals(a, b runtime.Value) (bool, error) {
	eq, err := runtime.LooseEquals(a, b, ev.Realm.WellKnown, ev.call)
	if err != nil {
		return false, ev.wrapCoercionErr(err)
	}
	return eq, nil
}

// wrapCoercionErr turns a runtime.CoercionError sentinel into a real
// TypeError, the translation point coercion.go's doc comment on
// CoercionError describes runtime needing the evaluator for (runtime cannot allocate
// Error objects without importing this package).
func (ev *Evaluator) wrapCoercionErr(err error) error {
	if err == nil {
		return nil
	}
	if ce, ok := err.(*runtime.CoercionError); ok {
		return ev.throwError("TypeError", ce.Message)
	}
	return err
}

func (ev *Evaluator) toPropertyKey(v runtime.Value) (runtime.PropertyKey, error) {
	if v.Kind() == runtime.KindSymbol {
		return runtime.SymbolKey(v.SymbolValue()), nil
	}
	s, err := ev.toString(v)
	if err != nil {
		return runtime.PropertyKey{}, err
	}
	return runtime.StringKey(s), nil
}

