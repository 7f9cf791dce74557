package runtime

import (
	"math"
	"math/big"
	"testing"
)

func noopCall(fn *Object, this Value, args []Value) (Value, error) {
	return Undefined, nil
}

func TestSameValueNaNAndZero(t *testing.T) {
	if !SameValue(NewNumber(math.NaN()), NewNumber(math.NaN())) {
		t.Fatalf("SameValue(NaN, NaN) should be true")
	}
	if SameValue(NewNumber(0), NewNumber(math.Copysign(0, -1))) {
		t.Fatalf("SameValue(+0, -0) should be false")
	}
}

func TestStrictEqualsNaNAndZero(t *testing.T) {
	if StrictEquals(NewNumber(math.NaN()), NewNumber(math.NaN())) {
		t.Fatalf("NaN === NaN should be false")
	}
	if !StrictEquals(NewNumber(0), NewNumber(math.Copysign(0, -1))) {
		t.Fatalf("+0 === -0 should be true")
	}
}

func TestObjectPropertyInsertionOrder(t *testing.T) {
	o := NewObject(nil)
	o.DefineOwnProperty(StringKey("b"), NewDataProperty(NewNumber(2), true, true, true))
	o.DefineOwnProperty(StringKey("a"), NewDataProperty(NewNumber(1), true, true, true))
	keys := o.OwnStringKeys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Fatalf("expected insertion order [b a], got %v", keys)
	}
}

func TestObjectGetWalksPrototypeChain(t *testing.T) {
	proto := NewObject(nil)
	proto.DefineOwnProperty(StringKey("x"), NewDataProperty(NewNumber(42), true, true, true))
	child := NewObject(proto)
	v, err := child.Get(StringKey("x"), ObjectValue(child), noopCall)
	if err != nil || v.Number() != 42 {
		t.Fatalf("expected inherited x=42, got %#v err=%v", v, err)
	}
}

func TestPropertyFreezeAndSeal(t *testing.T) {
	p := NewDataProperty(NewNumber(1), true, true, true)
	p.Freeze()
	if p.Writable || p.Configurable {
		t.Fatalf("Freeze should force writable=false, configurable=false")
	}
	p2 := NewDataProperty(NewNumber(1), true, true, true)
	p2.Seal()
	if p2.Configurable || !p2.Writable {
		t.Fatalf("Seal should only force configurable=false")
	}
}

func TestEnvironmentConstBindingImmutableAfterInit(t *testing.T) {
	env := NewEnvironment(nil, EnvBlock, Strict)
	b := env.DeclareLexical("x", BindingConst)
	if b.Mutable() {
		t.Fatalf("const binding should report immutable")
	}
	b.Value = NewNumber(1)
	b.Initialized = true
	resolved, err := env.Resolve("x", nil)
	if err != nil || resolved.Binding.Value.Number() != 1 {
		t.Fatalf("got %#v err=%v", resolved, err)
	}
}

func TestEnvironmentTDZBindingUninitialized(t *testing.T) {
	env := NewEnvironment(nil, EnvBlock, Strict)
	env.DeclareLexical("y", BindingLet)
	resolved, err := env.Resolve("y", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Binding.Initialized {
		t.Fatalf("lexical binding should start uninitialized (TDZ)")
	}
}

func TestEnvironmentResolveMissingBinding(t *testing.T) {
	env := NewEnvironment(nil, EnvScript, Sloppy)
	_, err := env.Resolve("nope", nil)
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEnvironmentParentChainLookup(t *testing.T) {
	parent := NewEnvironment(nil, EnvScript, Sloppy)
	parent.DeclareVar("g").Value = NewString("global")
	child := NewEnvironment(parent, EnvBlock, Sloppy)
	resolved, err := child.Resolve("g", nil)
	if err != nil || resolved.Binding.Value.Str() != "global" {
		t.Fatalf("got %#v err=%v", resolved, err)
	}
}

func TestToNumberCoercions(t *testing.T) {
	wk := newWellKnownSymbols()
	cases := []struct {
		in   Value
		want float64
	}{
		{Undefined, math.NaN()},
		{Null, 0},
		{True, 1},
		{False, 0},
		{NewString(""), 0},
		{NewString("  42 "), 42},
		{NewString("0x10"), 16},
	}
	for _, c := range cases {
		got, err := ToNumber(c.in, wk, noopCall)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if isNaN(c.want) {
			if !isNaN(got) {
				t.Fatalf("ToNumber(%#v) = %v, want NaN", c.in, got)
			}
			continue
		}
		if got != c.want {
			t.Fatalf("ToNumber(%#v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestToStringArrayJoin(t *testing.T) {
	wk := newWellKnownSymbols()
	arr := NewArray(nil, []Value{NewNumber(1), Null, Undefined, NewNumber(3)})
	s, err := ToString(ObjectValue(arr), wk, noopCall)
	if err != nil || s != "1,,,3" {
		t.Fatalf("got %q err=%v", s, err)
	}
}

func TestFormatNumberNegativeZero(t *testing.T) {
	if got := FormatNumber(math.Copysign(0, -1)); got != "0" {
		t.Fatalf("FormatNumber(-0) = %q, want \"0\"", got)
	}
}

func TestLooseEqualsNullUndefined(t *testing.T) {
	wk := newWellKnownSymbols()
	ok, err := LooseEquals(Null, Undefined, wk, noopCall)
	if err != nil || !ok {
		t.Fatalf("null == undefined should be true, got %v err=%v", ok, err)
	}
	ok, err = LooseEquals(Null, NewNumber(0), wk, noopCall)
	if err != nil || ok {
		t.Fatalf("null == 0 should be false, got %v err=%v", ok, err)
	}
}

func TestLooseEqualsStringNumber(t *testing.T) {
	wk := newWellKnownSymbols()
	ok, err := LooseEquals(NewString("5"), NewNumber(5), wk, noopCall)
	if err != nil || !ok {
		t.Fatalf("\"5\" == 5 should be true, got %v err=%v", ok, err)
	}
}

func TestArrayDataGrowOnSet(t *testing.T) {
	a := NewArrayData(nil)
	a.Set(2, NewNumber(9))
	if a.Length() != 3 {
		t.Fatalf("expected length 3 after Set(2,...), got %d", a.Length())
	}
	v, ok := a.Get(1)
	if !ok || !v.IsUndefined() {
		t.Fatalf("expected hole at index 1 to read as undefined")
	}
}

func TestArrayDataPushPop(t *testing.T) {
	a := NewArrayData(nil)
	a.Push(NewNumber(1))
	a.Push(NewNumber(2))
	v, ok := a.Pop()
	if !ok || v.Number() != 2 || a.Length() != 1 {
		t.Fatalf("got v=%#v ok=%v len=%d", v, ok, a.Length())
	}
}

func TestCollectionDataMapInsertionOrderPreservedOnUpdate(t *testing.T) {
	m := NewMapData(false)
	m.Set(NewString("a"), NewNumber(1))
	m.Set(NewString("b"), NewNumber(2))
	m.Set(NewString("a"), NewNumber(3))
	entries := m.Entries()
	if len(entries) != 2 || entries[0][0].Str() != "a" || entries[0][1].Number() != 3 {
		t.Fatalf("got %#v", entries)
	}
}

func TestCollectionDataSetSameValueZero(t *testing.T) {
	s := NewSetData(false)
	s.Set(NewNumber(0), Undefined)
	if !s.Has(NewNumber(math.Copysign(0, -1))) {
		t.Fatalf("Set should treat +0 and -0 as the same member (SameValueZero)")
	}
}

func TestPromiseDataSettleOnce(t *testing.T) {
	p := &PromiseData{State: PromisePending}
	reaction := Reaction{Downstream: NewObject(nil)}
	p.AddReaction(reaction, reaction)
	rs := p.Settle(true, NewNumber(1))
	if len(rs) != 1 || p.State != PromiseFulfilled {
		t.Fatalf("got rs=%v state=%v", rs, p.State)
	}
	rs2 := p.Settle(false, NewNumber(2))
	if rs2 != nil || p.State != PromiseFulfilled {
		t.Fatalf("settling twice should be a no-op, got rs=%v state=%v", rs2, p.State)
	}
}

func TestErrorToStringOmitsSeparatorWhenMessageEmpty(t *testing.T) {
	if got := ErrorToString("TypeError", ""); got != "TypeError" {
		t.Fatalf("got %q", got)
	}
	if got := ErrorToString("TypeError", "bad value"); got != "TypeError: bad value" {
		t.Fatalf("got %q", got)
	}
}

func TestBufferDataDetachZerosLength(t *testing.T) {
	b := NewArrayBufferData(16)
	if b.Len() != 16 {
		t.Fatalf("expected length 16, got %d", b.Len())
	}
	b.Detach()
	if b.Len() != 0 {
		t.Fatalf("expected length 0 after detach, got %d", b.Len())
	}
}

func TestRealmDisposeReleasesArena(t *testing.T) {
	r := NewRealm()
	h := r.Arena.PutObject(NewObject(nil))
	if r.Arena.Object(h) == nil {
		t.Fatalf("expected live object before dispose")
	}
	r.Dispose()
	if r.Arena.Object(h) != nil {
		t.Fatalf("expected nil object after dispose")
	}
}

func TestBigIntStrictEquals(t *testing.T) {
	a := NewBigInt(big.NewInt(10))
	b := NewBigInt(big.NewInt(10))
	if !StrictEquals(a, b) {
		t.Fatalf("equal big.Int values should be StrictEquals")
	}
}

func TestWellKnownSymbolsAreDistinctPerRealm(t *testing.T) {
	wk1 := newWellKnownSymbols()
	wk2 := newWellKnownSymbols()
	if wk1.Iterator == wk2.Iterator {
		t.Fatalf("well-known symbols should not alias identity across realms")
	}
}

func TestFunctionExpectedArgCountStopsAtDefaultOrRest(t *testing.T) {
	fn := &FunctionData{Params: []ParamDescriptor{
		{}, {}, {Default: nil, Rest: true},
	}}
	if got := fn.ExpectedArgCount(); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}
