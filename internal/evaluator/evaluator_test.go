package evaluator

import (
	"testing"

	"github.com/cwbudde/go-jsengine/internal/ast"
	"github.com/cwbudde/go-jsengine/internal/cps"
	"github.com/cwbudde/go-jsengine/internal/lexer"
	"github.com/cwbudde/go-jsengine/internal/parser"
	"github.com/cwbudde/go-jsengine/internal/runtime"
)

// testScheduler is a minimal FIFO microtask queue, enough to drain the
// reaction chains promise-returning tests need without pulling in
// internal/eventloop's timer machinery.
type testScheduler struct {
	micro []func()
}

func (s *testScheduler) EnqueueMicrotask(fn func()) { s.micro = append(s.micro, fn) }
func (s *testScheduler) EnqueueMacrotask(float64, func()) int { return 0 }
func (s *testScheduler) ClearMacrotask(int)                   {}
func (s *testScheduler) PushDebugSnapshot([]byte)             {}

func (s *testScheduler) drain() {
	for len(s.micro) > 0 {
		fn := s.micro[0]
		s.micro = s.micro[1:]
		fn()
	}
}

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New(src)
	p := parser.New(l, src, "test.js")
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, p.Errors())
	}
	if cps.NeedsTransformation(prog) {
		prog = cps.Transform(prog)
	}
	return prog
}

// run parses and evaluates src against a fresh Evaluator, draining
// microtasks once after the top-level statements complete so promise
// reactions scheduled synchronously (no timers involved) get a chance to
// settle before the test inspects results.
func run(t *testing.T, src string) (runtime.Value, *Evaluator) {
	t.Helper()
	sched := &testScheduler{}
	ev := New(sched)
	v, err := ev.EvalProgram(parseProgram(t, src))
	if err != nil {
		t.Fatalf("eval error for %q: %v", src, err)
	}
	sched.drain()
	return v, ev
}

func runExpectThrow(t *testing.T, src string) error {
	t.Helper()
	sched := &testScheduler{}
	ev := New(sched)
	_, err := ev.EvalProgram(parseProgram(t, src))
	if err == nil {
		t.Fatalf("expected a thrown error for %q, got none", src)
	}
	return err
}

func TestArithmeticAndCoercion(t *testing.T) {
	tests := []struct {
		src      string
		expected float64
	}{
		{"1 + 2", 3},
		{"10 - 4", 6},
		{"3 * 4", 12},
		{"10 / 4", 2.5},
		{"10 % 3", 1},
		{"2 ** 10", 1024},
		{"'5' - 2", 3},
	}
	for _, tt := range tests {
		v, _ := run(t, tt.src)
		if v.Kind() != runtime.KindNumber || v.Number() != tt.expected {
			t.Errorf("%q: got %v, want %v", tt.src, v, tt.expected)
		}
	}
}

func TestStringConcatenationCoercion(t *testing.T) {
	v, _ := run(t, "1 + '2'")
	if v.Kind() != runtime.KindString || v.Str() != "12" {
		t.Errorf("1 + '2': got %v, want string \"12\"", v)
	}
}

func TestClosuresAndScoping(t *testing.T) {
	src := `
		function makeCounter() {
			let n = 0;
			return function() { n = n + 1; return n; };
		}
		let c = makeCounter();
		c();
		c();
		c();
	`
	v, _ := run(t, src)
	if v.Kind() != runtime.KindNumber || v.Number() != 3 {
		t.Errorf("expected counter at 3, got %v", v)
	}
}

func TestDestructuringAssignmentAndDeclaration(t *testing.T) {
	src := `
		let [a, , b, ...rest] = [1, 2, 3, 4, 5];
		let { x, y: renamed, ...others } = { x: 10, y: 20, z: 30 };
		a + b + rest.length + x + renamed + others.z;
	`
	v, _ := run(t, src)
	// a=1 b=3 rest=[4,5] (len 2) x=10 renamed=20 others.z=30 -> 1+3+2+10+20+30
	if v.Kind() != runtime.KindNumber || v.Number() != 66 {
		t.Errorf("expected 66, got %v", v)
	}
}

func TestClassesInheritanceAndSuper(t *testing.T) {
	src := `
		class Animal {
			constructor(name) { this.name = name; }
			speak() { return this.name + " makes a sound"; }
		}
		class Dog extends Animal {
			constructor(name) { super(name); }
			speak() { return super.speak() + ", specifically a bark"; }
		}
		let d = new Dog("Rex");
		d.speak();
	`
	v, _ := run(t, src)
	want := "Rex makes a sound, specifically a bark"
	if v.Kind() != runtime.KindString || v.Str() != want {
		t.Errorf("got %v, want %q", v, want)
	}
}

func TestClassFieldsStaticAndInstance(t *testing.T) {
	src := `
		class Counter {
			count = 0;
			static total = 0;
			bump() { this.count = this.count + 1; Counter.total = Counter.total + 1; return this.count; }
		}
		let a = new Counter();
		let b = new Counter();
		a.bump();
		a.bump();
		b.bump();
		a.count + b.count + Counter.total;
	`
	v, _ := run(t, src)
	if v.Kind() != runtime.KindNumber || v.Number() != 6 {
		t.Errorf("got %v, want 6 (a.count=2 b.count=1 total=3)", v)
	}
}

func TestGeneratorNextAndDelegation(t *testing.T) {
	src := `
		function* inner() { yield 2; yield 3; }
		function* outer() { yield 1; yield* inner(); yield 4; }
		let g = outer();
		let out = [];
		let r = g.next();
		while (!r.done) { out.push(r.value); r = g.next(); }
		out.join(",");
	`
	v, _ := run(t, src)
	if v.Kind() != runtime.KindString || v.Str() != "1,2,3,4" {
		t.Errorf("got %v, want \"1,2,3,4\"", v)
	}
}

func TestGeneratorReturnAndThrow(t *testing.T) {
	src := `
		function* gen() {
			try {
				yield 1;
				yield 2;
			} catch (e) {
				yield "caught:" + e;
			}
		}
		let g = gen();
		g.next();
		let r = g.throw("boom");
		r.value;
	`
	v, _ := run(t, src)
	if v.Kind() != runtime.KindString || v.Str() != "caught:boom" {
		t.Errorf("got %v, want \"caught:boom\"", v)
	}
}

func TestAsyncAwaitResolvesThroughMicrotasks(t *testing.T) {
	src := `
		function delayed(v) {
			return new Promise(function(resolve) { resolve(v); });
		}
		async function run() {
			let a = await delayed(1);
			let b = await delayed(2);
			return a + b;
		}
		run();
	`
	sched := &testScheduler{}
	ev := New(sched)
	v, err := ev.EvalProgram(parseProgram(t, src))
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	sched.drain()
	promise := v.Object()
	if promise == nil || promise.Promise == nil {
		t.Fatalf("expected run() to return a promise, got %v", v)
	}
	if promise.Promise.State != runtime.PromiseFulfilled {
		t.Fatalf("expected promise fulfilled, got state %v value %v", promise.Promise.State, promise.Promise.Value)
	}
	if promise.Promise.Value.Kind() != runtime.KindNumber || promise.Promise.Value.Number() != 3 {
		t.Errorf("got %v, want 3", promise.Promise.Value)
	}
}

func TestPromiseChainingThenCatch(t *testing.T) {
	src := `
		let log = [];
		Promise.resolve(1)
			.then(function(v) { log.push(v); throw "nope"; })
			.catch(function(e) { log.push(e); return 42; })
			.then(function(v) { log.push(v); });
		log;
	`
	sched := &testScheduler{}
	ev := New(sched)
	v, err := ev.EvalProgram(parseProgram(t, src))
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	sched.drain()
	obj := v.Object()
	if obj == nil || obj.Array == nil {
		t.Fatalf("expected log to be an array, got %v", v)
	}
	if obj.Array.Length() != 3 {
		t.Fatalf("expected 3 log entries, got %d", obj.Array.Length())
	}
	v0, _ := obj.Array.Get(0)
	v1, _ := obj.Array.Get(1)
	v2, _ := obj.Array.Get(2)
	if v0.Number() != 1 {
		t.Errorf("log[0]: got %v, want 1", v0)
	}
	if v1.Str() != "nope" {
		t.Errorf("log[1]: got %v, want \"nope\"", v1)
	}
	if v2.Number() != 42 {
		t.Errorf("log[2]: got %v, want 42", v2)
	}
}

func TestTryCatchFinally(t *testing.T) {
	src := `
		let trail = [];
		function f() {
			try {
				trail.push("try");
				throw "err";
			} catch (e) {
				trail.push("catch:" + e);
			} finally {
				trail.push("finally");
			}
		}
		f();
		trail.join(",");
	`
	v, _ := run(t, src)
	want := "try,catch:err,finally"
	if v.Kind() != runtime.KindString || v.Str() != want {
		t.Errorf("got %v, want %q", v, want)
	}
}

func TestForOfAndForIn(t *testing.T) {
	src := `
		let sum = 0;
		for (const x of [1, 2, 3, 4]) { sum = sum + x; }
		let keys = [];
		for (const k in { a: 1, b: 2 }) { keys.push(k); }
		sum + keys.length;
	`
	v, _ := run(t, src)
	if v.Kind() != runtime.KindNumber || v.Number() != 12 {
		t.Errorf("got %v, want 12 (sum=10, keys.length=2)", v)
	}
}

func TestTemplateLiterals(t *testing.T) {
	src := "let name = 'World'; let n = 2 + 3; `Hello, ${name}! Sum is ${n}.`;"
	v, _ := run(t, src)
	want := "Hello, World! Sum is 5."
	if v.Kind() != runtime.KindString || v.Str() != want {
		t.Errorf("got %v, want %q", v, want)
	}
}

func TestArrowFunctionLexicalThis(t *testing.T) {
	src := `
		function Counter() {
			this.count = 0;
			this.bump = () => { this.count = this.count + 1; return this.count; };
		}
		let c = new Counter();
		c.bump();
		c.bump();
	`
	v, _ := run(t, src)
	if v.Kind() != runtime.KindNumber || v.Number() != 2 {
		t.Errorf("got %v, want 2", v)
	}
}

func TestOptionalChainingAndNullishCoalescing(t *testing.T) {
	src := `
		let obj = { a: { b: null } };
		let x = obj?.a?.b?.c;
		let y = obj?.missing?.b;
		let z = (x ?? "default-x") + "," + (y ?? "default-y");
		z;
	`
	v, _ := run(t, src)
	want := "default-x,default-y"
	if v.Kind() != runtime.KindString || v.Str() != want {
		t.Errorf("got %v, want %q", v, want)
	}
}

func TestThrownTypeErrorOnCallingNonFunction(t *testing.T) {
	err := runExpectThrow(t, "let x = 5; x();")
	if _, ok := err.(*ThrowSignal); !ok {
		t.Fatalf("expected a *ThrowSignal, got %T: %v", err, err)
	}
}

func TestConstReassignmentThrows(t *testing.T) {
	err := runExpectThrow(t, "const x = 1; x = 2;")
	if _, ok := err.(*ThrowSignal); !ok {
		t.Fatalf("expected a *ThrowSignal, got %T: %v", err, err)
	}
}

func TestArrayMethodsMapFilterForEach(t *testing.T) {
	src := `
		let xs = [1, 2, 3, 4, 5];
		let doubled = xs.map(function(x) { return x * 2; });
		let evens = xs.filter(function(x) { return x % 2 === 0; });
		let sum = 0;
		doubled.forEach(function(x) { sum = sum + x; });
		sum + evens.length;
	`
	v, _ := run(t, src)
	// doubled = [2,4,6,8,10] sum=30; evens=[2,4] length=2
	if v.Kind() != runtime.KindNumber || v.Number() != 32 {
		t.Errorf("got %v, want 32", v)
	}
}
