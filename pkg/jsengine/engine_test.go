package jsengine

import (
	"testing"

	"github.com/cwbudde/go-jsengine/internal/runtime"
)

// Each TestScenario case below is one of the literal end-to-end scenarios
// spec.md §8 names: a fixed script and its required output, run through the full
// lex/parse/transform/evaluate/event-loop pipeline an embedding host drives
// through Engine.

func TestScenarioBlockScopedShadowing(t *testing.T) {
	e := New(Options{})
	v, err := e.Evaluate(`let x = 1; let y = 2; if (true) { let y = 3; x = x + y; } x + y;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != runtime.KindNumber || v.Number() != 6 {
		t.Errorf("got %v, want 6", v)
	}
}

func TestScenarioAnnexBHoistSuppressedByDefault(t *testing.T) {
	// Without Annex B's legacy block-function hoisting wired through to the
	// enclosing var scope, a function declared inside a block stays local to
	// that block: typeof on the outer, never-bound name yields "undefined"
	// rather than throwing.
	e := New(Options{})
	v, err := e.Evaluate(`if (true) { function leaked() { return 1; } } typeof leaked;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != runtime.KindString || v.Str() != "undefined" {
		t.Errorf("got %v, want \"undefined\"", v)
	}
}

func TestScenarioChainedAwait(t *testing.T) {
	e := New(Options{})
	var captured runtime.Value
	e.SetGlobalFunction("captureResult", func(args []runtime.Value) (runtime.Value, error) {
		if len(args) > 0 {
			captured = args[0]
		}
		return runtime.Undefined, nil
	})
	err := e.Run(`
		async function t() {
			let a = await Promise.resolve(5);
			let b = await Promise.resolve(a + 3);
			let c = await Promise.resolve(b * 2);
			return c;
		}
		t().then(captureResult);
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Kind() != runtime.KindNumber || captured.Number() != 16 {
		t.Errorf("got %v, want 16", captured)
	}
}

func TestScenarioPromiseAllFanIn(t *testing.T) {
	e := New(Options{})
	var captured runtime.Value
	e.SetGlobalFunction("captureResults", func(args []runtime.Value) (runtime.Value, error) {
		if len(args) > 0 {
			captured = args[0]
		}
		return runtime.Undefined, nil
	})
	err := e.Run(`Promise.all([Promise.resolve(1), Promise.resolve(2), Promise.resolve(3)]).then(vs => captureResults(vs));`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arr := captured.Object()
	if arr == nil || arr.Array == nil || arr.Array.Length() != 3 {
		t.Fatalf("expected a 3-element array, got %v", captured)
	}
	for i, want := range []float64{1, 2, 3} {
		v, _ := arr.Array.Get(i)
		if v.Number() != want {
			t.Errorf("element %d: got %v, want %v", i, v, want)
		}
	}
}

func TestScenarioPromiseAllRejectsToCatch(t *testing.T) {
	e := New(Options{})
	var captured runtime.Value
	e.SetGlobalFunction("captureResults", func(args []runtime.Value) (runtime.Value, error) {
		if len(args) > 0 {
			captured = args[0]
		}
		return runtime.Undefined, nil
	})
	e.SetGlobalFunction("captureError", func(args []runtime.Value) (runtime.Value, error) {
		if len(args) > 0 {
			captured = args[0]
		}
		return runtime.Undefined, nil
	})
	err := e.Run(`Promise.all([Promise.resolve(1), Promise.reject("error"), Promise.resolve(3)])
		.then(vs => captureResults(vs))
		.catch(e => captureError(e));`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Kind() != runtime.KindString || captured.Str() != "error" {
		t.Errorf("got %v, want \"error\"", captured)
	}
}

func TestScenarioDefinePropertyNonWritable(t *testing.T) {
	e := New(Options{})
	v, err := e.Evaluate(`let obj = {}; Object.defineProperty(obj, 'x', { value: 42, writable: false }); obj.x = 100; obj.x;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != runtime.KindNumber || v.Number() != 42 {
		t.Errorf("got %v, want 42", v)
	}
}

func TestScenarioNullCoercionMatrix(t *testing.T) {
	tests := []struct {
		src  string
		kind runtime.Kind
		str  string
		num  float64
		bl   bool
	}{
		{src: `typeof null`, kind: runtime.KindString, str: "object"},
		{src: `null == undefined`, kind: runtime.KindBoolean, bl: true},
		{src: `null === undefined`, kind: runtime.KindBoolean, bl: false},
		{src: `null >= 0`, kind: runtime.KindBoolean, bl: true},
		{src: `null > 0`, kind: runtime.KindBoolean, bl: false},
		{src: `null == 0`, kind: runtime.KindBoolean, bl: false},
	}
	for _, tt := range tests {
		e := New(Options{})
		v, err := e.Evaluate(tt.src)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.src, err)
		}
		switch tt.kind {
		case runtime.KindString:
			if v.Kind() != runtime.KindString || v.Str() != tt.str {
				t.Errorf("%q: got %v, want %q", tt.src, v, tt.str)
			}
		case runtime.KindBoolean:
			if v.Kind() != runtime.KindBoolean || v.Bool() != tt.bl {
				t.Errorf("%q: got %v, want %v", tt.src, v, tt.bl)
			}
		}
	}
}

func TestEvaluateSyncRejectsPendingTimer(t *testing.T) {
	e := New(Options{})
	_, err := e.EvaluateSync(`setTimeout(function() {}, 0);`)
	if _, ok := err.(*AsyncPendingError); !ok {
		t.Fatalf("expected *AsyncPendingError, got %T: %v", err, err)
	}
}

func TestParseWithoutTransformationParsesAsyncFunction(t *testing.T) {
	e := New(Options{})
	prog, err := e.ParseWithoutTransformation(`async function f() { await 1; }`)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(prog.Body) != 1 {
		t.Fatalf("expected 1 top-level statement, got %d", len(prog.Body))
	}
}

func TestParseReportsSyntaxErrors(t *testing.T) {
	e := New(Options{})
	_, err := e.Parse(`let x = ;`)
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
}

func TestRunSurfacesThrownError(t *testing.T) {
	e := New(Options{})
	err := e.Run(`throw new TypeError("boom");`)
	te, ok := err.(*ThrowError)
	if !ok {
		t.Fatalf("expected *ThrowError, got %T: %v", err, err)
	}
	if te.Error() == "" {
		t.Errorf("expected a non-empty message")
	}
}
