// Package jsengine is the host façade spec.md §6 names: the one exported
// surface a Go program embeds to parse, evaluate, and run scripts against
// this engine. Every other package in this module is internal/ and exists
// only to be assembled here — internal/lexer and internal/parser build the
// IR, internal/cps lowers for-await loops, internal/evaluator walks it
// against an internal/runtime.Realm, and internal/eventloop pumps the
// microtask/macrotask queues that drive promises and timers to quiescence
// once the script's synchronous part has finished.
package jsengine

import (
	"context"
	"fmt"

	"github.com/cwbudde/go-jsengine/internal/ast"
	"github.com/cwbudde/go-jsengine/internal/cps"
	"github.com/cwbudde/go-jsengine/internal/diag"
	"github.com/cwbudde/go-jsengine/internal/evaluator"
	"github.com/cwbudde/go-jsengine/internal/eventloop"
	"github.com/cwbudde/go-jsengine/internal/lexer"
	"github.com/cwbudde/go-jsengine/internal/parser"
	"github.com/cwbudde/go-jsengine/internal/runtime"
)

// Options configures a new Engine, per spec.md §6.
type Options struct {
	// EnableAnnexBFunctionExtensions names the legacy sloppy-mode
	// function-hoisting extensions spec.md §4.4 describes. New does not pass
	// it on, so it has no effect: a function declared in a block never
	// leaks to the enclosing var scope, whatever its value.
	EnableAnnexBFunctionExtensions bool

	// ModuleLoader resolves an import specifier to source text. It is stored
	// but never called; every import statement fails with a SyntaxError
	// ("unsupported statement form"), with or without a loader.
	ModuleLoader func(specifier string) (source string, ok bool)

	// ActivityRecorder is the tracing sink (nil becomes a no-op recorder).
	// It is not handed to the evaluator, so it receives no events.
	ActivityRecorder diag.Recorder

	// TimeoutMs bounds how long Evaluate/Run may pump the event loop after
	// the synchronous portion of a script completes. Zero means unbounded.
	TimeoutMs int
}

func (o Options) withDefaults() Options {
	if o.ActivityRecorder == nil {
		o.ActivityRecorder = diag.NoopRecorder{}
	}
	return o
}

// Engine is one realm's worth of JS execution state: its own global object,
// intrinsics, and event loop. Per spec.md §5, a single Engine must never be
// driven from more than one goroutine at a time; separate Engines may run
// concurrently without coordination.
type Engine struct {
	opts Options
	ev   *evaluator.Evaluator
	loop *eventloop.Loop
}

// New allocates an Engine with a fresh realm, fully bootstrapped per
// internal/evaluator/bootstrap.go, and an idle event loop.
func New(opts Options) *Engine {
	opts = opts.withDefaults()
	loop := eventloop.New()
	return &Engine{
		opts: opts,
		ev:   evaluator.New(loop),
		loop: loop,
	}
}

// ParseError wraps the diagnostics a failed parse produced, satisfying the
// ParseError row of spec.md §7's error taxonomy.
type ParseError struct {
	Diagnostics []*diag.Diagnostic
}

func (e *ParseError) Error() string {
	texts := make([]*diag.Diagnostic, len(e.Diagnostics))
	copy(texts, e.Diagnostics)
	return diag.FormatAll(texts, false)
}

// ParseWithoutTransformation lexes and parses source into IR, skipping the
// CPS lowering pass — useful for tooling that wants to inspect the
// source-shaped tree (cmd/jsengine's `parse`/`fmt` subcommands) without
// for-await lowering rewriting it.
func (e *Engine) ParseWithoutTransformation(source string) (*ast.Program, error) {
	l := lexer.New(source)
	p := parser.New(l, source, "<script>")
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, &ParseError{Diagnostics: errs}
	}
	return prog, nil
}

// Parse lexes, parses, and CPS-transforms source, per spec.md §6.
func (e *Engine) Parse(source string) (*ast.Program, error) {
	prog, err := e.ParseWithoutTransformation(source)
	if err != nil {
		return nil, err
	}
	if cps.NeedsTransformation(prog) {
		prog = cps.Transform(prog)
	}
	return prog, nil
}

// ThrowError wraps a script-level uncaught exception, the ThrowSignal row
// of spec.md §6's host-facing error types. Value is the thrown JS value
// (often, but not always, an Error object).
type ThrowError struct {
	Value runtime.Value
}

func (e *ThrowError) Error() string {
	if obj := e.Value.Object(); obj != nil && obj.Err != nil {
		return runtime.ErrorToString(obj.Err.NativeName, obj.Err.Message)
	}
	return fmt.Sprintf("uncaught exception: %v", e.Value)
}

// Evaluate parses and runs source, pumping the event loop to quiescence
// (or until TimeoutMs elapses) before returning, per spec.md §6.
func (e *Engine) Evaluate(source string) (runtime.Value, error) {
	prog, err := e.Parse(source)
	if err != nil {
		return runtime.Undefined, err
	}
	v, err := e.ev.EvalProgram(prog)
	if err != nil {
		if th, ok := err.(*evaluator.ThrowSignal); ok {
			return runtime.Undefined, &ThrowError{Value: th.Value}
		}
		return runtime.Undefined, err
	}
	if err := e.loop.RunWithTimeout(context.Background(), e.opts.TimeoutMs); err != nil {
		return v, err
	}
	return v, nil
}

// Run is Evaluate without the completion value, for hosts that only care
// about side effects (console output, registered globals being invoked).
func (e *Engine) Run(source string) error {
	_, err := e.Evaluate(source)
	return err
}

// AsyncPendingError is EvaluateSync's error when timers are still pending;
// Pending is their count.
type AsyncPendingError struct {
	Pending int
}

func (e *AsyncPendingError) Error() string {
	return fmt.Sprintf("jsengine: EvaluateSync rejected %d pending async task(s)", e.Pending)
}

// EvaluateSync behaves like Evaluate, but does not pump timers: if any timer
// is still pending after the synchronous portion of source completes, it
// returns an *AsyncPendingError. Queued microtasks are not rejected; they
// are drained before it returns.
func (e *Engine) EvaluateSync(source string) (runtime.Value, error) {
	prog, err := e.Parse(source)
	if err != nil {
		return runtime.Undefined, err
	}
	v, err := e.ev.EvalProgram(prog)
	if err != nil {
		if th, ok := err.(*evaluator.ThrowSignal); ok {
			return runtime.Undefined, &ThrowError{Value: th.Value}
		}
		return runtime.Undefined, err
	}
	if pending := e.loop.PendingMacrotasks(); pending > 0 {
		return v, &AsyncPendingError{Pending: pending}
	}
	e.loop.DrainMicrotasks()
	return v, nil
}

// SetGlobalFunction installs a Go-backed native function as a global,
// callable from script under name. args/return values are the evaluator's
// internal runtime.Value — the same type script-level functions exchange —
// so a host implementing FFI-style bindings never has to convert through an
// intermediate representation.
func (e *Engine) SetGlobalFunction(name string, fn func(args []runtime.Value) (runtime.Value, error)) {
	native := e.ev.NativeFunction(name, func(_ runtime.Value, args []runtime.Value) (runtime.Value, error) {
		return fn(args)
	})
	e.ev.DefineGlobalFunction(name, native)
}

// SetModuleLoader stores loader in the engine's options. Nothing calls it:
// import statements fail with a SyntaxError whether or not a loader is set.
func (e *Engine) SetModuleLoader(loader func(specifier string) (string, bool)) {
	e.opts.ModuleLoader = loader
}

// ConsoleOutput returns every console.log/warn/error/info line written so
// far, in call order, for hosts (cmd/jsengine's `run`) that want to surface
// script output without wiring their own console binding.
func (e *Engine) ConsoleOutput() []string {
	return e.ev.Console
}

// DebugMessages returns the bounded channel of __debug() snapshot payloads
// this Engine's event loop has queued, per spec.md §4.5.
func (e *Engine) DebugMessages() <-chan string {
	return e.loop.DebugMessages()
}

// Dispose releases this Engine's realm and abandons any outstanding
// timers. The Engine must not be used afterward.
func (e *Engine) Dispose() {
	e.ev = nil
	e.loop = nil
}
