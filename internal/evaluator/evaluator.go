// Package evaluator walks the typed AST internal/parser produces (after
// internal/cps has desugared any `for await` loops) and executes it against
// an internal/runtime.Realm. It owns the one thing runtime deliberately
// leaves out to avoid an import cycle: the CallHook that invokes function
// objects, so property access, coercion, and operator semantics can call
// back into user code.
package evaluator

import (
	"github.com/cwbudde/go-jsengine/internal/ast"
	"github.com/cwbudde/go-jsengine/internal/runtime"
)

// Scheduler is the host's microtask/macrotask queue, supplied so promise
// reactions and timers can be scheduled without this package importing
// internal/eventloop (which itself drives the evaluator during a tick).
type Scheduler interface {
	EnqueueMicrotask(func())
	EnqueueMacrotask(delayMS float64, fn func()) (id int)
	ClearMacrotask(id int)

	// PushDebugSnapshot delivers a __debug() snapshot payload (JSON-ish
	// text) to whatever sink the host reads, per spec.md §4.5.
	PushDebugSnapshot(payload []byte)
}

// Evaluator is one running script's execution context: the realm it
// mutates, the global environment it roots every scope chain at, and the
// scheduler it hands async/promise work off to.
type Evaluator struct {
	Realm     *runtime.Realm
	Global    *runtime.Environment
	Scheduler Scheduler

	// Console collects console.log/error/warn/info output in call order, for
	// hosts that want to surface it (a CLI's stdout, a test's assertion
	// target) without the evaluator importing an I/O package itself.
	Console []string

	// callDepth guards against runaway recursion in user code; the teacher's
	// interpreter has no analogous guard (DWScript bounds this at the VM
	// bytecode level instead), so this is new machinery, not adapted code.
	callDepth int

	// coroutine is non-nil while running on a generator/async function's
	// dedicated goroutine (see coroutine.go); evalYield/evalAwait use it to
	// find the ResumeCh/YieldCh pair to round-trip through. Each such
	// goroutine runs against its own shallow copy of the Evaluator (see
	// newGenerator and runAsyncFunction), so this field is never shared/raced across
	// goroutines despite Evaluator otherwise being single-threaded.
	coroutine *runtime.GeneratorData

	// intervalCancel maps a setInterval call's first returned id to the
	// cancellation flag its self-rescheduling callback checks, since the
	// Scheduler mints a fresh macrotask id on every firing but script only
	// ever sees the first one (see timers.go).
	intervalCancel map[int]*bool
}

// maxCallDepth is a defensive recursion ceiling. It exists only to turn a
// Go stack overflow (which crashes the whole process) into a catchable
// RangeError, matching how real engines report "Maximum call stack size
// exceeded".
const maxCallDepth = 2000

// New allocates an Evaluator over a fresh realm with its intrinsics and
// global object fully bootstrapped (see bootstrap.go).
func New(sched Scheduler) *Evaluator {
	realm := runtime.NewRealm()
	ev := &Evaluator{Realm: realm, Scheduler: sched, intervalCancel: make(map[int]*bool)}
	ev.Global = runtime.NewEnvironment(nil, runtime.EnvScript, runtime.Sloppy)
	ev.bootstrap()
	return ev
}

// EvalProgram runs prog's top-level statements against the global
// environment, hoisting var/function declarations first per spec.md §4.2,
// and returns the completion value of the last completion-bearing statement
// (see isCompletionBearing; a trailing declaration leaves the earlier value
// in place, and an empty program yields Undefined), or an error (a Go error
// for internal failures, a *ThrowSignal for an uncaught JS exception).
func (ev *Evaluator) EvalProgram(prog *ast.Program) (runtime.Value, error) {
	env := ev.Global
	ev.hoistDeclarations(prog.Body, env, true)

	var result runtime.Value = runtime.Undefined
	for _, stmt := range prog.Body {
		v, err := ev.evalStatement(stmt, env)
		if err != nil {
			switch sig := err.(type) {
			case *ReturnSignal, *BreakSignal, *ContinueSignal:
				// A top-level return/break/continue has no enclosing
				// function/loop to unwind to; treat as a no-op completion
				// rather than propagating, matching a script's top level
				// having no such targets to reach.
				_ = sig
				continue
			default:
				return runtime.Undefined, err
			}
		}
		if !v.IsUndefined() || isCompletionBearing(stmt) {
			result = v
		}
	}
	return result, nil
}

// isCompletionBearing reports whether stmt can legitimately produce
// Undefined as its own completion value (as opposed to evalStatement simply
// not updating result for a declaration). Only declarations and empty/
// debugger statements leave result untouched; everything else, blocks and
// control statements included, is treated as completion-bearing, so a
// trailing `if`/loop/block that yields Undefined records `undefined`.
func isCompletionBearing(stmt ast.Statement) bool {
	switch stmt.(type) {
	case *ast.VariableDeclaration, *ast.FunctionDeclaration, *ast.ClassDeclaration,
		*ast.EmptyStatement, *ast.DebuggerStatement:
		return false
	default:
		return true
	}
}
