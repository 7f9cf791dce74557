package runtime

// GeneratorState tracks where a generator object sits in its lifecycle.
type GeneratorState uint8

const (
	GeneratorSuspendedStart GeneratorState = iota
	GeneratorSuspendedYield
	GeneratorExecuting
	GeneratorCompleted
)

// ResumeKind distinguishes the three ways a generator can be resumed.
type ResumeKind uint8

const (
	ResumeNext ResumeKind = iota
	ResumeThrow
	ResumeReturn
)

// ResumeMsg is sent into a generator's coroutine goroutine to resume it.
type ResumeMsg struct {
	Kind ResumeKind
	Arg  Value
}

// YieldMsg is sent back out of a generator's coroutine goroutine, either at
// a `yield` point or on completion (Done true).
type YieldMsg struct {
	Value Value
	Done  bool
	Err   error // non-nil if the body threw or propagated an error on completion
}

// GeneratorData is the internal slot populated on ClassGenerator objects.
// Per the Open Question decision recorded in DESIGN.md, generator
// suspension/resumption is realized with a dedicated goroutine per
// generator instance synchronized over ResumeCh/YieldCh, rather than an
// IR-level state-machine the CPS transformer would have to hand-compile:
// Go's goroutines already give cycle-safe, stack-preserving suspension, so
// internal/cps leaves `yield` in place (it lowers only `for await`) and does
// not lower a generator body to an explicit machine.
type GeneratorData struct {
	State GeneratorState

	ResumeCh chan ResumeMsg
	YieldCh  chan YieldMsg

	IsAsync bool
}

// NewGeneratorObject allocates a Generator-classed object at its initial
// suspended-start state, with its coroutine channels ready for the
// evaluator to start the body goroutine against.
func NewGeneratorObject(proto *Object, isAsync bool) *Object {
	o := NewObject(proto)
	o.Class = ClassGenerator
	o.Generator = &GeneratorData{
		State:    GeneratorSuspendedStart,
		ResumeCh: make(chan ResumeMsg),
		YieldCh:  make(chan YieldMsg),
		IsAsync:  isAsync,
	}
	return o
}
