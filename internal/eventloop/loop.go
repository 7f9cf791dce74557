// Package eventloop is the single-threaded cooperative scheduler spec.md
// §4.5 and §5 describe: a FIFO microtask queue drained to empty after every
// synchronous turn, and a deadline-sorted macrotask/timer heap pumped one
// entry at a time between drains. internal/evaluator never imports this
// package directly (Loop satisfies evaluator.Scheduler structurally); the
// host wires a *Loop into evaluator.New at pkg/jsengine's level.
package eventloop

import (
	"container/heap"
	"context"
	"fmt"
	"time"

	"github.com/tidwall/pretty"
	"golang.org/x/sync/errgroup"
)

// Loop is not safe for concurrent use: spec.md §5 scopes one Loop to one
// logical thread of JS execution, exactly one goroutine at a time driving
// it (either the synchronous top-level evaluation or Run's own pump).
type Loop struct {
	micro  []func()
	timers timerHeap
	nextID int
	seq    uint64
	// cancelled tombstones ids cleared before their timer fires. Lookup
	// happens when a timer is popped off the heap rather than when it's
	// pushed, so ClearMacrotask never needs to search the heap.
	cancelled map[int]bool

	// debug is the bounded channel pkg/jsengine.Engine.DebugMessages hands
	// hosts; PushDebugSnapshot is the evaluator's __debug() primitive's only
	// way to reach it (see internal/evaluator/timers.go's Scheduler usage
	// for the analogous setTimeout seam).
	debug chan string
}

// debugChannelCapacity bounds how many __debug() snapshots queue up before
// the oldest is dropped, per spec.md §4.5's "bounded channel" note — a host
// that never reads DebugMessages must not make the evaluator block.
const debugChannelCapacity = 64

// New allocates an idle Loop with no pending micro/macrotasks.
func New() *Loop {
	l := &Loop{debug: make(chan string, debugChannelCapacity)}
	heap.Init(&l.timers)
	return l
}

// EnqueueMicrotask implements evaluator.Scheduler: append fn to the FIFO
// queue DrainMicrotasks (and Run, between timer firings) drains.
func (l *Loop) EnqueueMicrotask(fn func()) {
	l.micro = append(l.micro, fn)
}

// EnqueueMacrotask implements evaluator.Scheduler, backing setTimeout (and
// setInterval's self-rescheduling, see internal/evaluator/timers.go).
// delayMS<=0 still costs one pump iteration, matching real engines'
// "setTimeout(fn, 0) never runs synchronously" guarantee.
func (l *Loop) EnqueueMacrotask(delayMS float64, fn func()) int {
	l.nextID++
	id := l.nextID
	l.seq++
	if delayMS < 0 {
		delayMS = 0
	}
	heap.Push(&l.timers, &timerEntry{
		id:       id,
		deadline: time.Now().Add(time.Duration(delayMS * float64(time.Millisecond))),
		seq:      l.seq,
		fn:       fn,
	})
	return id
}

// ClearMacrotask implements evaluator.Scheduler: tombstone id so Run skips
// it (or drops it if it's never popped at all) instead of firing it.
func (l *Loop) ClearMacrotask(id int) {
	if l.cancelled == nil {
		l.cancelled = make(map[int]bool)
	}
	l.cancelled[id] = true
}

// DrainMicrotasks runs every queued microtask to completion, including ones
// enqueued by a microtask that ran earlier in the same drain (spec.md §4.5's
// "microtasks may enqueue microtasks" rule) — this loop re-checks len(l.micro)
// on every iteration rather than snapshotting it up front.
func (l *Loop) DrainMicrotasks() {
	for len(l.micro) > 0 {
		fn := l.micro[0]
		l.micro = l.micro[1:]
		fn()
	}
}

// PendingMacrotasks reports how many timers are still armed (ignoring ones
// already tombstoned), used by EvaluateSync-style callers that want to
// reject rather than silently skip pending timer work.
func (l *Loop) PendingMacrotasks() int {
	n := 0
	for _, e := range l.timers {
		if !l.cancelled[e.id] {
			n++
		}
	}
	return n
}

// Run pumps the loop to quiescence: drain microtasks, fire the next
// non-cancelled timer (waiting for its deadline if it's in the future),
// drain again, repeat until both queues are empty or ctx is cancelled.
// Per spec.md §5, a cancellation mid-pump abandons any remaining timers —
// it does not attempt to fire or drain them.
func (l *Loop) Run(ctx context.Context) error {
	l.DrainMicrotasks()
	for l.timers.Len() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		next := l.timers[0]
		if wait := time.Until(next.deadline); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}
		entry := heap.Pop(&l.timers).(*timerEntry)
		if l.cancelled[entry.id] {
			delete(l.cancelled, entry.id)
			continue
		}
		entry.fn()
		l.DrainMicrotasks()
	}
	return nil
}

// TimeoutError is the engine-level error pkg/jsengine.Engine surfaces when
// a host-supplied TimeoutMs deadline fires before Run reaches quiescence,
// per spec.md §7's HostTimeout row ("engine-level error", not a thrown JS
// value — the script never gets a chance to catch it).
type TimeoutError struct {
	TimeoutMs int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("jsengine: evaluation did not quiesce within %dms", e.TimeoutMs)
}

// RunWithTimeout pumps the loop exactly like Run, but bounds the whole pump
// by timeoutMs (no bound at all when timeoutMs<=0). The pump runs on its
// own goroutine under an errgroup so the timeout context's cancellation —
// delivered on a separate goroutine — can unblock a Run parked in
// time.NewTimer waiting on a distant timer deadline, per SPEC_FULL.md's
// errgroup-coordinated-cancellation note.
func (l *Loop) RunWithTimeout(parent context.Context, timeoutMs int) error {
	ctx := parent
	if timeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, time.Duration(timeoutMs)*time.Millisecond)
		defer cancel()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return l.Run(gctx)
	})
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return &TimeoutError{TimeoutMs: timeoutMs}
		}
		return err
	}
	return nil
}

// PushDebugSnapshot pretty-prints a __debug() snapshot payload (JSON-ish
// text produced by internal/evaluator's debug primitive) and pushes it onto
// the bounded channel DebugMessages exposes. A full channel drops the
// oldest queued message instead of blocking the caller, since the caller is
// the evaluator itself mid-statement.
func (l *Loop) PushDebugSnapshot(payload []byte) {
	formatted := pretty.Pretty(payload)
	select {
	case l.debug <- string(formatted):
	default:
		select {
		case <-l.debug:
		default:
		}
		select {
		case l.debug <- string(formatted):
		default:
		}
	}
}

// DebugMessages returns the channel pkg/jsengine.Engine.DebugMessages
// exposes to hosts wanting to observe __debug() snapshots.
func (l *Loop) DebugMessages() <-chan string {
	return l.debug
}
