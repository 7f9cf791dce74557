package eventloop

import "time"

// timerEntry is one pending setTimeout/setInterval firing: a deadline, an
// insertion sequence number to break deadline ties in FIFO order (per
// spec.md §5's "equal deadlines fire in insertion order" guarantee), and
// the callback to run.
type timerEntry struct {
	id       int
	deadline time.Time
	seq      uint64
	fn       func()
	index    int // heap.Interface bookkeeping
}

// timerHeap is a container/heap min-heap ordered by deadline then seq,
// the same Len/Less/Swap/Push/Pop shape as any other priority queue in
// this codebase's ancestry.
type timerHeap []*timerEntry

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if !h[i].deadline.Equal(h[j].deadline) {
		return h[i].deadline.Before(h[j].deadline)
	}
	return h[i].seq < h[j].seq
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	e := x.(*timerEntry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}
