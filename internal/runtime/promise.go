package runtime

// PromiseState is one of {Pending, Fulfilled, Rejected}, per spec.md §3.
type PromiseState uint8

const (
	PromisePending PromiseState = iota
	PromiseFulfilled
	PromiseRejected
)

func (s PromiseState) String() string {
	switch s {
	case PromiseFulfilled:
		return "fulfilled"
	case PromiseRejected:
		return "rejected"
	default:
		return "pending"
	}
}

// Reaction is a single fulfil-or-reject reaction record attached to a
// promise, per spec.md §3: the downstream promise it settles, an optional
// handler (absent means "forward the value/reason unchanged"), and the
// scope mode the handler closed over for stack-trace fidelity.
type Reaction struct {
	Downstream *Object // the promise returned by .then/.catch/.finally
	Handler    *Object // nil means pass-through
	Strict     bool
}

// PromiseData is the internal slot populated on ClassPromise objects.
// Settlement is one-way: State transitions Pending->Fulfilled or
// Pending->Rejected exactly once (spec.md §3 invariant).
type PromiseData struct {
	State    PromiseState
	Value    Value // fulfilment value or rejection reason, valid once settled
	OnFulfil []Reaction
	OnReject []Reaction
	// Handled marks whether any reject reaction was ever attached, used by
	// hosts to report unhandled rejections.
	Handled bool
}

// NewPromiseObject allocates a fresh Pending promise.
func NewPromiseObject(proto *Object) *Object {
	o := NewObject(proto)
	o.Class = ClassPromise
	o.Promise = &PromiseData{State: PromisePending}
	return o
}

// Settle transitions the promise to Fulfilled or Rejected, returning the
// reaction list to schedule as microtasks, or nil if already settled
// (settling twice is a silent no-op, matching spec semantics where a
// settled promise never transitions again).
func (p *PromiseData) Settle(fulfilled bool, v Value) []Reaction {
	if p.State != PromisePending {
		return nil
	}
	p.Value = v
	if fulfilled {
		p.State = PromiseFulfilled
		rs := p.OnFulfil
		p.OnFulfil, p.OnReject = nil, nil
		return rs
	}
	p.State = PromiseRejected
	rs := p.OnReject
	p.OnFulfil, p.OnReject = nil, nil
	return rs
}

// AddReaction attaches a fulfil/reject reaction pair, per spec.md §4.5's
// .then semantics: both reactions target the same downstream promise.
func (p *PromiseData) AddReaction(onFulfil, onReject Reaction) {
	p.OnFulfil = append(p.OnFulfil, onFulfil)
	p.OnReject = append(p.OnReject, onReject)
	if onReject.Handler != nil || onReject.Downstream != nil {
		p.Handled = true
	}
}
