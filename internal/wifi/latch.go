package wifi

import "sync"

// Outcome is a terminal bring-up result.
type Outcome uint8

const (
	// OutcomeSucceeded means an IP lease was acquired
	OutcomeSucceeded Outcome = 1 << iota

	// OutcomeExhausted means the retry budget ran out before a lease
	// appeared
	OutcomeExhausted
)

// String returns a human-readable name for the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeExhausted:
		return "exhausted"
	default:
		return "invalid"
	}
}

// OutcomeSet is a bit set of terminal outcomes. In a normal run exactly
// one bit is ever set, but Wait reports whatever is latched so the caller
// can apply its own precedence.
type OutcomeSet uint8

// Has reports whether o is latched in the set.
func (s OutcomeSet) Has(o Outcome) bool {
	return s&OutcomeSet(o) != 0
}

// Latch is the rendezvous between the event-delivery goroutine and the
// startup flow. One side publishes terminal outcomes, the other blocks
// until at least one has been published.
//
// Publishing latches: a flag once set stays set for the lifetime of the
// latch, and re-publishing it is a no-op. There is deliberately no
// timeout and no cancellation on Wait — the startup flow has no other
// useful work while bring-up is in flight.
type Latch struct {
	mu   sync.Mutex
	cond *sync.Cond
	set  OutcomeSet
}

// NewLatch creates an empty latch.
func NewLatch() *Latch {
	l := &Latch{}
	l.cond = sync.NewCond(&l.mu)
	return l
}

// Publish latches the outcome and wakes all waiters. Idempotent.
func (l *Latch) Publish(o Outcome) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.set.Has(o) {
		return
	}
	l.set |= OutcomeSet(o)
	l.cond.Broadcast()
}

// Wait blocks until at least one outcome has been published, then
// returns the set of outcomes latched at that moment.
func (l *Latch) Wait() OutcomeSet {
	l.mu.Lock()
	defer l.mu.Unlock()

	for l.set == 0 {
		l.cond.Wait()
	}
	return l.set
}

// Peek returns the currently latched set without blocking.
func (l *Latch) Peek() OutcomeSet {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.set
}
