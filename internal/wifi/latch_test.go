package wifi

import (
	"sync"
	"testing"
	"time"
)

func TestLatchPublishThenWait(t *testing.T) {
	l := NewLatch()
	l.Publish(OutcomeSucceeded)

	set := l.Wait()
	if !set.Has(OutcomeSucceeded) {
		t.Errorf("set = %v, want succeeded latched", set)
	}
	if set.Has(OutcomeExhausted) {
		t.Errorf("set = %v, exhausted must not be latched", set)
	}
}

func TestLatchWaitBlocksUntilPublish(t *testing.T) {
	l := NewLatch()

	got := make(chan OutcomeSet, 1)
	go func() {
		got <- l.Wait()
	}()

	// The waiter must still be blocked with nothing published
	select {
	case set := <-got:
		t.Fatalf("Wait returned %v before any publish", set)
	case <-time.After(50 * time.Millisecond):
	}

	l.Publish(OutcomeExhausted)

	select {
	case set := <-got:
		if !set.Has(OutcomeExhausted) {
			t.Errorf("set = %v, want exhausted latched", set)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Wait did not return after publish")
	}
}

func TestLatchPublishIsIdempotent(t *testing.T) {
	l := NewLatch()

	l.Publish(OutcomeSucceeded)
	l.Publish(OutcomeSucceeded)
	l.Publish(OutcomeSucceeded)

	set := l.Peek()
	if !set.Has(OutcomeSucceeded) || set.Has(OutcomeExhausted) {
		t.Errorf("set = %v, want exactly succeeded", set)
	}
}

func TestLatchWakesAllWaiters(t *testing.T) {
	l := NewLatch()

	const waiters = 4
	var wg sync.WaitGroup
	results := make(chan OutcomeSet, waiters)
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- l.Wait()
		}()
	}

	l.Publish(OutcomeSucceeded)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("not all waiters woke up")
	}

	close(results)
	for set := range results {
		if !set.Has(OutcomeSucceeded) {
			t.Errorf("waiter saw %v, want succeeded", set)
		}
	}
}

func TestLatchBothFlags(t *testing.T) {
	// By design only one flag is ever set per run, but the latch itself
	// supports both and Wait reports the full set.
	l := NewLatch()
	l.Publish(OutcomeSucceeded)
	l.Publish(OutcomeExhausted)

	set := l.Wait()
	if !set.Has(OutcomeSucceeded) || !set.Has(OutcomeExhausted) {
		t.Errorf("set = %v, want both flags latched", set)
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeSucceeded, "succeeded"},
		{OutcomeExhausted, "exhausted"},
		{Outcome(0), "invalid"},
	}
	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}
