package wifi

import (
	"net/netip"
	"sync"
	"testing"
	"time"
)

// fakeConnector counts connect requests issued by the supervisor
type fakeConnector struct {
	mu       sync.Mutex
	requests int
}

func (f *fakeConnector) RequestConnect() {
	f.mu.Lock()
	f.requests++
	f.mu.Unlock()
}

func (f *fakeConnector) Requests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

func newTestSupervisor(budget int) (*Supervisor, *fakeConnector, *Latch) {
	conn := &fakeConnector{}
	latch := NewLatch()
	sup := NewSupervisor(conn, budget, latch, nil)
	return sup, conn, latch
}

func disconnect() Event {
	return Event{Kind: EventDisconnected, Reason: "reason=3"}
}

func addrAcquired(t *testing.T, s string) Event {
	t.Helper()
	addr, err := netip.ParseAddr(s)
	if err != nil {
		t.Fatalf("ParseAddr(%q) error = %v", s, err)
	}
	return Event{Kind: EventAddressAcquired, Addr: addr}
}

func TestSupervisorStationStartedConnects(t *testing.T) {
	sup, conn, latch := newTestSupervisor(3)

	sup.HandleEvent(Event{Kind: EventStationStarted})

	if got := conn.Requests(); got != 1 {
		t.Errorf("requests after station start = %d, want 1", got)
	}
	if got := sup.State(); got != StateConnecting {
		t.Errorf("state = %v, want %v", got, StateConnecting)
	}
	if set := latch.Peek(); set != 0 {
		t.Errorf("latch set = %v, want empty", set)
	}
}

func TestSupervisorRetriesWithinBudget(t *testing.T) {
	// k disconnects with k <= budget: exactly k reconnects, no outcome
	for _, k := range []int{1, 2, 3} {
		sup, conn, latch := newTestSupervisor(3)

		for i := 0; i < k; i++ {
			sup.HandleEvent(disconnect())
		}

		if got := conn.Requests(); got != k {
			t.Errorf("k=%d: reconnect requests = %d, want %d", k, got, k)
		}
		if got := sup.Retries(); got != k {
			t.Errorf("k=%d: retries = %d, want %d", k, got, k)
		}
		if set := latch.Peek(); set.Has(OutcomeExhausted) {
			t.Errorf("k=%d: exhausted published within budget", k)
		}
	}
}

func TestSupervisorExhaustsBudget(t *testing.T) {
	const budget = 3
	sup, conn, latch := newTestSupervisor(budget)

	// budget reconnects, then the (budget+1)-th disconnect exhausts
	for i := 0; i < budget+1; i++ {
		sup.HandleEvent(disconnect())
	}

	if got := conn.Requests(); got != budget {
		t.Errorf("reconnect requests = %d, want %d", got, budget)
	}
	set := latch.Peek()
	if !set.Has(OutcomeExhausted) {
		t.Fatal("exhausted not published after budget+1 disconnects")
	}
	if set.Has(OutcomeSucceeded) {
		t.Error("succeeded published on a failing run")
	}
	if got := sup.State(); got != StateFailed {
		t.Errorf("state = %v, want %v", got, StateFailed)
	}

	// Stray late disconnects: no further requests, no re-publish
	sup.HandleEvent(disconnect())
	sup.HandleEvent(disconnect())

	if got := conn.Requests(); got != budget {
		t.Errorf("reconnect requests after exhaustion = %d, want %d", got, budget)
	}
	if got := sup.Retries(); got != budget {
		t.Errorf("retries after exhaustion = %d, want %d", got, budget)
	}
}

func TestSupervisorAddressResetsRetries(t *testing.T) {
	sup, conn, latch := newTestSupervisor(3)

	sup.HandleEvent(Event{Kind: EventStationStarted})
	sup.HandleEvent(disconnect())
	sup.HandleEvent(disconnect())
	sup.HandleEvent(addrAcquired(t, "192.168.4.16"))

	if got := sup.Retries(); got != 0 {
		t.Errorf("retries after address = %d, want 0", got)
	}
	if got := sup.State(); got != StateConnected {
		t.Errorf("state = %v, want %v", got, StateConnected)
	}
	if !latch.Peek().Has(OutcomeSucceeded) {
		t.Fatal("succeeded not published on address acquisition")
	}

	// Counting starts from zero again after a success
	before := conn.Requests()
	sup.HandleEvent(disconnect())
	if got := sup.Retries(); got != 1 {
		t.Errorf("retries after post-success disconnect = %d, want 1", got)
	}
	if got := conn.Requests(); got != before+1 {
		t.Errorf("requests = %d, want %d", got, before+1)
	}
}

func TestSupervisorIgnoresUnhandledEvents(t *testing.T) {
	sup, conn, latch := newTestSupervisor(3)

	sup.HandleEvent(Event{Kind: EventScanResults})
	sup.HandleEvent(Event{Kind: EventLinkUp})
	sup.HandleEvent(Event{Kind: EventUnknown, Reason: "CTRL-EVENT-BSS-ADDED 0 aa:bb:cc:dd:ee:ff"})

	if got := conn.Requests(); got != 0 {
		t.Errorf("requests after ignorable events = %d, want 0", got)
	}
	if set := latch.Peek(); set != 0 {
		t.Errorf("latch set = %v, want empty", set)
	}
	if got := sup.State(); got != StateIdle {
		t.Errorf("state = %v, want %v", got, StateIdle)
	}
}

func TestSupervisorSuccessScenario(t *testing.T) {
	// StationStarted -> AddressAcquired(1.2.3.4), budget 3, no disconnects
	sup, _, _ := newTestSupervisor(3)

	go func() {
		sup.HandleEvent(Event{Kind: EventStationStarted})
		sup.HandleEvent(addrAcquired(t, "1.2.3.4"))
	}()

	set := sup.WaitForOutcome()
	if !set.Has(OutcomeSucceeded) {
		t.Fatalf("outcome set = %v, want succeeded", set)
	}
	if set.Has(OutcomeExhausted) {
		t.Errorf("outcome set = %v, exhausted must not be latched", set)
	}
}

func TestSupervisorExhaustionScenario(t *testing.T) {
	// StationStarted -> 4 disconnects with budget 3
	const budget = 3
	sup, conn, _ := newTestSupervisor(budget)

	go func() {
		sup.HandleEvent(Event{Kind: EventStationStarted})
		for i := 0; i < budget+1; i++ {
			sup.HandleEvent(disconnect())
		}
	}()

	set := sup.WaitForOutcome()
	if !set.Has(OutcomeExhausted) {
		t.Fatalf("outcome set = %v, want exhausted", set)
	}
	// initial connect + budget reconnects
	if got := conn.Requests(); got != budget+1 {
		t.Errorf("total connect requests = %d, want %d", got, budget+1)
	}
}

func TestSupervisorRetriesNeverExceedBudget(t *testing.T) {
	// Interleave disconnects and successes; the counter must stay
	// within [0, budget] throughout.
	const budget = 2
	sup, _, _ := newTestSupervisor(budget)

	events := []Event{
		{Kind: EventStationStarted},
		disconnect(),
		addrAcquired(t, "10.0.0.7"),
		disconnect(),
		disconnect(),
		disconnect(), // exhausts
		disconnect(), // dropped
		addrAcquired(t, "10.0.0.8"),
	}
	for _, ev := range events {
		sup.HandleEvent(ev)
		if got := sup.Retries(); got < 0 || got > budget {
			t.Fatalf("retries = %d after %v, want within [0, %d]", got, ev, budget)
		}
	}
}

func TestSupervisorConcurrentEvents(t *testing.T) {
	// Events from a delivery goroutine racing WaitForOutcome must not
	// deadlock or publish twice.
	sup, _, latch := newTestSupervisor(1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		sup.HandleEvent(Event{Kind: EventStationStarted})
		for i := 0; i < 10; i++ {
			sup.HandleEvent(disconnect())
		}
	}()

	set := sup.WaitForOutcome()
	if !set.Has(OutcomeExhausted) {
		t.Fatalf("outcome set = %v, want exhausted", set)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("event delivery goroutine did not finish")
	}
	if set := latch.Peek(); set.Has(OutcomeSucceeded) {
		t.Errorf("succeeded latched on a failing run: %v", set)
	}
}

func TestSupervisorForward(t *testing.T) {
	sup, _, _ := newTestSupervisor(3)

	var got []EventKind
	sup.Forward(func(ev Event) {
		got = append(got, ev.Kind)
	})

	sup.HandleEvent(Event{Kind: EventStationStarted})
	sup.HandleEvent(Event{Kind: EventScanResults})
	sup.HandleEvent(disconnect())

	want := []EventKind{EventStationStarted, EventScanResults, EventDisconnected}
	if len(got) != len(want) {
		t.Fatalf("forwarded %d events, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("forwarded[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
