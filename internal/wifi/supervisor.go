package wifi

import (
	"sync"

	"go.uber.org/zap"
)

// ConnState represents the supervisor's view of the connection attempt
type ConnState int

const (
	// StateIdle means bring-up has not started yet
	StateIdle ConnState = iota
	// StateConnecting means a connect request is outstanding
	StateConnecting
	// StateConnected means an IP lease is held
	StateConnected
	// StateFailed means the retry budget is exhausted
	StateFailed
)

// String returns a human-readable name for the connection state
func (s ConnState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateFailed:
		return "failed"
	default:
		return "invalid"
	}
}

// Supervisor converts lifecycle events into a bring-up decision.
//
// It owns the retry counter and attempt state exclusively, issues connect
// requests through the Connector, and publishes exactly one terminal
// outcome per run to the latch. Events it does not handle are dropped.
type Supervisor struct {
	connector Connector
	budget    int
	latch     *Latch
	log       *zap.Logger

	mu        sync.Mutex
	retries   int
	state     ConnState
	exhausted bool

	// forward, when set, receives every event after the supervisor has
	// processed it. Used by the watch TUI; must not block.
	forward func(Event)
}

// NewSupervisor creates a supervisor with the given retry budget.
// A negative budget is treated as zero (fail on the first disconnect).
func NewSupervisor(connector Connector, budget int, latch *Latch, log *zap.Logger) *Supervisor {
	if budget < 0 {
		budget = 0
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Supervisor{
		connector: connector,
		budget:    budget,
		latch:     latch,
		log:       log,
		state:     StateIdle,
	}
}

// Forward registers a non-blocking observer for processed events.
// Must be called before the station starts delivering events.
func (s *Supervisor) Forward(fn func(Event)) {
	s.mu.Lock()
	s.forward = fn
	s.mu.Unlock()
}

// HandleEvent implements Sink. Safe for use from the event-delivery
// goroutine; never blocks.
func (s *Supervisor) HandleEvent(ev Event) {
	s.mu.Lock()

	switch ev.Kind {
	case EventStationStarted:
		s.state = StateConnecting
		s.log.Info("station started, connecting")
		s.requestConnectLocked()

	case EventDisconnected:
		s.handleDisconnectLocked(ev)

	case EventAddressAcquired:
		s.retries = 0
		s.state = StateConnected
		s.log.Info("got ip", zap.Stringer("addr", ev.Addr))
		s.latch.Publish(OutcomeSucceeded)

	default:
		// Not ours. The event set is open; drop without comment.
		s.log.Debug("ignoring event", zap.Stringer("event", ev))
	}

	fn := s.forward
	s.mu.Unlock()

	if fn != nil {
		fn(ev)
	}
}

// handleDisconnectLocked applies the retry policy. Caller holds s.mu.
func (s *Supervisor) handleDisconnectLocked(ev Event) {
	if s.exhausted {
		// Stray late event after the terminal outcome; the latch has
		// already fired and must not fire again.
		s.log.Debug("disconnect after exhaustion, dropping",
			zap.String("reason", ev.Reason))
		return
	}

	if s.retries < s.budget {
		s.retries++
		s.state = StateConnecting
		s.log.Info("disconnected, retrying",
			zap.String("reason", ev.Reason),
			zap.Int("attempt", s.retries),
			zap.Int("budget", s.budget))
		s.requestConnectLocked()
		return
	}

	s.exhausted = true
	s.state = StateFailed
	s.log.Warn("retry budget exhausted",
		zap.String("reason", ev.Reason),
		zap.Int("budget", s.budget))
	s.latch.Publish(OutcomeExhausted)
}

func (s *Supervisor) requestConnectLocked() {
	if s.connector != nil {
		s.connector.RequestConnect()
	}
}

// WaitForOutcome blocks until a terminal outcome has been published and
// returns the latched set. Called once per run from the startup flow.
func (s *Supervisor) WaitForOutcome() OutcomeSet {
	return s.latch.Wait()
}

// State returns a snapshot of the attempt state.
func (s *Supervisor) State() ConnState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Retries returns the current retry count.
func (s *Supervisor) Retries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.retries
}
