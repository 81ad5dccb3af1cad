package breaker

import (
	"sync"
	"time"
)

// Breaker is a named circuit breaker guarding one dependency. All methods
// are safe for concurrent use; a single instance is meant to be shared by
// every caller of that dependency for the process lifetime.
type Breaker struct {
	name  string
	cfg   Config
	retry RetryPolicy
	clock Clock

	mu             sync.Mutex
	state          State
	failures       int
	trialSuccesses int
	openedAt       time.Time
	probeInFlight  bool
}

// New creates a breaker for the named dependency. Zero config fields take
// the documented defaults.
func New(name string, cfg Config) *Breaker {
	cfg = cfg.withDefaults()

	return &Breaker{
		name:  name,
		cfg:   cfg,
		clock: cfg.Clock,
		state: StateClosed,
		retry: RetryPolicy{
			MaxRetries:    cfg.MaxRetries,
			BaseDelay:     cfg.BaseDelay,
			BackoffFactor: cfg.BackoffFactor,
			MaxDelay:      cfg.MaxDelay,
			RetryOn:       cfg.RetryOn,
		},
	}
}

// Name returns the breaker's dependency name.
func (b *Breaker) Name() string {
	return b.name
}

// State returns the current circuit state. This is a pure read: the
// open-to-half-open transition only happens inside admission, where the
// probe permit is granted atomically.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Snapshot contains a point-in-time view of the breaker's counters.
type Snapshot struct {
	State               State
	ConsecutiveFailures int
	TrialSuccesses      int
	OpenedAt            time.Time
}

// Snapshot returns the breaker's current counters.
func (b *Breaker) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	return Snapshot{
		State:               b.state,
		ConsecutiveFailures: b.failures,
		TrialSuccesses:      b.trialSuccesses,
		OpenedAt:            b.openedAt,
	}
}

// Reset forces the breaker back to the closed state and clears its counters.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateClosed {
		b.failures = 0
		return
	}
	b.transitionLocked(StateClosed, ReasonManualReset)
}

// admit decides whether a call may proceed. While open it admits only after
// the reset timeout, transitioning to half-open and granting exactly one
// probe permit; while half-open it rejects callers as long as a probe is
// outstanding.
func (b *Breaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateOpen:
		if b.clock.Since(b.openedAt) < b.cfg.ResetTimeout {
			return ErrCircuitOpen
		}
		b.transitionLocked(StateHalfOpen, ReasonResetElapsed)
		b.probeInFlight = true
		return nil

	case StateHalfOpen:
		if b.probeInFlight {
			return ErrCircuitOpen
		}
		b.probeInFlight = true
		return nil

	default:
		return nil
	}
}

// recordSuccess reports the aggregate success of an admitted call.
func (b *Breaker) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures = 0

	case StateHalfOpen:
		b.probeInFlight = false
		b.trialSuccesses++
		if b.trialSuccesses >= b.cfg.HalfOpenTrials {
			b.transitionLocked(StateClosed, ReasonRecovered)
		}
	}
	// StateOpen: a call admitted while still closed finished after the
	// breaker opened; its late report carries no signal.
}

// recordFailure reports the aggregate failure of an admitted call.
func (b *Breaker) recordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.transitionLocked(StateOpen, ReasonFailureThreshold)
		}

	case StateHalfOpen:
		b.transitionLocked(StateOpen, ReasonProbeFailure)
	}
}

// transitionLocked moves the circuit to a new state, resets the counters the
// new state requires, and notifies the listener. Callers must hold b.mu.
func (b *Breaker) transitionLocked(to State, reason Reason) {
	from := b.state
	b.state = to
	b.probeInFlight = false
	b.trialSuccesses = 0

	switch to {
	case StateClosed:
		b.failures = 0
	case StateOpen:
		b.openedAt = b.clock.Now()
	}

	b.notifyStateChange(StateChange{Name: b.name, From: from, To: to, Reason: reason})
}

func (b *Breaker) notifyStateChange(ev StateChange) {
	if b.cfg.Listener == nil {
		return
	}
	defer func() {
		_ = recover() // instrumentation must never affect the call path
	}()
	b.cfg.Listener.BreakerStateChanged(ev)
}

func (b *Breaker) notifyRetry(attempt int, outcome Outcome) {
	if b.cfg.Listener == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	b.cfg.Listener.RetryObserved(RetryOutcome{Name: b.name, Attempt: attempt, Outcome: outcome})
}
