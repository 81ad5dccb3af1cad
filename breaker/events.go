package breaker

// Reason explains why a state transition happened.
type Reason int

const (
	// ReasonFailureThreshold means consecutive failures reached the
	// configured threshold while closed.
	ReasonFailureThreshold Reason = iota
	// ReasonResetElapsed means the reset timeout expired and a probe was
	// admitted.
	ReasonResetElapsed
	// ReasonProbeFailure means a half-open probe failed.
	ReasonProbeFailure
	// ReasonRecovered means enough half-open probes succeeded.
	ReasonRecovered
	// ReasonManualReset means Reset was called.
	ReasonManualReset
)

// String returns the string representation of the reason.
func (r Reason) String() string {
	switch r {
	case ReasonFailureThreshold:
		return "failure-threshold"
	case ReasonResetElapsed:
		return "reset-elapsed"
	case ReasonProbeFailure:
		return "probe-failure"
	case ReasonRecovered:
		return "recovered"
	case ReasonManualReset:
		return "manual-reset"
	default:
		return "unknown"
	}
}

// Outcome classifies a single attempt inside the retry loop.
type Outcome int

const (
	// OutcomeRetried means the attempt failed and another attempt will be
	// made after a backoff delay.
	OutcomeRetried Outcome = iota
	// OutcomeSucceeded means the attempt succeeded.
	OutcomeSucceeded
	// OutcomeExhausted means the attempt failed and no further attempts
	// will be made.
	OutcomeExhausted
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeRetried:
		return "retried"
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// StateChange describes a circuit state transition.
type StateChange struct {
	Name   string
	From   State
	To     State
	Reason Reason
}

// RetryOutcome describes the outcome of one attempt inside the retry loop.
// Attempts number from 1.
type RetryOutcome struct {
	Name    string
	Attempt int
	Outcome Outcome
}

// Listener receives breaker lifecycle events.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Errors: events are best-effort; panics are caught and discarded by the
//     breaker and never affect the call path.
//   - Reentrancy: BreakerStateChanged is delivered synchronously while the
//     breaker holds its internal lock, so implementations must not call back
//     into the breaker.
type Listener interface {
	// BreakerStateChanged is called on every circuit state transition.
	BreakerStateChanged(ev StateChange)

	// RetryObserved is called after each attempt inside the retry loop.
	RetryObserved(ev RetryOutcome)
}

// ListenerFuncs adapts plain functions to the Listener interface.
// Nil fields are skipped.
type ListenerFuncs struct {
	OnStateChange func(StateChange)
	OnRetry       func(RetryOutcome)
}

// BreakerStateChanged calls OnStateChange if set.
func (l ListenerFuncs) BreakerStateChanged(ev StateChange) {
	if l.OnStateChange != nil {
		l.OnStateChange(ev)
	}
}

// RetryObserved calls OnRetry if set.
func (l ListenerFuncs) RetryObserved(ev RetryOutcome) {
	if l.OnRetry != nil {
		l.OnRetry(ev)
	}
}

// Listeners combines multiple listeners into one. Events are delivered in
// argument order.
func Listeners(ls ...Listener) Listener {
	return multiListener(ls)
}

type multiListener []Listener

func (m multiListener) BreakerStateChanged(ev StateChange) {
	for _, l := range m {
		if l != nil {
			l.BreakerStateChanged(ev)
		}
	}
}

func (m multiListener) RetryObserved(ev RetryOutcome) {
	for _, l := range m {
		if l != nil {
			l.RetryObserved(ev)
		}
	}
}
