package breaker

import (
	"errors"
	"testing"
)

var errTest = errors.New("test error")

func TestListenerFuncs_NilFieldsSkipped(t *testing.T) {
	var l ListenerFuncs

	// Must not panic.
	l.BreakerStateChanged(StateChange{})
	l.RetryObserved(RetryOutcome{})
}

func TestListeners_FanOut(t *testing.T) {
	var first, second []StateChange

	combined := Listeners(
		ListenerFuncs{OnStateChange: func(ev StateChange) { first = append(first, ev) }},
		nil,
		ListenerFuncs{OnStateChange: func(ev StateChange) { second = append(second, ev) }},
	)

	ev := StateChange{Name: "db", From: StateClosed, To: StateOpen, Reason: ReasonFailureThreshold}
	combined.BreakerStateChanged(ev)
	combined.RetryObserved(RetryOutcome{Name: "db", Attempt: 1, Outcome: OutcomeRetried})

	if len(first) != 1 || first[0] != ev {
		t.Errorf("first listener saw %v, want %v", first, ev)
	}
	if len(second) != 1 || second[0] != ev {
		t.Errorf("second listener saw %v, want %v", second, ev)
	}
}

func TestReason_String(t *testing.T) {
	tests := []struct {
		reason Reason
		want   string
	}{
		{ReasonFailureThreshold, "failure-threshold"},
		{ReasonResetElapsed, "reset-elapsed"},
		{ReasonProbeFailure, "probe-failure"},
		{ReasonRecovered, "recovered"},
		{ReasonManualReset, "manual-reset"},
		{Reason(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.reason.String(); got != tt.want {
				t.Errorf("Reason.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOutcome_String(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeRetried, "retried"},
		{OutcomeSucceeded, "succeeded"},
		{OutcomeExhausted, "exhausted"},
		{Outcome(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.outcome.String(); got != tt.want {
				t.Errorf("Outcome.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPermanent(t *testing.T) {
	if Permanent(nil) != nil {
		t.Error("Permanent(nil) must be nil")
	}

	err := Permanent(errTest)
	if !IsPermanent(err) {
		t.Error("IsPermanent() = false for a Permanent error")
	}
	if IsPermanent(errTest) {
		t.Error("IsPermanent() = true for a plain error")
	}
	if err.Error() != errTest.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), errTest.Error())
	}
}
