package health

import (
	"context"
	"fmt"
	"time"

	"github.com/wardkit/ward/breaker"
)

// BreakerChecker reports the health of a dependency from its breaker state.
// A closed circuit means the dependency is reachable, half-open means it is
// recovering, open means it is down. The check never calls the dependency
// itself, so it is cheap enough for frequent probe intervals.
type BreakerChecker struct {
	b *breaker.Breaker
}

// NewBreakerChecker creates a checker backed by the given breaker.
func NewBreakerChecker(b *breaker.Breaker) *BreakerChecker {
	return &BreakerChecker{b: b}
}

// Name returns the breaker's dependency name.
func (c *BreakerChecker) Name() string {
	return c.b.Name()
}

// Check maps the breaker's current state to a health status.
func (c *BreakerChecker) Check(ctx context.Context) Result {
	snap := c.b.Snapshot()

	details := map[string]any{
		"state":                snap.State.String(),
		"consecutive_failures": snap.ConsecutiveFailures,
	}

	switch snap.State {
	case breaker.StateClosed:
		return Healthy("circuit closed").WithDetails(details)

	case breaker.StateHalfOpen:
		details["trial_successes"] = snap.TrialSuccesses
		return Degraded("circuit half-open, probing recovery").WithDetails(details)

	default:
		details["opened_at"] = snap.OpenedAt.UTC().Format(time.RFC3339)
		r := Unhealthy(fmt.Sprintf("circuit open since %s", snap.OpenedAt.UTC().Format(time.RFC3339)))
		r.Err = breaker.ErrCircuitOpen
		return r.WithDetails(details)
	}
}

// RegisterBreakers registers a checker for every breaker currently in the
// registry. Breakers created afterwards are not picked up; call again after
// registering new ones.
func RegisterBreakers(agg *Aggregator, reg *breaker.Registry) {
	for _, b := range reg.Breakers() {
		agg.Register(b.Name(), NewBreakerChecker(b))
	}
}
