package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wardkit/ward/breaker"
)

var errDown = errors.New("dependency down")

// testClock lets the tests push a breaker through its reset timeout without
// sleeping.
type testClock struct {
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time                  { return c.now }
func (c *testClock) Since(t time.Time) time.Duration { return c.now.Sub(t) }
func (c *testClock) Advance(d time.Duration)         { c.now = c.now.Add(d) }

func (c *testClock) NewTimer(d time.Duration) breaker.Timer {
	c.now = c.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return firedTimer{ch: ch}
}

type firedTimer struct {
	ch chan time.Time
}

func (t firedTimer) C() <-chan time.Time { return t.ch }
func (t firedTimer) Stop() bool          { return false }

func failBreaker(t *testing.T, clock *testClock) *breaker.Breaker {
	t.Helper()

	b := breaker.New("billing-api", breaker.Config{
		FailureThreshold: 1,
		ResetTimeout:     time.Second,
		MaxRetries:       -1,
		Clock:            clock,
	})
	if err := b.Execute(context.Background(), func(ctx context.Context) error {
		return errDown
	}); err == nil {
		t.Fatal("expected the priming call to fail")
	}
	return b
}

func TestBreakerChecker_Closed(t *testing.T) {
	b := breaker.New("billing-api", breaker.Config{})
	c := NewBreakerChecker(b)

	if c.Name() != "billing-api" {
		t.Errorf("Name() = %q, want billing-api", c.Name())
	}

	result := c.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("Status = %v, want healthy", result.Status)
	}
	if result.Details["state"] != "closed" {
		t.Errorf("state detail = %v, want closed", result.Details["state"])
	}
}

func TestBreakerChecker_Open(t *testing.T) {
	b := failBreaker(t, newTestClock())
	result := NewBreakerChecker(b).Check(context.Background())

	if result.Status != StatusUnhealthy {
		t.Errorf("Status = %v, want unhealthy", result.Status)
	}
	if !errors.Is(result.Err, breaker.ErrCircuitOpen) {
		t.Errorf("Err = %v, want ErrCircuitOpen", result.Err)
	}
	if result.Details["opened_at"] == nil {
		t.Error("opened_at detail missing")
	}
}

func TestBreakerChecker_HalfOpen(t *testing.T) {
	clock := newTestClock()
	b := failBreaker(t, clock)
	clock.Advance(time.Second)

	// The probe holds the breaker half-open while it runs; check during it.
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = b.Execute(context.Background(), func(ctx context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()

	<-started
	result := NewBreakerChecker(b).Check(context.Background())
	close(release)
	<-done

	if result.Status != StatusDegraded {
		t.Errorf("Status = %v, want degraded", result.Status)
	}
	if result.Details["state"] != "half-open" {
		t.Errorf("state detail = %v, want half-open", result.Details["state"])
	}
}

func TestRegisterBreakers(t *testing.T) {
	reg := breaker.NewRegistry()
	reg.Get("billing-api", breaker.Config{})
	reg.Get("search", breaker.Config{})

	agg := NewAggregator()
	RegisterBreakers(agg, reg)

	names := agg.CheckerNames()
	if len(names) != 2 || names[0] != "billing-api" || names[1] != "search" {
		t.Errorf("CheckerNames() = %v, want [billing-api search]", names)
	}

	results := agg.CheckAll(context.Background())
	for name, result := range results {
		if result.Status != StatusHealthy {
			t.Errorf("%s: Status = %v, want healthy", name, result.Status)
		}
	}
}
