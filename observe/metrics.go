package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/wardkit/ward/breaker"
)

// breakerMetrics records circuit activity on an OpenTelemetry meter.
type breakerMetrics struct {
	stateGauge  metric.Int64Gauge
	transitions metric.Int64Counter
	retries     metric.Int64Counter
}

func newBreakerMetrics(meter metric.Meter) (*breakerMetrics, error) {
	stateGauge, err := meter.Int64Gauge(
		"breaker.state",
		metric.WithDescription("Current circuit state per breaker (0=closed, 1=open, 2=half-open)"),
		metric.WithUnit("{state}"),
	)
	if err != nil {
		return nil, err
	}

	transitions, err := meter.Int64Counter(
		"breaker.transitions",
		metric.WithDescription("Total number of circuit state transitions"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, err
	}

	retries, err := meter.Int64Counter(
		"breaker.retry.outcomes",
		metric.WithDescription("Attempt outcomes observed inside the retry loop"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	return &breakerMetrics{
		stateGauge:  stateGauge,
		transitions: transitions,
		retries:     retries,
	}, nil
}

func (m *breakerMetrics) recordStateChange(ev breaker.StateChange) {
	ctx := context.Background()

	m.stateGauge.Record(ctx, int64(ev.To),
		metric.WithAttributes(attribute.String("breaker.name", ev.Name)))

	m.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("breaker.name", ev.Name),
		attribute.String("from", ev.From.String()),
		attribute.String("to", ev.To.String()),
		attribute.String("reason", ev.Reason.String()),
	))
}

func (m *breakerMetrics) recordRetry(ev breaker.RetryOutcome) {
	m.retries.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("breaker.name", ev.Name),
		attribute.String("outcome", ev.Outcome.String()),
	))
}

// breakerListener implements breaker.Listener over metrics and a logger.
type breakerListener struct {
	metrics *breakerMetrics
	logger  Logger
}

// NewBreakerListener builds a breaker.Listener that records state
// transitions and retry outcomes on meter and logs transitions through
// logger. A nil logger disables logging.
//
// The listener never returns errors into the call path; hand it to
// breaker.Config.Listener or breaker.WithListener.
func NewBreakerListener(meter metric.Meter, logger Logger) (breaker.Listener, error) {
	m, err := newBreakerMetrics(meter)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = &noopLogger{}
	}
	return &breakerListener{metrics: m, logger: logger}, nil
}

func (l *breakerListener) BreakerStateChanged(ev breaker.StateChange) {
	l.metrics.recordStateChange(ev)

	ctx := context.Background()
	log := l.logger.WithBreaker(ev.Name)
	fields := []Field{
		{Key: "from", Value: ev.From.String()},
		{Key: "to", Value: ev.To.String()},
		{Key: "reason", Value: ev.Reason.String()},
	}

	if ev.To == breaker.StateOpen {
		log.Warn(ctx, "circuit opened", fields...)
	} else {
		log.Info(ctx, "circuit state changed", fields...)
	}
}

func (l *breakerListener) RetryObserved(ev breaker.RetryOutcome) {
	l.metrics.recordRetry(ev)

	l.logger.WithBreaker(ev.Name).Debug(context.Background(), "attempt finished",
		Field{Key: "attempt", Value: ev.Attempt},
		Field{Key: "outcome", Value: ev.Outcome.String()},
	)
}
