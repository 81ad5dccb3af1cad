package observe

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wardkit/ward/breaker"
)

// Traced wraps b.Execute so every call runs inside a span named after the
// breaker. Rejections and exhaustion are recorded on the span; the error is
// propagated unchanged.
func Traced(tracer trace.Tracer, b *breaker.Breaker) func(context.Context, breaker.Operation) error {
	spanName := "breaker.execute." + b.Name()

	return func(ctx context.Context, op breaker.Operation) error {
		ctx, span := tracer.Start(ctx, spanName, trace.WithAttributes(
			attribute.String("breaker.name", b.Name()),
		))
		defer span.End()

		err := b.Execute(ctx, op)

		span.SetAttributes(attribute.Bool("breaker.rejected", errors.Is(err, breaker.ErrCircuitOpen)))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		return err
	}
}
