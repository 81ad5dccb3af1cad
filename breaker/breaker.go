package breaker

import "context"

// Operation is a caller-supplied unit of work representing the protected
// call. It should honor ctx cancellation; the breaker imposes no implicit
// timeout of its own.
type Operation func(ctx context.Context) error

// Execute runs op through the breaker.
//
// If the circuit rejects the call, Execute returns ErrCircuitOpen without
// invoking op. Otherwise op runs inside the retry loop; on overall success
// Execute returns nil, on overall exhaustion it returns an error wrapping
// ErrRetriesExhausted and the last underlying error. Exactly one aggregate
// success or failure is reported to the circuit per call, regardless of how
// many attempts happened internally.
func (b *Breaker) Execute(ctx context.Context, op Operation) error {
	if err := b.admit(); err != nil {
		return err
	}

	if err := b.runAttempts(ctx, op); err != nil {
		b.recordFailure()
		return err
	}

	b.recordSuccess()
	return nil
}

// Do runs fn through b and returns its typed result. On failure the zero
// value is returned along with the error from Execute.
func Do[T any](ctx context.Context, b *Breaker, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T

	err := b.Execute(ctx, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
