package breaker

import "errors"

// Sentinel errors for breaker operations.
var (
	// ErrCircuitOpen is returned when a call is rejected without invoking
	// the operation, either because the circuit is open or because a
	// half-open probe is already outstanding. It is always safe to retry
	// later or fall back.
	ErrCircuitOpen = errors.New("breaker: circuit open")

	// ErrRetriesExhausted is returned when the operation was invoked at
	// least once and still failed after retries ran out. The last
	// underlying error is in the chain and can be matched with errors.Is
	// or errors.As.
	ErrRetriesExhausted = errors.New("breaker: retries exhausted")
)

// permanentError marks an error that must never be retried.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }

func (e *permanentError) Unwrap() error { return e.err }

// Permanent wraps err so the default retry predicate refuses to retry it.
// A nil err returns nil.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}
