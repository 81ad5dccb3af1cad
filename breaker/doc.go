// Package breaker protects calls to unreliable dependencies by combining a
// circuit breaker with bounded, predicate-driven retries.
//
// Each dependency gets a named [Breaker]. A call goes through
// [Breaker.Execute]: if the circuit admits it, the operation runs inside a
// retry loop with exponential backoff; the aggregate outcome (one success or
// one failure, regardless of how many attempts happened internally) feeds the
// circuit's failure counter.
//
// # State machine
//
// A breaker starts closed and cycles indefinitely:
//
//	closed    --failure threshold reached--> open
//	open      --reset timeout elapsed------> half-open (one probe admitted)
//	half-open --trial successes------------> closed
//	half-open --any failure----------------> open
//
// While open, calls fail fast with [ErrCircuitOpen] and the operation is
// never invoked. While half-open, a single probe may be outstanding at a
// time; concurrent callers are rejected as if the circuit were open.
//
// # Usage
//
//	b := breaker.New("billing-api", breaker.Config{
//	    FailureThreshold: 5,
//	    ResetTimeout:     30 * time.Second,
//	    MaxRetries:       2,
//	    BaseDelay:        100 * time.Millisecond,
//	})
//
//	err := b.Execute(ctx, func(ctx context.Context) error {
//	    return callBillingAPI(ctx)
//	})
//
// Callers should distinguish [ErrCircuitOpen] (dependency presumed down,
// cheap to fall back) from [ErrRetriesExhausted] (dependency was attempted
// and failed after retries; the last underlying error is in the chain).
//
// Named breakers shared across a process live in a [Registry].
package breaker
