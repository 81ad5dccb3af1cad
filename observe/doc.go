// Package observe provides telemetry for breaker activity: OpenTelemetry
// metrics and traces plus a structured JSON logger.
//
// It is a pure instrumentation library: no execution, no transport, no I/O
// beyond exporter setup. Consumers build an Observer, derive a breaker
// listener from its meter and logger with NewBreakerListener, and hand the
// listener to a breaker.Registry.
package observe
