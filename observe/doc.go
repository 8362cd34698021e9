// Package observe implements the kernel's boundary collaborators for
// metrics, tracing, and logging.
//
// Metrics sinks satisfy dispatch.MetricsSink: Noop when disabled, LogSink
// for slog debug output, OTel for OpenTelemetry instruments, Prom for
// Prometheus collectors, Multi to fan recordings out, and Buffered to
// decouple a slow sink from the dispatch path — recording is fire-and-forget
// with an explicit drop counter, never a block.
//
// Tracer satisfies dispatch.Tracer, wrapping each dispatch in an
// OpenTelemetry span keyed by the event's correlation identifier. Both the
// OTel metrics and the tracer use the global otel providers; configure them
// before use or the instruments are no-ops.
package observe
