// Package instrumentation provides OpenTelemetry metrics and tracing for
// the cursor-todo application.
//
// The Provider owns the meter and tracer providers and a Metrics recorder
// covering the application's observable surface:
//
//   - HTTP requests served by the web app
//   - Operations against the hosted table store (list/insert/update/delete)
//   - Authentication attempts and token refreshes
//   - Active browser sessions
//
// Metrics export through Prometheus by default; OTLP and stdout exporters
// can be selected via environment variables. Tracing is off by default and
// can be enabled with an OTLP or stdout exporter.
//
// # Configuration
//
// Configuration is environment-driven (see DefaultConfig):
//
//	INSTRUMENTATION_ENABLED  enable/disable everything (default true)
//	METRICS_EXPORTER         prometheus | otlp | stdout
//	TRACING_EXPORTER         none | otlp | stdout
//	OTEL_EXPORTER_OTLP_ENDPOINT, OTEL_EXPORTER_OTLP_INSECURE
//	OTEL_TRACES_SAMPLER_ARG  trace sampling rate (0.0-1.0)
package instrumentation
