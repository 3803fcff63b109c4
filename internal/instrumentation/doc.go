// Package instrumentation provides OpenTelemetry metrics, tracing, and
// audit logging for the frontdesk server.
//
// Metrics cover MCP tool invocations, Google API operations, AI
// completions, and collateral delivery attempts. The default exporter is
// Prometheus; OTLP and stdout exporters are available via configuration.
//
// Cardinality is controlled by default: user identifiers are reduced to
// their domain before being attached to metrics, and high-cardinality
// labels require METRICS_DETAILED_LABELS=true.
package instrumentation
