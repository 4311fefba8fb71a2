package ports

import "time"

// MetricsCollector is the sink for operational metrics emitted by the
// transport middleware and the HTTP layer. The Prometheus
// implementation lives in infrastructure/observability.
type MetricsCollector interface {
	// RecordLatency records the duration of one operation.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter, e.g. oracle calls by status.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordGauge sets the current value of a gauge.
	RecordGauge(metric string, value float64, labels map[string]string)
}
