// Package observability provides the Prometheus-backed implementation
// of the metrics port.
package observability

import (
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/talentmatch/talentmatch/internal/ports"
)

// PrometheusCollector implements ports.MetricsCollector over a caller
// supplied registerer. Metric vectors are created lazily on first use
// and cached; label sets must stay consistent per metric name.
type PrometheusCollector struct {
	registerer prometheus.Registerer

	mu         sync.Mutex
	histograms map[string]*prometheus.HistogramVec
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
}

var _ ports.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheusCollector builds a collector registering against reg. A
// nil registerer falls back to the default registry.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &PrometheusCollector{
		registerer: reg,
		histograms: make(map[string]*prometheus.HistogramVec),
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
	}
}

// RecordLatency observes one duration in seconds on the named
// histogram.
func (p *PrometheusCollector) RecordLatency(operation string, duration time.Duration, labels map[string]string) {
	keys, values := splitLabels(labels)

	p.mu.Lock()
	hist, ok := p.histograms[operation]
	if !ok {
		hist = promauto.With(p.registerer).NewHistogramVec(prometheus.HistogramOpts{
			Name:    operation,
			Help:    "Latency of " + operation + ".",
			Buckets: prometheus.DefBuckets,
		}, keys)
		p.histograms[operation] = hist
	}
	p.mu.Unlock()

	hist.WithLabelValues(values...).Observe(duration.Seconds())
}

// RecordCounter adds value to the named counter.
func (p *PrometheusCollector) RecordCounter(metric string, value float64, labels map[string]string) {
	keys, values := splitLabels(labels)

	p.mu.Lock()
	counter, ok := p.counters[metric]
	if !ok {
		counter = promauto.With(p.registerer).NewCounterVec(prometheus.CounterOpts{
			Name: metric,
			Help: "Total of " + metric + ".",
		}, keys)
		p.counters[metric] = counter
	}
	p.mu.Unlock()

	counter.WithLabelValues(values...).Add(value)
}

// RecordGauge sets the named gauge to value.
func (p *PrometheusCollector) RecordGauge(metric string, value float64, labels map[string]string) {
	keys, values := splitLabels(labels)

	p.mu.Lock()
	gauge, ok := p.gauges[metric]
	if !ok {
		gauge = promauto.With(p.registerer).NewGaugeVec(prometheus.GaugeOpts{
			Name: metric,
			Help: "Current value of " + metric + ".",
		}, keys)
		p.gauges[metric] = gauge
	}
	p.mu.Unlock()

	gauge.WithLabelValues(values...).Set(value)
}

// splitLabels flattens a label map into sorted parallel key/value
// slices so vector label order is stable per metric.
func splitLabels(labels map[string]string) ([]string, []string) {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	values := make([]string, len(keys))
	for i, k := range keys {
		values[i] = labels[k]
	}
	return keys, values
}
