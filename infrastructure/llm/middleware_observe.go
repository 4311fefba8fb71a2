package llm

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/talentmatch/talentmatch/internal/ports"
)

// measured records per-request latency, outcome counters, and token
// usage through the metrics port.
type measured struct {
	next      Generator
	collector ports.MetricsCollector
}

// Metrics returns middleware publishing request metrics to the collector.
func Metrics(collector ports.MetricsCollector) Middleware {
	return func(next Generator) Generator {
		return &measured{next: next, collector: collector}
	}
}

func (m *measured) Generate(ctx context.Context, prompt string, opts RequestOptions) (Completion, error) {
	start := time.Now()
	completion, err := m.next.Generate(ctx, prompt, opts)

	labels := map[string]string{"model": m.next.Model()}
	m.collector.RecordLatency("llm_request_duration_seconds", time.Since(start), labels)
	if err != nil {
		m.collector.RecordCounter("llm_requests_failed_total", 1, labels)
		return completion, err
	}
	m.collector.RecordCounter("llm_requests_total", 1, labels)
	m.collector.RecordCounter("llm_tokens_in_total", float64(completion.TokensIn), labels)
	m.collector.RecordCounter("llm_tokens_out_total", float64(completion.TokensOut), labels)
	return completion, nil
}

func (m *measured) Model() string { return m.next.Model() }

const tracerName = "talentmatch/llm"

// traced wraps each request in an OpenTelemetry span.
type traced struct {
	next   Generator
	tracer oteltrace.Tracer
}

// Tracing returns middleware creating a span per request.
func Tracing() Middleware {
	return func(next Generator) Generator {
		return &traced{next: next, tracer: otel.Tracer(tracerName)}
	}
}

func (t *traced) Generate(ctx context.Context, prompt string, opts RequestOptions) (Completion, error) {
	ctx, span := t.tracer.Start(ctx, "llm.generate",
		oteltrace.WithAttributes(
			attribute.String("llm.model", t.next.Model()),
			attribute.Int("llm.prompt_chars", len(prompt)),
		))
	defer span.End()

	completion, err := t.next.Generate(ctx, prompt, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return completion, err
	}
	span.SetAttributes(
		attribute.Int("llm.tokens_in", completion.TokensIn),
		attribute.Int("llm.tokens_out", completion.TokensOut),
	)
	return completion, nil
}

func (t *traced) Model() string { return t.next.Model() }
