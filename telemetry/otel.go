package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/n-r-w/docpager"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Otel implements ITelemetry with OpenTelemetry tracing and metrics.
type Otel struct {
	tracer   trace.Tracer
	duration metric.Float64Histogram
	requests metric.Int64Counter
	errors   metric.Int64Counter
}

var _ ITelemetry = (*Otel)(nil)

// NewOtel creates the instruments on meter. Spans are started by tracer.
func NewOtel(tracer trace.Tracer, meter metric.Meter) (*Otel, error) {
	if tracer == nil || meter == nil {
		return nil, errors.New("NewOtel: tracer and meter cannot be nil")
	}

	duration, err := meter.Float64Histogram("docstore.request.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Duration of document store requests"))
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	requests, err := meter.Int64Counter("docstore.requests",
		metric.WithDescription("Number of document store requests"))
	if err != nil {
		return nil, fmt.Errorf("create request counter: %w", err)
	}

	errs, err := meter.Int64Counter("docstore.errors",
		metric.WithDescription("Number of failed document store requests"))
	if err != nil {
		return nil, fmt.Errorf("create error counter: %w", err)
	}

	return &Otel{
		tracer:   tracer,
		duration: duration,
		requests: requests,
		errors:   errs,
	}, nil
}

// StartSpan implements ITelemetry.
func (o *Otel) StartSpan(ctx context.Context, name string) (context.Context, ISpan) {
	ctx, span := o.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindClient))
	return ctx, &otelSpan{span: span}
}

// ObserveRequestDuration implements ITelemetry.
func (o *Otel) ObserveRequestDuration(ctx context.Context, operation string, duration time.Duration) {
	o.duration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String("operation", operation)))
}

// ObserveRequest implements ITelemetry.
func (o *Otel) ObserveRequest(ctx context.Context, operation string) {
	o.requests.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

// ObserveRequestError implements ITelemetry. The span in ctx is marked as failed.
func (o *Otel) ObserveRequestError(ctx context.Context, operation string, err error) {
	o.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("kind", docpager.KindOf(err).String()),
	))

	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

type otelSpan struct {
	span trace.Span
}

func (s *otelSpan) AddAttributes(attributes []Attribute) {
	kv := make([]attribute.KeyValue, 0, len(attributes))
	for _, a := range attributes {
		kv = append(kv, toKeyValue(a))
	}
	s.span.SetAttributes(kv...)
}

func (s *otelSpan) End() {
	s.span.End()
}

func toKeyValue(a Attribute) attribute.KeyValue {
	switch v := a.Value.(type) {
	case string:
		return attribute.String(a.Key, v)
	case int:
		return attribute.Int(a.Key, v)
	case int64:
		return attribute.Int64(a.Key, v)
	case bool:
		return attribute.Bool(a.Key, v)
	case fmt.Stringer:
		return attribute.Stringer(a.Key, v)
	default:
		return attribute.String(a.Key, fmt.Sprint(v))
	}
}
