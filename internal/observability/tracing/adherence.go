package tracing

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const adherenceTracerName = "github.com/KasumiMercury/primind-medication-adherence/internal/service"

func AdherenceTracer() trace.Tracer {
	return otel.Tracer(adherenceTracerName)
}

func StartTickSpan(ctx context.Context, patientID, clockKey string) (context.Context, trace.Span) {
	return AdherenceTracer().Start(ctx, "adherence.scheduler_tick",
		trace.WithAttributes(
			attribute.String("patient_id", patientID),
			attribute.String("tick.clock", clockKey),
		),
	)
}

func StartRecordSpan(ctx context.Context, reminderID string, taken bool) (context.Context, trace.Span) {
	return AdherenceTracer().Start(ctx, "adherence.record",
		trace.WithAttributes(
			attribute.String("reminder_id", reminderID),
			attribute.Bool("adherence.taken", taken),
		),
	)
}

func StartExternalAPISpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return AdherenceTracer().Start(ctx, "adherence.external_api."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordTickResult(span trace.Span, evaluated, dispatched, failed int) {
	span.SetAttributes(
		attribute.Int("tick.evaluated_count", evaluated),
		attribute.Int("tick.dispatched_count", dispatched),
		attribute.Int("tick.failed_count", failed),
	)
	span.SetStatus(codes.Ok, "")
}

func RecordResult(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}

// InjectToHTTPRequest propagates the span in ctx to an outgoing request.
func InjectToHTTPRequest(ctx context.Context, req *http.Request) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}
