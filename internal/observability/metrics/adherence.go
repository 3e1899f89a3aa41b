package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	adherenceMeterName = "adherence.service"
)

// Outcome labels shared by the adherence counters.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeDropped  = "dropped"
	OutcomeRejected = "rejected"
)

type AdherenceMetrics struct {
	notificationsDispatched metric.Int64Counter
	dispatchSkipped         metric.Int64Counter
	adherenceWrites         metric.Int64Counter
	adherenceRejections     metric.Int64Counter
	tickDuration            metric.Float64Histogram
	riskEvents              metric.Int64Counter
}

func NewAdherenceMetrics() (*AdherenceMetrics, error) {
	meter := otel.Meter(adherenceMeterName)

	notificationsDispatched, err := meter.Int64Counter(
		"adherence_notifications_dispatched_total",
		metric.WithDescription("Total number of reminder notifications dispatched"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return nil, err
	}

	dispatchSkipped, err := meter.Int64Counter(
		"adherence_dispatch_skipped_total",
		metric.WithDescription("Due reminders that were not dispatched, by reason"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return nil, err
	}

	adherenceWrites, err := meter.Int64Counter(
		"adherence_records_written_total",
		metric.WithDescription("Adherence record writes by outcome"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, err
	}

	adherenceRejections, err := meter.Int64Counter(
		"adherence_records_rejected_total",
		metric.WithDescription("Adherence record attempts rejected before the write, by reason"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, err
	}

	tickDuration, err := meter.Float64Histogram(
		"adherence_scheduler_tick_duration_seconds",
		metric.WithDescription("Scheduler tick duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
		),
	)
	if err != nil {
		return nil, err
	}

	riskEvents, err := meter.Int64Counter(
		"adherence_risk_events_total",
		metric.WithDescription("Risk recalculation events by outcome"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}

	return &AdherenceMetrics{
		notificationsDispatched: notificationsDispatched,
		dispatchSkipped:         dispatchSkipped,
		adherenceWrites:         adherenceWrites,
		adherenceRejections:     adherenceRejections,
		tickDuration:            tickDuration,
		riskEvents:              riskEvents,
	}, nil
}

// Every recorder tolerates a nil receiver so components can run without metrics.

func (m *AdherenceMetrics) RecordNotificationDispatched(ctx context.Context, sound string, platform bool) {
	if m == nil {
		return
	}
	m.notificationsDispatched.Add(ctx, 1, metric.WithAttributes(
		attribute.String("sound", sound),
		attribute.Bool("platform", platform),
	))
}

func (m *AdherenceMetrics) RecordDispatchSkipped(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.dispatchSkipped.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

func (m *AdherenceMetrics) RecordAdherenceWrite(ctx context.Context, outcome string, taken bool) {
	if m == nil {
		return
	}
	m.adherenceWrites.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
		attribute.Bool("taken", taken),
	))
}

func (m *AdherenceMetrics) RecordAdherenceRejected(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.adherenceRejections.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

func (m *AdherenceMetrics) RecordTickDuration(ctx context.Context, duration time.Duration) {
	if m == nil {
		return
	}
	m.tickDuration.Record(ctx, duration.Seconds())
}

func (m *AdherenceMetrics) RecordRiskEvent(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.riskEvents.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}
