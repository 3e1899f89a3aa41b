// Package risk forwards "adherence changed" signals to the risk-scoring
// service as outbound events. Nothing here can fail an adherence write.
package risk

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
	"github.com/KasumiMercury/primind-medication-adherence/internal/observability/metrics"
)

const (
	ReasonAdherenceRecorded = "adherence_recorded"

	defaultBuffer         = 64
	defaultPublishTimeout = 10 * time.Second
)

type Config struct {
	Buffer         int
	PublishTimeout time.Duration
}

type Notifier struct {
	publisher domain.RiskRecalcPublisher
	events    chan *domain.RiskRecalcEvent
	timeout   time.Duration
	clock     domain.Clock
	metrics   *metrics.AdherenceMetrics
}

// NewNotifier returns a notifier that drops every event when publisher is nil.
func NewNotifier(publisher domain.RiskRecalcPublisher, cfg Config, clock domain.Clock, m *metrics.AdherenceMetrics) *Notifier {
	buffer := cfg.Buffer
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	timeout := cfg.PublishTimeout
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	if clock == nil {
		clock = domain.SystemClock()
	}

	return &Notifier{
		publisher: publisher,
		events:    make(chan *domain.RiskRecalcEvent, buffer),
		timeout:   timeout,
		clock:     clock,
		metrics:   m,
	}
}

// Notify queues a recalculation request and returns immediately. When the
// queue is full the event is dropped and counted.
func (n *Notifier) Notify(ctx context.Context, patientID string) {
	if n == nil || n.publisher == nil || patientID == "" {
		return
	}

	event := &domain.RiskRecalcEvent{
		EventID:     uuid.NewString(),
		PatientID:   patientID,
		Reason:      ReasonAdherenceRecorded,
		RequestedAt: n.clock.Now(),
	}

	select {
	case n.events <- event:
	default:
		n.metrics.RecordRiskEvent(ctx, metrics.OutcomeDropped)
		slog.WarnContext(ctx, "risk recalculation queue full, event dropped",
			slog.String("event", "risk.enqueue.drop"),
			slog.String("patient_id", patientID),
			slog.String("event_id", event.EventID),
		)
	}
}

// Run publishes queued events until ctx is done.
func (n *Notifier) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			if pending := len(n.events); pending > 0 {
				slog.Warn("risk notifier stopped with pending events",
					slog.String("event", "risk.worker.stop"),
					slog.Int("pending", pending),
				)
			}
			return
		case event := <-n.events:
			n.publish(ctx, event)
		}
	}
}

func (n *Notifier) publish(ctx context.Context, event *domain.RiskRecalcEvent) {
	pubCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := n.publisher.Publish(pubCtx, event); err != nil {
		n.metrics.RecordRiskEvent(ctx, metrics.OutcomeFailure)
		slog.WarnContext(ctx, "risk recalculation publish failed",
			slog.String("event", "risk.publish.fail"),
			slog.String("event_id", event.EventID),
			slog.String("patient_id", event.PatientID),
			slog.String("error", err.Error()),
		)
		return
	}

	n.metrics.RecordRiskEvent(ctx, metrics.OutcomeSuccess)
	slog.DebugContext(ctx, "risk recalculation published",
		slog.String("event_id", event.EventID),
		slog.String("patient_id", event.PatientID),
	)
}
