package adherencerecorder

import (
	"context"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.AdherenceEventRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordAdherence(_ context.Context, _ []domain.AdherenceEventRecord) error {
	return nil
}

func (n *noopRecorder) RecordNotifications(_ context.Context, _ []domain.NotificationEventRecord) error {
	return nil
}

func (n *noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
