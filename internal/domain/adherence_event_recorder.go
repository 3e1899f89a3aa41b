package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=adherence_event_recorder.go -destination=adherence_event_recorder_mock.go -package=domain

// AdherenceEventRecord is one adherence write as seen by the analytics sink.
type AdherenceEventRecord struct {
	PatientID  string
	SubjectKey string
	Date       string
	Taken      bool
	Linked     bool
	RecordedAt time.Time
}

// NotificationEventRecord is one dispatched reminder notification.
type NotificationEventRecord struct {
	RunID         string
	PatientID     string
	ReminderID    string
	ScheduledTime string
	Sound         string
	Platform      bool
	FiredAt       time.Time
}

// AdherenceEventRecorder ships adherence and notification events to an
// analytics store. Implementations log write failures instead of returning them.
type AdherenceEventRecorder interface {
	RecordAdherence(ctx context.Context, records []AdherenceEventRecord) error
	RecordNotifications(ctx context.Context, records []NotificationEventRecord) error
	Flush(ctx context.Context) error
	Close() error
}
