package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=notification.go -destination=notification_mock.go -package=domain

// Notification is the payload emitted when a reminder comes due.
type Notification struct {
	ReminderID     string    `json:"reminder_id"`
	PatientID      string    `json:"patient_id"`
	MedicationName string    `json:"medication_name"`
	Dosage         string    `json:"dosage,omitempty"`
	ScheduledTime  string    `json:"scheduled_time"`
	Sound          Sound     `json:"sound"`
	FiredAt        time.Time `json:"fired_at"`
}

// InAppNotifier shows the visual alert inside the patient's UI.
type InAppNotifier interface {
	ShowInApp(ctx context.Context, n Notification) error
}

// PlatformNotifier raises an OS/browser level notification when the patient
// granted permission for it.
type PlatformNotifier interface {
	PermissionGranted(patientID string) bool
	ShowNotification(ctx context.Context, n Notification, autoDismiss time.Duration) error
}

// TonePlayer plays a short audible tone.
type TonePlayer interface {
	PlayTone(ctx context.Context, patientID string, frequencyHz int, duration time.Duration) error
}
