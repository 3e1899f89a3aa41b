package domain

import "context"

//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=domain

type ReminderRepository interface {
	ListReminders(ctx context.Context, patientID string) ([]*Reminder, error)
	ListActiveReminders(ctx context.Context, patientID string) ([]*Reminder, error)
	GetReminder(ctx context.Context, id string) (*Reminder, error)
	CreateReminder(ctx context.Context, reminder *Reminder) (*Reminder, error)
	UpdateReminder(ctx context.Context, id string, patch ReminderPatch) (*Reminder, error)
	DeleteReminder(ctx context.Context, id string) error
	ToggleReminderActive(ctx context.Context, id string) (*Reminder, error)
}

type AdherenceRepository interface {
	ListAdherenceBySubject(ctx context.Context, subjectKey string) ([]*AdherenceRecord, error)
	ListAdherenceByPatient(ctx context.Context, patientID string) ([]*AdherenceRecord, error)
	// UpsertAdherenceRecord inserts the record or overwrites the existing one for
	// the same (SubjectKey, Date) atomically.
	UpsertAdherenceRecord(ctx context.Context, record *AdherenceRecord) (*AdherenceRecord, error)
	// RekeySubject moves records from one subject key to another. Days already
	// present under the target key are kept and the source rows for them dropped.
	RekeySubject(ctx context.Context, fromKey, toKey string) (int, error)
}

type PrescriptionRepository interface {
	ResolvePrescription(ctx context.Context, id string) (*Prescription, error)
}
