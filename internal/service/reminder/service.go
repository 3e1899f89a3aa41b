// Package reminder manages a patient's reminders. Every call is scoped to the
// session patient; reminders of other patients look like they do not exist.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
)

const defaultRepositoryTimeout = 5 * time.Second

// CreateInput is a new reminder as submitted by the patient. Unset optional
// fields get defaults: active, browser notifications on, default sound, daily.
type CreateInput struct {
	MedicationName      string                    `json:"medication_name"`
	Dosage              string                    `json:"dosage,omitempty"`
	Frequency           domain.Frequency          `json:"frequency,omitempty"`
	ScheduledTime       string                    `json:"scheduled_time"`
	Active              *bool                     `json:"active,omitempty"`
	NotificationPrefs   *domain.NotificationPrefs `json:"notification_prefs,omitempty"`
	PrescriptionID      *string                   `json:"prescription_id,omitempty"`
	SpecialInstructions string                    `json:"special_instructions,omitempty"`
}

type Service struct {
	reminders     domain.ReminderRepository
	prescriptions domain.PrescriptionRepository
	timeout       time.Duration
}

func NewService(reminders domain.ReminderRepository, prescriptions domain.PrescriptionRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = defaultRepositoryTimeout
	}
	return &Service{
		reminders:     reminders,
		prescriptions: prescriptions,
		timeout:       timeout,
	}
}

func (s *Service) List(ctx context.Context) ([]*domain.Reminder, error) {
	patientID, err := domain.PatientIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.reminders.ListReminders(ctx, patientID)
}

// Get returns the reminder when it belongs to the session patient.
func (s *Service) Get(ctx context.Context, id string) (*domain.Reminder, error) {
	patientID, err := domain.PatientIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	getCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	r, err := s.reminders.GetReminder(getCtx, id)
	if err != nil {
		return nil, err
	}
	if r.PatientID != patientID {
		return nil, domain.ErrReminderNotFound
	}
	return r, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Reminder, error) {
	patientID, err := domain.PatientIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	r := &domain.Reminder{
		ID:                  uuid.NewString(),
		PatientID:           patientID,
		MedicationName:      in.MedicationName,
		Dosage:              in.Dosage,
		Frequency:           in.Frequency,
		ScheduledTime:       in.ScheduledTime,
		Active:              true,
		NotificationPrefs:   domain.NotificationPrefs{BrowserEnabled: true, Sound: domain.SoundDefault},
		SpecialInstructions: in.SpecialInstructions,
	}
	if r.Frequency == "" {
		r.Frequency = domain.FrequencyDaily
	}
	if in.Active != nil {
		r.Active = *in.Active
	}
	if in.NotificationPrefs != nil {
		r.NotificationPrefs = *in.NotificationPrefs
		if r.NotificationPrefs.Sound == "" {
			r.NotificationPrefs.Sound = domain.SoundDefault
		}
	}
	if in.PrescriptionID != nil && *in.PrescriptionID != "" {
		id := *in.PrescriptionID
		r.PrescriptionID = &id
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	if r.IsLinked() {
		if err := s.checkPrescription(ctx, patientID, *r.PrescriptionID); err != nil {
			return nil, err
		}
	}

	createCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	created, err := s.reminders.CreateReminder(createCtx, r)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "reminder created",
		slog.String("event", "reminder.create"),
		slog.String("reminder_id", created.ID),
		slog.String("scheduled_time", created.ScheduledTime),
	)
	return created, nil
}

// Update applies patch. Setting a prescription ID requires the prescription
// to exist for the patient; an empty one unlinks.
func (s *Service) Update(ctx context.Context, id string, patch domain.ReminderPatch) (*domain.Reminder, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.PrescriptionID != nil && *patch.PrescriptionID != "" {
		if err := s.checkPrescription(ctx, current.PatientID, *patch.PrescriptionID); err != nil {
			return nil, err
		}
	}

	updateCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	updated, err := s.reminders.UpdateReminder(updateCtx, id, patch)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "reminder updated",
		slog.String("event", "reminder.update"),
		slog.String("reminder_id", id),
		slog.Bool("linked", updated.IsLinked()),
	)
	return updated, nil
}

// Delete removes the reminder. Its adherence history is kept.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	deleteCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.reminders.DeleteReminder(deleteCtx, id); err != nil {
		return err
	}

	slog.InfoContext(ctx, "reminder deleted",
		slog.String("event", "reminder.delete"),
		slog.String("reminder_id", id),
	)
	return nil
}

func (s *Service) ToggleActive(ctx context.Context, id string) (*domain.Reminder, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	toggleCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.reminders.ToggleReminderActive(toggleCtx, id)
}

func (s *Service) checkPrescription(ctx context.Context, patientID, prescriptionID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	p, err := s.prescriptions.ResolvePrescription(ctx, prescriptionID)
	if err != nil {
		if errors.Is(err, domain.ErrPrescriptionNotFound) {
			return fmt.Errorf("%w: %s", domain.ErrPrescriptionNotFound, prescriptionID)
		}
		return err
	}
	if p.PatientID != patientID {
		return fmt.Errorf("%w: %s", domain.ErrPrescriptionNotFound, prescriptionID)
	}
	return nil
}
