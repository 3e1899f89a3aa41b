package repository

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
)

type reminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) domain.ReminderRepository {
	return &reminderRepository{
		db: db,
	}
}

func (r *reminderRepository) ListReminders(ctx context.Context, patientID string) ([]*domain.Reminder, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("patient_id = ?", patientID))
}

func (r *reminderRepository) ListActiveReminders(ctx context.Context, patientID string) ([]*domain.Reminder, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("patient_id = ? AND active = ?", patientID, true))
}

func (r *reminderRepository) list(_ context.Context, q *gorm.DB) ([]*domain.Reminder, error) {
	var models []reminderModel
	if err := q.Order("scheduled_time ASC, id ASC").Find(&models).Error; err != nil {
		return nil, classify(err, domain.ErrReminderNotFound)
	}

	reminders := make([]*domain.Reminder, 0, len(models))
	for i := range models {
		reminders = append(reminders, models[i].toDomain())
	}
	return reminders, nil
}

func (r *reminderRepository) GetReminder(ctx context.Context, id string) (*domain.Reminder, error) {
	var m reminderModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, classify(err, domain.ErrReminderNotFound)
	}
	return m.toDomain(), nil
}

func (r *reminderRepository) CreateReminder(ctx context.Context, reminder *domain.Reminder) (*domain.Reminder, error) {
	if reminder == nil {
		return nil, ErrInvalidReminderData
	}

	m := newReminderModel(reminder)
	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, classify(err, domain.ErrReminderNotFound)
	}
	return m.toDomain(), nil
}

// UpdateReminder applies patch under a row lock. Linking a standalone reminder
// to a prescription moves its adherence history to the prescription key in the
// same transaction.
func (r *reminderRepository) UpdateReminder(ctx context.Context, id string, patch domain.ReminderPatch) (*domain.Reminder, error) {
	var updated *domain.Reminder

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m reminderModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, "id = ?", id).Error; err != nil {
			return err
		}

		current := m.toDomain()
		wasLinked := current.IsLinked()

		patch.Apply(current)
		if err := current.Validate(); err != nil {
			return err
		}

		next := newReminderModel(current)
		next.CreatedAt = m.CreatedAt
		if err := tx.Save(next).Error; err != nil {
			return err
		}

		if !wasLinked && current.IsLinked() {
			moved, err := rekeySubject(tx, current.ID, *current.PrescriptionID)
			if err != nil {
				return err
			}
			slog.InfoContext(ctx, "adherence history moved to prescription",
				slog.String("reminder_id", current.ID),
				slog.String("prescription_id", *current.PrescriptionID),
				slog.Int("records", moved),
			)
		}

		updated = next.toDomain()
		return nil
	})
	if err != nil {
		return nil, classify(err, domain.ErrReminderNotFound)
	}

	return updated, nil
}

// DeleteReminder removes the reminder only. Adherence records stay for audit.
func (r *reminderRepository) DeleteReminder(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&reminderModel{}, "id = ?", id)
	if res.Error != nil {
		return classify(res.Error, domain.ErrReminderNotFound)
	}
	if res.RowsAffected == 0 {
		return domain.ErrReminderNotFound
	}
	return nil
}

func (r *reminderRepository) ToggleReminderActive(ctx context.Context, id string) (*domain.Reminder, error) {
	var toggled reminderModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&toggled, "id = ?", id).Error; err != nil {
			return err
		}
		toggled.Active = !toggled.Active
		return tx.Model(&toggled).Update("active", toggled.Active).Error
	})
	if err != nil {
		return nil, classify(err, domain.ErrReminderNotFound)
	}

	return toggled.toDomain(), nil
}
