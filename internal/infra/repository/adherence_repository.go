package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
)

type adherenceRepository struct {
	db *gorm.DB
}

func NewAdherenceRepository(db *gorm.DB) domain.AdherenceRepository {
	return &adherenceRepository{
		db: db,
	}
}

func (r *adherenceRepository) ListAdherenceBySubject(ctx context.Context, subjectKey string) ([]*domain.AdherenceRecord, error) {
	return r.list(r.db.WithContext(ctx).Where("subject_key = ?", subjectKey))
}

func (r *adherenceRepository) ListAdherenceByPatient(ctx context.Context, patientID string) ([]*domain.AdherenceRecord, error) {
	return r.list(r.db.WithContext(ctx).Where("patient_id = ?", patientID))
}

func (r *adherenceRepository) list(q *gorm.DB) ([]*domain.AdherenceRecord, error) {
	var models []adherenceRecordModel
	if err := q.Order("date DESC, subject_key ASC").Find(&models).Error; err != nil {
		return nil, classify(err, domain.ErrRepositoryUnavailable)
	}

	records := make([]*domain.AdherenceRecord, 0, len(models))
	for i := range models {
		records = append(records, models[i].toDomain())
	}
	return records, nil
}

// UpsertAdherenceRecord relies on the (subject_key, date) unique index: the
// insert either creates the day's row or overwrites it in one statement.
func (r *adherenceRepository) UpsertAdherenceRecord(ctx context.Context, record *domain.AdherenceRecord) (*domain.AdherenceRecord, error) {
	if record == nil || record.SubjectKey == "" || record.Date == "" {
		return nil, ErrInvalidAdherenceData
	}

	m := newAdherenceRecordModel(record)
	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	var stored adherenceRecordModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "subject_key"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"patient_id", "reminder_id", "taken", "missed_reason", "recorded_at"}),
		}).Create(m).Error
		if err != nil {
			return err
		}

		// The conflicting row keeps its original id, so read back what is stored.
		return tx.First(&stored, "subject_key = ? AND date = ?", m.SubjectKey, m.Date).Error
	})
	if err != nil {
		return nil, classify(err, domain.ErrRepositoryUnavailable)
	}

	return stored.toDomain(), nil
}

func (r *adherenceRepository) RekeySubject(ctx context.Context, fromKey, toKey string) (int, error) {
	if fromKey == "" || toKey == "" {
		return 0, ErrInvalidAdherenceData
	}
	if fromKey == toKey {
		return 0, nil
	}

	var moved int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := rekeySubject(tx, fromKey, toKey)
		moved = n
		return err
	})
	if err != nil {
		return 0, classify(err, domain.ErrRepositoryUnavailable)
	}
	return moved, nil
}

// rekeySubject must run inside a transaction. Days already recorded under
// toKey win; the fromKey rows for those days are dropped.
func rekeySubject(tx *gorm.DB, fromKey, toKey string) (int, error) {
	taken := tx.Model(&adherenceRecordModel{}).Select("date").Where("subject_key = ?", toKey)

	if err := tx.Where("subject_key = ? AND date IN (?)", fromKey, taken).
		Delete(&adherenceRecordModel{}).Error; err != nil {
		return 0, err
	}

	res := tx.Model(&adherenceRecordModel{}).
		Where("subject_key = ?", fromKey).
		Update("subject_key", toKey)
	if res.Error != nil {
		return 0, res.Error
	}

	return int(res.RowsAffected), nil
}
