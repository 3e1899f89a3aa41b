package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
)

// prescriptionRepository reads prescriptions written by the prescribing workflow.
type prescriptionRepository struct {
	db *gorm.DB
}

func NewPrescriptionRepository(db *gorm.DB) domain.PrescriptionRepository {
	return &prescriptionRepository{
		db: db,
	}
}

func (r *prescriptionRepository) ResolvePrescription(ctx context.Context, id string) (*domain.Prescription, error) {
	if id == "" {
		return nil, domain.ErrPrescriptionNotFound
	}

	var m prescriptionModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, classify(err, domain.ErrPrescriptionNotFound)
	}
	return m.toDomain(), nil
}
