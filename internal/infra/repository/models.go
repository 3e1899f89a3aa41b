package repository

import (
	"time"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
)

type reminderModel struct {
	ID                  string  `gorm:"primaryKey;size:64"`
	PatientID           string  `gorm:"size:64;not null;index:idx_reminders_patient_active,priority:1"`
	MedicationName      string  `gorm:"not null"`
	Dosage              string  `gorm:"size:255"`
	Frequency           string  `gorm:"size:32;not null"`
	ScheduledTime       string  `gorm:"size:5;not null"`
	Active              bool    `gorm:"not null;index:idx_reminders_patient_active,priority:2"`
	BrowserEnabled      bool    `gorm:"not null"`
	Sound               string  `gorm:"size:16;not null"`
	PrescriptionID      *string `gorm:"size:64;index"`
	SpecialInstructions string  `gorm:"type:text"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (reminderModel) TableName() string {
	return "reminders"
}

// adherenceRecordModel enforces one row per subject per day at the store.
type adherenceRecordModel struct {
	ID           string    `gorm:"primaryKey;size:64"`
	SubjectKey   string    `gorm:"size:64;not null;uniqueIndex:uidx_adherence_subject_date,priority:1"`
	Date         string    `gorm:"size:10;not null;uniqueIndex:uidx_adherence_subject_date,priority:2"`
	PatientID    string    `gorm:"size:64;not null;index"`
	ReminderID   string    `gorm:"size:64"`
	Taken        bool      `gorm:"not null"`
	MissedReason string    `gorm:"size:255"`
	RecordedAt   time.Time `gorm:"not null"`
}

func (adherenceRecordModel) TableName() string {
	return "adherence_records"
}

type prescriptionModel struct {
	ID             string `gorm:"primaryKey;size:64"`
	PatientID      string `gorm:"size:64;not null;index"`
	MedicationName string `gorm:"not null"`
	Dosage         string `gorm:"size:255"`
	Active         bool   `gorm:"not null"`
}

func (prescriptionModel) TableName() string {
	return "prescriptions"
}

// Models lists every table this package migrates.
func Models() []any {
	return []any{&reminderModel{}, &adherenceRecordModel{}, &prescriptionModel{}}
}

func newReminderModel(r *domain.Reminder) *reminderModel {
	m := &reminderModel{
		ID:                  r.ID,
		PatientID:           r.PatientID,
		MedicationName:      r.MedicationName,
		Dosage:              r.Dosage,
		Frequency:           string(r.Frequency),
		ScheduledTime:       r.ScheduledTime,
		Active:              r.Active,
		BrowserEnabled:      r.NotificationPrefs.BrowserEnabled,
		Sound:               string(r.NotificationPrefs.Sound),
		SpecialInstructions: r.SpecialInstructions,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
	if r.IsLinked() {
		id := *r.PrescriptionID
		m.PrescriptionID = &id
	}
	return m
}

func (m *reminderModel) toDomain() *domain.Reminder {
	r := &domain.Reminder{
		ID:             m.ID,
		PatientID:      m.PatientID,
		MedicationName: m.MedicationName,
		Dosage:         m.Dosage,
		Frequency:      domain.Frequency(m.Frequency),
		ScheduledTime:  m.ScheduledTime,
		Active:         m.Active,
		NotificationPrefs: domain.NotificationPrefs{
			BrowserEnabled: m.BrowserEnabled,
			Sound:          domain.Sound(m.Sound),
		},
		SpecialInstructions: m.SpecialInstructions,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
	if m.PrescriptionID != nil && *m.PrescriptionID != "" {
		id := *m.PrescriptionID
		r.PrescriptionID = &id
	}
	return r
}

func newAdherenceRecordModel(r *domain.AdherenceRecord) *adherenceRecordModel {
	return &adherenceRecordModel{
		ID:           r.ID,
		SubjectKey:   r.SubjectKey,
		Date:         r.Date,
		PatientID:    r.PatientID,
		ReminderID:   r.ReminderID,
		Taken:        r.Taken,
		MissedReason: r.MissedReason,
		RecordedAt:   r.RecordedAt,
	}
}

func (m *adherenceRecordModel) toDomain() *domain.AdherenceRecord {
	return &domain.AdherenceRecord{
		ID:           m.ID,
		SubjectKey:   m.SubjectKey,
		PatientID:    m.PatientID,
		ReminderID:   m.ReminderID,
		Date:         m.Date,
		Taken:        m.Taken,
		MissedReason: m.MissedReason,
		RecordedAt:   m.RecordedAt,
	}
}

func (m *prescriptionModel) toDomain() *domain.Prescription {
	return &domain.Prescription{
		ID:             m.ID,
		PatientID:      m.PatientID,
		MedicationName: m.MedicationName,
		Dosage:         m.Dosage,
		Active:         m.Active,
	}
}
