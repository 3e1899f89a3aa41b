package domain

import (
	"time"
)

const dayKeyLayout = "2006-01-02"

// AdherenceRecord is the taken/missed outcome for one subject on one calendar day.
type AdherenceRecord struct {
	ID           string    `json:"id"`
	SubjectKey   string    `json:"subject_key"`
	PatientID    string    `json:"patient_id"`
	ReminderID   string    `json:"reminder_id,omitempty"`
	Date         string    `json:"date"`
	Taken        bool      `json:"taken"`
	MissedReason string    `json:"missed_reason,omitempty"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// Prescription is owned by the prescribing workflow; this service only resolves it.
type Prescription struct {
	ID             string `json:"id"`
	PatientID      string `json:"patient_id"`
	MedicationName string `json:"medication_name"`
	Dosage         string `json:"dosage,omitempty"`
	Active         bool   `json:"active"`
}

// DayKey returns the local calendar day of t, e.g. "2024-01-15".
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

func ParseDayKey(key string) (time.Time, error) {
	return time.ParseInLocation(dayKeyLayout, key, time.Local)
}
