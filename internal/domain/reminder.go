package domain

import (
	"time"
)

type Frequency string

const (
	FrequencyDaily           Frequency = "daily"
	FrequencyTwiceDaily      Frequency = "twice daily"
	FrequencyThreeTimesDaily Frequency = "three times daily"
	FrequencyWeekly          Frequency = "weekly"
)

type Sound string

const (
	SoundDefault Sound = "default"
	SoundGentle  Sound = "gentle"
	SoundUrgent  Sound = "urgent"
	SoundNone    Sound = "none"
)

func (s Sound) String() string {
	return string(s)
}

// IsSilent reports whether no tone should be played.
func (s Sound) IsSilent() bool {
	return s == SoundNone
}

type NotificationPrefs struct {
	BrowserEnabled bool  `json:"browser_enabled"`
	Sound          Sound `json:"sound" validate:"omitempty,oneof=default gentle urgent none"`
}

// Reminder is one daily prompt for a medication dose. Multiple doses per day
// are modeled as multiple reminders.
type Reminder struct {
	ID                  string            `json:"id"`
	PatientID           string            `json:"patient_id" validate:"required"`
	MedicationName      string            `json:"medication_name" validate:"required,notblank"`
	Dosage              string            `json:"dosage,omitempty"`
	Frequency           Frequency         `json:"frequency" validate:"required,oneof=daily 'twice daily' 'three times daily' weekly"`
	ScheduledTime       string            `json:"scheduled_time" validate:"required,timeofday"`
	Active              bool              `json:"active"`
	NotificationPrefs   NotificationPrefs `json:"notification_prefs"`
	PrescriptionID      *string           `json:"prescription_id,omitempty"`
	SpecialInstructions string            `json:"special_instructions,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// IsLinked reports whether the reminder is tied to a prescription.
func (r *Reminder) IsLinked() bool {
	return r.PrescriptionID != nil && *r.PrescriptionID != ""
}

// SubjectKey returns the key adherence records for this reminder are grouped under.
func (r *Reminder) SubjectKey() string {
	if r.IsLinked() {
		return *r.PrescriptionID
	}
	return r.ID
}

// ReminderPatch is a partial update. Nil fields are left unchanged; an empty
// PrescriptionID unlinks the reminder.
type ReminderPatch struct {
	MedicationName      *string            `json:"medication_name,omitempty"`
	Dosage              *string            `json:"dosage,omitempty"`
	Frequency           *Frequency         `json:"frequency,omitempty"`
	ScheduledTime       *string            `json:"scheduled_time,omitempty"`
	Active              *bool              `json:"active,omitempty"`
	NotificationPrefs   *NotificationPrefs `json:"notification_prefs,omitempty"`
	PrescriptionID      *string            `json:"prescription_id,omitempty"`
	SpecialInstructions *string            `json:"special_instructions,omitempty"`
}

// Apply copies the set fields of p onto r.
func (p ReminderPatch) Apply(r *Reminder) {
	if p.MedicationName != nil {
		r.MedicationName = *p.MedicationName
	}
	if p.Dosage != nil {
		r.Dosage = *p.Dosage
	}
	if p.Frequency != nil {
		r.Frequency = *p.Frequency
	}
	if p.ScheduledTime != nil {
		r.ScheduledTime = *p.ScheduledTime
	}
	if p.Active != nil {
		r.Active = *p.Active
	}
	if p.NotificationPrefs != nil {
		r.NotificationPrefs = *p.NotificationPrefs
	}
	if p.PrescriptionID != nil {
		if *p.PrescriptionID == "" {
			r.PrescriptionID = nil
		} else {
			id := *p.PrescriptionID
			r.PrescriptionID = &id
		}
	}
	if p.SpecialInstructions != nil {
		r.SpecialInstructions = *p.SpecialInstructions
	}
}
