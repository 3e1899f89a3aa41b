package domain

import "errors"

var (
	ErrOutsideWindow         = errors.New("outside the action window")
	ErrPrescriptionNotFound  = errors.New("prescription not found")
	ErrNoPatientContext      = errors.New("no patient context")
	ErrDuplicateRecord       = errors.New("adherence already recorded for this day")
	ErrRepositoryUnavailable = errors.New("repository unavailable")
	ErrTimeout               = errors.New("repository timeout")
	ErrValidation            = errors.New("validation error")
	ErrReminderNotFound      = errors.New("reminder not found")
	ErrReminderInactive      = errors.New("reminder is inactive")
)
