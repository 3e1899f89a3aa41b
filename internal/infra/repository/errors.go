package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
)

var (
	ErrInvalidReminderData  = fmt.Errorf("%w: invalid reminder data", domain.ErrValidation)
	ErrInvalidAdherenceData = fmt.Errorf("%w: invalid adherence record data", domain.ErrValidation)
)

// classify maps driver and gorm errors onto the domain taxonomy. notFound is
// returned for gorm.ErrRecordNotFound.
func classify(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", domain.ErrDuplicateRecord, err)
	case errors.Is(err, domain.ErrValidation):
		return err
	default:
		return fmt.Errorf("%w: %v", domain.ErrRepositoryUnavailable, err)
	}
}
