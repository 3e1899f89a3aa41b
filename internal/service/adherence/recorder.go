// Package adherence records taken/missed outcomes for reminders, one record
// per subject per calendar day.
package adherence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
	"github.com/KasumiMercury/primind-medication-adherence/internal/observability/metrics"
	"github.com/KasumiMercury/primind-medication-adherence/internal/observability/tracing"
	"github.com/KasumiMercury/primind-medication-adherence/internal/service/aggregate"
	"github.com/KasumiMercury/primind-medication-adherence/internal/service/window"
)

const defaultRepositoryTimeout = 5 * time.Second

// Rejection reasons reported to metrics.
const (
	rejectInactive             = "inactive"
	rejectOutsideWindow        = "outside_window"
	rejectPrescriptionNotFound = "prescription_not_found"
	rejectNoPatient            = "no_patient_context"
)

// RiskNotifier receives a signal after every successful write.
type RiskNotifier interface {
	Notify(ctx context.Context, patientID string)
}

type Config struct {
	WindowMinutes     int
	RepositoryTimeout time.Duration
}

type Dependencies struct {
	Adherence     domain.AdherenceRepository
	Prescriptions domain.PrescriptionRepository
	Risk          RiskNotifier
	Events        domain.AdherenceEventRecorder
	Clock         domain.Clock
	Metrics       *metrics.AdherenceMetrics
}

type RecordResult struct {
	Record *domain.AdherenceRecord `json:"record"`
	Stats  *aggregate.SubjectStats `json:"stats,omitempty"`
}

type Recorder struct {
	deps Dependencies
	cfg  Config
}

func NewRecorder(deps Dependencies, cfg Config) *Recorder {
	if cfg.WindowMinutes <= 0 {
		cfg.WindowMinutes = window.DefaultActionWindowMinutes
	}
	if cfg.RepositoryTimeout <= 0 {
		cfg.RepositoryTimeout = defaultRepositoryTimeout
	}
	if deps.Clock == nil {
		deps.Clock = domain.SystemClock()
	}

	return &Recorder{
		deps: deps,
		cfg:  cfg,
	}
}

// RecordAdherence stores today's outcome for reminder. Checks run in order:
// active, action window, prescription, session patient. The write itself is an
// upsert, so recording twice on one day overwrites the first answer.
func (r *Recorder) RecordAdherence(ctx context.Context, reminder *domain.Reminder, taken bool, missedReason string) (*RecordResult, error) {
	ctx, span := tracing.StartRecordSpan(ctx, reminder.ID, taken)
	defer span.End()

	result, err := r.record(ctx, reminder, taken, missedReason)
	tracing.RecordResult(span, err)
	return result, err
}

func (r *Recorder) record(ctx context.Context, reminder *domain.Reminder, taken bool, missedReason string) (*RecordResult, error) {
	now := r.deps.Clock.Now()

	if !reminder.Active {
		r.reject(ctx, reminder, rejectInactive)
		return nil, fmt.Errorf("%w: %s", domain.ErrReminderInactive, reminder.MedicationName)
	}

	if !window.IsWithinActionWindow(reminder.ScheduledTime, now, r.cfg.WindowMinutes) {
		r.reject(ctx, reminder, rejectOutsideWindow)
		return nil, fmt.Errorf("%w: outside the %d-minute window (scheduled %s, now %s)",
			domain.ErrOutsideWindow, r.cfg.WindowMinutes, reminder.ScheduledTime, domain.ClockKey(now))
	}

	subjectKey := reminder.SubjectKey()
	if reminder.IsLinked() {
		resolveCtx, cancel := context.WithTimeout(ctx, r.cfg.RepositoryTimeout)
		_, err := r.deps.Prescriptions.ResolvePrescription(resolveCtx, subjectKey)
		cancel()
		if err != nil {
			if errors.Is(err, domain.ErrPrescriptionNotFound) {
				r.reject(ctx, reminder, rejectPrescriptionNotFound)
				return nil, fmt.Errorf("%w: %s", domain.ErrPrescriptionNotFound, subjectKey)
			}
			return nil, r.ioFailure(ctx, "resolve prescription", err)
		}
	}

	patientID, err := domain.PatientIDFromContext(ctx)
	if err != nil {
		r.reject(ctx, reminder, rejectNoPatient)
		return nil, err
	}

	if taken {
		missedReason = ""
	}
	record := &domain.AdherenceRecord{
		SubjectKey:   subjectKey,
		PatientID:    patientID,
		ReminderID:   reminder.ID,
		Date:         domain.DayKey(now),
		Taken:        taken,
		MissedReason: missedReason,
		RecordedAt:   now,
	}

	// The session may have ended while we validated; do not write for it.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	writeCtx, cancel := context.WithTimeout(ctx, r.cfg.RepositoryTimeout)
	saved, err := r.deps.Adherence.UpsertAdherenceRecord(writeCtx, record)
	cancel()
	if err != nil {
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrDuplicateRecord) {
			return nil, err
		}
		return nil, r.ioFailure(ctx, "upsert adherence record", err)
	}

	r.deps.Metrics.RecordAdherenceWrite(ctx, metrics.OutcomeSuccess, taken)
	slog.InfoContext(ctx, "adherence recorded",
		slog.String("event", "adherence.record.success"),
		slog.String("reminder_id", reminder.ID),
		slog.String("subject_key", subjectKey),
		slog.String("date", saved.Date),
		slog.Bool("taken", taken),
	)

	result := &RecordResult{
		Record: saved,
		Stats:  r.subjectStats(ctx, subjectKey),
	}

	r.emitEvent(ctx, saved, reminder.IsLinked())
	if r.deps.Risk != nil {
		r.deps.Risk.Notify(ctx, patientID)
	}

	return result, nil
}

// subjectStats reloads the subject's history. The write already succeeded,
// so a failure here only leaves the stats out of the result.
func (r *Recorder) subjectStats(ctx context.Context, subjectKey string) *aggregate.SubjectStats {
	listCtx, cancel := context.WithTimeout(ctx, r.cfg.RepositoryTimeout)
	defer cancel()

	records, err := r.deps.Adherence.ListAdherenceBySubject(listCtx, subjectKey)
	if err != nil {
		slog.WarnContext(ctx, "failed to load subject history after write",
			slog.String("subject_key", subjectKey),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return aggregate.PerSubject(records, subjectKey)
}

func (r *Recorder) emitEvent(ctx context.Context, record *domain.AdherenceRecord, linked bool) {
	if r.deps.Events == nil {
		return
	}
	event := domain.AdherenceEventRecord{
		PatientID:  record.PatientID,
		SubjectKey: record.SubjectKey,
		Date:       record.Date,
		Taken:      record.Taken,
		Linked:     linked,
		RecordedAt: record.RecordedAt,
	}
	if err := r.deps.Events.RecordAdherence(ctx, []domain.AdherenceEventRecord{event}); err != nil {
		slog.WarnContext(ctx, "failed to record adherence event",
			slog.String("subject_key", record.SubjectKey),
			slog.String("error", err.Error()),
		)
	}
}

func (r *Recorder) reject(ctx context.Context, reminder *domain.Reminder, reason string) {
	r.deps.Metrics.RecordAdherenceRejected(ctx, reason)
	slog.InfoContext(ctx, "adherence rejected",
		slog.String("event", "adherence.record.reject"),
		slog.String("reminder_id", reminder.ID),
		slog.String("reason", reason),
	)
}

// ioFailure maps a repository error onto ErrTimeout or ErrRepositoryUnavailable.
func (r *Recorder) ioFailure(ctx context.Context, op string, err error) error {
	r.deps.Metrics.RecordAdherenceWrite(ctx, metrics.OutcomeFailure, false)
	slog.ErrorContext(ctx, "adherence repository call failed",
		slog.String("event", "adherence.record.fail"),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)

	switch {
	case errors.Is(err, domain.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, domain.ErrTimeout)
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, domain.ErrRepositoryUnavailable):
		return fmt.Errorf("%s: %w", op, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, domain.ErrRepositoryUnavailable, err)
	}
}
