// Package dispatch turns due reminders into in-app, platform and audible
// notifications, at most once per reminder per day.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
	"github.com/KasumiMercury/primind-medication-adherence/internal/observability/metrics"
	"github.com/KasumiMercury/primind-medication-adherence/internal/observability/tracing"
)

const (
	defaultAutoDismiss = 10 * time.Second
	defaultConcurrency = 8
	defaultCallTimeout = 5 * time.Second
	toneTimeout        = 2 * time.Second
)

// Skip reasons reported to metrics.
const (
	skipInactive        = "inactive"
	skipBrowserDisabled = "browser_disabled"
	skipAlreadyNotified = "already_notified"
	skipLedgerError     = "ledger_error"
)

type Config struct {
	AutoDismiss time.Duration
	Concurrency int
	// CallTimeout bounds each repository and ledger call.
	CallTimeout time.Duration
}

// Dependencies of the dispatcher. Platform, Tones and Recorder are optional;
// without them alerts degrade to in-app only.
type Dependencies struct {
	Reminders domain.ReminderRepository
	Ledger    domain.NotificationDedupLedger
	InApp     domain.InAppNotifier
	Platform  domain.PlatformNotifier
	Tones     domain.TonePlayer
	Recorder  domain.AdherenceEventRecorder
	Clock     domain.Clock
	Metrics   *metrics.AdherenceMetrics
}

type TickResult struct {
	Evaluated  int
	Dispatched int
	Skipped    int
	Failed     int
}

type Dispatcher struct {
	deps Dependencies
	cfg  Config

	// locks holds one mutex per patient so ticks of one process do not race
	// each other; across processes the ledger claim decides.
	locks sync.Map
	tones sync.WaitGroup
}

func NewDispatcher(deps Dependencies, cfg Config) *Dispatcher {
	if cfg.AutoDismiss <= 0 {
		cfg.AutoDismiss = defaultAutoDismiss
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = defaultCallTimeout
	}
	if deps.Clock == nil {
		deps.Clock = domain.SystemClock()
	}

	return &Dispatcher{
		deps: deps,
		cfg:  cfg,
	}
}

type outcome int

const (
	outcomeNotDue outcome = iota
	outcomeDispatched
	outcomeSkipped
	outcomeFailed
)

// Tick evaluates every active reminder of patientID against the current
// minute. A failure on one reminder is logged and does not stop the others.
func (d *Dispatcher) Tick(ctx context.Context, patientID string) (TickResult, error) {
	unlock := d.lockPatient(patientID)
	defer unlock()

	start := time.Now()
	now := d.deps.Clock.Now()
	clockKey := domain.ClockKey(now)
	today := domain.DayKey(now)

	ctx, span := tracing.StartTickSpan(ctx, patientID, clockKey)
	defer span.End()
	defer func() {
		d.deps.Metrics.RecordTickDuration(ctx, time.Since(start))
	}()

	listCtx, cancel := context.WithTimeout(ctx, d.cfg.CallTimeout)
	reminders, err := d.deps.Reminders.ListActiveReminders(listCtx, patientID)
	cancel()
	if err != nil {
		tracing.RecordResult(span, err)
		return TickResult{}, fmt.Errorf("list active reminders: %w", err)
	}

	runID := uuid.NewString()
	outcomes := make([]outcome, len(reminders))
	events := make([]*domain.NotificationEventRecord, len(reminders))

	var g errgroup.Group
	g.SetLimit(d.cfg.Concurrency)
	for i, r := range reminders {
		g.Go(func() error {
			outcomes[i], events[i] = d.evaluate(ctx, r, now, clockKey, today)
			return nil
		})
	}
	_ = g.Wait()

	result := TickResult{Evaluated: len(reminders)}
	var records []domain.NotificationEventRecord
	for i, o := range outcomes {
		switch o {
		case outcomeDispatched:
			result.Dispatched++
			if events[i] != nil {
				ev := *events[i]
				ev.RunID = runID
				records = append(records, ev)
			}
		case outcomeSkipped:
			result.Skipped++
		case outcomeFailed:
			result.Failed++
		}
	}

	if len(records) > 0 && d.deps.Recorder != nil {
		if err := d.deps.Recorder.RecordNotifications(ctx, records); err != nil {
			slog.WarnContext(ctx, "failed to record notification events",
				slog.String("run_id", runID),
				slog.String("error", err.Error()),
			)
		}
	}

	tracing.RecordTickResult(span, result.Evaluated, result.Dispatched, result.Failed)
	if result.Dispatched > 0 || result.Failed > 0 {
		slog.InfoContext(ctx, "scheduler tick finished",
			slog.String("event", "dispatch.tick.complete"),
			slog.String("patient_id", patientID),
			slog.String("clock", clockKey),
			slog.Int("evaluated", result.Evaluated),
			slog.Int("dispatched", result.Dispatched),
			slog.Int("skipped", result.Skipped),
			slog.Int("failed", result.Failed),
		)
	}

	return result, nil
}

func (d *Dispatcher) lockPatient(patientID string) func() {
	v, _ := d.locks.LoadOrStore(patientID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (d *Dispatcher) evaluate(ctx context.Context, r *domain.Reminder, now time.Time, clockKey, today string) (outcome, *domain.NotificationEventRecord) {
	if r.ScheduledTime != clockKey {
		return outcomeNotDue, nil
	}

	if !r.Active {
		d.deps.Metrics.RecordDispatchSkipped(ctx, skipInactive)
		return outcomeSkipped, nil
	}
	if !r.NotificationPrefs.BrowserEnabled {
		d.deps.Metrics.RecordDispatchSkipped(ctx, skipBrowserDisabled)
		return outcomeSkipped, nil
	}

	checkCtx, cancel := context.WithTimeout(ctx, d.cfg.CallTimeout)
	notified, err := d.deps.Ledger.HasNotifiedToday(checkCtx, r.ID, today)
	cancel()
	if err != nil {
		d.deps.Metrics.RecordDispatchSkipped(ctx, skipLedgerError)
		slog.WarnContext(ctx, "failed to read notification ledger",
			slog.String("reminder_id", r.ID),
			slog.String("date", today),
			slog.String("error", err.Error()),
		)
		return outcomeFailed, nil
	}
	if notified {
		d.deps.Metrics.RecordDispatchSkipped(ctx, skipAlreadyNotified)
		return outcomeSkipped, nil
	}

	// A cancelled session must not leave markers behind.
	if err := ctx.Err(); err != nil {
		return outcomeFailed, nil
	}

	// The claim arbitrates between ticks of every instance sharing the ledger.
	// Claiming before delivery keeps a patient from being alerted twice; a
	// delivery failure after the claim is not retried.
	claimCtx, cancel := context.WithTimeout(ctx, d.cfg.CallTimeout)
	claimed, err := d.deps.Ledger.MarkNotified(claimCtx, r.ID, today)
	cancel()
	if err != nil {
		d.deps.Metrics.RecordDispatchSkipped(ctx, skipLedgerError)
		slog.ErrorContext(ctx, "failed to claim reminder notification",
			slog.String("reminder_id", r.ID),
			slog.String("date", today),
			slog.String("error", err.Error()),
		)
		return outcomeFailed, nil
	}
	if !claimed {
		d.deps.Metrics.RecordDispatchSkipped(ctx, skipAlreadyNotified)
		return outcomeSkipped, nil
	}

	n := domain.Notification{
		ReminderID:     r.ID,
		PatientID:      r.PatientID,
		MedicationName: r.MedicationName,
		Dosage:         r.Dosage,
		ScheduledTime:  r.ScheduledTime,
		Sound:          r.NotificationPrefs.Sound,
		FiredAt:        now,
	}

	if err := d.deps.InApp.ShowInApp(ctx, n); err != nil {
		slog.WarnContext(ctx, "failed to show in-app notification",
			slog.String("reminder_id", r.ID),
			slog.String("error", err.Error()),
		)
	}

	platform := d.deps.Platform != nil && d.deps.Platform.PermissionGranted(r.PatientID)
	if platform {
		if err := d.deps.Platform.ShowNotification(ctx, n, d.cfg.AutoDismiss); err != nil {
			slog.WarnContext(ctx, "failed to show platform notification",
				slog.String("reminder_id", r.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	d.playTone(ctx, r.PatientID, r.NotificationPrefs.Sound)

	d.deps.Metrics.RecordNotificationDispatched(ctx, string(n.Sound), platform)
	slog.DebugContext(ctx, "reminder notification dispatched",
		slog.String("reminder_id", r.ID),
		slog.String("medication", r.MedicationName),
		slog.Bool("platform", platform),
	)

	return outcomeDispatched, &domain.NotificationEventRecord{
		PatientID:     r.PatientID,
		ReminderID:    r.ID,
		ScheduledTime: r.ScheduledTime,
		Sound:         string(n.Sound),
		Platform:      platform,
		FiredAt:       now,
	}
}

// playTone starts the tone and returns at once; tone failures are only logged.
func (d *Dispatcher) playTone(ctx context.Context, patientID string, sound domain.Sound) {
	if d.deps.Tones == nil {
		return
	}
	hz, ok := ToneFrequency(sound)
	if !ok {
		return
	}

	toneCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), toneTimeout)
	d.tones.Add(1)
	go func() {
		defer d.tones.Done()
		defer cancel()
		if err := d.deps.Tones.PlayTone(toneCtx, patientID, hz, ToneDuration); err != nil {
			slog.DebugContext(toneCtx, "failed to play tone",
				slog.String("patient_id", patientID),
				slog.Int("frequency_hz", hz),
				slog.String("error", err.Error()),
			)
		}
	}()
}

// WaitTones blocks until tones started by previous ticks returned.
func (d *Dispatcher) WaitTones() {
	d.tones.Wait()
}
