// Package engine is the entry point used by the HTTP layer: it resolves
// reminders for the session patient and owns one scheduler per patient session.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
	"github.com/KasumiMercury/primind-medication-adherence/internal/service/adherence"
	"github.com/KasumiMercury/primind-medication-adherence/internal/service/aggregate"
	"github.com/KasumiMercury/primind-medication-adherence/internal/service/dispatch"
	"github.com/KasumiMercury/primind-medication-adherence/internal/service/reminder"
	"github.com/KasumiMercury/primind-medication-adherence/internal/service/window"
)

const defaultRepositoryTimeout = 5 * time.Second

type Dependencies struct {
	Reminders *reminder.Service
	Recorder  *adherence.Recorder
	Adherence domain.AdherenceRepository
	Ticks     dispatch.TickRunner
	Clock     domain.Clock
}

type Config struct {
	TickInterval      time.Duration
	RepositoryTimeout time.Duration
}

type Engine struct {
	deps Dependencies
	cfg  Config

	mu         sync.Mutex
	schedulers map[string]*dispatch.Scheduler

	// sessions holds the open session ids per patient.
	sessions    map[string]map[uint64]struct{}
	nextSession uint64
}

func New(deps Dependencies, cfg Config) *Engine {
	if deps.Clock == nil {
		deps.Clock = domain.SystemClock()
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = dispatch.DefaultTickInterval
	}
	if cfg.RepositoryTimeout <= 0 {
		cfg.RepositoryTimeout = defaultRepositoryTimeout
	}

	return &Engine{
		deps:       deps,
		cfg:        cfg,
		schedulers: make(map[string]*dispatch.Scheduler),
		sessions:   make(map[string]map[uint64]struct{}),
	}
}

// RecordAdherence records today's outcome for one of the session patient's reminders.
func (e *Engine) RecordAdherence(ctx context.Context, reminderID string, taken bool, missedReason string) (*adherence.RecordResult, error) {
	r, err := e.deps.Reminders.Get(ctx, reminderID)
	if err != nil {
		return nil, err
	}
	return e.deps.Recorder.RecordAdherence(ctx, r, taken, missedReason)
}

func (e *Engine) ListAdherence(ctx context.Context) ([]*domain.AdherenceRecord, error) {
	patientID, err := domain.PatientIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.RepositoryTimeout)
	defer cancel()
	return e.deps.Adherence.ListAdherenceByPatient(ctx, patientID)
}

func (e *Engine) GetAggregateStats(ctx context.Context) (aggregate.Summary, error) {
	records, err := e.ListAdherence(ctx)
	if err != nil {
		return aggregate.Summary{}, err
	}
	return aggregate.Aggregate(records), nil
}

// GetPerSubjectStats returns nil stats when the patient has no records under subjectKey.
func (e *Engine) GetPerSubjectStats(ctx context.Context, subjectKey string) (*aggregate.SubjectStats, error) {
	patientID, err := domain.PatientIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	listCtx, cancel := context.WithTimeout(ctx, e.cfg.RepositoryTimeout)
	defer cancel()

	records, err := e.deps.Adherence.ListAdherenceBySubject(listCtx, subjectKey)
	if err != nil {
		return nil, err
	}

	own := records[:0:0]
	for _, r := range records {
		if r.PatientID == patientID {
			own = append(own, r)
		}
	}
	return aggregate.PerSubject(own, subjectKey), nil
}

// TimeRemaining renders the distance to today's occurrence of the reminder.
func (e *Engine) TimeRemaining(ctx context.Context, reminderID string) (window.Remaining, error) {
	r, err := e.deps.Reminders.Get(ctx, reminderID)
	if err != nil {
		return window.Remaining{}, err
	}
	remaining, _ := window.TimeRemaining(r.ScheduledTime, e.deps.Clock.Now())
	return remaining, nil
}

// StartScheduler starts the polling loop for patientID. A second call while
// the loop runs is a no-op. The loop outlives ctx; end it with StopScheduler.
func (e *Engine) StartScheduler(ctx context.Context, patientID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.startLocked(ctx, patientID)
}

func (e *Engine) startLocked(ctx context.Context, patientID string) {
	if _, ok := e.schedulers[patientID]; ok {
		return
	}

	s := dispatch.NewScheduler(e.deps.Ticks, patientID, e.deps.Clock, e.cfg.TickInterval)
	s.Start(context.WithoutCancel(ctx))
	e.schedulers[patientID] = s
}

// OpenSession registers one open session of patientID and makes sure its
// scheduler runs. The returned func closes that session; the scheduler stops
// with the last open one. A session dropped by StopScheduler closes as a no-op.
func (e *Engine) OpenSession(ctx context.Context, patientID string) (closeSession func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextSession++
	id := e.nextSession

	open, ok := e.sessions[patientID]
	if !ok {
		open = make(map[uint64]struct{})
		e.sessions[patientID] = open
	}
	open[id] = struct{}{}
	e.startLocked(ctx, patientID)

	var once sync.Once
	return func() {
		once.Do(func() { e.closeSession(patientID, id) })
	}
}

// closeSession decides "last session closed" and removes the scheduler under
// one lock, so a session opened concurrently never ends up without one.
func (e *Engine) closeSession(patientID string, id uint64) {
	e.mu.Lock()
	open := e.sessions[patientID]
	if _, ok := open[id]; !ok {
		e.mu.Unlock()
		return
	}
	delete(open, id)

	var s *dispatch.Scheduler
	if len(open) == 0 {
		delete(e.sessions, patientID)
		s = e.schedulers[patientID]
		delete(e.schedulers, patientID)
	}
	e.mu.Unlock()

	if s != nil {
		s.Stop()
	}
}

// StopScheduler ends the patient's loop and forgets its sessions, e.g. on
// logout. Unknown patients are ignored.
func (e *Engine) StopScheduler(patientID string) {
	e.mu.Lock()
	s, ok := e.schedulers[patientID]
	delete(e.schedulers, patientID)
	delete(e.sessions, patientID)
	e.mu.Unlock()

	if ok {
		s.Stop()
	}
}

func (e *Engine) SchedulerRunning(patientID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.schedulers[patientID]
	return ok
}

// Shutdown stops every scheduler and waits for pending tones.
func (e *Engine) Shutdown() {
	e.mu.Lock()
	schedulers := e.schedulers
	e.schedulers = make(map[string]*dispatch.Scheduler)
	e.sessions = make(map[string]map[uint64]struct{})
	e.mu.Unlock()

	for _, s := range schedulers {
		s.Stop()
	}
	if w, ok := e.deps.Ticks.(interface{ WaitTones() }); ok {
		w.WaitTones()
	}

	slog.Info("engine stopped",
		slog.String("event", "engine.shutdown"),
		slog.Int("schedulers", len(schedulers)),
	)
}
