package dispatch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
)

const DefaultTickInterval = 60 * time.Second

// TickRunner is the per-tick work a Scheduler drives.
type TickRunner interface {
	Tick(ctx context.Context, patientID string) (TickResult, error)
}

// Scheduler owns the polling loop for one patient session. Missed minutes
// are never replayed: a reminder whose minute passed without a tick does not
// fire that day.
type Scheduler struct {
	runner    TickRunner
	patientID string
	clock     domain.Clock
	interval  time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewScheduler(runner TickRunner, patientID string, clock domain.Clock, interval time.Duration) *Scheduler {
	if clock == nil {
		clock = domain.SystemClock()
	}
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Scheduler{
		runner:    runner,
		patientID: patientID,
		clock:     clock,
		interval:  interval,
	}
}

// Start runs one tick immediately and then one per interval until Stop is
// called or ctx is done. Starting a running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	ticker := s.clock.NewTicker(s.interval)
	done := make(chan struct{})

	s.cancel = cancel
	s.done = done

	slog.InfoContext(ctx, "scheduler started",
		slog.String("event", "scheduler.start"),
		slog.String("patient_id", s.patientID),
		slog.Duration("interval", s.interval),
	)

	go func() {
		defer close(done)
		defer ticker.Stop()

		s.tick(runCtx)
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C():
				s.tick(runCtx)
			}
		}
	}()
}

// Stop cancels the loop and waits for an in-flight tick to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done

	slog.Info("scheduler stopped",
		slog.String("event", "scheduler.stop"),
		slog.String("patient_id", s.patientID),
	)
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

func (s *Scheduler) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := s.runner.Tick(ctx, s.patientID); err != nil {
		slog.WarnContext(ctx, "scheduler tick failed",
			slog.String("event", "scheduler.tick.fail"),
			slog.String("patient_id", s.patientID),
			slog.String("error", err.Error()),
		)
	}
}
