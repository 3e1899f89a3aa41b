package ledger

import (
	"context"
	"sync"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
)

type memoryLedger struct {
	mu sync.Mutex
	// days maps a date to the reminders already notified on it.
	days map[string]map[string]struct{}
}

// NewMemoryLedger keeps markers in process memory. They do not survive a
// restart, and markers of earlier days are dropped once a later day is marked.
func NewMemoryLedger() domain.NotificationDedupLedger {
	return &memoryLedger{
		days: make(map[string]map[string]struct{}),
	}
}

func (l *memoryLedger) HasNotifiedToday(_ context.Context, reminderID, date string) (bool, error) {
	if reminderID == "" || date == "" {
		return false, ErrInvalidKey
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	_, ok := l.days[date][reminderID]
	return ok, nil
}

func (l *memoryLedger) MarkNotified(_ context.Context, reminderID, date string) (bool, error) {
	if reminderID == "" || date == "" {
		return false, ErrInvalidKey
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	reminders, ok := l.days[date]
	if !ok {
		// Date keys are "2006-01-02", so string order is day order.
		for d := range l.days {
			if d < date {
				delete(l.days, d)
			}
		}
		reminders = make(map[string]struct{})
		l.days[date] = reminders
	}

	if _, claimed := reminders[reminderID]; claimed {
		return false, nil
	}
	reminders[reminderID] = struct{}{}
	return true, nil
}

func (l *memoryLedger) markers() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, reminders := range l.days {
		n += len(reminders)
	}
	return n
}
