package dispatch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
	"github.com/KasumiMercury/primind-medication-adherence/internal/infra/ledger"
	"github.com/KasumiMercury/primind-medication-adherence/internal/testutil"
)

var nineAM = time.Date(2024, 1, 15, 9, 0, 20, 0, time.Local)

func newReminder(id, at string, sound domain.Sound) *domain.Reminder {
	return &domain.Reminder{
		ID:             id,
		PatientID:      "patient-1",
		MedicationName: "Metformin",
		Dosage:         "500mg",
		Frequency:      domain.FrequencyDaily,
		ScheduledTime:  at,
		Active:         true,
		NotificationPrefs: domain.NotificationPrefs{
			BrowserEnabled: true,
			Sound:          sound,
		},
	}
}

type mocks struct {
	reminders *domain.MockReminderRepository
	ledger    *domain.MockNotificationDedupLedger
	inApp     *domain.MockInAppNotifier
	platform  *domain.MockPlatformNotifier
	tones     *domain.MockTonePlayer
	recorder  *domain.MockAdherenceEventRecorder
}

func newMocks(ctrl *gomock.Controller) mocks {
	return mocks{
		reminders: domain.NewMockReminderRepository(ctrl),
		ledger:    domain.NewMockNotificationDedupLedger(ctrl),
		inApp:     domain.NewMockInAppNotifier(ctrl),
		platform:  domain.NewMockPlatformNotifier(ctrl),
		tones:     domain.NewMockTonePlayer(ctrl),
		recorder:  domain.NewMockAdherenceEventRecorder(ctrl),
	}
}

func (m mocks) dispatcher(clock domain.Clock) *Dispatcher {
	return NewDispatcher(Dependencies{
		Reminders: m.reminders,
		Ledger:    m.ledger,
		InApp:     m.inApp,
		Platform:  m.platform,
		Tones:     m.tones,
		Recorder:  m.recorder,
		Clock:     clock,
	}, Config{AutoDismiss: 10 * time.Second})
}

func TestTickDispatchesDueReminder(t *testing.T) {
	tests := []struct {
		name           string
		sound          domain.Sound
		permission     bool
		wantToneHz     int
		wantPlatform   bool
		wantToneCalled bool
	}{
		{name: "urgent with permission", sound: domain.SoundUrgent, permission: true, wantToneHz: 880, wantPlatform: true, wantToneCalled: true},
		{name: "default without permission", sound: domain.SoundDefault, permission: false, wantToneHz: 660, wantToneCalled: true},
		{name: "gentle", sound: domain.SoundGentle, permission: true, wantToneHz: 440, wantPlatform: true, wantToneCalled: true},
		{name: "silent", sound: domain.SoundNone, permission: true, wantPlatform: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := newMocks(ctrl)
			clock := testutil.NewFakeClock(nineAM)
			reminder := newReminder("rem-1", "09:00", tt.sound)

			m.reminders.EXPECT().ListActiveReminders(gomock.Any(), "patient-1").Return([]*domain.Reminder{reminder}, nil)
			m.ledger.EXPECT().HasNotifiedToday(gomock.Any(), "rem-1", "2024-01-15").Return(false, nil)
			claim := m.ledger.EXPECT().MarkNotified(gomock.Any(), "rem-1", "2024-01-15").Return(true, nil)
			m.inApp.EXPECT().ShowInApp(gomock.Any(), gomock.Any()).After(claim).DoAndReturn(func(_ context.Context, n domain.Notification) error {
				if n.MedicationName != "Metformin" || n.Dosage != "500mg" {
					t.Errorf("unexpected notification payload %+v", n)
				}
				return nil
			})
			m.platform.EXPECT().PermissionGranted("patient-1").Return(tt.permission)
			if tt.wantPlatform {
				m.platform.EXPECT().ShowNotification(gomock.Any(), gomock.Any(), 10*time.Second).Return(nil)
			}
			if tt.wantToneCalled {
				m.tones.EXPECT().PlayTone(gomock.Any(), "patient-1", tt.wantToneHz, ToneDuration).Return(nil)
			}
			m.recorder.EXPECT().RecordNotifications(gomock.Any(), gomock.Len(1)).Return(nil)

			d := m.dispatcher(clock)
			result, err := d.Tick(context.Background(), "patient-1")
			d.WaitTones()

			if err != nil {
				t.Fatalf("Tick() error = %v", err)
			}
			if result.Dispatched != 1 || result.Evaluated != 1 {
				t.Errorf("Tick() = %+v, want one dispatched", result)
			}
		})
	}
}

func TestTickSkipsReminders(t *testing.T) {
	inactive := newReminder("rem-inactive", "09:00", domain.SoundDefault)
	inactive.Active = false

	disabled := newReminder("rem-disabled", "09:00", domain.SoundDefault)
	disabled.NotificationPrefs.BrowserEnabled = false

	notDue := newReminder("rem-later", "09:01", domain.SoundDefault)

	ctrl := gomock.NewController(t)
	m := newMocks(ctrl)
	m.reminders.EXPECT().ListActiveReminders(gomock.Any(), "patient-1").
		Return([]*domain.Reminder{inactive, disabled, notDue}, nil)

	result, err := m.dispatcher(testutil.NewFakeClock(nineAM)).Tick(context.Background(), "patient-1")
	if err != nil {
		t.Fatalf("Tick() error = %v", err)
	}

	want := TickResult{Evaluated: 3, Skipped: 2}
	if result != want {
		t.Errorf("Tick() = %+v, want %+v", result, want)
	}
}

func TestTickSkipsAlreadyNotified(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMocks(ctrl)
	m.reminders.EXPECT().ListActiveReminders(gomock.Any(), "patient-1").
		Return([]*domain.Reminder{newReminder("rem-1", "09:00", domain.SoundDefault)}, nil)
	m.ledger.EXPECT().HasNotifiedToday(gomock.Any(), "rem-1", "2024-01-15").Return(true, nil)

	result, err := m.dispatcher(testutil.NewFakeClock(nineAM)).Tick(context.Background(), "patient-1")
	if err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if result.Skipped != 1 || result.Dispatched != 0 {
		t.Errorf("Tick() = %+v, want one skipped", result)
	}
}

func TestTickLostClaimSkipsDelivery(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMocks(ctrl)
	m.reminders.EXPECT().ListActiveReminders(gomock.Any(), "patient-1").
		Return([]*domain.Reminder{newReminder("rem-1", "09:00", domain.SoundUrgent)}, nil)
	m.ledger.EXPECT().HasNotifiedToday(gomock.Any(), "rem-1", "2024-01-15").Return(false, nil)
	m.ledger.EXPECT().MarkNotified(gomock.Any(), "rem-1", "2024-01-15").Return(false, nil)

	result, err := m.dispatcher(testutil.NewFakeClock(nineAM)).Tick(context.Background(), "patient-1")
	if err != nil {
		t.Fatalf("Tick() error = %v", err)
	}

	want := TickResult{Evaluated: 1, Skipped: 1}
	if result != want {
		t.Errorf("Tick() = %+v, want %+v", result, want)
	}
}

func TestTickClaimFailureDoesNotDeliver(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMocks(ctrl)
	m.reminders.EXPECT().ListActiveReminders(gomock.Any(), "patient-1").
		Return([]*domain.Reminder{newReminder("rem-1", "09:00", domain.SoundUrgent)}, nil)
	m.ledger.EXPECT().HasNotifiedToday(gomock.Any(), "rem-1", "2024-01-15").Return(false, nil)
	m.ledger.EXPECT().MarkNotified(gomock.Any(), "rem-1", "2024-01-15").Return(false, errors.New("redis down"))

	result, err := m.dispatcher(testutil.NewFakeClock(nineAM)).Tick(context.Background(), "patient-1")
	if err != nil {
		t.Fatalf("Tick() error = %v", err)
	}

	want := TickResult{Evaluated: 1, Failed: 1}
	if result != want {
		t.Errorf("Tick() = %+v, want %+v", result, want)
	}
}

func TestTickSharedLedgerDispatchesOnceAcrossInstances(t *testing.T) {
	ctrl := gomock.NewController(t)
	reminders := domain.NewMockReminderRepository(ctrl)
	reminders.EXPECT().ListActiveReminders(gomock.Any(), "patient-1").
		Return([]*domain.Reminder{newReminder("rem-1", "09:00", domain.SoundNone)}, nil).
		Times(2)

	// Both instances read "not notified" before either claims.
	shared := &slowReadLedger{NotificationDedupLedger: ledger.NewMemoryLedger(), delay: 20 * time.Millisecond}
	shown := &countingInApp{}

	instances := make([]*Dispatcher, 2)
	for i := range instances {
		instances[i] = NewDispatcher(Dependencies{
			Reminders: reminders,
			Ledger:    shared,
			InApp:     shown,
			Clock:     testutil.NewFakeClock(nineAM),
		}, Config{})
	}

	var wg sync.WaitGroup
	results := make([]TickResult, len(instances))
	for i, d := range instances {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := d.Tick(context.Background(), "patient-1")
			if err != nil {
				t.Errorf("Tick() error = %v", err)
			}
			results[i] = r
		}()
	}
	wg.Wait()

	if got := shown.count.Load(); got != 1 {
		t.Errorf("notifications shown = %d, want 1", got)
	}
	if got := results[0].Dispatched + results[1].Dispatched; got != 1 {
		t.Errorf("dispatched across instances = %d, want 1", got)
	}
	if got := results[0].Skipped + results[1].Skipped; got != 1 {
		t.Errorf("skipped across instances = %d, want 1", got)
	}
}

func TestTickLedgerFailureDoesNotBlockOthers(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMocks(ctrl)

	broken := newReminder("rem-broken", "09:00", domain.SoundNone)
	healthy := newReminder("rem-healthy", "09:00", domain.SoundNone)

	m.reminders.EXPECT().ListActiveReminders(gomock.Any(), "patient-1").Return([]*domain.Reminder{broken, healthy}, nil)
	m.ledger.EXPECT().HasNotifiedToday(gomock.Any(), "rem-broken", gomock.Any()).Return(false, errors.New("redis down"))
	m.ledger.EXPECT().HasNotifiedToday(gomock.Any(), "rem-healthy", gomock.Any()).Return(false, nil)
	m.inApp.EXPECT().ShowInApp(gomock.Any(), gomock.Any()).Return(nil)
	m.platform.EXPECT().PermissionGranted("patient-1").Return(false)
	m.ledger.EXPECT().MarkNotified(gomock.Any(), "rem-healthy", gomock.Any()).Return(true, nil)
	m.recorder.EXPECT().RecordNotifications(gomock.Any(), gomock.Len(1)).Return(nil)

	result, err := m.dispatcher(testutil.NewFakeClock(nineAM)).Tick(context.Background(), "patient-1")
	if err != nil {
		t.Fatalf("Tick() error = %v", err)
	}

	want := TickResult{Evaluated: 2, Dispatched: 1, Failed: 1}
	if result != want {
		t.Errorf("Tick() = %+v, want %+v", result, want)
	}
}

func TestTickDegradesToInAppOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	reminders := domain.NewMockReminderRepository(ctrl)
	inApp := domain.NewMockInAppNotifier(ctrl)

	reminders.EXPECT().ListActiveReminders(gomock.Any(), "patient-1").
		Return([]*domain.Reminder{newReminder("rem-1", "09:00", domain.SoundUrgent)}, nil)
	inApp.EXPECT().ShowInApp(gomock.Any(), gomock.Any()).Return(errors.New("no session"))

	l := ledger.NewMemoryLedger()
	d := NewDispatcher(Dependencies{
		Reminders: reminders,
		Ledger:    l,
		InApp:     inApp,
		Clock:     testutil.NewFakeClock(nineAM),
	}, Config{})

	result, err := d.Tick(context.Background(), "patient-1")
	if err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if result.Dispatched != 1 {
		t.Errorf("Tick() = %+v, want one dispatched", result)
	}

	notified, err := l.HasNotifiedToday(context.Background(), "rem-1", "2024-01-15")
	if err != nil || !notified {
		t.Errorf("ledger marked = %v, %v; want true", notified, err)
	}
}

func TestTickSameMinuteDispatchesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	reminders := domain.NewMockReminderRepository(ctrl)
	inApp := domain.NewMockInAppNotifier(ctrl)

	reminders.EXPECT().ListActiveReminders(gomock.Any(), "patient-1").
		Return([]*domain.Reminder{newReminder("rem-1", "09:00", domain.SoundNone)}, nil).
		Times(2)
	inApp.EXPECT().ShowInApp(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	l := &countingLedger{NotificationDedupLedger: ledger.NewMemoryLedger()}
	d := NewDispatcher(Dependencies{
		Reminders: reminders,
		Ledger:    l,
		InApp:     inApp,
		Clock:     testutil.NewFakeClock(nineAM),
	}, Config{})

	var wg sync.WaitGroup
	results := make([]TickResult, 2)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := d.Tick(context.Background(), "patient-1")
			if err != nil {
				t.Errorf("Tick() error = %v", err)
			}
			results[i] = r
		}()
	}
	wg.Wait()

	if got := results[0].Dispatched + results[1].Dispatched; got != 1 {
		t.Errorf("dispatched across both ticks = %d, want 1", got)
	}
	if got := l.marks(); got != 1 {
		t.Errorf("MarkNotified calls = %d, want 1", got)
	}
}

func TestTickListFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMocks(ctrl)
	m.reminders.EXPECT().ListActiveReminders(gomock.Any(), "patient-1").Return(nil, domain.ErrRepositoryUnavailable)

	_, err := m.dispatcher(testutil.NewFakeClock(nineAM)).Tick(context.Background(), "patient-1")
	if !errors.Is(err, domain.ErrRepositoryUnavailable) {
		t.Errorf("Tick() error = %v, want ErrRepositoryUnavailable", err)
	}
}

func TestTickCancelledSessionDoesNotClaim(t *testing.T) {
	ctrl := gomock.NewController(t)
	reminders := domain.NewMockReminderRepository(ctrl)
	ledgerMock := domain.NewMockNotificationDedupLedger(ctrl)
	inApp := domain.NewMockInAppNotifier(ctrl)

	ctx, cancel := context.WithCancel(context.Background())

	reminders.EXPECT().ListActiveReminders(gomock.Any(), "patient-1").
		Return([]*domain.Reminder{newReminder("rem-1", "09:00", domain.SoundNone)}, nil)
	ledgerMock.EXPECT().HasNotifiedToday(gomock.Any(), "rem-1", gomock.Any()).DoAndReturn(func(context.Context, string, string) (bool, error) {
		cancel()
		return false, nil
	})

	d := NewDispatcher(Dependencies{
		Reminders: reminders,
		Ledger:    ledgerMock,
		InApp:     inApp,
		Clock:     testutil.NewFakeClock(nineAM),
	}, Config{})

	result, err := d.Tick(ctx, "patient-1")
	if err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if result.Failed != 1 {
		t.Errorf("Tick() = %+v, want the dispatch abandoned", result)
	}
}

func TestToneFrequency(t *testing.T) {
	tests := []struct {
		sound  domain.Sound
		wantHz int
		wantOK bool
	}{
		{sound: domain.SoundUrgent, wantHz: 880, wantOK: true},
		{sound: domain.SoundDefault, wantHz: 660, wantOK: true},
		{sound: domain.SoundGentle, wantHz: 440, wantOK: true},
		{sound: "", wantHz: 660, wantOK: true},
		{sound: domain.SoundNone, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.sound), func(t *testing.T) {
			hz, ok := ToneFrequency(tt.sound)
			if hz != tt.wantHz || ok != tt.wantOK {
				t.Errorf("ToneFrequency(%q) = %d, %v; want %d, %v", tt.sound, hz, ok, tt.wantHz, tt.wantOK)
			}
		})
	}
}

type countingLedger struct {
	domain.NotificationDedupLedger
	mu    sync.Mutex
	count int
}

func (l *countingLedger) MarkNotified(ctx context.Context, reminderID, date string) (bool, error) {
	l.mu.Lock()
	l.count++
	l.mu.Unlock()
	return l.NotificationDedupLedger.MarkNotified(ctx, reminderID, date)
}

func (l *countingLedger) marks() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

type slowReadLedger struct {
	domain.NotificationDedupLedger
	delay time.Duration
}

func (l *slowReadLedger) HasNotifiedToday(ctx context.Context, reminderID, date string) (bool, error) {
	notified, err := l.NotificationDedupLedger.HasNotifiedToday(ctx, reminderID, date)
	time.Sleep(l.delay)
	return notified, err
}

type countingInApp struct {
	count atomic.Int32
}

func (c *countingInApp) ShowInApp(context.Context, domain.Notification) error {
	c.count.Add(1)
	return nil
}
