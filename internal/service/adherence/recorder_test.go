package adherence

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
	"github.com/KasumiMercury/primind-medication-adherence/internal/testutil"
)

type fakeRisk struct {
	mu       sync.Mutex
	patients []string
}

func (f *fakeRisk) Notify(_ context.Context, patientID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patients = append(f.patients, patientID)
}

func (f *fakeRisk) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.patients...)
}

type fixture struct {
	adherence     *domain.MockAdherenceRepository
	prescriptions *domain.MockPrescriptionRepository
	risk          *fakeRisk
	clock         *testutil.FakeClock
	recorder      *Recorder
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		adherence:     domain.NewMockAdherenceRepository(ctrl),
		prescriptions: domain.NewMockPrescriptionRepository(ctrl),
		risk:          &fakeRisk{},
		clock:         testutil.NewFakeClock(now),
	}
	f.recorder = NewRecorder(Dependencies{
		Adherence:     f.adherence,
		Prescriptions: f.prescriptions,
		Risk:          f.risk,
		Clock:         f.clock,
	}, Config{WindowMinutes: 30, RepositoryTimeout: time.Second})

	return f
}

func at(hour, minute int) time.Time {
	return time.Date(2024, 1, 15, hour, minute, 0, 0, time.Local)
}

func standalone() *domain.Reminder {
	return &domain.Reminder{
		ID:             "rem-1",
		PatientID:      "patient-1",
		MedicationName: "Lisinopril",
		Frequency:      domain.FrequencyDaily,
		ScheduledTime:  "09:00",
		Active:         true,
	}
}

func linked(prescriptionID string) *domain.Reminder {
	r := standalone()
	r.PrescriptionID = &prescriptionID
	return r
}

func patientCtx() context.Context {
	return domain.WithPatientID(context.Background(), "patient-1")
}

// echoUpsert returns the record it was given, with an ID.
func echoUpsert(_ context.Context, r *domain.AdherenceRecord) (*domain.AdherenceRecord, error) {
	saved := *r
	saved.ID = "rec-1"
	return &saved, nil
}

func TestRecordAdherenceWindow(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{name: "inside window", now: at(9, 15)},
		{name: "early bound", now: at(8, 30)},
		{name: "late bound", now: at(9, 30)},
		{name: "after window", now: at(9, 45), wantErr: domain.ErrOutsideWindow},
		{name: "one minute past", now: at(9, 31), wantErr: domain.ErrOutsideWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.now)
			if tt.wantErr == nil {
				f.adherence.EXPECT().UpsertAdherenceRecord(gomock.Any(), gomock.Any()).DoAndReturn(echoUpsert)
				f.adherence.EXPECT().ListAdherenceBySubject(gomock.Any(), "rem-1").Return(nil, nil)
			}

			_, err := f.recorder.RecordAdherence(patientCtx(), standalone(), true, "")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("RecordAdherence() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecordAdherenceOutsideWindowExplainsReason(t *testing.T) {
	f := newFixture(t, at(9, 45))

	_, err := f.recorder.RecordAdherence(patientCtx(), standalone(), true, "")
	if err == nil {
		t.Fatal("RecordAdherence() error = nil")
	}
	if !strings.Contains(err.Error(), "30-minute window") {
		t.Errorf("error %q does not name the window", err.Error())
	}
}

func TestRecordAdherenceStandaloneMissed(t *testing.T) {
	f := newFixture(t, at(9, 10))

	var stored []*domain.AdherenceRecord
	f.adherence.EXPECT().UpsertAdherenceRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, r *domain.AdherenceRecord) (*domain.AdherenceRecord, error) {
			saved, err := echoUpsert(ctx, r)
			stored = append(stored, saved)
			return saved, err
		})
	f.adherence.EXPECT().ListAdherenceBySubject(gomock.Any(), "rem-1").
		DoAndReturn(func(context.Context, string) ([]*domain.AdherenceRecord, error) {
			return stored, nil
		})

	result, err := f.recorder.RecordAdherence(patientCtx(), standalone(), false, "forgot")
	if err != nil {
		t.Fatalf("RecordAdherence() error = %v", err)
	}

	rec := result.Record
	if rec.SubjectKey != "rem-1" || rec.PatientID != "patient-1" || rec.Date != "2024-01-15" {
		t.Errorf("record = %+v", rec)
	}
	if rec.Taken || rec.MissedReason != "forgot" {
		t.Errorf("record outcome = taken %v reason %q, want missed/forgot", rec.Taken, rec.MissedReason)
	}

	stats := result.Stats
	if stats == nil {
		t.Fatal("Stats = nil")
	}
	if stats.Percentage != 0 || stats.TakenCount != 0 || stats.TotalCount != 1 {
		t.Errorf("Stats = %+v, want 0%% of 1", stats)
	}

	if got := f.risk.calls(); len(got) != 1 || got[0] != "patient-1" {
		t.Errorf("risk notifications = %v, want [patient-1]", got)
	}
}

func TestRecordAdherenceTakenDropsReason(t *testing.T) {
	f := newFixture(t, at(9, 0))

	f.adherence.EXPECT().UpsertAdherenceRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, r *domain.AdherenceRecord) (*domain.AdherenceRecord, error) {
			if r.MissedReason != "" {
				t.Errorf("MissedReason = %q, want empty for taken dose", r.MissedReason)
			}
			return echoUpsert(ctx, r)
		})
	f.adherence.EXPECT().ListAdherenceBySubject(gomock.Any(), gomock.Any()).Return(nil, nil)

	if _, err := f.recorder.RecordAdherence(patientCtx(), standalone(), true, "forgot"); err != nil {
		t.Fatalf("RecordAdherence() error = %v", err)
	}
}

func TestRecordAdherenceLinkedUsesPrescriptionKey(t *testing.T) {
	f := newFixture(t, at(9, 5))

	f.prescriptions.EXPECT().ResolvePrescription(gomock.Any(), "rx-1").
		Return(&domain.Prescription{ID: "rx-1", PatientID: "patient-1", Active: true}, nil)
	f.adherence.EXPECT().UpsertAdherenceRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, r *domain.AdherenceRecord) (*domain.AdherenceRecord, error) {
			if r.SubjectKey != "rx-1" {
				t.Errorf("SubjectKey = %q, want rx-1", r.SubjectKey)
			}
			return echoUpsert(ctx, r)
		})
	f.adherence.EXPECT().ListAdherenceBySubject(gomock.Any(), "rx-1").Return([]*domain.AdherenceRecord{
		{SubjectKey: "rx-1", Date: "2024-01-14", Taken: true},
		{SubjectKey: "rx-1", Date: "2024-01-15", Taken: true},
	}, nil)

	result, err := f.recorder.RecordAdherence(patientCtx(), linked("rx-1"), true, "")
	if err != nil {
		t.Fatalf("RecordAdherence() error = %v", err)
	}
	if result.Stats == nil || result.Stats.Percentage != 100 || result.Stats.TotalCount != 2 {
		t.Errorf("Stats = %+v, want 100%% of 2", result.Stats)
	}
}

func TestRecordAdherenceCheckOrder(t *testing.T) {
	inactive := standalone()
	inactive.Active = false

	tests := []struct {
		name     string
		reminder *domain.Reminder
		ctx      context.Context
		now      time.Time
		setup    func(f *fixture)
		wantErr  error
	}{
		{
			name:     "inactive before window",
			reminder: inactive,
			ctx:      patientCtx(),
			now:      at(15, 0),
			wantErr:  domain.ErrReminderInactive,
		},
		{
			name:     "window before prescription",
			reminder: linked("rx-gone"),
			ctx:      context.Background(),
			now:      at(12, 0),
			wantErr:  domain.ErrOutsideWindow,
		},
		{
			name:     "prescription before patient",
			reminder: linked("rx-gone"),
			ctx:      context.Background(),
			now:      at(9, 0),
			setup: func(f *fixture) {
				f.prescriptions.EXPECT().ResolvePrescription(gomock.Any(), "rx-gone").
					Return(nil, domain.ErrPrescriptionNotFound)
			},
			wantErr: domain.ErrPrescriptionNotFound,
		},
		{
			name:     "missing patient",
			reminder: standalone(),
			ctx:      context.Background(),
			now:      at(9, 0),
			wantErr:  domain.ErrNoPatientContext,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.now)
			if tt.setup != nil {
				tt.setup(f)
			}

			result, err := f.recorder.RecordAdherence(tt.ctx, tt.reminder, true, "")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("RecordAdherence() error = %v, want %v", err, tt.wantErr)
			}
			if result != nil {
				t.Errorf("RecordAdherence() result = %+v, want nil", result)
			}
			if got := f.risk.calls(); len(got) != 0 {
				t.Errorf("risk notified on rejection: %v", got)
			}
		})
	}
}

func TestRecordAdherenceRepositoryFailures(t *testing.T) {
	tests := []struct {
		name      string
		upsertErr error
		wantErr   error
	}{
		{name: "deadline", upsertErr: context.DeadlineExceeded, wantErr: domain.ErrTimeout},
		{name: "classified timeout", upsertErr: domain.ErrTimeout, wantErr: domain.ErrTimeout},
		{name: "connection refused", upsertErr: errors.New("dial tcp: connection refused"), wantErr: domain.ErrRepositoryUnavailable},
		{name: "unavailable", upsertErr: domain.ErrRepositoryUnavailable, wantErr: domain.ErrRepositoryUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, at(9, 0))
			f.adherence.EXPECT().UpsertAdherenceRecord(gomock.Any(), gomock.Any()).Return(nil, tt.upsertErr)

			_, err := f.recorder.RecordAdherence(patientCtx(), standalone(), true, "")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("RecordAdherence() error = %v, want %v", err, tt.wantErr)
			}
			if errors.Is(err, domain.ErrOutsideWindow) || errors.Is(err, domain.ErrPrescriptionNotFound) {
				t.Errorf("I/O failure misclassified: %v", err)
			}
			if got := f.risk.calls(); len(got) != 0 {
				t.Errorf("risk notified on failure: %v", got)
			}
		})
	}
}

func TestRecordAdherenceSlowRepositoryTimesOut(t *testing.T) {
	f := newFixture(t, at(9, 0))
	f.recorder.cfg.RepositoryTimeout = 20 * time.Millisecond

	f.adherence.EXPECT().UpsertAdherenceRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *domain.AdherenceRecord) (*domain.AdherenceRecord, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	_, err := f.recorder.RecordAdherence(patientCtx(), standalone(), true, "")
	if !errors.Is(err, domain.ErrTimeout) {
		t.Fatalf("RecordAdherence() error = %v, want ErrTimeout", err)
	}
}

func TestRecordAdherenceCancelledSessionDoesNotWrite(t *testing.T) {
	f := newFixture(t, at(9, 0))

	ctx, cancel := context.WithCancel(patientCtx())
	cancel()

	_, err := f.recorder.RecordAdherence(ctx, standalone(), true, "")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("RecordAdherence() error = %v, want context.Canceled", err)
	}
}

func TestRecordAdherenceStatsFailureKeepsWrite(t *testing.T) {
	f := newFixture(t, at(9, 0))
	f.adherence.EXPECT().UpsertAdherenceRecord(gomock.Any(), gomock.Any()).DoAndReturn(echoUpsert)
	f.adherence.EXPECT().ListAdherenceBySubject(gomock.Any(), "rem-1").Return(nil, domain.ErrRepositoryUnavailable)

	result, err := f.recorder.RecordAdherence(patientCtx(), standalone(), true, "")
	if err != nil {
		t.Fatalf("RecordAdherence() error = %v", err)
	}
	if result.Record == nil || result.Stats != nil {
		t.Errorf("result = %+v, want record without stats", result)
	}
	if got := f.risk.calls(); len(got) != 1 {
		t.Errorf("risk notifications = %d, want 1", len(got))
	}
}

func TestRecordAdherenceEmitsEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockAdherenceRepository(ctrl)
	events := domain.NewMockAdherenceEventRecorder(ctrl)

	repo.EXPECT().UpsertAdherenceRecord(gomock.Any(), gomock.Any()).DoAndReturn(echoUpsert)
	repo.EXPECT().ListAdherenceBySubject(gomock.Any(), gomock.Any()).Return(nil, nil)
	events.EXPECT().RecordAdherence(gomock.Any(), gomock.Len(1)).
		DoAndReturn(func(_ context.Context, records []domain.AdherenceEventRecord) error {
			if records[0].SubjectKey != "rem-1" || !records[0].Taken || records[0].Linked {
				t.Errorf("event = %+v", records[0])
			}
			return errors.New("sink down")
		})

	r := NewRecorder(Dependencies{
		Adherence: repo,
		Events:    events,
		Clock:     testutil.NewFakeClock(at(9, 0)),
	}, Config{})

	if _, err := r.RecordAdherence(patientCtx(), standalone(), true, ""); err != nil {
		t.Fatalf("RecordAdherence() error = %v", err)
	}
}
