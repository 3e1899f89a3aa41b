//go:build !gcloud

package adherencerecorder

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
)

func TestNewRecorderFallsBackToNoop(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{name: "disabled", cfg: &Config{Disabled: true, InfluxDBToken: "token", InfluxDBOrg: "org"}},
		{name: "missing token", cfg: &Config{InfluxDBURL: "http://localhost:8086", InfluxDBOrg: "org"}},
		{name: "missing org", cfg: &Config{InfluxDBURL: "http://localhost:8086", InfluxDBToken: "token"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := NewRecorder(context.Background(), tt.cfg)
			if err != nil {
				t.Fatalf("NewRecorder() error = %v", err)
			}
			if _, ok := rec.(*noopRecorder); !ok {
				t.Errorf("NewRecorder() = %T, want *noopRecorder", rec)
			}
		})
	}
}

func TestAdherencePointLineProtocol(t *testing.T) {
	at := time.Date(2024, 1, 15, 9, 5, 0, 0, time.UTC)
	p := adherencePoint(domain.AdherenceEventRecord{
		PatientID:  "patient-1",
		SubjectKey: "rx-1",
		Date:       "2024-01-15",
		Taken:      true,
		Linked:     true,
		RecordedAt: at,
	})

	line := write.PointToLineProtocol(p, time.Second)
	for _, want := range []string{
		"adherence_record,",
		"linked=true",
		"patient_id=patient-1",
		"subject_key=rx-1",
		"taken=true",
		`date="2024-01-15"`,
	} {
		if !strings.Contains(line, want) {
			t.Errorf("line protocol %q missing %q", line, want)
		}
	}
}

func TestNotificationPointDefaultsRunID(t *testing.T) {
	p := notificationPoint(domain.NotificationEventRecord{
		PatientID:     "patient-1",
		ReminderID:    "rem-1",
		ScheduledTime: "09:00",
		Sound:         "gentle",
		FiredAt:       time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
	})

	line := write.PointToLineProtocol(p, time.Second)
	if !strings.Contains(line, "run_id=default") {
		t.Errorf("line protocol %q missing default run id", line)
	}
}
