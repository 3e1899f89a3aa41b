//go:build gcloud

package adherencerecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
)

type bigQueryAdherenceRow struct {
	RecordedAt time.Time `bigquery:"recorded_at"`
	PatientID  string    `bigquery:"patient_id"`
	SubjectKey string    `bigquery:"subject_key"`
	Date       string    `bigquery:"date"`
	Taken      bool      `bigquery:"taken"`
	Linked     bool      `bigquery:"linked"`
}

type bigQueryNotificationRow struct {
	FiredAt       time.Time `bigquery:"fired_at"`
	RunID         string    `bigquery:"run_id"`
	PatientID     string    `bigquery:"patient_id"`
	ReminderID    string    `bigquery:"reminder_id"`
	ScheduledTime string    `bigquery:"scheduled_time"`
	Sound         string    `bigquery:"sound"`
	Platform      bool      `bigquery:"platform"`
}

type bigQueryRecorder struct {
	client        *bigquery.Client
	adherence     *bigquery.Inserter
	notifications *bigquery.Inserter
	dataset       string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.AdherenceEventRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "adherence event recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, adherence event recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, adherence event recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	dataset := client.Dataset(cfg.BigQueryDataset)

	slog.InfoContext(ctx, "adherence event recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
	)

	return &bigQueryRecorder{
		client:        client,
		adherence:     dataset.Table(cfg.BigQueryAdherenceTable).Inserter(),
		notifications: dataset.Table(cfg.BigQueryNotificationTable).Inserter(),
		dataset:       cfg.BigQueryDataset,
	}, nil
}

func (r *bigQueryRecorder) RecordAdherence(ctx context.Context, records []domain.AdherenceEventRecord) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([]*bigQueryAdherenceRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, &bigQueryAdherenceRow{
			RecordedAt: record.RecordedAt,
			PatientID:  record.PatientID,
			SubjectKey: record.SubjectKey,
			Date:       record.Date,
			Taken:      record.Taken,
			Linked:     record.Linked,
		})
	}

	if err := r.adherence.Put(ctx, rows); err != nil {
		slog.WarnContext(ctx, "failed to insert adherence events to BigQuery",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func (r *bigQueryRecorder) RecordNotifications(ctx context.Context, records []domain.NotificationEventRecord) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([]*bigQueryNotificationRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, &bigQueryNotificationRow{
			FiredAt:       record.FiredAt,
			RunID:         record.RunID,
			PatientID:     record.PatientID,
			ReminderID:    record.ReminderID,
			ScheduledTime: record.ScheduledTime,
			Sound:         record.Sound,
			Platform:      record.Platform,
		})
	}

	if err := r.notifications.Put(ctx, rows); err != nil {
		slog.WarnContext(ctx, "failed to insert notification events to BigQuery",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Flush(_ context.Context) error {
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
