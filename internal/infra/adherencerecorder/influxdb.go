//go:build !gcloud

package adherencerecorder

import (
	"context"
	"log/slog"
	"strconv"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
)

const (
	adherenceMeasurement    = "adherence_record"
	notificationMeasurement = "notification_dispatch"
)

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	org      string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.AdherenceEventRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "adherence event recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, adherence event recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "adherence event recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
		bucket:   cfg.InfluxDBBucket,
		org:      cfg.InfluxDBOrg,
	}, nil
}

func adherencePoint(record domain.AdherenceEventRecord) *write.Point {
	return influxdb2.NewPoint(
		adherenceMeasurement,
		map[string]string{
			"patient_id":  record.PatientID,
			"subject_key": record.SubjectKey,
			"linked":      strconv.FormatBool(record.Linked),
		},
		map[string]any{
			"taken": record.Taken,
			"date":  record.Date,
		},
		record.RecordedAt,
	)
}

func notificationPoint(record domain.NotificationEventRecord) *write.Point {
	runID := record.RunID
	if runID == "" {
		runID = "default"
	}

	return influxdb2.NewPoint(
		notificationMeasurement,
		map[string]string{
			"run_id":     runID,
			"patient_id": record.PatientID,
			"sound":      record.Sound,
		},
		map[string]any{
			"reminder_id":    record.ReminderID,
			"scheduled_time": record.ScheduledTime,
			"platform":       record.Platform,
		},
		record.FiredAt,
	)
}

func (r *influxDBRecorder) RecordAdherence(ctx context.Context, records []domain.AdherenceEventRecord) error {
	if len(records) == 0 {
		return nil
	}

	points := make([]*write.Point, 0, len(records))
	for _, record := range records {
		points = append(points, adherencePoint(record))
	}

	if err := r.writeAPI.WritePoint(ctx, points...); err != nil {
		slog.WarnContext(ctx, "failed to write adherence events to InfluxDB",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func (r *influxDBRecorder) RecordNotifications(ctx context.Context, records []domain.NotificationEventRecord) error {
	if len(records) == 0 {
		return nil
	}

	points := make([]*write.Point, 0, len(records))
	for _, record := range records {
		points = append(points, notificationPoint(record))
	}

	if err := r.writeAPI.WritePoint(ctx, points...); err != nil {
		slog.WarnContext(ctx, "failed to write notification events to InfluxDB",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return r.writeAPI.Flush(ctx)
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
