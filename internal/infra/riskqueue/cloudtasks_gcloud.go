//go:build gcloud

package riskqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
)

// CloudTasksPublisher enqueues one HTTP task per event. The task is named
// after the event id, so a retried publish cannot enqueue twice.
type CloudTasksPublisher struct {
	client         *cloudtasks.Client
	projectID      string
	locationID     string
	queueID        string
	targetURL      string
	serviceAccount string
	maxRetries     int
}

type CloudTasksConfig struct {
	ProjectID      string
	LocationID     string
	QueueID        string
	TargetURL      string
	ServiceAccount string
	MaxRetries     int
}

func NewCloudTasksPublisher(ctx context.Context, cfg CloudTasksConfig) (*CloudTasksPublisher, error) {
	client, err := cloudtasks.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	return &CloudTasksPublisher{
		client:         client,
		projectID:      cfg.ProjectID,
		locationID:     cfg.LocationID,
		queueID:        cfg.QueueID,
		targetURL:      cfg.TargetURL,
		serviceAccount: cfg.ServiceAccount,
		maxRetries:     maxRetries,
	}, nil
}

func (p *CloudTasksPublisher) queuePath() string {
	return fmt.Sprintf("projects/%s/locations/%s/queues/%s", p.projectID, p.locationID, p.queueID)
}

func (p *CloudTasksPublisher) Publish(ctx context.Context, event *domain.RiskRecalcEvent) error {
	if event == nil || event.PatientID == "" || event.EventID == "" {
		return ErrInvalidEvent
	}

	payload, err := json.Marshal(newRecalculationRequest(event))
	if err != nil {
		return fmt.Errorf("failed to marshal recalculation request: %w", err)
	}

	httpRequest := &taskspb.HttpRequest{
		HttpMethod: taskspb.HttpMethod_POST,
		Url:        p.targetURL,
		Headers: map[string]string{
			"Content-Type":       "application/json",
			idempotencyKeyHeader: event.EventID,
		},
		Body: payload,
	}
	if p.serviceAccount != "" {
		httpRequest.AuthorizationHeader = &taskspb.HttpRequest_OidcToken{
			OidcToken: &taskspb.OidcToken{
				ServiceAccountEmail: p.serviceAccount,
				Audience:            p.targetURL,
			},
		}
	}

	req := &taskspb.CreateTaskRequest{
		Parent: p.queuePath(),
		Task: &taskspb.Task{
			Name:         p.queuePath() + "/tasks/" + event.EventID,
			MessageType:  &taskspb.Task_HttpRequest{HttpRequest: httpRequest},
			ScheduleTime: timestamppb.New(event.RequestedAt),
		},
	}

	var lastErr error
	for attempt := 0; attempt < p.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
			slog.DebugContext(ctx, "retrying risk task creation",
				slog.String("event_id", event.EventID),
				slog.String("patient_id", event.PatientID),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		err := p.createTask(ctx, req, event)
		if err == nil {
			return nil
		}
		lastErr = err
	}

	slog.WarnContext(ctx, "all retries exhausted for risk task creation",
		slog.String("event_id", event.EventID),
		slog.String("patient_id", event.PatientID),
		slog.Int("max_retries", p.maxRetries),
		slog.String("error", lastErr.Error()),
	)
	return fmt.Errorf("failed to enqueue risk event after %d retries: %w", p.maxRetries, lastErr)
}

func (p *CloudTasksPublisher) createTask(ctx context.Context, req *taskspb.CreateTaskRequest, event *domain.RiskRecalcEvent) error {
	created, err := p.client.CreateTask(ctx, req)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			slog.InfoContext(ctx, "risk task already enqueued",
				slog.String("event_id", event.EventID),
			)
			return nil
		}
		slog.WarnContext(ctx, "failed to create risk task",
			slog.String("event_id", event.EventID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create cloud task: %w", err)
	}

	slog.DebugContext(ctx, "risk task enqueued",
		slog.String("task_name", created.GetName()),
		slog.String("event_id", event.EventID),
		slog.String("patient_id", event.PatientID),
	)
	return nil
}

func (p *CloudTasksPublisher) Close() error {
	return p.client.Close()
}
