package riskqueue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
	"github.com/KasumiMercury/primind-medication-adherence/internal/observability/logging"
	"github.com/KasumiMercury/primind-medication-adherence/internal/observability/tracing"
)

const idempotencyKeyHeader = "Idempotency-Key"

// HTTPPublisher posts recalculation requests straight to the risk service.
type HTTPPublisher struct {
	url        string
	httpClient *http.Client
	maxRetries int
}

func NewHTTPPublisher(url string, maxRetries int) *HTTPPublisher {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &HTTPPublisher{
		url:        url,
		httpClient: newHTTPClient(url),
		maxRetries: maxRetries,
	}
}

func (p *HTTPPublisher) Publish(ctx context.Context, event *domain.RiskRecalcEvent) error {
	if event == nil || event.PatientID == "" || event.EventID == "" {
		return ErrInvalidEvent
	}

	body, err := json.Marshal(newRecalculationRequest(event))
	if err != nil {
		return fmt.Errorf("failed to marshal recalculation request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < p.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
			slog.DebugContext(ctx, "retrying risk recalculation request",
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

		err := p.doRequest(ctx, body, event)
		if err == nil {
			return nil
		}
		lastErr = err
	}

	slog.WarnContext(ctx, "all retries exhausted for risk recalculation request",
		slog.String("event_id", event.EventID),
		slog.String("patient_id", event.PatientID),
		slog.Int("max_retries", p.maxRetries),
		slog.String("error", lastErr.Error()),
	)
	return fmt.Errorf("failed to publish risk event after %d retries: %w", p.maxRetries, lastErr)
}

func (p *HTTPPublisher) doRequest(ctx context.Context, body []byte, event *domain.RiskRecalcEvent) error {
	ctx, span := tracing.StartExternalAPISpan(ctx, "risk_recalculation", p.url)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		tracing.RecordResult(span, err)
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(idempotencyKeyHeader, event.EventID)
	if requestID := logging.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		tracing.RecordResult(span, err)
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		err := fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
		tracing.RecordResult(span, err)
		return err
	}

	tracing.RecordResult(span, nil)
	slog.DebugContext(ctx, "risk recalculation requested",
		slog.String("event_id", event.EventID),
		slog.String("patient_id", event.PatientID),
		slog.Int("status_code", resp.StatusCode),
	)
	return nil
}
