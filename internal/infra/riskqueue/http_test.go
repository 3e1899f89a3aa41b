package riskqueue

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
)

func testEvent() *domain.RiskRecalcEvent {
	return &domain.RiskRecalcEvent{
		EventID:     "evt-1",
		PatientID:   "patient-1",
		Reason:      "adherence_recorded",
		RequestedAt: time.Date(2024, 1, 15, 9, 15, 0, 0, time.UTC),
	}
}

func TestHTTPPublisherPublish(t *testing.T) {
	tests := []struct {
		name         string
		statuses     []int
		maxRetries   int
		wantErr      bool
		wantAttempts int32
	}{
		{name: "accepted first try", statuses: []int{http.StatusAccepted}, maxRetries: 3, wantAttempts: 1},
		{name: "retries then succeeds", statuses: []int{http.StatusServiceUnavailable, http.StatusOK}, maxRetries: 3, wantAttempts: 2},
		{name: "gives up after max retries", statuses: []int{http.StatusInternalServerError}, maxRetries: 2, wantErr: true, wantAttempts: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var attempts atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := attempts.Add(1)

				if got := r.Header.Get(idempotencyKeyHeader); got != "evt-1" {
					t.Errorf("Idempotency-Key = %q, want evt-1", got)
				}
				var body RecalculationRequest
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Errorf("failed to decode body: %v", err)
				}
				if body.PatientID != "patient-1" {
					t.Errorf("patient_id = %q, want patient-1", body.PatientID)
				}

				idx := int(n) - 1
				if idx >= len(tt.statuses) {
					idx = len(tt.statuses) - 1
				}
				w.WriteHeader(tt.statuses[idx])
			}))
			defer srv.Close()

			p := NewHTTPPublisher(srv.URL, tt.maxRetries)
			err := p.Publish(context.Background(), testEvent())

			if (err != nil) != tt.wantErr {
				t.Fatalf("Publish() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnexpectedStatus) {
				t.Errorf("Publish() error = %v, want ErrUnexpectedStatus", err)
			}
			if got := attempts.Load(); got != tt.wantAttempts {
				t.Errorf("attempts = %d, want %d", got, tt.wantAttempts)
			}
		})
	}
}

func TestHTTPPublisherRejectsInvalidEvent(t *testing.T) {
	p := NewHTTPPublisher("http://127.0.0.1:0", 1)

	if err := p.Publish(context.Background(), &domain.RiskRecalcEvent{EventID: "evt-1"}); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("Publish() error = %v, want ErrInvalidEvent", err)
	}
}

func TestHTTPPublisherStopsOnCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewHTTPPublisher(srv.URL, 5)
	if err := p.Publish(ctx, testEvent()); err == nil {
		t.Error("Publish() on cancelled context should fail")
	}
}
