package riskqueue

import (
	"time"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
)

// RecalculationRequest is the body the risk-scoring service accepts.
type RecalculationRequest struct {
	EventID     string    `json:"event_id"`
	PatientID   string    `json:"patient_id"`
	Reason      string    `json:"reason"`
	RequestedAt time.Time `json:"requested_at"`
}

func newRecalculationRequest(event *domain.RiskRecalcEvent) RecalculationRequest {
	return RecalculationRequest{
		EventID:     event.EventID,
		PatientID:   event.PatientID,
		Reason:      event.Reason,
		RequestedAt: event.RequestedAt.UTC(),
	}
}
