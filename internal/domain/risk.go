package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=risk.go -destination=risk_mock.go -package=domain

// RiskRecalcEvent asks the risk-scoring service to recompute a patient's score.
type RiskRecalcEvent struct {
	EventID     string    `json:"event_id"`
	PatientID   string    `json:"patient_id"`
	Reason      string    `json:"reason"`
	RequestedAt time.Time `json:"requested_at"`
}

type RiskRecalcPublisher interface {
	Publish(ctx context.Context, event *RiskRecalcEvent) error
}
