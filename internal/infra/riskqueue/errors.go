package riskqueue

import "errors"

var (
	ErrInvalidEvent     = errors.New("invalid risk recalculation event")
	ErrUnexpectedStatus = errors.New("unexpected status from risk service")
)
