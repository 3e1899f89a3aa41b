package notifyhub

import (
	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
)

type FrameType string

const (
	FrameConnected  FrameType = "connected"
	FrameInApp      FrameType = "in_app"
	FramePlatform   FrameType = "platform"
	FrameTone       FrameType = "tone"
	FramePermission FrameType = "permission"
)

// Frame is one JSON message on the session socket.
type Frame struct {
	Type          FrameType            `json:"type"`
	Notification  *domain.Notification `json:"notification,omitempty"`
	AutoDismissMS int64                `json:"auto_dismiss_ms,omitempty"`
	FrequencyHz   int                  `json:"frequency_hz,omitempty"`
	DurationMS    int64                `json:"duration_ms,omitempty"`

	// Granted is sent by the client when the platform permission changes.
	Granted *bool `json:"granted,omitempty"`
}
