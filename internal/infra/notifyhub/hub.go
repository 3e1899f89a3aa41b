// Package notifyhub delivers reminder alerts to connected patient sessions
// over websockets and keeps a short in-app feed per patient.
package notifyhub

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024

	defaultFeedSize   = 50
	defaultSendBuffer = 32
)

type Config struct {
	FeedSize   int
	SendBuffer int

	// CheckOrigin overrides the upgrader's same-origin check.
	CheckOrigin func(r *http.Request) bool
}

// Hub implements domain.InAppNotifier, domain.PlatformNotifier and
// domain.TonePlayer on top of the patients' open sockets. Frames for a patient
// without a socket are dropped; in-app notifications still reach the feed.
type Hub struct {
	upgrader   websocket.Upgrader
	feedSize   int
	sendBuffer int

	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
	feeds   map[string][]domain.Notification
}

var (
	_ domain.InAppNotifier    = (*Hub)(nil)
	_ domain.PlatformNotifier = (*Hub)(nil)
	_ domain.TonePlayer       = (*Hub)(nil)
)

func NewHub(cfg Config) *Hub {
	if cfg.FeedSize <= 0 {
		cfg.FeedSize = defaultFeedSize
	}
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = defaultSendBuffer
	}

	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     cfg.CheckOrigin,
		},
		feedSize:   cfg.FeedSize,
		sendBuffer: cfg.SendBuffer,
		clients:    make(map[string]map[*Client]struct{}),
		feeds:      make(map[string][]domain.Notification),
	}
}

// Upgrade switches the request to a websocket and registers it for patientID.
// The caller must run the returned client with Serve.
func (h *Hub) Upgrade(w http.ResponseWriter, r *http.Request, patientID string, permissionGranted bool) (*Client, error) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}

	c := &Client{
		hub:        h,
		conn:       conn,
		send:       make(chan []byte, h.sendBuffer),
		patientID:  patientID,
		permission: permissionGranted,
	}

	h.mu.Lock()
	set, ok := h.clients[patientID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[patientID] = set
	}
	set[c] = struct{}{}
	total := len(set)
	h.mu.Unlock()

	slog.InfoContext(r.Context(), "notification session connected",
		slog.String("event", "notifyhub.connect"),
		slog.String("patient_id", patientID),
		slog.Bool("platform_permission", permissionGranted),
		slog.Int("sessions", total),
	)

	c.enqueue(Frame{Type: FrameConnected})
	return c, nil
}

// Connected reports whether patientID has at least one open socket.
func (h *Hub) Connected(patientID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[patientID]) > 0
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	set := h.clients[c.patientID]
	if _, ok := set[c]; ok {
		delete(set, c)
		c.closeSend()
	}
	if len(set) == 0 {
		delete(h.clients, c.patientID)
		delete(h.feeds, c.patientID)
	}
	remaining := len(set)
	h.mu.Unlock()

	slog.Info("notification session disconnected",
		slog.String("event", "notifyhub.disconnect"),
		slog.String("patient_id", c.patientID),
		slog.Int("sessions", remaining),
	)
}

// Feed returns the patient's recent in-app notifications, newest first. The
// feed is dropped when the patient's last socket closes.
func (h *Hub) Feed(patientID string) []domain.Notification {
	h.mu.RLock()
	defer h.mu.RUnlock()

	feed := h.feeds[patientID]
	out := make([]domain.Notification, 0, len(feed))
	for i := len(feed) - 1; i >= 0; i-- {
		out = append(out, feed[i])
	}
	return out
}

func (h *Hub) ShowInApp(ctx context.Context, n domain.Notification) error {
	h.mu.Lock()
	feed := append(h.feeds[n.PatientID], n)
	if len(feed) > h.feedSize {
		feed = feed[len(feed)-h.feedSize:]
	}
	h.feeds[n.PatientID] = feed
	h.mu.Unlock()

	h.sendToPatient(ctx, n.PatientID, Frame{Type: FrameInApp, Notification: &n})
	return nil
}

func (h *Hub) PermissionGranted(patientID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[patientID] {
		if c.permissionGranted() {
			return true
		}
	}
	return false
}

func (h *Hub) ShowNotification(ctx context.Context, n domain.Notification, autoDismiss time.Duration) error {
	h.sendToPatient(ctx, n.PatientID, Frame{
		Type:          FramePlatform,
		Notification:  &n,
		AutoDismissMS: autoDismiss.Milliseconds(),
	})
	return nil
}

func (h *Hub) PlayTone(ctx context.Context, patientID string, frequencyHz int, duration time.Duration) error {
	h.sendToPatient(ctx, patientID, Frame{
		Type:        FrameTone,
		FrequencyHz: frequencyHz,
		DurationMS:  duration.Milliseconds(),
	})
	return nil
}

// Close ends every session.
func (h *Hub) Close() {
	h.mu.Lock()
	var all []*Client
	for _, set := range h.clients {
		for c := range set {
			all = append(all, c)
		}
	}
	h.mu.Unlock()

	for _, c := range all {
		_ = c.conn.Close()
	}
}

func (h *Hub) sendToPatient(ctx context.Context, patientID string, f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode frame",
			slog.String("type", string(f.Type)),
			slog.String("error", err.Error()),
		)
		return
	}

	var stale []*Client
	sent := 0

	h.mu.RLock()
	for c := range h.clients[patientID] {
		select {
		case c.send <- data:
			sent++
		default:
			stale = append(stale, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stale {
		slog.WarnContext(ctx, "notification session buffer full, closing",
			slog.String("patient_id", patientID),
		)
		_ = c.conn.Close()
	}

	if sent == 0 {
		slog.DebugContext(ctx, "no session for frame, dropped",
			slog.String("patient_id", patientID),
			slog.String("type", string(f.Type)),
		)
	}
}
