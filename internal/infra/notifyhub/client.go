package notifyhub

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Client is one open patient socket.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	patientID string

	mu         sync.RWMutex
	permission bool
	closeOnce  sync.Once
}

func (c *Client) PatientID() string {
	return c.patientID
}

func (c *Client) permissionGranted() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.permission
}

func (c *Client) setPermission(granted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.permission = granted
}

func (c *Client) enqueue(f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) closeSend() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// Serve pumps frames until the socket closes, then unregisters the client.
func (c *Client) Serve() {
	go c.writePump()
	c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("notification session read failed",
					slog.String("patient_id", c.patientID),
					slog.String("error", err.Error()),
				)
			}
			return
		}

		var f Frame
		if err := json.Unmarshal(message, &f); err != nil {
			slog.Debug("ignoring malformed client frame",
				slog.String("patient_id", c.patientID),
				slog.String("error", err.Error()),
			)
			continue
		}

		switch f.Type {
		case FramePermission:
			if f.Granted != nil {
				c.setPermission(*f.Granted)
				slog.Info("platform notification permission changed",
					slog.String("patient_id", c.patientID),
					slog.Bool("granted", *f.Granted),
				)
			}
		default:
			slog.Debug("unknown client frame",
				slog.String("patient_id", c.patientID),
				slog.String("type", string(f.Type)),
			)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
