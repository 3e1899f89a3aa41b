package notifyhub

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
)

func newTestServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		granted := r.URL.Query().Get("notification_permission") == "granted"
		c, err := hub.Upgrade(w, r, r.URL.Query().Get("patient_id"), granted)
		if err != nil {
			return
		}
		c.Serve()
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if f := readFrame(t, conn); f.Type != FrameConnected {
		t.Fatalf("first frame = %q, want %q", f.Type, FrameConnected)
	}
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}

	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("invalid frame %s: %v", data, err)
	}
	return f
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func notification(patientID, reminderID string) domain.Notification {
	return domain.Notification{
		ReminderID:     reminderID,
		PatientID:      patientID,
		MedicationName: "Metformin",
		Dosage:         "500mg",
		ScheduledTime:  "09:00",
		Sound:          domain.SoundGentle,
	}
}

func TestHubDeliversFrames(t *testing.T) {
	hub := NewHub(Config{})
	srv := newTestServer(t, hub)
	conn := dial(t, srv, "patient_id=patient-1&notification_permission=granted")

	ctx := context.Background()
	if !hub.PermissionGranted("patient-1") {
		t.Fatal("PermissionGranted() = false")
	}

	n := notification("patient-1", "rem-1")
	if err := hub.ShowInApp(ctx, n); err != nil {
		t.Fatalf("ShowInApp() error = %v", err)
	}
	if err := hub.ShowNotification(ctx, n, 10*time.Second); err != nil {
		t.Fatalf("ShowNotification() error = %v", err)
	}
	if err := hub.PlayTone(ctx, "patient-1", 440, 300*time.Millisecond); err != nil {
		t.Fatalf("PlayTone() error = %v", err)
	}

	inApp := readFrame(t, conn)
	if inApp.Type != FrameInApp || inApp.Notification == nil || inApp.Notification.ReminderID != "rem-1" {
		t.Errorf("in-app frame = %+v", inApp)
	}

	platform := readFrame(t, conn)
	if platform.Type != FramePlatform || platform.AutoDismissMS != 10000 {
		t.Errorf("platform frame = %+v", platform)
	}

	tone := readFrame(t, conn)
	if tone.Type != FrameTone || tone.FrequencyHz != 440 || tone.DurationMS != 300 {
		t.Errorf("tone frame = %+v", tone)
	}
}

func TestHubPermissionUpdatesFromClient(t *testing.T) {
	hub := NewHub(Config{})
	srv := newTestServer(t, hub)
	conn := dial(t, srv, "patient_id=patient-1")

	if hub.PermissionGranted("patient-1") {
		t.Fatal("PermissionGranted() = true before grant")
	}

	granted := true
	if err := conn.WriteJSON(Frame{Type: FramePermission, Granted: &granted}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	waitFor(t, func() bool { return hub.PermissionGranted("patient-1") })
}

func TestHubDisconnectUnregisters(t *testing.T) {
	hub := NewHub(Config{})
	srv := newTestServer(t, hub)
	conn := dial(t, srv, "patient_id=patient-1")

	if !hub.Connected("patient-1") {
		t.Fatal("Connected() = false after dial")
	}
	if err := hub.ShowInApp(context.Background(), notification("patient-1", "rem-1")); err != nil {
		t.Fatalf("ShowInApp() error = %v", err)
	}
	if got := len(hub.Feed("patient-1")); got != 1 {
		t.Fatalf("Feed() length = %d, want 1", got)
	}

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = conn.Close()

	waitFor(t, func() bool { return !hub.Connected("patient-1") })
	if hub.PermissionGranted("patient-1") {
		t.Error("PermissionGranted() = true without session")
	}
	if got := len(hub.Feed("patient-1")); got != 0 {
		t.Errorf("Feed() length after last disconnect = %d, want 0", got)
	}
}

func TestHubFeedWithoutSession(t *testing.T) {
	hub := NewHub(Config{FeedSize: 2})
	ctx := context.Background()

	for _, id := range []string{"rem-1", "rem-2", "rem-3"} {
		if err := hub.ShowInApp(ctx, notification("patient-1", id)); err != nil {
			t.Fatalf("ShowInApp() error = %v", err)
		}
	}
	if err := hub.PlayTone(ctx, "patient-1", 880, 300*time.Millisecond); err != nil {
		t.Fatalf("PlayTone() without session error = %v", err)
	}

	feed := hub.Feed("patient-1")
	if len(feed) != 2 {
		t.Fatalf("Feed() length = %d, want 2", len(feed))
	}
	if feed[0].ReminderID != "rem-3" || feed[1].ReminderID != "rem-2" {
		t.Errorf("Feed() order = [%s %s], want newest first", feed[0].ReminderID, feed[1].ReminderID)
	}

	if other := hub.Feed("patient-2"); len(other) != 0 {
		t.Errorf("Feed(patient-2) = %v, want empty", other)
	}
}
