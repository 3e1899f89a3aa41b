package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
	"github.com/KasumiMercury/primind-medication-adherence/internal/infra/notifyhub"
	"github.com/KasumiMercury/primind-medication-adherence/internal/service/engine"
)

const permissionGranted = "granted"

// NotificationHandler owns the patient session socket. The scheduler runs
// while at least one socket of the patient is open.
type NotificationHandler struct {
	hub    *notifyhub.Hub
	engine *engine.Engine
}

func NewNotificationHandler(hub *notifyhub.Hub, eng *engine.Engine) *NotificationHandler {
	return &NotificationHandler{
		hub:    hub,
		engine: eng,
	}
}

func (h *NotificationHandler) Feed(c *gin.Context) {
	patientID, err := domain.PatientIDFromContext(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": h.hub.Feed(patientID)})
}

// Connect upgrades to a websocket, starts the patient's scheduler and blocks
// until the socket closes.
func (h *NotificationHandler) Connect(c *gin.Context) {
	ctx := c.Request.Context()
	patientID, err := domain.PatientIDFromContext(ctx)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	granted := c.Query("notification_permission") == permissionGranted
	client, err := h.hub.Upgrade(c.Writer, c.Request, patientID, granted)
	if err != nil {
		slog.WarnContext(ctx, "websocket upgrade failed",
			slog.String("patient_id", patientID),
			slog.String("error", err.Error()),
		)
		return
	}

	closeSession := h.engine.OpenSession(ctx, patientID)
	defer closeSession()

	client.Serve()
}

// EndSession stops the patient's scheduler, e.g. on logout.
func (h *NotificationHandler) EndSession(c *gin.Context) {
	patientID, err := domain.PatientIDFromContext(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	h.engine.StopScheduler(patientID)
	c.Status(http.StatusNoContent)
}
