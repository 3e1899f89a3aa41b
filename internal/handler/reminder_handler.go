package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
	"github.com/KasumiMercury/primind-medication-adherence/internal/service/engine"
	"github.com/KasumiMercury/primind-medication-adherence/internal/service/reminder"
)

type ReminderHandler struct {
	reminders *reminder.Service
	engine    *engine.Engine
}

func NewReminderHandler(reminders *reminder.Service, eng *engine.Engine) *ReminderHandler {
	return &ReminderHandler{
		reminders: reminders,
		engine:    eng,
	}
}

func (h *ReminderHandler) List(c *gin.Context) {
	reminders, err := h.reminders.List(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

func (h *ReminderHandler) Create(c *gin.Context) {
	var in reminder.CreateInput
	if err := decodeStrict(c, &in); err != nil {
		respondDomainError(c, err)
		return
	}

	created, err := h.reminders.Create(c.Request.Context(), in)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ReminderHandler) Update(c *gin.Context) {
	var patch domain.ReminderPatch
	if err := decodeStrict(c, &patch); err != nil {
		respondDomainError(c, err)
		return
	}

	updated, err := h.reminders.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ReminderHandler) Delete(c *gin.Context) {
	if err := h.reminders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReminderHandler) Toggle(c *gin.Context) {
	toggled, err := h.reminders.ToggleActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toggled)
}

func (h *ReminderHandler) TimeRemaining(c *gin.Context) {
	remaining, err := h.engine.TimeRemaining(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, remaining)
}
