package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-medication-adherence/internal/service/engine"
)

type recordAdherenceRequest struct {
	Taken        *bool  `json:"taken" validate:"required"`
	MissedReason string `json:"missed_reason,omitempty" validate:"max=255"`
}

type AdherenceHandler struct {
	engine *engine.Engine
}

func NewAdherenceHandler(eng *engine.Engine) *AdherenceHandler {
	return &AdherenceHandler{
		engine: eng,
	}
}

func (h *AdherenceHandler) Record(c *gin.Context) {
	var req recordAdherenceRequest
	if err := decodeStrict(c, &req); err != nil {
		respondDomainError(c, err)
		return
	}

	result, err := h.engine.RecordAdherence(c.Request.Context(), c.Param("id"), *req.Taken, req.MissedReason)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AdherenceHandler) List(c *gin.Context) {
	records, err := h.engine.ListAdherence(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (h *AdherenceHandler) Stats(c *gin.Context) {
	summary, err := h.engine.GetAggregateStats(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *AdherenceHandler) SubjectStats(c *gin.Context) {
	stats, err := h.engine.GetPerSubjectStats(c.Request.Context(), c.Param("subject"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if stats == nil {
		respondError(c, http.StatusNotFound, "no_data", "no adherence records for "+c.Param("subject"))
		return
	}
	c.JSON(http.StatusOK, stats)
}
