package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-medication-adherence/internal/domain"
)

const (
	PatientIDHeader = "X-Patient-ID"

	maxBodyBytes = 64 * 1024
)

// RequirePatient binds the patient id set by the auth gateway to the request
// context. Requests without it are rejected.
func RequirePatient() gin.HandlerFunc {
	return func(c *gin.Context) {
		patientID := strings.TrimSpace(c.GetHeader(PatientIDHeader))
		if patientID == "" {
			respondError(c, http.StatusUnauthorized, "no_patient_context", domain.ErrNoPatientContext.Error())
			return
		}

		c.Request = c.Request.WithContext(domain.WithPatientID(c.Request.Context(), patientID))
		c.Next()
	}
}

// decodeStrict decodes exactly one JSON object into v, rejecting unknown
// fields and trailing data, then runs its validate tags.
func decodeStrict(c *gin.Context, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is empty", domain.ErrValidation)
		}
		return fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}
	if dec.More() {
		return fmt.Errorf("%w: request body must contain a single JSON object", domain.ErrValidation)
	}

	return domain.ValidateRequest(v)
}
