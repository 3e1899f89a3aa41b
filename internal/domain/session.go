package domain

import "context"

type patientIDKey struct{}

// WithPatientID binds the authenticated patient of the current session to ctx.
func WithPatientID(ctx context.Context, patientID string) context.Context {
	return context.WithValue(ctx, patientIDKey{}, patientID)
}

// PatientIDFromContext returns the session patient or ErrNoPatientContext.
func PatientIDFromContext(ctx context.Context) (string, error) {
	if id, ok := ctx.Value(patientIDKey{}).(string); ok && id != "" {
		return id, nil
	}
	return "", ErrNoPatientContext
}
