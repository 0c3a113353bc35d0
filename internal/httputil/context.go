package httputil

import (
	"context"
	"net/http"
)

type contextKey string

const subjectKey contextKey = "subject"

// WithSubject stores the authenticated token subject on the request.
func WithSubject(r *http.Request, subject string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), subjectKey, subject))
}

// GetSubject returns the authenticated subject, or "" when auth is off.
func GetSubject(r *http.Request) string {
	subject, _ := r.Context().Value(subjectKey).(string)
	return subject
}
