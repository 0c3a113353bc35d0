package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondErrorWithExtras(rec, http.StatusNotFound, "Project PROJ-1 not found", map[string]interface{}{"name": "PROJ-1"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, "Not Found", body["title"])
	assert.Equal(t, float64(404), body["status"])
	assert.Equal(t, "Project PROJ-1 not found", body["detail"])
	assert.Equal(t, "PROJ-1", body["name"])
	assert.Contains(t, body["type"], "rfc7231")
}

func TestRespondDomainError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	req := httptest.NewRequest(http.MethodGet, "/x", nil)

	tests := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"not found", domain.NewNotFound("Task", "TASK-1"), http.StatusNotFound, "Task TASK-1 not found"},
		{"conflict", &domain.ConflictError{Doctype: "Customer", Name: "ACME"}, http.StatusConflict, "Customer ACME already exists"},
		{
			"hook validation",
			fmt.Errorf("Project on_update hook create_sales_invoice_on_completion: %w", domain.NewValidation("Project must be linked to a Customer to generate a Sales Invoice.")),
			http.StatusUnprocessableEntity,
			"Project must be linked to a Customer to generate a Sales Invoice.",
		},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondDomainError(rec, req, logger, tt.err)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.detail, decodeProblem(t, rec)["detail"])
		})
	}
}

func TestRespondDomainError_HookTrace(t *testing.T) {
	rec := httptest.NewRecorder()
	err := fmt.Errorf("Task on_update hook on_task_update: %w", domain.NewValidation("bad"))
	RespondDomainError(rec, httptest.NewRequest(http.MethodGet, "/", nil), slog.Default(), err)

	body := decodeProblem(t, rec)
	assert.Equal(t, "Task on_update hook on_task_update: bad", body["trace"])
}

func TestRespondJSONAndHTML(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusCreated, map[string]string{"name": "ACME"})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"name":"ACME"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	RespondHTML(rec, http.StatusOK, "<div></div>")
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "<div></div>", rec.Body.String())
}

func TestParseJSON(t *testing.T) {
	var dest struct {
		Name string `json:"name"`
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ACME"}`))
	require.NoError(t, ParseJSON(rec, req, &dest))
	assert.Equal(t, "ACME", dest.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nme":"ACME"}`))
	assert.ErrorContains(t, ParseJSON(rec, req, &dest), "invalid JSON")
}
