package handler

import (
	"io"
	"net/http"

	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/httputil"
	tmpl "github.com/alexanderramin/naqd/internal/template"
	"github.com/go-chi/chi/v5"
)

const maxTemplateBytes = 1 << 20

type templateTaskResponse struct {
	Idx     int    `json:"idx"`
	Task    string `json:"task"`
	Subject string `json:"subject"`
}

type templateResponse struct {
	Name  string                 `json:"name"`
	Tasks []templateTaskResponse `json:"tasks"`
}

func toTemplate(t *domain.ProjectTemplate) templateResponse {
	out := templateResponse{Name: t.Name, Tasks: make([]templateTaskResponse, 0, len(t.Tasks))}
	for _, tt := range t.Tasks {
		out.Tasks = append(out.Tasks, templateTaskResponse(tt))
	}
	return out
}

// ImportTemplate accepts a YAML template document as the request body.
func (h *Handler) ImportTemplate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxTemplateBytes))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "reading template body: "+err.Error())
		return
	}
	schema, err := tmpl.ParseSchema(body)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, err := h.svc.Templates.ImportSchema(r.Context(), schema)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusCreated, toTemplate(t), nil)
}

func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.svc.Templates.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, mapSlice(templates, toTemplate), nil)
}

func (h *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	t, tasks, err := h.svc.Templates.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, struct {
		templateResponse
		TemplateTasks []taskResponse `json:"template_tasks"`
	}{toTemplate(t), mapSlice(tasks, toTask)}, nil)
}

// SyncProjectChecklists copies template checklists onto the project's tasks.
func (h *Handler) SyncProjectChecklists(w http.ResponseWriter, r *http.Request) {
	updated, err := h.svc.Templates.SyncChecklists(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if updated == nil {
		updated = []string{}
	}
	respond(w, http.StatusOK, map[string][]string{"updated": updated}, nil)
}
