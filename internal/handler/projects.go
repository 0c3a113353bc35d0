package handler

import (
	"net/http"
	"time"

	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/httputil"
	"github.com/alexanderramin/naqd/internal/repository"
	"github.com/go-chi/chi/v5"
)

type createProjectRequest struct {
	ProjectName       string `json:"project_name"`
	Customer          string `json:"customer"`
	ProjectTemplate   string `json:"project_template"`
	RepeatFrequency   string `json:"custom_repeat_frequency"`
	ExpectedStartDate string `json:"expected_start_date"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	p := &domain.Project{
		ProjectName:     req.ProjectName,
		Customer:        req.Customer,
		ProjectTemplate: req.ProjectTemplate,
		RepeatFrequency: domain.RepeatFrequency(req.RepeatFrequency),
	}
	if req.ExpectedStartDate != "" {
		start, err := time.Parse(dateLayout, req.ExpectedStartDate)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "expected_start_date must be YYYY-MM-DD")
			return
		}
		p.ExpectedStartDate = &start
	}

	msgs, err := h.svc.Projects.Create(r.Context(), p)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusCreated, toProject(p), msgs)
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	projects, err := h.svc.Projects.List(r.Context(), repository.ProjectFilter{
		Customer: q.Get("customer"),
		Status:   domain.ProjectStatus(q.Get("status")),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, mapSlice(projects, toProject), nil)
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Projects.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, toProject(p), nil)
}

func (h *Handler) SetProjectStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	name := chi.URLParam(r, "name")
	msgs, err := h.svc.Projects.SetStatus(r.Context(), name, domain.ProjectStatus(req.Status))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	p, err := h.svc.Projects.Get(r.Context(), name)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, toProject(p), msgs)
}

func (h *Handler) ListProjectTasks(w http.ResponseWriter, r *http.Request) {
	onlyVisible := r.URL.Query().Get("visible") == "1"
	tasks, err := h.svc.Tasks.ListByProject(r.Context(), chi.URLParam(r, "name"), onlyVisible)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, mapSlice(tasks, toTask), nil)
}
