package handler

import (
	"net/http"
	"strconv"

	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/httputil"
	"github.com/alexanderramin/naqd/internal/service"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) SetTaskStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	name := chi.URLParam(r, "name")
	msgs, err := h.svc.Tasks.SetStatus(r.Context(), name, domain.TaskStatus(req.Status))
	h.respondTask(w, r, name, msgs, err)
}

func (h *Handler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	msgs, err := h.svc.Tasks.Complete(r.Context(), name)
	h.respondTask(w, r, name, msgs, err)
}

func (h *Handler) respondTask(w http.ResponseWriter, r *http.Request, name string, msgs service.Messages, err error) {
	if err != nil {
		h.fail(w, r, err)
		return
	}
	t, err := h.svc.Tasks.Get(r.Context(), name)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, toTask(t), msgs)
}

type checklistItemRequest struct {
	Done bool `json:"done"`
}

func (h *Handler) SetChecklistItem(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(chi.URLParam(r, "idx"))
	if err != nil || idx < 1 {
		httputil.RespondError(w, http.StatusBadRequest, "checklist index must be a positive integer")
		return
	}
	var req checklistItemRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	name := chi.URLParam(r, "name")
	err = h.svc.Tasks.UpdateChecklistItem(r.Context(), name, idx, req.Done)
	h.respondTask(w, r, name, nil, err)
}

type createTaskRequest struct {
	Subject      string `json:"subject"`
	Description  string `json:"description"`
	Project      string `json:"project"`
	PreviousTask string `json:"custom_previous_task"`
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	t := &domain.Task{
		Subject:      req.Subject,
		Description:  req.Description,
		Project:      req.Project,
		PreviousTask: req.PreviousTask,
	}
	msgs, err := h.svc.Tasks.Create(r.Context(), t)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusCreated, toTask(t), msgs)
}
