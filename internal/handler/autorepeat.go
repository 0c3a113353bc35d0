package handler

import (
	"net/http"
)

func (h *Handler) ListAutoRepeats(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.svc.AutoRepeats.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, mapSlice(schedules, toAutoRepeat), nil)
}

// RunAutoRepeat generates the projects of every due schedule.
func (h *Handler) RunAutoRepeat(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.AutoRepeats.RunDue(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, mapSlice(result.Created, toProject), result.Messages)
}
