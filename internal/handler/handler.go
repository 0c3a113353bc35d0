// Package handler exposes the services over HTTP.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/alexanderramin/naqd/internal/httputil"
	"github.com/alexanderramin/naqd/internal/service"
)

// Services bundles what the handlers call.
type Services struct {
	Customers   service.CustomerService
	Projects    service.ProjectService
	Tasks       service.TaskService
	Templates   service.TemplateService
	Invoices    service.InvoiceService
	Payments    service.PaymentService
	AutoRepeats service.AutoRepeatService
	Dashboards  service.DashboardService
}

type Handler struct {
	svc    Services
	logger *slog.Logger
}

func New(svc Services, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// dataResponse wraps a document with the hook messages raised saving it.
type dataResponse struct {
	Data     any              `json:"data"`
	Messages service.Messages `json:"messages"`
}

func respond(w http.ResponseWriter, status int, data any, msgs service.Messages) {
	if msgs == nil {
		msgs = service.Messages{}
	}
	httputil.RespondJSON(w, status, dataResponse{Data: data, Messages: msgs})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	httputil.RespondDomainError(w, r, h.logger, err)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
