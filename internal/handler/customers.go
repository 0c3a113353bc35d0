package handler

import (
	"net/http"

	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/httputil"
	"github.com/go-chi/chi/v5"
)

type createCustomerRequest struct {
	Name         string `json:"name"`
	CustomerName string `json:"customer_name"`
}

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	c := &domain.Customer{Name: req.Name, CustomerName: req.CustomerName}
	if err := h.svc.Customers.Create(r.Context(), c); err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusCreated, toCustomer(c), nil)
}

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.svc.Customers.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, mapSlice(customers, toCustomer), nil)
}

// CustomerDashboardMethod serves the whitelisted method path used by the
// customer form: {"message": "<html>"}.
func (h *Handler) CustomerDashboardMethod(w http.ResponseWriter, r *http.Request) {
	customer := r.URL.Query().Get("customer")
	if customer == "" {
		httputil.RespondError(w, http.StatusBadRequest, "customer is required")
		return
	}
	html := h.svc.Dashboards.RenderCustomerDashboard(r.Context(), customer)
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": html})
}

// CustomerDashboard returns the dashboard fragment as text/html.
func (h *Handler) CustomerDashboard(w http.ResponseWriter, r *http.Request) {
	html := h.svc.Dashboards.RenderCustomerDashboard(r.Context(), chi.URLParam(r, "customer"))
	httputil.RespondHTML(w, http.StatusOK, html)
}
