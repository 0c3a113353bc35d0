package handler

import (
	"net/http"
	"strconv"

	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/httputil"
	"github.com/alexanderramin/naqd/internal/repository"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repository.InvoiceFilter{Customer: q.Get("customer"), Project: q.Get("project")}
	if raw := q.Get("docstatus"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < int(domain.DocDraft) || n > int(domain.DocCancelled) {
			httputil.RespondError(w, http.StatusBadRequest, "docstatus must be 0, 1 or 2")
			return
		}
		status := domain.DocStatus(n)
		f.DocStatus = &status
	}
	invoices, err := h.svc.Invoices.List(r.Context(), f)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, mapSlice(invoices, toInvoice), nil)
}

func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.svc.Invoices.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, toInvoice(inv), nil)
}

type invoiceItemRequest struct {
	ItemCode string  `json:"item_code"`
	Qty      float64 `json:"qty"`
	Rate     float64 `json:"rate"`
}

type updateItemsRequest struct {
	Items []invoiceItemRequest `json:"items"`
}

func (h *Handler) UpdateInvoiceItems(w http.ResponseWriter, r *http.Request) {
	var req updateItemsRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	items := make([]domain.SalesInvoiceItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.SalesInvoiceItem{ItemCode: it.ItemCode, Qty: it.Qty, Rate: it.Rate})
	}
	inv, err := h.svc.Invoices.UpdateItems(r.Context(), chi.URLParam(r, "name"), items)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, toInvoice(inv), nil)
}

func (h *Handler) SubmitInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.svc.Invoices.Submit(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, toInvoice(inv), nil)
}

func (h *Handler) CancelInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.svc.Invoices.Cancel(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, toInvoice(inv), nil)
}
