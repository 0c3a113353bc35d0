package handler

import (
	"net/http"
	"time"

	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/httputil"
)

type paymentRequest struct {
	Customer    string  `json:"customer"`
	Amount      float64 `json:"amount"`
	Reference   string  `json:"reference"`
	PostingDate string  `json:"posting_date"`
}

type paymentResponse struct {
	Name        string  `json:"name"`
	Customer    string  `json:"customer"`
	Amount      float64 `json:"amount"`
	Reference   string  `json:"reference,omitempty"`
	PostingDate string  `json:"posting_date"`
}

func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	p := &domain.Payment{Customer: req.Customer, Amount: req.Amount, Reference: req.Reference}
	if req.PostingDate != "" {
		date, err := time.Parse(dateLayout, req.PostingDate)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "posting_date must be YYYY-MM-DD")
			return
		}
		p.PostingDate = date
	}
	if err := h.svc.Payments.RecordPayment(r.Context(), p); err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusCreated, paymentResponse{
		Name:        p.Name,
		Customer:    p.Customer,
		Amount:      p.Amount,
		Reference:   p.Reference,
		PostingDate: p.PostingDate.Format(dateLayout),
	}, nil)
}
