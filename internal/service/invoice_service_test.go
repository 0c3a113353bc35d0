package service

import (
	"testing"

	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// draftInvoice completes a fresh project and returns its draft invoice.
func draftInvoice(t *testing.T, s *services) *domain.SalesInvoice {
	t.Helper()
	p := &domain.Project{ProjectName: "Retainer", Customer: "ACME"}
	s.createProject(p)
	_, err := s.projects.SetStatus(s.ctx, p.Name, domain.ProjectCompleted)
	require.NoError(t, err)

	invoices, err := s.invoices.List(s.ctx, repository.InvoiceFilter{Project: p.Name})
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	return invoices[0]
}

func TestInvoiceService_PriceSubmitCancel(t *testing.T) {
	s := setupServices(t)
	draft := draftInvoice(t, s)
	store := s.docs.Store()

	priced, err := s.invoices.UpdateItems(s.ctx, draft.Name, []domain.SalesInvoiceItem{
		{ItemCode: "audit fee", Qty: 1, Rate: 12000},
		{ItemCode: "travel", Qty: 2, Rate: 750.5},
	})
	require.NoError(t, err)
	assert.InDelta(t, 13501.0, priced.GrandTotal, 0.001)

	submitted, err := s.invoices.Submit(s.ctx, draft.Name)
	require.NoError(t, err)
	assert.Equal(t, domain.DocSubmitted, submitted.DocStatus)

	balance, err := store.Ledger.Balance(s.ctx, domain.PartyTypeCustomer, "ACME")
	require.NoError(t, err)
	assert.InDelta(t, 13501.0, balance, 0.001)

	_, err = s.invoices.Submit(s.ctx, draft.Name)
	assert.ErrorIs(t, err, domain.ErrValidation, "already submitted")

	_, err = s.invoices.UpdateItems(s.ctx, draft.Name, []domain.SalesInvoiceItem{{ItemCode: "x", Qty: 1}})
	assert.ErrorIs(t, err, domain.ErrValidation, "submitted invoices are frozen")

	cancelled, err := s.invoices.Cancel(s.ctx, draft.Name)
	require.NoError(t, err)
	assert.Equal(t, domain.DocCancelled, cancelled.DocStatus)

	balance, err = store.Ledger.Balance(s.ctx, domain.PartyTypeCustomer, "ACME")
	require.NoError(t, err)
	assert.InDelta(t, 0.0, balance, 0.001)

	entries, err := store.Ledger.ListByParty(s.ctx, domain.PartyTypeCustomer, "ACME")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestInvoiceService_SubmitZeroTotalPostsNothing(t *testing.T) {
	s := setupServices(t)
	draft := draftInvoice(t, s)

	_, err := s.invoices.Submit(s.ctx, draft.Name)
	require.NoError(t, err)

	entries, err := s.docs.Store().Ledger.ListByParty(s.ctx, domain.PartyTypeCustomer, "ACME")
	require.NoError(t, err)
	assert.Empty(t, entries)

	stats, err := s.dashboards.GetCustomerDashboard(s.ctx, "ACME")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Unbilled, "a submitted invoice bills the project")
}

func TestInvoiceService_CancelDraftRejected(t *testing.T) {
	s := setupServices(t)
	draft := draftInvoice(t, s)

	_, err := s.invoices.Cancel(s.ctx, draft.Name)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestInvoiceService_UpdateItems_Invalid(t *testing.T) {
	s := setupServices(t)
	draft := draftInvoice(t, s)

	_, err := s.invoices.UpdateItems(s.ctx, draft.Name, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = s.invoices.UpdateItems(s.ctx, draft.Name, []domain.SalesInvoiceItem{{ItemCode: "fee", Qty: 1, Rate: -5}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	fetched, err := s.invoices.Get(s.ctx, draft.Name)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, "sample item", fetched.Items[0].ItemCode)
}

func TestInvoiceService_NotFound(t *testing.T) {
	s := setupServices(t)
	_, err := s.invoices.Submit(s.ctx, "ACC-SINV-2026-99999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
