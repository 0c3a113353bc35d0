package service

import (
	"testing"

	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentService_RecordPayment(t *testing.T) {
	s := setupServices(t)

	p := &domain.Payment{Customer: "ACME", Amount: 2500, Reference: "NEFT-1"}
	require.NoError(t, s.payments.RecordPayment(s.ctx, p))
	assert.Equal(t, "PAY-2026-00001", p.Name)
	assert.Equal(t, domain.DateOnly(testNow), p.PostingDate)

	entries, err := s.docs.Store().Ledger.ListByParty(s.ctx, domain.PartyTypeCustomer, "ACME")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2500.0, entries[0].Credit)
	assert.Equal(t, domain.DoctypePayment, entries[0].VoucherType)
	assert.Equal(t, p.Name, entries[0].VoucherNo)

	stats, err := s.dashboards.GetCustomerDashboard(s.ctx, "ACME")
	require.NoError(t, err)
	assert.InDelta(t, -2500.0, stats.Balance, 0.001)
}

func TestPaymentService_RecordPayment_Errors(t *testing.T) {
	s := setupServices(t)

	err := s.payments.RecordPayment(s.ctx, &domain.Payment{Customer: "ACME", Amount: 0})
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = s.payments.RecordPayment(s.ctx, &domain.Payment{Customer: "Nobody", Amount: 10})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
