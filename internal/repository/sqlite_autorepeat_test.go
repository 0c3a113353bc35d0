package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoRepeatRepo_CreateGetExists(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteAutoRepeatRepo(database)
	ctx := context.Background()

	next := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	ar := testutil.NewTestAutoRepeat("PROJ-0001", domain.FrequencyQuarterly, next)
	require.NoError(t, repo.Create(ctx, ar))

	fetched, err := repo.Get(ctx, ar.Name)
	require.NoError(t, err)
	assert.Equal(t, domain.FrequencyQuarterly, fetched.Frequency)
	assert.Equal(t, next, fetched.NextScheduleDate)
	assert.Equal(t, domain.DocSubmitted, fetched.DocStatus)

	ok, err := repo.ExistsForReference(ctx, domain.DoctypeProject, "PROJ-0001")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsForReference(ctx, domain.DoctypeProject, "PROJ-0002")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAutoRepeatRepo_ListDue(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteAutoRepeatRepo(database)
	ctx := context.Background()
	now := time.Date(2026, 7, 15, 9, 30, 0, 0, time.UTC)

	due := testutil.NewTestAutoRepeat("PROJ-A", domain.FrequencyMonthly, now.AddDate(0, 0, -3))
	today := testutil.NewTestAutoRepeat("PROJ-B", domain.FrequencyWeekly, now)
	future := testutil.NewTestAutoRepeat("PROJ-C", domain.FrequencyWeekly, now.AddDate(0, 0, 1))
	disabled := testutil.NewTestAutoRepeat("PROJ-D", domain.FrequencyDaily, now.AddDate(0, 0, -1))
	disabled.Status = domain.AutoRepeatDisabled
	draft := testutil.NewTestAutoRepeat("PROJ-E", domain.FrequencyDaily, now.AddDate(0, 0, -1))
	draft.DocStatus = domain.DocDraft
	for _, ar := range []*domain.AutoRepeat{due, today, future, disabled, draft} {
		require.NoError(t, repo.Create(ctx, ar))
	}

	list, err := repo.ListDue(ctx, now)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, due.Name, list[0].Name)
	assert.Equal(t, today.Name, list[1].Name)

	require.NoError(t, repo.SetNextScheduleDate(ctx, due.Name, now.AddDate(0, 1, 0)))
	require.NoError(t, repo.SetStatus(ctx, today.Name, domain.AutoRepeatDisabled))

	list, err = repo.ListDue(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, list)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestLedgerRepo_Balance(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteLedgerRepo(database)
	ctx := context.Background()

	balance, err := repo.Balance(ctx, domain.PartyTypeCustomer, "ACME")
	require.NoError(t, err)
	assert.Zero(t, balance)

	require.NoError(t, repo.Create(ctx, testutil.NewTestLedgerEntry("ACME", 1250.75, 0, "SINV-1")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestLedgerEntry("ACME", 0, 250.25, "PAY-1")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestLedgerEntry("Globex", 99, 0, "SINV-2")))

	balance, err = repo.Balance(ctx, domain.PartyTypeCustomer, "ACME")
	require.NoError(t, err)
	assert.InDelta(t, 1000.50, balance, 0.001)

	entries, err := repo.ListByParty(ctx, domain.PartyTypeCustomer, "ACME")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.NotEmpty(t, entries[0].Name)
}
