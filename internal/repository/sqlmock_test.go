package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamingSeries_AllocationErrorIsWrapped(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec("INSERT OR IGNORE INTO naming_series").
		WithArgs("PROJ-").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("UPDATE naming_series").
		WithArgs("PROJ-").
		WillReturnError(errors.New("database is locked"))

	_, err = NewSQLiteNamingSeriesRepo(conn).Next(context.Background(), "PROJ-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "allocating next value for series PROJ-")
	assert.Contains(t, err.Error(), "database is locked")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepo_BalanceQueryError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(debit - credit\\), 0\\) FROM ledger_entries").
		WithArgs(domain.PartyTypeCustomer, "ACME").
		WillReturnError(errors.New("disk I/O error"))

	_, err = NewSQLiteLedgerRepo(conn).Balance(context.Background(), domain.PartyTypeCustomer, "ACME")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading balance of ACME")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepo_CountByStatusScansRows(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("SELECT status, COUNT\\(\\*\\) FROM projects").
		WithArgs("ACME").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("Open", 4).
			AddRow("Cancelled", 1))

	counts, err := NewSQLiteProjectRepo(conn).CountByStatus(context.Background(), "ACME")
	require.NoError(t, err)
	assert.Equal(t, 4, counts[domain.ProjectOpen])
	assert.Equal(t, 0, counts[domain.ProjectCompleted])
	assert.Equal(t, 1, counts[domain.ProjectCancelled])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepo_UpdateMissingRowIsNotFound(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec("UPDATE tasks SET subject").
		WillReturnResult(sqlmock.NewResult(0, 0))

	task := &domain.Task{Name: "TASK-2026-00009", Subject: "Ghost", Status: domain.TaskOpen}
	err = NewSQLiteTaskRepo(conn).Update(context.Background(), task)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
