package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/alexanderramin/naqd/internal/db"
)

// FailOnNthExecUoW injects Err on the FailOn-th write of a unit of work so
// tests can check that a document save and its hooks roll back together.
// Writes are counted from 1; reads are never counted. When Match is set
// only statements containing it are counted, e.g. "INSERT INTO sales_invoices".
// Statements records every write attempted, the failing one included.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Match  string
	Err    error

	mu         sync.Mutex
	Statements []string
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(ctx, &failingTx{DBTX: tx, uow: u}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Writes returns the statements recorded so far.
func (u *FailOnNthExecUoW) Writes() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.Statements...)
}

type failingTx struct {
	db.DBTX
	uow   *FailOnNthExecUoW
	count int
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	u := f.uow
	u.mu.Lock()
	u.Statements = append(u.Statements, strings.Join(strings.Fields(query), " "))
	counted := u.Match == "" || strings.Contains(query, u.Match)
	if counted {
		f.count++
	}
	fail := counted && f.count == u.FailOn
	u.mu.Unlock()

	if fail {
		return nil, u.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
