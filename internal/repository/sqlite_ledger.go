package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/naqd/internal/db"
	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/google/uuid"
)

// SQLiteLedgerRepo implements LedgerRepo. Entries are append-only.
type SQLiteLedgerRepo struct {
	db db.DBTX
}

func NewSQLiteLedgerRepo(conn db.DBTX) *SQLiteLedgerRepo {
	return &SQLiteLedgerRepo{db: conn}
}

// Create inserts e, assigning a UUID name when none is set.
func (r *SQLiteLedgerRepo) Create(ctx context.Context, e *domain.LedgerEntry) error {
	if e.Name == "" {
		e.Name = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ledger_entries (name, party_type, party, posting_date, debit, credit, voucher_type, voucher_no, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Name, e.PartyType, e.Party, e.PostingDate.Format(dateLayout),
		e.Debit, e.Credit, e.VoucherType, e.VoucherNo, formatTimestamp(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting ledger entry: %w", err)
	}
	return nil
}

func (r *SQLiteLedgerRepo) ListByParty(ctx context.Context, partyType, party string) ([]*domain.LedgerEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, party_type, party, posting_date, debit, credit, voucher_type, voucher_no, created_at
		FROM ledger_entries WHERE party_type = ? AND party = ?
		ORDER BY posting_date, created_at`, partyType, party)
	if err != nil {
		return nil, fmt.Errorf("listing ledger entries for %s: %w", party, err)
	}
	defer rows.Close()

	var entries []*domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		var postingDate, createdAt string
		if err := rows.Scan(&e.Name, &e.PartyType, &e.Party, &postingDate, &e.Debit, &e.Credit,
			&e.VoucherType, &e.VoucherNo, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}
		if e.PostingDate, err = time.Parse(dateLayout, postingDate); err != nil {
			return nil, fmt.Errorf("parsing posting_date: %w", err)
		}
		if e.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger entries: %w", err)
	}
	return entries, nil
}

// Balance is the sum of debit minus credit for the party, zero without entries.
func (r *SQLiteLedgerRepo) Balance(ctx context.Context, partyType, party string) (float64, error) {
	var balance float64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(debit - credit), 0) FROM ledger_entries WHERE party_type = ? AND party = ?`,
		partyType, party).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("reading balance of %s: %w", party, err)
	}
	return balance, nil
}
