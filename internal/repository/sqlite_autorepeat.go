package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/naqd/internal/db"
	"github.com/alexanderramin/naqd/internal/domain"
)

const doctypeAutoRepeat = "Auto Repeat"

// SQLiteAutoRepeatRepo implements AutoRepeatRepo using a SQLite database.
type SQLiteAutoRepeatRepo struct {
	db db.DBTX
}

func NewSQLiteAutoRepeatRepo(conn db.DBTX) *SQLiteAutoRepeatRepo {
	return &SQLiteAutoRepeatRepo{db: conn}
}

const autoRepeatColumns = `name, reference_doctype, reference_name, frequency, start_date,
	next_schedule_date, status, docstatus, created_at, updated_at`

func (r *SQLiteAutoRepeatRepo) Create(ctx context.Context, a *domain.AutoRepeat) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO auto_repeats (`+autoRepeatColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Name,
		a.ReferenceDoctype,
		a.ReferenceName,
		string(a.Frequency),
		a.StartDate.Format(dateLayout),
		a.NextScheduleDate.Format(dateLayout),
		string(a.Status),
		int(a.DocStatus),
		formatTimestamp(a.CreatedAt),
		formatTimestamp(a.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Doctype: doctypeAutoRepeat, Name: a.Name}
		}
		return fmt.Errorf("inserting auto repeat: %w", err)
	}
	return nil
}

func (r *SQLiteAutoRepeatRepo) Get(ctx context.Context, name string) (*domain.AutoRepeat, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+autoRepeatColumns+` FROM auto_repeats WHERE name = ?`, name)
	a, err := scanAutoRepeat(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound(doctypeAutoRepeat, name)
	}
	return a, err
}

func (r *SQLiteAutoRepeatRepo) List(ctx context.Context) ([]*domain.AutoRepeat, error) {
	return r.query(ctx, `SELECT `+autoRepeatColumns+` FROM auto_repeats ORDER BY name`)
}

// ListDue returns active submitted schedules whose next date is on or before now.
func (r *SQLiteAutoRepeatRepo) ListDue(ctx context.Context, now time.Time) ([]*domain.AutoRepeat, error) {
	return r.query(ctx,
		`SELECT `+autoRepeatColumns+` FROM auto_repeats
		WHERE status = ? AND docstatus = ? AND next_schedule_date <= ?
		ORDER BY next_schedule_date, name`,
		string(domain.AutoRepeatActive), int(domain.DocSubmitted), now.Format(dateLayout))
}

func (r *SQLiteAutoRepeatRepo) query(ctx context.Context, query string, args ...any) ([]*domain.AutoRepeat, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing auto repeats: %w", err)
	}
	defer rows.Close()

	var out []*domain.AutoRepeat
	for rows.Next() {
		a, err := scanAutoRepeat(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating auto repeats: %w", err)
	}
	return out, nil
}

func (r *SQLiteAutoRepeatRepo) ExistsForReference(ctx context.Context, doctype, name string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM auto_repeats WHERE reference_doctype = ? AND reference_name = ?`,
		doctype, name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking auto repeat for %s %s: %w", doctype, name, err)
	}
	return n > 0, nil
}

func (r *SQLiteAutoRepeatRepo) SetNextScheduleDate(ctx context.Context, name string, next time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE auto_repeats SET next_schedule_date = ?, updated_at = ? WHERE name = ?`,
		next.Format(dateLayout), nowUTC(), name)
	if err != nil {
		return fmt.Errorf("advancing auto repeat %s: %w", name, err)
	}
	return requireAffected(res, doctypeAutoRepeat, name)
}

func (r *SQLiteAutoRepeatRepo) SetStatus(ctx context.Context, name string, status domain.AutoRepeatStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE auto_repeats SET status = ?, updated_at = ? WHERE name = ?`,
		string(status), nowUTC(), name)
	if err != nil {
		return fmt.Errorf("setting status of auto repeat %s: %w", name, err)
	}
	return requireAffected(res, doctypeAutoRepeat, name)
}

func scanAutoRepeat(row rowScanner) (*domain.AutoRepeat, error) {
	var a domain.AutoRepeat
	var frequency, startDate, nextDate, status, createdAt, updatedAt string
	var docstatus int

	err := row.Scan(&a.Name, &a.ReferenceDoctype, &a.ReferenceName, &frequency, &startDate,
		&nextDate, &status, &docstatus, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning auto repeat: %w", err)
	}
	a.Frequency = domain.RepeatFrequency(frequency)
	a.Status = domain.AutoRepeatStatus(status)
	a.DocStatus = domain.DocStatus(docstatus)

	if a.StartDate, err = time.Parse(dateLayout, startDate); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if a.NextScheduleDate, err = time.Parse(dateLayout, nextDate); err != nil {
		return nil, fmt.Errorf("parsing next_schedule_date: %w", err)
	}
	if a.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if a.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &a, nil
}
