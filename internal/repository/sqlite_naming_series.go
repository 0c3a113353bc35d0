package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/naqd/internal/db"
)

// Naming series patterns. Parts are separated by dots; YYYY and MM expand
// to the date and a run of # becomes the zero-padded counter.
const (
	SeriesProject      = "PROJ-.####"
	SeriesTask         = "TASK-.YYYY.-.#####"
	SeriesSalesInvoice = "ACC-SINV-.YYYY.-.#####"
	SeriesAutoRepeat   = "AR-.YYYY.-.#####"
	SeriesPayment      = "PAY-.YYYY.-.#####"
)

// SQLiteNamingSeriesRepo allocates document names from counters kept in the
// naming_series table, one counter per expanded prefix.
type SQLiteNamingSeriesRepo struct {
	db db.DBTX
}

func NewSQLiteNamingSeriesRepo(conn db.DBTX) *SQLiteNamingSeriesRepo {
	return &SQLiteNamingSeriesRepo{db: conn}
}

// Next returns the next counter value for prefix. Allocation is atomic and
// safe under concurrent writes.
func (r *SQLiteNamingSeriesRepo) Next(ctx context.Context, prefix string) (int, error) {
	if _, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO naming_series (prefix, current) VALUES (?, 0)`, prefix); err != nil {
		return 0, fmt.Errorf("seeding naming series %s: %w", prefix, err)
	}

	var next int
	allocQuery := `UPDATE naming_series
		SET current = current + 1
		WHERE prefix = ?
		RETURNING current`
	if err := r.db.QueryRowContext(ctx, allocQuery, prefix).Scan(&next); err != nil {
		return 0, fmt.Errorf("allocating next value for series %s: %w", prefix, err)
	}
	return next, nil
}

// NewName expands pattern at the given time and appends the next counter.
func (r *SQLiteNamingSeriesRepo) NewName(ctx context.Context, pattern string, at time.Time) (string, error) {
	prefix, digits, err := expandSeries(pattern, at)
	if err != nil {
		return "", err
	}
	n, err := r.Next(ctx, prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%0*d", prefix, digits, n), nil
}

func expandSeries(pattern string, at time.Time) (prefix string, digits int, err error) {
	var b strings.Builder
	for _, part := range strings.Split(pattern, ".") {
		switch {
		case part == "YYYY":
			b.WriteString(at.Format("2006"))
		case part == "YY":
			b.WriteString(at.Format("06"))
		case part == "MM":
			b.WriteString(at.Format("01"))
		case part != "" && strings.Trim(part, "#") == "":
			if digits > 0 {
				return "", 0, fmt.Errorf("series %q has more than one counter", pattern)
			}
			digits = len(part)
		default:
			if digits > 0 {
				return "", 0, fmt.Errorf("series %q has text after its counter", pattern)
			}
			b.WriteString(part)
		}
	}
	if digits == 0 {
		return "", 0, fmt.Errorf("series %q has no counter", pattern)
	}
	return b.String(), digits, nil
}
