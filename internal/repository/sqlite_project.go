package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/naqd/internal/db"
	"github.com/alexanderramin/naqd/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `name, project_name, customer, status, project_template, repeat_frequency,
	auto_repeat_info, auto_repeat, expected_start_date, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.ProjectName,
		nullableString(p.Customer),
		string(p.Status),
		nullableString(p.ProjectTemplate),
		string(p.RepeatFrequency),
		p.AutoRepeatInfo,
		p.AutoRepeat,
		nullableTimeToString(p.ExpectedStartDate, dateLayout),
		formatTimestamp(p.CreatedAt),
		formatTimestamp(p.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Doctype: domain.DoctypeProject, Name: p.Name}
		}
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) Get(ctx context.Context, name string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE name = ?`, name)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound(domain.DoctypeProject, name)
	}
	return p, err
}

func projectWhere(f ProjectFilter) (string, []any) {
	var clauses []string
	var args []any
	if f.Customer != "" {
		clauses = append(clauses, "customer = ?")
		args = append(args, f.Customer)
	}
	if f.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.ExcludeStatus != "" {
		clauses = append(clauses, "status != ?")
		args = append(args, string(f.ExcludeStatus))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *SQLiteProjectRepo) List(ctx context.Context, f ProjectFilter) ([]*domain.Project, error) {
	where, args := projectWhere(f)
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects`+where+` ORDER BY created_at, name`, args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) ListNames(ctx context.Context, f ProjectFilter) ([]string, error) {
	where, args := projectWhere(f)
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM projects`+where+` ORDER BY name`, args...)
	if err != nil {
		return nil, fmt.Errorf("listing project names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning project name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project names: %w", err)
	}
	return names, nil
}

// CountByStatus tallies the customer's projects per status. Every known
// status is present in the result, zero when unused.
func (r *SQLiteProjectRepo) CountByStatus(ctx context.Context, customer string) (map[domain.ProjectStatus]int, error) {
	counts := make(map[domain.ProjectStatus]int, len(domain.ProjectStatuses))
	for _, s := range domain.ProjectStatuses {
		counts[s] = 0
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM projects WHERE customer = ? GROUP BY status`, customer)
	if err != nil {
		return nil, fmt.Errorf("counting projects for %s: %w", customer, err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scanning project count: %w", err)
		}
		counts[domain.ProjectStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project counts: %w", err)
	}
	return counts, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET project_name = ?, customer = ?, status = ?, project_template = ?,
		repeat_frequency = ?, auto_repeat_info = ?, auto_repeat = ?, expected_start_date = ?, updated_at = ?
		WHERE name = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.ProjectName,
		nullableString(p.Customer),
		string(p.Status),
		nullableString(p.ProjectTemplate),
		string(p.RepeatFrequency),
		p.AutoRepeatInfo,
		p.AutoRepeat,
		nullableTimeToString(p.ExpectedStartDate, dateLayout),
		formatTimestamp(p.UpdatedAt),
		p.Name,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return requireAffected(res, domain.DoctypeProject, p.Name)
}

// SetAutoRepeatInfo writes the recurrence label without touching other fields.
func (r *SQLiteProjectRepo) SetAutoRepeatInfo(ctx context.Context, name, info string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET auto_repeat_info = ?, updated_at = ? WHERE name = ?`, info, nowUTC(), name)
	if err != nil {
		return fmt.Errorf("setting auto repeat info on %s: %w", name, err)
	}
	return requireAffected(res, domain.DoctypeProject, name)
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var customer, template, startDate sql.NullString
	var status, frequency, createdAt, updatedAt string

	err := row.Scan(
		&p.Name, &p.ProjectName, &customer, &status, &template, &frequency,
		&p.AutoRepeatInfo, &p.AutoRepeat, &startDate, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.Customer = customer.String
	p.ProjectTemplate = template.String
	p.Status = domain.ProjectStatus(status)
	p.RepeatFrequency = domain.RepeatFrequency(frequency)
	p.ExpectedStartDate = parseNullableTime(startDate, dateLayout)

	if p.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}

func requireAffected(res sql.Result, doctype, name string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return domain.NewNotFound(doctype, name)
	}
	return nil
}
