package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/naqd/internal/db"
	"github.com/alexanderramin/naqd/internal/domain"
)

const doctypeProjectTemplate = "Project Template"

// SQLiteTemplateRepo stores project templates and their ordered task links.
type SQLiteTemplateRepo struct {
	db db.DBTX
}

func NewSQLiteTemplateRepo(conn db.DBTX) *SQLiteTemplateRepo {
	return &SQLiteTemplateRepo{db: conn}
}

func (r *SQLiteTemplateRepo) Create(ctx context.Context, t *domain.ProjectTemplate) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO project_templates (name, created_at, updated_at) VALUES (?, ?, ?)`,
		t.Name, formatTimestamp(t.CreatedAt), formatTimestamp(t.UpdatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Doctype: doctypeProjectTemplate, Name: t.Name}
		}
		return fmt.Errorf("inserting project template: %w", err)
	}
	for i, link := range t.Tasks {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO project_template_tasks (parent, idx, task, subject) VALUES (?, ?, ?, ?)`,
			t.Name, i+1, link.Task, link.Subject)
		if err != nil {
			return fmt.Errorf("inserting template task %d of %s: %w", i+1, t.Name, err)
		}
	}
	return nil
}

func (r *SQLiteTemplateRepo) Get(ctx context.Context, name string) (*domain.ProjectTemplate, error) {
	var t domain.ProjectTemplate
	var createdAt, updatedAt string
	err := r.db.QueryRowContext(ctx,
		`SELECT name, created_at, updated_at FROM project_templates WHERE name = ?`, name,
	).Scan(&t.Name, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound(doctypeProjectTemplate, name)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning project template: %w", err)
	}
	if t.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	if t.Tasks, err = r.listLinks(ctx, name); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *SQLiteTemplateRepo) listLinks(ctx context.Context, parent string) ([]domain.ProjectTemplateTask, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT idx, task, subject FROM project_template_tasks WHERE parent = ? ORDER BY idx`, parent)
	if err != nil {
		return nil, fmt.Errorf("listing tasks of template %s: %w", parent, err)
	}
	defer rows.Close()

	var links []domain.ProjectTemplateTask
	for rows.Next() {
		var l domain.ProjectTemplateTask
		if err := rows.Scan(&l.Idx, &l.Task, &l.Subject); err != nil {
			return nil, fmt.Errorf("scanning template task: %w", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating template tasks: %w", err)
	}
	return links, nil
}

// List returns every template with its task links.
func (r *SQLiteTemplateRepo) List(ctx context.Context) ([]*domain.ProjectTemplate, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, created_at, updated_at FROM project_templates ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing project templates: %w", err)
	}

	var templates []*domain.ProjectTemplate
	for rows.Next() {
		var t domain.ProjectTemplate
		var createdAt, updatedAt string
		if err := rows.Scan(&t.Name, &createdAt, &updatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning project template: %w", err)
		}
		if t.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		if t.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		templates = append(templates, &t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating project templates: %w", err)
	}
	rows.Close()

	for _, t := range templates {
		if t.Tasks, err = r.listLinks(ctx, t.Name); err != nil {
			return nil, err
		}
	}
	return templates, nil
}

func (r *SQLiteTemplateRepo) Exists(ctx context.Context, name string) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM project_templates WHERE name = ?`, name).Scan(&n); err != nil {
		return false, fmt.Errorf("checking template %s: %w", name, err)
	}
	return n > 0, nil
}
