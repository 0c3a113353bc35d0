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

// SQLiteTaskRepo implements TaskRepo. Checklist rows live in
// task_checklist_items and are loaded with their task.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

const taskColumns = `name, subject, description, project, status, is_template, previous_task,
	visible_to_user, completed_on, created_at, updated_at`

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.Name,
		t.Subject,
		t.Description,
		nullableString(t.Project),
		string(t.Status),
		boolToInt(t.IsTemplate),
		nullableString(t.PreviousTask),
		boolToInt(t.VisibleToUser),
		nullableTimeToString(t.CompletedOn, time.RFC3339),
		formatTimestamp(t.CreatedAt),
		formatTimestamp(t.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Doctype: domain.DoctypeTask, Name: t.Name}
		}
		return fmt.Errorf("inserting task: %w", err)
	}
	return r.insertChecklist(ctx, t.Name, t.Checklist)
}

func (r *SQLiteTaskRepo) Get(ctx context.Context, name string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE name = ?`, name)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound(domain.DoctypeTask, name)
	}
	if err != nil {
		return nil, err
	}
	if err := r.attachChecklists(ctx, []*domain.Task{t}); err != nil {
		return nil, err
	}
	return t, nil
}

// ListByProject returns the project's real tasks in creation order.
func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, project string, onlyVisible bool) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project = ? AND is_template = 0`
	if onlyVisible {
		query += ` AND visible_to_user = 1`
	}
	query += ` ORDER BY created_at, name`
	return r.queryTasks(ctx, query, project)
}

// GetMany loads the named tasks keyed by name. Unknown names are skipped.
func (r *SQLiteTaskRepo) GetMany(ctx context.Context, names []string) (map[string]*domain.Task, error) {
	out := make(map[string]*domain.Task, len(names))
	if len(names) == 0 {
		return out, nil
	}
	args := make([]any, len(names))
	for i, n := range names {
		args[i] = n
	}
	tasks, err := r.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks WHERE name IN (`+placeholders(len(names))+`)`, args...)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		out[t.Name] = t
	}
	return out, nil
}

func (r *SQLiteTaskRepo) queryTasks(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	// Close before loading children: a single connection cannot hold two cursors.
	rows.Close()

	if err := r.attachChecklists(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update saves every task field and replaces its checklist rows.
func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET subject = ?, description = ?, project = ?, status = ?, is_template = ?,
		previous_task = ?, visible_to_user = ?, completed_on = ?, updated_at = ?
		WHERE name = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Subject,
		t.Description,
		nullableString(t.Project),
		string(t.Status),
		boolToInt(t.IsTemplate),
		nullableString(t.PreviousTask),
		boolToInt(t.VisibleToUser),
		nullableTimeToString(t.CompletedOn, time.RFC3339),
		formatTimestamp(t.UpdatedAt),
		t.Name,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	if err := requireAffected(res, domain.DoctypeTask, t.Name); err != nil {
		return err
	}
	return r.ReplaceChecklist(ctx, t.Name, t.Checklist)
}

// SetPreviousTask writes the dependency link without firing document hooks.
func (r *SQLiteTaskRepo) SetPreviousTask(ctx context.Context, name, previous string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET previous_task = ?, updated_at = ? WHERE name = ?`,
		nullableString(previous), nowUTC(), name)
	if err != nil {
		return fmt.Errorf("setting previous task on %s: %w", name, err)
	}
	return requireAffected(res, domain.DoctypeTask, name)
}

// ShowSuccessors makes visible the hidden tasks of project that wait on
// previous, returning their names. An empty project matches tasks stored
// without one.
func (r *SQLiteTaskRepo) ShowSuccessors(ctx context.Context, project, previous string) ([]string, error) {
	return r.updateReturningNames(ctx,
		`UPDATE tasks SET visible_to_user = 1, updated_at = ?
		WHERE project IS ? AND previous_task = ? AND is_template = 0 AND visible_to_user = 0
		RETURNING name`,
		nowUTC(), nullableString(project), previous)
}

// ShowUnchained makes visible the project's hidden tasks that have no predecessor.
func (r *SQLiteTaskRepo) ShowUnchained(ctx context.Context, project string) ([]string, error) {
	return r.updateReturningNames(ctx,
		`UPDATE tasks SET visible_to_user = 1, updated_at = ?
		WHERE project = ? AND is_template = 0 AND previous_task IS NULL AND visible_to_user = 0
		RETURNING name`,
		nowUTC(), project)
}

func (r *SQLiteTaskRepo) updateReturningNames(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("updating task visibility: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning task name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task names: %w", err)
	}
	return names, nil
}

func (r *SQLiteTaskRepo) CountByProject(ctx context.Context, project string) (TaskCounts, error) {
	var c TaskCounts
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0)
		FROM tasks WHERE project = ?`,
		string(domain.TaskCompleted), project,
	).Scan(&c.Total, &c.Completed)
	if err != nil {
		return TaskCounts{}, fmt.Errorf("counting tasks for %s: %w", project, err)
	}
	return c, nil
}

func (r *SQLiteTaskRepo) ReplaceChecklist(ctx context.Context, task string, items []domain.ChecklistItem) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM task_checklist_items WHERE task = ?`, task); err != nil {
		return fmt.Errorf("clearing checklist of %s: %w", task, err)
	}
	return r.insertChecklist(ctx, task, items)
}

func (r *SQLiteTaskRepo) insertChecklist(ctx context.Context, task string, items []domain.ChecklistItem) error {
	for i, item := range items {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO task_checklist_items (task, idx, check_list, comment, done) VALUES (?, ?, ?, ?, ?)`,
			task, i+1, item.CheckList, item.Comment, boolToInt(item.Done))
		if err != nil {
			return fmt.Errorf("inserting checklist row %d of %s: %w", i+1, task, err)
		}
	}
	return nil
}

func (r *SQLiteTaskRepo) SetChecklistItemDone(ctx context.Context, task string, idx int, done bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE task_checklist_items SET done = ? WHERE task = ? AND idx = ?`,
		boolToInt(done), task, idx)
	if err != nil {
		return fmt.Errorf("updating checklist row %d of %s: %w", idx, task, err)
	}
	return requireAffected(res, "Checklist Item", fmt.Sprintf("%s#%d", task, idx))
}

func (r *SQLiteTaskRepo) attachChecklists(ctx context.Context, tasks []*domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	byName := make(map[string]*domain.Task, len(tasks))
	args := make([]any, len(tasks))
	for i, t := range tasks {
		byName[t.Name] = t
		args[i] = t.Name
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT task, idx, check_list, comment, done FROM task_checklist_items
		WHERE task IN (`+placeholders(len(tasks))+`) ORDER BY task, idx`, args...)
	if err != nil {
		return fmt.Errorf("loading checklists: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var task string
		var item domain.ChecklistItem
		var done int
		if err := rows.Scan(&task, &item.Idx, &item.CheckList, &item.Comment, &done); err != nil {
			return fmt.Errorf("scanning checklist row: %w", err)
		}
		item.Done = intToBool(done)
		if t, ok := byName[task]; ok {
			t.Checklist = append(t.Checklist, item)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating checklist rows: %w", err)
	}
	return nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var project, previous, completedOn sql.NullString
	var status, createdAt, updatedAt string
	var isTemplate, visible int

	err := row.Scan(
		&t.Name, &t.Subject, &t.Description, &project, &status, &isTemplate, &previous,
		&visible, &completedOn, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.Project = project.String
	t.PreviousTask = previous.String
	t.Status = domain.TaskStatus(status)
	t.IsTemplate = intToBool(isTemplate)
	t.VisibleToUser = intToBool(visible)
	t.CompletedOn = parseNullableTime(completedOn, time.RFC3339)

	if t.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &t, nil
}
