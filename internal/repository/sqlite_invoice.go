package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/naqd/internal/db"
	"github.com/alexanderramin/naqd/internal/domain"
)

// SQLiteInvoiceRepo implements InvoiceRepo using a SQLite database.
type SQLiteInvoiceRepo struct {
	db db.DBTX
}

func NewSQLiteInvoiceRepo(conn db.DBTX) *SQLiteInvoiceRepo {
	return &SQLiteInvoiceRepo{db: conn}
}

const invoiceColumns = `name, customer, project, docstatus, posting_date, due_date, grand_total, created_at, updated_at`

func (r *SQLiteInvoiceRepo) Create(ctx context.Context, inv *domain.SalesInvoice) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sales_invoices (`+invoiceColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.Name,
		inv.Customer,
		nullableString(inv.Project),
		int(inv.DocStatus),
		inv.PostingDate.Format(dateLayout),
		inv.DueDate.Format(dateLayout),
		inv.GrandTotal,
		formatTimestamp(inv.CreatedAt),
		formatTimestamp(inv.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Doctype: domain.DoctypeSalesInvoice, Name: inv.Name}
		}
		return fmt.Errorf("inserting sales invoice: %w", err)
	}
	for i, item := range inv.Items {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO sales_invoice_items (parent, idx, item_code, qty, rate, amount) VALUES (?, ?, ?, ?, ?, ?)`,
			inv.Name, i+1, item.ItemCode, item.Qty, item.Rate, item.Amount)
		if err != nil {
			return fmt.Errorf("inserting item %d of %s: %w", i+1, inv.Name, err)
		}
	}
	return nil
}

func (r *SQLiteInvoiceRepo) Get(ctx context.Context, name string) (*domain.SalesInvoice, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+invoiceColumns+` FROM sales_invoices WHERE name = ?`, name)
	inv, err := scanInvoice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound(domain.DoctypeSalesInvoice, name)
	}
	if err != nil {
		return nil, err
	}
	if inv.Items, err = r.listItems(ctx, name); err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *SQLiteInvoiceRepo) listItems(ctx context.Context, parent string) ([]domain.SalesInvoiceItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT idx, item_code, qty, rate, amount FROM sales_invoice_items WHERE parent = ? ORDER BY idx`, parent)
	if err != nil {
		return nil, fmt.Errorf("listing items of %s: %w", parent, err)
	}
	defer rows.Close()

	var items []domain.SalesInvoiceItem
	for rows.Next() {
		var it domain.SalesInvoiceItem
		if err := rows.Scan(&it.Idx, &it.ItemCode, &it.Qty, &it.Rate, &it.Amount); err != nil {
			return nil, fmt.Errorf("scanning invoice item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice items: %w", err)
	}
	return items, nil
}

// List returns invoice headers matching f, newest first. Items are not loaded.
func (r *SQLiteInvoiceRepo) List(ctx context.Context, f InvoiceFilter) ([]*domain.SalesInvoice, error) {
	var clauses []string
	var args []any
	if f.Customer != "" {
		clauses = append(clauses, "customer = ?")
		args = append(args, f.Customer)
	}
	if f.Project != "" {
		clauses = append(clauses, "project = ?")
		args = append(args, f.Project)
	}
	if f.DocStatus != nil {
		clauses = append(clauses, "docstatus = ?")
		args = append(args, int(*f.DocStatus))
	}
	query := `SELECT ` + invoiceColumns + ` FROM sales_invoices`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC, name DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sales invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*domain.SalesInvoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sales invoices: %w", err)
	}
	return invoices, nil
}

func (r *SQLiteInvoiceRepo) ExistsForProject(ctx context.Context, project string, status domain.DocStatus) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sales_invoices WHERE project = ? AND docstatus = ?`,
		project, int(status)).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking invoices of %s: %w", project, err)
	}
	return n > 0, nil
}

// BilledProjects returns which of projects are referenced by a submitted invoice.
func (r *SQLiteInvoiceRepo) BilledProjects(ctx context.Context, projects []string) (map[string]bool, error) {
	billed := make(map[string]bool)
	if len(projects) == 0 {
		return billed, nil
	}
	args := make([]any, 0, len(projects)+1)
	args = append(args, int(domain.DocSubmitted))
	for _, p := range projects {
		args = append(args, p)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT project FROM sales_invoices
		WHERE docstatus = ? AND project IN (`+placeholders(len(projects))+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("listing billed projects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning billed project: %w", err)
		}
		billed[p] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating billed projects: %w", err)
	}
	return billed, nil
}

// UpdateItems replaces the lines of a draft invoice and its grand total.
func (r *SQLiteInvoiceRepo) UpdateItems(ctx context.Context, inv *domain.SalesInvoice) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sales_invoices SET grand_total = ?, updated_at = ? WHERE name = ? AND docstatus = ?`,
		inv.GrandTotal, formatTimestamp(inv.UpdatedAt), inv.Name, int(domain.DocDraft))
	if err != nil {
		return fmt.Errorf("updating sales invoice %s: %w", inv.Name, err)
	}
	if err := requireAffected(res, domain.DoctypeSalesInvoice, inv.Name); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sales_invoice_items WHERE parent = ?`, inv.Name); err != nil {
		return fmt.Errorf("clearing items of %s: %w", inv.Name, err)
	}
	for i, item := range inv.Items {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO sales_invoice_items (parent, idx, item_code, qty, rate, amount) VALUES (?, ?, ?, ?, ?, ?)`,
			inv.Name, i+1, item.ItemCode, item.Qty, item.Rate, item.Amount)
		if err != nil {
			return fmt.Errorf("inserting item %d of %s: %w", i+1, inv.Name, err)
		}
	}
	return nil
}

func (r *SQLiteInvoiceRepo) SetDocStatus(ctx context.Context, name string, status domain.DocStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sales_invoices SET docstatus = ?, updated_at = ? WHERE name = ?`,
		int(status), nowUTC(), name)
	if err != nil {
		return fmt.Errorf("setting docstatus of %s: %w", name, err)
	}
	return requireAffected(res, domain.DoctypeSalesInvoice, name)
}

func scanInvoice(row rowScanner) (*domain.SalesInvoice, error) {
	var inv domain.SalesInvoice
	var project sql.NullString
	var docstatus int
	var postingDate, dueDate, createdAt, updatedAt string

	err := row.Scan(&inv.Name, &inv.Customer, &project, &docstatus, &postingDate, &dueDate,
		&inv.GrandTotal, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning sales invoice: %w", err)
	}
	inv.Project = project.String
	inv.DocStatus = domain.DocStatus(docstatus)

	if inv.PostingDate, err = time.Parse(dateLayout, postingDate); err != nil {
		return nil, fmt.Errorf("parsing posting_date: %w", err)
	}
	if inv.DueDate, err = time.Parse(dateLayout, dueDate); err != nil {
		return nil, fmt.Errorf("parsing due_date: %w", err)
	}
	if inv.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if inv.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &inv, nil
}
