package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/naqd/internal/db"
	"github.com/alexanderramin/naqd/internal/domain"
)

// SQLiteCustomerRepo implements CustomerRepo using a SQLite database.
type SQLiteCustomerRepo struct {
	db db.DBTX
}

func NewSQLiteCustomerRepo(conn db.DBTX) *SQLiteCustomerRepo {
	return &SQLiteCustomerRepo{db: conn}
}

func (r *SQLiteCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO customers (name, customer_name, created_at) VALUES (?, ?, ?)`,
		c.Name, c.CustomerName, formatTimestamp(c.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Doctype: domain.DoctypeCustomer, Name: c.Name}
		}
		return fmt.Errorf("inserting customer: %w", err)
	}
	return nil
}

func (r *SQLiteCustomerRepo) Get(ctx context.Context, name string) (*domain.Customer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT name, customer_name, created_at FROM customers WHERE name = ?`, name)
	c, err := scanCustomer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound(domain.DoctypeCustomer, name)
	}
	return c, err
}

func (r *SQLiteCustomerRepo) List(ctx context.Context) ([]*domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, customer_name, created_at FROM customers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customers: %w", err)
	}
	return customers, nil
}

func (r *SQLiteCustomerRepo) Exists(ctx context.Context, name string) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM customers WHERE name = ?`, name).Scan(&n); err != nil {
		return false, fmt.Errorf("checking customer %s: %w", name, err)
	}
	return n > 0, nil
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	var c domain.Customer
	var createdAt string
	if err := row.Scan(&c.Name, &c.CustomerName, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning customer: %w", err)
	}
	var err error
	if c.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &c, nil
}
