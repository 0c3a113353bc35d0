package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent so the
// full list runs on each start.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS naming_series (
		prefix  TEXT PRIMARY KEY,
		current INTEGER NOT NULL DEFAULT 0 CHECK(current >= 0)
	)`,

	`CREATE TABLE IF NOT EXISTS customers (
		name          TEXT PRIMARY KEY,
		customer_name TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS project_templates (
		name       TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		name                TEXT PRIMARY KEY,
		project_name        TEXT NOT NULL,
		customer            TEXT REFERENCES customers(name),
		status              TEXT NOT NULL DEFAULT 'Open'
		                    CHECK(status IN ('Open','Completed','Cancelled')),
		project_template    TEXT REFERENCES project_templates(name),
		repeat_frequency    TEXT NOT NULL DEFAULT '',
		auto_repeat_info    TEXT NOT NULL DEFAULT '',
		auto_repeat         TEXT NOT NULL DEFAULT '',
		expected_start_date TEXT,
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_customer ON projects(customer, status)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		name            TEXT PRIMARY KEY,
		subject         TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		project         TEXT REFERENCES projects(name) ON DELETE CASCADE,
		status          TEXT NOT NULL DEFAULT 'Open'
		                CHECK(status IN ('Open','Working','Pending Review','Overdue','Completed','Cancelled')),
		is_template     INTEGER NOT NULL DEFAULT 0,
		previous_task   TEXT REFERENCES tasks(name) ON DELETE SET NULL,
		visible_to_user INTEGER NOT NULL DEFAULT 0,
		completed_on    TEXT,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project, status)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_previous ON tasks(previous_task)`,

	`CREATE TABLE IF NOT EXISTS task_checklist_items (
		task       TEXT NOT NULL REFERENCES tasks(name) ON DELETE CASCADE,
		idx        INTEGER NOT NULL,
		check_list TEXT NOT NULL,
		comment    TEXT NOT NULL DEFAULT '',
		done       INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (task, idx)
	)`,

	`CREATE TABLE IF NOT EXISTS project_template_tasks (
		parent  TEXT NOT NULL REFERENCES project_templates(name) ON DELETE CASCADE,
		idx     INTEGER NOT NULL,
		task    TEXT NOT NULL REFERENCES tasks(name),
		subject TEXT NOT NULL,
		PRIMARY KEY (parent, idx)
	)`,

	`CREATE TABLE IF NOT EXISTS sales_invoices (
		name         TEXT PRIMARY KEY,
		customer     TEXT NOT NULL REFERENCES customers(name),
		project      TEXT REFERENCES projects(name),
		docstatus    INTEGER NOT NULL DEFAULT 0 CHECK(docstatus IN (0,1,2)),
		posting_date TEXT NOT NULL,
		due_date     TEXT NOT NULL,
		grand_total  REAL NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sales_invoices_project ON sales_invoices(project, docstatus)`,

	`CREATE TABLE IF NOT EXISTS sales_invoice_items (
		parent    TEXT NOT NULL REFERENCES sales_invoices(name) ON DELETE CASCADE,
		idx       INTEGER NOT NULL,
		item_code TEXT NOT NULL,
		qty       REAL NOT NULL DEFAULT 1,
		rate      REAL NOT NULL DEFAULT 0,
		amount    REAL NOT NULL DEFAULT 0,
		PRIMARY KEY (parent, idx)
	)`,

	`CREATE TABLE IF NOT EXISTS auto_repeats (
		name               TEXT PRIMARY KEY,
		reference_doctype  TEXT NOT NULL,
		reference_name     TEXT NOT NULL,
		frequency          TEXT NOT NULL,
		start_date         TEXT NOT NULL,
		next_schedule_date TEXT NOT NULL,
		status             TEXT NOT NULL DEFAULT 'Active'
		                   CHECK(status IN ('Active','Disabled')),
		docstatus          INTEGER NOT NULL DEFAULT 0 CHECK(docstatus IN (0,1,2)),
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_auto_repeats_reference ON auto_repeats(reference_doctype, reference_name)`,

	`CREATE TABLE IF NOT EXISTS ledger_entries (
		name         TEXT PRIMARY KEY,
		party_type   TEXT NOT NULL,
		party        TEXT NOT NULL,
		posting_date TEXT NOT NULL,
		debit        REAL NOT NULL DEFAULT 0 CHECK(debit >= 0),
		credit       REAL NOT NULL DEFAULT 0 CHECK(credit >= 0),
		voucher_type TEXT NOT NULL,
		voucher_no   TEXT NOT NULL,
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_ledger_entries_party ON ledger_entries(party_type, party)`,
}
