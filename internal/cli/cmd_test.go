package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/naqd/internal/auth"
	"github.com/alexanderramin/naqd/internal/automation"
	"github.com/alexanderramin/naqd/internal/domain"
	"github.com/alexanderramin/naqd/internal/service"
	"github.com/alexanderramin/naqd/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

const auditYAML = `name: Audit
tasks:
  - subject: Kickoff
    checklist:
      - item: Agenda
  - subject: Fieldwork
    previous: Kickoff
  - subject: Report
    previous: Fieldwork
`

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	auto := automation.New(automation.Options{})
	docs := service.NewDocuments(database, testutil.NewTestUoW(database), service.NewRegistry(auto),
		service.WithClock(func() time.Time { return testNow }),
	)
	return &App{
		Customers:      service.NewCustomerService(docs),
		Projects:       service.NewProjectService(docs),
		Tasks:          service.NewTaskService(docs),
		Templates:      service.NewTemplateService(docs, auto),
		Invoices:       service.NewInvoiceService(docs),
		Payments:       service.NewPaymentService(docs),
		AutoRepeats:    service.NewAutoRepeatService(docs),
		Dashboards:     service.NewDashboardService(docs, "₹"),
		CurrencySymbol: "₹",
	}
}

// executeCmd runs a cobra command and captures stdout/stderr with styling
// stripped.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return ansiPattern.ReplaceAllString(buf.String(), ""), err
}

// seedAudit creates customer ACME, imports the Audit template from disk
// and creates PROJ-0001 from it.
func seedAudit(t *testing.T, app *App) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(auditYAML), 0o644))

	_, err := executeCmd(t, app, "customer", "add", "--name", "ACME", "--customer-name", "Acme Ltd")
	require.NoError(t, err)
	out, err := executeCmd(t, app, "template", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported template Audit (3 tasks)")
	out, err = executeCmd(t, app, "project", "add", "--name", "FY26 audit", "--customer", "ACME", "--template", "Audit")
	require.NoError(t, err)
	assert.Contains(t, out, "Created project FY26 audit [PROJ-0001]")
}

func taskNamed(t *testing.T, app *App, subject string) string {
	t.Helper()
	tasks, err := app.Tasks.ListByProject(context.Background(), "PROJ-0001", false)
	require.NoError(t, err)
	for _, task := range tasks {
		if task.Subject == subject {
			return task.Name
		}
	}
	t.Fatalf("no task %q", subject)
	return ""
}

func TestCLI_ProjectFlow(t *testing.T) {
	app := testApp(t)
	seedAudit(t, app)

	out, err := executeCmd(t, app, "task", "list", "PROJ-0001", "--visible")
	require.NoError(t, err)
	assert.Contains(t, out, "Kickoff")
	assert.NotContains(t, out, "Fieldwork")

	for _, subject := range []string{"Kickoff", "Fieldwork"} {
		_, err = executeCmd(t, app, "task", "complete", taskNamed(t, app, subject))
		require.NoError(t, err)
	}
	out, err = executeCmd(t, app, "task", "complete", taskNamed(t, app, "Report"))
	require.NoError(t, err)
	assert.Contains(t, out, "Draft Sales Invoice ACC-SINV-2026-00001 created.")

	out, err = executeCmd(t, app, "project", "show", "PROJ-0001")
	require.NoError(t, err)
	assert.Contains(t, out, "✔ Completed")
	assert.Contains(t, out, "3/3")

	out, err = executeCmd(t, app, "invoice", "set-items", "ACC-SINV-2026-00001", "--item", "audit fee:1:2500")
	require.NoError(t, err)
	assert.Contains(t, out, "₹2,500.00")

	out, err = executeCmd(t, app, "invoice", "submit", "ACC-SINV-2026-00001")
	require.NoError(t, err)
	assert.Contains(t, out, "Submitted ACC-SINV-2026-00001 for ₹2,500.00")

	out, err = executeCmd(t, app, "invoice", "list", "--status", "submitted")
	require.NoError(t, err)
	assert.Contains(t, out, "ACC-SINV-2026-00001")

	out, err = executeCmd(t, app, "payment", "add", "--customer", "ACME", "--amount", "1000")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded payment PAY-2026-00001 of ₹1,000.00 from ACME")

	out, err = executeCmd(t, app, "dashboard", "ACME")
	require.NoError(t, err)
	assert.Regexp(t, `Completed Projects\s+1`, out)
	assert.Contains(t, out, "₹1,500.00")

	out, err = executeCmd(t, app, "dashboard", "ACME", "--html")
	require.NoError(t, err)
	assert.Contains(t, out, "<medium>Ledger Balance</medium>")
}

func TestCLI_TaskAddAfterHidesUntilDone(t *testing.T) {
	app := testApp(t)
	seedAudit(t, app)

	out, err := executeCmd(t, app, "task", "add", "--subject", "Sign-off", "--project", "PROJ-0001", "--after", taskNamed(t, app, "Report"))
	require.NoError(t, err)
	assert.Contains(t, out, "hidden until")

	out, err = executeCmd(t, app, "task", "check", taskNamed(t, app, "Kickoff"), "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Checked item 1")

	_, err = executeCmd(t, app, "task", "check", taskNamed(t, app, "Kickoff"), "zero")
	assert.ErrorContains(t, err, "invalid checklist index")
}

func TestCLI_RepeatingProject(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "customer", "add", "--name", "ACME")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "project", "add", "--name", "Books", "--customer", "ACME", "--repeat", "Monthly")
	require.NoError(t, err)
	assert.Contains(t, out, "Created project Books [PROJ-0001]")

	out, err = executeCmd(t, app, "repeat", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "AR-2026-00001")
	assert.Contains(t, out, "Monthly")

	out, err = executeCmd(t, app, "repeat", "run")
	require.NoError(t, err)
	assert.Contains(t, out, "No schedules due.")

	out, err = executeCmd(t, app, "repeat", "disable", "AR-2026-00001")
	require.NoError(t, err)
	assert.Contains(t, out, "Disabled AR-2026-00001")
}

func TestCLI_Errors(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "add", "--name", "X", "--customer", "NOPE")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = executeCmd(t, app, "project", "show", "PROJ-9999")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = executeCmd(t, app, "project", "add", "--name", "X", "--start", "09/03/2026")
	assert.ErrorContains(t, err, "invalid start date")

	_, err = executeCmd(t, app, "invoice", "list", "--status", "paid")
	assert.ErrorContains(t, err, "invalid docstatus")

	_, err = executeCmd(t, app, "invoice", "set-items", "ACC-SINV-2026-00001", "--item", "fee:one:2")
	assert.ErrorContains(t, err, "invalid quantity")

	_, err = executeCmd(t, app, "token")
	assert.ErrorContains(t, err, "jwt_secret")

	_, err = executeCmd(t, app, "serve")
	assert.ErrorContains(t, err, "serve is not configured")
}

func TestCLI_Token(t *testing.T) {
	app := testApp(t)
	app.Tokens = auth.NewTokenService("a-test-secret-of-decent-length", time.Hour)

	out, err := executeCmd(t, app, "token", "--subject", "ops")
	require.NoError(t, err)

	claims, err := app.Tokens.ValidateToken(string(bytes.TrimSpace([]byte(out))))
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
}

func TestCLI_Serve(t *testing.T) {
	app := testApp(t)
	called := false
	app.Serve = func(ctx context.Context) error {
		called = true
		return nil
	}
	_, err := executeCmd(t, app, "serve")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestParseItem(t *testing.T) {
	item, err := parseItem("audit fee:2:125.5")
	require.NoError(t, err)
	assert.Equal(t, domain.SalesInvoiceItem{ItemCode: "audit fee", Qty: 2, Rate: 125.5}, item)

	_, err = parseItem("fee:1")
	assert.Error(t, err)
}
