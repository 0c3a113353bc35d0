// Package server assembles the HTTP router and runs it.
package server

import (
	"log/slog"
	"net/http"

	"github.com/alexanderramin/naqd/internal/auth"
	"github.com/alexanderramin/naqd/internal/handler"
	"github.com/alexanderramin/naqd/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// DashboardMethodPath is the whitelisted method path the customer form
// calls to fetch its dashboard fragment.
const DashboardMethodPath = "/api/method/naqd.api.customer_dashboard.get_customer_dashboard"

// NewRouter mounts every route. A nil tokens service disables
// authentication.
func NewRouter(h *handler.Handler, tokens *auth.TokenService, corsOrigins []string, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recovery(logger))

	r.Get("/health", h.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.BearerAuth(tokens))

		r.Get(DashboardMethodPath, h.CustomerDashboardMethod)

		r.Route("/api/customers", func(r chi.Router) {
			r.Post("/", h.CreateCustomer)
			r.Get("/", h.ListCustomers)
			r.Get("/{customer}/dashboard", h.CustomerDashboard)
		})

		r.Route("/api/templates", func(r chi.Router) {
			r.Post("/", h.ImportTemplate)
			r.Get("/", h.ListTemplates)
			r.Get("/{name}", h.GetTemplate)
		})

		r.Route("/api/projects", func(r chi.Router) {
			r.Post("/", h.CreateProject)
			r.Get("/", h.ListProjects)
			r.Get("/{name}", h.GetProject)
			r.Put("/{name}/status", h.SetProjectStatus)
			r.Get("/{name}/tasks", h.ListProjectTasks)
			r.Post("/{name}/sync-checklists", h.SyncProjectChecklists)
		})

		r.Route("/api/tasks", func(r chi.Router) {
			r.Post("/", h.CreateTask)
			r.Put("/{name}/status", h.SetTaskStatus)
			r.Post("/{name}/complete", h.CompleteTask)
			r.Put("/{name}/checklist/{idx}", h.SetChecklistItem)
		})

		r.Route("/api/invoices", func(r chi.Router) {
			r.Get("/", h.ListInvoices)
			r.Get("/{name}", h.GetInvoice)
			r.Put("/{name}/items", h.UpdateInvoiceItems)
			r.Post("/{name}/submit", h.SubmitInvoice)
			r.Post("/{name}/cancel", h.CancelInvoice)
		})

		r.Post("/api/payments", h.RecordPayment)

		r.Route("/api/auto-repeat", func(r chi.Router) {
			r.Get("/", h.ListAutoRepeats)
			r.Post("/run", h.RunAutoRepeat)
		})
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	return c.Handler(r)
}
