package service

import (
	"context"

	"github.com/alexanderramin/naqd/internal/dashboard"
)

type dashboardService struct {
	docs           *Documents
	currencySymbol string
}

// NewDashboardService renders customer dashboards, reading through the
// Documents cache. An empty currencySymbol uses the default.
func NewDashboardService(docs *Documents, currencySymbol string) DashboardService {
	return &dashboardService{docs: docs, currencySymbol: currencySymbol}
}

func (s *dashboardService) GetCustomerDashboard(ctx context.Context, customer string) (*dashboard.Stats, error) {
	return dashboard.Load(ctx, s.docs.Store(), customer)
}

func (s *dashboardService) RenderCustomerDashboard(ctx context.Context, customer string) string {
	if html, ok, err := s.docs.cache.Get(ctx, customer); err != nil {
		s.docs.logger.WarnContext(ctx, "dashboard cache read failed", "customer", customer, "error", err)
	} else if ok {
		return html
	}

	html, err := s.render(ctx, customer)
	if err != nil {
		s.docs.logger.ErrorContext(ctx, "Customer Dashboard Error", "customer", customer, "error", err)
		return dashboard.RenderError(err)
	}
	if err := s.docs.cache.Set(ctx, customer, html); err != nil {
		s.docs.logger.WarnContext(ctx, "dashboard cache write failed", "customer", customer, "error", err)
	}
	return html
}

func (s *dashboardService) render(ctx context.Context, customer string) (string, error) {
	stats, err := s.GetCustomerDashboard(ctx, customer)
	if err != nil {
		return "", err
	}
	return dashboard.Render(stats, s.currencySymbol)
}
