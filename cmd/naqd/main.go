package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/alexanderramin/naqd/internal/auth"
	"github.com/alexanderramin/naqd/internal/automation"
	"github.com/alexanderramin/naqd/internal/cli"
	"github.com/alexanderramin/naqd/internal/config"
	"github.com/alexanderramin/naqd/internal/dashboard"
	"github.com/alexanderramin/naqd/internal/db"
	"github.com/alexanderramin/naqd/internal/handler"
	"github.com/alexanderramin/naqd/internal/logging"
	"github.com/alexanderramin/naqd/internal/server"
	"github.com/alexanderramin/naqd/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("NAQD_CONFIG"))
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}

	database, err := db.OpenDB(cfg.DB)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	ctx := context.Background()

	var cache dashboard.Cache = dashboard.NoopCache{}
	if cfg.Redis.Addr != "" {
		redisCache, err := dashboard.NewRedisCache(ctx, dashboard.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Dashboard.CacheTTL,
		})
		if err != nil {
			return err
		}
		defer redisCache.Close()
		cache = redisCache
	}

	// Wire hooks and the document layer every service writes through
	auto := automation.New(automation.Options{ItemCode: cfg.Invoice.ItemCode})
	docs := service.NewDocuments(database, db.NewSQLiteUnitOfWork(database), service.NewRegistry(auto),
		service.WithLogger(logger),
		service.WithDashboardCache(cache),
	)
	observer := service.NewSlogUseCaseObserver(logger)

	app := &cli.App{
		Customers:      service.NewCustomerService(docs, observer),
		Projects:       service.NewProjectService(docs, observer),
		Tasks:          service.NewTaskService(docs, observer),
		Templates:      service.NewTemplateService(docs, auto, observer),
		Invoices:       service.NewInvoiceService(docs, observer),
		Payments:       service.NewPaymentService(docs, observer),
		AutoRepeats:    service.NewAutoRepeatService(docs, observer),
		Dashboards:     service.NewDashboardService(docs, cfg.Dashboard.CurrencySymbol),
		CurrencySymbol: cfg.Dashboard.CurrencySymbol,
	}
	if cfg.Auth.JWTSecret != "" {
		app.Tokens = auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	}

	app.Serve = func(ctx context.Context) error {
		if app.Tokens == nil {
			logger.Warn("auth.jwt_secret is empty; the API is unauthenticated")
		}
		h := handler.New(handler.Services{
			Customers:   app.Customers,
			Projects:    app.Projects,
			Tasks:       app.Tasks,
			Templates:   app.Templates,
			Invoices:    app.Invoices,
			Payments:    app.Payments,
			AutoRepeats: app.AutoRepeats,
			Dashboards:  app.Dashboards,
		}, logger)
		router := server.NewRouter(h, app.Tokens, cfg.Server.CORSOrigins, logger)
		return server.Run(ctx, ":"+strconv.Itoa(cfg.Server.Port), router, logger)
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
