package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"retail-ledger/internal/config"
	"retail-ledger/internal/database"
	"retail-ledger/internal/handlers"
	"retail-ledger/internal/middleware"
	"retail-ledger/internal/repositories"
	"retail-ledger/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	db, err := database.Initialize(cfg)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Repositories
	clientRepo := repositories.NewClientRepository(db.DB)
	accountRepo := repositories.NewAccountRepository(db.DB)
	movementRepo := repositories.NewMovementRepository(db.DB)
	depositRepo := repositories.NewTermDepositRepository(db.DB)
	paramRepo := repositories.NewParameterRepository(db.DB)

	// Services
	metrics := services.NewPrometheusMetrics()
	clientService := services.NewClientService(clientRepo, logger)
	ledgerService := services.NewLedgerService(accountRepo, movementRepo, clientRepo, paramRepo, metrics, logger)
	depositService := services.NewTermDepositService(depositRepo, accountRepo, paramRepo, metrics, logger)
	reportingService := services.NewReportingService(accountRepo, movementRepo, logger)
	parameterService := services.NewParameterService(paramRepo, logger)

	// Handlers
	clientHandler := handlers.NewClientHandler(clientService, ledgerService)
	accountHandler := handlers.NewAccountHandler(ledgerService)
	depositHandler := handlers.NewTermDepositHandler(depositService)
	reportingHandler := handlers.NewReportingHandler(reportingService)
	parameterHandler := handlers.NewParameterHandler(parameterService)
	healthHandler := handlers.NewHealthCheckHandler(db.DB)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	clients := api.Group("/clients")
	clients.POST("", clientHandler.RegisterClient)
	clients.GET("/search", clientHandler.SearchClients)
	clients.GET("/:id", clientHandler.GetClient)
	clients.GET("/:id/accounts", clientHandler.GetClientAccounts)
	clients.POST("/:id/deactivate", clientHandler.DeactivateClient)
	clients.POST("/:id/reactivate", clientHandler.ReactivateClient)

	accounts := api.Group("/accounts")
	accounts.POST("", accountHandler.OpenAccount)
	accounts.GET("/search", accountHandler.SearchAccounts)
	accounts.GET("/:number", accountHandler.GetAccount)
	accounts.GET("/:number/movements", accountHandler.GetMovements)
	accounts.POST("/:number/deposits", accountHandler.Deposit)
	accounts.POST("/:number/withdrawals", accountHandler.Withdraw)
	accounts.POST("/:number/transfers", accountHandler.Transfer)
	accounts.POST("/:number/maintenance-fee", accountHandler.ApplyMaintenanceFee)
	accounts.POST("/:number/term-deposits", depositHandler.Constitute)
	accounts.GET("/:number/term-deposits", depositHandler.ListByAccount)

	api.POST("/term-deposits/:id/redeem", depositHandler.Redeem)

	reports := api.Group("/reports")
	reports.GET("/balance-total", reportingHandler.GetBalanceTotal)
	reports.GET("/export", reportingHandler.GetFullExport)
	reports.GET("/movements", reportingHandler.GetMovementAnalytics)

	api.GET("/parameters", parameterHandler.GetParameters)
	api.PUT("/parameters", parameterHandler.UpdateParameters)

	if cfg.IsDevelopment() && os.Getenv("SEED_DEMO_DATA") == "true" {
		seeder := services.NewDemoSeeder(clientService, ledgerService, logger)
		if err := seeder.Seed(10); err != nil {
			logger.Warn("Demo seeding failed", "error", err)
		}
	}

	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("Starting server", "addr", addr, "environment", cfg.Server.Environment)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
}
