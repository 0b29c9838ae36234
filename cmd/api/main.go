package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/theshadowable/iws-sh/internal/api/handlers"
	"github.com/theshadowable/iws-sh/internal/api/router"
	"github.com/theshadowable/iws-sh/internal/config"
	"github.com/theshadowable/iws-sh/internal/pkg/logger"
	"github.com/theshadowable/iws-sh/internal/pkg/validator"
	"github.com/theshadowable/iws-sh/internal/repository/postgres"
	"github.com/theshadowable/iws-sh/internal/services"
	"github.com/theshadowable/iws-sh/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	db, err := postgres.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	readingRepo := postgres.NewReadingRepository(db)
	leakRepo := postgres.NewLeakRepository(db)
	alertRepo := postgres.NewAlertRepository(db)
	tipRepo := postgres.NewTipRepository(db)
	prefsRepo := postgres.NewPreferencesRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)

	// Services
	alertService := services.NewAlertService(alertRepo, log)
	leakService := services.NewLeakService(readingRepo, leakRepo, alertService, log)
	tipService := services.NewTipService(readingRepo, tipRepo, log)
	balanceService := services.NewBalanceService(customerRepo, prefsRepo, alertRepo, alertService, log)

	// Handlers
	val := validator.New()
	h := &router.Handlers{
		Health:      handlers.NewHealthHandler(db),
		Alert:       handlers.NewAlertHandler(alertService, log, val),
		Leak:        handlers.NewLeakHandler(leakService, log, val),
		Tip:         handlers.NewTipHandler(tipService, log),
		Preferences: handlers.NewPreferencesHandler(prefsRepo, cfg.Monitoring.DefaultLowBalanceThreshold, log, val),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Background workers
	leakScanner := worker.NewLeakScanner(leakService, readingRepo, cfg.Monitoring.LeakScanInterval, log)
	go leakScanner.Start(ctx)

	balanceChecker := worker.NewBalanceChecker(balanceService, cfg.Monitoring.BalanceCheckSchedule, log)
	if err := balanceChecker.Start(ctx); err != nil {
		log.Fatalf("Failed to start balance checker: %v", err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.With("addr", srv.Addr).Info("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorWithErr(err, "Graceful shutdown failed")
	}

	log.Info("Server stopped")
}
