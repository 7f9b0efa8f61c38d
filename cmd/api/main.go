package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aidsync/aidsync/internal/background"
	"github.com/aidsync/aidsync/internal/config"
	"github.com/aidsync/aidsync/internal/database"
	"github.com/aidsync/aidsync/internal/handlers"
	custommw "github.com/aidsync/aidsync/internal/middleware"
	"github.com/aidsync/aidsync/internal/models"
	"github.com/aidsync/aidsync/internal/repositories"
	"github.com/aidsync/aidsync/internal/routes"
	"github.com/aidsync/aidsync/internal/services"
	"github.com/aidsync/aidsync/internal/session"
	pkgauth "github.com/aidsync/aidsync/pkg/auth"
	pkglogger "github.com/aidsync/aidsync/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	// Postgres first, embedded sqlite as the offline fallback
	store, err := database.Open(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}

	// Repositories
	accountRepo := repositories.NewAccountRepository(store)
	beneficiaryRepo := repositories.NewBeneficiaryRepository(store)
	inventoryRepo := repositories.NewInventoryRepository(store)
	distributionRepo := repositories.NewDistributionRepository(store)
	statsRepo := repositories.NewStatsRepository(store)

	auditLogger := pkglogger.NewAuditLogger(logger)

	// Services
	authService := services.NewAuthService(accountRepo, logger, auditLogger)
	userService := services.NewUserService(accountRepo, logger, auditLogger)
	beneficiaryService := services.NewBeneficiaryService(beneficiaryRepo, logger)
	inventoryService := services.NewInventoryService(inventoryRepo, logger)
	distributionService := services.NewDistributionService(distributionRepo, beneficiaryRepo, logger)
	dashboardService := services.NewDashboardService(statsRepo, logger)

	// The one session for this running application
	guard := session.NewGuard(cfg.Session.InactivityWindow, logger)
	sweeper := background.NewSessionSweeper(guard, auditLogger, logger, cfg.Session.SweepInterval, nil)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, guard)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	beneficiaryHandler := handlers.NewBeneficiaryHandler(beneficiaryService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, guard)
	distributionHandler := handlers.NewDistributionHandler(distributionService, guard)
	userHandler := handlers.NewUserHandler(userService)

	// Seed the first administrator account if configured
	bootstrapCtx, bootstrapCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := ensureAdminAccount(bootstrapCtx, accountRepo, &cfg.Bootstrap, logger); err != nil {
		logger.Error("failed to ensure admin account", slog.Any("error", err))
	}
	bootstrapCancel()

	// Router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(custommw.RequestLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	routes.RegisterRoutes(router, guard, authHandler, dashboardHandler,
		beneficiaryHandler, inventoryHandler, distributionHandler, userHandler)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := store.HealthCheck(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","database":"down"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","database":"up"}`))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the staleness sweep
	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	defer sweepCancel()

	go sweeper.Start(sweepCtx)

	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	sweepCancel()
	sweeper.Stop()
	guard.Logout()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}

// ensureAdminAccount creates the first SUPER_ADMIN if ADMIN_PASSWORD is
// set and the username is free.
func ensureAdminAccount(ctx context.Context, repo *repositories.AccountRepository, cfg *config.BootstrapConfig, logger *slog.Logger) error {
	if cfg.AdminPassword == "" {
		logger.Info("no ADMIN_PASSWORD set, skipping admin account creation")
		return nil
	}

	_, err := repo.GetByUsername(ctx, cfg.AdminUsername)
	if err == nil {
		logger.Info("admin account already exists")
		return nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("failed to check if admin exists: %w", err)
	}

	hash, err := pkgauth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = repo.Create(ctx, &models.Account{
		Username:     cfg.AdminUsername,
		PasswordHash: hash,
		FullName:     cfg.AdminFullName,
		Role:         models.RoleSuperAdmin,
		Status:       models.StatusActive,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	logger.Info("admin account created", slog.String("username", cfg.AdminUsername))
	return nil
}
