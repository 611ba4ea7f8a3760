package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/case-service/internal/api/http"
	"github.com/spec-kit/case-service/internal/api/http/handlers"
	"github.com/spec-kit/case-service/internal/auth"
	"github.com/spec-kit/case-service/internal/config"
	"github.com/spec-kit/case-service/internal/events"
	"github.com/spec-kit/case-service/internal/observability"
	"github.com/spec-kit/case-service/internal/persistence"
	"github.com/spec-kit/case-service/internal/repository"
	"github.com/spec-kit/case-service/internal/service"
	"github.com/spec-kit/case-service/internal/validation"
	"github.com/spec-kit/case-service/internal/worker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("failed to connect postgres: %w", err)
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), "up", logger); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	userRepo, caseRepo := repositories(pg, logger)

	dispatcher := events.NewInMemoryDispatcher()
	notifications := service.NewNotificationService(logger, cfg.Notification)
	notificationWorker := worker.NewNotificationWorker(notifications, logger, 256)
	notificationWorker.Subscribe(dispatcher)
	notificationWorker.Start(ctx)

	validator := validation.New()
	accountService := service.NewAccountService(cfg.Auth, service.AccountDependencies{
		UserRepo:   userRepo,
		Validator:  validator,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	caseService := service.NewCaseService(service.CaseDependencies{
		CaseRepo:   caseRepo,
		UserRepo:   userRepo,
		Validator:  validator,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	authMiddleware := auth.NewAuthMiddleware(accountService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()
	app := httptransport.NewApp(cfg.App.Name, logger, metrics, cfg.App.RequestTimeout())

	readiness := map[string]handlers.Pinger{}
	if pg.PoolHandle() != nil {
		readiness["postgres"] = pg
	}
	var limiterStorage fiber.Storage
	if redis.Client != nil {
		readiness["redis"] = redis
		limiterStorage = persistence.NewLimiterStorage(redis.Client)
	}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, readiness),
		Auth:           handlers.NewAuthHandler(accountService),
		Cases:          handlers.NewCasesHandler(caseService),
		Officers:       handlers.NewOfficersHandler(accountService),
		Public:         handlers.NewPublicHandler(caseService),
		AuthMiddleware: authMiddleware,
		Metrics:        metrics.Handler(),
		RateLimit:      cfg.RateLimit,
		LimiterStorage: limiterStorage,
	})

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		listenErr <- app.Listen(cfg.App.Addr())
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var serverErr error
	select {
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-listenErr:
		if err != nil {
			serverErr = fmt.Errorf("server error: %w", err)
		}
	}

	if err := app.ShutdownWithTimeout(15 * time.Second); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	cancel()
	notificationWorker.Wait()
	return serverErr
}

// repositories picks Postgres when a pool is available and falls back to
// the in-memory store otherwise.
func repositories(pg *persistence.Postgres, logger *zap.Logger) (repository.UserRepository, repository.CaseRepository) {
	if pool := pg.PoolHandle(); pool != nil {
		return repository.NewUserRepository(pool), repository.NewCaseRepository(pool)
	}
	logger.Warn("using in-memory repositories; data is lost on restart")
	store := repository.NewMemoryStore()
	return store.Users(), store.Cases()
}
