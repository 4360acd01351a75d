package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/bahafit/bahafit/internal/api/http"
	"github.com/bahafit/bahafit/internal/api/http/handlers"
	"github.com/bahafit/bahafit/internal/auth"
	"github.com/bahafit/bahafit/internal/catalog"
	"github.com/bahafit/bahafit/internal/config"
	"github.com/bahafit/bahafit/internal/events"
	"github.com/bahafit/bahafit/internal/observability"
	"github.com/bahafit/bahafit/internal/persistence"
	"github.com/bahafit/bahafit/internal/repository"
	"github.com/bahafit/bahafit/internal/service"
	"github.com/bahafit/bahafit/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	regRepo := repository.NewRegistrationRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	catalogClient := catalog.NewClient(cfg.Catalog)
	catalogCache := catalog.NewCache(redis.ClientHandle(), cfg.Catalog.CacheTTL(), logger)

	authService := service.NewAuthService(cfg.Auth, userRepo, dispatcher)
	directoryService := service.NewDirectoryService(userRepo)
	registrationService := service.NewRegistrationService(regRepo, dispatcher, cfg.Payment, logger)
	catalogService := service.NewCatalogService(catalogClient, catalogCache, dispatcher, logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	viewCountService := service.NewViewCountService(catalogClient, dispatcher, logger)

	worker.StartNotificationWorker(notificationService)
	worker.StartViewCountWorker(viewCountService)

	sessionMiddleware := auth.NewSessionMiddleware(authService.TokenManager(), userRepo)
	gate := auth.NewGate()

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:            handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:              handlers.NewAuthHandler(authService),
		AdminUsers:        handlers.NewAdminUsersHandler(directoryService),
		AdminCatalog:      handlers.NewAdminCatalogHandler(catalogService),
		Catalog:           handlers.NewCatalogHandler(catalogService),
		Registrations:     handlers.NewRegistrationsHandler(registrationService),
		Dashboard:         handlers.NewDashboardHandler(directoryService, registrationService),
		SessionMiddleware: sessionMiddleware,
		Gate:              gate,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
