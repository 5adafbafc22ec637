package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/bakery-crew/internal/api/http"
	"github.com/spec-kit/bakery-crew/internal/api/http/handlers"
	"github.com/spec-kit/bakery-crew/internal/auth"
	"github.com/spec-kit/bakery-crew/internal/config"
	"github.com/spec-kit/bakery-crew/internal/events"
	"github.com/spec-kit/bakery-crew/internal/observability"
	"github.com/spec-kit/bakery-crew/internal/persistence"
	"github.com/spec-kit/bakery-crew/internal/repository"
	"github.com/spec-kit/bakery-crew/internal/service"
	"github.com/spec-kit/bakery-crew/internal/worker"
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
	messageRepo := repository.NewMessageRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	donationRepo := repository.NewDonationRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, userRepo, dispatcher)
	messageService := service.NewMessageService(messageRepo, userRepo, dispatcher)
	adminService := service.NewAdminService(userRepo, dispatcher)
	eventService := service.NewEventService(eventRepo, dispatcher)
	donationService := service.NewDonationService(donationRepo, dispatcher)
	notificationService := service.NewNotificationService(dispatcher, messageRepo, logger)
	worker.StartNotificationWorker(notificationService)

	session := auth.NewSessionResolver(authService.TokenManager(), userRepo, cfg.Auth.StrictSession)

	app := fiber.New()
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:      handlers.NewAuthHandler(authService, cfg.App),
		Users:     handlers.NewUsersHandler(authService),
		Admin:     handlers.NewAdminHandler(adminService),
		Messages:  handlers.NewMessagesHandler(messageService),
		Events:    handlers.NewEventsHandler(eventService),
		Donations: handlers.NewDonationsHandler(donationService),
		Session:   session,
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
