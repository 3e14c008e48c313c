package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/dealer-service/internal/api/http"
	"github.com/spec-kit/dealer-service/internal/api/http/handlers"
	"github.com/spec-kit/dealer-service/internal/auth"
	"github.com/spec-kit/dealer-service/internal/config"
	"github.com/spec-kit/dealer-service/internal/events"
	"github.com/spec-kit/dealer-service/internal/observability"
	"github.com/spec-kit/dealer-service/internal/persistence"
	"github.com/spec-kit/dealer-service/internal/ratelimit"
	"github.com/spec-kit/dealer-service/internal/repository"
	"github.com/spec-kit/dealer-service/internal/service"
	"github.com/spec-kit/dealer-service/internal/worker"
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

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	otpRepo := repository.NewOTPRepository(pool)
	vehicleRepo := repository.NewVehicleRepository(pool)
	purchaseRepo := repository.NewPurchaseRequestRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	limiter := ratelimit.NewResendLimiter(redis.Client, cfg.Auth.OTPResendAfter())
	now := func() time.Time { return time.Now().UTC() }

	userService := service.NewUserService(userRepo, logger, now)
	otpService := service.NewOTPService(service.OTPDependencies{
		Codes:      otpRepo,
		Limiter:    limiter,
		Dispatcher: dispatcher,
		Logger:     logger,
		TTL:        cfg.Auth.OTPTTL(),
		Now:        now,
	})
	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience, cfg.Auth.TokenTTLMinutes)
	authService := service.NewAuthService(userService, otpService, tokenManager, logger)
	vehicleService := service.NewVehicleService(vehicleRepo, dispatcher, logger)
	purchaseService := service.NewPurchaseService(purchaseRepo, vehicleRepo, dispatcher, logger, now)
	saleService := service.NewSaleService(pool, dispatcher, logger, now)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(tokenManager)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, redis, cfg.App.Version),
		Auth:           handlers.NewAuthHandler(authService),
		Vehicles:       handlers.NewVehiclesHandler(vehicleService),
		Purchases:      handlers.NewPurchasesHandler(purchaseService),
		Sales:          handlers.NewSalesHandler(saleService),
		Customers:      handlers.NewCustomersHandler(userService),
		AuthMiddleware: authMiddleware,
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
