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

	httptransport "github.com/spec-kit/enrollment-service/internal/api/http"
	"github.com/spec-kit/enrollment-service/internal/api/http/handlers"
	"github.com/spec-kit/enrollment-service/internal/auth"
	"github.com/spec-kit/enrollment-service/internal/cache"
	"github.com/spec-kit/enrollment-service/internal/config"
	"github.com/spec-kit/enrollment-service/internal/events"
	"github.com/spec-kit/enrollment-service/internal/observability"
	"github.com/spec-kit/enrollment-service/internal/persistence"
	"github.com/spec-kit/enrollment-service/internal/repository"
	"github.com/spec-kit/enrollment-service/internal/repository/memstore"
	"github.com/spec-kit/enrollment-service/internal/repository/postgres"
	"github.com/spec-kit/enrollment-service/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
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

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	dependencies := map[string]handlers.Pinger{"redis": redis}
	var store repository.Store
	if pool := pg.PoolHandle(); pool != nil {
		store = postgres.NewStore(pool)
		dependencies["postgres"] = pg
	} else {
		store = memstore.New()
	}

	dispatcher := events.NewInMemoryDispatcher()
	service.NewNotificationService(dispatcher, logger, cfg.Notification).RegisterHandlers()

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())

	registration := service.NewRegistrationService(cfg.Auth, service.RegistrationDependencies{
		Store:      store,
		Hasher:     hasher,
		Dispatcher: dispatcher,
	})
	authService := service.NewAuthService(service.AuthDependencies{
		Store:  store,
		Hasher: hasher,
		Tokens: tokens,
	})
	courses := service.NewCourseService(service.CourseDependencies{
		Store:      store,
		Cache:      cache.NewCatalogCache(redis.ClientHandle(), cfg.Catalog.CacheTTL(), logger),
		Dispatcher: dispatcher,
	})
	enrollments := service.NewEnrollmentService(service.EnrollmentDependencies{
		Store:      store,
		Dispatcher: dispatcher,
	})

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger, metrics),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, metrics, dependencies),
		Students:       handlers.NewStudentsHandler(registration, authService, enrollments),
		Companies:      handlers.NewCompaniesHandler(registration, authService, courses),
		Courses:        handlers.NewCoursesHandler(courses),
		Enrollments:    handlers.NewEnrollmentsHandler(enrollments),
		AuthMiddleware: auth.NewMiddleware(auth.NewGuard(tokens)),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
