package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/casefeed/backend/internal/cache"
	"github.com/casefeed/backend/internal/config"
	"github.com/casefeed/backend/internal/db"
	"github.com/casefeed/backend/internal/events"
	apphttp "github.com/casefeed/backend/internal/http"
	"github.com/casefeed/backend/internal/http/dto"
	"github.com/casefeed/backend/internal/http/handlers"
	"github.com/casefeed/backend/internal/middleware"
	"github.com/casefeed/backend/internal/repositories"
	"github.com/casefeed/backend/internal/services"
	"github.com/casefeed/backend/migrations"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, int32(cfg.PostgresMaxConns), log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	activityRepo := repositories.NewActivityRepo(pool)
	matterRepo := repositories.NewMatterRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Services
	timelineCache := cache.NewTimelineCache(rdb, cfg.TimelineCacheTTL)
	activityService := services.NewActivityService(activityRepo, matterRepo, timelineCache, publisher, cfg.Location(), log)
	matterService := services.NewMatterService(matterRepo, activityService, publisher, log)

	// Handlers
	wsHub := handlers.NewWSHub(cfg.JWTSecret, subscriber, log)
	if err := wsHub.Start(ctx); err != nil {
		log.Fatal("failed to subscribe to activity events", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(dto.ErrorResponse{Error: err.Error(), RequestID: middleware.GetRequestID(c)})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, apphttp.Handlers{
		Activity: handlers.NewActivityHandler(activityService, log),
		Matter:   handlers.NewMatterHandler(matterService, log),
		User:     handlers.NewUserHandler(),
		Meta:     handlers.NewMetaHandler(),
		WSHub:    wsHub,
	})

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
