package http

import (
	"time"

	"github.com/casefeed/backend/internal/config"
	"github.com/casefeed/backend/internal/http/handlers"
	"github.com/casefeed/backend/internal/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handlers struct {
	Activity *handlers.ActivityHandler
	Matter   *handlers.MatterHandler
	User     *handlers.UserHandler
	Meta     *handlers.MetaHandler
	WSHub    *handlers.WSHub
}

// SetupRouter wires middleware and routes. rdb may be nil, which disables
// rate limiting.
func SetupRouter(app *fiber.App, cfg *config.Config, log *zap.Logger, rdb *redis.Client, h Handlers) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.AllowedOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Request-ID, If-None-Match",
		ExposeHeaders: "ETag, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	if rdb != nil {
		api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute, log))
	}

	// Meta (public)
	api.Get("/meta/matter-types", h.Meta.GetMatterTypes)
	api.Get("/meta/matter-statuses", h.Meta.GetMatterStatuses)
	api.Get("/meta/action-types", h.Meta.GetActionTypes)

	protected := api.Group("", middleware.AuthMiddleware(cfg.JWTSecret, log))

	protected.Get("/me", h.User.GetMe)

	// Matters
	protected.Get("/matters", h.Matter.ListMatters)
	protected.Post("/matters", h.Matter.CreateMatter)
	protected.Get("/matters/by-number/:number", h.Matter.GetMatterByNumber)
	protected.Get("/matters/:id", h.Matter.GetMatter)
	protected.Delete("/matters/:id", h.Matter.DeleteMatter)

	// Activities
	protected.Post("/activities", h.Activity.CreateActivity)
	protected.Get("/activities/matter/:matterId", h.Activity.ListMatterActivities)
	protected.Get("/activities/matter/:matterId/timeline", h.Activity.GetMatterTimeline)

	// WebSocket
	if h.WSHub != nil {
		app.Use("/ws", handlers.WSUpgradeMiddleware())
		app.Get("/ws", websocket.New(h.WSHub.HandleWS))
	}
}
