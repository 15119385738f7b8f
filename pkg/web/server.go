package web

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/google/uuid"
)

// RequestIDKey is the fiber local holding the request id.
const RequestIDKey = "request_id"

// NewApp builds the HTTP application serving handlers.
func NewApp(handlers *APIHandlers, log *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "flowlint",
	})

	app.Use(cors.New())
	app.Use(RequestID())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
		Format:        "${time} | ${status} | ${latency} | ${method} | ${path} | ${locals:request_id}\n",
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("flowlint API")
	})

	handlers.Register(app)

	log.Debug("routes registered", "routes", len(app.GetRoutes(true)))

	return app
}

// RequestID tags every request with an id, reusing the caller's X-Request-ID
// header when present.
func RequestID() fiber.Handler {
	return func(c fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(RequestIDKey, id)
		c.Set(fiber.HeaderXRequestID, id)

		return c.Next()
	}
}
