package server

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/wichananm65/zoo-backend/internal/auth"
	"github.com/wichananm65/zoo-backend/internal/config"
	"github.com/wichananm65/zoo-backend/internal/customer"
	"github.com/wichananm65/zoo-backend/internal/home"
	"github.com/wichananm65/zoo-backend/internal/metrics"
	"github.com/wichananm65/zoo-backend/internal/middleware"
)

const healthTimeout = 2 * time.Second

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the collaborators the HTTP server is built from.
type Deps struct {
	Log       *zap.Logger
	HTTP      config.HTTPConfig
	JWTSecret string
	Metrics   *metrics.Metrics
	DB        Pinger
	Customers *customer.Handler
	Home      *home.Handler
}

// New builds the fiber app with every route and middleware mounted.
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "zoo-backend",
		DisableStartupMessage: true,
		StrictRouting:         true,
		CaseSensitive:         true,
		ReadTimeout:           d.HTTP.ReadTimeout,
		WriteTimeout:          d.HTTP.WriteTimeout,
		IdleTimeout:           d.HTTP.IdleTimeout,
		ErrorHandler:          errorHandler(d.Log),
	})

	app.Use(middleware.RequestLogger(d.Log))
	if d.Metrics != nil {
		app.Use(d.Metrics.Middleware())
	}
	app.Use(recover.New())
	app.Use(middleware.CORS())

	app.Get("/health", health(d.DB))
	if d.Metrics != nil {
		app.Get("/metrics", d.Metrics.Handler())
	}

	if d.Home != nil {
		d.Home.RegisterPublicRoutes(app)
	}
	if d.Customers != nil {
		d.Customers.RegisterPublicRoutes(app)
		d.Customers.RegisterProtectedRoutes(app, auth.Middleware(d.JWTSecret))
	}

	// anything not matched above
	app.Use(notFound)
	return app
}

func notFound(c *fiber.Ctx) error {
	metrics.MarkUnmatched(c)
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(fiber.StatusNotFound).SendString("Not Found")
}

func health(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

// errorHandler renders errors that escape the handlers. Details are logged,
// never sent to the client.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "Error processing the request"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			if code < fiber.StatusInternalServerError {
				msg = fe.Message
			}
		}

		if code == fiber.StatusNotFound {
			return notFound(c)
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}
}
