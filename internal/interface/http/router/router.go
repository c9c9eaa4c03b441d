package router

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/wichananm65/entries-backend/internal/infrastructure/config"
	"github.com/wichananm65/entries-backend/internal/interface/http/handler"
	"github.com/wichananm65/entries-backend/internal/interface/http/middleware"
	"github.com/wichananm65/entries-backend/internal/interface/presenter"
)

const (
	EntriesPath = "/api/entries"
	rootMessage = "Data Management API is running"
)

// New builds the fiber app with middleware and every route registered.
func New(cfg *config.Config, logger *slog.Logger, entryHandler *handler.EntryHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "entries-backend",
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestLogger(logger))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowMethods: cfg.CORS.AllowMethods,
		AllowHeaders: cfg.CORS.AllowHeaders,
	}))
	app.Use(middleware.RequestTimeout(cfg.Server.RequestTimeout))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(rootMessage)
	})
	app.Get("/health", entryHandler.Health)

	entryHandler.RegisterRoutes(app.Group(EntriesPath))

	return app
}

// errorHandler answers anything a handler did not handle itself. Client
// errors raised by fiber keep their status; everything else is a generic
// 500 without internal detail.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(presenter.MessageResponse{Message: fe.Message})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(presenter.MessageResponse{Message: "Server error"})
}
