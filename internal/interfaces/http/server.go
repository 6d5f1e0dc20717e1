package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/warehouse/internal/application/dto"
	"github.com/jhoicas/warehouse/internal/application/warehouse"
	"github.com/jhoicas/warehouse/pkg/currency"
	"github.com/jhoicas/warehouse/pkg/logger"
)

// ServerConfig opciones de la aplicación Fiber.
type ServerConfig struct {
	AppName string
	Money   currency.Formatter
	Log     *logger.Logger
}

// NewApp construye la aplicación Fiber con vistas, middlewares, /health y todas las rutas.
func NewApp(cfg ServerConfig, deps RouterDeps) *fiber.App {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		Views:        NewViews(cfg.Money),
		ErrorHandler: errorHandler(log),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.AppName})
	})

	Router(app, deps)
	return app
}

// errorHandler responde JSON bajo /api y texto plano en las páginas.
func errorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := warehouse.MsgUnexpectedFailure
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			msg = fe.Message
		} else {
			log.Error().Err(err).Str("request_id", GetRequestID(c)).Str("path", c.Path()).Msg("error no controlado")
		}
		if strings.HasPrefix(c.Path(), "/api") {
			return c.Status(code).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: msg})
		}
		return c.Status(code).SendString(msg)
	}
}
