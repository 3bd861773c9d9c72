package server

import (
	"errors"
	"fmt"

	"github.com/WiLayd/serverless-transport-task/internal/core/apperrors"
	"github.com/WiLayd/serverless-transport-task/internal/core/config"
	"github.com/WiLayd/serverless-transport-task/internal/core/logger"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// Server holds the Fiber application and configuration.
type Server struct {
	// App is the main Fiber application instance.
	App *fiber.App
	// cfg holds the application configuration.
	cfg *config.AppConfig
}

// New creates a new Server instance with configured middleware. Every error
// returned by a handler is rendered by the central error handler as a
// {statusCode, message} JSON body.
func New(cfg *config.AppConfig) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "serverless-transport-task",
		ErrorHandler:          ErrorHandler,
	})

	app.Use(requestid.New(requestid.Config{
		Header: "X-Ray-ID",
	}))

	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger.Get(),
	}))

	return &Server{
		App: app,
		cfg: cfg,
	}
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.ServerPort)
	logger.Get().Info("Starting server", zap.String("address", addr))
	return s.App.Listen(addr)
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// ErrorHandler translates application errors into HTTP responses. Unknown
// errors are logged and hidden behind a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return c.Status(appErr.StatusCode).JSON(ErrorBody{
			StatusCode: appErr.StatusCode,
			Message:    appErr.Message,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(ErrorBody{
			StatusCode: fiberErr.Code,
			Message:    fiberErr.Message,
		})
	}

	logger.Get().Error("Unhandled error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorBody{
		StatusCode: fiber.StatusInternalServerError,
		Message:    "Internal server error",
	})
}
