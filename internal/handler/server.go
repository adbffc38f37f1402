package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"seo-ai/pkg/logger"
)

// ServerConfig sets the listen address and timeouts.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server wraps the fiber app.
type Server struct {
	app    *fiber.App
	config ServerConfig
	log    *logger.Logger
}

// NewServer builds the fiber app with middleware and all routes registered.
func NewServer(config ServerConfig, ctl *Controller) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "seo-ai",
		ErrorHandler:          ErrorHandler,
		ReadTimeout:           config.ReadTimeout,
		WriteTimeout:          config.WriteTimeout,
		DisableStartupMessage: true,
	})

	s := &Server{
		app:    app,
		config: config,
		log:    logger.GetLogger().WithField("component", "http"),
	}

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(s.logRequest)

	ctl.Register(app)
	return s
}

// App exposes the fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.log.WithField("addr", s.Addr()).Info("HTTP server listening")
	return s.app.Listen(s.Addr())
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx
// expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) logRequest(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		// The error handler runs after the chain, so resolve the status here.
		status = fiber.StatusInternalServerError
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
	}

	entry := s.log.WithFields(map[string]interface{}{
		"method":     c.Method(),
		"path":       c.Path(),
		"status":     status,
		"latency_ms": time.Since(start).Milliseconds(),
		"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
	})
	switch {
	case status >= 500:
		entry.Error("Request failed")
	case status >= 400:
		entry.Warn("Request rejected")
	default:
		entry.Debug("Request served")
	}
	return err
}
