// Package web exposes the voice analyst over HTTP: a /listen WebSocket for
// conversations, a health endpoint, and the static demo client.
package web

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/voxfin/go-voxfin/pkg/session"
)

// Server is the public HTTP and WebSocket surface.
type Server struct {
	app     *fiber.App
	factory *session.Factory
	logger  *slog.Logger
	port    string
}

// NewServer creates the server around a session factory.
func NewServer(port string, factory *session.Factory, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		factory: factory,
		logger:  logger.With("component", "web"),
		port:    port,
	}

	app := fiber.New(fiber.Config{
		AppName:               "voxfin",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New())

	// Static demo client
	app.Static("/", "./web")

	app.Get("/health", s.handleHealth)

	// WebSocket upgrade guard
	app.Use("/listen", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/listen", websocket.New(s.handleListen))

	s.app = app
	return s
}

// Version is stamped at build time via -ldflags.
var Version = "dev"

// handleHealth reports process liveness.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "version": Version})
}

// handleListen runs one conversation over the accepted connection. The
// handler blocks until the session ends; the websocket middleware owns the
// connection lifecycle beyond that.
func (s *Server) handleListen(conn *websocket.Conn) {
	if err := s.factory.Serve(context.Background(), conn); err != nil {
		s.logger.Error("session setup failed", "error", err)
		conn.Close()
	}
}

// App exposes the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *Server) Start() error {
	s.logger.Info("listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
