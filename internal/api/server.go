// Package api exposes the analysis pipeline over HTTP.
package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/cubeworks/cubeinsight/internal/ai"
)

// Server wires the resolver into HTTP routes.
type Server struct {
	app     *fiber.App
	analyze *AnalyzeHandler
}

// NewServer builds the fiber application with all routes registered.
func NewServer(resolver *ai.Resolver) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "cubeinsight",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(requestid.New())

	s := &Server{
		app:     app,
		analyze: NewAnalyzeHandler(resolver),
	}

	app.Get("/health", s.handleHealth)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/api/v1")
	v1.Post("/analyze", s.analyze.Analyze)
	v1.Get("/presets", s.analyze.Presets)

	return s
}

// Listen blocks serving HTTP on addr.
func (s *Server) Listen(addr string) error {
	log.Info().Str("addr", addr).Msg("http server listening")
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
