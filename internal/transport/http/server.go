// Package http assembles the echo server of the venueboard service.
package http

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/xiaot623/gogo/venueboard/internal/config"
	"github.com/xiaot623/gogo/venueboard/internal/hub"
	"github.com/xiaot623/gogo/venueboard/internal/metrics"
	"github.com/xiaot623/gogo/venueboard/internal/service"
	v1 "github.com/xiaot623/gogo/venueboard/internal/transport/http/v1"
	"github.com/xiaot623/gogo/venueboard/internal/transport/http/web"
	"github.com/xiaot623/gogo/venueboard/internal/transport/ws"
)

// Server is the public HTTP server.
type Server struct {
	echo *echo.Echo
}

// NewServer creates the HTTP server with the JSON API, the pages, the
// websocket endpoint and the metrics endpoint registered.
func NewServer(cfg *config.Config, svc *service.Service, h *hub.Hub, m *metrics.Metrics) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.LogLevel == "debug"
	e.Renderer = web.NewRenderer()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dK", cfg.MaxUploadBytes/1024)))

	// Register routes
	v1.NewHandler(svc).RegisterRoutes(e)
	web.NewHandler(svc).RegisterRoutes(e)
	e.GET("/ws", ws.NewServer(cfg, h).HandleWebSocket)
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	return &Server{echo: e}
}

// Echo returns the underlying echo instance.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start starts the HTTP server.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
