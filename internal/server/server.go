package server

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mariusrugan/credit-card-tx-api/internal/config"
	"github.com/mariusrugan/credit-card-tx-api/internal/hub"
)

type Server struct {
	echo        *echo.Echo
	config      *config.Config
	hub         *hub.Hub
	clock       clockwork.Clock
	connLimiter *ConnectionLimiter
	rateLimiter *ConnectionRateLimiter
}

func New(cfg *config.Config, h *hub.Hub, clock clockwork.Clock) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())

	srv := &Server{
		echo:        e,
		config:      cfg,
		hub:         h,
		clock:       clock,
		connLimiter: NewConnectionLimiter(cfg.MaxConnections),
		rateLimiter: NewConnectionRateLimiter(cfg.ConnRatePerSecond, cfg.ConnBurst, clock),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
