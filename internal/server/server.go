package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/AbhiGadhave11/realtime-polling-platform/internal/broadcast"
	"github.com/AbhiGadhave11/realtime-polling-platform/internal/config"
	"github.com/AbhiGadhave11/realtime-polling-platform/internal/domain"
	apperrors "github.com/AbhiGadhave11/realtime-polling-platform/internal/errors"
)

// postgresHealthChecker is a minimal interface for PostgreSQL health checks
type postgresHealthChecker interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	app       domain.PollService
	hub       *broadcast.Hub
	db        postgresHealthChecker
	startTime time.Time
}

func NewServer(cfg *config.Config, app domain.PollService, hub *broadcast.Hub, db postgresHealthChecker) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:      e,
		config:    cfg,
		app:       app,
		hub:       hub,
		db:        db,
		startTime: time.Now(),
	}

	// Register routes
	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
