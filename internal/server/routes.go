package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Poll API
	s.echo.GET("/api/polls", s.handleListPolls)
	s.echo.POST("/api/polls", s.handleCreatePoll)
	s.echo.GET("/api/polls/:id", s.handleGetPoll)
	s.echo.POST("/api/vote", s.handleVote)
	s.echo.POST("/api/like", s.handleLike)

	// Live updates (all polls, no per-poll topics)
	s.echo.GET("/api/ws", s.handleWebSocket)
}
