package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/AbhiGadhave11/realtime-polling-platform/internal/app"
	"github.com/AbhiGadhave11/realtime-polling-platform/internal/broadcast"
	"github.com/AbhiGadhave11/realtime-polling-platform/internal/config"
	"github.com/AbhiGadhave11/realtime-polling-platform/internal/database"
	"github.com/AbhiGadhave11/realtime-polling-platform/internal/logging"
	"github.com/AbhiGadhave11/realtime-polling-platform/internal/server"
)

func setupConfig() *config.Config {
	// .env is a development convenience; missing file is fine
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func runGracefulShutdown(srv *server.Server, hub *broadcast.Hub) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		hub.Stop()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	pool := setupDB(cfg)
	defer pool.Close()

	// Construct repositories
	pollRepo := database.NewPollRepo(pool)
	voteRepo := database.NewVoteRepo(pool)
	likeRepo := database.NewLikeRepo(pool)

	hub := broadcast.NewHub(clock, cfg.MaxWSClients)

	appSvc := app.NewService(pollRepo, voteRepo, likeRepo, hub, clock)

	srv := server.NewServer(cfg, appSvc, hub, pool)

	done := runGracefulShutdown(srv, hub)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
