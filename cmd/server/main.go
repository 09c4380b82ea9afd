package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/arithmetica/internal/api"
	"github.com/vytor/arithmetica/internal/config"
	"github.com/vytor/arithmetica/internal/db"
	"github.com/vytor/arithmetica/internal/leaderboard"
	"github.com/vytor/arithmetica/internal/logger"
	"github.com/vytor/arithmetica/internal/repository/sqlite"
	"github.com/vytor/arithmetica/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration: %v", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(cfg.LogColors),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("Arithmetica Server Starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("tick_interval=%s", cfg.TickInterval)
	log.Debug("leaderboard_limit=%d", cfg.LeaderboardLimit)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize services
	store := leaderboard.NewStore(sqlite.NewKeyValueRepository(database.DB))
	leaderboardService := services.NewLeaderboardService(store, cfg.LeaderboardLimit)
	gameService := services.NewGameService(leaderboardService, services.GameServiceOptions{
		TickInterval: cfg.TickInterval,
		Logger:       log,
	})

	srv := &api.Server{
		GameService:        gameService,
		LeaderboardService: leaderboardService,
		DB:                 database,
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Stop session timers; unfinished sessions are discarded.
	log.Debug("closing training sessions")
	gameService.Shutdown()

	log.Info("===========================================")
	log.Info("Arithmetica Server Stopped")
	log.Info("===========================================")
}
