package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pageza/recipe-tracker/backend/config"
	"github.com/pageza/recipe-tracker/backend/internal/database"
	"github.com/pageza/recipe-tracker/backend/internal/logging"
	"github.com/pageza/recipe-tracker/backend/internal/server"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.New(false).Error(ctx, "load config", "error", err)
		os.Exit(1)
	}
	log := logging.New(cfg.Env == config.Production)

	if err := config.ValidateConfig(cfg); err != nil {
		log.Error(ctx, "invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.New(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "open database", "error", err)
		os.Exit(1)
	}

	srv, err := server.New(ctx, cfg, db, log, server.Options{})
	if err != nil {
		log.Error(ctx, "create server", "error", err)
		os.Exit(1)
	}

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting server", "host", cfg.ServerHost, "port", cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Error(ctx, "server error", "error", err)
			os.Exit(1)
		}
	case sig := <-quit:
		log.Info(ctx, "received signal", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown", "error", err)
		os.Exit(1)
	}
	log.Info(ctx, "server stopped")
}
