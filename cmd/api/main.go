package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"assistant-kit/config"
	_ "assistant-kit/docs" // Swagger docs
	"assistant-kit/internal/app"
	"assistant-kit/internal/httpserver"
)

// @title       Assistant Kit API
// @description Intent-routed chat and a shoe sales agent with schema extraction memory.
// @version     1
// @host        localhost:8080
// @BasePath    /api/v1
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := app.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Assistant Kit API...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Assistant domain
	a, err := app.Build(ctx, cfg, logger, app.Options{})
	if err != nil {
		logger.Error(ctx, "Failed to initialize assistant: ", err)
		return
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warnf(ctx, "Failed to close conversation log: %v", err)
		}
	}()

	// 4. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:           logger,
		Port:             cfg.HTTPServer.Port,
		Mode:             cfg.HTTPServer.Mode,
		Environment:      cfg.Environment.Name,
		AssistantUseCase: a.Assistant,
		RateLimit:        cfg.RateLimit,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 5. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
