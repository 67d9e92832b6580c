package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/uvify/uv-monitor/internal/api/http"
	"github.com/uvify/uv-monitor/internal/config"
	"github.com/uvify/uv-monitor/internal/poller"
	"github.com/uvify/uv-monitor/internal/source"
	"github.com/uvify/uv-monitor/internal/store"
	"github.com/uvify/uv-monitor/internal/uv"
)

func main() {
	// Load configuration (godotenv runs inside Load).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound backend calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory canonical reading set.
	readingStore := store.NewReadingStore()

	// Backend client with resilience (backoff + circuit breaker).
	backend := source.NewClient(httpClient, cfg.SourceBaseURL)

	// Core service orchestrating backend refreshes into the store.
	service := uv.NewService(readingStore, backend)

	// Poller driving the fast latest-reading and slow full-history jobs.
	p := poller.New(service, cfg.LatestInterval, cfg.HistoryInterval, cfg.HTTPTimeout)
	if err := p.Start(); err != nil {
		log.Fatalf("failed to start poller: %v", err)
	}
	defer p.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "uv-monitor",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "uv-monitor",
			"connected": service.IsConnected(),
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, backend, cfg.HistoryPageSize)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
