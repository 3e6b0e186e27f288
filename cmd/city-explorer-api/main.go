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

	httpapi "github.com/i474232898/city-explorer-api/internal/api/http"
	"github.com/i474232898/city-explorer-api/internal/config"
	"github.com/i474232898/city-explorer-api/internal/resource"
	"github.com/i474232898/city-explorer-api/internal/resource/sources"
	"github.com/i474232898/city-explorer-api/internal/scheduler"
	"github.com/i474232898/city-explorer-api/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound API calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Postgres store, constructed once and injected everywhere.
	pgStore, err := store.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer pgStore.Close()

	// One external source per resource kind.
	srcs := resource.Sources{
		Geocoder: sources.NewGoogleGeocoder(httpClient, cfg.GeocodeAPIKey),
		Weather:  sources.NewDarkSkyWeather(httpClient, cfg.WeatherAPIKey),
		Reviews:  sources.NewYelpReviews(httpClient, cfg.YelpAPIKey),
		Movies:   sources.NewTMDBMovies(httpClient, cfg.MovieAPIKey),
		Events:   sources.NewMeetupEvents(httpClient, cfg.MeetupAPIKey),
		Trails:   sources.NewHikingProjectTrails(httpClient, cfg.TrailAPIKey),
	}

	// Core gateway implementing the lookup-or-fetch protocol.
	gateway := resource.NewGateway(pgStore, srcs)

	// Periodic store health and stats reporting.
	reporter := scheduler.New(pgStore, cfg.StatsInterval)
	if err := reporter.Start(); err != nil {
		log.Fatalf("failed to start stats reporter: %v", err)
	}
	defer reporter.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "city-explorer-api",
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
		if err := pgStore.Ping(c.UserContext()); err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "store unreachable")
		}
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "city-explorer-api",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, gateway)

	// Start server with graceful shutdown
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
