package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/NotDonCitron/LarsHoliday/internal/alerts"
	httpapi "github.com/NotDonCitron/LarsHoliday/internal/api/http"
	"github.com/NotDonCitron/LarsHoliday/internal/config"
	"github.com/NotDonCitron/LarsHoliday/internal/deal"
	"github.com/NotDonCitron/LarsHoliday/internal/scheduler"
	"github.com/NotDonCitron/LarsHoliday/internal/scrapers"
	"github.com/NotDonCitron/LarsHoliday/internal/store"
	"github.com/NotDonCitron/LarsHoliday/internal/weather"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	fxTable, err := cfg.FXTable()
	if err != nil {
		log.Fatalf("failed to load fx rates: %v", err)
	}

	// Shared HTTP client for outbound scraper and weather calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory run/favorites store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxRuns, cfg.StoreMaxAge)

	// Price drop tracker.
	tracker := alerts.New(alerts.Config{
		Threshold: cfg.AlertThreshold,
		Cooldown:  cfg.AlertCooldown,
	})

	// Listing-site adapters with resilience (backoff + circuit breaker).
	adapters := []deal.Scraper{
		scrapers.NewBookingScraper(httpClient),
		scrapers.NewAirbnbScraper(httpClient),
		scrapers.NewCenterParcsScraper(),
	}

	// Weather enrichment with per-city forecast caching.
	enricher := weather.NewClient(httpClient, cfg.OpenWeatherAPIKey, cfg.WeatherCacheTTL)

	// Core service orchestrating scraping, enrichment, and ranking.
	service := deal.NewService(adapters, enricher, deal.NewNormalizer(fxTable), memStore, tracker)

	// Scheduler that periodically re-runs the default search.
	sched := scheduler.New(service, func(now time.Time) deal.SearchParams {
		return cfg.DefaultParams(now, 14, 7)
	}, cfg.SearchInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "lars-holiday",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          60 * time.Second,
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
			"status":  "ok",
			"service": "lars-holiday",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, memStore, tracker, httpapi.SearchDefaults{
		GroupSize: cfg.GroupSize,
		Pets:      cfg.Pets,
		BudgetMin: cfg.BudgetMin,
		BudgetMax: cfg.BudgetMax,
	})

	// Start server with graceful shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
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
