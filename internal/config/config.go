package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/NotDonCitron/LarsHoliday/internal/deal"
)

// AppConfig carries all runtime configuration.
type AppConfig struct {
	OpenWeatherAPIKey string

	// Default search used by the scheduler and as API fallbacks.
	Cities    []string
	GroupSize int
	Pets      int
	BudgetMin float64
	BudgetMax float64

	// SearchInterval controls how often the scheduler re-runs the search.
	SearchInterval time.Duration

	// Run history retention.
	StoreMaxRuns int
	StoreMaxAge  time.Duration

	// Price alert tuning.
	AlertThreshold float64
	AlertCooldown  time.Duration

	// Outbound HTTP and weather cache.
	HTTPTimeout     time.Duration
	WeatherCacheTTL time.Duration

	// FXRatesPath optionally points to a YAML file overriding FX rates.
	FXRatesPath string

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")

	cfg.Cities = splitList(getenvDefault("SEARCH_CITIES", "Amsterdam,Rotterdam,Zandvoort"))
	cfg.GroupSize = getenvInt("SEARCH_GROUP_SIZE", 4)
	cfg.Pets = getenvInt("SEARCH_PETS", 1)
	cfg.BudgetMin = getenvFloat("BUDGET_MIN", 40)
	cfg.BudgetMax = getenvFloat("BUDGET_MAX", 250)

	interval, err := time.ParseDuration(getenvDefault("SEARCH_INTERVAL", "6h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEARCH_INTERVAL: %w", err)
	}
	cfg.SearchInterval = interval

	cfg.StoreMaxRuns = getenvInt("STORE_MAX_RUNS", 50)

	maxAge, err := time.ParseDuration(getenvDefault("STORE_MAX_AGE", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge

	cfg.AlertThreshold = getenvFloat("ALERT_THRESHOLD", 0.20)

	cooldown, err := time.ParseDuration(getenvDefault("ALERT_COOLDOWN", "2h"))
	if err != nil {
		return nil, fmt.Errorf("invalid ALERT_COOLDOWN: %w", err)
	}
	cfg.AlertCooldown = cooldown

	httpTimeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = httpTimeout

	cacheTTL, err := time.ParseDuration(getenvDefault("WEATHER_CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid WEATHER_CACHE_TTL: %w", err)
	}
	cfg.WeatherCacheTTL = cacheTTL

	cfg.FXRatesPath = os.Getenv("FX_RATES_FILE")
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

// FXTable returns the static rate table, merged with the optional YAML
// override file. File entries win over built-in rates.
func (c *AppConfig) FXTable() (deal.FXTable, error) {
	table := deal.DefaultFXTable()

	if c.FXRatesPath == "" {
		return table, nil
	}

	raw, err := os.ReadFile(c.FXRatesPath)
	if err != nil {
		return nil, fmt.Errorf("read fx rates file: %w", err)
	}

	var overrides map[string]float64
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("parse fx rates file: %w", err)
	}

	for code, rate := range overrides {
		if rate <= 0 {
			return nil, fmt.Errorf("fx rate for %s must be positive, got %v", code, rate)
		}
		table[strings.ToUpper(code)] = rate
	}

	return table, nil
}

// DefaultParams builds the scheduler's search parameters from config,
// anchored leadDays in the future.
func (c *AppConfig) DefaultParams(now time.Time, leadDays, nights int) deal.SearchParams {
	checkin := now.UTC().Truncate(24 * time.Hour).AddDate(0, 0, leadDays)
	return deal.SearchParams{
		Cities:    c.Cities,
		CheckIn:   checkin,
		CheckOut:  checkin.AddDate(0, 0, nights),
		GroupSize: c.GroupSize,
		Pets:      c.Pets,
		BudgetMin: c.BudgetMin,
		BudgetMax: c.BudgetMax,
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
