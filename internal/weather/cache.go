package weather

import (
	"sync"
	"time"

	"github.com/NotDonCitron/LarsHoliday/internal/deal"
)

// forecastCache is a concurrency-safe TTL cache for per-city forecasts,
// so that multi-deal batches hit the weather API once per city.
type forecastCache struct {
	mu  sync.RWMutex
	ttl time.Duration

	entries map[string]cacheEntry
}

type cacheEntry struct {
	forecast deal.WeatherForecast
	storedAt time.Time
}

func newForecastCache(ttl time.Duration) *forecastCache {
	return &forecastCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func (c *forecastCache) get(key string) (deal.WeatherForecast, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Since(entry.storedAt) >= c.ttl {
		return deal.WeatherForecast{}, false
	}
	return entry.forecast, true
}

func (c *forecastCache) set(key string, f deal.WeatherForecast) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{forecast: f, storedAt: time.Now()}
}
