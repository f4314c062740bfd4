package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/NotDonCitron/LarsHoliday/internal/common"
	"github.com/NotDonCitron/LarsHoliday/internal/deal"
	"github.com/NotDonCitron/LarsHoliday/internal/httpx"
)

// Client fetches 5-day forecasts from OpenWeatherMap and attaches them to
// deals as a ranking input. Responses are cached per city with a TTL.
type Client struct {
	apiKey  string
	baseURL string
	httpCfg httpx.ClientConfig
	circuit *gobreaker.CircuitBreaker
	cache   *forecastCache
}

func NewClient(client *http.Client, apiKey string, cacheTTL time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/forecast",
		httpCfg: httpx.ClientConfig{
			Client:  client,
			Backoff: httpx.DefaultBackoff(),
		},
		circuit: httpx.NewBreaker("openweather"),
		cache:   newForecastCache(cacheTTL),
	}
}

// Forecast returns the forecast for a city: average temperature over the
// next days plus a dominant condition summary.
func (c *Client) Forecast(ctx context.Context, city string) (deal.WeatherForecast, error) {
	key := strings.ToLower(city)
	if cached, ok := c.cache.get(key); ok {
		return cached, nil
	}

	if c.apiKey == "" {
		return deal.WeatherForecast{}, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", city)
		values.Set("appid", c.apiKey)
		values.Set("units", "metric")
		values.Set("lang", "en")

		u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := httpx.Do(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return deal.WeatherForecast{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		List []struct {
			Main struct {
				Temp float64 `json:"temp"`
			} `json:"main"`
			Weather []struct {
				Main string `json:"main"`
			} `json:"weather"`
		} `json:"list"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return deal.WeatherForecast{}, err
	}

	forecast := deal.WeatherForecast{City: city}

	if len(payload.List) > 0 {
		var sum float64
		conditionCounts := make(map[string]int)
		for _, item := range payload.List {
			sum += item.Main.Temp
			if len(item.Weather) > 0 {
				conditionCounts[strings.ToLower(item.Weather[0].Main)]++
			}
		}

		avg := math.Round(sum/float64(len(payload.List))*10) / 10
		forecast.AvgTempC = &avg
		forecast.Conditions = dominantCondition(conditionCounts)
	}

	c.cache.set(key, forecast)
	return forecast, nil
}

// EnrichDeals attaches a forecast to every deal whose location matches one
// of the searched cities. A failed lookup leaves the deal without a
// forecast, which the ranker treats as neutral.
func (c *Client) EnrichDeals(ctx context.Context, deals []deal.Deal, cities []string) []deal.Deal {
	forecasts := make(map[string]deal.WeatherForecast, len(cities))
	for _, city := range cities {
		f, err := c.Forecast(ctx, city)
		if err != nil {
			log.Printf("weather: forecast failed for %s: %v", city, err)
			continue
		}
		forecasts[strings.ToLower(city)] = f
	}

	for i := range deals {
		loc := dealCityKey(deals[i].Location)

		for key := range forecasts {
			if common.HasAny(loc, key) || common.HasAny(key, loc) {
				f := forecasts[key]
				deals[i].Weather = &f
				break
			}
		}
	}

	return deals
}

// dealCityKey extracts the city part of a scraped location, e.g.
// "Zandvoort aan Zee, North Holland" -> "zandvoort aan zee".
func dealCityKey(location string) string {
	city := location
	if idx := strings.Index(location, ","); idx >= 0 {
		city = location[:idx]
	}
	return strings.ToLower(strings.TrimSpace(city))
}

func dominantCondition(counts map[string]int) string {
	if len(counts) == 0 {
		return "unknown"
	}

	best := ""
	bestCount := 0
	for cond, count := range counts {
		if count > bestCount || (count == bestCount && cond < best) {
			best = cond
			bestCount = count
		}
	}
	return best
}
