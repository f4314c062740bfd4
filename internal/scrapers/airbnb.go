package scrapers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/NotDonCitron/LarsHoliday/internal/deal"
	"github.com/NotDonCitron/LarsHoliday/internal/httpx"
)

// AirbnbScraper implements the deal.Scraper interface for Airbnb's stays
// search endpoint.
type AirbnbScraper struct {
	name    string
	baseURL string
	httpCfg httpx.ClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewAirbnbScraper(client *http.Client) *AirbnbScraper {
	return &AirbnbScraper{
		name:    string(deal.SourceAirbnb),
		baseURL: "https://www.airbnb.com/api/v3/StaysSearch",
		httpCfg: httpx.ClientConfig{
			Client:  client,
			Backoff: httpx.DefaultBackoff(),
		},
		circuit: httpx.NewBreaker("airbnb"),
	}
}

func (s *AirbnbScraper) Name() string {
	return s.name
}

func (s *AirbnbScraper) Search(ctx context.Context, city string, params deal.SearchParams) ([]deal.Deal, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("query", city)
		values.Set("checkin", params.CheckIn.Format("2006-01-02"))
		values.Set("checkout", params.CheckOut.Format("2006-01-02"))
		values.Set("adults", fmt.Sprintf("%d", params.GroupSize))
		values.Set("pets", fmt.Sprintf("%d", params.Pets))

		u := fmt.Sprintf("%s?%s", s.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := httpx.Do(ctx, s.httpCfg, s.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Listings []struct {
			Title    string `json:"title"`
			Locality string `json:"locality"`
			Pricing  struct {
				NightlyPrice float64 `json:"nightly_price"`
				Currency     string  `json:"currency"`
			} `json:"pricing"`
			AvgRating   float64  `json:"avg_rating"` // already 0-5
			ReviewCount int      `json:"review_count"`
			PetsAllowed bool     `json:"pets_allowed"`
			ListingURL  string   `json:"listing_url"`
			PictureURLs []string `json:"picture_urls"`
		} `json:"listings"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	deals := make([]deal.Deal, 0, len(payload.Listings))
	for _, l := range payload.Listings {
		loc := l.Locality
		if loc == "" {
			loc = city
		}

		var image string
		if len(l.PictureURLs) > 0 {
			image = l.PictureURLs[0]
		}

		deals = append(deals, deal.Deal{
			Name:          l.Title,
			Location:      loc,
			PricePerNight: l.Pricing.NightlyPrice,
			Currency:      l.Pricing.Currency,
			Rating:        l.AvgRating,
			Reviews:       l.ReviewCount,
			PetFriendly:   l.PetsAllowed,
			Source:        deal.SourceAirbnb,
			URL:           l.ListingURL,
			ImageURL:      image,
		})
	}

	return deals, nil
}
