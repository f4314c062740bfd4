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

// BookingScraper implements the deal.Scraper interface for Booking.com's
// JSON availability endpoint.
type BookingScraper struct {
	name    string
	baseURL string
	httpCfg httpx.ClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewBookingScraper(client *http.Client) *BookingScraper {
	return &BookingScraper{
		name:    string(deal.SourceBooking),
		baseURL: "https://www.booking.com/searchresults.json",
		httpCfg: httpx.ClientConfig{
			Client:  client,
			Backoff: httpx.DefaultBackoff(),
		},
		circuit: httpx.NewBreaker("booking"),
	}
}

func (s *BookingScraper) Name() string {
	return s.name
}

func (s *BookingScraper) Search(ctx context.Context, city string, params deal.SearchParams) ([]deal.Deal, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("ss", city)
		values.Set("checkin", params.CheckIn.Format("2006-01-02"))
		values.Set("checkout", params.CheckOut.Format("2006-01-02"))
		values.Set("group_adults", fmt.Sprintf("%d", params.GroupSize))
		if params.RequiresPets() {
			values.Set("pets", fmt.Sprintf("%d", params.Pets))
		}

		u := fmt.Sprintf("%s?%s", s.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := httpx.Do(ctx, s.httpCfg, s.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Results []struct {
			Name     string `json:"name"`
			Location string `json:"location"`
			Price    struct {
				PerNight float64 `json:"per_night"`
				Currency string  `json:"currency"`
			} `json:"price"`
			ReviewScore  float64 `json:"review_score"` // 0-10 scale
			ReviewCount  int     `json:"review_count"`
			PetsAllowed  bool    `json:"pets_allowed"`
			URL          string  `json:"url"`
			MainPhotoURL string  `json:"main_photo_url"`
		} `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	deals := make([]deal.Deal, 0, len(payload.Results))
	for _, r := range payload.Results {
		loc := r.Location
		if loc == "" {
			loc = city
		}

		deals = append(deals, deal.Deal{
			Name:          r.Name,
			Location:      loc,
			PricePerNight: r.Price.PerNight,
			Currency:      r.Price.Currency,
			Rating:        r.ReviewScore / 2, // normalize to the 0-5 scale
			Reviews:       r.ReviewCount,
			PetFriendly:   r.PetsAllowed,
			Source:        deal.SourceBooking,
			URL:           r.URL,
			ImageURL:      r.MainPhotoURL,
		})
	}

	return deals, nil
}
