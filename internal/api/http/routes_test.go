package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/NotDonCitron/LarsHoliday/internal/alerts"
	"github.com/NotDonCitron/LarsHoliday/internal/deal"
	"github.com/NotDonCitron/LarsHoliday/internal/store"
)

type fixedScraper struct {
	deals []deal.Deal
}

func (s *fixedScraper) Name() string { return "booking.com" }

func (s *fixedScraper) Search(_ context.Context, _ string, _ deal.SearchParams) ([]deal.Deal, error) {
	return s.deals, nil
}

func testApp() (*fiber.App, *store.MemoryStore, *alerts.Tracker) {
	scraper := &fixedScraper{deals: []deal.Deal{{
		Name:          "Canal House",
		Location:      "Amsterdam",
		PricePerNight: 120,
		Currency:      "EUR",
		Rating:        4.6,
		Reviews:       210,
		PetFriendly:   true,
		Source:        deal.SourceBooking,
		URL:           "https://example.com/canal",
	}}}

	st := store.NewMemoryStore(10, time.Hour)
	tracker := alerts.New(alerts.DefaultConfig())
	svc := deal.NewService([]deal.Scraper{scraper}, nil, nil, st, tracker)

	app := fiber.New()
	RegisterRoutes(app, svc, st, tracker, SearchDefaults{
		GroupSize: 4,
		Pets:      1,
		BudgetMin: 40,
		BudgetMax: 250,
	})
	return app, st, tracker
}

func TestSearchValidation(t *testing.T) {
	app, _, _ := testApp()

	cases := []string{
		"/api/v1/search",
		"/api/v1/search?cities=Amsterdam",
		"/api/v1/search?cities=Amsterdam&checkin=bad&checkout=2026-02-22",
		"/api/v1/search?cities=Amsterdam&checkin=2026-02-22&checkout=2026-02-15",
	}

	for _, target := range cases {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected status %d, got %d", target, http.StatusBadRequest, resp.StatusCode)
		}
	}
}

func TestSearchReturnsRankedDeals(t *testing.T) {
	app, _, _ := testApp()

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/search?cities=Amsterdam&checkin=2026-02-15&checkout=2026-02-22", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var result deal.SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.RunID == "" {
		t.Fatal("expected run id in response")
	}
	if len(result.Deals) != 1 || result.Deals[0].Name != "Canal House" {
		t.Fatalf("unexpected deals: %+v", result.Deals)
	}
}

func TestLatestRunLifecycle(t *testing.T) {
	app, _, _ := testApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/latest", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 before any run, got %d", resp.StatusCode)
	}

	search := httptest.NewRequest(http.MethodGet,
		"/api/v1/search?cities=Amsterdam&checkin=2026-02-15&checkout=2026-02-22", nil)
	if _, err := app.Test(search, -1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/runs/latest", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 after a run, got %d", resp.StatusCode)
	}
}

func TestFavoritesLifecycle(t *testing.T) {
	app, _, _ := testApp()

	body := `{"name":"Canal House","location":"Amsterdam","url":"https://example.com/canal"}`

	post := func() *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/favorites", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return resp
	}

	if resp := post(); resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if resp := post(); resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate, got %d", resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/favorites", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var listing struct {
		Favorites []store.Favorite `json:"favorites"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		t.Fatalf("decode favorites: %v", err)
	}
	if len(listing.Favorites) != 1 {
		t.Fatalf("expected 1 favorite, got %d", len(listing.Favorites))
	}

	del := httptest.NewRequest(http.MethodDelete,
		"/api/v1/favorites?id=https://example.com/canal", nil)
	resp, err = app.Test(del)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
}

func TestAlertsHistoryEndpoint(t *testing.T) {
	app, _, tracker := testApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/alerts/history", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without propertyId, got %d", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet,
		"/api/v1/alerts/history?propertyId=unknown", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for untracked property, got %d", resp.StatusCode)
	}

	tracker.Track(deal.PriceObservation{
		PropertyID: "p1",
		Name:       "Canal House",
		Price:      120,
		Source:     deal.SourceBooking,
	})

	resp, err = app.Test(httptest.NewRequest(http.MethodGet,
		"/api/v1/alerts/history?propertyId=p1", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for tracked property, got %d", resp.StatusCode)
	}
}
