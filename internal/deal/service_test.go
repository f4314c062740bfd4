package deal

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubScraper struct {
	name  string
	deals []Deal
	err   error
}

func (s *stubScraper) Name() string { return s.name }

func (s *stubScraper) Search(_ context.Context, _ string, _ SearchParams) ([]Deal, error) {
	return s.deals, s.err
}

type stubEnricher struct {
	avgTemp float64
}

func (e *stubEnricher) EnrichDeals(_ context.Context, deals []Deal, _ []string) []Deal {
	for i := range deals {
		temp := e.avgTemp
		deals[i].Weather = &WeatherForecast{City: deals[i].Location, AvgTempC: &temp}
	}
	return deals
}

type stubStore struct {
	saved []SearchResult
}

func (s *stubStore) SaveRun(r SearchResult) { s.saved = append(s.saved, r) }

func (s *stubStore) LatestRun() (SearchResult, error) {
	if len(s.saved) == 0 {
		return SearchResult{}, errors.New("empty")
	}
	return s.saved[len(s.saved)-1], nil
}

func (s *stubStore) RunsSince(time.Time) ([]SearchResult, error) { return s.saved, nil }

type stubTracker struct {
	observed []PriceObservation
}

func (t *stubTracker) Track(obs PriceObservation) (bool, string) {
	t.observed = append(t.observed, obs)
	return true, "price drop for " + obs.Name
}

func TestServiceSearchPipeline(t *testing.T) {
	good := validDeal("Good Stay")
	noPets := validDeal("No Pets Apartment")
	noPets.PetFriendly = false

	scrapers := []Scraper{
		&stubScraper{name: "booking.com", deals: []Deal{good, noPets}},
		&stubScraper{name: "airbnb", err: errors.New("rate limited")},
	}

	store := &stubStore{}
	tracker := &stubTracker{}
	svc := NewService(scrapers, &stubEnricher{avgTemp: 18}, nil, store, tracker)

	result, err := svc.Search(context.Background(), testParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.RunID == "" {
		t.Fatal("expected a run id")
	}
	if result.TotalFound != 2 {
		t.Fatalf("expected 2 raw deals despite failing scraper, got %d", result.TotalFound)
	}
	if len(result.Deals) != 1 {
		t.Fatalf("expected 1 ranked deal after pet filter, got %d", len(result.Deals))
	}
	if result.Deals[0].Name != "Good Stay" {
		t.Fatalf("wrong deal survived validation: %q", result.Deals[0].Name)
	}
	if result.Validation.Reasons[ReasonPetMismatch] != 1 {
		t.Fatalf("expected one pet_mismatch rejection, got %+v", result.Validation.Reasons)
	}

	// Warm enrichment should have applied the weather bonus.
	if result.Deals[0].Weather == nil || result.Deals[0].Weather.AvgTempC == nil {
		t.Fatal("expected enriched weather forecast")
	}

	if len(store.saved) != 1 {
		t.Fatalf("expected run to be persisted, got %d", len(store.saved))
	}
	if len(tracker.observed) != 1 {
		t.Fatalf("expected one price observation, got %d", len(tracker.observed))
	}
	if len(result.Alerts) != 1 {
		t.Fatalf("expected triggered alert to surface, got %d", len(result.Alerts))
	}
}

func TestServiceSearchInvalidDateRange(t *testing.T) {
	svc := NewService(nil, nil, nil, nil, nil)

	params := testParams()
	params.CheckOut = params.CheckIn

	if _, err := svc.Search(context.Background(), params); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestServiceSearchEmptyBatchIsNotAnError(t *testing.T) {
	scrapers := []Scraper{&stubScraper{name: "booking.com"}}
	svc := NewService(scrapers, nil, nil, nil, nil)

	result, err := svc.Search(context.Background(), testParams())
	if err != nil {
		t.Fatalf("empty batch must not error: %v", err)
	}
	if len(result.Deals) != 0 {
		t.Fatalf("expected no deals, got %d", len(result.Deals))
	}
	if result.Summary != nil {
		t.Fatalf("expected nil summary for empty result")
	}
}
