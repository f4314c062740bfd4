package deal

import (
	"context"
	"time"
)

// Scraper abstracts one listing-site adapter (Booking.com, Airbnb,
// Center Parcs). Adapters may fail or return partial data; the pipeline
// tolerates both.
type Scraper interface {
	Name() string
	Search(ctx context.Context, city string, params SearchParams) ([]Deal, error)
}

// Enricher attaches weather forecasts to deals before ranking.
type Enricher interface {
	EnrichDeals(ctx context.Context, deals []Deal, cities []string) []Deal
}

// RunStore is the contract the in-memory run store (and any future
// persistent store) must satisfy.
type RunStore interface {
	SaveRun(result SearchResult)
	LatestRun() (SearchResult, error)
	RunsSince(since time.Time) ([]SearchResult, error)
}

// PriceTracker records observed prices per property and reports drops.
type PriceTracker interface {
	Track(obs PriceObservation) (bool, string)
}

// PriceObservation is one per-run price sighting handed to the tracker.
// Threshold and Cooldown override the tracker defaults when non-zero.
type PriceObservation struct {
	PropertyID string
	Name       string
	Price      float64
	URL        string
	Source     Source

	Threshold float64
	Cooldown  time.Duration
}
