package deal

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidDateRange is returned when checkout is not after checkin.
var ErrInvalidDateRange = errors.New("checkout must be after checkin")

// SearchResult is the full output of one search run.
type SearchResult struct {
	RunID      string            `json:"runId"`
	Timestamp  time.Time         `json:"timestamp"`
	Params     SearchParams      `json:"searchParams"`
	TotalFound int               `json:"totalDealsFound"`
	Validation ValidationSummary `json:"validation"`
	Deals      []RankedDeal      `json:"deals"`
	Summary    *Summary          `json:"summary,omitempty"`
	Alerts     []string          `json:"priceAlerts,omitempty"`
}

// Service orchestrates one search run: concurrent scraping per city,
// weather enrichment, then the pure validate/normalize/rank pipeline.
// The pipeline itself holds no shared mutable state, so concurrent
// searches need no coordination beyond what the collaborators provide.
type Service struct {
	scrapers   []Scraper
	enricher   Enricher
	normalizer *Normalizer
	ranker     *Ranker
	store      RunStore
	tracker    PriceTracker
}

// NewService creates a Service. Enricher, store, and tracker are optional;
// a nil collaborator simply skips its stage.
func NewService(scrapers []Scraper, enricher Enricher, normalizer *Normalizer, store RunStore, tracker PriceTracker) *Service {
	if normalizer == nil {
		normalizer = NewNormalizer(nil)
	}
	return &Service{
		scrapers:   scrapers,
		enricher:   enricher,
		normalizer: normalizer,
		ranker:     NewRanker(),
		store:      store,
		tracker:    tracker,
	}
}

// Search runs the full pipeline for the given parameters. Scraper failures
// are logged and skipped; an empty valid set is not an error, the validation
// summary explains why.
func (s *Service) Search(ctx context.Context, params SearchParams) (SearchResult, error) {
	nights := params.Nights()
	if nights <= 0 {
		return SearchResult{}, ErrInvalidDateRange
	}

	raw := s.collect(ctx, params)
	log.Printf("search: collected %d raw deals across %d cities", len(raw), len(params.Cities))

	if s.enricher != nil {
		raw = s.enricher.EnrichDeals(ctx, raw, params.Cities)
	}

	valid, _, summary := Validate(raw, params)
	normalized := s.normalizer.NormalizeAll(valid, nights)
	ranked := s.ranker.Rank(normalized)

	result := SearchResult{
		RunID:      uuid.NewString(),
		Timestamp:  time.Now().UTC(),
		Params:     params,
		TotalFound: len(raw),
		Validation: summary,
		Deals:      ranked,
		Summary:    Summarize(ranked, nights),
	}

	if s.tracker != nil {
		result.Alerts = s.trackPrices(ranked)
	}

	if s.store != nil {
		s.store.SaveRun(result)
	}

	return result, nil
}

// collect fans out one goroutine per city; within a city the scrapers run
// sequentially, mirroring how sources are queried per location. A failing
// scraper only loses its own results.
func (s *Service) collect(ctx context.Context, params SearchParams) []Deal {
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		deals []Deal
	)

	for _, city := range params.Cities {
		city := city
		wg.Add(1)
		go func() {
			defer wg.Done()

			for _, scraper := range s.scrapers {
				found, err := scraper.Search(ctx, city, params)
				if err != nil {
					log.Printf("scraper %s failed for %s: %v", scraper.Name(), city, err)
					continue
				}

				mu.Lock()
				deals = append(deals, found...)
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return deals
}

func (s *Service) trackPrices(ranked []RankedDeal) []string {
	var alerts []string
	for _, d := range ranked {
		triggered, msg := s.tracker.Track(PriceObservation{
			PropertyID: d.PropertyID(),
			Name:       d.Name,
			Price:      d.PricePerNightEUR,
			URL:        d.URL,
			Source:     d.Source,
		})
		if triggered {
			alerts = append(alerts, msg)
		}
	}
	return alerts
}
