package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/NotDonCitron/LarsHoliday/internal/deal"
)

// Searcher is the part of the deal service the scheduler drives.
type Searcher interface {
	Search(ctx context.Context, params deal.SearchParams) (deal.SearchResult, error)
}

// ParamsFunc builds the search parameters for the next scheduled run,
// anchoring the date range relative to now.
type ParamsFunc func(now time.Time) deal.SearchParams

// Scheduler periodically re-runs the configured deal search so price
// tracking sees fresh observations between user-driven searches.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Searcher
	params    ParamsFunc
	interval  time.Duration
}

// New creates a new Scheduler.
func New(service Searcher, params ParamsFunc, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		params:    params,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 360
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: running deal search job")

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		params := s.params(time.Now())
		result, err := s.service.Search(ctx, params)
		if err != nil {
			log.Printf("scheduler: search failed: %v", err)
			return
		}

		log.Printf("scheduler: run %s found %d deals (%d valid), %d price alerts",
			result.RunID, result.TotalFound, result.Validation.ValidCount, len(result.Alerts))
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
