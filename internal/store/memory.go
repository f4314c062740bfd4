package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/NotDonCitron/LarsHoliday/internal/deal"
)

var (
	// ErrNotFound is returned when no data is available for a request.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a favorite is already saved.
	ErrDuplicate = errors.New("favorite already saved")
)

// Favorite is a saved deal, referenced by its stable fields by value.
type Favorite struct {
	Deal    deal.RankedDeal `json:"deal"`
	AddedAt time.Time       `json:"addedAt"`
}

// MemoryStore is a concurrency-safe in-memory store for search runs and
// favorites. Run history honors retention limits by count and age.
type MemoryStore struct {
	mu sync.RWMutex

	runs      []deal.SearchResult
	favorites map[string]Favorite

	maxRuns int           // max number of retained runs (0 = unlimited)
	maxAge  time.Duration // max age of retained runs (0 = unlimited)
}

// NewMemoryStore creates a MemoryStore with optional retention limits.
func NewMemoryStore(maxRuns int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		favorites: make(map[string]Favorite),
		maxRuns:   maxRuns,
		maxAge:    maxAge,
	}
}

// SaveRun appends a search run and enforces retention.
func (s *MemoryStore) SaveRun(result deal.SearchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = append(s.runs, result)

	if s.maxRuns > 0 && len(s.runs) > s.maxRuns {
		over := len(s.runs) - s.maxRuns
		s.runs = s.runs[over:]
	}

	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.runs); i++ {
			if !s.runs[i].Timestamp.Before(cutoff) {
				break
			}
		}
		if i > 0 {
			s.runs = s.runs[i:]
		}
	}
}

// LatestRun returns the most recent search run.
func (s *MemoryStore) LatestRun() (deal.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.runs) == 0 {
		return deal.SearchResult{}, ErrNotFound
	}
	return s.runs[len(s.runs)-1], nil
}

// RunsSince returns all runs with a timestamp at or after the given time.
func (s *MemoryStore) RunsSince(since time.Time) ([]deal.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []deal.SearchResult
	for _, run := range s.runs {
		if !run.Timestamp.Before(since) {
			result = append(result, run)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}

// AddFavorite saves a deal, keyed by its property id so the same listing
// is never saved twice.
func (s *MemoryStore) AddFavorite(d deal.RankedDeal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := d.PropertyID()
	if _, exists := s.favorites[id]; exists {
		return ErrDuplicate
	}

	s.favorites[id] = Favorite{Deal: d, AddedAt: time.Now().UTC()}
	return nil
}

// RemoveFavorite deletes a saved deal by property id.
func (s *MemoryStore) RemoveFavorite(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.favorites[id]; !exists {
		return ErrNotFound
	}
	delete(s.favorites, id)
	return nil
}

// Favorites returns all saved deals, oldest first.
func (s *MemoryStore) Favorites() []Favorite {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Favorite, 0, len(s.favorites))
	for _, f := range s.favorites {
		out = append(out, f)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].AddedAt.Equal(out[j].AddedAt) {
			return out[i].AddedAt.Before(out[j].AddedAt)
		}
		return out[i].Deal.Name < out[j].Deal.Name
	})

	return out
}
