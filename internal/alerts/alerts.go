package alerts

import (
	"fmt"
	"sync"
	"time"

	"github.com/NotDonCitron/LarsHoliday/internal/deal"
)

// Config controls when a price drop triggers an alert.
type Config struct {
	// Threshold is the minimum relative drop versus the previous
	// observation, e.g. 0.20 for 20%.
	Threshold float64

	// Cooldown suppresses repeat alerts for the same property.
	Cooldown time.Duration

	// DedupeWindow drops repeat observations of an unchanged price.
	DedupeWindow time.Duration

	// MaxHistory bounds the retained price points per property.
	MaxHistory int
}

// DefaultConfig returns the tracker defaults.
func DefaultConfig() Config {
	return Config{
		Threshold:    0.20,
		Cooldown:     2 * time.Hour,
		DedupeWindow: 10 * time.Minute,
		MaxHistory:   10,
	}
}

// PricePoint is one retained price observation.
type PricePoint struct {
	Price float64   `json:"price"`
	At    time.Time `json:"at"`
}

// TrackedProperty is a read-only view of one tracked listing.
type TrackedProperty struct {
	PropertyID string       `json:"propertyId"`
	Name       string       `json:"name"`
	URL        string       `json:"url"`
	Source     deal.Source  `json:"source"`
	Prices     []PricePoint `json:"prices"`
	LastAlert  *time.Time   `json:"lastAlert,omitempty"`
}

type property struct {
	name      string
	url       string
	source    deal.Source
	prices    []PricePoint
	lastAlert time.Time
}

// Tracker records observed prices per property across runs and reports
// significant drops. Safe for concurrent use.
type Tracker struct {
	mu    sync.Mutex
	cfg   Config
	props map[string]*property
	now   func() time.Time
}

// New creates a Tracker. Zero config fields fall back to defaults.
func New(cfg Config) *Tracker {
	def := DefaultConfig()
	if cfg.Threshold <= 0 {
		cfg.Threshold = def.Threshold
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = def.Cooldown
	}
	if cfg.DedupeWindow <= 0 {
		cfg.DedupeWindow = def.DedupeWindow
	}
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = def.MaxHistory
	}

	return &Tracker{
		cfg:   cfg,
		props: make(map[string]*property),
		now:   time.Now,
	}
}

// Track records one observation and reports whether it triggered an alert.
// The first sighting of a property is the baseline and never alerts.
func (t *Tracker) Track(obs deal.PriceObservation) (bool, string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()

	prop, ok := t.props[obs.PropertyID]
	if !ok {
		prop = &property{name: obs.Name, url: obs.URL, source: obs.Source}
		t.props[obs.PropertyID] = prop
	}

	// Unchanged price seen again shortly after: no new history entry.
	if n := len(prop.prices); n > 0 {
		last := prop.prices[n-1]
		if last.Price == obs.Price && now.Sub(last.At) < t.cfg.DedupeWindow {
			return false, ""
		}
	}

	var previous float64
	hasPrevious := len(prop.prices) > 0
	if hasPrevious {
		previous = prop.prices[len(prop.prices)-1].Price
	}

	prop.prices = append(prop.prices, PricePoint{Price: obs.Price, At: now})
	if len(prop.prices) > t.cfg.MaxHistory {
		prop.prices = prop.prices[len(prop.prices)-t.cfg.MaxHistory:]
	}

	if !hasPrevious || previous <= obs.Price {
		return false, ""
	}

	threshold := t.cfg.Threshold
	if obs.Threshold > 0 {
		threshold = obs.Threshold
	}
	cooldown := t.cfg.Cooldown
	if obs.Cooldown > 0 {
		cooldown = obs.Cooldown
	}

	drop := (previous - obs.Price) / previous
	if drop < threshold {
		return false, ""
	}
	if !prop.lastAlert.IsZero() && now.Sub(prop.lastAlert) < cooldown {
		return false, ""
	}

	prop.lastAlert = now
	msg := fmt.Sprintf("PRICE ALERT: %s dropped %.1f%% (€%.2f → €%.2f) via %s %s",
		obs.Name, drop*100, previous, obs.Price, obs.Source, obs.URL)

	return true, msg
}

// History returns the retained price points for a property, oldest first.
func (t *Tracker) History(propertyID string) []PricePoint {
	t.mu.Lock()
	defer t.mu.Unlock()

	prop, ok := t.props[propertyID]
	if !ok {
		return nil
	}

	out := make([]PricePoint, len(prop.prices))
	copy(out, prop.prices)
	return out
}

// Tracked returns a snapshot of every tracked property.
func (t *Tracker) Tracked() []TrackedProperty {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]TrackedProperty, 0, len(t.props))
	for id, prop := range t.props {
		view := TrackedProperty{
			PropertyID: id,
			Name:       prop.name,
			URL:        prop.url,
			Source:     prop.source,
			Prices:     append([]PricePoint(nil), prop.prices...),
		}
		if !prop.lastAlert.IsZero() {
			last := prop.lastAlert
			view.LastAlert = &last
		}
		out = append(out, view)
	}
	return out
}
