package deal

import (
	"strings"
	"time"
)

// Source identifies the listing site a deal was scraped from.
type Source string

const (
	SourceBooking     Source = "booking.com"
	SourceAirbnb      Source = "airbnb"
	SourceCenterParcs Source = "center-parcs"
)

// WeatherForecast is the enrichment attached to a deal before ranking.
// AvgTempC is nil when no forecast data was available for the location.
type WeatherForecast struct {
	City       string   `json:"city"`
	AvgTempC   *float64 `json:"avgTempC,omitempty"`
	Conditions string   `json:"conditions,omitempty"`
}

// Deal is one candidate accommodation offer as produced by a scraper.
// Prices are in the source currency; Currency defaults to EUR when empty.
type Deal struct {
	Name          string           `json:"name"`
	Location      string           `json:"location"`
	PricePerNight float64          `json:"pricePerNight"`
	Currency      string           `json:"currency,omitempty"`
	Rating        float64          `json:"rating"`
	Reviews       int              `json:"reviews"`
	PetFriendly   bool             `json:"petFriendly"`
	Source        Source           `json:"source"`
	URL           string           `json:"url"`
	ImageURL      string           `json:"imageUrl,omitempty"`
	FXRateToEUR   *float64         `json:"fxRateToEur,omitempty"`
	Weather       *WeatherForecast `json:"weatherForecast,omitempty"`
}

// SearchParams describes one user query. Immutable once a run starts.
type SearchParams struct {
	Cities    []string  `json:"cities"`
	CheckIn   time.Time `json:"checkin"`
	CheckOut  time.Time `json:"checkout"`
	GroupSize int       `json:"groupSize"`
	Pets      int       `json:"pets"`
	BudgetMin float64   `json:"budgetMin"`
	BudgetMax float64   `json:"budgetMax"`
}

// Nights derives the stay length from the date range.
func (p SearchParams) Nights() int {
	return int(p.CheckOut.Sub(p.CheckIn).Hours() / 24)
}

// RequiresPets reports whether only pet-friendly deals are acceptable.
func (p SearchParams) RequiresPets() bool {
	return p.Pets > 0
}

// RejectReason enumerates why a record was excluded from ranking.
type RejectReason string

const (
	ReasonMissingField   RejectReason = "missing_field"
	ReasonInvalidNumeric RejectReason = "invalid_numeric_field"
	ReasonBudgetExceeded RejectReason = "budget_exceeded"
	ReasonPetMismatch    RejectReason = "pet_mismatch"
	ReasonInvalidRecord  RejectReason = "invalid_record"
)

// RejectedDeal pairs the original record with the first failing check.
type RejectedDeal struct {
	Deal   Deal         `json:"deal"`
	Reason RejectReason `json:"reason"`
}

// ValidationSummary aggregates one run's validation outcome.
type ValidationSummary struct {
	ValidCount    int                  `json:"validCount"`
	RejectedCount int                  `json:"rejectedCount"`
	Reasons       map[RejectReason]int `json:"reasons"`
}

// NormalizedDeal is a valid deal expressed in EUR for fair comparison.
// The original price and currency stay untouched on the embedded Deal.
type NormalizedDeal struct {
	Deal
	PricePerNightEUR float64 `json:"pricePerNightEur"`
	TotalCostEUR     float64 `json:"totalCostForTripEur"`
	OriginalCurrency string  `json:"originalCurrency"`
	FXUnknown        bool    `json:"fxUnknown,omitempty"`
}

// Tier is the discrete recommendation label derived from a score band.
type Tier string

const (
	TierExcellent Tier = "EXCELLENT"
	TierVeryGood  Tier = "VERY GOOD"
	TierGood      Tier = "GOOD"
	TierBudget    Tier = "BUDGET"
)

// RankedDeal is the final output record: normalized deal plus score and tier.
// Never mutated after ranking.
type RankedDeal struct {
	NormalizedDeal
	RankScore      float64 `json:"rankScore"`
	Tier           Tier    `json:"tier"`
	Recommendation string  `json:"recommendation"`
}

// PropertyID returns a stable identifier for price tracking across runs.
func (d Deal) PropertyID() string {
	if d.URL != "" {
		return d.URL
	}
	return strings.ToLower(d.Name + "|" + d.Location)
}
