package deal

import (
	"math"
	"strings"
)

// FXTable maps an upper-case currency code to its EUR conversion rate.
type FXTable map[string]float64

// DefaultFXTable returns the static rate table used when no override file
// is configured.
func DefaultFXTable() FXTable {
	return FXTable{
		"EUR": 1.0,
		"USD": 0.92,
		"GBP": 1.17,
		"CHF": 1.03,
		"NOK": 0.085,
		"SEK": 0.088,
		"DKK": 0.134,
	}
}

// Normalizer converts heterogeneous deal prices to EUR.
type Normalizer struct {
	rates FXTable
}

// NewNormalizer creates a Normalizer. A nil table falls back to the default.
func NewNormalizer(rates FXTable) *Normalizer {
	if rates == nil {
		rates = DefaultFXTable()
	}
	return &Normalizer{rates: rates}
}

// Normalize augments a valid deal with its EUR price and trip cost. The
// per-deal FX override takes precedence over the table; an unknown currency
// converts 1:1 and is flagged, never rejected.
func (n *Normalizer) Normalize(d Deal, nights int) NormalizedDeal {
	code := strings.ToUpper(strings.TrimSpace(d.Currency))
	if code == "" {
		code = "EUR"
	}

	var (
		rate      float64
		fxUnknown bool
	)

	switch {
	case d.FXRateToEUR != nil && *d.FXRateToEUR > 0:
		rate = *d.FXRateToEUR
	default:
		var ok bool
		rate, ok = n.rates[code]
		if !ok {
			rate = 1.0
			fxUnknown = true
		}
	}

	eur := round2(d.PricePerNight * rate)

	return NormalizedDeal{
		Deal:             d,
		PricePerNightEUR: eur,
		TotalCostEUR:     round2(eur * float64(nights)),
		OriginalCurrency: code,
		FXUnknown:        fxUnknown,
	}
}

// NormalizeAll converts a batch, preserving order.
func (n *Normalizer) NormalizeAll(deals []Deal, nights int) []NormalizedDeal {
	out := make([]NormalizedDeal, 0, len(deals))
	for _, d := range deals {
		out = append(out, n.Normalize(d, nights))
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func isNaNOrInf(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
