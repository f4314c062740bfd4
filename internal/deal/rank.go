package deal

import (
	"fmt"
	"sort"
)

// Scoring weights. Price contributes up to 40 points, rating up to 30,
// review count up to 20, so the base score lands in [0, 90] before
// multipliers.
const (
	priceScoreCeiling  = 40.0
	priceScoreDivisor  = 3.0
	ratingScoreFactor  = 6.0
	ratingScoreCap     = 30.0
	reviewScoreDivisor = 20.0
	reviewScoreCap     = 20.0

	petMultiplier     = 1.4
	weatherMultiplier = 1.2
	warmWeatherTempC  = 15.0
)

// Ranker computes composite desirability scores and a total ordering.
// It is stateless: concurrent batches need no coordination.
type Ranker struct{}

// NewRanker creates a Ranker.
func NewRanker() *Ranker {
	return &Ranker{}
}

// Rank scores every normalized deal, classifies it into a tier, and returns
// the batch sorted descending by score. Ties break by ascending EUR price,
// then by name, so repeated runs on the same input yield identical order.
func (r *Ranker) Rank(deals []NormalizedDeal) []RankedDeal {
	ranked := make([]RankedDeal, 0, len(deals))

	for _, d := range deals {
		score := round1(r.Score(d))
		tier := TierFor(score)

		ranked = append(ranked, RankedDeal{
			NormalizedDeal: d,
			RankScore:      score,
			Tier:           tier,
			Recommendation: fmt.Sprintf("%s | €%.0f total", tier, d.TotalCostEUR),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].RankScore != ranked[j].RankScore {
			return ranked[i].RankScore > ranked[j].RankScore
		}
		if ranked[i].PricePerNightEUR != ranked[j].PricePerNightEUR {
			return ranked[i].PricePerNightEUR < ranked[j].PricePerNightEUR
		}
		return ranked[i].Name < ranked[j].Name
	})

	return ranked
}

// Score computes the raw composite score for one deal. Each term is bounded
// before combination; the pet and weather multipliers apply last.
func (r *Ranker) Score(d NormalizedDeal) float64 {
	priceScore := priceScoreCeiling - d.PricePerNightEUR/priceScoreDivisor
	if priceScore < 0 {
		priceScore = 0
	}

	ratingScore := d.Rating * ratingScoreFactor
	if ratingScore > ratingScoreCap {
		// Validation already bounds rating at 5; this is a safety net.
		ratingScore = ratingScoreCap
	}

	reviewScore := float64(d.Reviews) / reviewScoreDivisor
	if reviewScore > reviewScoreCap {
		reviewScore = reviewScoreCap
	}

	score := priceScore + ratingScore + reviewScore

	if d.PetFriendly {
		score *= petMultiplier
	}
	if hasWarmForecast(d.Weather) {
		score *= weatherMultiplier
	}

	return score
}

// TierFor maps a final score onto its recommendation band.
func TierFor(score float64) Tier {
	switch {
	case score > 80:
		return TierExcellent
	case score > 60:
		return TierVeryGood
	case score > 40:
		return TierGood
	default:
		return TierBudget
	}
}

// hasWarmForecast reports whether the attached forecast qualifies for the
// weather bonus. A missing forecast means no bonus and no penalty.
func hasWarmForecast(w *WeatherForecast) bool {
	return w != nil && w.AvgTempC != nil && *w.AvgTempC > warmWeatherTempC
}
