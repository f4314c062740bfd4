package deal

// BudgetBreakdown summarizes per-night prices across a ranked batch.
type BudgetBreakdown struct {
	Nights                int     `json:"nights"`
	CheapestPerNight      float64 `json:"cheapestPerNight"`
	MostExpensivePerNight float64 `json:"mostExpensivePerNight"`
	AveragePerNight       float64 `json:"averagePerNight"`
}

// TopPick is one of the leading recommendations in a summary.
type TopPick struct {
	Name      string  `json:"name"`
	Score     float64 `json:"score"`
	TotalCost float64 `json:"totalCost"`
}

// Summary carries the key insights for one search run.
type Summary struct {
	BestOverall      string          `json:"bestOverall"`
	Budget           BudgetBreakdown `json:"budgetOverview"`
	PetFriendlyCount int             `json:"petFriendlyOptions"`
	TopRated         string          `json:"topRatedProperty"`
	Cheapest         string          `json:"cheapestOption"`
	TotalOptions     int             `json:"totalOptionsFound"`
	Top3             []TopPick       `json:"top3Recommendations"`
}

// Summarize derives summary statistics from an already-ranked batch.
// Returns nil when there are no deals to summarize.
func Summarize(ranked []RankedDeal, nights int) *Summary {
	if len(ranked) == 0 {
		return nil
	}

	breakdown := BudgetBreakdown{
		Nights:                nights,
		CheapestPerNight:      ranked[0].PricePerNightEUR,
		MostExpensivePerNight: ranked[0].PricePerNightEUR,
	}

	var (
		priceSum float64
		petCount int
		topRated = ranked[0]
		cheapest = ranked[0]
	)

	for _, d := range ranked {
		priceSum += d.PricePerNightEUR
		if d.PricePerNightEUR < breakdown.CheapestPerNight {
			breakdown.CheapestPerNight = d.PricePerNightEUR
		}
		if d.PricePerNightEUR > breakdown.MostExpensivePerNight {
			breakdown.MostExpensivePerNight = d.PricePerNightEUR
		}
		if d.PetFriendly {
			petCount++
		}
		if d.Rating > topRated.Rating {
			topRated = d
		}
		if d.PricePerNightEUR < cheapest.PricePerNightEUR {
			cheapest = d
		}
	}

	breakdown.AveragePerNight = round2(priceSum / float64(len(ranked)))

	top3 := make([]TopPick, 0, 3)
	for i := 0; i < len(ranked) && i < 3; i++ {
		top3 = append(top3, TopPick{
			Name:      ranked[i].Name,
			Score:     ranked[i].RankScore,
			TotalCost: ranked[i].TotalCostEUR,
		})
	}

	return &Summary{
		BestOverall:      ranked[0].Name,
		Budget:           breakdown,
		PetFriendlyCount: petCount,
		TopRated:         topRated.Name,
		Cheapest:         cheapest.Name,
		TotalOptions:     len(ranked),
		Top3:             top3,
	}
}
