package deal

// Validate filters raw deals before they influence ranking. Checks run in a
// fixed order and the first failing check determines the rejection reason,
// so a record is never double-counted. Validation never fails the batch:
// malformed records are reported, not raised.
//
// Check order per record:
//  1. completely empty record
//  2. required fields present (name, location, source, url)
//  3. numeric ranges (price > 0, rating in [0,5], reviews >= 0)
//  4. price within [BudgetMin, BudgetMax] inclusive
//  5. pet requirement satisfied
//
// len(valid) + len(rejected) == len(input) always holds.
func Validate(deals []Deal, params SearchParams) ([]Deal, []RejectedDeal, ValidationSummary) {
	valid := make([]Deal, 0, len(deals))
	var rejected []RejectedDeal

	summary := ValidationSummary{
		Reasons: make(map[RejectReason]int),
	}

	for _, d := range deals {
		if reason, ok := checkDeal(d, params); !ok {
			rejected = append(rejected, RejectedDeal{Deal: d, Reason: reason})
			summary.Reasons[reason]++
			continue
		}
		valid = append(valid, d)
	}

	summary.ValidCount = len(valid)
	summary.RejectedCount = len(rejected)

	return valid, rejected, summary
}

func checkDeal(d Deal, params SearchParams) (RejectReason, bool) {
	if isEmptyRecord(d) {
		return ReasonInvalidRecord, false
	}

	if d.Name == "" || d.Location == "" || d.Source == "" || d.URL == "" {
		return ReasonMissingField, false
	}

	if d.PricePerNight <= 0 || isNaNOrInf(d.PricePerNight) {
		return ReasonInvalidNumeric, false
	}
	if d.Rating < 0 || d.Rating > 5 || isNaNOrInf(d.Rating) {
		return ReasonInvalidNumeric, false
	}
	if d.Reviews < 0 {
		return ReasonInvalidNumeric, false
	}

	// Budget is a hard ceiling, not a penalty.
	if d.PricePerNight < params.BudgetMin || (params.BudgetMax > 0 && d.PricePerNight > params.BudgetMax) {
		return ReasonBudgetExceeded, false
	}

	if params.RequiresPets() && !d.PetFriendly {
		return ReasonPetMismatch, false
	}

	return "", true
}

// isEmptyRecord detects records whose shape is so incomplete that no single
// field can be blamed, e.g. a scraper returning a zero value on a parse miss.
func isEmptyRecord(d Deal) bool {
	return d.Name == "" && d.Location == "" && d.Source == "" && d.URL == "" && d.PricePerNight == 0
}
