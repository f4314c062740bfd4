package deal

import (
	"testing"
	"time"
)

func testParams() SearchParams {
	return SearchParams{
		Cities:    []string{"Amsterdam"},
		CheckIn:   time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
		CheckOut:  time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC),
		GroupSize: 4,
		Pets:      1,
		BudgetMin: 40,
		BudgetMax: 250,
	}
}

func validDeal(name string) Deal {
	return Deal{
		Name:          name,
		Location:      "Amsterdam",
		PricePerNight: 100,
		Currency:      "EUR",
		Rating:        4.5,
		Reviews:       120,
		PetFriendly:   true,
		Source:        SourceAirbnb,
		URL:           "https://example.com/" + name,
	}
}

// TestValidatePartition verifies that no record is lost or duplicated:
// every input deal lands in exactly one of the two output sequences.
func TestValidatePartition(t *testing.T) {
	deals := []Deal{
		validDeal("a"),
		{},                            // empty record
		func() Deal { d := validDeal("b"); d.PricePerNight = -5; return d }(),
		func() Deal { d := validDeal("c"); d.PetFriendly = false; return d }(),
		validDeal("d"),
	}

	valid, rejected, summary := Validate(deals, testParams())

	if len(valid)+len(rejected) != len(deals) {
		t.Fatalf("expected partition of %d deals, got %d valid + %d rejected",
			len(deals), len(valid), len(rejected))
	}
	if summary.ValidCount != 2 || summary.RejectedCount != 3 {
		t.Fatalf("unexpected summary counts: %+v", summary)
	}
}

func TestValidateRejectionReasons(t *testing.T) {
	params := testParams()

	cases := []struct {
		name   string
		mutate func(*Deal)
		want   RejectReason
	}{
		{"missing name", func(d *Deal) { d.Name = "" }, ReasonMissingField},
		{"missing url", func(d *Deal) { d.URL = "" }, ReasonMissingField},
		{"zero price", func(d *Deal) { d.PricePerNight = 0 }, ReasonInvalidNumeric},
		{"negative price", func(d *Deal) { d.PricePerNight = -1 }, ReasonInvalidNumeric},
		{"rating above five", func(d *Deal) { d.Rating = 5.5 }, ReasonInvalidNumeric},
		{"negative reviews", func(d *Deal) { d.Reviews = -1 }, ReasonInvalidNumeric},
		{"above budget", func(d *Deal) { d.PricePerNight = 300 }, ReasonBudgetExceeded},
		{"below budget", func(d *Deal) { d.PricePerNight = 20 }, ReasonBudgetExceeded},
		{"pet mismatch", func(d *Deal) { d.PetFriendly = false }, ReasonPetMismatch},
	}

	for _, tc := range cases {
		d := validDeal("x")
		tc.mutate(&d)

		valid, rejected, _ := Validate([]Deal{d}, params)
		if len(valid) != 0 || len(rejected) != 1 {
			t.Fatalf("%s: expected single rejection, got %d valid", tc.name, len(valid))
		}
		if rejected[0].Reason != tc.want {
			t.Fatalf("%s: expected reason %q, got %q", tc.name, tc.want, rejected[0].Reason)
		}
	}
}

// TestValidateFirstFailingCheckWins ensures a deal failing multiple checks is
// counted once, under the earliest check in the order.
func TestValidateFirstFailingCheckWins(t *testing.T) {
	d := validDeal("x")
	d.Name = ""          // fails required fields
	d.PricePerNight = -1 // would also fail numeric check

	_, rejected, summary := Validate([]Deal{d}, testParams())

	if rejected[0].Reason != ReasonMissingField {
		t.Fatalf("expected %q, got %q", ReasonMissingField, rejected[0].Reason)
	}
	if summary.Reasons[ReasonInvalidNumeric] != 0 {
		t.Fatalf("deal was double-counted: %+v", summary.Reasons)
	}
}

func TestValidateEmptyRecord(t *testing.T) {
	_, rejected, _ := Validate([]Deal{{}}, testParams())

	if len(rejected) != 1 || rejected[0].Reason != ReasonInvalidRecord {
		t.Fatalf("expected %q for empty record, got %+v", ReasonInvalidRecord, rejected)
	}
}

func TestValidatePetRequirementNotEnforcedWithoutPets(t *testing.T) {
	params := testParams()
	params.Pets = 0

	d := validDeal("x")
	d.PetFriendly = false

	valid, _, _ := Validate([]Deal{d}, params)
	if len(valid) != 1 {
		t.Fatalf("expected deal to pass without pet requirement, got %d valid", len(valid))
	}
}

func TestValidateBudgetBoundsInclusive(t *testing.T) {
	params := testParams()

	for _, price := range []float64{40, 250} {
		d := validDeal("x")
		d.PricePerNight = price

		valid, _, _ := Validate([]Deal{d}, params)
		if len(valid) != 1 {
			t.Fatalf("price %.0f at budget bound should be valid", price)
		}
	}
}

func TestValidateZeroReviewsAccepted(t *testing.T) {
	d := validDeal("x")
	d.Reviews = 0

	valid, _, _ := Validate([]Deal{d}, testParams())
	if len(valid) != 1 {
		t.Fatalf("zero reviews must not cause rejection")
	}
}
