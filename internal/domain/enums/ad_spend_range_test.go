package enums

import "testing"

func TestAdSpendRangeMidpoints(t *testing.T) {
	cases := map[AdSpendRange]float64{
		AdSpendUnder1K:        500,
		AdSpend1KTo5K:         3000,
		AdSpend5KTo10K:        7500,
		AdSpend10KTo25K:       17500,
		AdSpend25KTo50K:       37500,
		AdSpend50KTo100K:      75000,
		AdSpendOver100K:       150000,
		AdSpendRange(""):      0,
		AdSpendRange("bogus"): 0,
	}

	for bucket, want := range cases {
		if got := bucket.Midpoint(); got != want {
			t.Fatalf("midpoint of %q: got %.0f want %.0f", bucket, got, want)
		}
	}
}

func TestParseDecisionStatusRejectsMatched(t *testing.T) {
	if _, ok := ParseDecisionStatus("matched"); ok {
		t.Fatalf("matched must not be accepted as a swipe decision")
	}
	if status, ok := ParseDecisionStatus(" Shortlisted "); !ok || status != MatchStatusShortlisted {
		t.Fatalf("expected shortlisted to parse, got %q ok=%v", status, ok)
	}
	if status, ok := ParseDecisionStatus("pending"); !ok || status != MatchStatusPending {
		t.Fatalf("expected pending to parse as a decision, got %q ok=%v", status, ok)
	}
}
