package enums

import "strings"

type AdSpendRange string

const (
	AdSpendUnder1K   AdSpendRange = "under-1k"
	AdSpend1KTo5K    AdSpendRange = "1k-5k"
	AdSpend5KTo10K   AdSpendRange = "5k-10k"
	AdSpend10KTo25K  AdSpendRange = "10k-25k"
	AdSpend25KTo50K  AdSpendRange = "25k-50k"
	AdSpend50KTo100K AdSpendRange = "50k-100k"
	AdSpendOver100K  AdSpendRange = "over-100k"
)

func ParseAdSpendRange(input string) (AdSpendRange, bool) {
	switch AdSpendRange(strings.ToLower(strings.TrimSpace(input))) {
	case AdSpendUnder1K:
		return AdSpendUnder1K, true
	case AdSpend1KTo5K:
		return AdSpend1KTo5K, true
	case AdSpend5KTo10K:
		return AdSpend5KTo10K, true
	case AdSpend10KTo25K:
		return AdSpend10KTo25K, true
	case AdSpend25KTo50K:
		return AdSpend25KTo50K, true
	case AdSpend50KTo100K:
		return AdSpend50KTo100K, true
	case AdSpendOver100K:
		return AdSpendOver100K, true
	default:
		return "", false
	}
}

// Midpoint returns the representative monthly budget for a spend bucket.
// Unknown or absent buckets map to 0.
func (r AdSpendRange) Midpoint() float64 {
	switch r {
	case AdSpendUnder1K:
		return 500
	case AdSpend1KTo5K:
		return 3000
	case AdSpend5KTo10K:
		return 7500
	case AdSpend10KTo25K:
		return 17500
	case AdSpend25KTo50K:
		return 37500
	case AdSpend50KTo100K:
		return 75000
	case AdSpendOver100K:
		return 150000
	default:
		return 0
	}
}
