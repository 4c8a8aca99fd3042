package rules

import (
	"math"
	"strings"

	"github.com/olegsavin/brandmatch/internal/domain/model"
)

// Compatibility score weights. They sum to 100, which keeps the total
// bounded without any clamping.
const (
	verticalWeight     = 30.0
	reachBudgetWeight  = 25.0
	verificationWeight = 15.0
	completenessWeight = 10.0
	bioOverlapWeight   = 20.0

	// Normalization caps for the reach/budget alignment component.
	reachCap  = 500000.0
	budgetCap = 100000.0

	// Bio words this short carry no signal and are ignored.
	minBioTokenLen = 4
)

// Score computes the compatibility score for a (creator, brand) pair.
// It is deterministic, does no I/O and is total: missing optional fields
// degrade the score instead of failing. The result is in [0,100], rounded
// to two decimals.
func Score(creator model.CreatorProfile, creatorUser model.User, brand model.BrandProfile, brandUser model.User) float64 {
	total := verticalComponent(brand) +
		reachBudgetComponent(creator, brand) +
		verificationComponent(creatorUser, brandUser) +
		completenessComponent(creator, brand) +
		bioOverlapComponent(creator, brand)

	return math.Round(total*100) / 100
}

// verticalComponent is a presence check only: the creator side has no niche
// field to compare against, so a brand that states its vertical gets the
// full weight.
func verticalComponent(brand model.BrandProfile) float64 {
	if strings.TrimSpace(brand.Vertical) != "" {
		return verticalWeight
	}
	return 0
}

func reachBudgetComponent(creator model.CreatorProfile, brand model.BrandProfile) float64 {
	reach := float64(creator.Reach())
	budget := brand.AdSpendRange.Midpoint()
	if reach == 0 && budget == 0 {
		return reachBudgetWeight / 2
	}

	reachRatio := math.Min(1, reach/reachCap)
	budgetRatio := math.Min(1, budget/budgetCap)
	return reachBudgetWeight * (1 - math.Abs(reachRatio-budgetRatio))
}

func verificationComponent(creatorUser, brandUser model.User) float64 {
	switch {
	case creatorUser.Verified && brandUser.Verified:
		return verificationWeight
	case creatorUser.Verified || brandUser.Verified:
		return verificationWeight / 2
	default:
		return 0
	}
}

func completenessComponent(creator model.CreatorProfile, brand model.BrandProfile) float64 {
	creatorFields := []bool{
		strings.TrimSpace(creator.InstagramHandle) != "",
		strings.TrimSpace(creator.TiktokHandle) != "",
		creator.FollowerCountIG > 0,
		creator.FollowerCountTiktok > 0,
		strings.TrimSpace(creator.Bio) != "",
	}
	brandFields := []bool{
		strings.TrimSpace(brand.CompanyName) != "",
		strings.TrimSpace(brand.Vertical) != "",
		brand.AdSpendRange.Midpoint() > 0,
		strings.TrimSpace(brand.Bio) != "",
	}

	avg := (ratioPresent(creatorFields) + ratioPresent(brandFields)) / 2
	return completenessWeight * avg
}

func ratioPresent(fields []bool) float64 {
	present := 0
	for _, ok := range fields {
		if ok {
			present++
		}
	}
	return float64(present) / float64(len(fields))
}

func bioOverlapComponent(creator model.CreatorProfile, brand model.BrandProfile) float64 {
	// Half credit is for an absent bio only. A bio that was written but
	// consists solely of noise words competes like any other and shares
	// nothing.
	if strings.TrimSpace(creator.Bio) == "" || strings.TrimSpace(brand.Bio) == "" {
		return bioOverlapWeight / 2
	}

	creatorTokens := bioTokens(creator.Bio)
	brandTokens := bioTokens(brand.Bio)

	denom := len(creatorTokens)
	if len(brandTokens) > denom {
		denom = len(brandTokens)
	}
	if denom == 0 {
		return 0
	}

	shared := 0
	for token := range creatorTokens {
		if _, ok := brandTokens[token]; ok {
			shared++
		}
	}

	return bioOverlapWeight * float64(shared) / float64(denom)
}

func bioTokens(bio string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(bio)) {
		if len(word) >= minBioTokenLen {
			tokens[word] = struct{}{}
		}
	}
	return tokens
}
