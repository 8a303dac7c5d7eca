package scoring

import (
	"math"

	"github.com/sells-group/locscore/internal/model"
)

// CategoryScore converts a set of same-category POIs into a 0-100
// accessibility score. Each POI contributes an inverse-distance proximity
// score 1/(distance+epsilon), bounded by 1/epsilon, damped by
// 1/sqrt(rank+1) so the second, third, ... nearest instance adds
// sub-linearly. The sum is scaled and clamped so scores stay comparable
// across categories as the catalog grows.
func (c *Config) CategoryScore(pois []model.POI) float64 {
	if len(pois) == 0 {
		return 0
	}

	sorted := sortByDistance(pois)

	var sum float64
	for i, p := range sorted {
		proximity := 1 / (p.DistanceKm + c.ProximityEpsilon)
		sum += proximity / math.Sqrt(float64(i+1))
	}

	return clamp(math.Round(sum*c.Scale), 0, 100)
}

// OverallScore blends per-category scores into one 0-100 figure. The
// weight denominator counts only categories actually present, so an
// absent category is not treated as a zero contributor.
func (c *Config) OverallScore(perCategory map[model.Category]float64) float64 {
	var weighted, totalWeight float64
	for cat, score := range perCategory {
		w := c.weightFor(cat)
		weighted += score * w
		totalWeight += w
	}
	if totalWeight == 0 {
		return 0
	}
	return clamp(math.Round(weighted/totalWeight), 0, 100)
}

// Premium converts an overall accessibility score into a multiplicative
// valuation adjustment: 0.90 + score/400, rounded to two decimals. The
// range [0.90, 1.15] means a top location adds up to 25% over baseline.
func (c *Config) Premium(overallScore float64) float64 {
	factor := 0.90 + clamp(overallScore, 0, 100)/400
	return math.Round(factor*100) / 100
}

// Result computes the full accessibility factor set for a POI result set.
func (c *Config) Result(pois []model.POI) model.AccessibilityResult {
	buckets := GroupByCategory(pois)

	perCategory := make(map[model.Category]model.CategoryScore)
	scores := make(map[model.Category]float64)
	dimensionPOIs := make(map[string][]model.POI)

	for cat, bucket := range buckets {
		if cat == "" || len(bucket) == 0 {
			continue
		}
		score := c.CategoryScore(bucket)
		scores[cat] = score

		dim := DimensionOverall
		if p, ok := c.Categories[cat]; ok {
			dim = p.Dimension
		}
		perCategory[cat] = model.CategoryScore{
			Score:  score,
			Rating: c.Rate(score, dim),
		}
		dimensionPOIs[dim] = append(dimensionPOIs[dim], bucket...)
	}

	dimensions := make(map[string]model.CategoryScore)
	for _, dim := range []string{
		DimensionTransit, DimensionEducation, DimensionShopping,
		DimensionHealthcare, DimensionRecreation,
	} {
		score := c.CategoryScore(dimensionPOIs[dim])
		dimensions[dim] = model.CategoryScore{
			Score:  score,
			Rating: c.Rate(score, dim),
		}
	}

	overall := c.OverallScore(scores)
	return model.AccessibilityResult{
		PerCategory:   perCategory,
		Dimensions:    dimensions,
		OverallScore:  overall,
		OverallRating: c.Rate(overall, DimensionOverall),
		PremiumFactor: c.Premium(overall),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
