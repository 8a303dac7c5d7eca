// Package scoring converts nearby-POI sets into accessibility scores,
// qualitative ratings, and property-value impact figures.
package scoring

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/locscore/internal/model"
)

// CategoryParams holds the static per-category scoring parameters.
type CategoryParams struct {
	// Weight is the category's importance in the overall accessibility
	// blend, in [0,1]. Categories absent from a result set contribute
	// neither score nor weight.
	Weight float64

	// BaseImpact is the maximum fractional price impact a single POI of
	// this category can contribute at distance zero, in [0,1].
	BaseImpact float64

	// Dimension groups categories for the presentation view
	// (transit, education, shopping, healthcare, recreation).
	Dimension string

	Label string
}

// Config is the full static scoring configuration. Built once at process
// start, passed by reference, never mutated.
type Config struct {
	Categories map[model.Category]CategoryParams

	// FallbackWeight applies to categories missing from the table.
	FallbackWeight float64

	// Scale multiplies the summed proximity contributions before the
	// final clamp to [0,100].
	Scale float64

	// ProximityEpsilon keeps the inverse-distance term finite at
	// distance zero: proximity = 1/(d+epsilon).
	ProximityEpsilon float64

	// ImpactRadiusKm is the distance beyond which a POI has zero
	// valuation influence.
	ImpactRadiusKm float64

	// ImpactCeiling caps the summed fractional impact.
	ImpactCeiling float64

	// TopImpacts is how many POIs the impact view surfaces for the UI.
	TopImpacts int

	// RatingThresholds are the shared score boundaries for the label
	// buckets, strictly descending.
	RatingThresholds []float64
}

// Dimension keys for the grouped presentation view.
const (
	DimensionTransit    = "transit"
	DimensionEducation  = "education"
	DimensionShopping   = "shopping"
	DimensionHealthcare = "healthcare"
	DimensionRecreation = "recreation"
	DimensionOverall    = "overall"
)

// DefaultConfig returns the canonical scoring configuration. The blend
// weights and the valuation base impacts are two distinct parameters of
// the same formula set and are deliberately kept in a single table.
func DefaultConfig() *Config {
	return &Config{
		Categories: map[model.Category]CategoryParams{
			model.CategoryTransitStation: {Weight: 0.15, BaseImpact: 0.12, Dimension: DimensionTransit, Label: "Transit Stations"},
			model.CategoryMetroStation:   {Weight: 0.18, BaseImpact: 0.15, Dimension: DimensionTransit, Label: "Metro Stations"},
			model.CategoryRailwayStation: {Weight: 0.15, BaseImpact: 0.10, Dimension: DimensionTransit, Label: "Railway Stations"},
			model.CategorySchool:         {Weight: 0.12, BaseImpact: 0.08, Dimension: DimensionEducation, Label: "Schools"},
			model.CategoryCollege:        {Weight: 0.10, BaseImpact: 0.05, Dimension: DimensionEducation, Label: "Colleges"},
			model.CategoryShoppingMall:   {Weight: 0.12, BaseImpact: 0.07, Dimension: DimensionShopping, Label: "Shopping Malls"},
			model.CategorySupermarket:    {Weight: 0.08, BaseImpact: 0.04, Dimension: DimensionShopping, Label: "Supermarkets"},
			model.CategoryHospital:       {Weight: 0.08, BaseImpact: 0.06, Dimension: DimensionHealthcare, Label: "Hospitals"},
			model.CategoryPark:           {Weight: 0.07, BaseImpact: 0.05, Dimension: DimensionRecreation, Label: "Parks"},
		},
		FallbackWeight:   0.05,
		Scale:            40,
		ProximityEpsilon: 0.1,
		ImpactRadiusKm:   2,
		ImpactCeiling:    0.25,
		TopImpacts:       5,
		RatingThresholds: []float64{85, 70, 50, 30, 10},
	}
}

// Validate checks that a Config is internally consistent.
func Validate(c *Config) error {
	var errs []string

	if len(c.Categories) == 0 {
		errs = append(errs, "category table must not be empty")
	}
	for cat, p := range c.Categories {
		if p.Weight < 0 || p.Weight > 1 {
			errs = append(errs, fmt.Sprintf("%s: weight must be in [0,1]", cat))
		}
		if p.BaseImpact < 0 || p.BaseImpact > 1 {
			errs = append(errs, fmt.Sprintf("%s: base_impact must be in [0,1]", cat))
		}
		if p.Dimension == "" {
			errs = append(errs, fmt.Sprintf("%s: dimension must be set", cat))
		}
	}

	if c.FallbackWeight < 0 || c.FallbackWeight > 1 {
		errs = append(errs, "fallback_weight must be in [0,1]")
	}
	if c.Scale <= 0 {
		errs = append(errs, "scale must be > 0")
	}
	if c.ProximityEpsilon <= 0 {
		errs = append(errs, "proximity_epsilon must be > 0")
	}
	if c.ImpactRadiusKm <= 0 {
		errs = append(errs, "impact_radius_km must be > 0")
	}
	if c.ImpactCeiling <= 0 || c.ImpactCeiling > 1 {
		errs = append(errs, "impact_ceiling must be in (0,1]")
	}
	if c.TopImpacts <= 0 {
		errs = append(errs, "top_impacts must be > 0")
	}

	if len(c.RatingThresholds) == 0 {
		errs = append(errs, "rating thresholds must not be empty")
	}
	for i := 1; i < len(c.RatingThresholds); i++ {
		if c.RatingThresholds[i] >= c.RatingThresholds[i-1] {
			errs = append(errs, "rating thresholds must be strictly descending")
			break
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("scoring: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// weightFor returns the blend weight for a category, falling back for
// categories missing from the table.
func (c *Config) weightFor(cat model.Category) float64 {
	if p, ok := c.Categories[cat]; ok {
		return p.Weight
	}
	return c.FallbackWeight
}

// baseImpactFor returns the valuation base impact for a category. Unknown
// categories carry no valuation influence.
func (c *Config) baseImpactFor(cat model.Category) float64 {
	if p, ok := c.Categories[cat]; ok {
		return p.BaseImpact
	}
	return 0
}
