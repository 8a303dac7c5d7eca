package scoring

import (
	"math"
	"sort"

	"github.com/sells-group/locscore/internal/model"
)

// ValuationImpact computes the per-POI price impact view against a base
// price. Each POI inside the impact radius contributes its category's base
// impact scaled by a linear distance decay; the summed fraction is capped
// at the configured ceiling. Impacts come back sorted descending, with the
// top N duplicated into TopImpacts for the UI.
func (c *Config) ValuationImpact(pois []model.POI, basePrice float64) model.ImpactBreakdown {
	impacts := make([]model.POIImpact, 0, len(pois))
	var sum float64

	for _, p := range pois {
		base := c.baseImpactFor(p.PrimaryCategory())
		if base == 0 || p.DistanceKm > c.ImpactRadiusKm {
			continue
		}
		decay := math.Max(0, 1-p.DistanceKm/c.ImpactRadiusKm)
		fraction := base * decay
		sum += fraction
		impacts = append(impacts, model.POIImpact{
			POI:              p,
			FractionalImpact: fraction,
			ValueImpact:      basePrice * fraction,
		})
	}

	sort.SliceStable(impacts, func(i, j int) bool {
		return impacts[i].FractionalImpact > impacts[j].FractionalImpact
	})

	top := impacts
	if len(top) > c.TopImpacts {
		top = top[:c.TopImpacts]
	}

	total := math.Min(sum, c.ImpactCeiling)
	return model.ImpactBreakdown{
		Impacts:          impacts,
		TopImpacts:       top,
		TotalImpact:      total,
		TotalValueImpact: basePrice * total,
		BasePrice:        basePrice,
	}
}
