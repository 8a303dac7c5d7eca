package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/locscore/internal/model"
)

func TestValuationImpactSingleMetro(t *testing.T) {
	cfg := DefaultConfig()

	// Metro base impact 0.15, at 0.5 km with a 2 km radius the decay is
	// 0.75, so the fraction is 0.1125 and the rupee impact 1,125,000.
	b := cfg.ValuationImpact([]model.POI{
		poiAt("Andheri Metro Station", model.CategoryMetroStation, 0.5),
	}, 10_000_000)

	require.Len(t, b.Impacts, 1)
	assert.InDelta(t, 0.1125, b.Impacts[0].FractionalImpact, 1e-9)
	assert.InDelta(t, 1_125_000, b.Impacts[0].ValueImpact, 0.01)
	assert.InDelta(t, 0.1125, b.TotalImpact, 1e-9)
	assert.InDelta(t, 1_125_000, b.TotalValueImpact, 0.01)
	assert.InDelta(t, 10_000_000, b.BasePrice, 0.01)
}

func TestValuationImpactBeyondRadiusExcluded(t *testing.T) {
	cfg := DefaultConfig()

	b := cfg.ValuationImpact([]model.POI{
		poiAt("far school", model.CategorySchool, 2.5),
	}, 5_000_000)

	assert.Empty(t, b.Impacts)
	assert.Zero(t, b.TotalImpact)
	assert.Zero(t, b.TotalValueImpact)
}

func TestValuationImpactAtRadiusEdgeIsZero(t *testing.T) {
	cfg := DefaultConfig()

	b := cfg.ValuationImpact([]model.POI{
		poiAt("edge park", model.CategoryPark, 2.0),
	}, 1_000_000)

	require.Len(t, b.Impacts, 1)
	assert.Zero(t, b.Impacts[0].FractionalImpact)
	assert.Zero(t, b.TotalImpact)
}

func TestValuationImpactUnknownCategorySkipped(t *testing.T) {
	cfg := DefaultConfig()

	b := cfg.ValuationImpact([]model.POI{
		poiAt("temple", "temple", 0.3),
	}, 1_000_000)

	assert.Empty(t, b.Impacts)
}

func TestValuationImpactCeiling(t *testing.T) {
	cfg := DefaultConfig()

	// Five metros at the doorstep sum to 0.75, far over the 0.25 cap.
	var pois []model.POI
	for i := 0; i < 5; i++ {
		pois = append(pois, poiAt("metro", model.CategoryMetroStation, 0))
	}
	b := cfg.ValuationImpact(pois, 10_000_000)

	assert.InDelta(t, cfg.ImpactCeiling, b.TotalImpact, 1e-9)
	assert.InDelta(t, 10_000_000*cfg.ImpactCeiling, b.TotalValueImpact, 0.01)

	// Per-POI entries keep their raw fractions; only the total is capped.
	for _, imp := range b.Impacts {
		assert.InDelta(t, 0.15, imp.FractionalImpact, 1e-9)
	}
}

func TestValuationImpactSortedAndTopN(t *testing.T) {
	cfg := DefaultConfig()

	pois := []model.POI{
		poiAt("supermarket", model.CategorySupermarket, 0.2), // 0.04 * 0.9  = 0.036
		poiAt("metro", model.CategoryMetroStation, 0.4),      // 0.15 * 0.8  = 0.12
		poiAt("school", model.CategorySchool, 0.5),           // 0.08 * 0.75 = 0.06
		poiAt("hospital", model.CategoryHospital, 1.0),       // 0.06 * 0.5  = 0.03
		poiAt("mall", model.CategoryShoppingMall, 0.6),       // 0.07 * 0.7  = 0.049
		poiAt("park", model.CategoryPark, 1.5),               // 0.05 * 0.25 = 0.0125
	}

	b := cfg.ValuationImpact(pois, 1_000_000)

	require.Len(t, b.Impacts, 6)
	for i := 1; i < len(b.Impacts); i++ {
		assert.GreaterOrEqual(t, b.Impacts[i-1].FractionalImpact, b.Impacts[i].FractionalImpact)
	}

	require.Len(t, b.TopImpacts, cfg.TopImpacts)
	assert.Equal(t, "metro", b.TopImpacts[0].POI.Name)
	assert.Equal(t, "school", b.TopImpacts[1].POI.Name)
	assert.Equal(t, "mall", b.TopImpacts[2].POI.Name)
}

func TestValuationImpactEmpty(t *testing.T) {
	cfg := DefaultConfig()

	b := cfg.ValuationImpact(nil, 7_500_000)

	assert.Empty(t, b.Impacts)
	assert.Empty(t, b.TopImpacts)
	assert.Zero(t, b.TotalImpact)
	assert.InDelta(t, 7_500_000, b.BasePrice, 0.01)
}
