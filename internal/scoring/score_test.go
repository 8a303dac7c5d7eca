package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/locscore/internal/model"
)

func poiAt(name string, cat model.Category, distanceKm float64) model.POI {
	return model.POI{
		Name:       name,
		Categories: []model.Category{cat},
		DistanceKm: distanceKm,
	}
}

func TestCategoryScoreEmpty(t *testing.T) {
	cfg := DefaultConfig()
	assert.Zero(t, cfg.CategoryScore(nil))
	assert.Zero(t, cfg.CategoryScore([]model.POI{}))
}

func TestCategoryScoreSinglePOI(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name       string
		distanceKm float64
		want       float64
	}{
		// 1/(0+0.1) = 10, scaled by 40, clamped to 100.
		{"at the doorstep", 0, 100},
		// 1/(0.5+0.1) = 1.667, *40 = 67.
		{"half a km", 0.5, 67},
		// 1/(1.9+0.1) = 0.5, *40 = 20.
		{"near radius edge", 1.9, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cfg.CategoryScore([]model.POI{poiAt("one", model.CategoryRailwayStation, tt.distanceKm)})
			assert.InDelta(t, tt.want, got, 0.5)
		})
	}
}

func TestCategoryScoreAdditionalPOINeverLowers(t *testing.T) {
	cfg := DefaultConfig()

	one := []model.POI{poiAt("a", model.CategorySchool, 0.8)}
	two := []model.POI{
		poiAt("a", model.CategorySchool, 0.8),
		poiAt("b", model.CategorySchool, 0.8),
	}

	assert.GreaterOrEqual(t, cfg.CategoryScore(two), cfg.CategoryScore(one))
}

func TestCategoryScoreMonotonicInDistance(t *testing.T) {
	cfg := DefaultConfig()

	near := []model.POI{
		poiAt("a", model.CategoryPark, 0.3),
		poiAt("b", model.CategoryPark, 0.6),
	}
	far := []model.POI{
		poiAt("a", model.CategoryPark, 0.9),
		poiAt("b", model.CategoryPark, 1.5),
	}

	assert.GreaterOrEqual(t, cfg.CategoryScore(near), cfg.CategoryScore(far))
}

func TestCategoryScoreUnsortedInput(t *testing.T) {
	cfg := DefaultConfig()

	sorted := []model.POI{
		poiAt("near", model.CategoryHospital, 0.2),
		poiAt("far", model.CategoryHospital, 1.8),
	}
	shuffled := []model.POI{sorted[1], sorted[0]}

	assert.Equal(t, cfg.CategoryScore(sorted), cfg.CategoryScore(shuffled))
}

func TestCategoryScoreClamped(t *testing.T) {
	cfg := DefaultConfig()

	var pois []model.POI
	for i := 0; i < 50; i++ {
		pois = append(pois, poiAt("p", model.CategoryMetroStation, 0))
	}
	assert.LessOrEqual(t, cfg.CategoryScore(pois), 100.0)
}

func TestOverallScoreWeightedBlend(t *testing.T) {
	cfg := DefaultConfig()

	// (80*0.18 + 40*0.07) / (0.18+0.07) = 68.8, rounded to 69.
	got := cfg.OverallScore(map[model.Category]float64{
		model.CategoryMetroStation: 80,
		model.CategoryPark:         40,
	})
	assert.InDelta(t, 69, got, 0.001)
}

func TestOverallScoreAbsentCategoriesExcluded(t *testing.T) {
	cfg := DefaultConfig()

	// A single present category should pass through regardless of how
	// many other categories exist in the weight table.
	got := cfg.OverallScore(map[model.Category]float64{
		model.CategorySchool: 55,
	})
	assert.InDelta(t, 55, got, 0.001)
}

func TestOverallScoreUnknownCategoryUsesFallbackWeight(t *testing.T) {
	cfg := DefaultConfig()

	// Present categories: school (0.12) and an unmapped one (0.05).
	// (60*0.12 + 20*0.05) / 0.17 = 48.2, rounded to 48.
	got := cfg.OverallScore(map[model.Category]float64{
		model.CategorySchool: 60,
		"temple":             20,
	})
	assert.InDelta(t, 48, got, 0.001)
}

func TestOverallScoreEmpty(t *testing.T) {
	cfg := DefaultConfig()
	assert.Zero(t, cfg.OverallScore(nil))
	assert.Zero(t, cfg.OverallScore(map[model.Category]float64{}))
}

func TestPremiumBounds(t *testing.T) {
	cfg := DefaultConfig()

	assert.InDelta(t, 0.90, cfg.Premium(0), 0.001)
	assert.InDelta(t, 1.15, cfg.Premium(100), 0.001)

	prev := 0.0
	for score := 0.0; score <= 100; score++ {
		p := cfg.Premium(score)
		assert.GreaterOrEqual(t, p, 0.90)
		assert.LessOrEqual(t, p, 1.15)
		assert.GreaterOrEqual(t, p, prev, "premium must be non-decreasing")
		prev = p
	}
}

func TestPremiumRoundsToTwoDecimals(t *testing.T) {
	cfg := DefaultConfig()
	assert.InDelta(t, 1.03, cfg.Premium(50), 0.0001)
	assert.InDelta(t, 1.01, cfg.Premium(45), 0.0001)
}

func TestResultDoorstepStation(t *testing.T) {
	cfg := DefaultConfig()

	res := cfg.Result([]model.POI{
		poiAt("Andheri Railway Station", model.CategoryRailwayStation, 0),
	})

	assert.InDelta(t, 100, res.PerCategory[model.CategoryRailwayStation].Score, 0.001)
	assert.InDelta(t, 100, res.OverallScore, 0.001)
	assert.Equal(t, "Excellent", res.OverallRating)
	assert.InDelta(t, 1.15, res.PremiumFactor, 0.001)
	assert.Equal(t, "Excellent", res.Dimensions[DimensionTransit].Rating)
}

func TestResultEmptyPOISet(t *testing.T) {
	cfg := DefaultConfig()

	res := cfg.Result(nil)

	assert.Empty(t, res.PerCategory)
	assert.Zero(t, res.OverallScore)
	assert.Equal(t, "Poor", res.OverallRating)
	assert.InDelta(t, 0.90, res.PremiumFactor, 0.001)

	for _, dim := range []string{
		DimensionTransit, DimensionEducation, DimensionShopping,
		DimensionHealthcare, DimensionRecreation,
	} {
		assert.Zero(t, res.Dimensions[dim].Score)
	}
	assert.Equal(t, "Very Poor", res.Dimensions[DimensionTransit].Rating)
	assert.Equal(t, "Very Limited", res.Dimensions[DimensionRecreation].Rating)
}

func TestResultZeroScoreCategoryNotInvented(t *testing.T) {
	cfg := DefaultConfig()

	// Only parks present: no transit key should appear in PerCategory,
	// and the overall blend must not count transit as a zero.
	res := cfg.Result([]model.POI{
		poiAt("Joggers Park", model.CategoryPark, 0.5),
	})

	_, hasTransit := res.PerCategory[model.CategoryMetroStation]
	assert.False(t, hasTransit)
	assert.InDelta(t, res.PerCategory[model.CategoryPark].Score, res.OverallScore, 0.001)
}

func TestResultDimensionMergesCategories(t *testing.T) {
	cfg := DefaultConfig()

	res := cfg.Result([]model.POI{
		poiAt("Andheri Railway Station", model.CategoryRailwayStation, 0.2),
		poiAt("Andheri Metro Station", model.CategoryMetroStation, 0.3),
	})

	// The transit dimension scores both POIs as one set, so it must be
	// at least each individual category score's floor.
	transit := res.Dimensions[DimensionTransit].Score
	assert.Greater(t, transit, 0.0)
	assert.GreaterOrEqual(t, transit, res.PerCategory[model.CategoryMetroStation].Score)
}
