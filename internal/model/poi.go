// Package model holds the shared value types for the scoring engine.
package model

// Category identifies a POI category in the engine's own vocabulary.
type Category string

const (
	CategoryTransitStation Category = "transit_station"
	CategoryMetroStation   Category = "metro_station"
	CategoryRailwayStation Category = "railway_station"
	CategorySchool         Category = "school"
	CategoryCollege        Category = "college"
	CategoryShoppingMall   Category = "shopping_mall"
	CategorySupermarket    Category = "supermarket"
	CategoryHospital       Category = "hospital"
	CategoryPark           Category = "park"
)

// AllCategories lists every category the engine scores, in blend order.
func AllCategories() []Category {
	return []Category{
		CategoryTransitStation,
		CategoryMetroStation,
		CategoryRailwayStation,
		CategorySchool,
		CategoryCollege,
		CategoryShoppingMall,
		CategorySupermarket,
		CategoryHospital,
		CategoryPark,
	}
}

// Coordinate is a WGS84 point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Valid reports whether the coordinate is a real point on the globe.
// NaN compares false on both bounds, so it fails here too.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// POI is a point of interest near a query center. Identity within one
// result set is by Name; the first (primary) category tag drives scoring.
type POI struct {
	Name       string     `json:"name" yaml:"name"`
	Categories []Category `json:"types" yaml:"types"`
	Location   Coordinate `json:"location" yaml:"location"`
	DistanceKm float64    `json:"distance_km" yaml:"-"`
	Rating     float64    `json:"rating,omitempty" yaml:"rating,omitempty"`
	Address    string     `json:"address,omitempty" yaml:"address,omitempty"`
}

// PrimaryCategory returns the POI's first category tag, or "" when untagged.
func (p POI) PrimaryCategory() Category {
	if len(p.Categories) == 0 {
		return ""
	}
	return p.Categories[0]
}

// HasCategory reports whether any of the POI's tags matches c.
func (p POI) HasCategory(c Category) bool {
	for _, tag := range p.Categories {
		if tag == c {
			return true
		}
	}
	return false
}

// CategoryScore pairs a 0-100 accessibility score with its display rating.
type CategoryScore struct {
	Score  float64 `json:"score"`
	Rating string  `json:"rating"`
}

// AccessibilityResult is the full factor set for one query point. It is a
// pure function of the POI set and the static scoring config; never mutated
// after construction and never persisted.
type AccessibilityResult struct {
	PerCategory   map[Category]CategoryScore `json:"per_category"`
	Dimensions    map[string]CategoryScore   `json:"dimensions"`
	OverallScore  float64                    `json:"overall_score"`
	OverallRating string                     `json:"overall_rating"`
	PremiumFactor float64                    `json:"premium_factor"`
}

// POIImpact is the per-POI slice of the valuation impact view.
type POIImpact struct {
	POI              POI     `json:"poi"`
	FractionalImpact float64 `json:"fractional_impact"`
	ValueImpact      float64 `json:"value_impact"`
}

// ImpactBreakdown explains how nearby POIs move a base valuation.
// Impacts are sorted by FractionalImpact descending; TopImpacts holds the
// first N of the same list for UI rendering.
type ImpactBreakdown struct {
	Impacts          []POIImpact `json:"impacts"`
	TopImpacts       []POIImpact `json:"top_impacts"`
	TotalImpact      float64     `json:"total_impact"`
	TotalValueImpact float64     `json:"total_value_impact"`
	BasePrice        float64     `json:"base_price"`
}
