package scoring

import (
	"sort"

	"github.com/sells-group/locscore/internal/model"
)

// GroupByCategory buckets POIs by their primary category tag. Grouping
// only; no filtering. Untagged POIs land in the "" bucket.
func GroupByCategory(pois []model.POI) map[model.Category][]model.POI {
	buckets := make(map[model.Category][]model.POI)
	for _, p := range pois {
		key := p.PrimaryCategory()
		buckets[key] = append(buckets[key], p)
	}
	return buckets
}

// sortByDistance returns a copy of pois sorted ascending by distance.
// Rank-based diminishing returns depend on this ordering.
func sortByDistance(pois []model.POI) []model.POI {
	out := make([]model.POI, len(pois))
	copy(out, pois)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})
	return out
}
