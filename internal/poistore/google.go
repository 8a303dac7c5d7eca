package poistore

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/locscore/internal/geo"
	"github.com/sells-group/locscore/internal/model"
	"github.com/sells-group/locscore/pkg/places"
)

// providerTypes maps the engine's category vocabulary to the provider's.
// Categories missing here pass through unchanged.
var providerTypes = map[model.Category]string{
	model.CategoryRailwayStation: "train_station",
	model.CategoryMetroStation:   "subway_station",
	model.CategoryCollege:        "university",
}

// GoogleProvider resolves POIs through the Places Nearby Search API, one
// request per wanted category.
type GoogleProvider struct {
	client      places.Client
	concurrency int
}

// NewGoogleProvider wraps a places client.
func NewGoogleProvider(client places.Client) *GoogleProvider {
	return &GoogleProvider{client: client, concurrency: 4}
}

// Name implements Provider.
func (g *GoogleProvider) Name() string { return "google_places" }

// Available implements Provider.
func (g *GoogleProvider) Available() bool { return g.client != nil }

// Nearby implements Provider. Any per-category failure fails the whole
// attempt so the store never mixes provider and catalog results.
func (g *GoogleProvider) Nearby(ctx context.Context, center model.Coordinate, radiusKm float64, categories []model.Category) ([]model.POI, error) {
	if len(categories) == 0 {
		categories = model.AllCategories()
	}
	radiusMeters := int(radiusKm * 1000)

	var mu sync.Mutex
	var merged []model.POI

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)

	for _, cat := range categories {
		cat := cat
		eg.Go(func() error {
			placeType := string(cat)
			if mapped, ok := providerTypes[cat]; ok {
				placeType = mapped
			}

			raw, err := g.client.NearbySearch(gCtx, center.Lat, center.Lng, radiusMeters, placeType)
			if err != nil {
				return eris.Wrapf(err, "category %s", cat)
			}

			pois := make([]model.POI, 0, len(raw))
			for _, r := range raw {
				pois = append(pois, mapRawPlace(r, cat, placeType, center))
			}

			mu.Lock()
			merged = append(merged, pois...)
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, eris.Wrap(err, "poistore: google nearby search")
	}
	return merged, nil
}

// mapRawPlace normalizes a provider result into the engine's POI shape:
// the queried engine category becomes the primary tag, followed by the
// provider's remaining native tags.
func mapRawPlace(r places.RawPlace, cat model.Category, placeType string, center model.Coordinate) model.POI {
	tags := []model.Category{cat}
	for _, t := range r.Types {
		if t == placeType || model.Category(t) == cat {
			continue
		}
		tags = append(tags, model.Category(t))
	}

	location := model.Coordinate{Lat: r.Lat, Lng: r.Lng}
	return model.POI{
		Name:       r.Name,
		Categories: tags,
		Location:   location,
		DistanceKm: geo.Distance(center, location),
		Rating:     r.Rating,
		Address:    r.Vicinity,
	}
}
