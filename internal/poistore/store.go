// Package poistore supplies candidate POIs for a center point and radius,
// from an external places provider when configured and from the embedded
// offline catalog otherwise. Both sources normalize into the same POI
// shape; callers cannot observe a semantic difference.
package poistore

import (
	"context"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/locscore/internal/geo"
	"github.com/sells-group/locscore/internal/model"
)

// Provider is a single POI backend. Nearby returns candidates with
// distances already computed; it may over-return (beyond the radius or
// outside the wanted categories) — the store normalizes.
type Provider interface {
	Name() string
	Available() bool
	Nearby(ctx context.Context, center model.Coordinate, radiusKm float64, categories []model.Category) ([]model.POI, error)
}

// Store resolves POI lookups with total fallback: a call is answered
// entirely by the external provider or entirely by the offline catalog,
// never a mix.
type Store struct {
	provider Provider
	fallback Provider
	cache    *Cache
	timeout  time.Duration
}

// Option configures the Store.
type Option func(*Store)

// WithProvider sets the external places provider tried before the catalog.
func WithProvider(p Provider) Option {
	return func(s *Store) {
		s.provider = p
	}
}

// WithCache enables the read-through snapshot cache.
func WithCache(c *Cache) Option {
	return func(s *Store) {
		s.cache = c
	}
}

// WithTimeout bounds each external provider attempt.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New creates a Store. The fallback provider is required; the external
// provider and cache are optional.
func New(fallback Provider, opts ...Option) *Store {
	s := &Store{
		fallback: fallback,
		timeout:  10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindNearby returns POIs within radiusKm of center, filtered to the
// wanted categories (empty = all), sorted ascending by distance and
// deduplicated by name keeping the nearest occurrence. It fails only for
// invalid caller input; provider failures degrade to the catalog.
func (s *Store) FindNearby(ctx context.Context, center model.Coordinate, radiusKm float64, wanted []model.Category) ([]model.POI, error) {
	if !center.Valid() {
		return nil, eris.Wrapf(ErrInvalidInput, "center (%.4f, %.4f) out of range", center.Lat, center.Lng)
	}
	if radiusKm <= 0 {
		return nil, eris.Wrapf(ErrInvalidInput, "radius %.2f must be positive", radiusKm)
	}

	if s.cache != nil {
		if pois, ok := s.cacheLookup(ctx, center, radiusKm, wanted); ok {
			return pois, nil
		}
	}

	pois, source := s.lookup(ctx, center, radiusKm, wanted)
	result := normalize(pois, radiusKm, wanted)

	zap.L().Debug("poi lookup",
		zap.String("source", source),
		zap.Float64("radius_km", radiusKm),
		zap.Int("count", len(result)),
	)

	if s.cache != nil {
		s.cacheStore(ctx, center, radiusKm, wanted, result)
	}
	return result, nil
}

// lookup picks one source for the whole call. Any provider error — network
// failure, bad status, missing key, timeout — switches entirely to the
// catalog; partial provider results are discarded.
func (s *Store) lookup(ctx context.Context, center model.Coordinate, radiusKm float64, wanted []model.Category) ([]model.POI, string) {
	if s.provider != nil && s.provider.Available() {
		attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
		pois, err := s.provider.Nearby(attemptCtx, center, radiusKm, wanted)
		cancel()
		if err == nil {
			return pois, s.provider.Name()
		}
		zap.L().Warn("places provider unavailable, falling back to catalog",
			zap.String("provider", s.provider.Name()),
			zap.Error(err),
		)
	}

	pois, err := s.fallback.Nearby(ctx, center, radiusKm, wanted)
	if err != nil {
		// The catalog is embedded and cannot fail at runtime unless the
		// build is broken; treat it as an empty result either way.
		zap.L().Error("offline catalog lookup failed", zap.Error(err))
		return nil, s.fallback.Name()
	}
	return pois, s.fallback.Name()
}

func (s *Store) cacheLookup(ctx context.Context, center model.Coordinate, radiusKm float64, wanted []model.Category) ([]model.POI, bool) {
	pois, ok, err := s.cache.Get(ctx, cacheKey(center, radiusKm, wanted))
	if err != nil {
		zap.L().Debug("poi cache read failed", zap.Error(err))
		return nil, false
	}
	return pois, ok
}

func (s *Store) cacheStore(ctx context.Context, center model.Coordinate, radiusKm float64, wanted []model.Category, pois []model.POI) {
	if err := s.cache.Set(ctx, cacheKey(center, radiusKm, wanted), pois); err != nil {
		zap.L().Debug("poi cache write failed", zap.Error(err))
	}
}

// normalize applies the source-independent result contract: radius filter,
// any-tag category filter, ascending distance sort, first-wins name dedupe.
func normalize(pois []model.POI, radiusKm float64, wanted []model.Category) []model.POI {
	out := make([]model.POI, 0, len(pois))
	for _, p := range pois {
		if p.DistanceKm > radiusKm {
			continue
		}
		if len(wanted) > 0 && !matchesAny(p, wanted) {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})

	seen := make(map[string]struct{}, len(out))
	deduped := out[:0]
	for _, p := range out {
		if _, dup := seen[p.Name]; dup {
			continue
		}
		seen[p.Name] = struct{}{}
		deduped = append(deduped, p)
	}
	return deduped
}

func matchesAny(p model.POI, wanted []model.Category) bool {
	for _, c := range wanted {
		if p.HasCategory(c) {
			return true
		}
	}
	return false
}

// CatalogProvider serves lookups from a fixed in-memory POI set.
type CatalogProvider struct {
	pois []model.POI
}

// NewCatalogProvider wraps a fixed POI set, typically catalog.Load().
func NewCatalogProvider(pois []model.POI) *CatalogProvider {
	return &CatalogProvider{pois: pois}
}

// Name implements Provider.
func (c *CatalogProvider) Name() string { return "catalog" }

// Available implements Provider.
func (c *CatalogProvider) Available() bool { return true }

// Nearby implements Provider. It computes distances against the center
// and returns every catalog entry; the store applies radius and category
// filtering.
func (c *CatalogProvider) Nearby(_ context.Context, center model.Coordinate, _ float64, _ []model.Category) ([]model.POI, error) {
	out := make([]model.POI, len(c.pois))
	for i, p := range c.pois {
		p.DistanceKm = geo.Distance(center, p.Location)
		out[i] = p
	}
	return out, nil
}
