package poistore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/locscore/internal/model"
)

func newTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "cache.db")
	cache, err := NewCache(dsn, ttl)
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })

	require.NoError(t, cache.Migrate(context.Background()))
	return cache
}

func TestCacheMissOnEmptyDatabase(t *testing.T) {
	cache := newTestCache(t, time.Hour)

	pois, ok, err := cache.Get(context.Background(), "no-such-key")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, pois)
}

func TestCacheSetGetRoundTrip(t *testing.T) {
	cache := newTestCache(t, time.Hour)
	ctx := context.Background()

	want := []model.POI{
		{
			Name:       "Andheri Railway Station",
			Categories: []model.Category{model.CategoryRailwayStation},
			Location:   model.Coordinate{Lat: 19.1197, Lng: 72.8464},
			DistanceKm: 0.42,
		},
	}
	key := cacheKey(andheri, 2, nil)

	require.NoError(t, cache.Set(ctx, key, want))

	got, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestCacheSetReplacesSnapshot(t *testing.T) {
	cache := newTestCache(t, time.Hour)
	ctx := context.Background()
	key := cacheKey(andheri, 2, nil)

	require.NoError(t, cache.Set(ctx, key, []model.POI{{Name: "old"}}))
	require.NoError(t, cache.Set(ctx, key, []model.POI{{Name: "new"}}))

	got, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].Name)
}

func TestCacheExpiry(t *testing.T) {
	cache := newTestCache(t, time.Millisecond)
	ctx := context.Background()
	key := cacheKey(andheri, 2, nil)

	require.NoError(t, cache.Set(ctx, key, []model.POI{{Name: "ephemeral"}}))
	time.Sleep(10 * time.Millisecond)

	_, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheDeleteExpired(t *testing.T) {
	cache := newTestCache(t, time.Millisecond)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", []model.POI{{Name: "a"}}))
	require.NoError(t, cache.Set(ctx, "b", []model.POI{{Name: "b"}}))
	time.Sleep(10 * time.Millisecond)

	n, err := cache.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = cache.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCacheKeyStability(t *testing.T) {
	base := cacheKey(andheri, 2, []model.Category{model.CategoryPark, model.CategorySchool})

	// Category order must not matter.
	reordered := cacheKey(andheri, 2, []model.Category{model.CategorySchool, model.CategoryPark})
	assert.Equal(t, base, reordered)

	// Coordinates within rounding distance share a key.
	nearby := model.Coordinate{Lat: andheri.Lat + 0.00001, Lng: andheri.Lng}
	assert.Equal(t, base, cacheKey(nearby, 2, []model.Category{model.CategoryPark, model.CategorySchool}))

	// Radius and categories are part of the key.
	assert.NotEqual(t, base, cacheKey(andheri, 3, []model.Category{model.CategoryPark, model.CategorySchool}))
	assert.NotEqual(t, base, cacheKey(andheri, 2, []model.Category{model.CategoryPark}))
	assert.NotEqual(t, base, cacheKey(andheri, 2, nil))
}
