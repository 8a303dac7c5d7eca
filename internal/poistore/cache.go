package poistore

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/locscore/internal/model"
)

// Cache is an optional SQLite read-through cache of lookup snapshots.
// Entries are immutable: a hit returns exactly the normalized result that
// was stored, until the TTL expires.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
}

// NewCache opens a SQLite cache at the given DSN and configures WAL mode.
func NewCache(dsn string, ttl time.Duration) (*Cache, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "cache: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "cache: exec %s", pragma)
		}
	}
	return &Cache{db: db, ttl: ttl}, nil
}

const cacheMigration = `
CREATE TABLE IF NOT EXISTS poi_cache (
	id         TEXT PRIMARY KEY,
	lookup_key TEXT NOT NULL UNIQUE,
	pois       TEXT NOT NULL,
	cached_at  DATETIME NOT NULL,
	expires_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_poi_cache_expires_at ON poi_cache(expires_at);
`

// Migrate creates the cache schema.
func (c *Cache) Migrate(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, cacheMigration)
	return eris.Wrap(err, "cache: migrate")
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached snapshot for key if present and unexpired.
func (c *Cache) Get(ctx context.Context, key string) ([]model.POI, bool, error) {
	var poisJSON string
	err := c.db.QueryRowContext(ctx,
		`SELECT pois FROM poi_cache WHERE lookup_key = ? AND expires_at > ?`,
		key, time.Now().UTC(),
	).Scan(&poisJSON)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, eris.Wrap(err, "cache: get")
	}

	var pois []model.POI
	if err := json.Unmarshal([]byte(poisJSON), &pois); err != nil {
		return nil, false, eris.Wrap(err, "cache: unmarshal snapshot")
	}
	return pois, true, nil
}

// Set stores a snapshot for key, replacing any previous entry.
func (c *Cache) Set(ctx context.Context, key string, pois []model.POI) error {
	poisJSON, err := json.Marshal(pois)
	if err != nil {
		return eris.Wrap(err, "cache: marshal snapshot")
	}

	now := time.Now().UTC()
	_, err = c.db.ExecContext(ctx, `
		INSERT INTO poi_cache (id, lookup_key, pois, cached_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (lookup_key) DO UPDATE SET
			pois = excluded.pois,
			cached_at = excluded.cached_at,
			expires_at = excluded.expires_at`,
		uuid.New().String(), key, string(poisJSON), now, now.Add(c.ttl),
	)
	return eris.Wrap(err, "cache: set")
}

// DeleteExpired removes expired entries and reports how many were deleted.
func (c *Cache) DeleteExpired(ctx context.Context) (int, error) {
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM poi_cache WHERE expires_at <= ?`, time.Now().UTC(),
	)
	if err != nil {
		return 0, eris.Wrap(err, "cache: delete expired")
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// cacheKey derives a stable key from the lookup parameters. Coordinates
// round to 4 decimals (~11 m) so nearby repeat queries share a snapshot.
func cacheKey(center model.Coordinate, radiusKm float64, wanted []model.Category) string {
	cats := make([]string, len(wanted))
	for i, c := range wanted {
		cats[i] = string(c)
	}
	sort.Strings(cats)

	raw := fmt.Sprintf("%.4f|%.4f|%.2f|%s", center.Lat, center.Lng, radiusKm, strings.Join(cats, ","))
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
