package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/locscore/internal/catalog"
	"github.com/sells-group/locscore/internal/config"
	"github.com/sells-group/locscore/internal/poistore"
	"github.com/sells-group/locscore/internal/scoring"
	"github.com/sells-group/locscore/pkg/places"
)

// engine bundles the wired-up store and scoring config for commands.
type engine struct {
	Store   *poistore.Store
	Scoring *scoring.Config
	cache   *poistore.Cache
}

// Close releases the cache, if one was opened.
func (e *engine) Close() {
	if e.cache != nil {
		_ = e.cache.Close()
	}
}

// initEngine builds the POI store (catalog fallback, optional places
// provider and cache) and the validated scoring config.
func initEngine(cfg *config.Config) (*engine, error) {
	pois, err := catalog.Load()
	if err != nil {
		return nil, eris.Wrap(err, "load offline catalog")
	}

	scoringCfg := scoring.DefaultConfig()
	if cfg.Scoring.ImpactCeiling > 0 {
		scoringCfg.ImpactCeiling = cfg.Scoring.ImpactCeiling
	}
	if cfg.Scoring.ImpactRadiusKm > 0 {
		scoringCfg.ImpactRadiusKm = cfg.Scoring.ImpactRadiusKm
	}
	if cfg.Scoring.TopImpacts > 0 {
		scoringCfg.TopImpacts = cfg.Scoring.TopImpacts
	}
	if err := scoring.Validate(scoringCfg); err != nil {
		return nil, err
	}

	opts := []poistore.Option{
		poistore.WithTimeout(time.Duration(cfg.Places.TimeoutSecs) * time.Second),
	}

	if cfg.Places.APIKey != "" {
		client := places.NewClient(cfg.Places.APIKey,
			places.WithBaseURL(cfg.Places.BaseURL),
			places.WithRateLimit(cfg.Places.RateLimitRPS),
			places.WithTimeout(time.Duration(cfg.Places.TimeoutSecs)*time.Second),
		)
		opts = append(opts, poistore.WithProvider(poistore.NewGoogleProvider(client)))
		zap.L().Info("places provider configured")
	} else {
		zap.L().Info("no places provider configured, using offline catalog")
	}

	e := &engine{Scoring: scoringCfg}

	if cfg.Store.DSN != "" {
		cache, err := poistore.NewCache(cfg.Store.DSN, time.Duration(cfg.Store.CacheTTLHours)*time.Hour)
		if err != nil {
			return nil, eris.Wrap(err, "open lookup cache")
		}
		if err := cache.Migrate(context.Background()); err != nil {
			cache.Close()
			return nil, err
		}
		e.cache = cache
		opts = append(opts, poistore.WithCache(cache))
	}

	e.Store = poistore.New(poistore.NewCatalogProvider(pois), opts...)
	return e, nil
}
