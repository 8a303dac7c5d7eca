// Package api exposes the scoring engine over HTTP.
package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/locscore/internal/model"
	"github.com/sells-group/locscore/internal/poistore"
	"github.com/sells-group/locscore/internal/scoring"
)

// Server holds the handler dependencies.
type Server struct {
	store           *poistore.Store
	scoring         *scoring.Config
	defaultRadiusKm float64
	allowedOrigins  []string
}

// Option configures the Server.
type Option func(*Server)

// WithDefaultRadius sets the radius used when the query omits one.
func WithDefaultRadius(km float64) Option {
	return func(s *Server) {
		if km > 0 {
			s.defaultRadiusKm = km
		}
	}
}

// WithAllowedOrigins sets the CORS origin allowlist.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.allowedOrigins = origins
		}
	}
}

// NewServer creates the API server.
func NewServer(store *poistore.Store, cfg *scoring.Config, opts ...Option) *Server {
	s := &Server{
		store:           store,
		scoring:         cfg,
		defaultRadiusKm: 2,
		allowedOrigins:  []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/pois", s.handlePOIs)
		r.Get("/factors", s.handleFactors)
		r.Post("/impact", s.handleImpact)
	})

	return r
}

// handlePOIs serves GET /api/pois?lat=&lng=&radius=&types=.
func (s *Server) handlePOIs(w http.ResponseWriter, r *http.Request) {
	center, radius, ok := s.parseQuery(w, r)
	if !ok {
		return
	}

	pois, err := s.store.FindNearby(r.Context(), center, radius, parseTypes(r.URL.Query().Get("types")))
	if err != nil {
		s.storeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count": len(pois),
		"pois":  pois,
	})
}

// handleFactors serves GET /api/factors?lat=&lng=&radius=.
func (s *Server) handleFactors(w http.ResponseWriter, r *http.Request) {
	center, radius, ok := s.parseQuery(w, r)
	if !ok {
		return
	}

	pois, err := s.store.FindNearby(r.Context(), center, radius, nil)
	if err != nil {
		s.storeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.scoring.Result(pois))
}

type impactRequest struct {
	POIs           []model.POI `json:"pois"`
	BasePrice      float64     `json:"base_price"`
	ImpactRadiusKm float64     `json:"impact_radius_km"`
}

// handleImpact serves POST /api/impact with a POI list and base price.
func (s *Server) handleImpact(w http.ResponseWriter, r *http.Request) {
	var req impactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "invalid request body")
		return
	}
	if req.BasePrice <= 0 {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "base_price must be positive")
		return
	}
	if req.ImpactRadiusKm < 0 {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "impact_radius_km must not be negative")
		return
	}

	cfg := s.scoring
	if req.ImpactRadiusKm > 0 && req.ImpactRadiusKm != cfg.ImpactRadiusKm {
		// Shallow copy; the category table is shared read-only.
		override := *cfg
		override.ImpactRadiusKm = req.ImpactRadiusKm
		cfg = &override
	}

	writeJSON(w, http.StatusOK, cfg.ValuationImpact(req.POIs, req.BasePrice))
}

// parseQuery extracts and validates lat, lng and radius.
func (s *Server) parseQuery(w http.ResponseWriter, r *http.Request) (model.Coordinate, float64, bool) {
	q := r.URL.Query()

	lat, err := parseFloatParam(q.Get("lat"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "lat is required and must be numeric")
		return model.Coordinate{}, 0, false
	}
	lng, err := parseFloatParam(q.Get("lng"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "lng is required and must be numeric")
		return model.Coordinate{}, 0, false
	}

	center := model.Coordinate{Lat: lat, Lng: lng}
	if !center.Valid() {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "lat/lng out of range")
		return model.Coordinate{}, 0, false
	}

	radius := s.defaultRadiusKm
	if raw := q.Get("radius"); raw != "" {
		radius, err = parseFloatParam(raw)
		if err != nil || radius <= 0 {
			writeError(w, http.StatusBadRequest, codeInvalidInput, "radius must be a positive number")
			return model.Coordinate{}, 0, false
		}
	}
	return center, radius, true
}

// storeError maps store failures to responses. Only invalid input reaches
// clients; anything else is logged and answered with an empty result so
// provider-side trouble never becomes a 5xx.
func (s *Server) storeError(w http.ResponseWriter, err error) {
	if eris.Is(err, poistore.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, codeInvalidInput, err.Error())
		return
	}
	zap.L().Error("poi lookup failed", zap.Error(err))
	writeJSON(w, http.StatusOK, map[string]any{
		"count": 0,
		"pois":  []model.POI{},
	})
}

func parseFloatParam(raw string) (float64, error) {
	if raw == "" {
		return 0, eris.New("missing parameter")
	}
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}

func parseTypes(raw string) []model.Category {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	cats := make([]model.Category, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			cats = append(cats, model.Category(p))
		}
	}
	return cats
}
