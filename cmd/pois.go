package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/locscore/internal/model"
)

var (
	poisLat    float64
	poisLng    float64
	poisRadius float64
	poisTypes  string
)

var poisCmd = &cobra.Command{
	Use:   "pois",
	Short: "List points of interest near a coordinate",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := initEngine(cfg)
		if err != nil {
			return err
		}
		defer eng.Close()

		radius := poisRadius
		if radius == 0 {
			radius = cfg.Scoring.DefaultRadiusKm
		}

		pois, err := eng.Store.FindNearby(cmd.Context(),
			model.Coordinate{Lat: poisLat, Lng: poisLng}, radius, splitTypes(poisTypes))
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"count": len(pois),
			"pois":  pois,
		})
	},
}

func splitTypes(raw string) []model.Category {
	if raw == "" {
		return nil
	}
	var cats []model.Category
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			cats = append(cats, model.Category(p))
		}
	}
	return cats
}

func init() {
	poisCmd.Flags().Float64Var(&poisLat, "lat", 0, "center latitude (required)")
	poisCmd.Flags().Float64Var(&poisLng, "lng", 0, "center longitude (required)")
	poisCmd.Flags().Float64Var(&poisRadius, "radius", 0, "search radius in km (default from config)")
	poisCmd.Flags().StringVar(&poisTypes, "types", "", "comma-separated category filter (default all)")
	_ = poisCmd.MarkFlagRequired("lat")
	_ = poisCmd.MarkFlagRequired("lng")
	rootCmd.AddCommand(poisCmd)
}
