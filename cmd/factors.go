package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/locscore/internal/model"
)

var (
	factorsLat    float64
	factorsLng    float64
	factorsRadius float64
)

var factorsCmd = &cobra.Command{
	Use:   "factors",
	Short: "Compute accessibility factors for a coordinate",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := initEngine(cfg)
		if err != nil {
			return err
		}
		defer eng.Close()

		radius := factorsRadius
		if radius == 0 {
			radius = cfg.Scoring.DefaultRadiusKm
		}

		pois, err := eng.Store.FindNearby(cmd.Context(),
			model.Coordinate{Lat: factorsLat, Lng: factorsLng}, radius, nil)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(eng.Scoring.Result(pois))
	},
}

func init() {
	factorsCmd.Flags().Float64Var(&factorsLat, "lat", 0, "center latitude (required)")
	factorsCmd.Flags().Float64Var(&factorsLng, "lng", 0, "center longitude (required)")
	factorsCmd.Flags().Float64Var(&factorsRadius, "radius", 0, "search radius in km (default from config)")
	_ = factorsCmd.MarkFlagRequired("lat")
	_ = factorsCmd.MarkFlagRequired("lng")
	rootCmd.AddCommand(factorsCmd)
}
