package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/locscore/internal/model"
)

var (
	impactLat       float64
	impactLng       float64
	impactRadius    float64
	impactBasePrice float64
)

var impactCmd = &cobra.Command{
	Use:   "impact",
	Short: "Explain how nearby POIs move a property's base price",
	RunE: func(cmd *cobra.Command, args []string) error {
		if impactBasePrice <= 0 {
			return eris.New("--base-price must be positive")
		}

		eng, err := initEngine(cfg)
		if err != nil {
			return err
		}
		defer eng.Close()

		radius := impactRadius
		if radius == 0 {
			radius = eng.Scoring.ImpactRadiusKm
		}

		pois, err := eng.Store.FindNearby(cmd.Context(),
			model.Coordinate{Lat: impactLat, Lng: impactLng}, radius, nil)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(eng.Scoring.ValuationImpact(pois, impactBasePrice))
	},
}

func init() {
	impactCmd.Flags().Float64Var(&impactLat, "lat", 0, "center latitude (required)")
	impactCmd.Flags().Float64Var(&impactLng, "lng", 0, "center longitude (required)")
	impactCmd.Flags().Float64Var(&impactRadius, "radius", 0, "impact radius in km (default from config)")
	impactCmd.Flags().Float64Var(&impactBasePrice, "base-price", 0, "base property price (required)")
	_ = impactCmd.MarkFlagRequired("lat")
	_ = impactCmd.MarkFlagRequired("lng")
	_ = impactCmd.MarkFlagRequired("base-price")
	rootCmd.AddCommand(impactCmd)
}
