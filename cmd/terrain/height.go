package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/twpayne/go-terrain"
)

var heightCmd = &cobra.Command{
	Use:   "height",
	Short: "Print the terrain height at a location",
	Long: `Print the terrain height at a location from SRTM .hgt tiles.

Examples:
  terrain height --hgt-dir ./srtm --lat 49.5 --lon 11.5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lat, _ := cmd.Flags().GetFloat64("lat")
		lon, _ := cmd.Flags().GetFloat64("lon")
		if lat < -90 || lat > 90 {
			return errors.New("latitude must be between -90 and 90")
		}
		if lon < -180 || lon > 180 {
			return errors.New("longitude must be between -180 and 180")
		}

		hgtDir := getConfigString(cmd, "hgt-dir", "TERRAIN_HGT_DIR", ".")
		cacheSize := getConfigInt(cmd, "cache-size", "TERRAIN_CACHE_SIZE", 32)

		srtm, err := terrain.NewSRTM(os.DirFS(hgtDir), terrain.WithCacheSize(cacheSize))
		if err != nil {
			return err
		}
		height, err := srtm.Height(cmd.Context(), lat, lon)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), height)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(heightCmd)

	heightCmd.Flags().Float64("lat", 0, "Latitude (required)")
	heightCmd.Flags().Float64("lon", 0, "Longitude (required)")
	_ = heightCmd.MarkFlagRequired("lat")
	_ = heightCmd.MarkFlagRequired("lon")
	heightCmd.Flags().String("hgt-dir", ".", "Directory containing SRTM .hgt tiles")
	heightCmd.Flags().Int("cache-size", 32, "Number of tiles to keep in memory")
}
