package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cobra"

	"github.com/twpayne/go-terrain/blockarea"
)

var errInvalidBound = errors.New("bound must be minLon,minLat,maxLon,maxLat")

var blockAreaCmd = &cobra.Command{
	Use:   "blockarea",
	Short: "Rasterize a block area",
	Long: `Rasterize the polygons of a GeoJSON feature collection into a block area
mask and print the number of blocked cells. If --lat and --lon are given, also
print whether that point is blocked.

Examples:
  terrain blockarea --geojson area.json --bound 11,49,12,50 --cols 1000 --rows 1000
  terrain blockarea --geojson area.json --bound 11,49,12,50 --lat 49.5 --lon 11.5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		geoJSONPath, _ := cmd.Flags().GetString("geojson")
		bound, err := parseBound(getConfigString(cmd, "bound", "TERRAIN_BOUND", ""))
		if err != nil {
			return err
		}
		cols := getConfigInt(cmd, "cols", "TERRAIN_COLS", 1000)
		rows := getConfigInt(cmd, "rows", "TERRAIN_ROWS", 1000)
		if cols <= 0 || rows <= 0 {
			return errors.New("cols and rows must be positive")
		}

		data, err := os.ReadFile(geoJSONPath)
		if err != nil {
			return err
		}
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return fmt.Errorf("%s: %w", geoJSONPath, err)
		}

		b := blockarea.New(bound, cols, rows)
		if err := b.AddFeatureCollection(fc); err != nil {
			return fmt.Errorf("%s: %w", geoJSONPath, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "blocked cells: %d of %d\n", b.BlockedCells(), cols*rows)

		if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon") {
			lat, _ := cmd.Flags().GetFloat64("lat")
			lon, _ := cmd.Flags().GetFloat64("lon")
			fmt.Fprintf(cmd.OutOrStdout(), "%f,%f blocked: %t\n", lat, lon, b.Contains(orb.Point{lon, lat}))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(blockAreaCmd)

	blockAreaCmd.Flags().String("geojson", "", "GeoJSON feature collection of polygons (required)")
	_ = blockAreaCmd.MarkFlagRequired("geojson")
	blockAreaCmd.Flags().String("bound", "", "Mask extent as minLon,minLat,maxLon,maxLat")
	blockAreaCmd.Flags().Int("cols", 1000, "Number of mask columns")
	blockAreaCmd.Flags().Int("rows", 1000, "Number of mask rows")
	blockAreaCmd.Flags().Float64("lat", 0, "Latitude of a point to test")
	blockAreaCmd.Flags().Float64("lon", 0, "Longitude of a point to test")
}

// parseBound parses minLon,minLat,maxLon,maxLat.
func parseBound(s string) (orb.Bound, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 4 {
		return orb.Bound{}, errInvalidBound
	}
	values := make([]float64, len(fields))
	for i, field := range fields {
		value, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return orb.Bound{}, fmt.Errorf("%w: %w", errInvalidBound, err)
		}
		values[i] = value
	}
	if values[0] >= values[2] || values[1] >= values[3] {
		return orb.Bound{}, errInvalidBound
	}
	return orb.Bound{
		Min: orb.Point{values[0], values[1]},
		Max: orb.Point{values[2], values[3]},
	}, nil
}
