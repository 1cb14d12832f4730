package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/twpayne/go-terrain"
)

var rootCmd = &cobra.Command{
	Use:   "terrain",
	Short: "Terrain heights and block area masks",
	Long: `terrain answers height queries from SRTM tiles and rasterizes block
areas from GeoJSON polygons.

Configuration can be set via TERRAIN_* environment variables or flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if getConfigBool(cmd, "verbose", "TERRAIN_VERBOSE", false) {
			terrain.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")
}
