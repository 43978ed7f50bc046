package cmd

import (
	"fmt"

	"github.com/KaramelBytes/trendloom-cli/internal/etl"
	"github.com/spf13/cobra"
)

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Merge the raw sources into the processed time-series and geo tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := etl.New(etl.Config{
			Sources: etl.Sources{
				Workout:     cfg.WorkoutFile,
				Keywords:    cfg.KeywordsFile,
				WorkoutGeo:  cfg.WorkoutGeoFile,
				KeywordsGeo: cfg.KeywordsGeoFile,
			},
			TimeSeriesOut: cfg.TimeSeriesFile,
			GeoOut:        cfg.GeoFile,
		}, logger)
		res, err := p.Run()
		if err != nil {
			return fail("Data preparation failed", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d months to %s\n", res.TimeSeriesRows, res.TimeSeriesPath)
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d countries to %s\n", res.GeoRows, res.GeoPath)
		if res.DroppedDuplicates > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "⚠ Dropped %d duplicate source rows\n", res.DroppedDuplicates)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(prepareCmd)
}
