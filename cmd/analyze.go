package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/trendloom-cli/internal/analysis"
	cfgpkg "github.com/KaramelBytes/trendloom-cli/internal/config"
	"github.com/KaramelBytes/trendloom-cli/internal/chart"
	"github.com/KaramelBytes/trendloom-cli/internal/dataset"
	"github.com/KaramelBytes/trendloom-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	anaSelector   = analysis.SelectAll
	anaOutputPath string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run analysis routines over the processed tables",
	Long: `Run one analysis routine, or all of them in order, over the processed tables.
Each routine logs its findings and saves one chart to the images directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := analysisOptions(cfg)
		if err != nil {
			return fail("Invalid analysis configuration", err)
		}
		r := analysis.NewRunner(opt, chart.NewPlotRenderer(cfg.PlotWidth, cfg.PlotHeight), logger, cmd.OutOrStdout())
		f, err := r.Run(anaSelector)
		if err != nil {
			return err
		}
		if anaOutputPath != "" {
			if err := utils.SafeWriteFile(anaOutputPath, []byte(f.Markdown())); err != nil {
				return fail("Failed to write findings", &dataset.WriteError{Path: anaOutputPath, Err: err})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote findings to %s\n", anaOutputPath)
		}
		return nil
	},
}

func analysisOptions(c *cfgpkg.Global) (analysis.Options, error) {
	opt := analysis.DefaultOptions()
	opt.TimeSeriesPath = c.TimeSeriesFile
	opt.GeoPath = c.GeoFile
	opt.ImagesDir = c.ImagesDir
	start, err := dataset.ParseMonth(c.HighlightStart)
	if err != nil {
		return opt, fmt.Errorf("highlight_start: %w", err)
	}
	end, err := dataset.ParseMonth(c.HighlightEnd)
	if err != nil {
		return opt, fmt.Errorf("highlight_end: %w", err)
	}
	if end.Before(start) {
		return opt, fmt.Errorf("highlight_end %s is before highlight_start %s", c.HighlightEnd, c.HighlightStart)
	}
	opt.HighlightStart, opt.HighlightEnd = start, end
	if len(c.CompareCountries) != 2 {
		return opt, fmt.Errorf("compare_countries needs exactly two countries, got %d", len(c.CompareCountries))
	}
	opt.Countries = [2]string{c.CompareCountries[0], c.CompareCountries[1]}
	return opt, nil
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().VarP(&anaSelector, "analysis", "a", "analysis to run: "+strings.Join(analysis.Choices(), "|"))
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write findings (Markdown)")
}
