package cmd

import (
	"github.com/spf13/cobra"

	"emistat/core"
	"emistat/internal/contract"
)

// chartCmd reduces stored observations to chart-ready aggregations.
var chartCmd = &cobra.Command{
	Use:   "chart [series-key]",
	Short: "Reduce stored observations to one chart aggregation.",
	Long: `Reduce stored observations to chart-ready rows.

Supported chart kinds:
  yearly  - totals by year across series (line/area/bar charts)
  share   - per-key share of a single year (pie/donut charts)
  summary - per-key descriptive statistics (radar charts)

Examples:
  # Totals by year for the whole dataset
  emistat chart

  # Per-destination share of 2020
  emistat chart --chart share --share-year 2020

  # Descriptive statistics per series
  emistat chart --chart summary

  # Chart one series only, as JSON
  emistat chart total --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteChart(cfg, storeManager); err != nil {
			contract.LogFatal("Cannot build chart", err)
		}
	},
}
