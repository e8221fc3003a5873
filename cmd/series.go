package cmd

import (
	"github.com/spf13/cobra"

	"emistat/core"
	"emistat/internal/contract"
)

// seriesCmd lists stored yearly observations.
var seriesCmd = &cobra.Command{
	Use:   "series [series-key]",
	Short: "List stored yearly emigration observations.",
	Long: `List the stored yearly observations of a dataset, newest series first.

Each row carries its dataset, series key, year and value, plus a trend label
comparing the value against the previous year of the same series.

Examples:
  # List everything in the default dataset
  emistat series

  # List one series
  emistat series total

  # Restrict to a year window
  emistat series total --from-year 2010 --to-year 2020

  # Export rows to CSV for tracking
  emistat series --output csv --output-file rows.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSeries(cfg, storeManager); err != nil {
			contract.LogFatal("Cannot list series", err)
		}
	},
}
