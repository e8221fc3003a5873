package cmd

import (
	"github.com/spf13/cobra"

	"emistat/core"
	"emistat/internal/contract"
)

// forecastCmd extrapolates one stored series.
var forecastCmd = &cobra.Command{
	Use:   "forecast <series-key>",
	Short: "Extrapolate one stored series into future years.",
	Long: `Extrapolate one stored series and print the merged historical+forecast
view. Forecasts are deterministic: the same series, configuration and seed
always produce the same predictions.

By default the stored trained model for the series key supplies the
configuration; pass --train to select a configuration ad hoc without
touching the store.

Examples:
  # Forecast with the stored model
  emistat forecast total

  # Forecast 10 years ahead
  emistat forecast total --horizon 10

  # Train ad hoc and forecast in one go
  emistat forecast total --train --seed 7`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteForecast(cfg, storeManager); err != nil {
			contract.LogFatal("Cannot forecast series", err)
		}
	},
}
