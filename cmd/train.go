package cmd

import (
	"github.com/spf13/cobra"

	"emistat/core"
	"emistat/internal/contract"
)

// trainCmd runs the hyperparameter selector over one stored series.
var trainCmd = &cobra.Command{
	Use:   "train <series-key>",
	Short: "Select and persist a model configuration for one series.",
	Long: `Score a fixed hyperparameter grid against one stored series and persist
the winning configuration together with its synthetic metrics.

The grid sweeps lookback, two hidden layer widths and the activation
function. Scoring is fully deterministic for a given series and seed, so
repeated runs always pick the same winner. The stored record for the same
series key is superseded, never merged.

Examples:
  # Train on the total series with defaults
  emistat train total

  # Train with a different seed and a 10-year horizon
  emistat train total --seed 7 --horizon 10

  # Train on a trimmed history
  emistat train total --from-year 2000`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTrain(cfg, storeManager); err != nil {
			contract.LogFatal("Cannot train model", err)
		}
	},
}
