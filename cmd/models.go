package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"emistat/core"
	"emistat/internal/contract"
	"emistat/internal/iostore"
)

// modelsCmd lists stored trained-model records.
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List stored trained-model records.",
	Long: `List the trained-model records in the store, ordered by series key.

Each record shows the winning configuration, its synthetic metrics, the
stored horizon and when it was saved.

Examples:
  # List all stored models
  emistat models

  # Export models as CSV
  emistat models --output csv --output-file models.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteModels(cfg, storeManager); err != nil {
			contract.LogFatal("Cannot list models", err)
		}
	},
}

// modelsDeleteCmd removes one stored trained-model record.
var modelsDeleteCmd = &cobra.Command{
	Use:   "delete <series-key>",
	Short: "Remove the stored trained model for one series key.",
	Long: `Delete the trained-model record for a series key. Deleting a key with
no stored record is not an error.

Examples:
  # Remove the stored model for the total series
  emistat models delete total`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := iostore.Manager.GetModelStore().DeleteModel(args[0]); err != nil {
			contract.LogFatal("Failed to delete model", err)
		}
		fmt.Printf("Deleted trained model for %q (if it existed).\n", args[0])
	},
}
