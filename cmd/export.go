package cmd

import (
	"github.com/spf13/cobra"

	"emistat/internal/contract"
	"emistat/internal/iostore"
)

// exportCmd exports stored data to Parquet files.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored data to Parquet files",
	Long: `Export all stored observation rows and trained-model records to
Parquet files for analysis in external tools.

Creates two files from the --output-file prefix:
  <prefix>.series.parquet         - all observation rows
  <prefix>.trained_models.parquet - all trained-model records

Examples:
  # Export everything under the emistat prefix
  emistat export --output-file emistat

  # Export a MySQL-backed store
  EMISTAT_STORE_BACKEND=mysql EMISTAT_STORE_DB_CONNECT="..." emistat export --output-file emistat`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.ExecuteStoreExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export data", err)
		}
	},
}
