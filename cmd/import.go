package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"emistat/internal/contract"
	"emistat/internal/ingest"
	"emistat/schema"
)

// importCmd loads observations from a CSV or XLSX file into the store.
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load observations from a CSV or XLSX file into the store.",
	Long: `Load yearly observations from a CSV or XLSX file into the store.

Two layouts are accepted:
  year,value            - rows for a single series; pass --key for the key
  series_key,year,value - rows carry their own series key

A leading header row is skipped. Years must fall within 1900-2100 and
values must be non-negative. Existing rows for the same (dataset, key,
year) are overwritten; pass --replace to drop a series before loading.

Examples:
  # Import a single-series CSV
  emistat import totals.csv --key total

  # Import a multi-series workbook
  emistat import destinations.xlsx

  # Reload a series from scratch
  emistat import totals.csv --key total --replace`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		// The positional arg is the file path here, not a series key.
		cfg.SeriesKey = input.Key
		if err := runImport(args[0], viper.GetBool("replace")); err != nil {
			contract.LogFatal("Cannot import file", err)
		}
	},
}

// runImport parses the file and writes its rows through the series store.
func runImport(path string, replace bool) error {
	defaultKey := cfg.SeriesKey
	if defaultKey == "" {
		defaultKey = "total"
	}

	rows, err := ingest.LoadFile(path, cfg.Dataset, defaultKey)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no observation rows found in %s", path)
	}

	store := storeManager.GetSeriesStore()
	if replace {
		for seriesKey, points := range groupPoints(rows) {
			if err := store.ReplaceSeries(cfg.Dataset, seriesKey, points); err != nil {
				return err
			}
		}
	} else {
		if err := store.InsertRows(rows); err != nil {
			return err
		}
	}

	fmt.Printf("Imported %d rows into dataset %q.\n", len(rows), cfg.Dataset)
	return nil
}

// groupPoints splits flat rows into per-key point slices.
func groupPoints(rows []schema.SeriesRow) map[string][]schema.SeriesPoint {
	grouped := make(map[string][]schema.SeriesPoint)
	for _, row := range rows {
		grouped[row.SeriesKey] = append(grouped[row.SeriesKey], schema.SeriesPoint{Year: row.Year, Value: row.Value})
	}
	return grouped
}
