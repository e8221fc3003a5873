package iostore

import (
	"errors"
	"fmt"

	"emistat/internal/parquet"
)

// ExecuteStoreExport exports all stored series rows and trained models to
// Parquet files derived from the given output prefix.
func ExecuteStoreExport(outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	seriesStore := Manager.GetSeriesStore()
	modelStore := Manager.GetModelStore()

	status, err := seriesStore.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	if status.SeriesRows == 0 {
		return errors.New("no series data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total series rows: %d\n", status.SeriesRows)

	rows, err := seriesStore.GetRows("")
	if err != nil {
		return fmt.Errorf("failed to retrieve series rows: %w", err)
	}

	models, err := modelStore.ListModels()
	if err != nil {
		return fmt.Errorf("failed to retrieve trained models: %w", err)
	}

	seriesFile := outputFile + ".series.parquet"
	if err := parquet.WriteSeriesParquet(parquet.ConvertSeriesRows(rows), seriesFile); err != nil {
		return fmt.Errorf("failed to write series rows: %w", err)
	}
	fmt.Printf("Exported %d series rows to: %s\n", len(rows), seriesFile)

	modelsFile := outputFile + ".trained_models.parquet"
	if err := parquet.WriteTrainedModelsParquet(parquet.ConvertTrainedModels(models), modelsFile); err != nil {
		return fmt.Errorf("failed to write trained models: %w", err)
	}
	fmt.Printf("Exported %d trained models to: %s\n", len(models), modelsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
