// Package parquet exports emistat store data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"emistat/schema"
)

// SeriesObservation represents a single yearly observation.
// This struct maps to the emistat_series database table.
type SeriesObservation struct {
	// Dataset is the dataset the observation belongs to
	Dataset string `parquet:"dataset,snappy"`

	// SeriesKey identifies the series within the dataset
	SeriesKey string `parquet:"series_key,snappy"`

	// Year is the calendar year of the observation
	Year int32 `parquet:"year,snappy"`

	// Value is the observed count for the year
	Value float64 `parquet:"value,snappy"`
}

// TrainedModelRecord represents a stored training result.
// This struct maps to the emistat_trained_models database table.
type TrainedModelRecord struct {
	// SeriesKey identifies the series the model was trained on
	SeriesKey string `parquet:"series_key,snappy"`

	// HorizonYears is the forecast horizon the model was trained for
	HorizonYears int32 `parquet:"horizon_years,snappy"`

	// Lookback is the trailing window length of the winning configuration
	Lookback int32 `parquet:"lookback,snappy"`

	// HiddenUnits1 and HiddenUnits2 are the layer widths of the winning configuration
	HiddenUnits1 int32 `parquet:"hidden_units1,snappy"`
	HiddenUnits2 int32 `parquet:"hidden_units2,snappy"`

	// Activation is the activation function of the winning configuration
	Activation string `parquet:"activation,snappy"`

	// OptimizerName is the optimizer label derived from the configuration
	OptimizerName string `parquet:"optimizer_name,snappy"`

	// TrainingLoss, ValidationLoss and MeanAbsoluteError are the formatted metrics
	TrainingLoss      string `parquet:"training_loss,snappy"`
	ValidationLoss    string `parquet:"validation_loss,snappy"`
	MeanAbsoluteError string `parquet:"mean_absolute_error,snappy"`

	// DatasetSnapshot is the JSON-encoded history the model was trained on
	DatasetSnapshot string `parquet:"dataset_snapshot,snappy"`

	// TrainSeed is the seed used during selection
	TrainSeed int64 `parquet:"train_seed,snappy"`

	// SavedAt is when the model was stored (TIMESTAMP with nanosecond precision)
	SavedAt time.Time `parquet:"saved_at,snappy"`
}

// WriteSeriesParquet writes a slice of SeriesObservation structs to a Parquet file.
func WriteSeriesParquet(data []SeriesObservation, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the SeriesObservation struct tags
	writer := parquet.NewGenericWriter[SeriesObservation](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteTrainedModelsParquet writes a slice of TrainedModelRecord structs to a Parquet file.
func WriteTrainedModelsParquet(data []TrainedModelRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the TrainedModelRecord struct tags
	writer := parquet.NewGenericWriter[TrainedModelRecord](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchSeriesObservations generates sample observation data for demonstration.
func MockFetchSeriesObservations() []SeriesObservation {
	return []SeriesObservation{
		{Dataset: "emigration", SeriesKey: "total", Year: 2018, Value: 64500},
		{Dataset: "emigration", SeriesKey: "total", Year: 2019, Value: 68100},
		{Dataset: "emigration", SeriesKey: "total", Year: 2020, Value: 32300},
		{Dataset: "emigration", SeriesKey: "usa", Year: 2019, Value: 22900},
		{Dataset: "emigration", SeriesKey: "usa", Year: 2020, Value: 11800},
	}
}

// MockFetchTrainedModelRecords generates sample model data for demonstration.
func MockFetchTrainedModelRecords() []TrainedModelRecord {
	now := time.Now()

	return []TrainedModelRecord{
		{
			SeriesKey:         "total",
			HorizonYears:      5,
			Lookback:          2,
			HiddenUnits1:      16,
			HiddenUnits2:      0,
			Activation:        string(schema.ReluActivation),
			OptimizerName:     "rmsprop",
			TrainingLoss:      "0.0066",
			ValidationLoss:    "0.0106",
			MeanAbsoluteError: "0.123",
			DatasetSnapshot:   `[{"year":2018,"value":64500},{"year":2019,"value":68100},{"year":2020,"value":32300}]`,
			TrainSeed:         0,
			SavedAt:           now.Add(-2 * time.Hour),
		},
		{
			SeriesKey:         "usa",
			HorizonYears:      10,
			Lookback:          4,
			HiddenUnits1:      32,
			HiddenUnits2:      8,
			Activation:        string(schema.TanhActivation),
			OptimizerName:     "adam",
			TrainingLoss:      "0.0134",
			ValidationLoss:    "0.0165",
			MeanAbsoluteError: "0.180",
			DatasetSnapshot:   `[{"year":2019,"value":22900},{"year":2020,"value":11800}]`,
			TrainSeed:         42,
			SavedAt:           now.Add(-30 * time.Minute),
		},
	}
}

// ConvertSeriesRows converts schema.SeriesRow to SeriesObservation for Parquet export.
func ConvertSeriesRows(rows []schema.SeriesRow) []SeriesObservation {
	result := make([]SeriesObservation, len(rows))
	for i, row := range rows {
		result[i] = SeriesObservation{
			Dataset:   row.Dataset,
			SeriesKey: row.SeriesKey,
			Year:      int32(row.Year),
			Value:     row.Value,
		}
	}
	return result
}

// ConvertTrainedModels converts schema.TrainedModel to TrainedModelRecord for Parquet export.
func ConvertTrainedModels(models []schema.TrainedModel) []TrainedModelRecord {
	result := make([]TrainedModelRecord, len(models))
	for i, model := range models {
		snapshot, err := json.Marshal(model.DatasetSnapshot)
		if err != nil {
			snapshot = []byte("[]")
		}
		result[i] = TrainedModelRecord{
			SeriesKey:         model.SeriesKey,
			HorizonYears:      int32(model.HorizonYears),
			Lookback:          int32(model.Configuration.Lookback),
			HiddenUnits1:      int32(model.Configuration.HiddenUnits1),
			HiddenUnits2:      int32(model.Configuration.HiddenUnits2),
			Activation:        string(model.Configuration.Activation),
			OptimizerName:     model.Configuration.OptimizerName,
			TrainingLoss:      model.Metrics.TrainingLoss,
			ValidationLoss:    model.Metrics.ValidationLoss,
			MeanAbsoluteError: model.Metrics.MeanAbsoluteError,
			DatasetSnapshot:   string(snapshot),
			TrainSeed:         int64(model.TrainSeed),
			SavedAt:           model.SavedAt,
		}
	}
	return result
}
