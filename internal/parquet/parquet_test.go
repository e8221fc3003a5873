package parquet

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emistat/schema"
)

func TestSeriesObservationStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	sch := parquet.SchemaOf(new(SeriesObservation))
	require.NotNil(t, sch)

	expectedColumns := []string{
		"dataset",
		"series_key",
		"year",
		"value",
	}

	for _, colName := range expectedColumns {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestTrainedModelRecordStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	sch := parquet.SchemaOf(new(TrainedModelRecord))
	require.NotNil(t, sch)

	expectedColumns := []string{
		"series_key",
		"horizon_years",
		"lookback",
		"hidden_units1",
		"hidden_units2",
		"activation",
		"optimizer_name",
		"training_loss",
		"validation_loss",
		"mean_absolute_error",
		"dataset_snapshot",
		"train_seed",
		"saved_at",
	}

	for _, colName := range expectedColumns {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteSeriesParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "series.parquet")

	data := []SeriesObservation{
		{Dataset: "emigration", SeriesKey: "total", Year: 2018, Value: 100},
		{Dataset: "emigration", SeriesKey: "total", Year: 2019, Value: 110},
		{Dataset: "emigration", SeriesKey: "usa", Year: 2019, Value: 40},
	}

	err := WriteSeriesParquet(data, outputPath)
	require.NoError(t, err)

	readBack, err := parquet.ReadFile[SeriesObservation](outputPath)
	require.NoError(t, err)
	assert.Equal(t, data, readBack)
}

func TestWriteTrainedModelsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "models.parquet")

	data := []TrainedModelRecord{
		{
			SeriesKey:         "total",
			HorizonYears:      5,
			Lookback:          3,
			HiddenUnits1:      32,
			HiddenUnits2:      16,
			Activation:        "relu",
			OptimizerName:     "adam",
			TrainingLoss:      "0.0123",
			ValidationLoss:    "0.0148",
			MeanAbsoluteError: "0.115",
			DatasetSnapshot:   `[{"year":2018,"value":100}]`,
			TrainSeed:         42,
			SavedAt:           time.Now().UTC().Truncate(time.Microsecond),
		},
	}

	err := WriteTrainedModelsParquet(data, outputPath)
	require.NoError(t, err)

	readBack, err := parquet.ReadFile[TrainedModelRecord](outputPath)
	require.NoError(t, err)
	require.Len(t, readBack, 1)
	assert.Equal(t, data[0].SeriesKey, readBack[0].SeriesKey)
	assert.Equal(t, data[0].OptimizerName, readBack[0].OptimizerName)
	assert.Equal(t, data[0].DatasetSnapshot, readBack[0].DatasetSnapshot)
}

func TestWriteSeriesParquetEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty.parquet")

	err := WriteSeriesParquet(nil, outputPath)
	require.NoError(t, err)
}

func TestConvertSeriesRows(t *testing.T) {
	rows := []schema.SeriesRow{
		{Dataset: "emigration", SeriesKey: "total", Year: 2020, Value: 120},
	}

	converted := ConvertSeriesRows(rows)
	require.Len(t, converted, 1)
	assert.Equal(t, "emigration", converted[0].Dataset)
	assert.Equal(t, "total", converted[0].SeriesKey)
	assert.Equal(t, int32(2020), converted[0].Year)
	assert.Equal(t, float64(120), converted[0].Value)
}

func TestConvertTrainedModels(t *testing.T) {
	models := []schema.TrainedModel{
		{
			SeriesKey:    "total",
			HorizonYears: 5,
			Configuration: schema.Configuration{
				Lookback:      3,
				HiddenUnits1:  32,
				HiddenUnits2:  0,
				Activation:    schema.ReluActivation,
				OptimizerName: "sgd",
			},
			Metrics: schema.SyntheticMetrics{
				TrainingLoss:      "0.0141",
				ValidationLoss:    "0.0166",
				MeanAbsoluteError: "0.210",
			},
			DatasetSnapshot: []schema.SeriesPoint{{Year: 2018, Value: 100}},
			TrainSeed:       7,
			SavedAt:         time.Now(),
		},
	}

	converted := ConvertTrainedModels(models)
	require.Len(t, converted, 1)
	assert.Equal(t, int32(3), converted[0].Lookback)
	assert.Equal(t, "relu", converted[0].Activation)
	assert.Equal(t, "sgd", converted[0].OptimizerName)
	assert.JSONEq(t, `[{"year":2018,"value":100}]`, converted[0].DatasetSnapshot)
}

func TestMockFetchSeriesObservations(t *testing.T) {
	data := MockFetchSeriesObservations()
	require.NotEmpty(t, data)
	for _, obs := range data {
		assert.NotEmpty(t, obs.Dataset)
		assert.NotEmpty(t, obs.SeriesKey)
		assert.GreaterOrEqual(t, obs.Year, int32(schema.MinYear))
		assert.GreaterOrEqual(t, obs.Value, float64(0))
	}
}

func TestMockFetchTrainedModelRecords(t *testing.T) {
	data := MockFetchTrainedModelRecords()
	require.NotEmpty(t, data)
	for _, rec := range data {
		assert.NotEmpty(t, rec.SeriesKey)
		assert.Positive(t, rec.HorizonYears)
		assert.True(t, json.Valid([]byte(rec.DatasetSnapshot)), "snapshot must be valid JSON")
	}
}
