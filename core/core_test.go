package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"emistat/internal/contract"
	"emistat/internal/iostore"
	"emistat/schema"
)

// testConfig returns a validated-looking config for the orchestration tests.
func testConfig(seriesKey string) *contract.Config {
	return &contract.Config{
		Dataset:     "emigration",
		SeriesKey:   seriesKey,
		ResultLimit: contract.DefaultResultLimit,
		Horizon:     contract.DefaultHorizon,
		Chart:       schema.YearlyChart,
	}
}

// mockStores wires a MockStoreManager around fresh series and model mocks.
func mockStores() (*iostore.MockStoreManager, *iostore.MockSeriesStore, *iostore.MockModelStore) {
	seriesStore := &iostore.MockSeriesStore{}
	modelStore := &iostore.MockModelStore{}
	mgr := &iostore.MockStoreManager{}
	mgr.On("GetSeriesStore").Return(seriesStore).Maybe()
	mgr.On("GetModelStore").Return(modelStore).Maybe()
	return mgr, seriesStore, modelStore
}

func tracePoints() []schema.SeriesPoint {
	return []schema.SeriesPoint{
		{Year: 2018, Value: 100},
		{Year: 2019, Value: 110},
		{Year: 2020, Value: 120},
	}
}

func TestGetSeriesResults_LimitTruncation(t *testing.T) {
	mgr, seriesStore, _ := mockStores()
	seriesStore.On("GetRows", "emigration").Return([]schema.SeriesRow{
		{Dataset: "emigration", SeriesKey: "usa", Year: 2018, Value: 100},
		{Dataset: "emigration", SeriesKey: "usa", Year: 2019, Value: 110},
		{Dataset: "emigration", SeriesKey: "usa", Year: 2020, Value: 120},
	}, nil)

	cfg := testConfig("")
	cfg.ResultLimit = 2

	rows, elapsed, err := GetSeriesResults(cfg, mgr)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, 2018, rows[0].Year)
	assert.GreaterOrEqual(t, elapsed, time.Duration(0))
	seriesStore.AssertExpectations(t)
}

func TestGetSeriesResults_StoreError(t *testing.T) {
	mgr, seriesStore, _ := mockStores()
	seriesStore.On("GetRows", "emigration").Return(nil, assert.AnError)

	_, _, err := GetSeriesResults(testConfig(""), mgr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load dataset")
}

func TestGetChartResults_Share(t *testing.T) {
	mgr, seriesStore, _ := mockStores()
	seriesStore.On("GetRows", "emigration").Return([]schema.SeriesRow{
		{Dataset: "emigration", SeriesKey: "usa", Year: 2020, Value: 60},
		{Dataset: "emigration", SeriesKey: "canada", Year: 2020, Value: 40},
		{Dataset: "emigration", SeriesKey: "usa", Year: 2019, Value: 50},
	}, nil)

	cfg := testConfig("")
	cfg.Chart = schema.ShareChart
	cfg.ShareYear = 2020

	result, _, err := GetChartResults(cfg, mgr)
	require.NoError(t, err)
	assert.Equal(t, schema.ShareChart, result.Kind)
	require.Len(t, result.Points, 2)
	assert.Equal(t, schema.ChartPoint{Label: "usa", Value: 60}, result.Points[0])
}

func TestGetSummaryResults(t *testing.T) {
	mgr, seriesStore, _ := mockStores()
	seriesStore.On("GetRows", "emigration").Return([]schema.SeriesRow{
		{Dataset: "emigration", SeriesKey: "usa", Year: 2019, Value: 100},
		{Dataset: "emigration", SeriesKey: "usa", Year: 2020, Value: 120},
	}, nil)

	summaries, _, err := GetSummaryResults(testConfig(""), mgr)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, float64(110), summaries[0].Mean)
}

func TestGetTrainResults_PersistsWinner(t *testing.T) {
	mgr, seriesStore, modelStore := mockStores()
	seriesStore.On("GetSeries", "emigration", "total").Return(tracePoints(), nil)

	var saved schema.TrainedModel
	modelStore.On("SaveModel", mock.AnythingOfType("schema.TrainedModel")).
		Run(func(args mock.Arguments) { saved = args.Get(0).(schema.TrainedModel) }).
		Return(nil)

	model, _, err := GetTrainResults(testConfig("total"), mgr)
	require.NoError(t, err)

	assert.Equal(t, "total", model.SeriesKey)
	assert.Equal(t, 2, model.Configuration.Lookback)
	assert.Equal(t, 16, model.Configuration.HiddenUnits1)
	assert.Equal(t, 0, model.Configuration.HiddenUnits2)
	assert.Equal(t, schema.ReluActivation, model.Configuration.Activation)
	assert.Equal(t, "rmsprop", model.Configuration.OptimizerName)
	assert.Equal(t, "0.0066", model.Metrics.TrainingLoss)
	assert.Equal(t, contract.DefaultHorizon, model.HorizonYears)
	assert.Equal(t, tracePoints(), model.DatasetSnapshot)
	assert.False(t, model.SavedAt.IsZero())

	// The returned model is the one handed to the store.
	assert.Equal(t, model, saved)
	modelStore.AssertExpectations(t)
}

func TestGetTrainResults_MissingKey(t *testing.T) {
	mgr, _, _ := mockStores()
	_, _, err := GetTrainResults(testConfig(""), mgr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "series key is required")
}

func TestGetTrainResults_ShortHistory(t *testing.T) {
	mgr, seriesStore, _ := mockStores()
	seriesStore.On("GetSeries", "emigration", "total").Return([]schema.SeriesPoint{
		{Year: 2020, Value: 100},
	}, nil)

	_, _, err := GetTrainResults(testConfig("total"), mgr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2")
}

func TestGetTrainResults_SaveFailure(t *testing.T) {
	mgr, seriesStore, modelStore := mockStores()
	seriesStore.On("GetSeries", "emigration", "total").Return(tracePoints(), nil)
	modelStore.On("SaveModel", mock.AnythingOfType("schema.TrainedModel")).Return(assert.AnError)

	_, _, err := GetTrainResults(testConfig("total"), mgr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to persist trained model")
}

func TestGetForecastResults_StoredModel(t *testing.T) {
	mgr, seriesStore, modelStore := mockStores()
	seriesStore.On("GetSeries", "emigration", "total").Return(tracePoints(), nil)
	modelStore.On("GetModel", "total").Return(schema.TrainedModel{
		SeriesKey:    "total",
		HorizonYears: 1,
		Configuration: schema.Configuration{
			Lookback:     3,
			HiddenUnits1: 32,
			Activation:   schema.ReluActivation,
		},
		TrainSeed: 0,
	}, true, nil)

	merged, configuration, _, err := GetForecastResults(testConfig("total"), mgr)
	require.NoError(t, err)
	assert.Equal(t, 3, configuration.Lookback)

	// Three historical rows followed by the stored model's one-year horizon.
	require.Len(t, merged, 4)
	last := merged[3]
	assert.Equal(t, 2021, last.Year)
	require.NotNil(t, last.Forecast)
	assert.Nil(t, last.Historical)
	assert.Equal(t, float64(111), *last.Forecast)
}

func TestGetForecastResults_HorizonOverride(t *testing.T) {
	mgr, seriesStore, modelStore := mockStores()
	seriesStore.On("GetSeries", "emigration", "total").Return(tracePoints(), nil)
	modelStore.On("GetModel", "total").Return(schema.TrainedModel{
		SeriesKey:    "total",
		HorizonYears: 1,
		Configuration: schema.Configuration{
			Lookback:   3,
			Activation: schema.ReluActivation,
		},
	}, true, nil)

	cfg := testConfig("total")
	cfg.Horizon = 3 // differs from the default, so it wins over the stored horizon

	merged, _, _, err := GetForecastResults(cfg, mgr)
	require.NoError(t, err)
	require.Len(t, merged, 6)
	assert.Equal(t, 2023, merged[5].Year)
	assert.NotNil(t, merged[5].Forecast)
}

func TestGetForecastResults_NoStoredModel(t *testing.T) {
	mgr, seriesStore, modelStore := mockStores()
	seriesStore.On("GetSeries", "emigration", "total").Return(tracePoints(), nil)
	modelStore.On("GetModel", "total").Return(schema.TrainedModel{}, false, nil)

	_, _, _, err := GetForecastResults(testConfig("total"), mgr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--train")
}

func TestGetForecastResults_TrainNew(t *testing.T) {
	mgr, seriesStore, modelStore := mockStores()
	seriesStore.On("GetSeries", "emigration", "total").Return(tracePoints(), nil)

	cfg := testConfig("total")
	cfg.TrainNew = true
	cfg.Horizon = 2

	merged, configuration, _, err := GetForecastResults(cfg, mgr)
	require.NoError(t, err)
	require.Len(t, merged, 5)
	assert.Equal(t, 2, configuration.Lookback)

	// Ad-hoc training never touches the model store.
	modelStore.AssertNotCalled(t, "GetModel", mock.Anything)
	modelStore.AssertNotCalled(t, "SaveModel", mock.Anything)
}

func TestGetModelsResults_LimitTruncation(t *testing.T) {
	mgr, _, modelStore := mockStores()
	modelStore.On("ListModels").Return([]schema.TrainedModel{
		{SeriesKey: "canada"},
		{SeriesKey: "total"},
		{SeriesKey: "usa"},
	}, nil)

	cfg := testConfig("")
	cfg.ResultLimit = 2

	models, _, err := GetModelsResults(cfg, mgr)
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "canada", models[0].SeriesKey)
}

func TestGetModelsResults_StoreError(t *testing.T) {
	mgr, _, modelStore := mockStores()
	modelStore.On("ListModels").Return(nil, assert.AnError)

	_, _, err := GetModelsResults(testConfig(""), mgr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list trained models")
}
