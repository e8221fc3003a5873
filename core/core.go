// Package core has core logic for selection, forecasting and aggregation.
package core

import (
	"fmt"
	"time"

	"emistat/internal/contract"
	"emistat/internal/outwriter"
	"emistat/schema"
)

// minTrainHistory is the smallest history the training and forecast
// commands accept. The selector itself tolerates shorter input, but a
// trailing window needs at least two observations to anchor a slope.
const minTrainHistory = 2

// GetSeriesResults loads stored rows with the configured filters and limit.
func GetSeriesResults(cfg *contract.Config, mgr contract.StoreManager) ([]schema.SeriesRow, time.Duration, error) {
	start := time.Now()
	rows, err := loadRows(cfg, mgr)
	if err != nil {
		return nil, 0, err
	}
	if len(rows) > cfg.ResultLimit {
		rows = rows[:cfg.ResultLimit]
	}
	return rows, time.Since(start), nil
}

// ExecuteSeries loads stored rows and prints them using the configured
// output format. It serves as the main entry point for the 'series' mode.
func ExecuteSeries(cfg *contract.Config, mgr contract.StoreManager) error {
	rows, elapsed, err := GetSeriesResults(cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSeries(rows, cfg, elapsed)
}

// GetChartResults reduces stored rows to one chart aggregation. The summary
// chart has its own result shape; see GetSummaryResults.
func GetChartResults(cfg *contract.Config, mgr contract.StoreManager) (schema.ChartResult, time.Duration, error) {
	start := time.Now()
	rows, err := loadRows(cfg, mgr)
	if err != nil {
		return schema.ChartResult{}, 0, err
	}

	switch cfg.Chart {
	case schema.ShareChart:
		return YearShare(rows, cfg.ShareYear), time.Since(start), nil
	default: // YearlyChart
		return YearlyTotals(rows), time.Since(start), nil
	}
}

// GetSummaryResults computes per-key descriptive statistics.
func GetSummaryResults(cfg *contract.Config, mgr contract.StoreManager) ([]schema.SeriesSummary, time.Duration, error) {
	start := time.Now()
	rows, err := loadRows(cfg, mgr)
	if err != nil {
		return nil, 0, err
	}
	return Summaries(rows), time.Since(start), nil
}

// ExecuteChart reduces stored rows to one chart aggregation and prints it.
// It serves as the main entry point for the 'chart' mode.
func ExecuteChart(cfg *contract.Config, mgr contract.StoreManager) error {
	ow := outwriter.NewOutWriter()
	if cfg.Chart == schema.SummaryChart {
		summaries, elapsed, err := GetSummaryResults(cfg, mgr)
		if err != nil {
			return err
		}
		return ow.WriteSummaries(summaries, cfg, elapsed)
	}

	result, elapsed, err := GetChartResults(cfg, mgr)
	if err != nil {
		return err
	}
	return ow.WriteChart(result, cfg, elapsed)
}

// GetTrainResults runs the hyperparameter selector over one stored series
// and persists the winning configuration. The stored record for the same
// series key is superseded, not merged.
func GetTrainResults(cfg *contract.Config, mgr contract.StoreManager) (schema.TrainedModel, time.Duration, error) {
	start := time.Now()
	if cfg.SeriesKey == "" {
		return schema.TrainedModel{}, 0, fmt.Errorf("a series key is required for training")
	}

	history, err := loadHistory(cfg, mgr)
	if err != nil {
		return schema.TrainedModel{}, 0, err
	}
	if len(history) < minTrainHistory {
		return schema.TrainedModel{}, 0, fmt.Errorf("series %q has %d observations; training needs at least %d", cfg.SeriesKey, len(history), minTrainHistory)
	}

	configuration, metrics, ok := Select(history, cfg.Seed)
	if !ok {
		return schema.TrainedModel{}, 0, fmt.Errorf("candidate grid is empty")
	}

	model := schema.TrainedModel{
		SeriesKey:       cfg.SeriesKey,
		HorizonYears:    cfg.Horizon,
		Configuration:   configuration,
		Metrics:         metrics,
		DatasetSnapshot: history,
		TrainSeed:       cfg.Seed,
		SavedAt:         time.Now(),
	}
	if err := mgr.GetModelStore().SaveModel(model); err != nil {
		return schema.TrainedModel{}, 0, fmt.Errorf("failed to persist trained model for %q: %w", cfg.SeriesKey, err)
	}
	return model, time.Since(start), nil
}

// ExecuteTrain runs the selector and prints the persisted result.
func ExecuteTrain(cfg *contract.Config, mgr contract.StoreManager) error {
	model, elapsed, err := GetTrainResults(cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteTrainedModel(model, cfg, elapsed)
}

// GetForecastResults extrapolates one stored series and returns the merged
// historical+forecast view together with the configuration used. By default
// the stored trained model for the series key supplies the configuration;
// with cfg.TrainNew a fresh selection runs first without touching the store.
func GetForecastResults(cfg *contract.Config, mgr contract.StoreManager) ([]schema.MergedPoint, schema.Configuration, time.Duration, error) {
	start := time.Now()
	if cfg.SeriesKey == "" {
		return nil, schema.Configuration{}, 0, fmt.Errorf("a series key is required for forecasting")
	}

	history, err := loadHistory(cfg, mgr)
	if err != nil {
		return nil, schema.Configuration{}, 0, err
	}
	if len(history) < minTrainHistory {
		return nil, schema.Configuration{}, 0, fmt.Errorf("series %q has %d observations; forecasting needs at least %d", cfg.SeriesKey, len(history), minTrainHistory)
	}

	configuration, seed, horizon, err := resolveForecastSetup(cfg, mgr, history)
	if err != nil {
		return nil, schema.Configuration{}, 0, err
	}

	forecast := Forecast(history, horizon, configuration, seed)
	merged := MergeSeries(history, forecast)
	return merged, configuration, time.Since(start), nil
}

// ExecuteForecast extrapolates one stored series and prints the merged view.
func ExecuteForecast(cfg *contract.Config, mgr contract.StoreManager) error {
	merged, configuration, elapsed, err := GetForecastResults(cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteForecast(merged, configuration, cfg, elapsed)
}

// GetModelsResults lists the stored trained-model records up to the limit.
func GetModelsResults(cfg *contract.Config, mgr contract.StoreManager) ([]schema.TrainedModel, time.Duration, error) {
	start := time.Now()
	models, err := mgr.GetModelStore().ListModels()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list trained models: %w", err)
	}
	if len(models) > cfg.ResultLimit {
		models = models[:cfg.ResultLimit]
	}
	return models, time.Since(start), nil
}

// ExecuteModels lists the stored trained-model records.
func ExecuteModels(cfg *contract.Config, mgr contract.StoreManager) error {
	models, elapsed, err := GetModelsResults(cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteModels(models, cfg, elapsed)
}

// resolveForecastSetup picks the configuration, seed and horizon for a
// forecast run, from the stored model unless ad-hoc training is requested.
func resolveForecastSetup(cfg *contract.Config, mgr contract.StoreManager, history []schema.SeriesPoint) (schema.Configuration, int, int, error) {
	if cfg.TrainNew {
		configuration, _, ok := Select(history, cfg.Seed)
		if !ok {
			return schema.Configuration{}, 0, 0, fmt.Errorf("candidate grid is empty")
		}
		return configuration, cfg.Seed, cfg.Horizon, nil
	}

	model, found, err := mgr.GetModelStore().GetModel(cfg.SeriesKey)
	if err != nil {
		return schema.Configuration{}, 0, 0, fmt.Errorf("failed to load trained model for %q: %w", cfg.SeriesKey, err)
	}
	if !found {
		return schema.Configuration{}, 0, 0, fmt.Errorf("no trained model stored for %q; run 'emistat train %s' first or pass --train", cfg.SeriesKey, cfg.SeriesKey)
	}

	horizon := model.HorizonYears
	if cfg.Horizon != contract.DefaultHorizon {
		horizon = cfg.Horizon
	}
	return model.Configuration, model.TrainSeed, horizon, nil
}

// loadHistory fetches one series for the configured key, applying the year
// window before any core computation sees the data.
func loadHistory(cfg *contract.Config, mgr contract.StoreManager) ([]schema.SeriesPoint, error) {
	points, err := mgr.GetSeriesStore().GetSeries(cfg.Dataset, cfg.SeriesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load series %q: %w", cfg.SeriesKey, err)
	}
	return schema.FilterYears(points, cfg.FromYear, cfg.ToYear), nil
}

// loadRows fetches dataset rows with the configured filters applied.
func loadRows(cfg *contract.Config, mgr contract.StoreManager) ([]schema.SeriesRow, error) {
	rows, err := mgr.GetSeriesStore().GetRows(cfg.Dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %q: %w", cfg.Dataset, err)
	}
	return FilterRows(rows, cfg.Dataset, cfg.SeriesKey, cfg.FromYear, cfg.ToYear), nil
}
