// Package schema has configs, models and global variables for all parts of emistat.
package schema

import "time"

// SeriesPoint represents one observed or predicted magnitude for a given year.
// Sequences of points are kept sorted ascending by year; the core does not
// de-duplicate years, so callers must supply a clean series.
type SeriesPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// SeriesRow is one stored observation, as persisted in the series table.
type SeriesRow struct {
	Dataset   string  `json:"dataset"`
	SeriesKey string  `json:"series_key"`
	Year      int     `json:"year"`
	Value     float64 `json:"value"`
}

// Configuration is one candidate model setup produced by the hyperparameter
// selector. It is treated as immutable once returned.
type Configuration struct {
	Lookback      int            `json:"lookback"`       // Width of the trailing window used for the baseline
	HiddenUnits1  int            `json:"hidden_units1"`  // First layer size
	HiddenUnits2  int            `json:"hidden_units2"`  // Second layer size (0 means no second layer)
	Activation    ActivationKind `json:"activation"`     // One of relu, tanh, sigmoid
	OptimizerName string         `json:"optimizer_name"` // Descriptive label only, no computational effect
}

// SyntheticMetrics holds the derived (not measured) training metrics for a
// configuration. Values are formatted decimal strings for storage and
// display; selection always compares the underlying numeric values.
type SyntheticMetrics struct {
	TrainingLoss      string `json:"training_loss"`       // 4 decimal places
	ValidationLoss    string `json:"validation_loss"`     // 4 decimal places
	MeanAbsoluteError string `json:"mean_absolute_error"` // 3 decimal places
}

// TrainedModel is the persisted outcome of one training run for a series
// key. A later run for the same key supersedes (never merges with) the
// stored record.
type TrainedModel struct {
	SeriesKey       string           `json:"series_key"`
	HorizonYears    int              `json:"horizon_years"`
	Configuration   Configuration    `json:"configuration"`
	Metrics         SyntheticMetrics `json:"metrics"`
	DatasetSnapshot []SeriesPoint    `json:"dataset_snapshot"`
	TrainSeed       int              `json:"train_seed"`
	SavedAt         time.Time        `json:"saved_at"`
}

// MergedPoint is one row of the merged historical+forecast view. Exactly
// one of Historical or Forecast is set; the other is nil.
type MergedPoint struct {
	Year       int      `json:"year"`
	Historical *float64 `json:"historical,omitempty"`
	Forecast   *float64 `json:"forecast,omitempty"`
}

// IsForecast reports whether the row came from the forecast sequence.
func (p MergedPoint) IsForecast() bool {
	return p.Forecast != nil
}

// ChartPoint is one reduced row of a chart aggregation (label plus value).
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartResult holds the rows of one chart aggregation.
type ChartResult struct {
	Kind   ChartKind    `json:"kind"`
	Points []ChartPoint `json:"points"`
}

// SeriesSummary holds per-key descriptive statistics for the summary view.
type SeriesSummary struct {
	SeriesKey string  `json:"series_key"`
	Count     int     `json:"count"`
	FirstYear int     `json:"first_year"`
	LastYear  int     `json:"last_year"`
	Latest    float64 `json:"latest"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Mean      float64 `json:"mean"`
}

// StoreStatus describes the state of the backing store.
type StoreStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	SeriesRows    int64            `json:"series_rows"`
	TrainedModels int64            `json:"trained_models"`
	LastSavedAt   time.Time        `json:"last_saved_at"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}
