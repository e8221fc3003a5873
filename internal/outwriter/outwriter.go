// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"emistat/internal/contract"
	"emistat/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSeries prints stored observation rows using the configured output format.
func (ow *OutWriter) WriteSeries(rows []schema.SeriesRow, cfg *contract.Config, duration time.Duration) error {
	return PrintSeriesRows(rows, cfg, duration)
}

// WriteChart prints one chart aggregation using the configured output format.
func (ow *OutWriter) WriteChart(result schema.ChartResult, cfg *contract.Config, duration time.Duration) error {
	return PrintChartResult(result, cfg, duration)
}

// WriteSummaries prints per-key descriptive statistics using the configured output format.
func (ow *OutWriter) WriteSummaries(summaries []schema.SeriesSummary, cfg *contract.Config, duration time.Duration) error {
	return PrintSummaries(summaries, cfg, duration)
}

// WriteTrainedModel prints the outcome of one training run.
func (ow *OutWriter) WriteTrainedModel(model schema.TrainedModel, cfg *contract.Config, duration time.Duration) error {
	return PrintTrainedModel(model, cfg, duration)
}

// WriteModels prints the stored trained-model records.
func (ow *OutWriter) WriteModels(models []schema.TrainedModel, cfg *contract.Config, duration time.Duration) error {
	return PrintModels(models, cfg, duration)
}

// WriteForecast prints the merged historical+forecast view.
func (ow *OutWriter) WriteForecast(merged []schema.MergedPoint, configuration schema.Configuration, cfg *contract.Config, duration time.Duration) error {
	return PrintForecast(merged, configuration, cfg, duration)
}

// GetMaxTableLabelWidth calculates the maximum width for series labels in
// table output based on terminal width and table configuration.
func GetMaxTableLabelWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns (year, value, trend) with
	// borders, separators and padding.
	baseWidth := 45

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}
