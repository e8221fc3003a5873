package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"emistat/internal/contract"
	"emistat/schema"
)

// errParquetOutput is returned when a print path receives the parquet mode;
// parquet files come from the dedicated export command instead.
var errParquetOutput = fmt.Errorf("parquet output is only available through 'emistat export'")

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	return nil
}

// createFormatter creates the float formatter closure used across multiple output types.
func createFormatter(precision int) func(float64) string {
	return func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
}

// chartBar renders a proportional ASCII bar for a chart value. maxValue
// zero or negative yields an empty bar.
func chartBar(value, maxValue float64, width int) string {
	if maxValue <= 0 || value <= 0 || width <= 0 {
		return ""
	}
	n := int(value / maxValue * float64(width))
	if n > width {
		n = width
	}
	if n < 1 {
		n = 1
	}
	return strings.Repeat("█", n)
}

// headerFor prefixes a section title with an emoji when enabled.
func headerFor(cfg *contract.Config, emoji, title string) string {
	if cfg.UseEmojis {
		return emoji + " " + title
	}
	return title
}

// trendLabel picks the plain or colored trend label per config.
func trendLabel(cfg *contract.Config, previous, current float64) string {
	if cfg.UseColors {
		return contract.GetColorTrendLabel(previous, current)
	}
	return contract.GetPlainTrendLabel(previous, current)
}

// describeConfiguration renders a one-line summary of a configuration.
func describeConfiguration(c schema.Configuration) string {
	layers := fmt.Sprintf("%d", c.HiddenUnits1)
	if c.HiddenUnits2 > 0 {
		layers = fmt.Sprintf("%d/%d", c.HiddenUnits1, c.HiddenUnits2)
	}
	return fmt.Sprintf("lookback=%d units=%s activation=%s optimizer=%s", c.Lookback, layers, c.Activation, c.OptimizerName)
}
