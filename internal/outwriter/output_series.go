package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"emistat/internal/contract"
	"emistat/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSeriesRows outputs stored observation rows, dispatching based on the output format configured.
func PrintSeriesRows(rows []schema.SeriesRow, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForSeries(rows, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForSeries(rows, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errParquetOutput
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSeriesTable(rows, cfg, fmtFloat, duration, w)
		}, "Wrote series table")
	}
	return nil
}

// printJSONResultsForSeries handles opening the file and calling the JSON writer.
func printJSONResultsForSeries(rows []schema.SeriesRow, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, rows)
	}, "Wrote JSON series results")
}

// printCSVResultsForSeries handles opening the file and calling the CSV writer.
func printCSVResultsForSeries(rows []schema.SeriesRow, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{"dataset", "series_key", "year", "value"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, r := range rows {
				row := []string{r.Dataset, r.SeriesKey, strconv.Itoa(r.Year), fmtFloat(r.Value)}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV series results")
}

// writeSeriesTable generates and writes the human-readable table.
func writeSeriesTable(rows []schema.SeriesRow, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Dataset", "Series", "Year", "Value", "Trend"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxLabel := GetMaxTableLabelWidth(cfg)

	// Trend compares consecutive rows of the same series key.
	previous := make(map[string]float64)

	var data [][]string
	for _, r := range rows {
		trend := trendLabel(cfg, previous[r.SeriesKey], r.Value)
		previous[r.SeriesKey] = r.Value

		data = append(data, []string{
			r.Dataset,
			contract.TruncateLabel(r.SeriesKey, maxLabel),
			strconv.Itoa(r.Year),
			fmtFloat(r.Value),
			trend,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Listed %d rows in %v. Store backend: %s\n", len(rows), duration, cfg.StoreBackend)
	return err
}
