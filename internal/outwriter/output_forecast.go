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

// PrintForecast outputs the merged historical+forecast view, dispatching based on the output format configured.
func PrintForecast(merged []schema.MergedPoint, configuration schema.Configuration, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, merged)
		}, "Wrote JSON forecast results")
	case schema.CSVOut:
		return printCSVResultsForForecast(merged, cfg, fmtFloat)
	case schema.ParquetOut:
		return errParquetOutput
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeForecastTable(merged, configuration, cfg, fmtFloat, duration, w)
		}, "Wrote forecast table")
	}
}

// printCSVResultsForForecast handles opening the file and calling the CSV writer.
func printCSVResultsForForecast(merged []schema.MergedPoint, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{"year", "historical", "forecast"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, p := range merged {
				historical, forecast := "", ""
				if p.Historical != nil {
					historical = fmtFloat(*p.Historical)
				}
				if p.Forecast != nil {
					forecast = fmtFloat(*p.Forecast)
				}
				if err := cw.Write([]string{strconv.Itoa(p.Year), historical, forecast}); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV forecast results")
}

// writeForecastTable generates and writes the human-readable table.
func writeForecastTable(merged []schema.MergedPoint, configuration schema.Configuration, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	if _, err := fmt.Fprintln(writer, headerFor(cfg, "🔮", fmt.Sprintf("Forecast (%s)", describeConfiguration(configuration)))); err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Year", "Value", "Source", "Trend"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var previous float64
	var forecastRows int

	var data [][]string
	for _, p := range merged {
		value := 0.0
		source := "historical"
		if p.IsForecast() {
			value = *p.Forecast
			source = "forecast"
			forecastRows++
		} else if p.Historical != nil {
			value = *p.Historical
		}

		data = append(data, []string{
			strconv.Itoa(p.Year),
			fmtFloat(value),
			source,
			trendLabel(cfg, previous, value),
		})
		previous = value
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Merged %d rows (%d forecast) in %v. Store backend: %s\n",
		len(merged), forecastRows, duration, cfg.StoreBackend)
	return err
}
