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

// chartBarWidth is the width of the proportional ASCII bar column.
const chartBarWidth = 30

// PrintChartResult outputs one chart aggregation, dispatching based on the output format configured.
func PrintChartResult(result schema.ChartResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON chart results")
	case schema.CSVOut:
		return printCSVResultsForChart(result, cfg, fmtFloat)
	case schema.ParquetOut:
		return errParquetOutput
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeChartTable(result, cfg, fmtFloat, duration, w)
		}, "Wrote chart table")
	}
}

// printCSVResultsForChart handles opening the file and calling the CSV writer.
func printCSVResultsForChart(result schema.ChartResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{"chart", "label", "value"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, p := range result.Points {
				if err := cw.Write([]string{string(result.Kind), p.Label, fmtFloat(p.Value)}); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV chart results")
}

// writeChartTable prints the aggregation with a proportional bar per row.
func writeChartTable(result schema.ChartResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	if _, err := fmt.Fprintln(writer, headerFor(cfg, "📊", fmt.Sprintf("Chart: %s", result.Kind))); err != nil {
		return err
	}

	var maxValue, total float64
	for _, p := range result.Points {
		total += p.Value
		if p.Value > maxValue {
			maxValue = p.Value
		}
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Label", "Value", "Share", "Bar"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxLabel := GetMaxTableLabelWidth(cfg)

	var data [][]string
	for _, p := range result.Points {
		share := "0.0%"
		if total > 0 {
			share = fmt.Sprintf("%.1f%%", p.Value/total*100)
		}
		data = append(data, []string{
			contract.TruncateLabel(p.Label, maxLabel),
			fmtFloat(p.Value),
			share,
			chartBar(p.Value, maxValue, chartBarWidth),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Aggregated %d rows (total %s) in %v. Store backend: %s\n",
		len(result.Points), fmtFloat(total), duration, cfg.StoreBackend)
	return err
}

// PrintSummaries outputs per-key descriptive statistics, dispatching based on the output format configured.
func PrintSummaries(summaries []schema.SeriesSummary, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summaries)
		}, "Wrote JSON summary results")
	case schema.CSVOut:
		return printCSVResultsForSummaries(summaries, cfg, fmtFloat)
	case schema.ParquetOut:
		return errParquetOutput
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummariesTable(summaries, cfg, fmtFloat, duration, w)
		}, "Wrote summary table")
	}
}

// printCSVResultsForSummaries handles opening the file and calling the CSV writer.
func printCSVResultsForSummaries(summaries []schema.SeriesSummary, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{"series_key", "count", "first_year", "last_year", "latest", "min", "max", "mean"}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, s := range summaries {
				row := []string{
					s.SeriesKey,
					strconv.Itoa(s.Count),
					strconv.Itoa(s.FirstYear),
					strconv.Itoa(s.LastYear),
					fmtFloat(s.Latest),
					fmtFloat(s.Min),
					fmtFloat(s.Max),
					fmtFloat(s.Mean),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV summary results")
}

// writeSummariesTable generates and writes the human-readable table.
func writeSummariesTable(summaries []schema.SeriesSummary, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Series", "Count", "Years", "Latest", "Min", "Max", "Mean"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxLabel := GetMaxTableLabelWidth(cfg)

	var data [][]string
	for _, s := range summaries {
		data = append(data, []string{
			contract.TruncateLabel(s.SeriesKey, maxLabel),
			strconv.Itoa(s.Count),
			fmt.Sprintf("%d-%d", s.FirstYear, s.LastYear),
			fmtFloat(s.Latest),
			fmtFloat(s.Min),
			fmtFloat(s.Max),
			fmtFloat(s.Mean),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Summarized %d series in %v. Store backend: %s\n", len(summaries), duration, cfg.StoreBackend)
	return err
}
