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

// PrintTrainedModel outputs the outcome of one training run.
func PrintTrainedModel(model schema.TrainedModel, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON trained model")
	case schema.CSVOut:
		return printCSVResultsForModels([]schema.TrainedModel{model}, cfg)
	case schema.ParquetOut:
		return errParquetOutput
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrainedModelText(model, cfg, duration, w)
		}, "Wrote trained model")
	}
}

// writeTrainedModelText prints the trained configuration and its metrics.
func writeTrainedModelText(model schema.TrainedModel, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	if _, err := fmt.Fprintln(writer, headerFor(cfg, "🧠", fmt.Sprintf("Trained model for %q", model.SeriesKey))); err != nil {
		return err
	}

	lines := []string{
		fmt.Sprintf("Configuration: %s", describeConfiguration(model.Configuration)),
		fmt.Sprintf("Training loss: %s", model.Metrics.TrainingLoss),
		fmt.Sprintf("Validation loss: %s", model.Metrics.ValidationLoss),
		fmt.Sprintf("Mean absolute error: %s", model.Metrics.MeanAbsoluteError),
		fmt.Sprintf("Snapshot: %d observations, seed %d, horizon %d years", len(model.DatasetSnapshot), model.TrainSeed, model.HorizonYears),
		fmt.Sprintf("Saved at: %s", model.SavedAt.Format(contract.DateTimeFormat)),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(writer, line); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(writer, "Training completed in %v. Store backend: %s\n", duration, cfg.StoreBackend)
	return err
}

// PrintModels outputs the stored trained-model records, dispatching based on the output format configured.
func PrintModels(models []schema.TrainedModel, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, models)
		}, "Wrote JSON model list")
	case schema.CSVOut:
		return printCSVResultsForModels(models, cfg)
	case schema.ParquetOut:
		return errParquetOutput
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeModelsTable(models, cfg, duration, w)
		}, "Wrote model list")
	}
}

// printCSVResultsForModels handles opening the file and calling the CSV writer.
func printCSVResultsForModels(models []schema.TrainedModel, cfg *contract.Config) error {
	header := []string{
		"series_key", "horizon_years", "lookback", "units1", "units2", "activation", "optimizer",
		"training_loss", "validation_loss", "mean_absolute_error", "snapshot_size", "train_seed", "saved_at",
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, m := range models {
				row := []string{
					m.SeriesKey,
					strconv.Itoa(m.HorizonYears),
					strconv.Itoa(m.Configuration.Lookback),
					strconv.Itoa(m.Configuration.HiddenUnits1),
					strconv.Itoa(m.Configuration.HiddenUnits2),
					string(m.Configuration.Activation),
					m.Configuration.OptimizerName,
					m.Metrics.TrainingLoss,
					m.Metrics.ValidationLoss,
					m.Metrics.MeanAbsoluteError,
					strconv.Itoa(len(m.DatasetSnapshot)),
					strconv.Itoa(m.TrainSeed),
					m.SavedAt.Format(contract.DateTimeFormat),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV model list")
}

// writeModelsTable generates and writes the human-readable table.
func writeModelsTable(models []schema.TrainedModel, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Series", "Configuration", "Val Loss", "MAE", "Horizon", "Saved At"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxLabel := GetMaxTableLabelWidth(cfg)

	var data [][]string
	for _, m := range models {
		data = append(data, []string{
			contract.TruncateLabel(m.SeriesKey, maxLabel),
			describeConfiguration(m.Configuration),
			m.Metrics.ValidationLoss,
			m.Metrics.MeanAbsoluteError,
			strconv.Itoa(m.HorizonYears),
			m.SavedAt.Format("2006-01-02 15:04:05"),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Listed %d trained models in %v. Store backend: %s\n", len(models), duration, cfg.StoreBackend)
	return err
}
