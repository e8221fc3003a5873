// Package cmd defines the command-line interface for emistat.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"emistat/internal/contract"
	"emistat/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Add the models subcommands to the parent models command
	modelsCmd.AddCommand(modelsDeleteCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("dataset", "d", contract.DefaultDataset, "Dataset to operate on")
	rootCmd.PersistentFlags().StringP("key", "k", "", "Series key to filter by (e.g. total, usa)")
	rootCmd.PersistentFlags().Int("from-year", 0, "Lower bound of the year window (inclusive, 0 = unbounded)")
	rootCmd.PersistentFlags().Int("to-year", 0, "Upper bound of the year window (inclusive, 0 = unbounded)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("chart", string(schema.YearlyChart), "Chart kind: yearly or share or summary")
	rootCmd.PersistentFlags().Int("share-year", 0, "Year for the share chart (required for --chart share)")
	rootCmd.PersistentFlags().Int("horizon", contract.DefaultHorizon, "Forecast horizon in years")
	rootCmd.PersistentFlags().Int("seed", 0, "Seed for deterministic candidate scoring")
	rootCmd.PersistentFlags().Bool("train", false, "Forecast trains ad hoc instead of loading the stored model")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of importCmd to Viper
	importCmd.Flags().Bool("replace", false, "Replace the stored series instead of upserting rows")
	if err := viper.BindPFlags(importCmd.Flags()); err != nil {
		contract.LogFatal("Error binding import flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
