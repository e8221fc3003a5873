package contract

import (
	"fmt"
	"strings"
	"time"

	"emistat/schema"
)

// Default values for configuration.
const (
	DefaultDataset     = "emigration"
	DefaultHorizon     = 5
	DefaultResultLimit = 50
	MaxResultLimit     = 1000
	MaxHorizonYears    = 50
	DefaultPrecision   = 0
	MaxPrecision       = 3
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig validates the profiling prefix and populates the
// profile config. An empty prefix disables profiling.
func ProcessProfilingConfig(profile *ProfileConfig, prefix string) error {
	if prefix == "" {
		profile.Enabled = false
		return nil
	}
	if strings.ContainsAny(prefix, " \t") {
		return fmt.Errorf("profile prefix must not contain whitespace (received %q)", prefix)
	}
	profile.Enabled = true
	profile.Prefix = prefix
	return nil
}

// Config holds the runtime configuration for emistat commands.
// This struct remains the "final, validated" config.
type Config struct {
	Dataset   string
	SeriesKey string
	FromYear  int
	ToYear    int

	Chart     schema.ChartKind
	ShareYear int

	Horizon  int
	Seed     int
	TrainNew bool // forecast trains ad hoc instead of loading a stored model

	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	SeriesKeyArg string

	// --- Fields from rootCmd.PersistentFlags() ---
	Dataset        string `mapstructure:"dataset"`
	Key            string `mapstructure:"key"`
	FromYear       int    `mapstructure:"from-year"`
	ToYear         int    `mapstructure:"to-year"`
	Limit          int    `mapstructure:"limit"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Emoji          string `mapstructure:"emoji"`
	Color          string `mapstructure:"color"`

	// --- Fields from chartCmd.Flags() ---
	Chart     string `mapstructure:"chart"`
	ShareYear int    `mapstructure:"share-year"`

	// --- Fields from trainCmd/forecastCmd.Flags() ---
	Horizon int  `mapstructure:"horizon"`
	Seed    int  `mapstructure:"seed"`
	Train   bool `mapstructure:"train"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateChartInputs(cfg, input); err != nil {
		return err
	}
	if err := validateTrainingInputs(cfg, input); err != nil {
		return err
	}
	return validateBackendConfig(cfg, input)
}

// validateSimpleInputs processes and validates the shared fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Dataset and key ---
	cfg.Dataset = strings.TrimSpace(input.Dataset)
	if cfg.Dataset == "" {
		cfg.Dataset = DefaultDataset
	}
	cfg.SeriesKey = strings.TrimSpace(input.Key)
	if input.SeriesKeyArg != "" {
		cfg.SeriesKey = strings.TrimSpace(input.SeriesKeyArg)
	}

	// --- 2. Year window ---
	if input.FromYear != 0 && (input.FromYear < schema.MinYear || input.FromYear > schema.MaxYear) {
		return fmt.Errorf("from-year must be between %d and %d (received %d)", schema.MinYear, schema.MaxYear, input.FromYear)
	}
	if input.ToYear != 0 && (input.ToYear < schema.MinYear || input.ToYear > schema.MaxYear) {
		return fmt.Errorf("to-year must be between %d and %d (received %d)", schema.MinYear, schema.MaxYear, input.ToYear)
	}
	if input.FromYear != 0 && input.ToYear != 0 && input.FromYear > input.ToYear {
		return fmt.Errorf("from-year %d is after to-year %d", input.FromYear, input.ToYear)
	}
	cfg.FromYear = input.FromYear
	cfg.ToYear = input.ToYear

	// --- 3. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 4. Precision and Output Validation ---
	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	return nil
}

// validateChartInputs processes the chart-specific fields.
func validateChartInputs(cfg *Config, input *ConfigRawInput) error {
	if input.Chart == "" {
		cfg.Chart = schema.YearlyChart
		return nil
	}
	cfg.Chart = schema.ChartKind(strings.ToLower(input.Chart))
	if _, ok := schema.ValidChartKinds[cfg.Chart]; !ok {
		return fmt.Errorf("invalid chart kind '%s'. must be yearly, share, summary", input.Chart)
	}
	if cfg.Chart == schema.ShareChart {
		if input.ShareYear == 0 {
			return fmt.Errorf("--share-year is required for chart kind '%s'", schema.ShareChart)
		}
		if input.ShareYear < schema.MinYear || input.ShareYear > schema.MaxYear {
			return fmt.Errorf("share-year must be between %d and %d (received %d)", schema.MinYear, schema.MaxYear, input.ShareYear)
		}
	}
	cfg.ShareYear = input.ShareYear
	return nil
}

// validateTrainingInputs processes the train/forecast fields.
func validateTrainingInputs(cfg *Config, input *ConfigRawInput) error {
	if input.Horizon <= 0 || input.Horizon > MaxHorizonYears {
		return fmt.Errorf("horizon must be between 1 and %d years (received %d)", MaxHorizonYears, input.Horizon)
	}
	cfg.Horizon = input.Horizon
	cfg.Seed = input.Seed
	cfg.TrainNew = input.Train
	return nil
}

// validateBackendConfig validates the store backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
