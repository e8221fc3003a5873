package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emistat/schema"
)

// validInput returns a raw input that passes validation end to end.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Dataset:      "emigration",
		Limit:        50,
		Precision:    0,
		Output:       "text",
		Horizon:      5,
		StoreBackend: "sqlite",
		Emoji:        "yes",
		Color:        "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError string
	}{
		{
			name:   "valid minimal config",
			mutate: func(in *ConfigRawInput) {},
		},
		{
			name:        "limit zero",
			mutate:      func(in *ConfigRawInput) { in.Limit = 0 },
			expectError: "limit must be greater than 0",
		},
		{
			name:        "limit too large",
			mutate:      func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 },
			expectError: "limit must be greater than 0",
		},
		{
			name:        "precision too large",
			mutate:      func(in *ConfigRawInput) { in.Precision = MaxPrecision + 1 },
			expectError: "precision must be between",
		},
		{
			name:        "invalid output format",
			mutate:      func(in *ConfigRawInput) { in.Output = "yaml" },
			expectError: "invalid output format",
		},
		{
			name:        "from-year out of range",
			mutate:      func(in *ConfigRawInput) { in.FromYear = 1500 },
			expectError: "from-year must be between",
		},
		{
			name:        "to-year out of range",
			mutate:      func(in *ConfigRawInput) { in.ToYear = 3001 },
			expectError: "to-year must be between",
		},
		{
			name: "inverted year window",
			mutate: func(in *ConfigRawInput) {
				in.FromYear = 2020
				in.ToYear = 2010
			},
			expectError: "is after to-year",
		},
		{
			name:        "invalid chart kind",
			mutate:      func(in *ConfigRawInput) { in.Chart = "scatter" },
			expectError: "invalid chart kind",
		},
		{
			name:        "share chart without year",
			mutate:      func(in *ConfigRawInput) { in.Chart = "share" },
			expectError: "--share-year is required",
		},
		{
			name: "share chart with year",
			mutate: func(in *ConfigRawInput) {
				in.Chart = "share"
				in.ShareYear = 2020
			},
		},
		{
			name:        "horizon zero",
			mutate:      func(in *ConfigRawInput) { in.Horizon = 0 },
			expectError: "horizon must be between",
		},
		{
			name:        "horizon too large",
			mutate:      func(in *ConfigRawInput) { in.Horizon = MaxHorizonYears + 1 },
			expectError: "horizon must be between",
		},
		{
			name:        "invalid backend",
			mutate:      func(in *ConfigRawInput) { in.StoreBackend = "oracle" },
			expectError: "invalid store backend",
		},
		{
			name:        "mysql without connection string",
			mutate:      func(in *ConfigRawInput) { in.StoreBackend = "mysql" },
			expectError: "store-db-connect is required",
		},
		{
			name:        "invalid emoji value",
			mutate:      func(in *ConfigRawInput) { in.Emoji = "maybe" },
			expectError: "invalid --emoji value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			var cfg Config
			err := ProcessAndValidate(&cfg, input)
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestProcessAndValidate_Defaults(t *testing.T) {
	input := validInput()
	input.Dataset = "  "

	var cfg Config
	require.NoError(t, ProcessAndValidate(&cfg, input))

	assert.Equal(t, DefaultDataset, cfg.Dataset)
	assert.Equal(t, schema.YearlyChart, cfg.Chart)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
	assert.True(t, cfg.UseEmojis)
	assert.True(t, cfg.UseColors)
}

func TestProcessAndValidate_PositionalKeyWins(t *testing.T) {
	input := validInput()
	input.Key = "from-flag"
	input.SeriesKeyArg = " total "

	var cfg Config
	require.NoError(t, ProcessAndValidate(&cfg, input))
	assert.Equal(t, "total", cfg.SeriesKey)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name        string
		backend     schema.DatabaseBackend
		connStr     string
		expectError string
	}{
		{
			name:    "sqlite needs nothing",
			backend: schema.SQLiteBackend,
		},
		{
			name:    "none needs nothing",
			backend: schema.NoneBackend,
		},
		{
			name:    "valid mysql",
			backend: schema.MySQLBackend,
			connStr: "user:pass@tcp(localhost:3306)/emistat",
		},
		{
			name:        "mysql missing tcp",
			backend:     schema.MySQLBackend,
			connStr:     "user:pass/emistat",
			expectError: "@tcp(",
		},
		{
			name:    "valid postgres",
			backend: schema.PostgreSQLBackend,
			connStr: "host=localhost port=5432 user=postgres dbname=emistat",
		},
		{
			name:        "postgres missing dbname",
			backend:     schema.PostgreSQLBackend,
			connStr:     "host=localhost port=5432 user=postgres",
			expectError: "dbname=",
		},
		{
			name:        "postgres empty",
			backend:     schema.PostgreSQLBackend,
			connStr:     "",
			expectError: "store-db-connect is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestProcessProfilingConfig(t *testing.T) {
	var profile ProfileConfig

	require.NoError(t, ProcessProfilingConfig(&profile, ""))
	assert.False(t, profile.Enabled)

	require.NoError(t, ProcessProfilingConfig(&profile, "run1"))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "run1", profile.Prefix)

	err := ProcessProfilingConfig(&profile, "bad prefix")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "whitespace")
}

func TestConfigClone(t *testing.T) {
	original := &Config{SeriesKey: "total", Horizon: 5}
	clone := original.Clone()
	clone.SeriesKey = "usa"

	assert.Equal(t, "total", original.SeriesKey)
	assert.Equal(t, "usa", clone.SeriesKey)
}
