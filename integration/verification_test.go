//go:build integration

// Package integration contains integration tests for emistat.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
// Or use: make test-integration
package integration

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emistat/core"
	"emistat/schema"
)

// verificationCSV is the fixture imported for the verification runs.
const verificationCSV = `series_key,year,value
total,2016,55800
total,2017,61200
total,2018,64500
total,2019,68100
total,2020,32300
total,2021,41500
`

// totalPoints mirrors the fixture rows for in-process recomputation.
func totalPoints() []schema.SeriesPoint {
	return []schema.SeriesPoint{
		{Year: 2016, Value: 55800},
		{Year: 2017, Value: 61200},
		{Year: 2018, Value: 64500},
		{Year: 2019, Value: 68100},
		{Year: 2020, Value: 32300},
		{Year: 2021, Value: 41500},
	}
}

// buildBinary builds the CLI into a temp dir and returns its path.
func buildBinary(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "emistat")
	buildCmd := exec.Command("go", "build", "-o", path, "./cmd/emistat")
	buildCmd.Dir = ".." // Project root
	output, err := buildCmd.CombinedOutput()
	require.NoError(t, err, "build failed: %s", string(output))
	return path
}

// runBinary runs the CLI against an isolated SQLite store file.
func runBinary(t *testing.T, binary, dbPath string, args ...string) string {
	t.Helper()
	cmd := exec.Command(binary, args...)
	cmd.Dir = ".."
	cmd.Env = append(os.Environ(),
		"EMISTAT_STORE_BACKEND=sqlite",
		"EMISTAT_STORE_DB_CONNECT="+dbPath,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	require.NoError(t, err, "command %v failed: %s", args, stderr.String())
	return stdout.String()
}

// TestForecastVerification runs the full import/train/forecast flow through
// the CLI and verifies the forecast rows against an in-process recomputation
// from the same observations.
func TestForecastVerification(t *testing.T) {
	binary := buildBinary(t)
	workDir := t.TempDir()
	dbPath := filepath.Join(workDir, "store.db")

	csvPath := filepath.Join(workDir, "total.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(verificationCSV), 0o644))

	runBinary(t, binary, dbPath, "import", csvPath)
	runBinary(t, binary, dbPath, "train", "total")
	out := runBinary(t, binary, dbPath, "forecast", "total", "--output", "csv")

	// Recompute the expected forecast with the same selection inputs.
	points := totalPoints()
	configuration, _, ok := core.Select(points, 0)
	require.True(t, ok)
	expected := core.Forecast(points, 5, configuration, 0)
	require.Len(t, expected, 5)

	got := parseForecastCSV(t, out)
	require.Len(t, got, len(points)+len(expected))

	for i, p := range expected {
		row := got[len(points)+i]
		assert.Equal(t, p.Year, row.year, "forecast year at step %d", i)
		assert.Equal(t, fmt.Sprintf("%.0f", p.Value), row.forecast, "forecast value for %d", p.Year)
		assert.Empty(t, row.historical, "forecast row %d must not carry a historical value", p.Year)
	}
}

// TestForecastDeterminism runs the same forecast twice and expects
// byte-identical output.
func TestForecastDeterminism(t *testing.T) {
	binary := buildBinary(t)
	workDir := t.TempDir()
	dbPath := filepath.Join(workDir, "store.db")

	csvPath := filepath.Join(workDir, "total.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(verificationCSV), 0o644))

	runBinary(t, binary, dbPath, "import", csvPath)
	runBinary(t, binary, dbPath, "train", "total")

	first := runBinary(t, binary, dbPath, "forecast", "total", "--output", "csv")
	second := runBinary(t, binary, dbPath, "forecast", "total", "--output", "csv")
	assert.Equal(t, first, second)

	// Retraining with the same seed must not change the outcome either.
	runBinary(t, binary, dbPath, "train", "total")
	third := runBinary(t, binary, dbPath, "forecast", "total", "--output", "csv")
	assert.Equal(t, first, third)
}

type forecastRow struct {
	year       int
	historical string
	forecast   string
}

// parseForecastCSV extracts rows from the CLI's CSV forecast output.
func parseForecastCSV(t *testing.T, output string) []forecastRow {
	t.Helper()
	reader := csv.NewReader(strings.NewReader(output))
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	require.Equal(t, []string{"year", "historical", "forecast"}, records[0])

	rows := make([]forecastRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		require.Len(t, rec, 3)
		year, err := strconv.Atoi(rec[0])
		require.NoError(t, err)
		rows = append(rows, forecastRow{year: year, historical: rec[1], forecast: rec[2]})
	}
	return rows
}
