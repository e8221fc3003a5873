// Package main provides a performance benchmarking tool for the emistat CLI.
// It measures execution times across synthetic datasets of different sizes and
// command types, treating the first successful run as cold and averaging the
// rest as warm, generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - emistat binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for generated datasets and store files
package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset  string
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir  string
	Timeout  time.Duration
	Runs     int
	Datasets []DatasetSpec
}

// DatasetSpec describes one synthetic dataset to generate and benchmark.
type DatasetSpec struct {
	Name      string
	SeriesNum int
	Years     int
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir: workDir,
		Timeout: 2 * time.Minute,
		Runs:    4,
		Datasets: []DatasetSpec{
			{Name: "small", SeriesNum: 5, Years: 30},
			{Name: "medium", SeriesNum: 50, Years: 60},
			{Name: "large", SeriesNum: 200, Years: 120},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the emistat binary and work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("emistat"); err != nil {
		return fmt.Errorf("emistat binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work dir %s: %w", config.WorkDir, err)
	}
	return nil
}

// runBenchmarks executes all benchmark tests across configured datasets
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, %d runs per command\n",
		len(config.Datasets), config.Timeout, config.Runs)

	for _, spec := range config.Datasets {
		fmt.Printf("Benchmarking dataset %s (%d series x %d years)\n", spec.Name, spec.SeriesNum, spec.Years)

		csvPath, dbPath, err := prepareDataset(config, spec)
		if err != nil {
			fmt.Printf("  Skipping %s: %v\n", spec.Name, err)
			continue
		}

		commands := [][]string{
			{"import", csvPath},
			{"series", "--limit", "50"},
			{"chart"},
			{"train", "series-0", "--seed", "42"},
			{"forecast", "series-0", "--horizon", "10"},
		}
		for _, args := range commands {
			results = append(results, runBenchmarkSuite(config, spec.Name, dbPath, args))
		}
	}

	return results
}

// prepareDataset generates the CSV fixture and primes the store with one import.
func prepareDataset(config BenchmarkConfig, spec DatasetSpec) (csvPath, dbPath string, err error) {
	csvPath = filepath.Join(config.WorkDir, spec.Name+".csv")
	dbPath = filepath.Join(config.WorkDir, spec.Name+".db")
	_ = os.Remove(dbPath)

	if err := writeSyntheticCSV(csvPath, spec); err != nil {
		return "", "", err
	}

	// Prime the store so train/forecast/series runs have data to read.
	cmd := exec.Command("emistat", "import", csvPath)
	cmd.Env = storeEnv(dbPath)
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", "", fmt.Errorf("priming import failed: %v\n%s", err, string(output))
	}
	return csvPath, dbPath, nil
}

// writeSyntheticCSV generates a deterministic wavy series per key.
func writeSyntheticCSV(path string, spec DatasetSpec) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"series_key", "year", "value"}); err != nil {
		return err
	}
	firstYear := 2100 - spec.Years + 1
	for s := range spec.SeriesNum {
		key := fmt.Sprintf("series-%d", s)
		for y := range spec.Years {
			value := 10000 + 500*float64(s) + 2000*math.Sin(float64(y+s)/4)
			record := []string{key, strconv.Itoa(firstYear + y), strconv.FormatFloat(value, 'f', 0, 64)}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}
	return nil
}

// storeEnv points the CLI at an isolated SQLite store file.
func storeEnv(dbPath string) []string {
	return append(os.Environ(),
		"EMISTAT_STORE_BACKEND=sqlite",
		"EMISTAT_STORE_DB_CONNECT="+dbPath,
	)
}

// runBenchmarkSuite runs one command repeatedly and splits cold/warm timings
func runBenchmarkSuite(config BenchmarkConfig, dataset, dbPath string, args []string) BenchmarkResult {
	fmt.Printf("Running %v on %s\n", args, dataset)

	cold, times := runBenchmark(config, dbPath, args)

	warmAvg := "TIMEOUT"
	if len(times) > 0 {
		var sum float64
		for _, t := range times {
			sum += t
		}
		warmAvg = fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	coldStr := "TIMEOUT"
	if cold > 0 {
		coldStr = fmt.Sprintf("%.3fs", cold)
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldStr, warmAvg)

	return BenchmarkResult{
		Dataset:  dataset,
		Command:  args[0],
		ColdTime: coldStr,
		WarmTime: warmAvg,
	}
}

// runBenchmark executes an emistat command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, dbPath string, args []string) (coldTime float64, warmTimes []float64) {
	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("emistat", args...)
		cmd.Env = storeEnv(dbPath)

		done := make(chan bool)
		var cmdErr error

		go func() {
			_, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/emistat_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"dataset", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-8s %-10s cold=%-10s warm=%s\n", result.Dataset, result.Command, result.ColdTime, result.WarmTime)
	}
}
