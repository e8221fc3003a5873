// Package ingest loads series observations from CSV and XLSX files.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"emistat/schema"
)

// LoadFile reads observation rows from a CSV or XLSX file, chosen by
// extension. Rows are tagged with the given dataset. Files with a two-column
// year,value layout use defaultKey as the series key; three-column files
// carry the key in the first column.
func LoadFile(path, dataset, defaultKey string) ([]schema.SeriesRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path, dataset, defaultKey)
	case ".xlsx":
		return LoadXLSX(path, dataset, defaultKey)
	default:
		return nil, fmt.Errorf("unsupported file extension %q (want .csv or .xlsx)", filepath.Ext(path))
	}
}

// LoadCSV reads observation rows from a CSV file.
func LoadCSV(path, dataset, defaultKey string) ([]schema.SeriesRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return parseCSV(file, dataset, defaultKey)
}

func parseCSV(r io.Reader, dataset, defaultKey string) ([]schema.SeriesRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV records: %w", err)
	}
	return recordsToRows(records, dataset, defaultKey)
}

// LoadXLSX reads observation rows from the first sheet of an XLSX workbook.
func LoadXLSX(path, dataset, defaultKey string) ([]schema.SeriesRow, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX file has no sheets")
	}

	records, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return recordsToRows(records, dataset, defaultKey)
}

// recordsToRows converts tabular records to series rows. A leading header
// row is skipped when its year cell is not numeric. Blank lines are skipped.
func recordsToRows(records [][]string, dataset, defaultKey string) ([]schema.SeriesRow, error) {
	var rows []schema.SeriesRow
	for i, record := range records {
		if isBlankRecord(record) {
			continue
		}

		var seriesKey, yearCell, valueCell string
		switch len(record) {
		case 2:
			seriesKey, yearCell, valueCell = defaultKey, record[0], record[1]
		case 3:
			seriesKey, yearCell, valueCell = strings.TrimSpace(record[0]), record[1], record[2]
		default:
			return nil, fmt.Errorf("row %d: expected 2 or 3 columns, got %d", i+1, len(record))
		}

		year, err := strconv.Atoi(strings.TrimSpace(yearCell))
		if err != nil {
			if i == 0 {
				continue // header row
			}
			return nil, fmt.Errorf("row %d: invalid year %q", i+1, yearCell)
		}
		if year < schema.MinYear || year > schema.MaxYear {
			return nil, fmt.Errorf("row %d: year %d out of range [%d, %d]", i+1, year, schema.MinYear, schema.MaxYear)
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(valueCell), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid value %q", i+1, valueCell)
		}
		if value < 0 {
			return nil, fmt.Errorf("row %d: negative value %v", i+1, value)
		}

		if seriesKey == "" {
			return nil, fmt.Errorf("row %d: empty series key", i+1)
		}

		rows = append(rows, schema.SeriesRow{
			Dataset:   dataset,
			SeriesKey: seriesKey,
			Year:      year,
			Value:     value,
		})
	}
	return rows, nil
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
