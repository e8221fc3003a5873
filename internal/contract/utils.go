package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Trend label constants for series and forecast output.
const (
	SurgingValue   = "Surging"
	GrowingValue   = "Growing"
	SteadyValue    = "Steady"
	DecliningValue = "Declining"
)

// Color variables for console output.
var (
	SurgingColor   = color.New(color.FgRed, color.Bold) // surgingColor flags unusually fast growth.
	GrowingColor   = color.New(color.FgGreen)           // growingColor represents ordinary growth.
	SteadyColor    = color.New(color.FgCyan)            // steadyColor represents a flat series.
	DecliningColor = color.New(color.FgYellow)          // decliningColor represents shrinking volume.
)

// GetPlainTrendLabel returns a plain text label for the relative change
// between two values. This is the core logic used for CSV, JSON, and table
// printing.
func GetPlainTrendLabel(previous, current float64) string {
	if previous <= 0 {
		return SteadyValue
	}
	change := (current - previous) / previous
	switch {
	case change >= 0.25:
		return SurgingValue
	case change >= 0.02:
		return GrowingValue
	case change <= -0.02:
		return DecliningValue
	default:
		return SteadyValue
	}
}

// GetColorTrendLabel returns a colored label for console output (table).
// It uses GetPlainTrendLabel to determine the string, and then applies the
// appropriate color.
func GetColorTrendLabel(previous, current float64) string {
	text := GetPlainTrendLabel(previous, current)

	switch text {
	case SurgingValue:
		return SurgingColor.Sprint(text)
	case GrowingValue:
		return GrowingColor.Sprint(text)
	case DecliningValue:
		return DecliningColor.Sprint(text)
	default: // "Steady"
		return SteadyColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for the
// default store backend.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".emistat_store.db"
	}
	return filepath.Join(homeDir, ".emistat_store.db")
}

// TruncateLabel truncates a label to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix
// and at least one character of content.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return label
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
