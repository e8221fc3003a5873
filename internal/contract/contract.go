// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"emistat/schema"
)

// StoreManager defines the interface for reaching the persistence stores.
// This allows the storage layer to be mocked for testing.
type StoreManager interface {
	GetSeriesStore() SeriesStore
	GetModelStore() ModelStore
}

// SeriesStore defines the interface for stored observation data.
type SeriesStore interface {
	// ReplaceSeries swaps out all rows for one (dataset, seriesKey) pair.
	ReplaceSeries(dataset, seriesKey string, points []schema.SeriesPoint) error

	// InsertRows appends observation rows, upserting on conflict.
	InsertRows(rows []schema.SeriesRow) error

	// GetSeries returns one series ascending by year.
	GetSeries(dataset, seriesKey string) ([]schema.SeriesPoint, error)

	// GetRows returns all rows for a dataset; empty dataset means all rows.
	GetRows(dataset string) ([]schema.SeriesRow, error)

	// ListSeriesKeys returns the distinct series keys of a dataset.
	ListSeriesKeys(dataset string) ([]string, error)

	// GetStatus returns status information about the series table.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// ModelStore defines the interface for trained-model records. The latest
// save for a series key supersedes the stored record; records are never
// merged.
type ModelStore interface {
	// SaveModel upserts the record for model.SeriesKey.
	SaveModel(model schema.TrainedModel) error

	// GetModel returns the most recently stored record for the key.
	// The bool is false when no record exists.
	GetModel(seriesKey string) (schema.TrainedModel, bool, error)

	// ListModels returns all stored records ordered by series key.
	ListModels() ([]schema.TrainedModel, error)

	// DeleteModel removes the record for a key; missing keys are not an error.
	DeleteModel(seriesKey string) error

	// GetStatus returns status information about the models table.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}
