package iostore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emistat/schema"
)

func TestSeriesStore_NoneBackend(t *testing.T) {
	store, err := NewSeriesStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// Operations should be no-ops for NoneBackend
	err = store.InsertRows([]schema.SeriesRow{{Dataset: "emigration", SeriesKey: "total", Year: 2020, Value: 1}})
	assert.NoError(t, err)

	points, err := store.GetSeries("emigration", "total")
	assert.NoError(t, err)
	assert.Empty(t, points)

	keys, err := store.ListSeriesKeys("emigration")
	assert.NoError(t, err)
	assert.Empty(t, keys)

	err = store.Close()
	assert.NoError(t, err)
}

func TestSeriesStore_SQLite(t *testing.T) {
	store, err := NewSeriesStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	rows := []schema.SeriesRow{
		{Dataset: "emigration", SeriesKey: "total", Year: 2019, Value: 110},
		{Dataset: "emigration", SeriesKey: "total", Year: 2018, Value: 100},
		{Dataset: "emigration", SeriesKey: "usa", Year: 2019, Value: 40},
	}
	require.NoError(t, store.InsertRows(rows))

	// GetSeries returns rows ascending by year
	points, err := store.GetSeries("emigration", "total")
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, schema.SeriesPoint{Year: 2018, Value: 100}, points[0])
	assert.Equal(t, schema.SeriesPoint{Year: 2019, Value: 110}, points[1])

	// Upsert on the primary key replaces the value
	require.NoError(t, store.InsertRows([]schema.SeriesRow{
		{Dataset: "emigration", SeriesKey: "total", Year: 2019, Value: 115},
	}))
	points, err = store.GetSeries("emigration", "total")
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, float64(115), points[1].Value)

	// ListSeriesKeys is distinct and sorted
	keys, err := store.ListSeriesKeys("emigration")
	require.NoError(t, err)
	assert.Equal(t, []string{"total", "usa"}, keys)

	// GetRows with empty dataset returns everything
	all, err := store.GetRows("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(3), status.SeriesRows)
}

func TestSeriesStore_ReplaceSeries(t *testing.T) {
	store, err := NewSeriesStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.InsertRows([]schema.SeriesRow{
		{Dataset: "emigration", SeriesKey: "total", Year: 2018, Value: 100},
		{Dataset: "emigration", SeriesKey: "total", Year: 2019, Value: 110},
		{Dataset: "emigration", SeriesKey: "usa", Year: 2019, Value: 40},
	}))

	// Replacing one series leaves other keys untouched
	err = store.ReplaceSeries("emigration", "total", []schema.SeriesPoint{
		{Year: 2020, Value: 120},
	})
	require.NoError(t, err)

	points, err := store.GetSeries("emigration", "total")
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 2020, points[0].Year)

	other, err := store.GetSeries("emigration", "usa")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestSeriesStore_EmptySeries(t *testing.T) {
	store, err := NewSeriesStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	points, err := store.GetSeries("emigration", "missing")
	require.NoError(t, err)
	assert.Empty(t, points)
}
