package iostore

import (
	"database/sql"
	"fmt"

	"emistat/internal/contract"
	"emistat/schema"
)

// seriesTable is the name of the table for stored observations.
const seriesTable = "emistat_series"

// SeriesStoreImpl implements the SeriesStore interface.
type SeriesStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.SeriesStore = &SeriesStoreImpl{} // Compile-time check

// NewSeriesStore creates a new SeriesStore with the specified backend.
// NoneBackend yields a no-op store.
func NewSeriesStore(backend schema.DatabaseBackend, connStr string) (contract.SeriesStore, error) {
	db, err := openDatabase(backend, connStr)
	if err != nil {
		return nil, err
	}

	store := &SeriesStoreImpl{db: db, backend: backend}
	if db == nil {
		return store, nil
	}

	if _, err := db.Exec(createSeriesTableQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", seriesTable, err)
	}
	return store, nil
}

// newSeriesStoreWithDB wraps an existing handle; used when the series and
// model stores share one database.
func newSeriesStoreWithDB(db *sql.DB, backend schema.DatabaseBackend) (contract.SeriesStore, error) {
	store := &SeriesStoreImpl{db: db, backend: backend}
	if db == nil {
		return store, nil
	}
	if _, err := db.Exec(createSeriesTableQuery(backend)); err != nil {
		return nil, fmt.Errorf("failed to create table %s: %w", seriesTable, err)
	}
	return store, nil
}

// createSeriesTableQuery returns the CREATE TABLE query for emistat_series.
func createSeriesTableQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(seriesTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				dataset VARCHAR(100) NOT NULL,
				series_key VARCHAR(255) NOT NULL,
				year INT NOT NULL,
				value DOUBLE NOT NULL,
				PRIMARY KEY (dataset, series_key, year)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				dataset TEXT NOT NULL,
				series_key TEXT NOT NULL,
				year INT NOT NULL,
				value DOUBLE PRECISION NOT NULL,
				PRIMARY KEY (dataset, series_key, year)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				dataset TEXT NOT NULL,
				series_key TEXT NOT NULL,
				year INTEGER NOT NULL,
				value REAL NOT NULL,
				PRIMARY KEY (dataset, series_key, year)
			);
		`, quotedTableName)
	}
}

// ReplaceSeries swaps out all rows for one (dataset, seriesKey) pair in a
// single transaction.
func (ss *SeriesStoreImpl) ReplaceSeries(dataset, seriesKey string, points []schema.SeriesPoint) error {
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(seriesTable, ss.backend)

	tx, err := ss.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var deleteQuery, insertQuery string
	switch ss.backend {
	case schema.PostgreSQLBackend:
		deleteQuery = fmt.Sprintf(`DELETE FROM %s WHERE dataset = $1 AND series_key = $2`, quotedTableName)
		insertQuery = fmt.Sprintf(`INSERT INTO %s (dataset, series_key, year, value) VALUES ($1, $2, $3, $4)`, quotedTableName)
	default: // SQLite and MySQL
		deleteQuery = fmt.Sprintf(`DELETE FROM %s WHERE dataset = ? AND series_key = ?`, quotedTableName)
		insertQuery = fmt.Sprintf(`INSERT INTO %s (dataset, series_key, year, value) VALUES (?, ?, ?, ?)`, quotedTableName)
	}

	if _, err := tx.Exec(deleteQuery, dataset, seriesKey); err != nil {
		return fmt.Errorf("failed to clear series %q: %w", seriesKey, err)
	}
	for _, p := range points {
		if _, err := tx.Exec(insertQuery, dataset, seriesKey, p.Year, p.Value); err != nil {
			return fmt.Errorf("failed to insert point %d for %q: %w", p.Year, seriesKey, err)
		}
	}

	return tx.Commit()
}

// InsertRows appends observation rows, upserting on conflict.
func (ss *SeriesStoreImpl) InsertRows(rows []schema.SeriesRow) error {
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(seriesTable, ss.backend)

	var query string
	switch ss.backend {
	case schema.MySQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (dataset, series_key, year, value) VALUES (?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE value = VALUES(value)
		`, quotedTableName)
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (dataset, series_key, year, value) VALUES ($1, $2, $3, $4)
			ON CONFLICT (dataset, series_key, year) DO UPDATE SET value = EXCLUDED.value
		`, quotedTableName)
	default: // SQLite
		query = fmt.Sprintf(`
			INSERT INTO %s (dataset, series_key, year, value) VALUES (?, ?, ?, ?)
			ON CONFLICT (dataset, series_key, year) DO UPDATE SET value = excluded.value
		`, quotedTableName)
	}

	tx, err := ss.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, r := range rows {
		if _, err := tx.Exec(query, r.Dataset, r.SeriesKey, r.Year, r.Value); err != nil {
			return fmt.Errorf("failed to upsert row (%s, %s, %d): %w", r.Dataset, r.SeriesKey, r.Year, err)
		}
	}
	return tx.Commit()
}

// GetSeries returns one series ascending by year.
func (ss *SeriesStoreImpl) GetSeries(dataset, seriesKey string) ([]schema.SeriesPoint, error) {
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(seriesTable, ss.backend)

	var query string
	switch ss.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT year, value FROM %s WHERE dataset = $1 AND series_key = $2 ORDER BY year`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`SELECT year, value FROM %s WHERE dataset = ? AND series_key = ? ORDER BY year`, quotedTableName)
	}

	rows, err := ss.db.Query(query, dataset, seriesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query series %q: %w", seriesKey, err)
	}
	defer func() { _ = rows.Close() }()

	var points []schema.SeriesPoint
	for rows.Next() {
		var p schema.SeriesPoint
		if err := rows.Scan(&p.Year, &p.Value); err != nil {
			return nil, fmt.Errorf("failed to scan series point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating series points: %w", err)
	}
	return points, nil
}

// GetRows returns all rows for a dataset; empty dataset means all rows.
func (ss *SeriesStoreImpl) GetRows(dataset string) ([]schema.SeriesRow, error) {
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(seriesTable, ss.backend)

	var query string
	var args []any
	if dataset == "" {
		query = fmt.Sprintf(`SELECT dataset, series_key, year, value FROM %s ORDER BY dataset, series_key, year`, quotedTableName)
	} else {
		switch ss.backend {
		case schema.PostgreSQLBackend:
			query = fmt.Sprintf(`SELECT dataset, series_key, year, value FROM %s WHERE dataset = $1 ORDER BY series_key, year`, quotedTableName)
		default: // SQLite and MySQL
			query = fmt.Sprintf(`SELECT dataset, series_key, year, value FROM %s WHERE dataset = ? ORDER BY series_key, year`, quotedTableName)
		}
		args = append(args, dataset)
	}

	rows, err := ss.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query dataset %q: %w", dataset, err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.SeriesRow
	for rows.Next() {
		var r schema.SeriesRow
		if err := rows.Scan(&r.Dataset, &r.SeriesKey, &r.Year, &r.Value); err != nil {
			return nil, fmt.Errorf("failed to scan series row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating series rows: %w", err)
	}
	return results, nil
}

// ListSeriesKeys returns the distinct series keys of a dataset.
func (ss *SeriesStoreImpl) ListSeriesKeys(dataset string) ([]string, error) {
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(seriesTable, ss.backend)

	var query string
	switch ss.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT DISTINCT series_key FROM %s WHERE dataset = $1 ORDER BY series_key`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`SELECT DISTINCT series_key FROM %s WHERE dataset = ? ORDER BY series_key`, quotedTableName)
	}

	rows, err := ss.db.Query(query, dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to list series keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan series key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating series keys: %w", err)
	}
	return keys, nil
}

// GetStatus returns status information about the series table.
func (ss *SeriesStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:    string(ss.backend),
		Connected:  ss.db != nil,
		TableSizes: make(map[string]int64),
	}
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return status, nil
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(seriesTable, ss.backend))
	if err := ss.db.QueryRow(countQuery).Scan(&status.SeriesRows); err != nil {
		return status, fmt.Errorf("failed to count series rows: %w", err)
	}
	status.TableSizes[seriesTable] = status.SeriesRows
	return status, nil
}

// Close closes the underlying connection.
func (ss *SeriesStoreImpl) Close() error {
	if ss.db != nil {
		return ss.db.Close()
	}
	return nil
}
