package iostore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"emistat/internal/contract"
	"emistat/schema"
)

// modelsTable is the name of the table for trained-model records.
const modelsTable = "emistat_trained_models"

// ModelStoreImpl implements the ModelStore interface.
type ModelStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.ModelStore = &ModelStoreImpl{} // Compile-time check

// NewModelStore creates a new ModelStore with the specified backend.
// NoneBackend yields a no-op store.
func NewModelStore(backend schema.DatabaseBackend, connStr string) (contract.ModelStore, error) {
	db, err := openDatabase(backend, connStr)
	if err != nil {
		return nil, err
	}

	store := &ModelStoreImpl{db: db, backend: backend}
	if db == nil {
		return store, nil
	}

	if _, err := db.Exec(createModelsTableQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", modelsTable, err)
	}
	return store, nil
}

// newModelStoreWithDB wraps an existing handle; used when the series and
// model stores share one database.
func newModelStoreWithDB(db *sql.DB, backend schema.DatabaseBackend) (contract.ModelStore, error) {
	store := &ModelStoreImpl{db: db, backend: backend}
	if db == nil {
		return store, nil
	}
	if _, err := db.Exec(createModelsTableQuery(backend)); err != nil {
		return nil, fmt.Errorf("failed to create table %s: %w", modelsTable, err)
	}
	return store, nil
}

// createModelsTableQuery returns the CREATE TABLE query for emistat_trained_models.
func createModelsTableQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(modelsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				series_key VARCHAR(255) NOT NULL PRIMARY KEY,
				horizon_years INT NOT NULL,
				lookback INT NOT NULL,
				hidden_units1 INT NOT NULL,
				hidden_units2 INT NOT NULL,
				activation VARCHAR(20) NOT NULL,
				optimizer_name VARCHAR(20) NOT NULL,
				training_loss VARCHAR(20) NOT NULL,
				validation_loss VARCHAR(20) NOT NULL,
				mean_absolute_error VARCHAR(20) NOT NULL,
				dataset_snapshot TEXT NOT NULL,
				train_seed INT NOT NULL,
				saved_at DATETIME(6) NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				series_key TEXT NOT NULL PRIMARY KEY,
				horizon_years INT NOT NULL,
				lookback INT NOT NULL,
				hidden_units1 INT NOT NULL,
				hidden_units2 INT NOT NULL,
				activation TEXT NOT NULL,
				optimizer_name TEXT NOT NULL,
				training_loss TEXT NOT NULL,
				validation_loss TEXT NOT NULL,
				mean_absolute_error TEXT NOT NULL,
				dataset_snapshot TEXT NOT NULL,
				train_seed INT NOT NULL,
				saved_at TIMESTAMPTZ NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				series_key TEXT NOT NULL PRIMARY KEY,
				horizon_years INTEGER NOT NULL,
				lookback INTEGER NOT NULL,
				hidden_units1 INTEGER NOT NULL,
				hidden_units2 INTEGER NOT NULL,
				activation TEXT NOT NULL,
				optimizer_name TEXT NOT NULL,
				training_loss TEXT NOT NULL,
				validation_loss TEXT NOT NULL,
				mean_absolute_error TEXT NOT NULL,
				dataset_snapshot TEXT NOT NULL,
				train_seed INTEGER NOT NULL,
				saved_at TEXT NOT NULL
			);
		`, quotedTableName)
	}
}

// SaveModel upserts the record for model.SeriesKey. The previous record
// for the key is superseded, never merged.
func (ms *ModelStoreImpl) SaveModel(model schema.TrainedModel) error {
	if ms.backend == schema.NoneBackend || ms.db == nil {
		return nil
	}

	snapshotJSON, err := json.Marshal(model.DatasetSnapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal dataset snapshot: %w", err)
	}

	quotedTableName := quoteTableName(modelsTable, ms.backend)
	args := []any{
		model.SeriesKey, model.HorizonYears,
		model.Configuration.Lookback, model.Configuration.HiddenUnits1, model.Configuration.HiddenUnits2,
		string(model.Configuration.Activation), model.Configuration.OptimizerName,
		model.Metrics.TrainingLoss, model.Metrics.ValidationLoss, model.Metrics.MeanAbsoluteError,
		string(snapshotJSON), model.TrainSeed, formatTime(model.SavedAt, ms.backend),
	}

	var query string
	switch ms.backend {
	case schema.MySQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (series_key, horizon_years, lookback, hidden_units1, hidden_units2,
			                activation, optimizer_name, training_loss, validation_loss,
			                mean_absolute_error, dataset_snapshot, train_seed, saved_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE
				horizon_years = VALUES(horizon_years), lookback = VALUES(lookback),
				hidden_units1 = VALUES(hidden_units1), hidden_units2 = VALUES(hidden_units2),
				activation = VALUES(activation), optimizer_name = VALUES(optimizer_name),
				training_loss = VALUES(training_loss), validation_loss = VALUES(validation_loss),
				mean_absolute_error = VALUES(mean_absolute_error), dataset_snapshot = VALUES(dataset_snapshot),
				train_seed = VALUES(train_seed), saved_at = VALUES(saved_at)
		`, quotedTableName)
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (series_key, horizon_years, lookback, hidden_units1, hidden_units2,
			                activation, optimizer_name, training_loss, validation_loss,
			                mean_absolute_error, dataset_snapshot, train_seed, saved_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			ON CONFLICT (series_key) DO UPDATE SET
				horizon_years = EXCLUDED.horizon_years, lookback = EXCLUDED.lookback,
				hidden_units1 = EXCLUDED.hidden_units1, hidden_units2 = EXCLUDED.hidden_units2,
				activation = EXCLUDED.activation, optimizer_name = EXCLUDED.optimizer_name,
				training_loss = EXCLUDED.training_loss, validation_loss = EXCLUDED.validation_loss,
				mean_absolute_error = EXCLUDED.mean_absolute_error, dataset_snapshot = EXCLUDED.dataset_snapshot,
				train_seed = EXCLUDED.train_seed, saved_at = EXCLUDED.saved_at
		`, quotedTableName)
	default: // SQLite
		query = fmt.Sprintf(`
			INSERT INTO %s (series_key, horizon_years, lookback, hidden_units1, hidden_units2,
			                activation, optimizer_name, training_loss, validation_loss,
			                mean_absolute_error, dataset_snapshot, train_seed, saved_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (series_key) DO UPDATE SET
				horizon_years = excluded.horizon_years, lookback = excluded.lookback,
				hidden_units1 = excluded.hidden_units1, hidden_units2 = excluded.hidden_units2,
				activation = excluded.activation, optimizer_name = excluded.optimizer_name,
				training_loss = excluded.training_loss, validation_loss = excluded.validation_loss,
				mean_absolute_error = excluded.mean_absolute_error, dataset_snapshot = excluded.dataset_snapshot,
				train_seed = excluded.train_seed, saved_at = excluded.saved_at
		`, quotedTableName)
	}

	if _, err := ms.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to upsert trained model %q: %w", model.SeriesKey, err)
	}
	return nil
}

// GetModel returns the most recently stored record for the key.
func (ms *ModelStoreImpl) GetModel(seriesKey string) (schema.TrainedModel, bool, error) {
	if ms.backend == schema.NoneBackend || ms.db == nil {
		return schema.TrainedModel{}, false, nil
	}

	quotedTableName := quoteTableName(modelsTable, ms.backend)

	var query string
	switch ms.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`%s WHERE series_key = $1`, selectModelColumns(quotedTableName))
	default: // SQLite and MySQL
		query = fmt.Sprintf(`%s WHERE series_key = ?`, selectModelColumns(quotedTableName))
	}

	model, err := ms.scanModel(ms.db.QueryRow(query, seriesKey))
	if err == sql.ErrNoRows {
		return schema.TrainedModel{}, false, nil
	}
	if err != nil {
		return schema.TrainedModel{}, false, fmt.Errorf("failed to load trained model %q: %w", seriesKey, err)
	}
	return model, true, nil
}

// ListModels returns all stored records ordered by series key.
func (ms *ModelStoreImpl) ListModels() ([]schema.TrainedModel, error) {
	if ms.backend == schema.NoneBackend || ms.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(modelsTable, ms.backend)
	query := fmt.Sprintf(`%s ORDER BY series_key`, selectModelColumns(quotedTableName))

	rows, err := ms.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query trained models: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var models []schema.TrainedModel
	for rows.Next() {
		model, err := ms.scanModel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trained model: %w", err)
		}
		models = append(models, model)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trained models: %w", err)
	}
	return models, nil
}

// DeleteModel removes the record for a key; missing keys are not an error.
func (ms *ModelStoreImpl) DeleteModel(seriesKey string) error {
	if ms.backend == schema.NoneBackend || ms.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(modelsTable, ms.backend)

	var query string
	switch ms.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`DELETE FROM %s WHERE series_key = $1`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`DELETE FROM %s WHERE series_key = ?`, quotedTableName)
	}

	if _, err := ms.db.Exec(query, seriesKey); err != nil {
		return fmt.Errorf("failed to delete trained model %q: %w", seriesKey, err)
	}
	return nil
}

// GetStatus returns status information about the models table.
func (ms *ModelStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:    string(ms.backend),
		Connected:  ms.db != nil,
		TableSizes: make(map[string]int64),
	}
	if ms.backend == schema.NoneBackend || ms.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(modelsTable, ms.backend)
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName)
	if err := ms.db.QueryRow(countQuery).Scan(&status.TrainedModels); err != nil {
		return status, fmt.Errorf("failed to count trained models: %w", err)
	}
	status.TableSizes[modelsTable] = status.TrainedModels

	if status.TrainedModels > 0 {
		lastQuery := fmt.Sprintf("SELECT saved_at FROM %s ORDER BY saved_at DESC LIMIT 1", quotedTableName)
		row := ms.db.QueryRow(lastQuery)

		switch ms.backend {
		case schema.SQLiteBackend:
			var savedAtStr string
			if err := row.Scan(&savedAtStr); err != nil {
				return status, fmt.Errorf("failed to get last saved time: %w", err)
			}
			savedAt, err := time.Parse(time.RFC3339Nano, savedAtStr)
			if err != nil {
				return status, fmt.Errorf("failed to parse saved_at: %w", err)
			}
			status.LastSavedAt = savedAt
		default: // MySQL and PostgreSQL store as native datetime
			if err := row.Scan(&status.LastSavedAt); err != nil {
				return status, fmt.Errorf("failed to get last saved time: %w", err)
			}
		}
	}

	return status, nil
}

// Close closes the underlying connection.
func (ms *ModelStoreImpl) Close() error {
	if ms.db != nil {
		return ms.db.Close()
	}
	return nil
}

// selectModelColumns builds the shared SELECT clause for model queries.
func selectModelColumns(quotedTableName string) string {
	return fmt.Sprintf(`SELECT series_key, horizon_years, lookback, hidden_units1, hidden_units2,
		activation, optimizer_name, training_loss, validation_loss,
		mean_absolute_error, dataset_snapshot, train_seed, saved_at FROM %s`, quotedTableName)
}

// rowScanner abstracts sql.Row and sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanModel reads one trained-model record, handling the per-backend
// saved_at representation.
func (ms *ModelStoreImpl) scanModel(row rowScanner) (schema.TrainedModel, error) {
	var (
		model       schema.TrainedModel
		activation  string
		snapshot    string
		savedAtStr  string
		savedAtTime time.Time
	)

	var savedAtDest any = &savedAtTime
	if ms.backend == schema.SQLiteBackend {
		savedAtDest = &savedAtStr
	}

	err := row.Scan(
		&model.SeriesKey, &model.HorizonYears,
		&model.Configuration.Lookback, &model.Configuration.HiddenUnits1, &model.Configuration.HiddenUnits2,
		&activation, &model.Configuration.OptimizerName,
		&model.Metrics.TrainingLoss, &model.Metrics.ValidationLoss, &model.Metrics.MeanAbsoluteError,
		&snapshot, &model.TrainSeed, savedAtDest,
	)
	if err != nil {
		return schema.TrainedModel{}, err
	}

	model.Configuration.Activation = schema.ActivationKind(activation)
	if err := json.Unmarshal([]byte(snapshot), &model.DatasetSnapshot); err != nil {
		return schema.TrainedModel{}, fmt.Errorf("failed to unmarshal dataset snapshot: %w", err)
	}

	if ms.backend == schema.SQLiteBackend {
		savedAt, err := time.Parse(time.RFC3339Nano, savedAtStr)
		if err != nil {
			return schema.TrainedModel{}, fmt.Errorf("failed to parse saved_at: %w", err)
		}
		model.SavedAt = savedAt
	} else {
		model.SavedAt = savedAtTime
	}
	return model, nil
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}
