package iostore

import (
	"database/sql"
	"fmt"
	"sync"

	"emistat/internal/contract"
	"emistat/schema"
)

var (
	// Manager is the global store manager used by command execution.
	Manager contract.StoreManager

	initOnce sync.Once
	initErr  error
	sharedDB *sql.DB
)

// InitStores initializes the global store manager exactly once. Both the
// series and model stores share one database handle so a single file or
// connection string covers the whole store.
func InitStores(backend schema.DatabaseBackend, connStr string) error {
	initOnce.Do(func() {
		db, err := openDatabase(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to open %s store: %w", backend, err)
			return
		}
		sharedDB = db

		seriesStore, err := newSeriesStoreWithDB(db, backend)
		if err != nil {
			initErr = err
			return
		}
		modelStore, err := newModelStoreWithDB(db, backend)
		if err != nil {
			initErr = err
			return
		}
		Manager = NewStoreManager(seriesStore, modelStore)
	})
	return initErr
}

// CloseStores closes the shared database handle, if any.
func CloseStores() error {
	if sharedDB != nil {
		return sharedDB.Close()
	}
	return nil
}

// ClearStore drops all rows from both store tables.
func ClearStore(backend schema.DatabaseBackend) error {
	if sharedDB == nil || backend == schema.NoneBackend {
		return nil
	}
	for _, table := range []string{seriesTable, modelsTable} {
		query := fmt.Sprintf("DELETE FROM %s", quoteTableName(table, backend))
		if _, err := sharedDB.Exec(query); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}
