package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"emistat/internal/contract"
	"emistat/internal/iostore"
	"emistat/schema"
)

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize persistence with the loaded config
	if err := iostore.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	storeManager = iostore.Manager

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeCmd focused on store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by analysis commands. This avoids chart and
// training validation for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the observation and model store",
	Long: `Manage the database that holds observations and trained models.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (no-op)

Subcommands:
  status  - Show store statistics and connection info
  clear   - Remove all stored data
  migrate - Run schema migrations

Examples:
  # Check store status
  emistat store status

  # Wipe the store before a fresh import
  emistat store clear`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show detailed information about the observation and model store.

Displays:
- Backend type and connection status
- Number of stored observation rows and trained models
- When the last model was saved
- Per-table row counts

Examples:
  # Check store status
  emistat store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		seriesStatus, err := iostore.Manager.GetSeriesStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get series status", err)
		}
		modelStatus, err := iostore.Manager.GetModelStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get model status", err)
		}

		seriesStatus.TrainedModels = modelStatus.TrainedModels
		seriesStatus.LastSavedAt = modelStatus.LastSavedAt
		for table, size := range modelStatus.TableSizes {
			seriesStatus.TableSizes[table] = size
		}
		iostore.PrintStoreStatus(seriesStatus)
	},
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored observations and trained models",
	Long: `Delete all observation rows and trained-model records from the
configured backend.

Use this when:
- Reloading a dataset from scratch
- The store may be stale or corrupted
- Testing with a clean slate

Examples:
  # Clear the SQLite store (default)
  emistat store clear

  # Clear a MySQL store (set connection string via env variable)
  EMISTAT_STORE_BACKEND=mysql EMISTAT_STORE_DB_CONNECT="..." emistat store clear`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.ClearStore(cfg.StoreBackend); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeMigrateCmd runs schema migrations.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations",
	Long: `Run schema migrations against the configured backend.

By default migrates to the latest version. Pass --target-version to pin a
specific version, or 0 to roll everything back.

Examples:
  # Migrate to the latest schema
  emistat store migrate

  # Roll back all migrations
  emistat store migrate --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// Migrations manage their own connection; skip InitStores.
		if err := loadConfigFile(); err != nil {
			return err
		}
		backend := schema.DatabaseBackend(viper.GetString("store-backend"))
		connStr := viper.GetString("store-db-connect")
		if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
			return err
		}
		cfg.StoreBackend = backend
		cfg.StoreDBConnect = connStr
		return nil
	},
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iostore.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
