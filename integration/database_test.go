//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestEmistatWithMySQL tests the emistat CLI with a MySQL backend.
func TestEmistatWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "emistat",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/emistat?parseTime=true", host, port.Port())

	// Set environment variables
	_ = os.Setenv("EMISTAT_STORE_BACKEND", "mysql")
	_ = os.Setenv("EMISTAT_STORE_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("EMISTAT_STORE_BACKEND") }()
	defer func() { _ = os.Unsetenv("EMISTAT_STORE_DB_CONNECT") }()

	runStoreWorkflow(t)
}

// TestEmistatWithPostgres tests the emistat CLI with a PostgreSQL backend.
func TestEmistatWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	// Set environment variables
	_ = os.Setenv("EMISTAT_STORE_BACKEND", "postgresql")
	_ = os.Setenv("EMISTAT_STORE_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("EMISTAT_STORE_BACKEND") }()
	defer func() { _ = os.Unsetenv("EMISTAT_STORE_DB_CONNECT") }()

	runStoreWorkflow(t)
}

// runStoreWorkflow walks the import -> train -> forecast flow against
// whichever backend the environment points at.
func runStoreWorkflow(t *testing.T) {
	csvPath := writeSampleCSV(t)

	_, err := runEmistatCommand(t, "store", "clear")
	require.NoError(t, err)

	out, err := runEmistatCommand(t, "import", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported")

	out, err = runEmistatCommand(t, "series", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "total")

	_, err = runEmistatCommand(t, "train", "total")
	require.NoError(t, err)

	out, err = runEmistatCommand(t, "forecast", "total")
	require.NoError(t, err)
	assert.Contains(t, out, "forecast")

	out, err = runEmistatCommand(t, "store", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Trained Models")

	_, err = runEmistatCommand(t, "models")
	require.NoError(t, err)
}
