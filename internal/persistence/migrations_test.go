package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigrationFiles_SortedSQLOnly(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0002_rates.sql", "0001_init.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o700))

	files, err := migrationFiles(dir)

	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.sql", "0002_rates.sql"}, files)
}

func TestMigrationFiles_ShippedSchema(t *testing.T) {
	files, err := migrationFiles(filepath.Join("..", "..", "migrations"))

	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.sql", "0002_profitability.sql"}, files)
}

func TestMigrationFiles_MissingDir(t *testing.T) {
	_, err := migrationFiles(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorContains(t, err, "read migrations")
}

func TestPendingMigrations_SkipsApplied(t *testing.T) {
	files := []string{"0001_init.sql", "0002_rates.sql", "0003_time_off_index.sql"}

	pending := pendingMigrations(files, map[string]bool{"0001_init.sql": true, "0000_legacy.sql": true})

	assert.Equal(t, []string{"0002_rates.sql", "0003_time_off_index.sql"}, pending)
	assert.Empty(t, pendingMigrations(files, map[string]bool{
		"0001_init.sql": true, "0002_rates.sql": true, "0003_time_off_index.sql": true,
	}))
}

func TestRunMigrations_RequiresPool(t *testing.T) {
	err := RunMigrations(context.Background(), nil, t.TempDir(), zap.NewNop())
	assert.ErrorContains(t, err, "no postgres pool")
}
