package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/givehub/marketplace-api/internal/config"
)

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644))
}

func TestMigrationFilesOrderAndFiltering(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "002_seed.sql")
	writeFile(t, dir, "001_init.sql")
	writeFile(t, dir, "README.md")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

	files, err := migrationFiles(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"001_init.sql", "002_seed.sql"}, files)
}

func TestMigrationFilesMissingDir(t *testing.T) {
	_, err := migrationFiles(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
}

func TestRunMigrationsSkipsWithoutPool(t *testing.T) {
	applied, err := RunMigrations(context.Background(), nil, config.PostgresConfig{
		MigrationsDir: t.TempDir(),
	}, zap.NewNop())
	require.NoError(t, err)
	require.Empty(t, applied)
}
