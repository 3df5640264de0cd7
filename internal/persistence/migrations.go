package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/givehub/marketplace-api/internal/config"
)

// RunMigrations executes the SQL migrations from the configured directory in
// lexical order and returns the applied filenames.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, cfg config.PostgresConfig, logger *zap.Logger) ([]string, error) {
	if pool == nil {
		logger.Warn("no postgres pool available; skipping migrations")
		return nil, nil
	}

	filenames, err := migrationFiles(cfg.MigrationsDir)
	if err != nil {
		return nil, err
	}

	applied := make([]string, 0, len(filenames))
	for _, name := range filenames {
		content, err := os.ReadFile(filepath.Join(cfg.MigrationsDir, name))
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", name, err)
		}

		if _, err := pool.Exec(ctx, string(content)); err != nil {
			return applied, fmt.Errorf("apply migration %s: %w", name, err)
		}
		applied = append(applied, name)
	}

	logger.Info("migrations applied",
		zap.Int("count", len(applied)),
		zap.Strings("files", applied))
	return applied, nil
}

// migrationFiles lists the .sql files of dir in apply order.
func migrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	filenames := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		filenames = append(filenames, entry.Name())
	}

	sort.Strings(filenames)
	return filenames, nil
}
