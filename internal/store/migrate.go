package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/raphi011/hookr/internal/log"
	"github.com/raphi011/hookr/internal/store/migrations"
)

// Migration is a single schema migration.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

var migrationPattern = regexp.MustCompile(`^(\d+)_(.+)\.up\.sql$`)

// ensureMigrationsTable creates the schema_migrations table if it doesn't exist.
func ensureMigrationsTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			dirty INTEGER NOT NULL DEFAULT 0
		)
	`)
	return err
}

// currentVersion returns the current migration version and dirty state.
func currentVersion(ctx context.Context, db *sql.DB) (int, bool, error) {
	var version, dirty int

	err := db.QueryRowContext(ctx, `SELECT version, dirty FROM schema_migrations ORDER BY version DESC LIMIT 1`).Scan(&version, &dirty)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	return version, dirty == 1, nil
}

// setVersion records the migration version and dirty state.
func setVersion(ctx context.Context, db *sql.DB, version int, dirty bool) error {
	dirtyInt := 0
	if dirty {
		dirtyInt = 1
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM schema_migrations`); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx, `INSERT INTO schema_migrations (version, dirty) VALUES (?, ?)`, version, dirtyInt)
	return err
}

// loadMigrations reads the embedded migrations sorted by version.
func loadMigrations(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	var result []Migration
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := migrationPattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		version, _ := strconv.Atoi(m[1])

		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.Name(), err)
		}
		result = append(result, Migration{Version: version, Name: m[2], SQL: string(data)})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Version < result[j].Version
	})
	return result, nil
}

// runMigration applies one migration, marking the schema dirty while its
// statements run.
func runMigration(ctx context.Context, db *sql.DB, m Migration) error {
	log.FromContext(ctx).Debug("applying migration", "version", m.Version, "name", m.Name)

	if err := setVersion(ctx, db, m.Version, true); err != nil {
		return fmt.Errorf("failed to set dirty flag: %w", err)
	}

	for _, stmt := range splitSQL(m.SQL) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute migration %d_%s: %w\nSQL: %s", m.Version, m.Name, err, stmt)
		}
	}

	if err := setVersion(ctx, db, m.Version, false); err != nil {
		return fmt.Errorf("failed to clear dirty flag: %w", err)
	}
	return nil
}

// splitSQL splits a migration on semicolons, dropping empty statements.
func splitSQL(s string) []string {
	var out []string
	for _, stmt := range strings.Split(s, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// migrate applies all pending migrations.
func migrate(ctx context.Context, db *sql.DB) error {
	if err := ensureMigrationsTable(ctx, db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	version, dirty, err := currentVersion(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database is in dirty state at version %d", version)
	}

	all, err := loadMigrations(migrations.FS)
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	for _, m := range all {
		if m.Version <= version {
			continue
		}
		if err := runMigration(ctx, db, m); err != nil {
			return err
		}
	}
	return nil
}
