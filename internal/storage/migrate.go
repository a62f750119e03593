package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"sort"

	"github.com/alekseinovikov/tui-money/internal/core"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type migration struct {
	version string
	script  string
}

// loadMigrations reads the embedded scripts in lexical version order.
func loadMigrations() ([]migration, error) {
	names, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w: %w", core.ErrStorage, err)
	}
	migrations := make([]migration, 0, len(names))
	for _, entry := range names {
		script, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w: %w", entry.Name(), core.ErrStorage, err)
		}
		migrations = append(migrations, migration{version: entry.Name(), script: string(script)})
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].version < migrations[j].version })
	return migrations, nil
}

// runMigrations brings the schema up to date. Each pending script runs in
// its own transaction together with the insert of its version record, so
// a failure leaves neither a partial schema change nor a stray record.
// Already-applied versions are skipped, which makes repeated opens of the
// same database file no-ops.
func runMigrations(db *sql.DB, migrations []migration) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		applied_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w: %w", core.ErrStorage, err)
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if _, ok := applied[m.version]; ok {
			continue
		}
		if err := applyOne(db, m); err != nil {
			return err
		}
	}
	return nil
}

func appliedVersions(db *sql.DB) (map[string]struct{}, error) {
	rows, err := db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("query applied versions: %w: %w", core.ErrStorage, err)
	}
	defer rows.Close()

	applied := make(map[string]struct{})
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("scan applied version: %w: %w", core.ErrStorage, err)
		}
		applied[version] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applied versions: %w: %w", core.ErrStorage, err)
	}
	return applied, nil
}

func applyOne(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration %s: %w: %w", m.version, core.ErrStorage, err)
	}
	if _, err := tx.Exec(m.script); err != nil {
		tx.Rollback()
		return fmt.Errorf("apply migration %s: %w: %w", m.version, core.ErrStorage, err)
	}
	if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, m.version); err != nil {
		tx.Rollback()
		return fmt.Errorf("record migration %s: %w: %w", m.version, core.ErrStorage, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w: %w", m.version, core.ErrStorage, err)
	}
	return nil
}
