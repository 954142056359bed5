package store

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"
	"sort"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// runMigrations executes the dialect's SQL files in alphabetical order,
// each inside its own transaction. Files are idempotent (IF NOT EXISTS).
func runMigrations(ctx context.Context, db *sql.DB, dialect string) error {
	dir := "migrations/" + dialect
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		sqlBytes, err := fs.ReadFile(migrationsFS, dir+"/"+e.Name())
		if err != nil {
			return err
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}
