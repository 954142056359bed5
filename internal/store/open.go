package store

import (
	"context"
	"strings"
)

// Open picks a backend from the DSN: postgres:// URIs get the Postgres
// store, any other non-empty value is a SQLite file path, and an empty DSN
// yields the disabled store so the bot runs without persistence instead of
// refusing to start.
func Open(ctx context.Context, dsn string) (Repo, error) {
	switch {
	case dsn == "":
		return Disabled{}, nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return OpenPostgres(ctx, dsn)
	default:
		return OpenSQLite(ctx, dsn)
	}
}
