package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/praneeshadilushi-max/qr-code-generator-bot/internal/domain"
)

// SQLiteRepo implements Repo on an embedded SQLite database, for local and
// single-box deployments that have no Postgres around.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the database file, applies PRAGMAs, runs
// migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// SQLite is a single-writer engine; one connection avoids lock errors.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := runMigrations(ctx, db, "sqlite"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return &SQLiteRepo{db: db}, nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepo) GetQuota(ctx context.Context, userID int64) (domain.Quota, error) {
	now := time.Now().UTC()
	today := domain.Today(now)

	var (
		count    int
		lastDate string
		updated  int64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT daily_count, last_date, updated_at
		FROM qr_limits
		WHERE user_id = ?`,
		userID,
	).Scan(&count, &lastDate, &updated)

	if errors.Is(err, sql.ErrNoRows) {
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO qr_limits (user_id, daily_count, last_date, updated_at)
			VALUES (?, 0, ?, ?)
			ON CONFLICT (user_id) DO NOTHING`,
			userID, today, now.Unix(),
		); err != nil {
			return domain.Quota{}, fmt.Errorf("create quota row: %w", err)
		}
		return domain.Quota{UserID: userID, DailyCount: 0, LastDate: today}, nil
	}
	if err != nil {
		return domain.Quota{}, fmt.Errorf("read quota: %w", err)
	}

	q := domain.Quota{
		UserID:     userID,
		DailyCount: count,
		LastDate:   lastDate,
		UpdatedAt:  time.Unix(updated, 0).UTC(),
	}
	if q.LastDate < today {
		if _, err := r.db.ExecContext(ctx, `
			UPDATE qr_limits
			SET daily_count = 0, last_date = ?, updated_at = ?
			WHERE user_id = ?`,
			today, now.Unix(), userID,
		); err != nil {
			return domain.Quota{}, fmt.Errorf("reset quota: %w", err)
		}
		q.DailyCount = 0
		q.LastDate = today
	}
	return q, nil
}

func (r *SQLiteRepo) SetQuota(ctx context.Context, userID int64, count int, date string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO qr_limits (user_id, daily_count, last_date, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			daily_count = excluded.daily_count,
			last_date   = excluded.last_date,
			updated_at  = excluded.updated_at`,
		userID, count, date, time.Now().UTC().Unix(),
	)
	if err != nil {
		return fmt.Errorf("write quota: %w", err)
	}
	return nil
}

func (r *SQLiteRepo) AppendHistory(ctx context.Context, userID int64, username, content string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO qr_history (user_id, username, content, created_at)
		VALUES (?, ?, ?, ?)`,
		userID, username, domain.TruncateContent(content, domain.MaxContentLen),
		time.Now().UTC().Unix(),
	)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

func (r *SQLiteRepo) TodayHistory(ctx context.Context) ([]domain.HistoryRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, username, content, created_at
		FROM qr_history
		WHERE created_at >= ?
		ORDER BY created_at ASC, id ASC`,
		domain.StartOfDay(time.Now()).Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	defer rows.Close()

	var res []domain.HistoryRecord
	for rows.Next() {
		var (
			rec      domain.HistoryRecord
			username sql.NullString
			created  int64
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &username, &rec.Content, &created); err != nil {
			return nil, err
		}
		rec.Username = username.String
		rec.CreatedAt = time.Unix(created, 0).UTC()
		res = append(res, rec)
	}
	return res, rows.Err()
}

func (r *SQLiteRepo) PurgeAllHistory(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM qr_history`); err != nil {
		return fmt.Errorf("purge history: %w", err)
	}
	return nil
}

func (r *SQLiteRepo) PurgeOldestPercent(ctx context.Context, percent int) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM qr_history`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	n := total * percent / 100
	if n == 0 {
		return 0, nil
	}

	res, err := r.db.ExecContext(ctx, `
		DELETE FROM qr_history
		WHERE id IN (
			SELECT id FROM qr_history
			ORDER BY created_at ASC, id ASC
			LIMIT ?
		)`,
		n,
	)
	if err != nil {
		return 0, fmt.Errorf("purge history: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(deleted), nil
}
