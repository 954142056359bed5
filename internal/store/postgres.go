package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	// Registers the "postgres" driver.
	_ "github.com/lib/pq"

	"github.com/praneeshadilushi-max/qr-code-generator-bot/internal/domain"
)

// PostgresRepo implements Repo against a Postgres database. This is the
// production backend; the original deployment points it at Supabase.
type PostgresRepo struct{ db *sql.DB }

// OpenPostgres connects, verifies the connection with a bounded ping, and
// runs migrations.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresRepo, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(3)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := runMigrations(ctx, db, "postgres"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return &PostgresRepo{db: db}, nil
}

func (r *PostgresRepo) Close() error {
	return r.db.Close()
}

func (r *PostgresRepo) GetQuota(ctx context.Context, userID int64) (domain.Quota, error) {
	today := domain.Today(time.Now())

	var (
		count    int
		lastDate time.Time
		updated  time.Time
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT daily_count, last_date, updated_at
		FROM qr_limits
		WHERE user_id = $1`,
		userID,
	).Scan(&count, &lastDate, &updated)

	if errors.Is(err, sql.ErrNoRows) {
		// Lazy creation; DO NOTHING makes a concurrent first touch benign.
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO qr_limits (user_id, daily_count, last_date)
			VALUES ($1, 0, $2)
			ON CONFLICT (user_id) DO NOTHING`,
			userID, today,
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
		LastDate:   lastDate.UTC().Format(domain.DateLayout),
		UpdatedAt:  updated,
	}
	if q.LastDate < today {
		if _, err := r.db.ExecContext(ctx, `
			UPDATE qr_limits
			SET daily_count = 0, last_date = $1, updated_at = now()
			WHERE user_id = $2`,
			today, userID,
		); err != nil {
			return domain.Quota{}, fmt.Errorf("reset quota: %w", err)
		}
		q.DailyCount = 0
		q.LastDate = today
	}
	return q, nil
}

func (r *PostgresRepo) SetQuota(ctx context.Context, userID int64, count int, date string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO qr_limits (user_id, daily_count, last_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET
			daily_count = excluded.daily_count,
			last_date   = excluded.last_date,
			updated_at  = now()`,
		userID, count, date,
	)
	if err != nil {
		return fmt.Errorf("write quota: %w", err)
	}
	return nil
}

func (r *PostgresRepo) AppendHistory(ctx context.Context, userID int64, username, content string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO qr_history (user_id, username, content)
		VALUES ($1, $2, $3)`,
		userID, username, domain.TruncateContent(content, domain.MaxContentLen),
	)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

func (r *PostgresRepo) TodayHistory(ctx context.Context) ([]domain.HistoryRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, username, content, created_at
		FROM qr_history
		WHERE created_at >= $1
		ORDER BY created_at ASC, id ASC`,
		domain.StartOfDay(time.Now()),
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
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &username, &rec.Content, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Username = username.String
		res = append(res, rec)
	}
	return res, rows.Err()
}

func (r *PostgresRepo) PurgeAllHistory(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `TRUNCATE qr_history`); err != nil {
		return fmt.Errorf("purge history: %w", err)
	}
	return nil
}

func (r *PostgresRepo) PurgeOldestPercent(ctx context.Context, percent int) (int, error) {
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
			LIMIT $1
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
