package store

import (
	"context"
	"errors"

	"github.com/praneeshadilushi-max/qr-code-generator-bot/internal/domain"
)

// ErrUnavailable is returned by every operation of the disabled store and
// signals callers to apply their degraded path (deny quota, drop history).
var ErrUnavailable = errors.New("store unavailable")

// Repo defines storage operations for quotas and generation history.
type Repo interface {
	// GetQuota returns the user's quota row for today. A missing row is
	// created with a zero count; a row dated before today is reset to zero
	// (write-through) before it is returned.
	GetQuota(ctx context.Context, userID int64) (domain.Quota, error)

	// SetQuota upserts the row, overwriting count and date and bumping the
	// last-modified timestamp.
	SetQuota(ctx context.Context, userID int64, count int, date string) error

	// AppendHistory stores one accepted generation; content is truncated
	// to domain.MaxContentLen runes.
	AppendHistory(ctx context.Context, userID int64, username, content string) error

	// TodayHistory returns all records created since midnight UTC.
	TodayHistory(ctx context.Context) ([]domain.HistoryRecord, error)

	// PurgeAllHistory deletes every history record.
	PurgeAllHistory(ctx context.Context) error

	// PurgeOldestPercent deletes the oldest floor(total*p/100) records by
	// created_at ascending and returns how many were deleted. An empty
	// table, or a computed count of zero, yields (0, nil).
	PurgeOldestPercent(ctx context.Context, percent int) (int, error)

	Close() error
}
