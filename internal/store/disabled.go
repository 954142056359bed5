package store

import (
	"context"

	"github.com/praneeshadilushi-max/qr-code-generator-bot/internal/domain"
)

// Disabled is the no-persistence backend used when no database is
// configured. Every operation reports ErrUnavailable, which the rate
// limiter turns into a denial and the history path logs and drops.
type Disabled struct{}

func (Disabled) GetQuota(context.Context, int64) (domain.Quota, error) {
	return domain.Quota{}, ErrUnavailable
}

func (Disabled) SetQuota(context.Context, int64, int, string) error {
	return ErrUnavailable
}

func (Disabled) AppendHistory(context.Context, int64, string, string) error {
	return ErrUnavailable
}

func (Disabled) TodayHistory(context.Context) ([]domain.HistoryRecord, error) {
	return nil, ErrUnavailable
}

func (Disabled) PurgeAllHistory(context.Context) error {
	return ErrUnavailable
}

func (Disabled) PurgeOldestPercent(context.Context, int) (int, error) {
	return 0, ErrUnavailable
}

func (Disabled) Close() error { return nil }
