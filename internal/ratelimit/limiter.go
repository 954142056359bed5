// Package ratelimit merges an in-memory per-user cooldown with a durable
// daily quota read through the store.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/praneeshadilushi-max/qr-code-generator-bot/internal/domain"
)

// Reason identifies which gate denied a request.
type Reason string

const (
	ReasonCooldown Reason = "cooldown"
	ReasonDaily    Reason = "daily"
)

// Decision is the outcome of a generation request check.
type Decision struct {
	Allowed    bool
	Reason     Reason
	RetryAfter time.Duration // whole seconds remaining when Reason is cooldown
}

// QuotaStore is the durable counter the daily gate reads and writes.
// GetQuota must return a row with today's date (lazily created or reset).
type QuotaStore interface {
	GetQuota(ctx context.Context, userID int64) (domain.Quota, error)
	SetQuota(ctx context.Context, userID int64, count int, date string) error
}

// Limiter evaluates the cooldown gate then the daily gate, in that order.
// The cooldown clock lives in process memory only; losing it on restart just
// shortens one wait. The daily count lives in the store so it survives
// restarts. Any store failure denies the request (fail closed).
type Limiter struct {
	store      QuotaStore
	log        *zap.Logger
	cooldown   time.Duration
	dailyLimit int
	now        func() time.Time

	mu      sync.Mutex
	lastGen map[int64]time.Time
}

func New(store QuotaStore, log *zap.Logger, cooldown time.Duration, dailyLimit int) *Limiter {
	return &Limiter{
		store:      store,
		log:        log,
		cooldown:   cooldown,
		dailyLimit: dailyLimit,
		now:        time.Now,
		lastGen:    make(map[int64]time.Time),
	}
}

// Check decides whether userID may generate now. It never mutates state;
// a granted request must be followed by exactly one Record call.
func (l *Limiter) Check(ctx context.Context, userID int64) Decision {
	now := l.now()

	l.mu.Lock()
	last, seen := l.lastGen[userID]
	l.mu.Unlock()

	if seen {
		if elapsed := now.Sub(last); elapsed < l.cooldown {
			remain := int(l.cooldown.Seconds()) - int(elapsed.Seconds())
			return Decision{Reason: ReasonCooldown, RetryAfter: time.Duration(remain) * time.Second}
		}
	}

	q, err := l.store.GetQuota(ctx, userID)
	if err != nil {
		l.log.Warn("quota read failed, denying request",
			zap.Int64("userID", userID), zap.Error(err))
		return Decision{Reason: ReasonDaily}
	}
	if q.DailyCount >= l.dailyLimit {
		return Decision{Reason: ReasonDaily}
	}
	return Decision{Allowed: true}
}

// Record marks a successful generation: the cooldown clock is set to now and
// the stored count is re-read and written back incremented. The fresh read
// keeps the lost-update window small; two same-instant requests from one
// user can still under-count by one since the increment is two round trips.
func (l *Limiter) Record(ctx context.Context, userID int64) error {
	now := l.now()

	l.mu.Lock()
	l.lastGen[userID] = now
	l.mu.Unlock()

	q, err := l.store.GetQuota(ctx, userID)
	if err != nil {
		return err
	}
	return l.store.SetQuota(ctx, userID, q.DailyCount+1, q.LastDate)
}

// TodayCount returns the user's generation count for today. On store failure
// it reports the daily limit, consistent with the fail-closed gate.
func (l *Limiter) TodayCount(ctx context.Context, userID int64) int {
	q, err := l.store.GetQuota(ctx, userID)
	if err != nil {
		l.log.Warn("quota read failed for count report",
			zap.Int64("userID", userID), zap.Error(err))
		return l.dailyLimit
	}
	return q.DailyCount
}

// CooldownSeconds is the configured wait between generations, for UI texts.
func (l *Limiter) CooldownSeconds() int {
	return int(l.cooldown.Seconds())
}

// DailyLimit is the configured per-day cap, for UI texts.
func (l *Limiter) DailyLimit() int {
	return l.dailyLimit
}
