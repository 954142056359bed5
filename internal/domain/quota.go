package domain

import "time"

// DateLayout is the canonical calendar-day stamp stored with a quota row.
// Lexicographic order matches chronological order.
const DateLayout = "2006-01-02"

// Quota is one user's durable daily generation counter.
type Quota struct {
	UserID     int64
	DailyCount int
	LastDate   string // DateLayout, UTC
	UpdatedAt  time.Time
}

// Today returns the current UTC day stamp.
func Today(now time.Time) string {
	return now.UTC().Format(DateLayout)
}

// Stale reports whether the quota belongs to a day before now's UTC day,
// meaning the counter must be reset before it is read or incremented.
func (q Quota) Stale(now time.Time) bool {
	return q.LastDate < Today(now)
}

// StartOfDay returns midnight UTC of now's day, the lower bound for
// "today's" history queries.
func StartOfDay(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
