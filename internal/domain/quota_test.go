package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuotaStale(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	assert.False(t, Quota{LastDate: "2025-03-10"}.Stale(now))
	assert.True(t, Quota{LastDate: "2025-03-09"}.Stale(now))
	assert.True(t, Quota{LastDate: "2024-12-31"}.Stale(now))
}

func TestTodayUsesUTC(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC.
	loc := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2025, time.March, 10, 23, 30, 0, 0, loc)
	assert.Equal(t, "2025-03-11", Today(now))
}

func TestStartOfDay(t *testing.T) {
	now := time.Date(2025, time.March, 10, 18, 42, 7, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), StartOfDay(now))
}
