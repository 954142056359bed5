package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praneeshadilushi-max/qr-code-generator-bot/internal/domain"
)

func openTestRepo(t *testing.T) *SQLiteRepo {
	t.Helper()
	repo, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "qrbot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestGetQuota_CreatesRowLazily(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	q, err := repo.GetQuota(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), q.UserID)
	assert.Equal(t, 0, q.DailyCount)
	assert.Equal(t, domain.Today(time.Now()), q.LastDate)

	// Second read sees the persisted row, not another fresh one.
	require.NoError(t, repo.SetQuota(ctx, 42, 7, q.LastDate))
	q, err = repo.GetQuota(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 7, q.DailyCount)
}

func TestGetQuota_ResetsStaleDate(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	yesterday := domain.Today(time.Now().AddDate(0, 0, -1))
	require.NoError(t, repo.SetQuota(ctx, 1, 400, yesterday))

	q, err := repo.GetQuota(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, q.DailyCount)
	assert.Equal(t, domain.Today(time.Now()), q.LastDate)

	// The reset was written through, not just returned.
	q, err = repo.GetQuota(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, q.DailyCount)
}

func TestSetQuota_OverwritesOnConflict(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	today := domain.Today(time.Now())

	require.NoError(t, repo.SetQuota(ctx, 1, 3, today))
	require.NoError(t, repo.SetQuota(ctx, 1, 9, today))

	q, err := repo.GetQuota(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 9, q.DailyCount)
}

func TestAppendHistory_TruncatesContent(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	long := strings.Repeat("x", 150)
	require.NoError(t, repo.AppendHistory(ctx, 1, "alice", long))

	recs, err := repo.TodayHistory(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, strings.Repeat("x", domain.MaxContentLen), recs[0].Content)
	assert.Equal(t, "alice", recs[0].Username)
}

func TestTodayHistory_ExcludesOlderDays(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	require.NoError(t, repo.AppendHistory(ctx, 1, "alice", "today"))

	// Backdate a row to before midnight UTC.
	old := domain.StartOfDay(time.Now()).Add(-time.Hour).Unix()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO qr_history (user_id, username, content, created_at)
		VALUES (?, ?, ?, ?)`,
		1, "alice", "yesterday", old,
	)
	require.NoError(t, err)

	recs, err := repo.TodayHistory(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "today", recs[0].Content)
}

func TestPurgeAllHistory(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.AppendHistory(ctx, int64(i), "u", "content"))
	}
	require.NoError(t, repo.PurgeAllHistory(ctx))

	recs, err := repo.TodayHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestPurgeOldestPercent_Ladder(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	for i := 1; i <= 10; i++ {
		require.NoError(t, repo.AppendHistory(ctx, 1, "u", fmt.Sprintf("r%02d", i)))
	}

	// 10 rows: 50% deletes the 5 oldest.
	deleted, err := repo.PurgeOldestPercent(ctx, 50)
	require.NoError(t, err)
	assert.Equal(t, 5, deleted)

	recs, err := repo.TodayHistory(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 5)
	assert.Equal(t, "r06", recs[0].Content)

	// 5 rows: floor(5*0.5)=2.
	deleted, err = repo.PurgeOldestPercent(ctx, 50)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	recs, err = repo.TodayHistory(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "r08", recs[0].Content)
}

func TestPurgeOldestPercent_EmptyTable(t *testing.T) {
	repo := openTestRepo(t)

	deleted, err := repo.PurgeOldestPercent(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
}

func TestPurgeOldestPercent_RoundsDownToZero(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	require.NoError(t, repo.AppendHistory(ctx, 1, "u", "only"))

	deleted, err := repo.PurgeOldestPercent(ctx, 50)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
}
