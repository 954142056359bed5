package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_EmptyDSNGivesDisabledStore(t *testing.T) {
	repo, err := Open(context.Background(), "")
	require.NoError(t, err)
	assert.IsType(t, Disabled{}, repo)
}

func TestOpen_FilePathGivesSQLite(t *testing.T) {
	repo, err := Open(context.Background(), filepath.Join(t.TempDir(), "bot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	assert.IsType(t, &SQLiteRepo{}, repo)
}

func TestDisabled_EveryOperationFailsClosed(t *testing.T) {
	ctx := context.Background()
	var repo Repo = Disabled{}

	_, err := repo.GetQuota(ctx, 1)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, repo.SetQuota(ctx, 1, 1, "2025-03-10"), ErrUnavailable)
	assert.ErrorIs(t, repo.AppendHistory(ctx, 1, "u", "c"), ErrUnavailable)

	_, err = repo.TodayHistory(ctx)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, repo.PurgeAllHistory(ctx), ErrUnavailable)

	n, err := repo.PurgeOldestPercent(ctx, 50)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Zero(t, n)

	assert.NoError(t, repo.Close())
}
