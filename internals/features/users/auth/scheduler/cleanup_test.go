package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helperAuth "schooldesk_backend/internals/helpers/auth"
)

func TestPurgeBlacklist(t *testing.T) {
	now := time.Date(2024, 8, 10, 0, 0, 0, 0, time.UTC)
	bl := helperAuth.NewMemoryBlacklist("s")
	ctx := context.Background()
	_ = bl.Add(ctx, "old", now.Add(-10*24*time.Hour))
	_ = bl.Add(ctx, "recent", now.Add(-2*24*time.Hour))

	n, err := PurgeBlacklist(ctx, bl, now, 7*24*time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestStartBlacklistCleanupScheduler(t *testing.T) {
	t.Setenv("CLEANUP_CRON", "@every 1h")
	c := cron.New()
	require.NoError(t, StartBlacklistCleanupScheduler(c, helperAuth.NewMemoryBlacklist("s")))
	assert.Len(t, c.Entries(), 1)

	t.Setenv("CLEANUP_CRON", "not a schedule")
	assert.Error(t, StartBlacklistCleanupScheduler(cron.New(), helperAuth.NewMemoryBlacklist("s")))
}
