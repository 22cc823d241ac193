package scheduler

import (
	"context"
	"testing"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct{ calls int }

func (s *countingSweeper) SweepOverdue(context.Context) (int64, error) {
	s.calls++
	return 2, nil
}

func TestStartOverdueFeeScheduler(t *testing.T) {
	t.Setenv("FEE_OVERDUE_CRON", "@every 1h")
	c := cron.New()
	sw := &countingSweeper{}
	require.NoError(t, StartOverdueFeeScheduler(c, sw))
	require.Len(t, c.Entries(), 1)

	c.Entries()[0].Job.Run()
	assert.Equal(t, 1, sw.calls)

	t.Setenv("FEE_OVERDUE_CRON", "bogus")
	assert.Error(t, StartOverdueFeeScheduler(cron.New(), sw))
}
