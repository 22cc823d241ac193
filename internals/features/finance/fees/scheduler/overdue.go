package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"schooldesk_backend/internals/configs"
)

type overdueSweeper interface {
	SweepOverdue(ctx context.Context) (int64, error)
}

// StartOverdueFeeScheduler: FEE_OVERDUE_CRON (default tiap 00:15).
func StartOverdueFeeScheduler(c *cron.Cron, svc overdueSweeper) error {
	spec := configs.GetEnv("FEE_OVERDUE_CRON", "15 0 * * *")
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := svc.SweepOverdue(ctx)
		if err != nil {
			log.Error().Err(err).Msg("[FEES] sweep overdue gagal")
			return
		}
		if n > 0 {
			log.Info().Int64("updated", n).Msg("[FEES] tagihan ditandai OVERDUE")
		}
	})
	return err
}
