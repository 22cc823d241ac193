package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"schooldesk_backend/internals/configs"
	helperAuth "schooldesk_backend/internals/helpers/auth"
)

// PurgeBlacklist menghapus token yang expired lebih dari ttl lalu.
func PurgeBlacklist(ctx context.Context, bl helperAuth.Blacklist, now time.Time, ttl time.Duration) (int64, error) {
	return bl.PurgeExpired(ctx, now.Add(-ttl))
}

// StartBlacklistCleanupScheduler: CLEANUP_CRON (default @daily), TOKEN_BLACKLIST_TTL_DAYS (default 7).
func StartBlacklistCleanupScheduler(c *cron.Cron, bl helperAuth.Blacklist) error {
	spec := configs.GetEnv("CLEANUP_CRON", "@daily")
	ttl := time.Duration(configs.GetEnvInt("TOKEN_BLACKLIST_TTL_DAYS", 7)) * 24 * time.Hour

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := PurgeBlacklist(ctx, bl, time.Now(), ttl)
		if err != nil {
			log.Error().Err(err).Msg("[CLEANUP] gagal hapus token_blacklist")
			return
		}
		log.Info().Int64("deleted", n).Msg("[CLEANUP] token_blacklist dibersihkan")
	})
	return err
}
