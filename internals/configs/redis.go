package configs

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var RDB *redis.Client

// ConnectRedis: kalau REDIS_ADDR kosong / ping gagal, RDB tetap nil dan cache jatuh ke memori.
func ConnectRedis() {
	if RedisAddr == "" {
		log.Warn().Msg("REDIS_ADDR not set, caching stays in-process")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     RedisAddr,
		Password: GetEnv("REDIS_PASSWORD"),
		DB:       GetEnvInt("REDIS_DB", 0),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Str("addr", RedisAddr).Msg("redis ping failed, caching stays in-process")
		_ = client.Close()
		return
	}

	RDB = client
	log.Info().Str("addr", RedisAddr).Msg("redis connected")
}
