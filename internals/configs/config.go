package configs

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	JWTSecret        string
	JWTRefreshSecret string
	GoogleClientID   string
	DBSchema         string
	RedisAddr        string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	InitLogger(GetEnv("LOG_LEVEL", "info"))

	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Warn().Msg(".env file not found, using system environment")
		} else {
			log.Info().Msg(".env file loaded")
		}
	} else {
		log.Info().Msg("running in Railway, using system environment")
	}

	// .env bisa override LOG_LEVEL
	InitLogger(GetEnv("LOG_LEVEL", "info"))

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")
	GoogleClientID = GetEnv("GOOGLE_CLIENT_ID")
	DBSchema = GetEnv("DB_SCHEMA", "school")
	RedisAddr = GetEnv("REDIS_ADDR")

	for key, val := range map[string]string{
		"JWT_SECRET":       JWTSecret,
		"GOOGLE_CLIENT_ID": GoogleClientID,
	} {
		if val == "" {
			log.Warn().Str("key", key).Msg("env not set")
		}
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func GetEnvBool(key string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// =======================
// LOGGER
// =======================
func InitLogger(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Str("app", "schooldesk").Logger()
}

// =======================
// DATABASE CONNECTOR (tools)
// =======================

// OpenDirectDB dipakai tooling (cmd/policies) tanpa tuning pool.
func OpenDirectDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		GetEnv("DB_USER"), GetEnv("DB_PASSWORD"), GetEnv("DB_HOST"),
		GetEnv("DB_PORT", "5432"), GetEnv("DB_NAME"), GetEnv("DB_SSLMODE", "require"))

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: NewGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// =======================
// GORM LOGGER (zerolog)
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	nl := *l
	nl.LogLevel = level
	return &nl
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Info().Msgf(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Warn().Msgf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Error().Msgf(msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error && err != gormLogger.ErrRecordNotFound:
		log.Error().Err(err).Str("file", file).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query failed")
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Warn().Str("file", file).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("slow sql")
	case l.LogLevel >= gormLogger.Info:
		log.Debug().Str("file", file).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query")
	}
}
