package database

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"schooldesk_backend/internals/configs"
	"schooldesk_backend/internals/constants"
)

var DB *gorm.DB

func ConnectDB() {
	log.Info().Msg("connecting to PostgreSQL...")

	// Catatan: kalau pakai PgBouncer, arahkan ke port PgBouncer dan biarkan PreferSimpleProtocol=true
	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=schooldesk&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		getenv("DB_PORT", "5432"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	// semua tabel diakses schema-qualified (school.students, dst)
	constants.Schema = configs.DBSchema

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	DB = db
	log.Info().Str("schema", constants.Schema).Msg("DB connected")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Error().Err(err).Msg("pool tune failed")
		return
	}
	sqlDB.SetMaxOpenConns(configs.GetEnvInt("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(configs.GetEnvInt("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(); err != nil {
			log.Warn().Err(err).Msg("warm-up ping failed")
		}
	}()
}

// AutoMigrate membuat schema (kalau belum ada) lalu migrasi model yang diberikan.
// Hanya dipanggil saat DB_AUTO_MIGRATE=true.
func AutoMigrate(models ...any) error {
	if constants.Schema != "" {
		if err := DB.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, constants.Schema)).Error; err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	if err := DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func Ping() error {
	if DB == nil {
		return fmt.Errorf("database not connected")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
