package seeds

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"schooldesk_backend/internals/seeds/classes"
	"schooldesk_backend/internals/seeds/users/auth"
)

// RunAllSeeds: dijalankan saat DB_SEED=true. dir berisi users.json & classes.json.
func RunAllSeeds(ctx context.Context, db *gorm.DB, dir string) {
	if n, err := classes.SeedClassesFromJSON(ctx, db, filepath.Join(dir, "classes.json")); err != nil {
		log.Error().Err(err).Msg("[SEED] classes gagal")
	} else {
		log.Info().Int("inserted", n).Msg("[SEED] classes selesai")
	}

	if n, err := auth.SeedUsersFromJSON(ctx, db, filepath.Join(dir, "users.json")); err != nil {
		log.Error().Err(err).Msg("[SEED] users gagal")
	} else {
		log.Info().Int("inserted", n).Msg("[SEED] users selesai")
	}
}
