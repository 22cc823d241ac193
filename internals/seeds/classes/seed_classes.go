package classes

import (
	"context"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/school/classes/main/model"
	"schooldesk_backend/internals/features/school/classes/main/repository"
	helper "schooldesk_backend/internals/helpers"
)

type ClassSeed struct {
	Name       string  `json:"name"`
	Section    string  `json:"section"`
	RoomNumber *string `json:"roomNumber"`
	Capacity   int     `json:"capacity"`
}

func SeedClassesFromJSON(ctx context.Context, db *gorm.DB, filePath string) (int, error) {
	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", filePath, err)
	}
	var inputs []ClassSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		return 0, fmt.Errorf("decode %s: %w", filePath, err)
	}
	return SeedClasses(ctx, repository.NewGormClassRepository(db), inputs)
}

// SeedClasses: pasangan nama+section yang sudah ada (case-insensitive) dilewati.
func SeedClasses(ctx context.Context, repo repository.ClassRepository, inputs []ClassSeed) (int, error) {
	existing, err := repo.FindMany(ctx, nil)
	if err != nil {
		return 0, err
	}
	has := func(name, section string) bool {
		for _, c := range existing {
			if helper.EqualNames(c.Name, name) && helper.EqualNames(c.Section, section) {
				return true
			}
		}
		return false
	}

	inserted := 0
	for _, in := range inputs {
		if in.Name == "" || has(in.Name, in.Section) {
			continue
		}
		m := &model.ClassModel{Name: in.Name, Section: in.Section, RoomNumber: in.RoomNumber, Capacity: in.Capacity}
		if err := repo.Create(ctx, m); err != nil {
			return inserted, fmt.Errorf("insert class %s %s: %w", in.Name, in.Section, err)
		}
		existing = append(existing, *m)
		inserted++
	}
	log.Info().Int("inserted", inserted).Msg("[SEED] classes")
	return inserted, nil
}
