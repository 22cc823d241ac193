package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/features/users/auth/model"
	"schooldesk_backend/internals/features/users/auth/repository"
	helper "schooldesk_backend/internals/helpers"
)

type UserSeed struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	FullName string `json:"fullName"`
}

// SeedUsersFromJSON: email yang sudah ada dilewati. Return jumlah yang di-insert.
func SeedUsersFromJSON(ctx context.Context, db *gorm.DB, filePath string) (int, error) {
	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", filePath, err)
	}
	var inputs []UserSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		return 0, fmt.Errorf("decode %s: %w", filePath, err)
	}
	return SeedUsers(ctx, repository.NewGormProfileRepository(db), inputs)
}

func SeedUsers(ctx context.Context, repo repository.ProfileRepository, inputs []UserSeed) (int, error) {
	inserted := 0
	for _, data := range inputs {
		email := strings.ToLower(strings.TrimSpace(data.Email))
		role := strings.ToUpper(strings.TrimSpace(data.Role))
		if email == "" || data.Password == "" || !constants.IsValidRole(role) {
			log.Warn().Str("email", email).Msg("[SEED] user tidak valid, dilewati")
			continue
		}
		if _, err := repo.FindByEmail(ctx, email); err == nil {
			log.Info().Str("email", email).Msg("[SEED] user sudah ada, dilewati")
			continue
		} else if !errors.Is(err, helper.ErrNotFound) {
			return inserted, err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
		if err != nil {
			return inserted, err
		}
		h := string(hash)
		p := &model.ProfileModel{
			Email:        email,
			PasswordHash: &h,
			Role:         role,
			FullName:     strings.TrimSpace(data.FullName),
			IsActive:     true,
		}
		if err := repo.Create(ctx, p); err != nil {
			return inserted, fmt.Errorf("insert %s: %w", email, err)
		}
		inserted++
		log.Info().Str("email", email).Str("role", role).Msg("[SEED] user dibuat")
	}
	return inserted, nil
}
