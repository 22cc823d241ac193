package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/users/auth/model"
	helper "schooldesk_backend/internals/helpers"
)

type ProfileRepository interface {
	Create(ctx context.Context, p *model.ProfileModel) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProfileModel, error)
	FindByEmail(ctx context.Context, email string) (*model.ProfileModel, error)
	FindByGoogleID(ctx context.Context, googleID string) (*model.ProfileModel, error)
	List(ctx context.Context, role string) ([]model.ProfileModel, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role string) error
	LinkGoogle(ctx context.Context, id uuid.UUID, googleID string) error
}

type gormProfileRepository struct {
	db *gorm.DB
}

func NewGormProfileRepository(db *gorm.DB) ProfileRepository {
	return &gormProfileRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.ErrNotFound
	}
	return err
}

func (r *gormProfileRepository) Create(ctx context.Context, p *model.ProfileModel) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.ErrConflict
		}
		return err
	}
	return nil
}

func (r *gormProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ProfileModel, error) {
	var p model.ProfileModel
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *gormProfileRepository) FindByEmail(ctx context.Context, email string) (*model.ProfileModel, error) {
	var p model.ProfileModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *gormProfileRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.ProfileModel, error) {
	var p model.ProfileModel
	if err := r.db.WithContext(ctx).Where("google_id = ?", googleID).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *gormProfileRepository) List(ctx context.Context, role string) ([]model.ProfileModel, error) {
	q := r.db.WithContext(ctx).Model(&model.ProfileModel{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var rows []model.ProfileModel
	if err := q.Order("full_name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormProfileRepository) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	res := r.db.WithContext(ctx).Model(&model.ProfileModel{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.ErrNotFound
	}
	return nil
}

func (r *gormProfileRepository) LinkGoogle(ctx context.Context, id uuid.UUID, googleID string) error {
	return r.db.WithContext(ctx).Model(&model.ProfileModel{}).Where("id = ?", id).Update("google_id", googleID).Error
}
