package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/school/classes/main/model"
	helper "schooldesk_backend/internals/helpers"
)

type ClassRepository interface {
	FindMany(ctx context.Context, schoolID *uuid.UUID) ([]model.ClassModel, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.ClassModel, error)
	Create(ctx context.Context, m *model.ClassModel) error
	Save(ctx context.Context, m *model.ClassModel) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormClassRepository struct{ db *gorm.DB }

func NewGormClassRepository(db *gorm.DB) ClassRepository {
	return &gormClassRepository{db: db}
}

// FindMany: urut nama (asc), filter school opsional.
func (r *gormClassRepository) FindMany(ctx context.Context, schoolID *uuid.UUID) ([]model.ClassModel, error) {
	q := r.db.WithContext(ctx).Model(&model.ClassModel{})
	if schoolID != nil {
		q = q.Where("school_id = ?", *schoolID)
	}
	rows := []model.ClassModel{}
	if err := q.Order("name ASC").Order("section ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormClassRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ClassModel, error) {
	var m model.ClassModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *gormClassRepository) Create(ctx context.Context, m *model.ClassModel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *gormClassRepository) Save(ctx context.Context, m *model.ClassModel) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *gormClassRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.ClassModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.ErrNotFound
	}
	return nil
}
