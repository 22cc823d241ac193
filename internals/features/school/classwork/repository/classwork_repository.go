package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/school/classwork/dto"
	"schooldesk_backend/internals/features/school/classwork/model"
	helper "schooldesk_backend/internals/helpers"
)

type ClassworkRepository interface {
	List(ctx context.Context, f dto.ListFilter) ([]model.ClassworkModel, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.ClassworkModel, error)
	Create(ctx context.Context, m *model.ClassworkModel) error
	Save(ctx context.Context, m *model.ClassworkModel) error
	Delete(ctx context.Context, id uuid.UUID) error

	AddFile(ctx context.Context, f *model.ClassworkFileModel) error
	GetFile(ctx context.Context, id uuid.UUID) (*model.ClassworkFileModel, error)
	DeleteFile(ctx context.Context, id uuid.UUID) error
}

type gormClassworkRepository struct{ db *gorm.DB }

func NewGormClassworkRepository(db *gorm.DB) ClassworkRepository {
	return &gormClassworkRepository{db: db}
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Class", func(tx *gorm.DB) *gorm.DB { return tx.Select("id", "name", "section", "room_number", "capacity") }).
		Preload("Files", func(tx *gorm.DB) *gorm.DB { return tx.Order("uploaded_at ASC") })
}

func (r *gormClassworkRepository) List(ctx context.Context, f dto.ListFilter) ([]model.ClassworkModel, error) {
	rows := []model.ClassworkModel{}
	if f.Restricted && len(f.ClassIDs) == 0 {
		return rows, nil
	}
	q := withRelations(r.db.WithContext(ctx))
	if len(f.ClassIDs) > 0 {
		q = q.Where("class_id IN ?", f.ClassIDs)
	}
	if err := q.Order("date DESC").Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormClassworkRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ClassworkModel, error) {
	var m model.ClassworkModel
	if err := withRelations(r.db.WithContext(ctx)).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *gormClassworkRepository) Create(ctx context.Context, m *model.ClassworkModel) error {
	return r.db.WithContext(ctx).Omit("Class", "Files").Create(m).Error
}

func (r *gormClassworkRepository) Save(ctx context.Context, m *model.ClassworkModel) error {
	return r.db.WithContext(ctx).Omit("Class", "Files").Save(m).Error
}

// Delete: lampiran dulu, lalu classwork, satu transaksi.
func (r *gormClassworkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("classwork_id = ?", id).Delete(&model.ClassworkFileModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.ClassworkModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return helper.ErrNotFound
		}
		return nil
	})
}

func (r *gormClassworkRepository) AddFile(ctx context.Context, f *model.ClassworkFileModel) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *gormClassworkRepository) GetFile(ctx context.Context, id uuid.UUID) (*model.ClassworkFileModel, error) {
	var f model.ClassworkFileModel
	if err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *gormClassworkRepository) DeleteFile(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.ClassworkFileModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.ErrNotFound
	}
	return nil
}
