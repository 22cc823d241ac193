package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/school/assignments/model"
	helper "schooldesk_backend/internals/helpers"
)

type AssignmentRepository interface {
	// List: date "" = semua baris, selain itu filter assignment_date = date (YYYY-MM-DD).
	List(ctx context.Context, date string) ([]model.AssignmentModel, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.AssignmentModel, error)
	Create(ctx context.Context, m *model.AssignmentModel) error
	Save(ctx context.Context, m *model.AssignmentModel) error
	Delete(ctx context.Context, id uuid.UUID) error

	AddFile(ctx context.Context, f *model.AssignmentFileModel) error
	GetFile(ctx context.Context, id uuid.UUID) (*model.AssignmentFileModel, error)
	DeleteFile(ctx context.Context, id uuid.UUID) error
}

type gormAssignmentRepository struct{ db *gorm.DB }

func NewGormAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &gormAssignmentRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.ErrNotFound
	}
	return err
}

func preloadFiles(db *gorm.DB) *gorm.DB {
	return db.Order("uploaded_at ASC")
}

func (r *gormAssignmentRepository) List(ctx context.Context, date string) ([]model.AssignmentModel, error) {
	q := r.db.WithContext(ctx).Preload("Files", preloadFiles)
	if date != "" {
		q = q.Where("assignment_date = ?", date)
	}
	rows := []model.AssignmentModel{}
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormAssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.AssignmentModel, error) {
	var m model.AssignmentModel
	if err := r.db.WithContext(ctx).Preload("Files", preloadFiles).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *gormAssignmentRepository) Create(ctx context.Context, m *model.AssignmentModel) error {
	return r.db.WithContext(ctx).Omit("Files").Create(m).Error
}

func (r *gormAssignmentRepository) Save(ctx context.Context, m *model.AssignmentModel) error {
	return r.db.WithContext(ctx).Omit("Files").Save(m).Error
}

// Delete menghapus file row dulu lalu assignment, dalam satu transaksi.
func (r *gormAssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assignment_id = ?", id).Delete(&model.AssignmentFileModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.AssignmentModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return helper.ErrNotFound
		}
		return nil
	})
}

func (r *gormAssignmentRepository) AddFile(ctx context.Context, f *model.AssignmentFileModel) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *gormAssignmentRepository) GetFile(ctx context.Context, id uuid.UUID) (*model.AssignmentFileModel, error) {
	var f model.AssignmentFileModel
	if err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}

func (r *gormAssignmentRepository) DeleteFile(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.AssignmentFileModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.ErrNotFound
	}
	return nil
}
