package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/school/sports_enrollments/dto"
	"schooldesk_backend/internals/features/school/sports_enrollments/model"
	helper "schooldesk_backend/internals/helpers"
)

type SportsEnrollmentRepository interface {
	// List: terbaru dulu.
	List(ctx context.Context, p dto.ListParams) ([]model.SportsEnrollmentModel, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.SportsEnrollmentModel, error)
	Create(ctx context.Context, m *model.SportsEnrollmentModel) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ExistsByName: nama di-trim, case-insensitive, dalam satu kelas.
	ExistsByName(ctx context.Context, name string, classID uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type gormSportsEnrollmentRepository struct{ db *gorm.DB }

func NewGormSportsEnrollmentRepository(db *gorm.DB) SportsEnrollmentRepository {
	return &gormSportsEnrollmentRepository{db: db}
}

func (r *gormSportsEnrollmentRepository) List(ctx context.Context, p dto.ListParams) ([]model.SportsEnrollmentModel, error) {
	q := r.db.WithContext(ctx).Model(&model.SportsEnrollmentModel{})
	if p.ClassID != nil {
		q = q.Where("class_id = ?", *p.ClassID)
	}
	if s := strings.TrimSpace(p.Search); s != "" {
		like := "%" + s + "%"
		q = q.Where("student_name ILIKE ? OR parent_name ILIKE ? OR contact_number LIKE ?", like, like, like)
	}
	var rows []model.SportsEnrollmentModel
	if err := q.Order("enrolled_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormSportsEnrollmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.SportsEnrollmentModel, error) {
	var m model.SportsEnrollmentModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *gormSportsEnrollmentRepository) Create(ctx context.Context, m *model.SportsEnrollmentModel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *gormSportsEnrollmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.SportsEnrollmentModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.ErrNotFound
	}
	return nil
}

func (r *gormSportsEnrollmentRepository) ExistsByName(ctx context.Context, name string, classID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.SportsEnrollmentModel{}).
		Where("LOWER(TRIM(student_name)) = LOWER(?) AND class_id = ?", strings.TrimSpace(name), classID).
		Count(&n).Error
	return n > 0, err
}

func (r *gormSportsEnrollmentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.SportsEnrollmentModel{}).Count(&n).Error
	return n, err
}
