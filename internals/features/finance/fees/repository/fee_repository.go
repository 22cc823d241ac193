package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/finance/fees/dto"
	"schooldesk_backend/internals/features/finance/fees/model"
	studentModel "schooldesk_backend/internals/features/school/students/model"
	helper "schooldesk_backend/internals/helpers"
	"schooldesk_backend/internals/helpers/dbtime"
)

type FeeRepository interface {
	List(ctx context.Context, f dto.FeeFilter) ([]model.FeeModel, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.FeeModel, error)
	FindByOrderID(ctx context.Context, orderID string) (*model.FeeModel, error)
	Create(ctx context.Context, m *model.FeeModel) error
	Save(ctx context.Context, m *model.FeeModel) error
	Delete(ctx context.Context, id uuid.UUID) error
	// MarkOverdue: PENDING dengan due_date < today -> OVERDUE.
	MarkOverdue(ctx context.Context, today dbtime.Date) (int64, error)
}

type gormFeeRepository struct{ db *gorm.DB }

func NewGormFeeRepository(db *gorm.DB) FeeRepository {
	return &gormFeeRepository{db: db}
}

func withStudent(db *gorm.DB) *gorm.DB {
	return db.Preload("Student", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name", "admission_number", "class_id", "parent_email")
	}).Preload("Student.Class")
}

func (r *gormFeeRepository) List(ctx context.Context, f dto.FeeFilter) ([]model.FeeModel, error) {
	q := withStudent(r.db.WithContext(ctx).Model(&model.FeeModel{}))
	if f.StudentID != nil {
		q = q.Where("student_id = ?", *f.StudentID)
	}
	if f.ClassID != nil {
		sub := r.db.Model(&studentModel.StudentModel{}).Select("id").Where("class_id = ?", *f.ClassID)
		q = q.Where("student_id IN (?)", sub)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Year > 0 && f.Month >= 1 && f.Month <= 12 {
		first, last := dbtime.MonthWindow(f.Year, time.Month(f.Month))
		q = q.Where("due_date BETWEEN ? AND ?", dbtime.ISODate(first), dbtime.ISODate(last))
	}
	rows := []model.FeeModel{}
	if err := q.Order("due_date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormFeeRepository) first(ctx context.Context, where string, arg any) (*model.FeeModel, error) {
	var m model.FeeModel
	if err := withStudent(r.db.WithContext(ctx)).Where(where, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *gormFeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.FeeModel, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *gormFeeRepository) FindByOrderID(ctx context.Context, orderID string) (*model.FeeModel, error) {
	return r.first(ctx, "payment_order_id = ?", orderID)
}

func (r *gormFeeRepository) Create(ctx context.Context, m *model.FeeModel) error {
	return r.db.WithContext(ctx).Omit("Student").Create(m).Error
}

func (r *gormFeeRepository) Save(ctx context.Context, m *model.FeeModel) error {
	return r.db.WithContext(ctx).Omit("Student").Save(m).Error
}

func (r *gormFeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.FeeModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.ErrNotFound
	}
	return nil
}

func (r *gormFeeRepository) MarkOverdue(ctx context.Context, today dbtime.Date) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.FeeModel{}).
		Where("status = ? AND due_date < ?", model.StatusPending, today.String()).
		Updates(map[string]any{"status": model.StatusOverdue, "updated_at": time.Now()})
	return res.RowsAffected, res.Error
}
