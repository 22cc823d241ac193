package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schooldesk_backend/internals/features/school/attendance/model"
	helper "schooldesk_backend/internals/helpers"
	"schooldesk_backend/internals/helpers/dbtime"
)

type ListFilter struct {
	ClassID   *uuid.UUID
	StudentID *uuid.UUID
	From      *time.Time // inklusif
	To        *time.Time // inklusif
}

type AttendanceRepository interface {
	List(ctx context.Context, f ListFilter) ([]model.AttendanceModel, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.AttendanceModel, error)
	Create(ctx context.Context, m *model.AttendanceModel) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.AttendanceModel, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Upsert: insert atau update status per (student_id, date).
	Upsert(ctx context.Context, rows []model.AttendanceModel) error
	CountByStatus(ctx context.Context, studentID uuid.UUID) (map[string]int64, error)
}

type gormAttendanceRepository struct{ db *gorm.DB }

func NewGormAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &gormAttendanceRepository{db: db}
}

func (r *gormAttendanceRepository) List(ctx context.Context, f ListFilter) ([]model.AttendanceModel, error) {
	q := r.db.WithContext(ctx).Model(&model.AttendanceModel{})
	if f.StudentID != nil {
		q = q.Where("student_id = ?", *f.StudentID)
	} else {
		q = q.Preload("Student", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "admission_number")
		})
	}
	if f.ClassID != nil {
		q = q.Where("class_id = ?", *f.ClassID)
	}
	if f.From != nil {
		q = q.Where("date >= ?", dbtime.ISODate(*f.From))
	}
	if f.To != nil {
		q = q.Where("date <= ?", dbtime.ISODate(*f.To))
	}
	rows := []model.AttendanceModel{}
	if err := q.Order("date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormAttendanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.AttendanceModel, error) {
	var m model.AttendanceModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *gormAttendanceRepository) Create(ctx context.Context, m *model.AttendanceModel) error {
	err := r.db.WithContext(ctx).Omit("Student").Create(m).Error
	if helper.IsUniqueViolation(err) {
		return helper.ErrConflict
	}
	return err
}

func (r *gormAttendanceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.AttendanceModel, error) {
	var m model.AttendanceModel
	res := r.db.WithContext(ctx).Model(&m).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, helper.ErrNotFound
	}
	return &m, nil
}

func (r *gormAttendanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.AttendanceModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.ErrNotFound
	}
	return nil
}

func (r *gormAttendanceRepository) Upsert(ctx context.Context, rows []model.AttendanceModel) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit("Student").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "class_id", "updated_at"}),
	}).Create(&rows).Error
}

func (r *gormAttendanceRepository) CountByStatus(ctx context.Context, studentID uuid.UUID) (map[string]int64, error) {
	type row struct {
		Status string
		N      int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.AttendanceModel{}).
		Select("status, COUNT(*) AS n").
		Where("student_id = ?", studentID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.N
	}
	return out, nil
}
