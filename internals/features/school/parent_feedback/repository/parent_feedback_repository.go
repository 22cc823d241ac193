package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schooldesk_backend/internals/features/school/parent_feedback/dto"
	"schooldesk_backend/internals/features/school/parent_feedback/model"
	helper "schooldesk_backend/internals/helpers"
)

type ParentFeedbackRepository interface {
	ListFeedback(ctx context.Context, f dto.SearchFilter) ([]model.ParentFeedbackModel, error)
	GetFeedback(ctx context.Context, id uuid.UUID) (*model.ParentFeedbackModel, error)
	CreateFeedback(ctx context.Context, m *model.ParentFeedbackModel) error
	SaveFeedback(ctx context.Context, m *model.ParentFeedbackModel) error
	DeleteFeedback(ctx context.Context, id uuid.UUID) error

	GetCertificate(ctx context.Context, feedbackID uuid.UUID) (*model.FeedbackCertificateModel, error)
	// CreateCertificate: ErrConflict kalau feedback sudah punya sertifikat.
	CreateCertificate(ctx context.Context, m *model.FeedbackCertificateModel) error
	IncrementDownload(ctx context.Context, feedbackID uuid.UUID) (*model.FeedbackCertificateModel, error)

	FindSubmitted(ctx context.Context, classID uuid.UUID, normalizedStudent, month string) (*model.ParentSubmittedFeedbackModel, error)
	ListSubmitted(ctx context.Context, f dto.SubmittedFilter) ([]model.ParentSubmittedFeedbackModel, error)
	GetSubmitted(ctx context.Context, id uuid.UUID) (*model.ParentSubmittedFeedbackModel, error)
	CreateSubmitted(ctx context.Context, m *model.ParentSubmittedFeedbackModel) error
	SaveSubmitted(ctx context.Context, m *model.ParentSubmittedFeedbackModel) error
}

type gormParentFeedbackRepository struct{ db *gorm.DB }

func NewGormParentFeedbackRepository(db *gorm.DB) ParentFeedbackRepository {
	return &gormParentFeedbackRepository{db: db}
}

func withClass(db *gorm.DB) *gorm.DB {
	return db.Preload("Class", func(tx *gorm.DB) *gorm.DB { return tx.Select("id", "name", "section") })
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.ErrNotFound
	}
	return err
}

func (r *gormParentFeedbackRepository) ListFeedback(ctx context.Context, f dto.SearchFilter) ([]model.ParentFeedbackModel, error) {
	q := withClass(r.db.WithContext(ctx))
	if f.ClassID != nil {
		q = q.Where("class_id = ?", *f.ClassID)
	}
	if s := strings.TrimSpace(f.StudentName); s != "" {
		q = q.Where("LOWER(TRIM(student_name)) = LOWER(?)", s)
	}
	if f.Month != "" {
		q = q.Where("month = ?", f.Month)
	}
	rows := []model.ParentFeedbackModel{}
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormParentFeedbackRepository) GetFeedback(ctx context.Context, id uuid.UUID) (*model.ParentFeedbackModel, error) {
	var m model.ParentFeedbackModel
	if err := withClass(r.db.WithContext(ctx)).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *gormParentFeedbackRepository) CreateFeedback(ctx context.Context, m *model.ParentFeedbackModel) error {
	return r.db.WithContext(ctx).Omit("Class").Create(m).Error
}

func (r *gormParentFeedbackRepository) SaveFeedback(ctx context.Context, m *model.ParentFeedbackModel) error {
	return r.db.WithContext(ctx).Omit("Class").Save(m).Error
}

// DeleteFeedback ikut menghapus sertifikatnya.
func (r *gormParentFeedbackRepository) DeleteFeedback(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("feedback_id = ?", id).Delete(&model.FeedbackCertificateModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.ParentFeedbackModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return helper.ErrNotFound
		}
		return nil
	})
}

func (r *gormParentFeedbackRepository) GetCertificate(ctx context.Context, feedbackID uuid.UUID) (*model.FeedbackCertificateModel, error) {
	var m model.FeedbackCertificateModel
	if err := r.db.WithContext(ctx).First(&m, "feedback_id = ?", feedbackID).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *gormParentFeedbackRepository) CreateCertificate(ctx context.Context, m *model.FeedbackCertificateModel) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return fmt.Errorf("%w: sertifikat sudah ada", helper.ErrConflict)
		}
		return err
	}
	return nil
}

// IncrementDownload: atomik di DB, lalu kembalikan baris terbaru.
func (r *gormParentFeedbackRepository) IncrementDownload(ctx context.Context, feedbackID uuid.UUID) (*model.FeedbackCertificateModel, error) {
	var m model.FeedbackCertificateModel
	res := r.db.WithContext(ctx).Model(&m).
		Clauses(clause.Returning{}).
		Where("feedback_id = ?", feedbackID).
		UpdateColumn("download_count", gorm.Expr("download_count + 1"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, helper.ErrNotFound
	}
	return &m, nil
}

func (r *gormParentFeedbackRepository) FindSubmitted(ctx context.Context, classID uuid.UUID, normalizedStudent, month string) (*model.ParentSubmittedFeedbackModel, error) {
	var m model.ParentSubmittedFeedbackModel
	err := r.db.WithContext(ctx).
		Where("class_id = ? AND normalized_student = ? AND month = ?", classID, normalizedStudent, month).
		First(&m).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *gormParentFeedbackRepository) ListSubmitted(ctx context.Context, f dto.SubmittedFilter) ([]model.ParentSubmittedFeedbackModel, error) {
	q := withClass(r.db.WithContext(ctx))
	if f.ClassID != nil {
		q = q.Where("class_id = ?", *f.ClassID)
	}
	if f.Month != "" {
		q = q.Where("month = ?", f.Month)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	rows := []model.ParentSubmittedFeedbackModel{}
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormParentFeedbackRepository) GetSubmitted(ctx context.Context, id uuid.UUID) (*model.ParentSubmittedFeedbackModel, error) {
	var m model.ParentSubmittedFeedbackModel
	if err := withClass(r.db.WithContext(ctx)).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *gormParentFeedbackRepository) CreateSubmitted(ctx context.Context, m *model.ParentSubmittedFeedbackModel) error {
	return r.db.WithContext(ctx).Omit("Class").Create(m).Error
}

func (r *gormParentFeedbackRepository) SaveSubmitted(ctx context.Context, m *model.ParentSubmittedFeedbackModel) error {
	return r.db.WithContext(ctx).Omit("Class").Save(m).Error
}
