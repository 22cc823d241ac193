package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/school/admissions/dto"
	"schooldesk_backend/internals/features/school/admissions/model"
	helper "schooldesk_backend/internals/helpers"
)

type AdmissionRepository interface {
	ListEnquiries(ctx context.Context, p dto.ListParams) ([]model.ProspectiveStudentModel, int64, error)
	GetEnquiry(ctx context.Context, id uuid.UUID) (*model.ProspectiveStudentModel, error)
	// CreateEnquiry menyimpan enquiry + admission process dalam satu transaksi.
	CreateEnquiry(ctx context.Context, m *model.ProspectiveStudentModel, p *model.AdmissionProcessModel) error
	SaveEnquiry(ctx context.Context, m *model.ProspectiveStudentModel) error

	GetProcess(ctx context.Context, enquiryID uuid.UUID) (*model.AdmissionProcessModel, error)
	SaveProcess(ctx context.Context, p *model.AdmissionProcessModel) error
	// UpdateProgress: enquiry, process, dan note opsional sekaligus.
	UpdateProgress(ctx context.Context, m *model.ProspectiveStudentModel, p *model.AdmissionProcessModel, note *model.AdmissionNoteModel) error

	ListNotes(ctx context.Context, enquiryID uuid.UUID) ([]model.AdmissionNoteModel, error)
	AddNote(ctx context.Context, n *model.AdmissionNoteModel) error
	ListCommunications(ctx context.Context, enquiryID uuid.UUID) ([]model.AdmissionCommunicationModel, error)
	AddCommunication(ctx context.Context, c *model.AdmissionCommunicationModel) error

	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type gormAdmissionRepository struct{ db *gorm.DB }

func NewGormAdmissionRepository(db *gorm.DB) AdmissionRepository {
	return &gormAdmissionRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.ErrNotFound
	}
	return err
}

func (r *gormAdmissionRepository) ListEnquiries(ctx context.Context, p dto.ListParams) ([]model.ProspectiveStudentModel, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.ProspectiveStudentModel{})
	if len(p.Statuses) > 0 {
		q = q.Where("status IN ?", p.Statuses)
	}
	if p.From != nil {
		q = q.Where("applied_date >= ?", *p.From)
	}
	if p.To != nil {
		q = q.Where("applied_date <= ?", *p.To)
	}
	if p.Search != "" {
		like := "%" + p.Search + "%"
		q = q.Where("(student_name ILIKE ? OR parent_name ILIKE ? OR email ILIKE ?)", like, like, like)
	}
	if p.GradeApplying != "" {
		q = q.Where("grade_applying = ?", p.GradeApplying)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	rows := []model.ProspectiveStudentModel{}
	q = q.Preload("Process").Order("applied_date DESC")
	if p.Limit > 0 {
		q = q.Offset(p.Offset).Limit(p.Limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *gormAdmissionRepository) GetEnquiry(ctx context.Context, id uuid.UUID) (*model.ProspectiveStudentModel, error) {
	var m model.ProspectiveStudentModel
	if err := r.db.WithContext(ctx).Preload("Process").First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *gormAdmissionRepository) CreateEnquiry(ctx context.Context, m *model.ProspectiveStudentModel, p *model.AdmissionProcessModel) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Process").Create(m).Error; err != nil {
			return err
		}
		p.ProspectiveStudentID = m.ID
		return tx.Create(p).Error
	})
}

func (r *gormAdmissionRepository) SaveEnquiry(ctx context.Context, m *model.ProspectiveStudentModel) error {
	return r.db.WithContext(ctx).Omit("Process").Save(m).Error
}

func (r *gormAdmissionRepository) GetProcess(ctx context.Context, enquiryID uuid.UUID) (*model.AdmissionProcessModel, error) {
	var p model.AdmissionProcessModel
	if err := r.db.WithContext(ctx).First(&p, "prospective_student_id = ?", enquiryID).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *gormAdmissionRepository) SaveProcess(ctx context.Context, p *model.AdmissionProcessModel) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *gormAdmissionRepository) UpdateProgress(ctx context.Context, m *model.ProspectiveStudentModel, p *model.AdmissionProcessModel, note *model.AdmissionNoteModel) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Process").Save(m).Error; err != nil {
			return err
		}
		if err := tx.Save(p).Error; err != nil {
			return err
		}
		if note != nil {
			return tx.Create(note).Error
		}
		return nil
	})
}

func (r *gormAdmissionRepository) ListNotes(ctx context.Context, enquiryID uuid.UUID) ([]model.AdmissionNoteModel, error) {
	rows := []model.AdmissionNoteModel{}
	err := r.db.WithContext(ctx).
		Where("prospective_student_id = ?", enquiryID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *gormAdmissionRepository) AddNote(ctx context.Context, n *model.AdmissionNoteModel) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *gormAdmissionRepository) ListCommunications(ctx context.Context, enquiryID uuid.UUID) ([]model.AdmissionCommunicationModel, error) {
	rows := []model.AdmissionCommunicationModel{}
	err := r.db.WithContext(ctx).
		Where("prospective_student_id = ?", enquiryID).
		Order("communication_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *gormAdmissionRepository) AddCommunication(ctx context.Context, c *model.AdmissionCommunicationModel) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *gormAdmissionRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		N      int64
	}
	err := r.db.WithContext(ctx).Model(&model.ProspectiveStudentModel{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}
