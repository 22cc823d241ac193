package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/school/interactive_assignments/model"
	helper "schooldesk_backend/internals/helpers"
)

type ListFilter struct {
	ClassID *uuid.UUID
	Type    string
	Status  string
	Search  string
}

type InteractiveAssignmentRepository interface {
	List(ctx context.Context, f ListFilter) ([]model.InteractiveAssignmentModel, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.InteractiveAssignmentModel, error)
	FindByShareableLink(ctx context.Context, link string) (*model.InteractiveAssignmentModel, error)
	Create(ctx context.Context, m *model.InteractiveAssignmentModel, questions []model.InteractiveQuestionModel) error
	Save(ctx context.Context, m *model.InteractiveAssignmentModel) error
	Delete(ctx context.Context, id uuid.UUID) error
	ReplaceQuestions(ctx context.Context, assignmentID uuid.UUID, questions []model.InteractiveQuestionModel) error

	ListSubmissions(ctx context.Context, assignmentID uuid.UUID) ([]model.InteractiveSubmissionModel, error)
	FindSubmission(ctx context.Context, assignmentID, studentID uuid.UUID) (*model.InteractiveSubmissionModel, error)
	GetSubmission(ctx context.Context, id uuid.UUID) (*model.InteractiveSubmissionModel, error)
	// UpsertSubmission: insert/update submission + ganti semua response, satu transaksi.
	UpsertSubmission(ctx context.Context, s *model.InteractiveSubmissionModel, responses []model.InteractiveResponseModel) error
	SaveSubmission(ctx context.Context, s *model.InteractiveSubmissionModel) error
}

type gormRepository struct{ db *gorm.DB }

func NewGormInteractiveAssignmentRepository(db *gorm.DB) InteractiveAssignmentRepository {
	return &gormRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.ErrNotFound
	}
	return err
}

func questionOrder(db *gorm.DB) *gorm.DB {
	return db.Order("question_order ASC")
}

func (r *gormRepository) List(ctx context.Context, f ListFilter) ([]model.InteractiveAssignmentModel, error) {
	q := r.db.WithContext(ctx).Model(&model.InteractiveAssignmentModel{})
	if f.ClassID != nil {
		q = q.Where("class_id = ?", *f.ClassID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}
	rows := []model.InteractiveAssignmentModel{}
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.InteractiveAssignmentModel, error) {
	var m model.InteractiveAssignmentModel
	if err := r.db.WithContext(ctx).Preload("Questions", questionOrder).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *gormRepository) FindByShareableLink(ctx context.Context, link string) (*model.InteractiveAssignmentModel, error) {
	var m model.InteractiveAssignmentModel
	if err := r.db.WithContext(ctx).Preload("Questions", questionOrder).First(&m, "shareable_link = ?", link).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *gormRepository) Create(ctx context.Context, m *model.InteractiveAssignmentModel, questions []model.InteractiveQuestionModel) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Questions").Create(m).Error; err != nil {
			return err
		}
		if len(questions) == 0 {
			return nil
		}
		for i := range questions {
			questions[i].AssignmentID = m.ID
		}
		if err := tx.Create(&questions).Error; err != nil {
			return err
		}
		m.Questions = questions
		return nil
	})
}

func (r *gormRepository) Save(ctx context.Context, m *model.InteractiveAssignmentModel) error {
	return r.db.WithContext(ctx).Omit("Questions").Save(m).Error
}

// Delete menghapus response, submission, question, lalu assignment.
func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		subIDs := tx.Model(&model.InteractiveSubmissionModel{}).Select("id").Where("assignment_id = ?", id)
		if err := tx.Where("submission_id IN (?)", subIDs).Delete(&model.InteractiveResponseModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("assignment_id = ?", id).Delete(&model.InteractiveSubmissionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("assignment_id = ?", id).Delete(&model.InteractiveQuestionModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.InteractiveAssignmentModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return helper.ErrNotFound
		}
		return nil
	})
}

func (r *gormRepository) ReplaceQuestions(ctx context.Context, assignmentID uuid.UUID, questions []model.InteractiveQuestionModel) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assignment_id = ?", assignmentID).Delete(&model.InteractiveQuestionModel{}).Error; err != nil {
			return err
		}
		if len(questions) == 0 {
			return nil
		}
		return tx.Create(&questions).Error
	})
}

func (r *gormRepository) ListSubmissions(ctx context.Context, assignmentID uuid.UUID) ([]model.InteractiveSubmissionModel, error) {
	rows := []model.InteractiveSubmissionModel{}
	err := r.db.WithContext(ctx).
		Preload("Student", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "admission_number")
		}).
		Where("assignment_id = ?", assignmentID).
		Order("submitted_at DESC NULLS LAST").
		Find(&rows).Error
	return rows, err
}

func (r *gormRepository) FindSubmission(ctx context.Context, assignmentID, studentID uuid.UUID) (*model.InteractiveSubmissionModel, error) {
	var s model.InteractiveSubmissionModel
	err := r.db.WithContext(ctx).
		Preload("Responses").
		Preload("Student", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "admission_number")
		}).
		First(&s, "assignment_id = ? AND student_id = ?", assignmentID, studentID).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *gormRepository) GetSubmission(ctx context.Context, id uuid.UUID) (*model.InteractiveSubmissionModel, error) {
	var s model.InteractiveSubmissionModel
	if err := r.db.WithContext(ctx).Preload("Responses").First(&s, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *gormRepository) UpsertSubmission(ctx context.Context, s *model.InteractiveSubmissionModel, responses []model.InteractiveResponseModel) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Responses", "Student").Save(s).Error; err != nil {
			return err
		}
		if err := tx.Where("submission_id = ?", s.ID).Delete(&model.InteractiveResponseModel{}).Error; err != nil {
			return err
		}
		if len(responses) == 0 {
			s.Responses = []model.InteractiveResponseModel{}
			return nil
		}
		for i := range responses {
			responses[i].SubmissionID = s.ID
		}
		if err := tx.Create(&responses).Error; err != nil {
			return err
		}
		s.Responses = responses
		return nil
	})
}

func (r *gormRepository) SaveSubmission(ctx context.Context, s *model.InteractiveSubmissionModel) error {
	return r.db.WithContext(ctx).Omit("Responses", "Student").Save(s).Error
}
