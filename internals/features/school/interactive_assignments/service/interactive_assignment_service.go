package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/features/school/interactive_assignments/dto"
	"schooldesk_backend/internals/features/school/interactive_assignments/model"
	"schooldesk_backend/internals/features/school/interactive_assignments/repository"
	helper "schooldesk_backend/internals/helpers"
)

const defaultShareDays = 30

type InteractiveAssignmentService struct {
	Repo    repository.InteractiveAssignmentRepository
	nowFunc func() time.Time
}

func NewInteractiveAssignmentService(repo repository.InteractiveAssignmentRepository) *InteractiveAssignmentService {
	return &InteractiveAssignmentService{Repo: repo, nowFunc: time.Now}
}

// WithClock dipakai test.
func (s *InteractiveAssignmentService) WithClock(now func() time.Time) *InteractiveAssignmentService {
	s.nowFunc = now
	return s
}

// GetAll: siswa hanya melihat PUBLISHED (filter status dari query diabaikan).
func (s *InteractiveAssignmentService) GetAll(ctx context.Context, role string, f repository.ListFilter) ([]model.InteractiveAssignmentModel, error) {
	if !constants.HasPermission(role, constants.RoleTeacher) {
		f.Status = model.StatusPublished
	}
	return s.Repo.List(ctx, f)
}

// GetByID: dengan pertanyaan urut question_order. Draft tidak terlihat oleh siswa.
func (s *InteractiveAssignmentService) GetByID(ctx context.Context, id uuid.UUID, role string) (*model.InteractiveAssignmentModel, error) {
	m, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !constants.HasPermission(role, constants.RoleTeacher) && m.Status != model.StatusPublished {
		return nil, helper.ErrNotFound
	}
	return m, nil
}

func (s *InteractiveAssignmentService) Create(ctx context.Context, req dto.CreateInteractiveAssignmentRequest, actor *uuid.UUID) (*model.InteractiveAssignmentModel, error) {
	inputs, err := dto.ParseQuestions(req.Questions)
	if err != nil {
		return nil, err
	}
	m := req.ToModel(actor)
	questions, err := dto.ToQuestionModels(uuid.Nil, inputs)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, m, questions); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *InteractiveAssignmentService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateInteractiveAssignmentRequest) (*model.InteractiveAssignmentModel, error) {
	m, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.ApplyToModel(m)
	if err := s.Repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *InteractiveAssignmentService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.Repo.Delete(ctx, id)
}

// UpdateQuestions mengganti seluruh pertanyaan; urutan = posisi di array.
func (s *InteractiveAssignmentService) UpdateQuestions(ctx context.Context, id uuid.UUID, raw []map[string]any) ([]model.InteractiveQuestionModel, error) {
	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	inputs, err := dto.ParseQuestions(raw)
	if err != nil {
		return nil, err
	}
	questions, err := dto.ToQuestionModels(id, inputs)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.ReplaceQuestions(ctx, id, questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *InteractiveAssignmentService) GetSubmissions(ctx context.Context, assignmentID uuid.UUID) ([]model.InteractiveSubmissionModel, error) {
	return s.Repo.ListSubmissions(ctx, assignmentID)
}

// GetStudentSubmission: (nil, nil) kalau siswa belum pernah submit.
func (s *InteractiveAssignmentService) GetStudentSubmission(ctx context.Context, assignmentID, studentID uuid.UUID) (*model.InteractiveSubmissionModel, error) {
	sub, err := s.Repo.FindSubmission(ctx, assignmentID, studentID)
	if errors.Is(err, helper.ErrNotFound) {
		return nil, nil
	}
	return sub, err
}

/*
Submit membuat atau memperbarui submission siswa (status SUBMITTED) dan
mengganti seluruh jawabannya. Assignment harus PUBLISHED, dan setiap
questionId harus milik assignment tersebut.
*/
func (s *InteractiveAssignmentService) Submit(ctx context.Context, assignmentID uuid.UUID, req dto.SubmitRequest) (*model.InteractiveSubmissionModel, error) {
	if req.StudentID == uuid.Nil {
		return nil, fmt.Errorf("%w: studentId wajib diisi", helper.ErrInvalid)
	}
	a, err := s.Repo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if a.Status != model.StatusPublished {
		return nil, fmt.Errorf("%w: assignment is not published", helper.ErrInvalid)
	}
	known := make(map[uuid.UUID]struct{}, len(a.Questions))
	for _, q := range a.Questions {
		known[q.ID] = struct{}{}
	}
	for _, r := range req.Responses {
		if _, ok := known[r.QuestionID]; !ok {
			return nil, fmt.Errorf("%w: unknown question %s", helper.ErrInvalid, r.QuestionID)
		}
	}
	responses, err := req.ToResponseModels()
	if err != nil {
		return nil, err
	}

	now := s.nowFunc()
	sub, err := s.Repo.FindSubmission(ctx, assignmentID, req.StudentID)
	switch {
	case errors.Is(err, helper.ErrNotFound):
		sub = &model.InteractiveSubmissionModel{
			ID:           uuid.New(),
			AssignmentID: assignmentID,
			StudentID:    req.StudentID,
			StartedAt:    now,
		}
	case err != nil:
		return nil, err
	case sub.Status == model.SubmissionGraded:
		return nil, fmt.Errorf("%w: submission already graded", helper.ErrConflict)
	}
	sub.Status = model.SubmissionSubmitted
	sub.SubmittedAt = &now
	sub.Student = nil

	if err := s.Repo.UpsertSubmission(ctx, sub, responses); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *InteractiveAssignmentService) Grade(ctx context.Context, submissionID uuid.UUID, req dto.GradeRequest) (*model.InteractiveSubmissionModel, error) {
	sub, err := s.Repo.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub.Status == model.SubmissionPending {
		return nil, fmt.Errorf("%w: submission has not been submitted", helper.ErrInvalid)
	}
	score := req.Score
	sub.Score = &score
	sub.Feedback = req.Feedback
	sub.Status = model.SubmissionGraded
	if err := s.Repo.SaveSubmission(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// GenerateShareableLink: id pendek 8 karakter, berlaku days hari (default 30).
func (s *InteractiveAssignmentService) GenerateShareableLink(ctx context.Context, id uuid.UUID, days int) (*model.InteractiveAssignmentModel, error) {
	if days <= 0 {
		days = defaultShareDays
	}
	m, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	link := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	exp := s.nowFunc().AddDate(0, 0, days)
	m.ShareableLink = &link
	m.ShareableLinkExpiresAt = &exp
	if err := s.Repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// GetByShareableLink: 410 kalau link sudah kedaluwarsa.
func (s *InteractiveAssignmentService) GetByShareableLink(ctx context.Context, link string) (*model.InteractiveAssignmentModel, error) {
	m, err := s.Repo.FindByShareableLink(ctx, strings.TrimSpace(link))
	if err != nil {
		return nil, err
	}
	if m.ShareableLinkExpiresAt != nil && m.ShareableLinkExpiresAt.Before(s.nowFunc()) {
		return nil, fiber.NewError(fiber.StatusGone, "This link has expired")
	}
	return m, nil
}
