package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/features/school/feedback/dto"
	"schooldesk_backend/internals/features/school/feedback/model"
	"schooldesk_backend/internals/features/school/feedback/repository"
	helper "schooldesk_backend/internals/helpers"
)

type FeedbackService struct {
	Repo repository.FeedbackRepository
}

func NewFeedbackService(repo repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{Repo: repo}
}

func (s *FeedbackService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateFeedbackRequest) (*model.FeedbackModel, error) {
	m := req.ToModel(userID)
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, err
	}
	m.Replies = []model.FeedbackReplyModel{}
	return m, nil
}

func (s *FeedbackService) GetAll(ctx context.Context) ([]model.FeedbackModel, error) {
	return s.Repo.List(ctx, nil)
}

func (s *FeedbackService) GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.FeedbackModel, error) {
	return s.Repo.List(ctx, &userID)
}

// GetByID: pemilik atau staff (TEACHER ke atas); selain itu dianggap tidak ada.
func (s *FeedbackService) GetByID(ctx context.Context, id, viewer uuid.UUID, role string) (*model.FeedbackModel, error) {
	m, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.UserID != viewer && !constants.HasPermission(role, constants.RoleTeacher) {
		return nil, helper.ErrNotFound
	}
	return m, nil
}

func (s *FeedbackService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.FeedbackModel, error) {
	return s.Repo.UpdateStatus(ctx, id, status)
}

func (s *FeedbackService) AddReply(ctx context.Context, feedbackID, userID uuid.UUID, reply string) (*model.FeedbackReplyModel, error) {
	r := &model.FeedbackReplyModel{
		FeedbackID: feedbackID,
		UserID:     userID,
		Reply:      strings.TrimSpace(reply),
	}
	if err := s.Repo.AddReply(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}
