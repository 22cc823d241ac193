package dto

import (
	"strings"

	"github.com/google/uuid"

	"schooldesk_backend/internals/features/school/feedback/model"
)

type CreateFeedbackRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"required"`
	Note        *string `json:"note"`
}

func (r CreateFeedbackRequest) ToModel(userID uuid.UUID) *model.FeedbackModel {
	m := &model.FeedbackModel{
		UserID:      userID,
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		Status:      model.StatusRaised,
	}
	if r.Note != nil {
		if n := strings.TrimSpace(*r.Note); n != "" {
			m.Note = &n
		}
	}
	return m
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=RAISED RESOLVED"`
}

type ReplyRequest struct {
	Reply string `json:"reply" validate:"required"`
}
