package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/features/school/classes/main/model"
)

type CreateClassRequest struct {
	Name       string     `json:"name" validate:"required,min=1,max=100"`
	Section    string     `json:"section" validate:"omitempty,max=20"`
	RoomNumber *string    `json:"roomNumber" validate:"omitempty,max=30"`
	Capacity   int        `json:"capacity" validate:"gte=0,lte=1000"`
	SchoolID   *uuid.UUID `json:"schoolId"`
}

func (r CreateClassRequest) ToModel() *model.ClassModel {
	return &model.ClassModel{
		Name:       strings.TrimSpace(r.Name),
		Section:    strings.TrimSpace(r.Section),
		RoomNumber: r.RoomNumber,
		Capacity:   r.Capacity,
		SchoolID:   r.SchoolID,
	}
}

type UpdateClassRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=100"`
	Section    *string `json:"section" validate:"omitempty,max=20"`
	RoomNumber *string `json:"roomNumber" validate:"omitempty,max=30"`
	Capacity   *int    `json:"capacity" validate:"omitempty,gte=0,lte=1000"`
}

func (r UpdateClassRequest) ApplyToModel(m *model.ClassModel) {
	if r.Name != nil {
		m.Name = strings.TrimSpace(*r.Name)
	}
	if r.Section != nil {
		m.Section = strings.TrimSpace(*r.Section)
	}
	if r.RoomNumber != nil {
		m.RoomNumber = r.RoomNumber
	}
	if r.Capacity != nil {
		m.Capacity = *r.Capacity
	}
}

type ClassResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Section    string     `json:"section"`
	RoomNumber *string    `json:"roomNumber,omitempty"`
	Capacity   int        `json:"capacity"`
	SchoolID   *uuid.UUID `json:"schoolId,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func NewClassResponse(m *model.ClassModel) ClassResponse {
	return ClassResponse{
		ID:         m.ID,
		Name:       m.Name,
		Section:    m.Section,
		RoomNumber: m.RoomNumber,
		Capacity:   m.Capacity,
		SchoolID:   m.SchoolID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func NewClassResponses(rows []model.ClassModel) []ClassResponse {
	out := make([]ClassResponse, 0, len(rows))
	for i := range rows {
		out = append(out, NewClassResponse(&rows[i]))
	}
	return out
}
