package dto

import (
	"strings"

	"github.com/google/uuid"

	"schooldesk_backend/internals/features/school/assignments/model"
	"schooldesk_backend/internals/helpers/dbtime"
)

// AssignmentRequest dipakai untuk create maupun update (PUT penuh).
type AssignmentRequest struct {
	Title          string       `json:"title" validate:"required,max=200"`
	Description    string       `json:"description"`
	Subject        string       `json:"subject" validate:"omitempty,max=100"`
	ClassID        *uuid.UUID   `json:"classId"`
	AssignmentDate dbtime.Date  `json:"assignmentDate"`
	DueDate        *dbtime.Date `json:"dueDate"`
}

func (r AssignmentRequest) ApplyToModel(m *model.AssignmentModel) {
	m.Title = strings.TrimSpace(r.Title)
	m.Description = strings.TrimSpace(r.Description)
	m.Subject = strings.TrimSpace(r.Subject)
	m.ClassID = r.ClassID
	if !r.AssignmentDate.IsZero() {
		m.AssignmentDate = r.AssignmentDate
	}
	m.DueDate = r.DueDate
}
