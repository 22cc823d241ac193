package dto

import (
	"strings"

	"github.com/google/uuid"

	"schooldesk_backend/internals/features/school/classwork/model"
	"schooldesk_backend/internals/helpers/dbtime"
)

type ClassworkRequest struct {
	Title       string      `json:"title" validate:"required,max=200"`
	Description string      `json:"description"`
	Date        dbtime.Date `json:"date"`
	ClassID     uuid.UUID   `json:"classId" validate:"required"`
}

func (r ClassworkRequest) ApplyToModel(m *model.ClassworkModel) {
	m.Title = strings.TrimSpace(r.Title)
	m.Description = strings.TrimSpace(r.Description)
	m.ClassID = r.ClassID
	if !r.Date.IsZero() {
		m.Date = r.Date
	}
}

/*
ListFilter:
  - Restricted=false: semua kelas (atau ClassIDs kalau diisi)
  - Restricted=true: hanya ClassIDs; kosong berarti tidak ada baris
*/
type ListFilter struct {
	ClassIDs   []uuid.UUID
	Restricted bool
}
