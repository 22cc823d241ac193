package dto

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"schooldesk_backend/internals/features/school/sports_enrollments/model"
)

type CreateEnrollmentRequest struct {
	StudentName   string    `json:"studentName" validate:"required,max=150"`
	ParentName    string    `json:"parentName" validate:"required,max=150"`
	ContactNumber string    `json:"contactNumber" validate:"required,max=30"`
	ClassID       uuid.UUID `json:"classId" validate:"required"`
	ClassName     string    `json:"className" validate:"max=100"`
	SelectedGames []string  `json:"selectedGames" validate:"dive,required,max=80"`
	SpecialNotes  *string   `json:"specialNotes"`
}

func (r CreateEnrollmentRequest) ToModel() *model.SportsEnrollmentModel {
	games := make(pq.StringArray, 0, len(r.SelectedGames))
	seen := map[string]struct{}{}
	for _, g := range r.SelectedGames {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if _, dup := seen[strings.ToLower(g)]; dup {
			continue
		}
		seen[strings.ToLower(g)] = struct{}{}
		games = append(games, g)
	}
	var notes *string
	if r.SpecialNotes != nil {
		if v := strings.TrimSpace(*r.SpecialNotes); v != "" {
			notes = &v
		}
	}
	return &model.SportsEnrollmentModel{
		StudentName:   strings.TrimSpace(r.StudentName),
		ParentName:    strings.TrimSpace(r.ParentName),
		ContactNumber: strings.TrimSpace(r.ContactNumber),
		ClassID:       r.ClassID,
		ClassName:     strings.TrimSpace(r.ClassName),
		SelectedGames: games,
		SpecialNotes:  notes,
		Status:        model.StatusEnrolled,
	}
}

type ListParams struct {
	ClassID *uuid.UUID
	Search  string
}

// Group: ringkasan per kelas atau per cabang lomba.
type Group struct {
	Key         string                        `json:"key"`
	Count       int                           `json:"count"`
	Enrollments []model.SportsEnrollmentModel `json:"enrollments"`
}
