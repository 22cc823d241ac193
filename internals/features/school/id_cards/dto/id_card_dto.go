package dto

import (
	"strings"

	"github.com/google/uuid"

	"schooldesk_backend/internals/features/school/id_cards/model"
	"schooldesk_backend/internals/helpers/dbtime"
)

type SaveIDCardRequest struct {
	StudentName     string       `json:"studentName" validate:"required,max=150"`
	ClassID         *uuid.UUID   `json:"classId" validate:"required"`
	AdmissionNumber *string      `json:"admissionNumber" validate:"omitempty,max=50"`
	DateOfBirth     *dbtime.Date `json:"dateOfBirth"`
	FatherName      string       `json:"fatherName" validate:"required,max=150"`
	MotherName      string       `json:"motherName" validate:"required,max=150"`
	FatherMobile    string       `json:"fatherMobile" validate:"omitempty,max=30"`
	MotherMobile    string       `json:"motherMobile" validate:"omitempty,max=30"`
	Address         string       `json:"address"`
	// URL foto yang sudah ada (mis. hasil upload sebelumnya)
	StudentPhotoURL *string `json:"studentPhotoUrl"`
	FatherPhotoURL  *string `json:"fatherPhotoUrl"`
	MotherPhotoURL  *string `json:"motherPhotoUrl"`
}

func (r SaveIDCardRequest) ToModel() *model.IDCardModel {
	m := &model.IDCardModel{}
	r.apply(m)
	return m
}

func (r SaveIDCardRequest) apply(m *model.IDCardModel) {
	m.StudentName = strings.TrimSpace(r.StudentName)
	m.ClassID = r.ClassID
	m.AdmissionNumber = trimPtr(r.AdmissionNumber)
	if r.DateOfBirth != nil && !r.DateOfBirth.IsZero() {
		m.DateOfBirth = r.DateOfBirth
	}
	m.FatherName = strings.TrimSpace(r.FatherName)
	m.MotherName = strings.TrimSpace(r.MotherName)
	m.FatherMobile = strings.TrimSpace(r.FatherMobile)
	m.MotherMobile = strings.TrimSpace(r.MotherMobile)
	m.Address = strings.TrimSpace(r.Address)
	if u := trimPtr(r.StudentPhotoURL); u != nil {
		m.StudentPhotoURL = u
	}
	if u := trimPtr(r.FatherPhotoURL); u != nil {
		m.FatherPhotoURL = u
	}
	if u := trimPtr(r.MotherPhotoURL); u != nil {
		m.MotherPhotoURL = u
	}
	m.ComputeDedupKey()
}

// UpdateIDCardRequest: PUT penuh (sama dengan Save) agar dedup key tetap konsisten.
type UpdateIDCardRequest = SaveIDCardRequest

func ApplyUpdate(r UpdateIDCardRequest, m *model.IDCardModel) {
	r.apply(m)
}

type ListParams struct {
	ClassID  *uuid.UUID
	Search   string
	SortBy   string
	SortDesc bool
	Offset   int
	Limit    int
}

type ExportRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
