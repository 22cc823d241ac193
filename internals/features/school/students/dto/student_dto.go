package dto

import (
	"strings"

	"github.com/google/uuid"

	"schooldesk_backend/internals/features/school/students/model"
	"schooldesk_backend/internals/helpers/dbtime"
)

// LegacyCreateRequest: body POST /api/students.
type LegacyCreateRequest struct {
	Name    string     `json:"name" validate:"required,max=150"`
	Grade   string     `json:"grade" validate:"omitempty,max=30"`
	Section string     `json:"section" validate:"omitempty,max=20"`
	RollNo  string     `json:"rollNo" validate:"omitempty,max=20"`
	UserID  *uuid.UUID `json:"userId"`
}

// ToModel menyimpan nilai apa adanya: response POST harus sama persis dengan body.
func (r LegacyCreateRequest) ToModel() *model.StudentModel {
	return &model.StudentModel{
		Name:    r.Name,
		Grade:   r.Grade,
		Section: r.Section,
		RollNo:  r.RollNo,
		UserID:  r.UserID,
	}
}

// CreateStudentRequest: pendaftaran lengkap oleh admin (buat akun orang tua juga).
type CreateStudentRequest struct {
	AdmissionNumber string       `json:"admissionNumber" validate:"required,max=50"`
	Name            string       `json:"name" validate:"required,max=150"`
	Grade           string       `json:"grade" validate:"omitempty,max=30"`
	Section         string       `json:"section" validate:"omitempty,max=20"`
	RollNo          string       `json:"rollNo" validate:"omitempty,max=20"`
	DateOfBirth     *dbtime.Date `json:"dateOfBirth"`
	Gender          *string      `json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Address         *string      `json:"address"`
	ContactNumber   *string      `json:"contactNumber" validate:"omitempty,max=30"`
	ParentName      *string      `json:"parentName" validate:"omitempty,max=150"`
	ParentContact   *string      `json:"parentContact" validate:"omitempty,max=30"`
	ParentEmail     string       `json:"parentEmail" validate:"required,email"`
	BloodGroup      *string      `json:"bloodGroup" validate:"omitempty,max=5"`
	ClassID         *uuid.UUID   `json:"classId"`
}

func (r CreateStudentRequest) ToModel() *model.StudentModel {
	adm := strings.TrimSpace(r.AdmissionNumber)
	email := strings.ToLower(strings.TrimSpace(r.ParentEmail))
	return &model.StudentModel{
		AdmissionNumber: &adm,
		Name:            strings.TrimSpace(r.Name),
		Grade:           strings.TrimSpace(r.Grade),
		Section:         strings.TrimSpace(r.Section),
		RollNo:          strings.TrimSpace(r.RollNo),
		DateOfBirth:     r.DateOfBirth,
		Gender:          r.Gender,
		Address:         r.Address,
		ContactNumber:   r.ContactNumber,
		ParentName:      r.ParentName,
		ParentContact:   r.ParentContact,
		ParentEmail:     &email,
		BloodGroup:      r.BloodGroup,
		ClassID:         r.ClassID,
	}
}

type UpdateStudentRequest struct {
	Name          *string      `json:"name" validate:"omitempty,min=1,max=150"`
	Grade         *string      `json:"grade" validate:"omitempty,max=30"`
	Section       *string      `json:"section" validate:"omitempty,max=20"`
	RollNo        *string      `json:"rollNo" validate:"omitempty,max=20"`
	DateOfBirth   *dbtime.Date `json:"dateOfBirth"`
	Gender        *string      `json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Address       *string      `json:"address"`
	ContactNumber *string      `json:"contactNumber" validate:"omitempty,max=30"`
	ParentName    *string      `json:"parentName" validate:"omitempty,max=150"`
	ParentContact *string      `json:"parentContact" validate:"omitempty,max=30"`
	BloodGroup    *string      `json:"bloodGroup" validate:"omitempty,max=5"`
	ClassID       *uuid.UUID   `json:"classId"`
}

func (r UpdateStudentRequest) ApplyToModel(m *model.StudentModel) {
	if r.Name != nil {
		m.Name = strings.TrimSpace(*r.Name)
	}
	if r.Grade != nil {
		m.Grade = strings.TrimSpace(*r.Grade)
	}
	if r.Section != nil {
		m.Section = strings.TrimSpace(*r.Section)
	}
	if r.RollNo != nil {
		m.RollNo = strings.TrimSpace(*r.RollNo)
	}
	if r.DateOfBirth != nil {
		m.DateOfBirth = r.DateOfBirth
	}
	if r.Gender != nil {
		m.Gender = r.Gender
	}
	if r.Address != nil {
		m.Address = r.Address
	}
	if r.ContactNumber != nil {
		m.ContactNumber = r.ContactNumber
	}
	if r.ParentName != nil {
		m.ParentName = r.ParentName
	}
	if r.ParentContact != nil {
		m.ParentContact = r.ParentContact
	}
	if r.BloodGroup != nil {
		m.BloodGroup = r.BloodGroup
	}
	if r.ClassID != nil {
		m.ClassID = r.ClassID
	}
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type CreateStudentResponse struct {
	Student     *model.StudentModel `json:"student"`
	Credentials Credentials         `json:"credentials"`
}
