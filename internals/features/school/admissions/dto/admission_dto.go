package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/features/school/admissions/model"
	"schooldesk_backend/internals/helpers/dbtime"
)

// EnquiryRequest: form pendaftaran publik.
type EnquiryRequest struct {
	StudentName   string       `json:"studentName" validate:"required,max=150"`
	ParentName    string       `json:"parentName" validate:"required,max=150"`
	DateOfBirth   *dbtime.Date `json:"dateOfBirth"`
	Gender        string       `json:"gender" validate:"required,oneof=Male Female Other"`
	Email         string       `json:"email" validate:"required,email,max=255"`
	ContactNumber string       `json:"contactNumber" validate:"required,max=30"`
	GradeApplying string       `json:"gradeApplying" validate:"required,max=30"`
	CurrentSchool *string      `json:"currentSchool" validate:"omitempty,max=200"`
	Address       string       `json:"address" validate:"required"`
	BloodGroup    *string      `json:"bloodGroup" validate:"omitempty,max=5"`
}

func (r EnquiryRequest) ToModel() *model.ProspectiveStudentModel {
	return &model.ProspectiveStudentModel{
		StudentName:   strings.TrimSpace(r.StudentName),
		ParentName:    strings.TrimSpace(r.ParentName),
		DateOfBirth:   r.DateOfBirth,
		Gender:        r.Gender,
		Email:         strings.ToLower(strings.TrimSpace(r.Email)),
		ContactNumber: strings.TrimSpace(r.ContactNumber),
		GradeApplying: strings.TrimSpace(r.GradeApplying),
		CurrentSchool: r.CurrentSchool,
		Address:       strings.TrimSpace(r.Address),
		BloodGroup:    r.BloodGroup,
	}
}

// UpdateEnquiryRequest: PATCH, field nil tidak diubah.
type UpdateEnquiryRequest struct {
	StudentName   *string      `json:"studentName" validate:"omitempty,max=150"`
	ParentName    *string      `json:"parentName" validate:"omitempty,max=150"`
	DateOfBirth   *dbtime.Date `json:"dateOfBirth"`
	Gender        *string      `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Email         *string      `json:"email" validate:"omitempty,email,max=255"`
	ContactNumber *string      `json:"contactNumber" validate:"omitempty,max=30"`
	GradeApplying *string      `json:"gradeApplying" validate:"omitempty,max=30"`
	CurrentSchool *string      `json:"currentSchool" validate:"omitempty,max=200"`
	Address       *string      `json:"address"`
	BloodGroup    *string      `json:"bloodGroup" validate:"omitempty,max=5"`
	AssignedTo    *uuid.UUID   `json:"assignedTo"`
}

func (r UpdateEnquiryRequest) Apply(m *model.ProspectiveStudentModel) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&m.StudentName, r.StudentName)
	set(&m.ParentName, r.ParentName)
	set(&m.Gender, r.Gender)
	set(&m.ContactNumber, r.ContactNumber)
	set(&m.GradeApplying, r.GradeApplying)
	set(&m.Address, r.Address)
	if r.Email != nil {
		m.Email = strings.ToLower(strings.TrimSpace(*r.Email))
	}
	if r.DateOfBirth != nil {
		m.DateOfBirth = r.DateOfBirth
	}
	if r.CurrentSchool != nil {
		m.CurrentSchool = r.CurrentSchool
	}
	if r.BloodGroup != nil {
		m.BloodGroup = r.BloodGroup
	}
	if r.AssignedTo != nil {
		m.AssignedTo = r.AssignedTo
	}
}

type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListParams: filter daftar enquiry untuk admin.
type ListParams struct {
	Statuses      []string
	From, To      *time.Time
	Search        string
	GradeApplying string
	Offset, Limit int
}

type ProgressUpdateRequest struct {
	InterviewDate   *time.Time `json:"interviewDate"`
	InterviewNotes  *string    `json:"interviewNotes"`
	AssignedClassID *uuid.UUID `json:"assignedClassId"`
	AdmissionNumber *string    `json:"admissionNumber" validate:"omitempty,max=50"`
	Status          *string    `json:"status"`
	Notes           string     `json:"notes"`
}

type VerifyDocumentRequest struct {
	Status  string `json:"status" validate:"required,oneof=VERIFIED REJECTED"`
	Remarks string `json:"remarks"`
}

type NoteRequest struct {
	Content string `json:"content" validate:"required"`
}

type CommunicationRequest struct {
	Type      string `json:"type" validate:"required,oneof=email phone in_person"`
	Message   string `json:"message" validate:"required"`
	Direction string `json:"direction" validate:"omitempty,oneof=incoming outgoing"`
	Notes     string `json:"notes"`
}

type TimelineStep struct {
	Step      int    `json:"step"`
	Status    string `json:"status"`
	Completed bool   `json:"completed"`
	Current   bool   `json:"current"`
}

type Progress struct {
	CurrentStatus   string            `json:"currentStatus"`
	CurrentStep     int               `json:"currentStep"`
	CompletedSteps  []string          `json:"completedSteps"`
	NextStep        string            `json:"nextStep"`
	Timeline        []TimelineStep    `json:"timeline"`
	Documents       model.DocumentSet `json:"documents"`
	InterviewDate   *time.Time        `json:"interviewDate,omitempty"`
	AssignedClassID *uuid.UUID        `json:"assignedClassId,omitempty"`
}

type Stats struct {
	TotalApplications int64 `json:"totalApplications"`
	NewApplications   int64 `json:"newApplications"`
	InReview          int64 `json:"inReview"`
	Scheduled         int64 `json:"scheduled"`
	PendingDocuments  int64 `json:"pendingDocuments"`
	Approved          int64 `json:"approved"`
	Rejected          int64 `json:"rejected"`
	Enrolled          int64 `json:"enrolled"`
}

// StatsFromCounts: status -> jumlah baris.
func StatsFromCounts(counts map[string]int64) Stats {
	s := Stats{
		NewApplications:  counts[model.StatusNew],
		InReview:         counts[model.StatusInReview],
		Scheduled:        counts[model.StatusScheduledInterview],
		PendingDocuments: counts[model.StatusPendingDocuments],
		Approved:         counts[model.StatusApproved],
		Rejected:         counts[model.StatusRejected],
		Enrolled:         counts[model.StatusEnrolled],
	}
	for _, n := range counts {
		s.TotalApplications += n
	}
	return s
}
