package dto

import (
	"strings"

	"github.com/google/uuid"

	"schooldesk_backend/internals/features/school/parent_feedback/model"
)

type FeedbackRequest struct {
	ClassID              uuid.UUID `json:"classId" validate:"required"`
	StudentName          string    `json:"studentName" validate:"required,max=150"`
	Month                string    `json:"month" validate:"required"`
	GoodThings           string    `json:"goodThings" validate:"required"`
	NeedToImprove        string    `json:"needToImprove" validate:"required"`
	BestCanDo            string    `json:"bestCanDo" validate:"required"`
	AttendancePercentage float64   `json:"attendancePercentage" validate:"gte=0,lte=100"`
	StudentPhotoURL      *string   `json:"studentPhotoUrl"`
}

// ApplyToModel: month sudah dinormalisasi oleh service.
func (r FeedbackRequest) ApplyToModel(m *model.ParentFeedbackModel) {
	m.ClassID = r.ClassID
	m.StudentName = strings.TrimSpace(r.StudentName)
	m.Month = model.NormalizeMonth(r.Month)
	m.GoodThings = strings.TrimSpace(r.GoodThings)
	m.NeedToImprove = strings.TrimSpace(r.NeedToImprove)
	m.BestCanDo = strings.TrimSpace(r.BestCanDo)
	m.AttendancePercentage = r.AttendancePercentage
	if r.StudentPhotoURL != nil {
		if s := strings.TrimSpace(*r.StudentPhotoURL); s != "" {
			m.StudentPhotoURL = &s
		} else {
			m.StudentPhotoURL = nil
		}
	}
}

// SearchFilter: semua field opsional; StudentName case-insensitive exact.
type SearchFilter struct {
	ClassID     *uuid.UUID
	StudentName string
	Month       string
}

// Photos: foto dari ID card; nil kalau tidak ada.
type Photos struct {
	StudentPhotoURL *string `json:"studentPhotoUrl"`
	FatherPhotoURL  *string `json:"fatherPhotoUrl"`
	MotherPhotoURL  *string `json:"motherPhotoUrl"`
}

type CertificateResponse struct {
	Certificate model.FeedbackCertificateModel `json:"certificate"`
	Feedback    model.ParentFeedbackModel      `json:"feedback"`
	Created     bool                           `json:"created"`
}

/* ===== parent submitted ===== */

type SubmitRequest struct {
	ClassID          uuid.UUID `json:"classId" validate:"required"`
	StudentName      string    `json:"studentName" validate:"required,max=150"`
	ParentName       string    `json:"parentName" validate:"required,max=150"`
	ParentRelation   string    `json:"parentRelation" validate:"required,max=30"`
	Month            string    `json:"month" validate:"required"`
	Feedback         string    `json:"feedback" validate:"required"`
	ProgressFeedback string    `json:"progressFeedback"`
}

func (r SubmitRequest) ApplyToModel(m *model.ParentSubmittedFeedbackModel) {
	m.ClassID = r.ClassID
	m.StudentName = strings.TrimSpace(r.StudentName)
	m.ParentName = strings.TrimSpace(r.ParentName)
	m.ParentRelation = strings.TrimSpace(r.ParentRelation)
	m.Month = model.NormalizeMonth(r.Month)
	m.Feedback = strings.TrimSpace(r.Feedback)
	m.ProgressFeedback = strings.TrimSpace(r.ProgressFeedback)
}

type SubmittedFilter struct {
	ClassID *uuid.UUID
	Month   string
	Status  string
}

type SubmittedStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING REVIEWED RESPONDED"`
}

type AdminResponseRequest struct {
	AdminFeedback string `json:"adminFeedback" validate:"required"`
}
