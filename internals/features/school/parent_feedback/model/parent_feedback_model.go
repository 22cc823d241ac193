package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/constants"
	classModel "schooldesk_backend/internals/features/school/classes/main/model"
)

// Months: nilai sah kolom month (nama bulan Inggris).
var Months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// NormalizeMonth: "march" -> "March"; "" kalau bukan nama bulan.
func NormalizeMonth(s string) string {
	s = strings.TrimSpace(s)
	for _, m := range Months {
		if strings.EqualFold(m, s) {
			return m
		}
	}
	return ""
}

// ParentFeedbackModel: rapor bulanan dari guru untuk orang tua.
type ParentFeedbackModel struct {
	ID                   uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClassID              uuid.UUID  `gorm:"column:class_id;type:uuid;not null;index:idx_parent_feedback_lookup" json:"classId"`
	StudentName          string     `gorm:"column:student_name;size:150;not null;index:idx_parent_feedback_lookup" json:"studentName"`
	Month                string     `gorm:"column:month;size:10;not null;index:idx_parent_feedback_lookup" json:"month"`
	GoodThings           string     `gorm:"column:good_things;not null" json:"goodThings"`
	NeedToImprove        string     `gorm:"column:need_to_improve;not null" json:"needToImprove"`
	BestCanDo            string     `gorm:"column:best_can_do;not null" json:"bestCanDo"`
	AttendancePercentage float64    `gorm:"column:attendance_percentage;not null;default:0" json:"attendancePercentage"`
	StudentPhotoURL      *string    `gorm:"column:student_photo_url" json:"studentPhotoUrl,omitempty"`
	FatherPhotoURL       *string    `gorm:"column:father_photo_url" json:"fatherPhotoUrl,omitempty"`
	MotherPhotoURL       *string    `gorm:"column:mother_photo_url" json:"motherPhotoUrl,omitempty"`
	CreatedBy            *uuid.UUID `gorm:"column:created_by;type:uuid" json:"createdBy,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Class *classModel.ClassModel `gorm:"foreignKey:ClassID;references:ID" json:"class,omitempty"`
}

func (ParentFeedbackModel) TableName() string {
	return constants.Table(constants.ParentFeedbackTable)
}

func (m *ParentFeedbackModel) ClassLabel() string {
	if m.Class == nil {
		return ""
	}
	return strings.TrimSpace(m.Class.Name + " " + m.Class.Section)
}

// FeedbackCertificateModel: satu sertifikat per feedback.
type FeedbackCertificateModel struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FeedbackID     uuid.UUID `gorm:"column:feedback_id;type:uuid;not null;uniqueIndex" json:"feedbackId"`
	CertificateURL *string   `gorm:"column:certificate_url" json:"certificateUrl,omitempty"`
	DownloadCount  int       `gorm:"column:download_count;not null;default:0" json:"downloadCount"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (FeedbackCertificateModel) TableName() string {
	return constants.Table(constants.FeedbackCertificateTable)
}

const (
	SubmittedPending   = "PENDING"
	SubmittedReviewed  = "REVIEWED"
	SubmittedResponded = "RESPONDED"
)

// ParentSubmittedFeedbackModel: masukan dari orang tua, satu per siswa per bulan.
type ParentSubmittedFeedbackModel struct {
	ID                uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClassID           uuid.UUID  `gorm:"column:class_id;type:uuid;not null;index:idx_parent_submitted_lookup" json:"classId"`
	StudentName       string     `gorm:"column:student_name;size:150;not null;index:idx_parent_submitted_lookup" json:"studentName"`
	ParentName        string     `gorm:"column:parent_name;size:150;not null" json:"parentName"`
	ParentRelation    string     `gorm:"column:parent_relation;size:30;not null" json:"parentRelation"`
	Month             string     `gorm:"column:month;size:10;not null;index:idx_parent_submitted_lookup" json:"month"`
	Feedback          string     `gorm:"column:feedback;not null" json:"feedback"`
	ProgressFeedback  string     `gorm:"column:progress_feedback" json:"progressFeedback"`
	AdminFeedback     *string    `gorm:"column:admin_feedback" json:"adminFeedback,omitempty"`
	AdminFeedbackDate *time.Time `gorm:"column:admin_feedback_date" json:"adminFeedbackDate,omitempty"`
	AdminFeedbackBy   *uuid.UUID `gorm:"column:admin_feedback_by;type:uuid" json:"adminFeedbackBy,omitempty"`
	Status            string     `gorm:"column:status;size:20;not null;default:'PENDING';index" json:"status"`
	NormalizedStudent string     `gorm:"column:normalized_student;size:150;not null;index:idx_parent_submitted_lookup" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Class *classModel.ClassModel `gorm:"foreignKey:ClassID;references:ID" json:"class,omitempty"`
}

func (ParentSubmittedFeedbackModel) TableName() string {
	return constants.Table(constants.ParentSubmittedFeedbackTable)
}
