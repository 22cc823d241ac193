package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/helpers/dbtime"
)

// Status enquiry. Urutan Track = urutan timeline; REJECTED di luar track.
const (
	StatusNew                = "NEW"
	StatusInReview           = "IN_REVIEW"
	StatusScheduledInterview = "SCHEDULED_INTERVIEW"
	StatusPendingDocuments   = "PENDING_DOCUMENTS"
	StatusApproved           = "APPROVED"
	StatusEnrolled           = "ENROLLED"
	StatusRejected           = "REJECTED"
)

var Track = []string{
	StatusNew,
	StatusInReview,
	StatusScheduledInterview,
	StatusPendingDocuments,
	StatusApproved,
	StatusEnrolled,
}

func IsValidStatus(s string) bool {
	if s == StatusRejected {
		return true
	}
	for _, t := range Track {
		if t == s {
			return true
		}
	}
	return false
}

// Dokumen wajib pendaftaran.
const (
	DocBirthCertificate    = "BIRTH_CERTIFICATE"
	DocPreviousReportCard  = "PREVIOUS_REPORT_CARD"
	DocTransferCertificate = "TRANSFER_CERTIFICATE"
	DocPassportPhoto       = "PASSPORT_PHOTO"
	DocAddressProof        = "ADDRESS_PROOF"
)

var RequiredDocuments = []string{
	DocBirthCertificate,
	DocPreviousReportCard,
	DocTransferCertificate,
	DocPassportPhoto,
	DocAddressProof,
}

func IsRequiredDocument(doc string) bool {
	for _, d := range RequiredDocuments {
		if d == doc {
			return true
		}
	}
	return false
}

const (
	DocMissing  = "MISSING"
	DocPending  = "PENDING"
	DocVerified = "VERIFIED"
	DocRejected = "REJECTED"
)

type SubmittedDocument struct {
	URL         string    `json:"url"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

type DocumentState struct {
	Status          string              `json:"status"`
	Submitted       []SubmittedDocument `json:"submitted"`
	RejectionReason string              `json:"rejectionReason,omitempty"`
}

// DocumentSet: jenis dokumen -> state; disimpan sebagai satu kolom jsonb.
type DocumentSet map[string]DocumentState

func InitialDocuments() DocumentSet {
	out := make(DocumentSet, len(RequiredDocuments))
	for _, d := range RequiredDocuments {
		out[d] = DocumentState{Status: DocMissing, Submitted: []SubmittedDocument{}}
	}
	return out
}

type ProspectiveStudentModel struct {
	ID             uuid.UUID    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentName    string       `gorm:"column:student_name;size:150;not null" json:"studentName"`
	ParentName     string       `gorm:"column:parent_name;size:150;not null" json:"parentName"`
	DateOfBirth    *dbtime.Date `gorm:"column:date_of_birth;type:date" json:"dateOfBirth,omitempty"`
	Gender         string       `gorm:"column:gender;size:10" json:"gender"`
	Email          string       `gorm:"column:email;size:255;not null;index" json:"email"`
	ContactNumber  string       `gorm:"column:contact_number;size:30;not null" json:"contactNumber"`
	GradeApplying  string       `gorm:"column:grade_applying;size:30;not null;index" json:"gradeApplying"`
	CurrentSchool  *string      `gorm:"column:current_school;size:200" json:"currentSchool,omitempty"`
	Address        string       `gorm:"column:address" json:"address"`
	BloodGroup     *string      `gorm:"column:blood_group;size:5" json:"bloodGroup,omitempty"`
	Status         string       `gorm:"column:status;size:30;not null;default:'NEW';index" json:"status"`
	AppliedDate    time.Time    `gorm:"column:applied_date;not null;index" json:"appliedDate"`
	LastUpdateDate time.Time    `gorm:"column:last_update_date;not null" json:"lastUpdateDate"`
	AssignedTo     *uuid.UUID   `gorm:"column:assigned_to;type:uuid" json:"assignedTo,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Process *AdmissionProcessModel `gorm:"foreignKey:ProspectiveStudentID;references:ID;constraint:OnDelete:CASCADE" json:"admissionProcess,omitempty"`
}

func (ProspectiveStudentModel) TableName() string {
	return constants.Table(constants.ProspectiveStudentTable)
}

type AdmissionProcessModel struct {
	ID                   uuid.UUID                       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProspectiveStudentID uuid.UUID                       `gorm:"column:prospective_student_id;type:uuid;not null;uniqueIndex" json:"prospectiveStudentId"`
	Documents            datatypes.JSONType[DocumentSet] `gorm:"column:documents;type:jsonb;not null" json:"documents"`
	InterviewDate        *time.Time                      `gorm:"column:interview_date" json:"interviewDate,omitempty"`
	InterviewNotes       *string                         `gorm:"column:interview_notes" json:"interviewNotes,omitempty"`
	AssignedClassID      *uuid.UUID                      `gorm:"column:assigned_class_id;type:uuid" json:"assignedClassId,omitempty"`
	AdmissionNumber      *string                         `gorm:"column:admission_number;size:50" json:"admissionNumber,omitempty"`
	ApprovedBy           *uuid.UUID                      `gorm:"column:approved_by;type:uuid" json:"approvedBy,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (AdmissionProcessModel) TableName() string {
	return constants.Table(constants.AdmissionProcessTable)
}

type AdmissionNoteModel struct {
	ID                   uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProspectiveStudentID uuid.UUID  `gorm:"column:prospective_student_id;type:uuid;not null;index" json:"prospectiveStudentId"`
	Content              string     `gorm:"column:content;not null" json:"content"`
	CreatedBy            *uuid.UUID `gorm:"column:created_by;type:uuid" json:"createdBy,omitempty"`
	CreatedAt            time.Time  `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
}

func (AdmissionNoteModel) TableName() string {
	return constants.Table(constants.AdmissionNoteTable)
}

const (
	CommEmail   = "EMAIL"
	CommPhone   = "PHONE"
	CommMeeting = "MEETING"

	DirectionIncoming = "INCOMING"
	DirectionOutgoing = "OUTGOING"
)

type AdmissionCommunicationModel struct {
	ID                   uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProspectiveStudentID uuid.UUID  `gorm:"column:prospective_student_id;type:uuid;not null;index" json:"prospectiveStudentId"`
	CommunicationType    string     `gorm:"column:communication_type;size:20;not null" json:"communicationType"`
	Direction            string     `gorm:"column:direction;size:10;not null;default:'OUTGOING'" json:"direction"`
	Notes                string     `gorm:"column:notes;not null" json:"notes"`
	StaffID              *uuid.UUID `gorm:"column:staff_id;type:uuid" json:"staffId,omitempty"`
	CommunicationDate    time.Time  `gorm:"column:communication_date;not null;index" json:"communicationDate"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (AdmissionCommunicationModel) TableName() string {
	return constants.Table(constants.AdmissionCommunicationTable)
}

// Clone: salinan dalam (map + slice) supaya perubahan tidak bocor antar baris.
func (s DocumentSet) Clone() DocumentSet {
	out := make(DocumentSet, len(s))
	for k, v := range s {
		v.Submitted = append([]SubmittedDocument{}, v.Submitted...)
		out[k] = v
	}
	return out
}
