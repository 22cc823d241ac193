package model

import (
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/helpers/dbtime"
)

type AssignmentModel struct {
	ID             uuid.UUID    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title          string       `gorm:"column:title;size:200;not null" json:"title"`
	Description    string       `gorm:"column:description" json:"description"`
	Subject        string       `gorm:"column:subject;size:100" json:"subject"`
	ClassID        *uuid.UUID   `gorm:"column:class_id;type:uuid;index" json:"classId,omitempty"`
	AssignmentDate dbtime.Date  `gorm:"column:assignment_date;type:date;not null;index" json:"assignmentDate"`
	DueDate        *dbtime.Date `gorm:"column:due_date;type:date" json:"dueDate,omitempty"`
	CreatedBy      *uuid.UUID   `gorm:"column:created_by;type:uuid" json:"createdBy,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Files []AssignmentFileModel `gorm:"foreignKey:AssignmentID;references:ID;constraint:OnDelete:CASCADE" json:"files"`
}

func (AssignmentModel) TableName() string {
	return constants.Table(constants.AssignmentTable)
}

type AssignmentFileModel struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AssignmentID uuid.UUID  `gorm:"column:assignment_id;type:uuid;not null;index" json:"assignmentId"`
	FilePath     string     `gorm:"column:file_path;not null" json:"filePath"`
	FileType     string     `gorm:"column:file_type;size:30" json:"fileType"`
	FileName     string     `gorm:"column:file_name;size:255" json:"fileName"`
	UploadedAt   time.Time  `gorm:"column:uploaded_at;autoCreateTime" json:"uploadedAt"`
	UploadedBy   *uuid.UUID `gorm:"column:uploaded_by;type:uuid" json:"uploadedBy,omitempty"`
}

func (AssignmentFileModel) TableName() string {
	return constants.Table(constants.AssignmentFileTable)
}
