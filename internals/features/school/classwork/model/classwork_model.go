package model

import (
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/constants"
	classModel "schooldesk_backend/internals/features/school/classes/main/model"
	"schooldesk_backend/internals/helpers/dbtime"
)

// ClassworkModel: materi/kegiatan kelas harian, selalu terikat ke satu kelas.
type ClassworkModel struct {
	ID          uuid.UUID   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string      `gorm:"column:title;size:200;not null" json:"title"`
	Description string      `gorm:"column:description" json:"description"`
	Date        dbtime.Date `gorm:"column:date;type:date;not null;index" json:"date"`
	ClassID     uuid.UUID   `gorm:"column:class_id;type:uuid;not null;index" json:"classId"`
	CreatedBy   *uuid.UUID  `gorm:"column:created_by;type:uuid" json:"createdBy,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Class *classModel.ClassModel `gorm:"foreignKey:ClassID;references:ID" json:"class,omitempty"`
	Files []ClassworkFileModel   `gorm:"foreignKey:ClassworkID;references:ID;constraint:OnDelete:CASCADE" json:"attachments"`
}

func (ClassworkModel) TableName() string {
	return constants.Table(constants.ClassworkTable)
}

type ClassworkFileModel struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClassworkID uuid.UUID  `gorm:"column:classwork_id;type:uuid;not null;index" json:"classworkId"`
	FilePath    string     `gorm:"column:file_path;not null" json:"filePath"`
	FileType    string     `gorm:"column:file_type;size:30" json:"fileType"`
	FileName    string     `gorm:"column:file_name;size:255" json:"fileName"`
	UploadedAt  time.Time  `gorm:"column:uploaded_at;autoCreateTime" json:"uploadedAt"`
	UploadedBy  *uuid.UUID `gorm:"column:uploaded_by;type:uuid" json:"uploadedBy,omitempty"`
}

func (ClassworkFileModel) TableName() string {
	return constants.Table(constants.ClassworkFileTable)
}
