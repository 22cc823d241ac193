package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"schooldesk_backend/internals/constants"
)

const StatusEnrolled = "ENROLLED"

// NoGameLabel: grup untuk pendaftar tanpa cabang lomba.
const NoGameLabel = "No Specific Event Selected"

type SportsEnrollmentModel struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentName   string         `gorm:"column:student_name;size:150;not null" json:"studentName"`
	ParentName    string         `gorm:"column:parent_name;size:150;not null" json:"parentName"`
	ContactNumber string         `gorm:"column:contact_number;size:30;not null" json:"contactNumber"`
	ClassID       uuid.UUID      `gorm:"column:class_id;type:uuid;not null;index" json:"classId"`
	ClassName     string         `gorm:"column:class_name;size:100" json:"className"`
	SelectedGames pq.StringArray `gorm:"column:selected_games;type:text[]" json:"selectedGames"`
	SpecialNotes  *string        `gorm:"column:special_notes" json:"specialNotes,omitempty"`
	Status        string         `gorm:"column:status;size:20;not null;default:ENROLLED" json:"status"`
	EnrolledAt    time.Time      `gorm:"column:enrolled_at;not null" json:"enrolledAt"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (SportsEnrollmentModel) TableName() string {
	return constants.Table(constants.SportsEnrollmentTable)
}
