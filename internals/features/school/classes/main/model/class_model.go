package model

import (
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/constants"
)

type ClassModel struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name       string     `gorm:"column:name;size:100;not null" json:"name"`
	Section    string     `gorm:"column:section;size:20" json:"section"`
	RoomNumber *string    `gorm:"column:room_number;size:30" json:"roomNumber,omitempty"`
	Capacity   int        `gorm:"column:capacity;not null;default:0" json:"capacity"`
	SchoolID   *uuid.UUID `gorm:"column:school_id;type:uuid;index" json:"schoolId,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (ClassModel) TableName() string {
	return constants.Table(constants.ClassTable)
}
