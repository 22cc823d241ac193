package model

import (
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/constants"
)

// ProfileModel: satu baris per user. id dipakai juga sebagai user id (sub JWT).
type ProfileModel struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string    `gorm:"column:email;size:255;not null;uniqueIndex" json:"email"`
	PasswordHash *string   `gorm:"column:password_hash" json:"-"`
	Role         string    `gorm:"column:role;size:20;not null;default:STUDENT" json:"role"`
	FullName     string    `gorm:"column:full_name;size:150" json:"fullName"`
	AvatarURL    *string   `gorm:"column:avatar_url" json:"avatarUrl,omitempty"`
	GoogleID     *string   `gorm:"column:google_id;uniqueIndex" json:"-"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true" json:"isActive"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (ProfileModel) TableName() string {
	return constants.Table(constants.ProfileTable)
}
