package model

import (
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/constants"
	authModel "schooldesk_backend/internals/features/users/auth/model"
)

const (
	StatusRaised   = "RAISED"
	StatusResolved = "RESOLVED"
)

type FeedbackModel struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"userId"`
	Title       string    `gorm:"column:title;size:200;not null" json:"title"`
	Description string    `gorm:"column:description;not null" json:"description"`
	Note        *string   `gorm:"column:note" json:"note,omitempty"`
	Status      string    `gorm:"column:status;size:10;not null;default:RAISED;index" json:"status"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	User    *authModel.ProfileModel `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Replies []FeedbackReplyModel    `gorm:"foreignKey:FeedbackID" json:"replies"`
}

func (FeedbackModel) TableName() string {
	return constants.Table(constants.FeedbackTable)
}

type FeedbackReplyModel struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FeedbackID uuid.UUID `gorm:"column:feedback_id;type:uuid;not null;index" json:"feedbackId"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null" json:"userId"`
	Reply      string    `gorm:"column:reply;not null" json:"reply"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`

	User *authModel.ProfileModel `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

func (FeedbackReplyModel) TableName() string {
	return constants.Table(constants.FeedbackReplyTable)
}
