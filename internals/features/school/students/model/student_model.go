package model

import (
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/constants"
	classModel "schooldesk_backend/internals/features/school/classes/main/model"
	authModel "schooldesk_backend/internals/features/users/auth/model"
	"schooldesk_backend/internals/helpers/dbtime"
)

type StudentModel struct {
	ID              uuid.UUID    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AdmissionNumber *string      `gorm:"column:admission_number;size:50;uniqueIndex" json:"admissionNumber,omitempty"`
	Name            string       `gorm:"column:name;size:150;not null" json:"name"`
	Grade           string       `gorm:"column:grade;size:30" json:"grade"`
	Section         string       `gorm:"column:section;size:20" json:"section"`
	RollNo          string       `gorm:"column:roll_no;size:20" json:"rollNo"`
	DateOfBirth     *dbtime.Date `gorm:"column:date_of_birth;type:date" json:"dateOfBirth,omitempty"`
	Gender          *string      `gorm:"column:gender;size:10" json:"gender,omitempty"`
	Address         *string      `gorm:"column:address" json:"address,omitempty"`
	ContactNumber   *string      `gorm:"column:contact_number;size:30" json:"contactNumber,omitempty"`
	ParentName      *string      `gorm:"column:parent_name;size:150" json:"parentName,omitempty"`
	ParentContact   *string      `gorm:"column:parent_contact;size:30" json:"parentContact,omitempty"`
	ParentEmail     *string      `gorm:"column:parent_email;size:255;index" json:"parentEmail,omitempty"`
	BloodGroup      *string      `gorm:"column:blood_group;size:5" json:"bloodGroup,omitempty"`
	ClassID         *uuid.UUID   `gorm:"column:class_id;type:uuid;index" json:"classId,omitempty"`
	UserID          *uuid.UUID   `gorm:"column:user_id;type:uuid;index" json:"userId,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Class   *classModel.ClassModel  `gorm:"foreignKey:ClassID;references:ID" json:"class,omitempty"`
	Profile *authModel.ProfileModel `gorm:"foreignKey:UserID;references:ID" json:"profile,omitempty"`
}

func (StudentModel) TableName() string {
	return constants.Table(constants.StudentTable)
}

// ClassStudent: baris ringkas untuk autocomplete (nama + foto kartu pelajar kalau ada).
type ClassStudent struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	PhotoURL        *string   `json:"photoUrl"`
	AdmissionNumber *string   `json:"admissionNumber,omitempty"`
}
