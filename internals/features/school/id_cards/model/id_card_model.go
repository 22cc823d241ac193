package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/constants"
	classModel "schooldesk_backend/internals/features/school/classes/main/model"
	helper "schooldesk_backend/internals/helpers"
	"schooldesk_backend/internals/helpers/dbtime"
)

const (
	PhotoStudent  = "student"
	PhotoFather   = "father"
	PhotoMother   = "mother"
	PhotoGuardian = "guardian"
)

// PhotoColumns: photoType -> kolom URL.
var PhotoColumns = map[string]string{
	PhotoStudent:  "student_photo_url",
	PhotoFather:   "father_photo_url",
	PhotoMother:   "mother_photo_url",
	PhotoGuardian: "guardian_photo_url",
}

type IDCardModel struct {
	ID               uuid.UUID    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentName      string       `gorm:"column:student_name;size:150;not null" json:"studentName"`
	ClassID          *uuid.UUID   `gorm:"column:class_id;type:uuid;index" json:"classId,omitempty"`
	AdmissionNumber  *string      `gorm:"column:admission_number;size:50" json:"admissionNumber,omitempty"`
	DateOfBirth      *dbtime.Date `gorm:"column:date_of_birth;type:date" json:"dateOfBirth,omitempty"`
	FatherName       string       `gorm:"column:father_name;size:150" json:"fatherName"`
	MotherName       string       `gorm:"column:mother_name;size:150" json:"motherName"`
	FatherMobile     string       `gorm:"column:father_mobile;size:30" json:"fatherMobile"`
	MotherMobile     string       `gorm:"column:mother_mobile;size:30" json:"motherMobile"`
	Address          string       `gorm:"column:address" json:"address"`
	StudentPhotoURL  *string      `gorm:"column:student_photo_url" json:"studentPhotoUrl,omitempty"`
	FatherPhotoURL   *string      `gorm:"column:father_photo_url" json:"fatherPhotoUrl,omitempty"`
	MotherPhotoURL   *string      `gorm:"column:mother_photo_url" json:"motherPhotoUrl,omitempty"`
	GuardianPhotoURL *string      `gorm:"column:guardian_photo_url" json:"guardianPhotoUrl,omitempty"`
	DownloadCount    int          `gorm:"column:download_count;not null;default:0" json:"downloadCount"`
	DedupKey         string       `gorm:"column:dedup_key;size:500;index" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Class *classModel.ClassModel `gorm:"foreignKey:ClassID;references:ID" json:"class,omitempty"`
}

func (IDCardModel) TableName() string {
	return constants.Table(constants.IDCardTable)
}

// ComputeDedupKey: nama siswa + kelas + nama orang tua, case/diacritic-insensitive.
func (m *IDCardModel) ComputeDedupKey() {
	class := ""
	if m.ClassID != nil {
		class = m.ClassID.String()
	}
	m.DedupKey = strings.Join([]string{
		helper.NormalizeName(m.StudentName),
		class,
		helper.NormalizeName(m.FatherName),
		helper.NormalizeName(m.MotherName),
	}, "|")
}

func (m *IDCardModel) PhotoURL(photoType string) *string {
	switch photoType {
	case PhotoStudent:
		return m.StudentPhotoURL
	case PhotoFather:
		return m.FatherPhotoURL
	case PhotoMother:
		return m.MotherPhotoURL
	case PhotoGuardian:
		return m.GuardianPhotoURL
	}
	return nil
}

func (m *IDCardModel) SetPhotoURL(photoType string, url *string) {
	switch photoType {
	case PhotoStudent:
		m.StudentPhotoURL = url
	case PhotoFather:
		m.FatherPhotoURL = url
	case PhotoMother:
		m.MotherPhotoURL = url
	case PhotoGuardian:
		m.GuardianPhotoURL = url
	}
}

func (m *IDCardModel) ClassLabel() string {
	if m.Class == nil {
		return ""
	}
	return strings.TrimSpace(m.Class.Name + " " + m.Class.Section)
}
