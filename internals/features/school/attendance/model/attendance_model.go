package model

import (
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/constants"
	studentModel "schooldesk_backend/internals/features/school/students/model"
	"schooldesk_backend/internals/helpers/dbtime"
)

const (
	StatusPresent = "PRESENT"
	StatusAbsent  = "ABSENT"
	StatusLate    = "LATE"
	StatusHalfDay = "HALF_DAY"
)

// satu catatan per siswa per tanggal
type AttendanceModel struct {
	ID        uuid.UUID   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Date      dbtime.Date `gorm:"column:date;type:date;not null;uniqueIndex:uq_attendance_student_date,priority:2;index" json:"date"`
	Status    string      `gorm:"column:status;size:10;not null" json:"status"`
	StudentID uuid.UUID   `gorm:"column:student_id;type:uuid;not null;uniqueIndex:uq_attendance_student_date,priority:1" json:"studentId"`
	ClassID   *uuid.UUID  `gorm:"column:class_id;type:uuid;index" json:"classId,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Student *studentModel.StudentModel `gorm:"foreignKey:StudentID;references:ID" json:"student,omitempty"`
}

func (AttendanceModel) TableName() string {
	return constants.Table(constants.AttendanceTable)
}

type AttendanceStats struct {
	Total                int64   `json:"total"`
	Present              int64   `json:"present"`
	Absent               int64   `json:"absent"`
	Late                 int64   `json:"late"`
	HalfDay              int64   `json:"halfDay"`
	AttendancePercentage float64 `json:"attendancePercentage"`
}

// ComputeStats: persentase = (hadir + 0.5*setengah hari) / total * 100, 0 kalau kosong.
func ComputeStats(counts map[string]int64) AttendanceStats {
	s := AttendanceStats{
		Present: counts[StatusPresent],
		Absent:  counts[StatusAbsent],
		Late:    counts[StatusLate],
		HalfDay: counts[StatusHalfDay],
	}
	for _, n := range counts {
		s.Total += n
	}
	if s.Total > 0 {
		s.AttendancePercentage = (float64(s.Present) + float64(s.HalfDay)*0.5) / float64(s.Total) * 100
	}
	return s
}
