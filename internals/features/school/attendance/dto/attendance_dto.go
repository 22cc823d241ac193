package dto

import (
	"github.com/google/uuid"

	"schooldesk_backend/internals/helpers/dbtime"
)

type CreateAttendanceRequest struct {
	Date      dbtime.Date `json:"date"`
	Status    string      `json:"status" validate:"required,oneof=PRESENT ABSENT LATE HALF_DAY"`
	StudentID uuid.UUID   `json:"studentId" validate:"required"`
	ClassID   *uuid.UUID  `json:"classId"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PRESENT ABSENT LATE HALF_DAY"`
}

type MarkEntry struct {
	StudentID uuid.UUID `json:"studentId" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=PRESENT ABSENT LATE HALF_DAY"`
}

// MarkClassRequest: absen satu kelas sekaligus (upsert per siswa+tanggal).
type MarkClassRequest struct {
	ClassID uuid.UUID   `json:"classId" validate:"required"`
	Date    dbtime.Date `json:"date"`
	Entries []MarkEntry `json:"entries" validate:"required,min=1,dive"`
}
