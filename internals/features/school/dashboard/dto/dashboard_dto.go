package dto

import "github.com/google/uuid"

type AttendanceSummary struct {
	Present int64   `json:"present"`
	Absent  int64   `json:"absent"`
	Late    int64   `json:"late"`
	Total   int64   `json:"total"`
	Rate    float64 `json:"rate"` // persen, 1 desimal
}

type FeeSummary struct {
	Pending           int64   `json:"pending"`
	Overdue           int64   `json:"overdue"`
	Paid              int64   `json:"paid"`
	OutstandingAmount float64 `json:"outstandingAmount"`
	CollectedAmount   float64 `json:"collectedAmount"`
}

// Summary: angka ringkas halaman dashboard admin.
type Summary struct {
	Students           int64             `json:"students"`
	Teachers           int64             `json:"teachers"`
	Classes            int64             `json:"classes"`
	Assignments        int64             `json:"assignments"`
	Classwork          int64             `json:"classwork"`
	AttendanceToday    AttendanceSummary `json:"attendanceToday"`
	Fees               FeeSummary        `json:"fees"`
	OpenAdmissions     int64             `json:"openAdmissions"`
	PendingParentNotes int64             `json:"pendingParentFeedback"`
	Date               string            `json:"date"`
}

// StudentSummary: per siswa yang terhubung ke akun login.
type StudentSummary struct {
	StudentID   uuid.UUID         `json:"studentId"`
	Name        string            `json:"name"`
	ClassID     *uuid.UUID        `json:"classId,omitempty"`
	Attendance  AttendanceSummary `json:"attendance"`
	Fees        FeeSummary        `json:"fees"`
	Assignments int64             `json:"assignments"`
	Classwork   int64             `json:"classwork"`
}
