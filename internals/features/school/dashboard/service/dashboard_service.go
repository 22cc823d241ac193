package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/constants"
	feeModel "schooldesk_backend/internals/features/finance/fees/model"
	admissionModel "schooldesk_backend/internals/features/school/admissions/model"
	attendanceModel "schooldesk_backend/internals/features/school/attendance/model"
	"schooldesk_backend/internals/features/school/dashboard/dto"
	"schooldesk_backend/internals/features/school/dashboard/repository"
	parentFeedbackModel "schooldesk_backend/internals/features/school/parent_feedback/model"
	studentModel "schooldesk_backend/internals/features/school/students/model"
	"schooldesk_backend/internals/helpers/cache"
)

const summaryTTL = time.Minute

type StudentLookup interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]studentModel.StudentModel, error)
}

type DashboardService struct {
	Counter  repository.Counter
	Students StudentLookup
	Cache    cache.Store // nil = tanpa cache
	Now      func() time.Time
}

func NewDashboardService(counter repository.Counter, students StudentLookup, store cache.Store) *DashboardService {
	return &DashboardService{Counter: counter, Students: students, Cache: store, Now: time.Now}
}

// tally: error pertama menghentikan hitungan berikutnya.
type tally struct {
	ctx context.Context
	c   repository.Counter
	err error
}

func (t *tally) count(table string, where map[string]any) int64 {
	if t.err != nil {
		return 0
	}
	n, err := t.c.Count(t.ctx, repository.Query{Table: table, Where: where})
	t.err = err
	return n
}

func (t *tally) sum(table, column string, where map[string]any) float64 {
	if t.err != nil {
		return 0
	}
	v, err := t.c.Sum(t.ctx, repository.Query{Table: table, Where: where}, column)
	t.err = err
	return v
}

func with(base map[string]any, k string, v any) map[string]any {
	out := make(map[string]any, len(base)+1)
	for key, val := range base {
		out[key] = val
	}
	out[k] = v
	return out
}

func rate(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

func (t *tally) attendance(where map[string]any) dto.AttendanceSummary {
	s := dto.AttendanceSummary{
		Present: t.count(constants.AttendanceTable, with(where, "status", attendanceModel.StatusPresent)),
		Absent:  t.count(constants.AttendanceTable, with(where, "status", attendanceModel.StatusAbsent)),
		Late:    t.count(constants.AttendanceTable, with(where, "status", attendanceModel.StatusLate)),
		Total:   t.count(constants.AttendanceTable, where),
	}
	s.Rate = rate(s.Present, s.Total)
	return s
}

var unpaidStatuses = []string{feeModel.StatusPending, feeModel.StatusOverdue, feeModel.StatusPartial}

func (t *tally) fees(where map[string]any) dto.FeeSummary {
	return dto.FeeSummary{
		Pending:           t.count(constants.FeeTable, with(where, "status", feeModel.StatusPending)),
		Overdue:           t.count(constants.FeeTable, with(where, "status", feeModel.StatusOverdue)),
		Paid:              t.count(constants.FeeTable, with(where, "status", feeModel.StatusPaid)),
		OutstandingAmount: t.sum(constants.FeeTable, "amount", with(where, "status", unpaidStatuses)),
		CollectedAmount:   t.sum(constants.FeeTable, "amount", with(where, "status", feeModel.StatusPaid)),
	}
}

var openAdmissionStatuses = []string{
	admissionModel.StatusNew,
	admissionModel.StatusInReview,
	admissionModel.StatusScheduledInterview,
	admissionModel.StatusPendingDocuments,
	admissionModel.StatusApproved,
}

// Summary: di-cache per tanggal selama satu menit.
func (s *DashboardService) Summary(ctx context.Context) (dto.Summary, error) {
	date := s.Now().Format("2006-01-02")
	if s.Cache == nil {
		return s.summary(ctx, date)
	}
	return cache.Remember(ctx, s.Cache, "dashboard:summary:"+date, summaryTTL, func(ctx context.Context) (dto.Summary, error) {
		return s.summary(ctx, date)
	})
}

func (s *DashboardService) summary(ctx context.Context, date string) (dto.Summary, error) {
	t := &tally{ctx: ctx, c: s.Counter}
	out := dto.Summary{
		Students:           t.count(constants.StudentTable, nil),
		Teachers:           t.count(constants.ProfileTable, map[string]any{"role": constants.RoleTeacher}),
		Classes:            t.count(constants.ClassTable, nil),
		Assignments:        t.count(constants.AssignmentTable, nil),
		Classwork:          t.count(constants.ClassworkTable, nil),
		AttendanceToday:    t.attendance(map[string]any{"date": date}),
		Fees:               t.fees(nil),
		OpenAdmissions:     t.count(constants.ProspectiveStudentTable, map[string]any{"status": openAdmissionStatuses}),
		PendingParentNotes: t.count(constants.ParentSubmittedFeedbackTable, map[string]any{"status": parentFeedbackModel.SubmittedPending}),
		Date:               date,
	}
	if t.err != nil {
		return dto.Summary{}, t.err
	}
	return out, nil
}

// StudentSummaries: satu ringkasan per siswa yang terhubung ke akun.
func (s *DashboardService) StudentSummaries(ctx context.Context, userID uuid.UUID) ([]dto.StudentSummary, error) {
	students, err := s.Students.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	t := &tally{ctx: ctx, c: s.Counter}
	out := make([]dto.StudentSummary, 0, len(students))
	for _, st := range students {
		own := map[string]any{"student_id": st.ID}
		row := dto.StudentSummary{
			StudentID:  st.ID,
			Name:       st.Name,
			ClassID:    st.ClassID,
			Attendance: t.attendance(own),
			Fees:       t.fees(own),
		}
		if st.ClassID != nil {
			byClass := map[string]any{"class_id": *st.ClassID}
			row.Assignments = t.count(constants.AssignmentTable, byClass)
			row.Classwork = t.count(constants.ClassworkTable, byClass)
		}
		out = append(out, row)
	}
	if t.err != nil {
		return nil, t.err
	}
	return out, nil
}
