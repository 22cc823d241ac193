package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooldesk_backend/internals/features/school/attendance/dto"
	"schooldesk_backend/internals/features/school/attendance/model"
	"schooldesk_backend/internals/features/school/attendance/repository"
	helper "schooldesk_backend/internals/helpers"
	"schooldesk_backend/internals/helpers/dbtime"
)

func day(t *testing.T, s string) dbtime.Date {
	d, err := dbtime.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestGetByStudentWholeMonthInclusive(t *testing.T) {
	svc := NewAttendanceService(repository.NewMemoryAttendanceRepository())
	ctx := context.Background()
	student := uuid.New()

	for _, d := range []string{"2024-01-31", "2024-02-01", "2024-02-15", "2024-02-29", "2024-03-01"} {
		_, err := svc.Create(ctx, dto.CreateAttendanceRequest{Date: day(t, d), Status: model.StatusPresent, StudentID: student})
		require.NoError(t, err)
	}

	month := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	rows, err := svc.GetByStudent(ctx, student, &month)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2024-02-29", rows[0].Date.String())
	assert.Equal(t, "2024-02-01", rows[2].Date.String())

	all, err := svc.GetByStudent(ctx, student, nil)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestDuplicateDayConflicts(t *testing.T) {
	svc := NewAttendanceService(repository.NewMemoryAttendanceRepository())
	ctx := context.Background()
	req := dto.CreateAttendanceRequest{Date: day(t, "2024-05-01"), Status: model.StatusPresent, StudentID: uuid.New()}
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, helper.ErrConflict)
}

func TestStudentStats(t *testing.T) {
	svc := NewAttendanceService(repository.NewMemoryAttendanceRepository())
	ctx := context.Background()
	student := uuid.New()

	empty, err := svc.StudentStats(ctx, student)
	require.NoError(t, err)
	assert.Equal(t, 0.0, empty.AttendancePercentage)

	statuses := []string{model.StatusPresent, model.StatusPresent, model.StatusHalfDay, model.StatusAbsent}
	for i, st := range statuses {
		d := dbtime.NewDate(time.Date(2024, 4, i+1, 0, 0, 0, 0, time.UTC))
		_, err := svc.Create(ctx, dto.CreateAttendanceRequest{Date: d, Status: st, StudentID: student})
		require.NoError(t, err)
	}

	stats, err := svc.StudentStats(ctx, student)
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.Total)
	assert.EqualValues(t, 2, stats.Present)
	assert.EqualValues(t, 1, stats.HalfDay)
	assert.EqualValues(t, 1, stats.Absent)
	assert.InDelta(t, 62.5, stats.AttendancePercentage, 1e-9)
}

func TestMarkClassUpserts(t *testing.T) {
	svc := NewAttendanceService(repository.NewMemoryAttendanceRepository())
	ctx := context.Background()
	class, a, b := uuid.New(), uuid.New(), uuid.New()
	d := day(t, "2024-06-03")

	_, err := svc.MarkClass(ctx, dto.MarkClassRequest{ClassID: class, Date: d, Entries: []dto.MarkEntry{
		{StudentID: a, Status: model.StatusPresent},
		{StudentID: b, Status: model.StatusAbsent},
	}})
	require.NoError(t, err)
	_, err = svc.MarkClass(ctx, dto.MarkClassRequest{ClassID: class, Date: d, Entries: []dto.MarkEntry{
		{StudentID: b, Status: model.StatusLate},
	}})
	require.NoError(t, err)

	rows, err := svc.GetAll(ctx, &class, nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	byStudent := map[uuid.UUID]string{}
	for _, r := range rows {
		byStudent[r.StudentID] = r.Status
	}
	assert.Equal(t, model.StatusLate, byStudent[b])
}

func TestUpdateStatusAndDelete(t *testing.T) {
	svc := NewAttendanceService(repository.NewMemoryAttendanceRepository())
	ctx := context.Background()
	m, err := svc.Create(ctx, dto.CreateAttendanceRequest{Status: model.StatusAbsent, StudentID: uuid.New()})
	require.NoError(t, err)
	assert.False(t, m.Date.IsZero())

	up, err := svc.UpdateStatus(ctx, m.ID, model.StatusLate)
	require.NoError(t, err)
	assert.Equal(t, model.StatusLate, up.Status)

	require.NoError(t, svc.Delete(ctx, m.ID))
	_, err = svc.UpdateStatus(ctx, m.ID, model.StatusPresent)
	assert.ErrorIs(t, err, helper.ErrNotFound)
}
