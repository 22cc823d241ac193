package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/features/school/attendance/dto"
	"schooldesk_backend/internals/features/school/attendance/model"
	"schooldesk_backend/internals/features/school/attendance/repository"
	"schooldesk_backend/internals/helpers/dbtime"
)

type AttendanceService struct {
	Repo    repository.AttendanceRepository
	nowFunc func() time.Time
}

func NewAttendanceService(repo repository.AttendanceRepository) *AttendanceService {
	return &AttendanceService{Repo: repo, nowFunc: time.Now}
}

// GetAll: filter kelas & rentang tanggal (inklusif), urut tanggal terbaru.
func (s *AttendanceService) GetAll(ctx context.Context, classID *uuid.UUID, from, to *time.Time) ([]model.AttendanceModel, error) {
	return s.Repo.List(ctx, repository.ListFilter{ClassID: classID, From: from, To: to})
}

// GetByStudent: month != nil -> seluruh bulan kalender (tanggal 1 s/d akhir bulan).
func (s *AttendanceService) GetByStudent(ctx context.Context, studentID uuid.UUID, month *time.Time) ([]model.AttendanceModel, error) {
	f := repository.ListFilter{StudentID: &studentID}
	if month != nil {
		first, last := dbtime.MonthWindow(month.Year(), month.Month())
		f.From, f.To = &first, &last
	}
	return s.Repo.List(ctx, f)
}

func (s *AttendanceService) Create(ctx context.Context, req dto.CreateAttendanceRequest) (*model.AttendanceModel, error) {
	date := req.Date
	if date.IsZero() {
		date = dbtime.NewDate(s.nowFunc())
	}
	m := &model.AttendanceModel{
		Date:      date,
		Status:    req.Status,
		StudentID: req.StudentID,
		ClassID:   req.ClassID,
	}
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *AttendanceService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.AttendanceModel, error) {
	return s.Repo.UpdateStatus(ctx, id, status)
}

func (s *AttendanceService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.Repo.Delete(ctx, id)
}

// MarkClass: absen massal, mengganti status yang sudah ada di tanggal itu.
func (s *AttendanceService) MarkClass(ctx context.Context, req dto.MarkClassRequest) ([]model.AttendanceModel, error) {
	date := req.Date
	if date.IsZero() {
		date = dbtime.NewDate(s.nowFunc())
	}
	classID := req.ClassID
	rows := make([]model.AttendanceModel, 0, len(req.Entries))
	for _, e := range req.Entries {
		rows = append(rows, model.AttendanceModel{
			Date:      date,
			Status:    e.Status,
			StudentID: e.StudentID,
			ClassID:   &classID,
		})
	}
	if err := s.Repo.Upsert(ctx, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *AttendanceService) StudentStats(ctx context.Context, studentID uuid.UUID) (model.AttendanceStats, error) {
	counts, err := s.Repo.CountByStatus(ctx, studentID)
	if err != nil {
		return model.AttendanceStats{}, err
	}
	return model.ComputeStats(counts), nil
}
