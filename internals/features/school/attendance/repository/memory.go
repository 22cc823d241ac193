package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/features/school/attendance/model"
	helper "schooldesk_backend/internals/helpers"
	"schooldesk_backend/internals/helpers/dbtime"
)

type MemoryAttendanceRepository struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]model.AttendanceModel
}

func NewMemoryAttendanceRepository() *MemoryAttendanceRepository {
	return &MemoryAttendanceRepository{rows: map[uuid.UUID]model.AttendanceModel{}}
}

func (r *MemoryAttendanceRepository) List(_ context.Context, f ListFilter) ([]model.AttendanceModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.AttendanceModel{}
	for _, m := range r.rows {
		if f.StudentID != nil && m.StudentID != *f.StudentID {
			continue
		}
		if f.ClassID != nil && (m.ClassID == nil || *m.ClassID != *f.ClassID) {
			continue
		}
		day := m.Date.String()
		if f.From != nil && day < dbtime.ISODate(*f.From) {
			continue
		}
		if f.To != nil && day > dbtime.ISODate(*f.To) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date.Time) })
	return out, nil
}

func (r *MemoryAttendanceRepository) GetByID(_ context.Context, id uuid.UUID) (*model.AttendanceModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.rows[id]
	if !ok {
		return nil, helper.ErrNotFound
	}
	return &m, nil
}

func (r *MemoryAttendanceRepository) findKey(studentID uuid.UUID, date dbtime.Date) (uuid.UUID, bool) {
	for id, m := range r.rows {
		if m.StudentID == studentID && m.Date.String() == date.String() {
			return id, true
		}
	}
	return uuid.Nil, false
}

func (r *MemoryAttendanceRepository) Create(_ context.Context, m *model.AttendanceModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.findKey(m.StudentID, m.Date); dup {
		return helper.ErrConflict
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := time.Now()
	m.CreatedAt, m.UpdatedAt = now, now
	r.rows[m.ID] = *m
	return nil
}

func (r *MemoryAttendanceRepository) UpdateStatus(_ context.Context, id uuid.UUID, status string) (*model.AttendanceModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.rows[id]
	if !ok {
		return nil, helper.ErrNotFound
	}
	m.Status = status
	m.UpdatedAt = time.Now()
	r.rows[id] = m
	return &m, nil
}

func (r *MemoryAttendanceRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return helper.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *MemoryAttendanceRepository) Upsert(_ context.Context, rows []model.AttendanceModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for i := range rows {
		if id, ok := r.findKey(rows[i].StudentID, rows[i].Date); ok {
			existing := r.rows[id]
			existing.Status = rows[i].Status
			existing.ClassID = rows[i].ClassID
			existing.UpdatedAt = now
			r.rows[id] = existing
			rows[i] = existing
			continue
		}
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
		rows[i].CreatedAt, rows[i].UpdatedAt = now, now
		r.rows[rows[i].ID] = rows[i]
	}
	return nil
}

func (r *MemoryAttendanceRepository) CountByStatus(_ context.Context, studentID uuid.UUID) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := map[string]int64{}
	for _, m := range r.rows {
		if m.StudentID == studentID {
			out[m.Status]++
		}
	}
	return out, nil
}
