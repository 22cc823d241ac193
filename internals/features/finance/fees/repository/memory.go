package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/features/finance/fees/dto"
	"schooldesk_backend/internals/features/finance/fees/model"
	studentModel "schooldesk_backend/internals/features/school/students/model"
	helper "schooldesk_backend/internals/helpers"
	"schooldesk_backend/internals/helpers/dbtime"
)

// MemoryFeeRepository: Students dipakai untuk filter kelas & "preload" Student.
type MemoryFeeRepository struct {
	mu       sync.RWMutex
	rows     map[uuid.UUID]model.FeeModel
	Students map[uuid.UUID]studentModel.StudentModel
}

func NewMemoryFeeRepository(students ...studentModel.StudentModel) *MemoryFeeRepository {
	r := &MemoryFeeRepository{
		rows:     map[uuid.UUID]model.FeeModel{},
		Students: map[uuid.UUID]studentModel.StudentModel{},
	}
	for _, s := range students {
		r.Students[s.ID] = s
	}
	return r
}

func (r *MemoryFeeRepository) attach(m model.FeeModel) model.FeeModel {
	if s, ok := r.Students[m.StudentID]; ok {
		s := s
		m.Student = &s
	}
	return m
}

func (r *MemoryFeeRepository) List(_ context.Context, f dto.FeeFilter) ([]model.FeeModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var from, to string
	if f.Year > 0 && f.Month >= 1 && f.Month <= 12 {
		first, last := dbtime.MonthWindow(f.Year, time.Month(f.Month))
		from, to = dbtime.ISODate(first), dbtime.ISODate(last)
	}
	out := []model.FeeModel{}
	for _, m := range r.rows {
		if f.StudentID != nil && m.StudentID != *f.StudentID {
			continue
		}
		if f.ClassID != nil {
			s, ok := r.Students[m.StudentID]
			if !ok || s.ClassID == nil || *s.ClassID != *f.ClassID {
				continue
			}
		}
		if f.Status != "" && m.Status != f.Status {
			continue
		}
		if from != "" && (m.DueDate.String() < from || m.DueDate.String() > to) {
			continue
		}
		out = append(out, r.attach(m))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueDate.After(out[j].DueDate.Time) })
	return out, nil
}

func (r *MemoryFeeRepository) GetByID(_ context.Context, id uuid.UUID) (*model.FeeModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.rows[id]
	if !ok {
		return nil, helper.ErrNotFound
	}
	m = r.attach(m)
	return &m, nil
}

func (r *MemoryFeeRepository) FindByOrderID(_ context.Context, orderID string) (*model.FeeModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.rows {
		if m.PaymentOrderID != nil && *m.PaymentOrderID == orderID {
			m = r.attach(m)
			return &m, nil
		}
	}
	return nil, helper.ErrNotFound
}

func (r *MemoryFeeRepository) Create(_ context.Context, m *model.FeeModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := time.Now()
	m.CreatedAt, m.UpdatedAt = now, now
	cp := *m
	cp.Student = nil
	r.rows[m.ID] = cp
	return nil
}

func (r *MemoryFeeRepository) Save(_ context.Context, m *model.FeeModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[m.ID]; !ok {
		return helper.ErrNotFound
	}
	m.UpdatedAt = time.Now()
	cp := *m
	cp.Student = nil
	r.rows[m.ID] = cp
	return nil
}

func (r *MemoryFeeRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return helper.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *MemoryFeeRepository) MarkOverdue(_ context.Context, today dbtime.Date) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, m := range r.rows {
		if m.Status == model.StatusPending && m.DueDate.String() < today.String() {
			m.Status = model.StatusOverdue
			r.rows[id] = m
			n++
		}
	}
	return n, nil
}
