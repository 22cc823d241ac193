package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/features/school/students/model"
	helper "schooldesk_backend/internals/helpers"
)

// MemoryStudentRepository dipakai test service/controller.
type MemoryStudentRepository struct {
	mu      sync.RWMutex
	rows    map[uuid.UUID]model.StudentModel
	IDCards map[uuid.UUID][]model.ClassStudent
	// FailWith dikembalikan semua method kalau diisi.
	FailWith error
}

func NewMemoryStudentRepository(seed ...model.StudentModel) *MemoryStudentRepository {
	r := &MemoryStudentRepository{
		rows:    map[uuid.UUID]model.StudentModel{},
		IDCards: map[uuid.UUID][]model.ClassStudent{},
	}
	for _, m := range seed {
		m := m
		_ = r.Create(context.Background(), &m)
	}
	return r
}

func (r *MemoryStudentRepository) sorted(match func(model.StudentModel) bool) []model.StudentModel {
	out := []model.StudentModel{}
	for _, m := range r.rows {
		if match(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *MemoryStudentRepository) FindAllWithProfile(_ context.Context) ([]model.StudentModel, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(func(model.StudentModel) bool { return true }), nil
}

func (r *MemoryStudentRepository) FindMany(_ context.Context, classID *uuid.UUID) ([]model.StudentModel, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(func(m model.StudentModel) bool {
		return classID == nil || (m.ClassID != nil && *m.ClassID == *classID)
	}), nil
}

func (r *MemoryStudentRepository) FindByUserID(_ context.Context, userID uuid.UUID) ([]model.StudentModel, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(func(m model.StudentModel) bool {
		return m.UserID != nil && *m.UserID == userID
	}), nil
}

func (r *MemoryStudentRepository) FindOne(_ context.Context, id uuid.UUID) (*model.StudentModel, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.rows[id]
	if !ok {
		return nil, helper.ErrNotFound
	}
	return &m, nil
}

func (r *MemoryStudentRepository) FindByParentEmail(_ context.Context, email string) (*model.StudentModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.rows {
		if m.ParentEmail != nil && strings.EqualFold(*m.ParentEmail, email) {
			return &m, nil
		}
	}
	return nil, helper.ErrNotFound
}

func (r *MemoryStudentRepository) Create(_ context.Context, m *model.StudentModel) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.AdmissionNumber != nil {
		for _, x := range r.rows {
			if x.AdmissionNumber != nil && *x.AdmissionNumber == *m.AdmissionNumber {
				return helper.ErrConflict
			}
		}
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := time.Now()
	m.CreatedAt, m.UpdatedAt = now, now
	r.rows[m.ID] = *m
	return nil
}

func (r *MemoryStudentRepository) Save(_ context.Context, m *model.StudentModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.UpdatedAt = time.Now()
	r.rows[m.ID] = *m
	return nil
}

func (r *MemoryStudentRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return helper.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *MemoryStudentRepository) IDCardStudents(_ context.Context, classID uuid.UUID) ([]model.ClassStudent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.ClassStudent{}, r.IDCards[classID]...), nil
}
