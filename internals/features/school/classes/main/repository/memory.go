package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/features/school/classes/main/model"
	helper "schooldesk_backend/internals/helpers"
)

type MemoryClassRepository struct {
	mu    sync.RWMutex
	rows  map[uuid.UUID]model.ClassModel
	Calls int // jumlah FindMany (cek cache di test)
}

func NewMemoryClassRepository(seed ...model.ClassModel) *MemoryClassRepository {
	r := &MemoryClassRepository{rows: map[uuid.UUID]model.ClassModel{}}
	for _, m := range seed {
		m := m
		_ = r.Create(context.Background(), &m)
	}
	return r
}

func (r *MemoryClassRepository) FindMany(_ context.Context, schoolID *uuid.UUID) ([]model.ClassModel, error) {
	r.mu.Lock()
	r.Calls++
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.ClassModel{}
	for _, m := range r.rows {
		if schoolID != nil && (m.SchoolID == nil || *m.SchoolID != *schoolID) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Section < out[j].Section
	})
	return out, nil
}

func (r *MemoryClassRepository) GetByID(_ context.Context, id uuid.UUID) (*model.ClassModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.rows[id]
	if !ok {
		return nil, helper.ErrNotFound
	}
	return &m, nil
}

func (r *MemoryClassRepository) Create(_ context.Context, m *model.ClassModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := time.Now()
	m.CreatedAt, m.UpdatedAt = now, now
	r.rows[m.ID] = *m
	return nil
}

func (r *MemoryClassRepository) Save(_ context.Context, m *model.ClassModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.UpdatedAt = time.Now()
	r.rows[m.ID] = *m
	return nil
}

func (r *MemoryClassRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return helper.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}
