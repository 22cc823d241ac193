package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/features/school/classwork/dto"
	"schooldesk_backend/internals/features/school/classwork/model"
	helper "schooldesk_backend/internals/helpers"
)

type MemoryClassworkRepository struct {
	mu    sync.RWMutex
	rows  map[uuid.UUID]model.ClassworkModel
	files map[uuid.UUID]model.ClassworkFileModel
	Now   func() time.Time
}

func NewMemoryClassworkRepository() *MemoryClassworkRepository {
	return &MemoryClassworkRepository{
		rows:  map[uuid.UUID]model.ClassworkModel{},
		files: map[uuid.UUID]model.ClassworkFileModel{},
		Now:   time.Now,
	}
}

func (r *MemoryClassworkRepository) withFiles(m model.ClassworkModel) model.ClassworkModel {
	m.Files = []model.ClassworkFileModel{}
	for _, f := range r.files {
		if f.ClassworkID == m.ID {
			m.Files = append(m.Files, f)
		}
	}
	sort.Slice(m.Files, func(i, j int) bool { return m.Files[i].UploadedAt.Before(m.Files[j].UploadedAt) })
	return m
}

func (r *MemoryClassworkRepository) List(_ context.Context, f dto.ListFilter) ([]model.ClassworkModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.ClassworkModel{}
	if f.Restricted && len(f.ClassIDs) == 0 {
		return out, nil
	}
	want := map[uuid.UUID]bool{}
	for _, id := range f.ClassIDs {
		want[id] = true
	}
	for _, m := range r.rows {
		if len(want) > 0 && !want[m.ClassID] {
			continue
		}
		out = append(out, r.withFiles(m))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryClassworkRepository) GetByID(_ context.Context, id uuid.UUID) (*model.ClassworkModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.rows[id]
	if !ok {
		return nil, helper.ErrNotFound
	}
	m = r.withFiles(m)
	return &m, nil
}

func (r *MemoryClassworkRepository) Create(_ context.Context, m *model.ClassworkModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := r.Now()
	m.CreatedAt, m.UpdatedAt = now, now
	m.Files = nil
	r.rows[m.ID] = *m
	return nil
}

func (r *MemoryClassworkRepository) Save(_ context.Context, m *model.ClassworkModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[m.ID]; !ok {
		return helper.ErrNotFound
	}
	m.UpdatedAt = r.Now()
	cp := *m
	cp.Files = nil
	r.rows[m.ID] = cp
	return nil
}

func (r *MemoryClassworkRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return helper.ErrNotFound
	}
	for fid, f := range r.files {
		if f.ClassworkID == id {
			delete(r.files, fid)
		}
	}
	delete(r.rows, id)
	return nil
}

func (r *MemoryClassworkRepository) AddFile(_ context.Context, f *model.ClassworkFileModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[f.ClassworkID]; !ok {
		return helper.ErrNotFound
	}
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	f.UploadedAt = r.Now()
	r.files[f.ID] = *f
	return nil
}

func (r *MemoryClassworkRepository) GetFile(_ context.Context, id uuid.UUID) (*model.ClassworkFileModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.files[id]
	if !ok {
		return nil, helper.ErrNotFound
	}
	return &f, nil
}

func (r *MemoryClassworkRepository) DeleteFile(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.files[id]; !ok {
		return helper.ErrNotFound
	}
	delete(r.files, id)
	return nil
}
