package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/features/school/assignments/model"
	helper "schooldesk_backend/internals/helpers"
)

type MemoryAssignmentRepository struct {
	mu    sync.RWMutex
	rows  map[uuid.UUID]model.AssignmentModel
	files map[uuid.UUID]model.AssignmentFileModel
	// Now dipakai untuk created_at supaya urutan deterministik di test.
	Now      func() time.Time
	FailWith error
}

func NewMemoryAssignmentRepository() *MemoryAssignmentRepository {
	return &MemoryAssignmentRepository{
		rows:  map[uuid.UUID]model.AssignmentModel{},
		files: map[uuid.UUID]model.AssignmentFileModel{},
		Now:   time.Now,
	}
}

func (r *MemoryAssignmentRepository) withFiles(m model.AssignmentModel) model.AssignmentModel {
	m.Files = []model.AssignmentFileModel{}
	for _, f := range r.files {
		if f.AssignmentID == m.ID {
			m.Files = append(m.Files, f)
		}
	}
	sort.Slice(m.Files, func(i, j int) bool { return m.Files[i].UploadedAt.Before(m.Files[j].UploadedAt) })
	return m
}

func (r *MemoryAssignmentRepository) List(_ context.Context, date string) ([]model.AssignmentModel, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.AssignmentModel{}
	for _, m := range r.rows {
		if date != "" && m.AssignmentDate.String() != date {
			continue
		}
		out = append(out, r.withFiles(m))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryAssignmentRepository) GetByID(_ context.Context, id uuid.UUID) (*model.AssignmentModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.rows[id]
	if !ok {
		return nil, helper.ErrNotFound
	}
	m = r.withFiles(m)
	return &m, nil
}

func (r *MemoryAssignmentRepository) Create(_ context.Context, m *model.AssignmentModel) error {
	if r.FailWith != nil {
		return r.FailWith
	}
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

func (r *MemoryAssignmentRepository) Save(_ context.Context, m *model.AssignmentModel) error {
	if r.FailWith != nil {
		return r.FailWith
	}
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

func (r *MemoryAssignmentRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return helper.ErrNotFound
	}
	for fid, f := range r.files {
		if f.AssignmentID == id {
			delete(r.files, fid)
		}
	}
	delete(r.rows, id)
	return nil
}

func (r *MemoryAssignmentRepository) AddFile(_ context.Context, f *model.AssignmentFileModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[f.AssignmentID]; !ok {
		return helper.ErrNotFound
	}
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	f.UploadedAt = r.Now()
	r.files[f.ID] = *f
	return nil
}

func (r *MemoryAssignmentRepository) GetFile(_ context.Context, id uuid.UUID) (*model.AssignmentFileModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.files[id]
	if !ok {
		return nil, helper.ErrNotFound
	}
	return &f, nil
}

func (r *MemoryAssignmentRepository) DeleteFile(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.files[id]; !ok {
		return helper.ErrNotFound
	}
	delete(r.files, id)
	return nil
}
