package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/features/school/slips/model"
	helper "schooldesk_backend/internals/helpers"
)

type MemorySlipRepository struct {
	mu        sync.RWMutex
	fields    map[uuid.UUID]model.SlipFieldModel
	templates map[uuid.UUID]model.SlipTemplateModel
	mapping   map[uuid.UUID][]uuid.UUID
	data      map[uuid.UUID]model.SlipDataModel
	Now       func() time.Time
}

func NewMemorySlipRepository() *MemorySlipRepository {
	return &MemorySlipRepository{
		fields:    map[uuid.UUID]model.SlipFieldModel{},
		templates: map[uuid.UUID]model.SlipTemplateModel{},
		mapping:   map[uuid.UUID][]uuid.UUID{},
		data:      map[uuid.UUID]model.SlipDataModel{},
		Now:       time.Now,
	}
}

func (r *MemorySlipRepository) ListFields(_ context.Context) ([]model.SlipFieldModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.SlipFieldModel, 0, len(r.fields))
	for _, f := range r.fields {
		out = append(out, f)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemorySlipRepository) FindFields(_ context.Context, ids []uuid.UUID) ([]model.SlipFieldModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.SlipFieldModel, 0, len(ids))
	for _, id := range ids {
		if f, ok := r.fields[id]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *MemorySlipRepository) CreateField(_ context.Context, m *model.SlipFieldModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := r.Now()
	m.CreatedAt, m.UpdatedAt = now, now
	r.fields[m.ID] = *m
	return nil
}

func (r *MemorySlipRepository) RenameField(_ context.Context, id uuid.UUID, name string) (*model.SlipFieldModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.fields[id]
	if !ok {
		return nil, helper.ErrNotFound
	}
	f.Name = name
	f.UpdatedAt = r.Now()
	r.fields[id] = f
	return &f, nil
}

func (r *MemorySlipRepository) DeleteField(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.fields[id]; !ok {
		return helper.ErrNotFound
	}
	delete(r.fields, id)
	for tid, ids := range r.mapping {
		kept := ids[:0]
		for _, fid := range ids {
			if fid != id {
				kept = append(kept, fid)
			}
		}
		r.mapping[tid] = kept
	}
	return nil
}

func (r *MemorySlipRepository) hydrate(t model.SlipTemplateModel) model.SlipTemplateModel {
	t.Fields = []model.SlipFieldModel{}
	for _, fid := range r.mapping[t.ID] {
		if f, ok := r.fields[fid]; ok {
			t.Fields = append(t.Fields, f)
		}
	}
	return t
}

func (r *MemorySlipRepository) ListTemplates(_ context.Context) ([]model.SlipTemplateModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.SlipTemplateModel, 0, len(r.templates))
	for _, t := range r.templates {
		out = append(out, r.hydrate(t))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemorySlipRepository) GetTemplate(_ context.Context, id uuid.UUID) (*model.SlipTemplateModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[id]
	if !ok {
		return nil, helper.ErrNotFound
	}
	t = r.hydrate(t)
	return &t, nil
}

func (r *MemorySlipRepository) CreateTemplate(_ context.Context, m *model.SlipTemplateModel, fieldIDs []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := r.Now()
	m.CreatedAt, m.UpdatedAt = now, now
	cp := *m
	cp.Fields = nil
	r.templates[m.ID] = cp
	r.mapping[m.ID] = append([]uuid.UUID{}, fieldIDs...)
	return nil
}

func (r *MemorySlipRepository) UpdateTemplate(_ context.Context, id uuid.UUID, name *string, fieldIDs *[]uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.templates[id]
	if !ok {
		return helper.ErrNotFound
	}
	if name != nil {
		t.Name = *name
	}
	t.UpdatedAt = r.Now()
	r.templates[id] = t
	if fieldIDs != nil {
		r.mapping[id] = append([]uuid.UUID{}, (*fieldIDs)...)
	}
	return nil
}

func (r *MemorySlipRepository) DeleteTemplate(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[id]; !ok {
		return helper.ErrNotFound
	}
	delete(r.templates, id)
	delete(r.mapping, id)
	for did, d := range r.data {
		if d.TemplateID == id {
			delete(r.data, did)
		}
	}
	return nil
}

func (r *MemorySlipRepository) ListData(_ context.Context, templateID *uuid.UUID) ([]model.SlipDataModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.SlipDataModel{}
	for _, d := range r.data {
		if templateID != nil && d.TemplateID != *templateID {
			continue
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemorySlipRepository) GetData(_ context.Context, id uuid.UUID) (*model.SlipDataModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.data[id]
	if !ok {
		return nil, helper.ErrNotFound
	}
	return &d, nil
}

func (r *MemorySlipRepository) CreateData(_ context.Context, m *model.SlipDataModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := r.Now()
	m.CreatedAt, m.UpdatedAt = now, now
	r.data[m.ID] = *m
	return nil
}

func (r *MemorySlipRepository) UpdateDataValues(_ context.Context, m *model.SlipDataModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.data[m.ID]
	if !ok {
		return helper.ErrNotFound
	}
	d.Values = m.Values
	d.UpdatedAt = r.Now()
	r.data[m.ID] = d
	m.UpdatedAt = d.UpdatedAt
	return nil
}

func (r *MemorySlipRepository) DeleteData(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return helper.ErrNotFound
	}
	delete(r.data, id)
	return nil
}
