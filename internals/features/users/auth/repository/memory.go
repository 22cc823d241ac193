package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/features/users/auth/model"
	helper "schooldesk_backend/internals/helpers"
)

// MemoryProfileRepository: implementasi in-memory untuk test.
type MemoryProfileRepository struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]model.ProfileModel
}

func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{rows: map[uuid.UUID]model.ProfileModel{}}
}

func (r *MemoryProfileRepository) Create(_ context.Context, p *model.ProfileModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.rows {
		if strings.EqualFold(x.Email, p.Email) {
			return helper.ErrConflict
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	r.rows[p.ID] = *p
	return nil
}

func (r *MemoryProfileRepository) FindByID(_ context.Context, id uuid.UUID) (*model.ProfileModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.rows[id]
	if !ok {
		return nil, helper.ErrNotFound
	}
	return &p, nil
}

func (r *MemoryProfileRepository) find(match func(model.ProfileModel) bool) (*model.ProfileModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.rows {
		if match(p) {
			p := p
			return &p, nil
		}
	}
	return nil, helper.ErrNotFound
}

func (r *MemoryProfileRepository) FindByEmail(_ context.Context, email string) (*model.ProfileModel, error) {
	email = strings.TrimSpace(email)
	return r.find(func(p model.ProfileModel) bool { return strings.EqualFold(p.Email, email) })
}

func (r *MemoryProfileRepository) FindByGoogleID(_ context.Context, googleID string) (*model.ProfileModel, error) {
	return r.find(func(p model.ProfileModel) bool { return p.GoogleID != nil && *p.GoogleID == googleID })
}

func (r *MemoryProfileRepository) List(_ context.Context, role string) ([]model.ProfileModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.ProfileModel{}
	for _, p := range r.rows {
		if role == "" || p.Role == role {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (r *MemoryProfileRepository) UpdateRole(_ context.Context, id uuid.UUID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok {
		return helper.ErrNotFound
	}
	p.Role = role
	r.rows[id] = p
	return nil
}

func (r *MemoryProfileRepository) LinkGoogle(_ context.Context, id uuid.UUID, googleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok {
		return helper.ErrNotFound
	}
	p.GoogleID = &googleID
	r.rows[id] = p
	return nil
}
