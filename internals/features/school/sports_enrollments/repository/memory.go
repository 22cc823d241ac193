package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/features/school/sports_enrollments/dto"
	"schooldesk_backend/internals/features/school/sports_enrollments/model"
	helper "schooldesk_backend/internals/helpers"
)

type MemorySportsEnrollmentRepository struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]model.SportsEnrollmentModel
	Now  func() time.Time
}

func NewMemorySportsEnrollmentRepository() *MemorySportsEnrollmentRepository {
	return &MemorySportsEnrollmentRepository{rows: map[uuid.UUID]model.SportsEnrollmentModel{}, Now: time.Now}
}

func (r *MemorySportsEnrollmentRepository) List(_ context.Context, p dto.ListParams) ([]model.SportsEnrollmentModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s := strings.ToLower(strings.TrimSpace(p.Search))
	out := []model.SportsEnrollmentModel{}
	for _, m := range r.rows {
		if p.ClassID != nil && m.ClassID != *p.ClassID {
			continue
		}
		if s != "" && !strings.Contains(strings.ToLower(m.StudentName), s) &&
			!strings.Contains(strings.ToLower(m.ParentName), s) && !strings.Contains(m.ContactNumber, s) {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EnrolledAt.After(out[j].EnrolledAt) })
	return out, nil
}

func (r *MemorySportsEnrollmentRepository) GetByID(_ context.Context, id uuid.UUID) (*model.SportsEnrollmentModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.rows[id]
	if !ok {
		return nil, helper.ErrNotFound
	}
	return &m, nil
}

func (r *MemorySportsEnrollmentRepository) Create(_ context.Context, m *model.SportsEnrollmentModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := r.Now()
	m.CreatedAt, m.UpdatedAt = now, now
	r.rows[m.ID] = *m
	return nil
}

func (r *MemorySportsEnrollmentRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return helper.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *MemorySportsEnrollmentRepository) ExistsByName(_ context.Context, name string, classID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.rows {
		if m.ClassID == classID && strings.EqualFold(strings.TrimSpace(m.StudentName), strings.TrimSpace(name)) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemorySportsEnrollmentRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.rows)), nil
}
