package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/features/school/parent_feedback/dto"
	"schooldesk_backend/internals/features/school/parent_feedback/model"
	helper "schooldesk_backend/internals/helpers"
)

type MemoryParentFeedbackRepository struct {
	mu        sync.RWMutex
	feedback  map[uuid.UUID]model.ParentFeedbackModel
	certs     map[uuid.UUID]model.FeedbackCertificateModel // key: feedback id
	submitted map[uuid.UUID]model.ParentSubmittedFeedbackModel
	Now       func() time.Time
}

func NewMemoryParentFeedbackRepository() *MemoryParentFeedbackRepository {
	return &MemoryParentFeedbackRepository{
		feedback:  map[uuid.UUID]model.ParentFeedbackModel{},
		certs:     map[uuid.UUID]model.FeedbackCertificateModel{},
		submitted: map[uuid.UUID]model.ParentSubmittedFeedbackModel{},
		Now:       time.Now,
	}
}

func (r *MemoryParentFeedbackRepository) ListFeedback(_ context.Context, f dto.SearchFilter) ([]model.ParentFeedbackModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.ParentFeedbackModel{}
	name := strings.ToLower(strings.TrimSpace(f.StudentName))
	for _, m := range r.feedback {
		if f.ClassID != nil && m.ClassID != *f.ClassID {
			continue
		}
		if name != "" && strings.ToLower(strings.TrimSpace(m.StudentName)) != name {
			continue
		}
		if f.Month != "" && m.Month != f.Month {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryParentFeedbackRepository) GetFeedback(_ context.Context, id uuid.UUID) (*model.ParentFeedbackModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.feedback[id]
	if !ok {
		return nil, helper.ErrNotFound
	}
	return &m, nil
}

func (r *MemoryParentFeedbackRepository) CreateFeedback(_ context.Context, m *model.ParentFeedbackModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := r.Now()
	m.CreatedAt, m.UpdatedAt = now, now
	r.feedback[m.ID] = *m
	return nil
}

func (r *MemoryParentFeedbackRepository) SaveFeedback(_ context.Context, m *model.ParentFeedbackModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.feedback[m.ID]; !ok {
		return helper.ErrNotFound
	}
	m.UpdatedAt = r.Now()
	r.feedback[m.ID] = *m
	return nil
}

func (r *MemoryParentFeedbackRepository) DeleteFeedback(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.feedback[id]; !ok {
		return helper.ErrNotFound
	}
	delete(r.feedback, id)
	delete(r.certs, id)
	return nil
}

func (r *MemoryParentFeedbackRepository) GetCertificate(_ context.Context, feedbackID uuid.UUID) (*model.FeedbackCertificateModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.certs[feedbackID]
	if !ok {
		return nil, helper.ErrNotFound
	}
	return &m, nil
}

func (r *MemoryParentFeedbackRepository) CreateCertificate(_ context.Context, m *model.FeedbackCertificateModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.certs[m.FeedbackID]; ok {
		return helper.ErrConflict
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := r.Now()
	m.CreatedAt, m.UpdatedAt = now, now
	r.certs[m.FeedbackID] = *m
	return nil
}

func (r *MemoryParentFeedbackRepository) IncrementDownload(_ context.Context, feedbackID uuid.UUID) (*model.FeedbackCertificateModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.certs[feedbackID]
	if !ok {
		return nil, helper.ErrNotFound
	}
	m.DownloadCount++
	m.UpdatedAt = r.Now()
	r.certs[feedbackID] = m
	return &m, nil
}

func (r *MemoryParentFeedbackRepository) FindSubmitted(_ context.Context, classID uuid.UUID, normalizedStudent, month string) (*model.ParentSubmittedFeedbackModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.submitted {
		if m.ClassID == classID && m.NormalizedStudent == normalizedStudent && m.Month == month {
			return &m, nil
		}
	}
	return nil, helper.ErrNotFound
}

func (r *MemoryParentFeedbackRepository) ListSubmitted(_ context.Context, f dto.SubmittedFilter) ([]model.ParentSubmittedFeedbackModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.ParentSubmittedFeedbackModel{}
	for _, m := range r.submitted {
		if f.ClassID != nil && m.ClassID != *f.ClassID {
			continue
		}
		if f.Month != "" && m.Month != f.Month {
			continue
		}
		if f.Status != "" && m.Status != f.Status {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryParentFeedbackRepository) GetSubmitted(_ context.Context, id uuid.UUID) (*model.ParentSubmittedFeedbackModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.submitted[id]
	if !ok {
		return nil, helper.ErrNotFound
	}
	return &m, nil
}

func (r *MemoryParentFeedbackRepository) CreateSubmitted(_ context.Context, m *model.ParentSubmittedFeedbackModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := r.Now()
	m.CreatedAt, m.UpdatedAt = now, now
	r.submitted[m.ID] = *m
	return nil
}

func (r *MemoryParentFeedbackRepository) SaveSubmitted(_ context.Context, m *model.ParentSubmittedFeedbackModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.submitted[m.ID]; !ok {
		return helper.ErrNotFound
	}
	m.UpdatedAt = r.Now()
	r.submitted[m.ID] = *m
	return nil
}
