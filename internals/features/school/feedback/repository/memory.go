package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/features/school/feedback/model"
	helper "schooldesk_backend/internals/helpers"
)

type MemoryFeedbackRepository struct {
	mu      sync.RWMutex
	rows    map[uuid.UUID]model.FeedbackModel
	replies map[uuid.UUID][]model.FeedbackReplyModel
	Now     func() time.Time
	// FailReply membuat AddReply gagal setelah status diubah (cek rollback).
	FailReply error
}

func NewMemoryFeedbackRepository() *MemoryFeedbackRepository {
	return &MemoryFeedbackRepository{
		rows:    map[uuid.UUID]model.FeedbackModel{},
		replies: map[uuid.UUID][]model.FeedbackReplyModel{},
		Now:     time.Now,
	}
}

func (r *MemoryFeedbackRepository) hydrate(m model.FeedbackModel) model.FeedbackModel {
	reps := append([]model.FeedbackReplyModel{}, r.replies[m.ID]...)
	sort.SliceStable(reps, func(i, j int) bool { return reps[i].CreatedAt.Before(reps[j].CreatedAt) })
	m.Replies = reps
	return m
}

func (r *MemoryFeedbackRepository) List(_ context.Context, userID *uuid.UUID) ([]model.FeedbackModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.FeedbackModel{}
	for _, m := range r.rows {
		if userID != nil && m.UserID != *userID {
			continue
		}
		out = append(out, r.hydrate(m))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryFeedbackRepository) GetByID(_ context.Context, id uuid.UUID) (*model.FeedbackModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.rows[id]
	if !ok {
		return nil, helper.ErrNotFound
	}
	m = r.hydrate(m)
	return &m, nil
}

func (r *MemoryFeedbackRepository) Create(_ context.Context, m *model.FeedbackModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := r.Now()
	m.CreatedAt, m.UpdatedAt = now, now
	cp := *m
	cp.Replies = nil
	r.rows[m.ID] = cp
	return nil
}

func (r *MemoryFeedbackRepository) UpdateStatus(_ context.Context, id uuid.UUID, status string) (*model.FeedbackModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.rows[id]
	if !ok {
		return nil, helper.ErrNotFound
	}
	m.Status = status
	m.UpdatedAt = r.Now()
	r.rows[id] = m
	return &m, nil
}

func (r *MemoryFeedbackRepository) AddReply(_ context.Context, reply *model.FeedbackReplyModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.rows[reply.FeedbackID]
	if !ok {
		return helper.ErrNotFound
	}
	if r.FailReply != nil {
		// rollback: status tidak berubah
		return r.FailReply
	}
	m.Status = model.StatusResolved
	m.UpdatedAt = r.Now()
	r.rows[m.ID] = m

	if reply.ID == uuid.Nil {
		reply.ID = uuid.New()
	}
	reply.CreatedAt = r.Now()
	r.replies[m.ID] = append(r.replies[m.ID], *reply)
	return nil
}
