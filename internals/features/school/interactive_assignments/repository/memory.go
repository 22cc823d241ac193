package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/features/school/interactive_assignments/model"
	helper "schooldesk_backend/internals/helpers"
)

// MemoryRepository: implementasi in-memory untuk test service/controller.
type MemoryRepository struct {
	mu          sync.RWMutex
	assignments map[uuid.UUID]model.InteractiveAssignmentModel
	questions   map[uuid.UUID][]model.InteractiveQuestionModel
	submissions map[uuid.UUID]model.InteractiveSubmissionModel
	responses   map[uuid.UUID][]model.InteractiveResponseModel
	Now         func() time.Time
	// FailReplace: ReplaceQuestions gagal tanpa mengubah data kalau diisi.
	FailReplace error
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		assignments: map[uuid.UUID]model.InteractiveAssignmentModel{},
		questions:   map[uuid.UUID][]model.InteractiveQuestionModel{},
		submissions: map[uuid.UUID]model.InteractiveSubmissionModel{},
		responses:   map[uuid.UUID][]model.InteractiveResponseModel{},
		Now:         time.Now,
	}
}

func (r *MemoryRepository) List(_ context.Context, f ListFilter) ([]model.InteractiveAssignmentModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := []model.InteractiveAssignmentModel{}
	for _, m := range r.assignments {
		if f.ClassID != nil && (m.ClassID == nil || *m.ClassID != *f.ClassID) {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		if f.Status != "" && m.Status != f.Status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(m.Title), search) &&
			!strings.Contains(strings.ToLower(m.Description), search) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepository) withQuestions(m model.InteractiveAssignmentModel) *model.InteractiveAssignmentModel {
	qs := append([]model.InteractiveQuestionModel{}, r.questions[m.ID]...)
	sort.Slice(qs, func(i, j int) bool { return qs[i].QuestionOrder < qs[j].QuestionOrder })
	m.Questions = qs
	return &m
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*model.InteractiveAssignmentModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.assignments[id]
	if !ok {
		return nil, helper.ErrNotFound
	}
	return r.withQuestions(m), nil
}

func (r *MemoryRepository) FindByShareableLink(_ context.Context, link string) (*model.InteractiveAssignmentModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.assignments {
		if m.ShareableLink != nil && *m.ShareableLink == link {
			return r.withQuestions(m), nil
		}
	}
	return nil, helper.ErrNotFound
}

func (r *MemoryRepository) Create(_ context.Context, m *model.InteractiveAssignmentModel, questions []model.InteractiveQuestionModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := r.Now()
	m.CreatedAt, m.UpdatedAt = now, now
	for i := range questions {
		questions[i].AssignmentID = m.ID
		if questions[i].ID == uuid.Nil {
			questions[i].ID = uuid.New()
		}
	}
	cp := *m
	cp.Questions = nil
	r.assignments[m.ID] = cp
	r.questions[m.ID] = append([]model.InteractiveQuestionModel{}, questions...)
	m.Questions = questions
	return nil
}

func (r *MemoryRepository) Save(_ context.Context, m *model.InteractiveAssignmentModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.assignments[m.ID]; !ok {
		return helper.ErrNotFound
	}
	m.UpdatedAt = r.Now()
	cp := *m
	cp.Questions = nil
	r.assignments[m.ID] = cp
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.assignments[id]; !ok {
		return helper.ErrNotFound
	}
	for sid, s := range r.submissions {
		if s.AssignmentID == id {
			delete(r.responses, sid)
			delete(r.submissions, sid)
		}
	}
	delete(r.questions, id)
	delete(r.assignments, id)
	return nil
}

func (r *MemoryRepository) ReplaceQuestions(_ context.Context, assignmentID uuid.UUID, questions []model.InteractiveQuestionModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailReplace != nil {
		return r.FailReplace
	}
	for i := range questions {
		if questions[i].ID == uuid.Nil {
			questions[i].ID = uuid.New()
		}
	}
	r.questions[assignmentID] = append([]model.InteractiveQuestionModel{}, questions...)
	return nil
}

func (r *MemoryRepository) ListSubmissions(_ context.Context, assignmentID uuid.UUID) ([]model.InteractiveSubmissionModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.InteractiveSubmissionModel{}
	for _, s := range r.submissions {
		if s.AssignmentID == assignmentID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out, nil
}

func (r *MemoryRepository) FindSubmission(_ context.Context, assignmentID, studentID uuid.UUID) (*model.InteractiveSubmissionModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.submissions {
		if s.AssignmentID == assignmentID && s.StudentID == studentID {
			s.Responses = append([]model.InteractiveResponseModel{}, r.responses[s.ID]...)
			return &s, nil
		}
	}
	return nil, helper.ErrNotFound
}

func (r *MemoryRepository) GetSubmission(_ context.Context, id uuid.UUID) (*model.InteractiveSubmissionModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.submissions[id]
	if !ok {
		return nil, helper.ErrNotFound
	}
	s.Responses = append([]model.InteractiveResponseModel{}, r.responses[s.ID]...)
	return &s, nil
}

func (r *MemoryRepository) UpsertSubmission(_ context.Context, s *model.InteractiveSubmissionModel, responses []model.InteractiveResponseModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	for i := range responses {
		responses[i].SubmissionID = s.ID
		if responses[i].ID == uuid.Nil {
			responses[i].ID = uuid.New()
		}
	}
	cp := *s
	cp.Responses = nil
	r.submissions[s.ID] = cp
	r.responses[s.ID] = append([]model.InteractiveResponseModel{}, responses...)
	s.Responses = responses
	return nil
}

func (r *MemoryRepository) SaveSubmission(_ context.Context, s *model.InteractiveSubmissionModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.submissions[s.ID]; !ok {
		return helper.ErrNotFound
	}
	cp := *s
	cp.Responses = nil
	r.submissions[s.ID] = cp
	return nil
}
