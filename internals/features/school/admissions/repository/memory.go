package repository

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"schooldesk_backend/internals/features/school/admissions/dto"
	"schooldesk_backend/internals/features/school/admissions/model"
	helper "schooldesk_backend/internals/helpers"
)

type MemoryAdmissionRepository struct {
	mu        sync.RWMutex
	enquiries map[uuid.UUID]model.ProspectiveStudentModel
	processes map[uuid.UUID]model.AdmissionProcessModel // key: enquiry id
	notes     []model.AdmissionNoteModel
	comms     []model.AdmissionCommunicationModel
	Now       func() time.Time
	// FailProgress dipakai test untuk memastikan UpdateProgress atomik.
	FailProgress error
}

func NewMemoryAdmissionRepository() *MemoryAdmissionRepository {
	return &MemoryAdmissionRepository{
		enquiries: map[uuid.UUID]model.ProspectiveStudentModel{},
		processes: map[uuid.UUID]model.AdmissionProcessModel{},
		Now:       time.Now,
	}
}

func cloneProcess(p model.AdmissionProcessModel) model.AdmissionProcessModel {
	p.Documents = datatypes.NewJSONType(p.Documents.Data().Clone())
	return p
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (r *MemoryAdmissionRepository) withProcess(m model.ProspectiveStudentModel) model.ProspectiveStudentModel {
	if p, ok := r.processes[m.ID]; ok {
		cp := cloneProcess(p)
		m.Process = &cp
	}
	return m
}

func (r *MemoryAdmissionRepository) ListEnquiries(_ context.Context, p dto.ListParams) ([]model.ProspectiveStudentModel, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := []model.ProspectiveStudentModel{}
	for _, m := range r.enquiries {
		if len(p.Statuses) > 0 && !slices.Contains(p.Statuses, m.Status) {
			continue
		}
		if p.From != nil && m.AppliedDate.Before(*p.From) {
			continue
		}
		if p.To != nil && m.AppliedDate.After(*p.To) {
			continue
		}
		if s := p.Search; s != "" && !containsFold(m.StudentName, s) && !containsFold(m.ParentName, s) && !containsFold(m.Email, s) {
			continue
		}
		if p.GradeApplying != "" && m.GradeApplying != p.GradeApplying {
			continue
		}
		all = append(all, r.withProcess(m))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].AppliedDate.After(all[j].AppliedDate) })

	total := int64(len(all))
	if p.Limit <= 0 {
		return all, total, nil
	}
	if p.Offset >= len(all) {
		return []model.ProspectiveStudentModel{}, total, nil
	}
	end := min(p.Offset+p.Limit, len(all))
	return all[p.Offset:end], total, nil
}

func (r *MemoryAdmissionRepository) GetEnquiry(_ context.Context, id uuid.UUID) (*model.ProspectiveStudentModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.enquiries[id]
	if !ok {
		return nil, helper.ErrNotFound
	}
	m = r.withProcess(m)
	return &m, nil
}

func (r *MemoryAdmissionRepository) CreateEnquiry(_ context.Context, m *model.ProspectiveStudentModel, p *model.AdmissionProcessModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := r.Now()
	m.CreatedAt, m.UpdatedAt = now, now
	p.CreatedAt, p.UpdatedAt = now, now
	p.ProspectiveStudentID = m.ID

	cp := *m
	cp.Process = nil
	r.enquiries[m.ID] = cp
	r.processes[m.ID] = cloneProcess(*p)
	return nil
}

func (r *MemoryAdmissionRepository) SaveEnquiry(_ context.Context, m *model.ProspectiveStudentModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveEnquiry(m)
}

func (r *MemoryAdmissionRepository) saveEnquiry(m *model.ProspectiveStudentModel) error {
	if _, ok := r.enquiries[m.ID]; !ok {
		return helper.ErrNotFound
	}
	m.UpdatedAt = r.Now()
	cp := *m
	cp.Process = nil
	r.enquiries[m.ID] = cp
	return nil
}

func (r *MemoryAdmissionRepository) GetProcess(_ context.Context, enquiryID uuid.UUID) (*model.AdmissionProcessModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.processes[enquiryID]
	if !ok {
		return nil, helper.ErrNotFound
	}
	p = cloneProcess(p)
	return &p, nil
}

func (r *MemoryAdmissionRepository) SaveProcess(_ context.Context, p *model.AdmissionProcessModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveProcess(p)
}

func (r *MemoryAdmissionRepository) saveProcess(p *model.AdmissionProcessModel) error {
	if _, ok := r.processes[p.ProspectiveStudentID]; !ok {
		return helper.ErrNotFound
	}
	p.UpdatedAt = r.Now()
	r.processes[p.ProspectiveStudentID] = cloneProcess(*p)
	return nil
}

func (r *MemoryAdmissionRepository) UpdateProgress(_ context.Context, m *model.ProspectiveStudentModel, p *model.AdmissionProcessModel, note *model.AdmissionNoteModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailProgress != nil {
		return r.FailProgress
	}
	if _, ok := r.enquiries[m.ID]; !ok {
		return helper.ErrNotFound
	}
	if _, ok := r.processes[p.ProspectiveStudentID]; !ok {
		return helper.ErrNotFound
	}
	_ = r.saveEnquiry(m)
	_ = r.saveProcess(p)
	if note != nil {
		r.addNote(note)
	}
	return nil
}

func (r *MemoryAdmissionRepository) ListNotes(_ context.Context, enquiryID uuid.UUID) ([]model.AdmissionNoteModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.AdmissionNoteModel{}
	for _, n := range r.notes {
		if n.ProspectiveStudentID == enquiryID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryAdmissionRepository) AddNote(_ context.Context, n *model.AdmissionNoteModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.enquiries[n.ProspectiveStudentID]; !ok {
		return helper.ErrNotFound
	}
	r.addNote(n)
	return nil
}

func (r *MemoryAdmissionRepository) addNote(n *model.AdmissionNoteModel) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = r.Now()
	r.notes = append(r.notes, *n)
}

func (r *MemoryAdmissionRepository) ListCommunications(_ context.Context, enquiryID uuid.UUID) ([]model.AdmissionCommunicationModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.AdmissionCommunicationModel{}
	for _, c := range r.comms {
		if c.ProspectiveStudentID == enquiryID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CommunicationDate.After(out[j].CommunicationDate) })
	return out, nil
}

func (r *MemoryAdmissionRepository) AddCommunication(_ context.Context, c *model.AdmissionCommunicationModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.enquiries[c.ProspectiveStudentID]; !ok {
		return helper.ErrNotFound
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := r.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	r.comms = append(r.comms, *c)
	return nil
}

func (r *MemoryAdmissionRepository) CountByStatus(_ context.Context) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := map[string]int64{}
	for _, m := range r.enquiries {
		out[m.Status]++
	}
	return out, nil
}
