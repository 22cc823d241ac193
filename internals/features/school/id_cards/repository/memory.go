package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/features/school/id_cards/dto"
	"schooldesk_backend/internals/features/school/id_cards/model"
	helper "schooldesk_backend/internals/helpers"
)

type MemoryIDCardRepository struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]model.IDCardModel
	Now  func() time.Time
}

func NewMemoryIDCardRepository() *MemoryIDCardRepository {
	return &MemoryIDCardRepository{rows: map[uuid.UUID]model.IDCardModel{}, Now: time.Now}
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (r *MemoryIDCardRepository) List(_ context.Context, p dto.ListParams) ([]model.IDCardModel, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := []model.IDCardModel{}
	for _, m := range r.rows {
		if p.ClassID != nil && (m.ClassID == nil || *m.ClassID != *p.ClassID) {
			continue
		}
		if s := p.Search; s != "" &&
			!containsFold(m.StudentName, s) && !containsFold(m.FatherName, s) &&
			!containsFold(m.MotherName, s) && !containsFold(m.Address, s) {
			continue
		}
		all = append(all, m)
	}
	col := sortColumns.Resolve(p.SortBy, "createdAt")
	less := func(a, b model.IDCardModel) bool {
		switch col {
		case "student_name":
			return a.StudentName < b.StudentName
		case "download_count":
			return a.DownloadCount < b.DownloadCount
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if p.SortDesc {
			return less(all[j], all[i])
		}
		return less(all[i], all[j])
	})

	total := int64(len(all))
	if p.Offset >= len(all) {
		return []model.IDCardModel{}, total, nil
	}
	end := len(all)
	if p.Limit > 0 && p.Offset+p.Limit < end {
		end = p.Offset + p.Limit
	}
	return all[p.Offset:end], total, nil
}

func (r *MemoryIDCardRepository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.IDCardModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	want := map[uuid.UUID]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := []model.IDCardModel{}
	for _, m := range r.rows {
		if len(ids) == 0 || want[m.ID] {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryIDCardRepository) GetByID(_ context.Context, id uuid.UUID) (*model.IDCardModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.rows[id]
	if !ok {
		return nil, helper.ErrNotFound
	}
	return &m, nil
}

func (r *MemoryIDCardRepository) FindByStudent(_ context.Context, classID uuid.UUID, studentName string) (*model.IDCardModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var found *model.IDCardModel
	for _, m := range r.rows {
		if m.ClassID == nil || *m.ClassID != classID || !helper.EqualNames(m.StudentName, studentName) {
			continue
		}
		if found == nil || m.UpdatedAt.After(found.UpdatedAt) {
			cp := m
			found = &cp
		}
	}
	if found == nil {
		return nil, helper.ErrNotFound
	}
	return found, nil
}

func (r *MemoryIDCardRepository) Create(_ context.Context, m *model.IDCardModel) error {
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

func (r *MemoryIDCardRepository) Save(_ context.Context, m *model.IDCardModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[m.ID]; !ok {
		return helper.ErrNotFound
	}
	m.UpdatedAt = r.Now()
	r.rows[m.ID] = *m
	return nil
}

func (r *MemoryIDCardRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return helper.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *MemoryIDCardRepository) DuplicateExists(_ context.Context, key string, excludeID *uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.rows {
		if excludeID != nil && m.ID == *excludeID {
			continue
		}
		if m.DedupKey == key {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryIDCardRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.rows)), nil
}

func (r *MemoryIDCardRepository) SetPhoto(_ context.Context, id uuid.UUID, photoType, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := model.PhotoColumns[photoType]; !ok {
		return helper.ErrInvalid
	}
	m, ok := r.rows[id]
	if !ok {
		return helper.ErrNotFound
	}
	m.SetPhotoURL(photoType, &url)
	r.rows[id] = m
	return nil
}

func (r *MemoryIDCardRepository) IncrementDownloads(_ context.Context, ids []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		if m, ok := r.rows[id]; ok {
			m.DownloadCount++
			r.rows[id] = m
		}
	}
	return nil
}
