package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"schooldesk_backend/internals/features/school/slips/dto"
	"schooldesk_backend/internals/features/school/slips/model"
	"schooldesk_backend/internals/features/school/slips/repository"
	helper "schooldesk_backend/internals/helpers"
	helperXLSX "schooldesk_backend/internals/helpers/xlsx"
)

type SlipService struct {
	Repo repository.SlipRepository
}

func NewSlipService(repo repository.SlipRepository) *SlipService {
	return &SlipService{Repo: repo}
}

func cleanName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: nama wajib diisi", helper.ErrInvalid)
	}
	return s, nil
}

/* ===================== fields ===================== */

func (s *SlipService) GetFields(ctx context.Context) ([]model.SlipFieldModel, error) {
	return s.Repo.ListFields(ctx)
}

func (s *SlipService) AddField(ctx context.Context, name string) (*model.SlipFieldModel, error) {
	n, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	m := &model.SlipFieldModel{Name: n}
	if err := s.Repo.CreateField(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *SlipService) UpdateField(ctx context.Context, id uuid.UUID, name string) (*model.SlipFieldModel, error) {
	n, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	return s.Repo.RenameField(ctx, id, n)
}

func (s *SlipService) RemoveField(ctx context.Context, id uuid.UUID) error {
	return s.Repo.DeleteField(ctx, id)
}

/* ===================== templates ===================== */

// checkFieldIDs: buang duplikat (urutan pertama dipertahankan), semua id harus ada.
func (s *SlipService) checkFieldIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	uniq := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}
	found, err := s.Repo.FindFields(ctx, uniq)
	if err != nil {
		return nil, err
	}
	if len(found) != len(uniq) {
		return nil, fmt.Errorf("%w: ada field yang tidak dikenal", helper.ErrInvalid)
	}
	return uniq, nil
}

func (s *SlipService) GetTemplates(ctx context.Context) ([]model.SlipTemplateModel, error) {
	return s.Repo.ListTemplates(ctx)
}

func (s *SlipService) GetTemplate(ctx context.Context, id uuid.UUID) (*model.SlipTemplateModel, error) {
	return s.Repo.GetTemplate(ctx, id)
}

func (s *SlipService) CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest) (*model.SlipTemplateModel, error) {
	name, err := cleanName(req.Name)
	if err != nil {
		return nil, err
	}
	ids, err := s.checkFieldIDs(ctx, req.FieldIDs)
	if err != nil {
		return nil, err
	}
	m := &model.SlipTemplateModel{Name: name}
	if err := s.Repo.CreateTemplate(ctx, m, ids); err != nil {
		return nil, err
	}
	return s.Repo.GetTemplate(ctx, m.ID)
}

func (s *SlipService) UpdateTemplate(ctx context.Context, id uuid.UUID, req dto.UpdateTemplateRequest) (*model.SlipTemplateModel, error) {
	var name *string
	if req.Name != nil {
		n, err := cleanName(*req.Name)
		if err != nil {
			return nil, err
		}
		name = &n
	}
	var ids *[]uuid.UUID
	if req.FieldIDs != nil {
		checked, err := s.checkFieldIDs(ctx, *req.FieldIDs)
		if err != nil {
			return nil, err
		}
		ids = &checked
	}
	if err := s.Repo.UpdateTemplate(ctx, id, name, ids); err != nil {
		return nil, err
	}
	return s.Repo.GetTemplate(ctx, id)
}

func (s *SlipService) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	return s.Repo.DeleteTemplate(ctx, id)
}

/* ===================== slip data ===================== */

// ValidateValues: key wajib id field milik template; nilai hanya skalar.
func ValidateValues(tpl *model.SlipTemplateModel, values map[string]any) (datatypes.JSONMap, error) {
	allowed := tpl.FieldIDs()
	out := make(datatypes.JSONMap, len(values))
	for k, v := range values {
		id, err := uuid.Parse(strings.TrimSpace(k))
		if err != nil {
			return nil, fmt.Errorf("%w: key %q bukan id field", helper.ErrInvalid, k)
		}
		if _, ok := allowed[id]; !ok {
			return nil, fmt.Errorf("%w: field %s tidak ada di template", helper.ErrInvalid, id)
		}
		switch val := v.(type) {
		case nil, bool, float64, int, int64:
			out[id.String()] = val
		case string:
			out[id.String()] = strings.TrimSpace(val)
		default:
			return nil, fmt.Errorf("%w: nilai field %s harus skalar", helper.ErrInvalid, id)
		}
	}
	return out, nil
}

func (s *SlipService) GetSlipData(ctx context.Context, templateID *uuid.UUID) ([]model.SlipDataModel, error) {
	return s.Repo.ListData(ctx, templateID)
}

func (s *SlipService) CreateSlipData(ctx context.Context, req dto.SlipDataRequest) (*model.SlipDataModel, error) {
	tpl, err := s.Repo.GetTemplate(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}
	vals, err := ValidateValues(tpl, req.Values)
	if err != nil {
		return nil, err
	}
	m := &model.SlipDataModel{TemplateID: tpl.ID, Values: vals}
	if err := s.Repo.CreateData(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *SlipService) UpdateSlipData(ctx context.Context, id uuid.UUID, values map[string]any) (*model.SlipDataModel, error) {
	m, err := s.Repo.GetData(ctx, id)
	if err != nil {
		return nil, err
	}
	tpl, err := s.Repo.GetTemplate(ctx, m.TemplateID)
	if err != nil {
		return nil, err
	}
	vals, err := ValidateValues(tpl, values)
	if err != nil {
		return nil, err
	}
	m.Values = vals
	if err := s.Repo.UpdateDataValues(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *SlipService) DeleteSlipData(ctx context.Context, id uuid.UUID) error {
	return s.Repo.DeleteData(ctx, id)
}

// Export: satu baris per slip, kolom = field template (urut position) + tanggal input.
// Nilai milik field yang sudah dilepas dari template tidak ikut.
func (s *SlipService) Export(ctx context.Context, templateID uuid.UUID) ([]byte, string, error) {
	tpl, err := s.Repo.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, "", err
	}
	data, err := s.Repo.ListData(ctx, &templateID)
	if err != nil {
		return nil, "", err
	}
	sort.SliceStable(data, func(i, j int) bool { return data[i].CreatedAt.Before(data[j].CreatedAt) })

	headers := make([]string, 0, len(tpl.Fields)+2)
	headers = append(headers, "No")
	for _, f := range tpl.Fields {
		headers = append(headers, f.Name)
	}
	headers = append(headers, "Created At")

	rows := make([][]any, 0, len(data))
	for i, d := range data {
		row := make([]any, 0, len(headers))
		row = append(row, i+1)
		for _, f := range tpl.Fields {
			row = append(row, d.Values[f.ID.String()])
		}
		row = append(row, d.CreatedAt.Format("2006-01-02 15:04"))
		rows = append(rows, row)
	}

	out, err := helperXLSX.Build("Slips", headers, rows)
	if err != nil {
		return nil, "", err
	}
	return out, helper.Slugify(tpl.Name, 60) + ".xlsx", nil
}
