package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"schooldesk_backend/internals/features/school/classes/main/dto"
	"schooldesk_backend/internals/features/school/classes/main/model"
	"schooldesk_backend/internals/features/school/classes/main/repository"
	"schooldesk_backend/internals/helpers/cache"
)

const (
	cachePrefix = "classes:"
	cacheTTL    = 5 * time.Minute
)

type ClassService struct {
	Repo  repository.ClassRepository
	Cache cache.Store
}

func NewClassService(repo repository.ClassRepository, store cache.Store) *ClassService {
	if store == nil {
		store = cache.NewMemoryStore()
	}
	return &ClassService{Repo: repo, Cache: store}
}

func listKey(schoolID *uuid.UUID) string {
	if schoolID == nil {
		return cachePrefix + "all"
	}
	return cachePrefix + "school:" + schoolID.String()
}

// FindMany: daftar kelas urut nama, di-cache singkat.
func (s *ClassService) FindMany(ctx context.Context, schoolID *uuid.UUID) ([]model.ClassModel, error) {
	return cache.Remember(ctx, s.Cache, listKey(schoolID), cacheTTL, func(ctx context.Context) ([]model.ClassModel, error) {
		return s.Repo.FindMany(ctx, schoolID)
	})
}

func (s *ClassService) GetAll(ctx context.Context) ([]model.ClassModel, error) {
	return s.FindMany(ctx, nil)
}

// GetByID: helper.ErrNotFound kalau tidak ada.
func (s *ClassService) GetByID(ctx context.Context, id uuid.UUID) (*model.ClassModel, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *ClassService) Create(ctx context.Context, req dto.CreateClassRequest) (*model.ClassModel, error) {
	m := req.ToModel()
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return m, nil
}

func (s *ClassService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateClassRequest) (*model.ClassModel, error) {
	m, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.ApplyToModel(m)
	if err := s.Repo.Save(ctx, m); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return m, nil
}

func (s *ClassService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ClassService) invalidate(ctx context.Context) {
	if err := s.Cache.DeletePrefix(ctx, cachePrefix); err != nil {
		log.Warn().Err(err).Msg("[classes] cache invalidation failed")
	}
}
