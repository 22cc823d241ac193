package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	classRepo "schooldesk_backend/internals/features/school/classes/main/repository"
	"schooldesk_backend/internals/features/school/sports_enrollments/dto"
	"schooldesk_backend/internals/features/school/sports_enrollments/model"
	"schooldesk_backend/internals/features/school/sports_enrollments/repository"
	helper "schooldesk_backend/internals/helpers"
	helperXLSX "schooldesk_backend/internals/helpers/xlsx"
)

type SportsEnrollmentService struct {
	Repo    repository.SportsEnrollmentRepository
	Classes classRepo.ClassRepository
	nowFunc func() time.Time
}

func NewSportsEnrollmentService(repo repository.SportsEnrollmentRepository, classes classRepo.ClassRepository) *SportsEnrollmentService {
	return &SportsEnrollmentService{Repo: repo, Classes: classes, nowFunc: time.Now}
}

func (s *SportsEnrollmentService) WithClock(now func() time.Time) *SportsEnrollmentService {
	s.nowFunc = now
	return s
}

// CreateEnrollment: status selalu ENROLLED; nama+kelas yang sama ditolak.
// className diisi dari data kelas kalau form tidak mengirim.
func (s *SportsEnrollmentService) CreateEnrollment(ctx context.Context, req dto.CreateEnrollmentRequest) (*model.SportsEnrollmentModel, error) {
	m := req.ToModel()
	if m.StudentName == "" {
		return nil, fmt.Errorf("%w: studentName wajib", helper.ErrInvalid)
	}

	cls, err := s.Classes.GetByID(ctx, m.ClassID)
	if err != nil {
		if errors.Is(err, helper.ErrNotFound) {
			return nil, fmt.Errorf("%w: kelas tidak ditemukan", helper.ErrInvalid)
		}
		return nil, err
	}
	if m.ClassName == "" {
		m.ClassName = strings.TrimSpace(cls.Name + " " + cls.Section)
	}

	exists, err := s.Repo.ExistsByName(ctx, m.StudentName, m.ClassID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s sudah terdaftar di kelas ini", helper.ErrConflict, m.StudentName)
	}

	m.EnrolledAt = s.nowFunc().UTC()
	if err := s.Repo.Create(ctx, m); err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s sudah terdaftar di kelas ini", helper.ErrConflict, m.StudentName)
		}
		return nil, err
	}
	log.Info().Str("id", m.ID.String()).Str("class", m.ClassName).Int("games", len(m.SelectedGames)).Msg("[SPORTS] enrollment created")
	return m, nil
}

// CheckExistingEnrollment: true kalau nama (trim, case-insensitive) sudah ada di kelas tsb.
func (s *SportsEnrollmentService) CheckExistingEnrollment(ctx context.Context, name string, classID uuid.UUID) (bool, error) {
	if strings.TrimSpace(name) == "" {
		return false, nil
	}
	return s.Repo.ExistsByName(ctx, name, classID)
}

func (s *SportsEnrollmentService) GetEnrollmentCount(ctx context.Context) (int64, error) {
	return s.Repo.Count(ctx)
}

func (s *SportsEnrollmentService) GetAll(ctx context.Context, p dto.ListParams) ([]model.SportsEnrollmentModel, error) {
	return s.Repo.List(ctx, p)
}

func (s *SportsEnrollmentService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.Repo.Delete(ctx, id)
}

// Grouped: by = "class" (default) atau "sport". Pendaftar tanpa cabang masuk
// grup NoGameLabel yang selalu paling akhir.
func (s *SportsEnrollmentService) Grouped(ctx context.Context, by string) ([]dto.Group, error) {
	rows, err := s.Repo.List(ctx, dto.ListParams{})
	if err != nil {
		return nil, err
	}
	buckets := map[string][]model.SportsEnrollmentModel{}
	switch strings.ToLower(strings.TrimSpace(by)) {
	case "", "class":
		for _, m := range rows {
			key := m.ClassName
			if key == "" {
				key = "Unknown"
			}
			buckets[key] = append(buckets[key], m)
		}
	case "sport":
		for _, m := range rows {
			if len(m.SelectedGames) == 0 {
				buckets[model.NoGameLabel] = append(buckets[model.NoGameLabel], m)
				continue
			}
			for _, g := range m.SelectedGames {
				buckets[g] = append(buckets[g], m)
			}
		}
	default:
		return nil, fmt.Errorf("%w: groupBy harus class atau sport", helper.ErrInvalid)
	}

	out := make([]dto.Group, 0, len(buckets))
	for k, v := range buckets {
		out = append(out, dto.Group{Key: k, Count: len(v), Enrollments: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if (out[i].Key == model.NoGameLabel) != (out[j].Key == model.NoGameLabel) {
			return out[j].Key == model.NoGameLabel
		}
		return out[i].Key < out[j].Key
	})
	return out, nil
}

func (s *SportsEnrollmentService) Export(ctx context.Context, p dto.ListParams) ([]byte, error) {
	rows, err := s.Repo.List(ctx, p)
	if err != nil {
		return nil, err
	}
	data := make([][]any, 0, len(rows))
	for i, m := range rows {
		notes := ""
		if m.SpecialNotes != nil {
			notes = *m.SpecialNotes
		}
		data = append(data, []any{
			i + 1, m.StudentName, m.ClassName, m.ParentName, m.ContactNumber,
			strings.Join(m.SelectedGames, ", "), notes, m.Status, m.EnrolledAt.Format("2006-01-02 15:04"),
		})
	}
	return helperXLSX.Build("Enrollments",
		[]string{"No", "Student Name", "Class", "Parent Name", "Contact", "Games", "Notes", "Status", "Enrolled At"},
		data)
}
