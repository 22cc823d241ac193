package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/features/school/students/dto"
	"schooldesk_backend/internals/features/school/students/model"
	"schooldesk_backend/internals/features/school/students/repository"
	authModel "schooldesk_backend/internals/features/users/auth/model"
	authRepo "schooldesk_backend/internals/features/users/auth/repository"
	helper "schooldesk_backend/internals/helpers"
)

// DefaultPasswordPrefix + nomor induk = password awal akun orang tua.
const DefaultPasswordPrefix = "Welcome@"

var spaceRe = regexp.MustCompile(`\s+`)

type StudentService struct {
	Repo     repository.StudentRepository
	Profiles authRepo.ProfileRepository
}

func NewStudentService(repo repository.StudentRepository, profiles authRepo.ProfileRepository) *StudentService {
	return &StudentService{Repo: repo, Profiles: profiles}
}

// ListWithProfile: semua siswa + profile user (GET /api/students).
func (s *StudentService) ListWithProfile(ctx context.Context) ([]model.StudentModel, error) {
	return s.Repo.FindAllWithProfile(ctx)
}

// CreateBasic: insert baris dari body lama {name, grade, section, rollNo, userId}.
func (s *StudentService) CreateBasic(ctx context.Context, req dto.LegacyCreateRequest) (*model.StudentModel, error) {
	m := req.ToModel()
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *StudentService) FindMany(ctx context.Context, classID *uuid.UUID) ([]model.StudentModel, error) {
	return s.Repo.FindMany(ctx, classID)
}

func (s *StudentService) FindOne(ctx context.Context, id uuid.UUID) (*model.StudentModel, error) {
	return s.Repo.FindOne(ctx, id)
}

func (s *StudentService) FindByEmail(ctx context.Context, email string) (*model.StudentModel, error) {
	return s.Repo.FindByParentEmail(ctx, strings.TrimSpace(email))
}

func (s *StudentService) GetByClass(ctx context.Context, classID uuid.UUID) ([]model.StudentModel, error) {
	return s.Repo.FindMany(ctx, &classID)
}

/*
Create mendaftarkan siswa sekaligus akun orang tua (role STUDENT) dengan
password awal "Welcome@<nomor induk>". Kalau email orang tua sudah punya
akun (kakak/adik), siswa ditautkan ke akun itu dan password tidak dikembalikan.
*/
func (s *StudentService) Create(ctx context.Context, req dto.CreateStudentRequest) (*dto.CreateStudentResponse, error) {
	m := req.ToModel()
	creds := dto.Credentials{
		Email:    *m.ParentEmail,
		Username: Username(m.Name),
	}

	profile, err := s.Profiles.FindByEmail(ctx, *m.ParentEmail)
	switch {
	case err == nil:
		log.Info().Str("email", creds.Email).Msg("[students] parent account exists, linking")
	case errors.Is(err, helper.ErrNotFound):
		password := DefaultPasswordPrefix + *m.AdmissionNumber
		hash, herr := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if herr != nil {
			return nil, fmt.Errorf("hash password: %w", herr)
		}
		h := string(hash)
		profile = &authModel.ProfileModel{
			Email:        creds.Email,
			PasswordHash: &h,
			Role:         constants.RoleStudent,
			FullName:     m.Name,
			IsActive:     true,
		}
		if err := s.Profiles.Create(ctx, profile); err != nil {
			return nil, err
		}
		creds.Password = password
	default:
		return nil, err
	}

	m.UserID = &profile.ID
	if err := s.Repo.Create(ctx, m); err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: admission number already used", helper.ErrConflict)
		}
		return nil, err
	}
	return &dto.CreateStudentResponse{Student: m, Credentials: creds}, nil
}

func (s *StudentService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateStudentRequest) (*model.StudentModel, error) {
	m, err := s.Repo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	req.ApplyToModel(m)
	if err := s.Repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete hanya menghapus baris siswa; akun orang tua bisa dipakai saudara.
func (s *StudentService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.Repo.Delete(ctx, id)
}

// StudentsByClass: dari kartu pelajar dulu (punya foto), fallback ke tabel siswa tanpa foto.
func (s *StudentService) StudentsByClass(ctx context.Context, classID uuid.UUID) ([]model.ClassStudent, error) {
	cards, err := s.Repo.IDCardStudents(ctx, classID)
	if err != nil {
		log.Warn().Err(err).Str("class_id", classID.String()).Msg("[students] id card lookup failed, falling back")
	}
	if len(cards) > 0 {
		return cards, nil
	}

	rows, err := s.Repo.FindMany(ctx, &classID)
	if err != nil {
		return nil, err
	}
	out := make([]model.ClassStudent, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.ClassStudent{ID: r.ID, Name: r.Name, AdmissionNumber: r.AdmissionNumber})
	}
	return out, nil
}

// Username: "Budi Santoso" -> "budi.santoso".
func Username(name string) string {
	return spaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), ".")
}
