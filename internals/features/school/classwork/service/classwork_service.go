package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/features/school/classwork/dto"
	"schooldesk_backend/internals/features/school/classwork/model"
	"schooldesk_backend/internals/features/school/classwork/repository"
	studentModel "schooldesk_backend/internals/features/school/students/model"
	helper "schooldesk_backend/internals/helpers"
	"schooldesk_backend/internals/helpers/dbtime"
	helperOSS "schooldesk_backend/internals/helpers/oss"
)

const uploadDir = "classwork"

// StudentLookup: siswa yang terhubung ke akun login (bisa lebih dari satu).
type StudentLookup interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]studentModel.StudentModel, error)
}

// Viewer: identitas pemanggil dari token.
type Viewer struct {
	Role   string
	UserID uuid.UUID
}

func (v Viewer) isStaff() bool {
	return constants.HasPermission(v.Role, constants.RoleTeacher)
}

type ClassworkService struct {
	Repo     repository.ClassworkRepository
	Students StudentLookup
	Blob     helperOSS.BlobService // nil = upload dimatikan
}

func NewClassworkService(repo repository.ClassworkRepository, students StudentLookup, blob helperOSS.BlobService) *ClassworkService {
	return &ClassworkService{Repo: repo, Students: students, Blob: blob}
}

// ownClasses: kelas dari semua siswa yang terhubung ke akun.
func (s *ClassworkService) ownClasses(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	rows, err := s.Students.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := map[uuid.UUID]bool{}
	for _, st := range rows {
		if st.ClassID != nil {
			out[*st.ClassID] = true
		}
	}
	return out, nil
}

/*
List:
  - guru/admin: semua kelas, atau hanya classID kalau diisi
  - siswa: hanya kelas miliknya; classID di luar itu = 403
*/
func (s *ClassworkService) List(ctx context.Context, v Viewer, classID *uuid.UUID) ([]model.ClassworkModel, error) {
	if v.isStaff() {
		f := dto.ListFilter{}
		if classID != nil {
			f.ClassIDs = []uuid.UUID{*classID}
		}
		return s.Repo.List(ctx, f)
	}

	own, err := s.ownClasses(ctx, v.UserID)
	if err != nil {
		return nil, err
	}
	f := dto.ListFilter{Restricted: true}
	if classID != nil {
		if !own[*classID] {
			return nil, fiber.NewError(fiber.StatusForbidden, "Tidak boleh melihat classwork kelas lain")
		}
		f.ClassIDs = []uuid.UUID{*classID}
	} else {
		for id := range own {
			f.ClassIDs = append(f.ClassIDs, id)
		}
	}
	return s.Repo.List(ctx, f)
}

func (s *ClassworkService) GetByID(ctx context.Context, v Viewer, id uuid.UUID) (*model.ClassworkModel, error) {
	m, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.isStaff() {
		return m, nil
	}
	own, err := s.ownClasses(ctx, v.UserID)
	if err != nil {
		return nil, err
	}
	if !own[m.ClassID] {
		return nil, fmt.Errorf("%w: classwork kelas lain", helper.ErrForbidden)
	}
	return m, nil
}

func (s *ClassworkService) Create(ctx context.Context, req dto.ClassworkRequest, actor *uuid.UUID) (*model.ClassworkModel, error) {
	m := &model.ClassworkModel{CreatedBy: actor}
	req.ApplyToModel(m)
	if m.Date.IsZero() {
		m.Date = dbtime.NewDate(time.Now())
	}
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *ClassworkService) Update(ctx context.Context, id uuid.UUID, req dto.ClassworkRequest) (*model.ClassworkModel, error) {
	m, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.ApplyToModel(m)
	m.Class = nil
	if err := s.Repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete: baris + lampiran; object OSS dibersihkan best-effort.
func (s *ClassworkService) Delete(ctx context.Context, id uuid.UUID) error {
	m, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	for _, f := range m.Files {
		s.deleteObject(ctx, f.FilePath)
	}
	return nil
}

func (s *ClassworkService) AttachFile(ctx context.Context, classworkID uuid.UUID, fh *multipart.FileHeader, uploadedBy *uuid.UUID) (*model.ClassworkFileModel, error) {
	if s.Blob == nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "File storage belum dikonfigurasi")
	}
	if _, err := s.Repo.GetByID(ctx, classworkID); err != nil {
		return nil, err
	}
	url, _, err := s.Blob.UploadFile(ctx, uploadDir+"/"+classworkID.String(), fh)
	if err != nil {
		return nil, err
	}
	f := &model.ClassworkFileModel{
		ClassworkID: classworkID,
		FilePath:    url,
		FileType:    constants.DetectFileTypeFromExt(fh.Filename),
		FileName:    fh.Filename,
		UploadedBy:  uploadedBy,
	}
	if err := s.Repo.AddFile(ctx, f); err != nil {
		s.deleteObject(ctx, url)
		return nil, err
	}
	return f, nil
}

func (s *ClassworkService) RemoveFile(ctx context.Context, fileID uuid.UUID) error {
	f, err := s.Repo.GetFile(ctx, fileID)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteFile(ctx, fileID); err != nil {
		return err
	}
	s.deleteObject(ctx, f.FilePath)
	return nil
}

func (s *ClassworkService) deleteObject(ctx context.Context, url string) {
	if s.Blob == nil {
		return
	}
	if err := s.Blob.DeleteByPublicURL(ctx, url); err != nil {
		log.Warn().Err(err).Str("url", url).Msg("[classwork] delete object failed")
	}
}
