package service

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/features/school/assignments/dto"
	"schooldesk_backend/internals/features/school/assignments/model"
	"schooldesk_backend/internals/features/school/assignments/repository"
	"schooldesk_backend/internals/helpers/dbtime"
	helperOSS "schooldesk_backend/internals/helpers/oss"
)

const uploadDir = "assignments"

type AssignmentService struct {
	Repo repository.AssignmentRepository
	Blob helperOSS.BlobService // nil = upload dimatikan
}

func NewAssignmentService(repo repository.AssignmentRepository, blob helperOSS.BlobService) *AssignmentService {
	return &AssignmentService{Repo: repo, Blob: blob}
}

/*
LoadAssignments: editor (guru/admin) melihat semua tugas, selain itu hanya
tugas dengan assignment_date = tanggal UTC dari date. Urut terbaru dulu,
file ikut dimuat. Error di-log dan dianggap list kosong.
*/
func (s *AssignmentService) LoadAssignments(ctx context.Context, date time.Time, isEditable bool) []model.AssignmentModel {
	filter := ""
	if !isEditable {
		filter = dbtime.ISODate(date)
	}
	rows, err := s.Repo.List(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("date", filter).Msg("[assignments] load failed")
		return []model.AssignmentModel{}
	}
	return rows
}

// LoadAllAssignments: semua tugas, error di-log dan jadi list kosong.
func (s *AssignmentService) LoadAllAssignments(ctx context.Context) []model.AssignmentModel {
	rows, err := s.Repo.List(ctx, "")
	if err != nil {
		log.Error().Err(err).Msg("[assignments] load all failed")
		return []model.AssignmentModel{}
	}
	return rows
}

func (s *AssignmentService) GetByID(ctx context.Context, id uuid.UUID) (*model.AssignmentModel, error) {
	return s.Repo.GetByID(ctx, id)
}

// CreateOrUpdate: update kalau editingID diisi, selain itu insert.
func (s *AssignmentService) CreateOrUpdate(ctx context.Context, req dto.AssignmentRequest, editingID *uuid.UUID, actor *uuid.UUID) (*model.AssignmentModel, error) {
	if editingID != nil {
		m, err := s.Repo.GetByID(ctx, *editingID)
		if err != nil {
			return nil, err
		}
		req.ApplyToModel(m)
		if err := s.Repo.Save(ctx, m); err != nil {
			return nil, err
		}
		return m, nil
	}

	m := &model.AssignmentModel{CreatedBy: actor}
	req.ApplyToModel(m)
	if m.AssignmentDate.IsZero() {
		m.AssignmentDate = dbtime.NewDate(time.Now())
	}
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete menghapus tugas + file row; object di OSS dibersihkan best-effort.
func (s *AssignmentService) Delete(ctx context.Context, id uuid.UUID) error {
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

// AttachFile meng-upload file ke storage lalu mencatat baris assignment_files.
func (s *AssignmentService) AttachFile(ctx context.Context, assignmentID uuid.UUID, fh *multipart.FileHeader, uploadedBy *uuid.UUID) (*model.AssignmentFileModel, error) {
	if s.Blob == nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "File storage belum dikonfigurasi")
	}
	if _, err := s.Repo.GetByID(ctx, assignmentID); err != nil {
		return nil, err
	}
	url, _, err := s.Blob.UploadFile(ctx, uploadDir+"/"+assignmentID.String(), fh)
	if err != nil {
		return nil, err
	}
	f := &model.AssignmentFileModel{
		AssignmentID: assignmentID,
		FilePath:     url,
		FileType:     constants.DetectFileTypeFromExt(fh.Filename),
		FileName:     fh.Filename,
		UploadedBy:   uploadedBy,
	}
	if err := s.Repo.AddFile(ctx, f); err != nil {
		s.deleteObject(ctx, url)
		return nil, err
	}
	return f, nil
}

func (s *AssignmentService) RemoveFile(ctx context.Context, fileID uuid.UUID) error {
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

func (s *AssignmentService) deleteObject(ctx context.Context, url string) {
	if s.Blob == nil {
		return
	}
	if err := s.Blob.DeleteByPublicURL(ctx, url); err != nil {
		log.Warn().Err(err).Str("url", url).Msg("[assignments] delete object failed")
	}
}
