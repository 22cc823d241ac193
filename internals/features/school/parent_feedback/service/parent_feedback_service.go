package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	publicDto "schooldesk_backend/internals/features/public/dto"
	idCardModel "schooldesk_backend/internals/features/school/id_cards/model"
	"schooldesk_backend/internals/features/school/parent_feedback/dto"
	"schooldesk_backend/internals/features/school/parent_feedback/model"
	"schooldesk_backend/internals/features/school/parent_feedback/repository"
	helper "schooldesk_backend/internals/helpers"
	helperOSS "schooldesk_backend/internals/helpers/oss"
)

const certificateDir = "feedback-certificates"

// PhotoLookup: ID card terbaru milik siswa di kelas tsb.
type PhotoLookup interface {
	FindByStudent(ctx context.Context, classID uuid.UUID, studentName string) (*idCardModel.IDCardModel, error)
}

type ParentFeedbackService struct {
	Repo    repository.ParentFeedbackRepository
	IDCards PhotoLookup
	Blob    helperOSS.BlobService // nil = sertifikat tidak disimpan ke OSS
	School  publicDto.SchoolInfo
	Now     func() time.Time
}

func NewParentFeedbackService(repo repository.ParentFeedbackRepository, idCards PhotoLookup, blob helperOSS.BlobService, school publicDto.SchoolInfo) *ParentFeedbackService {
	return &ParentFeedbackService{Repo: repo, IDCards: idCards, Blob: blob, School: school, Now: time.Now}
}

func parseMonth(s string) (string, error) {
	m := model.NormalizeMonth(s)
	if m == "" {
		return "", fmt.Errorf("%w: bulan tidak valid: %q", helper.ErrInvalid, s)
	}
	return m, nil
}

// Photos: foto siswa/ayah/ibu dari ID card; tidak ada kartu = semua nil.
func (s *ParentFeedbackService) Photos(ctx context.Context, classID uuid.UUID, studentName string) (dto.Photos, error) {
	if s.IDCards == nil || strings.TrimSpace(studentName) == "" {
		return dto.Photos{}, nil
	}
	card, err := s.IDCards.FindByStudent(ctx, classID, studentName)
	if errors.Is(err, helper.ErrNotFound) {
		return dto.Photos{}, nil
	}
	if err != nil {
		return dto.Photos{}, err
	}
	return dto.Photos{
		StudentPhotoURL: card.StudentPhotoURL,
		FatherPhotoURL:  card.FatherPhotoURL,
		MotherPhotoURL:  card.MotherPhotoURL,
	}, nil
}

// fillPhotos mengisi foto yang masih kosong; true kalau ada yang berubah.
func (s *ParentFeedbackService) fillPhotos(ctx context.Context, m *model.ParentFeedbackModel) bool {
	if m.StudentPhotoURL != nil && m.FatherPhotoURL != nil && m.MotherPhotoURL != nil {
		return false
	}
	p, err := s.Photos(ctx, m.ClassID, m.StudentName)
	if err != nil {
		log.Warn().Err(err).Str("student", m.StudentName).Msg("[FEEDBACK] id card lookup failed")
		return false
	}
	changed := false
	for _, f := range []struct {
		dst **string
		src *string
	}{
		{&m.StudentPhotoURL, p.StudentPhotoURL},
		{&m.FatherPhotoURL, p.FatherPhotoURL},
		{&m.MotherPhotoURL, p.MotherPhotoURL},
	} {
		if *f.dst == nil && f.src != nil {
			*f.dst = f.src
			changed = true
		}
	}
	return changed
}

func (s *ParentFeedbackService) List(ctx context.Context, f dto.SearchFilter) ([]model.ParentFeedbackModel, error) {
	if strings.TrimSpace(f.Month) != "" {
		m, err := parseMonth(f.Month)
		if err != nil {
			return nil, err
		}
		f.Month = m
	}
	return s.Repo.ListFeedback(ctx, f)
}

func (s *ParentFeedbackService) GetByID(ctx context.Context, id uuid.UUID) (*model.ParentFeedbackModel, error) {
	return s.Repo.GetFeedback(ctx, id)
}

func (s *ParentFeedbackService) Create(ctx context.Context, req dto.FeedbackRequest, actor *uuid.UUID) (*model.ParentFeedbackModel, error) {
	if _, err := parseMonth(req.Month); err != nil {
		return nil, err
	}
	m := &model.ParentFeedbackModel{CreatedBy: actor}
	req.ApplyToModel(m)
	if m.StudentPhotoURL == nil {
		p, err := s.Photos(ctx, m.ClassID, m.StudentName)
		if err != nil {
			log.Warn().Err(err).Str("student", m.StudentName).Msg("[FEEDBACK] id card lookup failed")
		}
		m.StudentPhotoURL = p.StudentPhotoURL
	}
	if err := s.Repo.CreateFeedback(ctx, m); err != nil {
		return nil, err
	}
	log.Info().Str("id", m.ID.String()).Str("student", m.StudentName).Str("month", m.Month).Msg("[FEEDBACK] created")
	return m, nil
}

func (s *ParentFeedbackService) Update(ctx context.Context, id uuid.UUID, req dto.FeedbackRequest) (*model.ParentFeedbackModel, error) {
	if _, err := parseMonth(req.Month); err != nil {
		return nil, err
	}
	m, err := s.Repo.GetFeedback(ctx, id)
	if err != nil {
		return nil, err
	}
	req.ApplyToModel(m)
	m.Class = nil
	if err := s.Repo.SaveFeedback(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete: sertifikat di OSS dibersihkan best-effort.
func (s *ParentFeedbackService) Delete(ctx context.Context, id uuid.UUID) error {
	cert, err := s.Repo.GetCertificate(ctx, id)
	if err != nil && !errors.Is(err, helper.ErrNotFound) {
		return err
	}
	if err := s.Repo.DeleteFeedback(ctx, id); err != nil {
		return err
	}
	if cert != nil && cert.CertificateURL != nil && s.Blob != nil {
		if err := s.Blob.DeleteByPublicURL(ctx, *cert.CertificateURL); err != nil {
			log.Warn().Err(err).Str("url", *cert.CertificateURL).Msg("[FEEDBACK] certificate cleanup failed")
		}
	}
	return nil
}

/*
GenerateCertificate idempoten per feedback:
  - sudah ada: kembalikan yang lama (Created=false)
  - belum: lengkapi foto orang tua dari ID card, render PNG, upload (kalau OSS aktif),
    simpan dengan download_count 0
*/
func (s *ParentFeedbackService) GenerateCertificate(ctx context.Context, feedbackID uuid.UUID) (*dto.CertificateResponse, error) {
	fb, err := s.Repo.GetFeedback(ctx, feedbackID)
	if err != nil {
		return nil, err
	}
	if cert, err := s.Repo.GetCertificate(ctx, feedbackID); err == nil {
		return &dto.CertificateResponse{Certificate: *cert, Feedback: *fb}, nil
	} else if !errors.Is(err, helper.ErrNotFound) {
		return nil, err
	}

	if s.fillPhotos(ctx, fb) {
		class := fb.Class
		fb.Class = nil
		if err := s.Repo.SaveFeedback(ctx, fb); err != nil {
			return nil, err
		}
		fb.Class = class
	}

	cert := &model.FeedbackCertificateModel{FeedbackID: fb.ID}
	if s.Blob != nil {
		png, err := RenderCertificate(*fb, s.School, s.Now())
		if err != nil {
			return nil, err
		}
		url, err := s.Blob.UploadBytes(ctx, certificateDir+"/"+fb.ID.String(), certificateFilename(*fb), "image/png", png)
		if err != nil {
			return nil, err
		}
		cert.CertificateURL = &url
	}

	if err := s.Repo.CreateCertificate(ctx, cert); err != nil {
		if !errors.Is(err, helper.ErrConflict) {
			s.discardUpload(ctx, cert.CertificateURL)
			return nil, err
		}
		// kalah balapan dengan request lain
		s.discardUpload(ctx, cert.CertificateURL)
		existing, gerr := s.Repo.GetCertificate(ctx, feedbackID)
		if gerr != nil {
			return nil, gerr
		}
		return &dto.CertificateResponse{Certificate: *existing, Feedback: *fb}, nil
	}
	log.Info().Str("feedback_id", fb.ID.String()).Msg("[FEEDBACK] certificate generated")
	return &dto.CertificateResponse{Certificate: *cert, Feedback: *fb, Created: true}, nil
}

func (s *ParentFeedbackService) discardUpload(ctx context.Context, url *string) {
	if url == nil || s.Blob == nil {
		return
	}
	if err := s.Blob.DeleteByPublicURL(ctx, *url); err != nil {
		log.Warn().Err(err).Str("url", *url).Msg("[FEEDBACK] orphan certificate cleanup failed")
	}
}

func certificateFilename(fb model.ParentFeedbackModel) string {
	return helper.Slugify(fb.StudentName+" "+fb.Month, 80) + ".png"
}

func (s *ParentFeedbackService) Certificate(ctx context.Context, feedbackID uuid.UUID) (*model.FeedbackCertificateModel, error) {
	return s.Repo.GetCertificate(ctx, feedbackID)
}

func (s *ParentFeedbackService) IncrementDownload(ctx context.Context, feedbackID uuid.UUID) (*model.FeedbackCertificateModel, error) {
	return s.Repo.IncrementDownload(ctx, feedbackID)
}

// Download: pastikan sertifikat ada, tambah counter, kembalikan PNG.
func (s *ParentFeedbackService) Download(ctx context.Context, feedbackID uuid.UUID) ([]byte, string, error) {
	res, err := s.GenerateCertificate(ctx, feedbackID)
	if err != nil {
		return nil, "", err
	}
	if _, err := s.Repo.IncrementDownload(ctx, feedbackID); err != nil {
		return nil, "", err
	}
	png, err := RenderCertificate(res.Feedback, s.School, res.Certificate.CreatedAt)
	if err != nil {
		return nil, "", err
	}
	return png, certificateFilename(res.Feedback), nil
}

/* ===== feedback dari orang tua ===== */

// Submit: satu baris per kelas+siswa+bulan; kirim ulang menimpa isi dan status kembali PENDING.
func (s *ParentFeedbackService) Submit(ctx context.Context, req dto.SubmitRequest) (*model.ParentSubmittedFeedbackModel, bool, error) {
	month, err := parseMonth(req.Month)
	if err != nil {
		return nil, false, err
	}
	norm := helper.NormalizeName(req.StudentName)
	existing, err := s.Repo.FindSubmitted(ctx, req.ClassID, norm, month)
	if err != nil && !errors.Is(err, helper.ErrNotFound) {
		return nil, false, err
	}
	if existing != nil {
		req.ApplyToModel(existing)
		existing.NormalizedStudent = norm
		existing.Status = model.SubmittedPending
		existing.Class = nil
		if err := s.Repo.SaveSubmitted(ctx, existing); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	m := &model.ParentSubmittedFeedbackModel{Status: model.SubmittedPending, NormalizedStudent: norm}
	req.ApplyToModel(m)
	if err := s.Repo.CreateSubmitted(ctx, m); err != nil {
		return nil, false, err
	}
	return m, true, nil
}

// CheckExisting: nil kalau orang tua belum mengirim untuk bulan tsb.
func (s *ParentFeedbackService) CheckExisting(ctx context.Context, classID uuid.UUID, studentName, month string) (*model.ParentSubmittedFeedbackModel, error) {
	mo, err := parseMonth(month)
	if err != nil {
		return nil, err
	}
	m, err := s.Repo.FindSubmitted(ctx, classID, helper.NormalizeName(studentName), mo)
	if errors.Is(err, helper.ErrNotFound) {
		return nil, nil
	}
	return m, err
}

func (s *ParentFeedbackService) ListSubmitted(ctx context.Context, f dto.SubmittedFilter) ([]model.ParentSubmittedFeedbackModel, error) {
	if strings.TrimSpace(f.Month) != "" {
		m, err := parseMonth(f.Month)
		if err != nil {
			return nil, err
		}
		f.Month = m
	}
	f.Status = strings.ToUpper(strings.TrimSpace(f.Status))
	return s.Repo.ListSubmitted(ctx, f)
}

func (s *ParentFeedbackService) GetSubmitted(ctx context.Context, id uuid.UUID) (*model.ParentSubmittedFeedbackModel, error) {
	return s.Repo.GetSubmitted(ctx, id)
}

func (s *ParentFeedbackService) UpdateSubmittedStatus(ctx context.Context, id uuid.UUID, status string) (*model.ParentSubmittedFeedbackModel, error) {
	m, err := s.Repo.GetSubmitted(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Status = status
	m.Class = nil
	if err := s.Repo.SaveSubmitted(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Respond: tanggapan sekolah; status jadi RESPONDED.
func (s *ParentFeedbackService) Respond(ctx context.Context, id uuid.UUID, text string, actor *uuid.UUID) (*model.ParentSubmittedFeedbackModel, error) {
	m, err := s.Repo.GetSubmitted(ctx, id)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	now := s.Now()
	m.AdminFeedback = &text
	m.AdminFeedbackDate = &now
	m.AdminFeedbackBy = actor
	m.Status = model.SubmittedResponded
	m.Class = nil
	if err := s.Repo.SaveSubmitted(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
