package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"schooldesk_backend/internals/configs"
	"schooldesk_backend/internals/features/school/id_cards/dto"
	"schooldesk_backend/internals/features/school/id_cards/model"
	"schooldesk_backend/internals/features/school/id_cards/repository"
	helper "schooldesk_backend/internals/helpers"
	helperOSS "schooldesk_backend/internals/helpers/oss"
	helperXLSX "schooldesk_backend/internals/helpers/xlsx"
)

const maxPhotoSize = 4 * 1024 * 1024

var allowedPhotoExt = map[string]struct{}{".jpg": {}, ".jpeg": {}, ".png": {}}

type IDCardService struct {
	Repo     repository.IDCardRepository
	Blob     helperOSS.BlobService // nil -> upload 503
	MaxCards int64                 // 0 = tanpa batas
}

// NewIDCardService: batas jumlah kartu dari IDCARD_MAX_CARDS.
func NewIDCardService(repo repository.IDCardRepository, blob helperOSS.BlobService) *IDCardService {
	return &IDCardService{
		Repo:     repo,
		Blob:     blob,
		MaxCards: int64(configs.GetEnvInt("IDCARD_MAX_CARDS", 0)),
	}
}

func errStorageFull() error {
	return fiber.NewError(fiber.StatusInsufficientStorage, "Storage limit reached. Please contact the administrator.")
}

// checkCapacity: adding = jumlah kartu baru yang akan ditambahkan.
func (s *IDCardService) checkCapacity(ctx context.Context, adding int64) error {
	if s.MaxCards <= 0 {
		return nil
	}
	n, err := s.Repo.Count(ctx)
	if err != nil {
		return err
	}
	if n+adding > s.MaxCards {
		return errStorageFull()
	}
	return nil
}

func (s *IDCardService) ensureUnique(ctx context.Context, m *model.IDCardModel, exclude *uuid.UUID) error {
	dup, err := s.Repo.DuplicateExists(ctx, m.DedupKey, exclude)
	if err != nil {
		return err
	}
	if dup {
		return fmt.Errorf("%w: siswa dengan nama, kelas, dan orang tua yang sama sudah terdaftar", helper.ErrConflict)
	}
	return nil
}

func (s *IDCardService) Save(ctx context.Context, req dto.SaveIDCardRequest) (*model.IDCardModel, error) {
	m := req.ToModel()
	if err := s.ensureUnique(ctx, m, nil); err != nil {
		return nil, err
	}
	if err := s.checkCapacity(ctx, 1); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *IDCardService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateIDCardRequest) (*model.IDCardModel, error) {
	m, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto.ApplyUpdate(req, m)
	if err := s.ensureUnique(ctx, m, &id); err != nil {
		return nil, err
	}
	if err := s.Repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *IDCardService) GetByID(ctx context.Context, id uuid.UUID) (*model.IDCardModel, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *IDCardService) List(ctx context.Context, p dto.ListParams) ([]model.IDCardModel, int64, error) {
	p.Search = strings.TrimSpace(p.Search)
	return s.Repo.List(ctx, p)
}

// Delete: foto di OSS dihapus best-effort setelah baris terhapus.
func (s *IDCardService) Delete(ctx context.Context, id uuid.UUID) error {
	m, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.Blob != nil {
		for photoType := range model.PhotoColumns {
			if u := m.PhotoURL(photoType); u != nil && *u != "" {
				if err := s.Blob.DeleteByPublicURL(ctx, *u); err != nil {
					log.Warn().Err(err).Str("url", *u).Msg("[IDCARD] gagal hapus foto")
				}
			}
		}
	}
	return nil
}

func validatePhoto(fh *multipart.FileHeader) error {
	if fh == nil {
		return fmt.Errorf("%w: file foto wajib", helper.ErrInvalid)
	}
	if _, ok := allowedPhotoExt[strings.ToLower(filepath.Ext(fh.Filename))]; !ok {
		return fmt.Errorf("%w: hanya JPG atau PNG", helper.ErrInvalid)
	}
	if fh.Size > maxPhotoSize {
		return fmt.Errorf("%w: ukuran maksimal 4MB", helper.ErrInvalid)
	}
	return nil
}

// UploadPhoto: dikonversi ke WebP persegi lalu disimpan di id-cards/<id>/<photoType>.
func (s *IDCardService) UploadPhoto(ctx context.Context, id uuid.UUID, photoType string, fh *multipart.FileHeader) (string, error) {
	photoType = strings.ToLower(strings.TrimSpace(photoType))
	if _, ok := model.PhotoColumns[photoType]; !ok {
		return "", fmt.Errorf("%w: photoType harus student/father/mother/guardian", helper.ErrInvalid)
	}
	if err := validatePhoto(fh); err != nil {
		return "", err
	}
	if s.Blob == nil {
		return "", fiber.NewError(fiber.StatusServiceUnavailable, "Penyimpanan file belum dikonfigurasi")
	}
	m, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := s.checkCapacity(ctx, 0); err != nil {
		return "", err
	}

	dir := fmt.Sprintf("id-cards/%s/%s", id, photoType)
	url, err := s.Blob.UploadImage(ctx, dir, fh, helperOSS.PhotoWebPOptions())
	if err != nil {
		return "", err
	}
	if err := s.Repo.SetPhoto(ctx, id, photoType, url); err != nil {
		_ = s.Blob.DeleteByPublicURL(ctx, url)
		return "", err
	}
	if old := m.PhotoURL(photoType); old != nil && *old != "" && *old != url {
		if err := s.Blob.DeleteByPublicURL(ctx, *old); err != nil {
			log.Warn().Err(err).Str("url", *old).Msg("[IDCARD] gagal hapus foto lama")
		}
	}
	return url, nil
}

func (s *IDCardService) IncrementDownloadCount(ctx context.Context, ids ...uuid.UUID) error {
	return s.Repo.IncrementDownloads(ctx, ids)
}

var exportHeaders = []string{
	"Student Name", "Class", "Admission No", "Date of Birth", "Father Name", "Mother Name",
	"Father Mobile", "Mother Mobile", "Address", "Student Photo", "Father Photo", "Mother Photo", "Download Count",
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ExportXLSX: ids kosong = semua kartu. Download count kartu yang diekspor ikut naik.
func (s *IDCardService) ExportXLSX(ctx context.Context, ids []uuid.UUID) ([]byte, error) {
	cards, err := s.Repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: tidak ada kartu untuk diekspor", helper.ErrNotFound)
	}
	rows := make([][]any, 0, len(cards))
	exported := make([]uuid.UUID, 0, len(cards))
	for _, m := range cards {
		dob := ""
		if m.DateOfBirth != nil {
			dob = m.DateOfBirth.String()
		}
		rows = append(rows, []any{
			m.StudentName, m.ClassLabel(), deref(m.AdmissionNumber), dob, m.FatherName, m.MotherName,
			m.FatherMobile, m.MotherMobile, m.Address,
			deref(m.StudentPhotoURL), deref(m.FatherPhotoURL), deref(m.MotherPhotoURL),
			m.DownloadCount + 1,
		})
		exported = append(exported, m.ID)
	}
	out, err := helperXLSX.Build("ID Cards", exportHeaders, rows)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.IncrementDownloads(ctx, exported); err != nil {
		log.Warn().Err(err).Msg("[IDCARD] gagal menaikkan download count")
	}
	return out, nil
}
