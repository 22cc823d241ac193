package service

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"schooldesk_backend/internals/features/school/id_cards/dto"
	"schooldesk_backend/internals/features/school/id_cards/repository"
	helper "schooldesk_backend/internals/helpers"
	helperOSS "schooldesk_backend/internals/helpers/oss"
)

func newSvc(blob helperOSS.BlobService) (*IDCardService, *repository.MemoryIDCardRepository) {
	repo := repository.NewMemoryIDCardRepository()
	return &IDCardService{Repo: repo, Blob: blob}, repo
}

func sampleReq(classID uuid.UUID) dto.SaveIDCardRequest {
	return dto.SaveIDCardRequest{
		StudentName: " Ana Putri ",
		ClassID:     &classID,
		FatherName:  "Budi",
		MotherName:  "Sari",
		Address:     "Jl. Melati 1",
	}
}

func TestSaveRejectsDuplicateCaseInsensitive(t *testing.T) {
	svc, _ := newSvc(nil)
	ctx := context.Background()
	classID := uuid.New()

	m, err := svc.Save(ctx, sampleReq(classID))
	require.NoError(t, err)
	assert.Equal(t, "Ana Putri", m.StudentName)

	dup := sampleReq(classID)
	dup.StudentName, dup.FatherName = "ANA  PUTRI", "budi"
	_, err = svc.Save(ctx, dup)
	assert.True(t, errors.Is(err, helper.ErrConflict))

	// kelas lain bukan duplikat
	_, err = svc.Save(ctx, sampleReq(uuid.New()))
	assert.NoError(t, err)
}

func TestUpdateIgnoresOwnRow(t *testing.T) {
	svc, _ := newSvc(nil)
	ctx := context.Background()
	classID := uuid.New()
	m, err := svc.Save(ctx, sampleReq(classID))
	require.NoError(t, err)

	req := sampleReq(classID)
	req.Address = "Jl. Mawar 2"
	got, err := svc.Update(ctx, m.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Jl. Mawar 2", got.Address)

	other := sampleReq(classID)
	other.StudentName = "Citra"
	o, err := svc.Save(ctx, other)
	require.NoError(t, err)
	_, err = svc.Update(ctx, o.ID, sampleReq(classID))
	assert.True(t, errors.Is(err, helper.ErrConflict))
}

func TestSaveRespectsCapacity(t *testing.T) {
	svc, _ := newSvc(nil)
	svc.MaxCards = 1
	ctx := context.Background()
	_, err := svc.Save(ctx, sampleReq(uuid.New()))
	require.NoError(t, err)

	_, err = svc.Save(ctx, sampleReq(uuid.New()))
	var fe *fiber.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, fiber.StatusInsufficientStorage, fe.Code)
}

func TestUploadPhotoReplacesOldURL(t *testing.T) {
	var dirs, deleted []string
	n := 0
	blob := &helperOSS.MockBlobService{
		UploadImageFn: func(_ context.Context, dir string, _ *multipart.FileHeader, _ helperOSS.WebPOptions) (string, error) {
			n++
			dirs = append(dirs, dir)
			return "https://cdn.test/" + dir + "/" + string(rune('a'+n)) + ".webp", nil
		},
		DeleteByPublicURLFn: func(_ context.Context, u string) error {
			deleted = append(deleted, u)
			return nil
		},
	}
	svc, repo := newSvc(blob)
	ctx := context.Background()
	m, err := svc.Save(ctx, sampleReq(uuid.New()))
	require.NoError(t, err)

	first, err := svc.UploadPhoto(ctx, m.ID, "Father", &multipart.FileHeader{Filename: "dad.JPG", Size: 1024})
	require.NoError(t, err)
	second, err := svc.UploadPhoto(ctx, m.ID, "father", &multipart.FileHeader{Filename: "dad.png", Size: 1024})
	require.NoError(t, err)

	assert.Equal(t, "id-cards/"+m.ID.String()+"/father", dirs[0])
	assert.Equal(t, []string{first}, deleted)
	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got.FatherPhotoURL)
	assert.Equal(t, second, *got.FatherPhotoURL)
}

func TestUploadPhotoValidation(t *testing.T) {
	svc, _ := newSvc(&helperOSS.MockBlobService{})
	ctx := context.Background()
	m, err := svc.Save(ctx, sampleReq(uuid.New()))
	require.NoError(t, err)

	_, err = svc.UploadPhoto(ctx, m.ID, "uncle", &multipart.FileHeader{Filename: "a.jpg", Size: 1})
	assert.True(t, errors.Is(err, helper.ErrInvalid))
	_, err = svc.UploadPhoto(ctx, m.ID, "student", &multipart.FileHeader{Filename: "a.gif", Size: 1})
	assert.True(t, errors.Is(err, helper.ErrInvalid))
	_, err = svc.UploadPhoto(ctx, m.ID, "student", &multipart.FileHeader{Filename: "a.jpg", Size: 5 << 20})
	assert.True(t, errors.Is(err, helper.ErrInvalid))

	noBlob, _ := newSvc(nil)
	_, err = noBlob.UploadPhoto(ctx, uuid.New(), "student", &multipart.FileHeader{Filename: "a.jpg", Size: 1})
	var fe *fiber.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusServiceUnavailable, fe.Code)
}

func TestExportIncrementsDownloads(t *testing.T) {
	svc, repo := newSvc(nil)
	ctx := context.Background()
	a, err := svc.Save(ctx, sampleReq(uuid.New()))
	require.NoError(t, err)
	b := sampleReq(uuid.New())
	b.StudentName = "Dodi"
	_, err = svc.Save(ctx, b)
	require.NoError(t, err)

	out, err := svc.ExportXLSX(ctx, []uuid.UUID{a.ID})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	rows, err := f.GetRows("ID Cards")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ana Putri", rows[1][0])

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.DownloadCount)

	_, err = svc.ExportXLSX(ctx, []uuid.UUID{uuid.New()})
	assert.True(t, errors.Is(err, helper.ErrNotFound))
}

func TestDeleteRemovesPhotos(t *testing.T) {
	var deleted []string
	blob := &helperOSS.MockBlobService{
		DeleteByPublicURLFn: func(_ context.Context, u string) error {
			deleted = append(deleted, u)
			return nil
		},
	}
	svc, _ := newSvc(blob)
	ctx := context.Background()
	req := sampleReq(uuid.New())
	photo := "https://cdn.test/s.webp"
	req.StudentPhotoURL = &photo
	m, err := svc.Save(ctx, req)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, m.ID))
	assert.Equal(t, []string{photo}, deleted)
	assert.True(t, errors.Is(svc.Delete(ctx, m.ID), helper.ErrNotFound))
}

func TestListSortsByCamelOrSnakeKey(t *testing.T) {
	svc, _ := newSvc(nil)
	ctx := context.Background()
	classID := uuid.New()
	for _, name := range []string{"Citra", "Ana", "Budi"} {
		req := sampleReq(classID)
		req.StudentName = name
		_, err := svc.Save(ctx, req)
		require.NoError(t, err)
	}

	for _, key := range []string{"studentName", "student_name"} {
		rows, total, err := svc.List(ctx, dto.ListParams{ClassID: &classID, SortBy: key, Limit: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		require.Len(t, rows, 3)
		assert.Equal(t, []string{"Ana", "Budi", "Citra"},
			[]string{rows[0].StudentName, rows[1].StudentName, rows[2].StudentName}, key)
	}
}
