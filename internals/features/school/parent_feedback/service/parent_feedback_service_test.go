package service

import (
	"bytes"
	"context"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	publicDto "schooldesk_backend/internals/features/public/dto"
	idCardModel "schooldesk_backend/internals/features/school/id_cards/model"
	idCardRepo "schooldesk_backend/internals/features/school/id_cards/repository"
	"schooldesk_backend/internals/features/school/parent_feedback/dto"
	"schooldesk_backend/internals/features/school/parent_feedback/model"
	"schooldesk_backend/internals/features/school/parent_feedback/repository"
	helper "schooldesk_backend/internals/helpers"
	helperOSS "schooldesk_backend/internals/helpers/oss"
)

func strPtr(s string) *string { return &s }

type fixture struct {
	svc   *ParentFeedbackService
	repo  *repository.MemoryParentFeedbackRepository
	class uuid.UUID
}

func newFixture(t *testing.T, blob helperOSS.BlobService) fixture {
	t.Helper()
	class := uuid.New()
	cards := idCardRepo.NewMemoryIDCardRepository()
	require.NoError(t, cards.Create(context.Background(), &idCardModel.IDCardModel{
		StudentName:     "Meera Nair",
		ClassID:         &class,
		StudentPhotoURL: strPtr("https://cdn.test/meera.webp"),
		FatherPhotoURL:  strPtr("https://cdn.test/father.webp"),
		MotherPhotoURL:  strPtr("https://cdn.test/mother.webp"),
	}))
	repo := repository.NewMemoryParentFeedbackRepository()
	svc := NewParentFeedbackService(repo, cards, blob, publicDto.SchoolInfo{Name: "Green Valley School", Address: "12 Lake Road"})
	svc.Now = func() time.Time { return time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC) }
	return fixture{svc: svc, repo: repo, class: class}
}

func (f fixture) request(name string) dto.FeedbackRequest {
	return dto.FeedbackRequest{
		ClassID:              f.class,
		StudentName:          name,
		Month:                "march",
		GoodThings:           "Reads fluently and helps classmates during group work.",
		NeedToImprove:        "Neater handwriting",
		BestCanDo:            "Practice one page of cursive every day",
		AttendancePercentage: 96,
	}
}

func TestPhotosFromIDCard(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	p, err := f.svc.Photos(ctx, f.class, "  meera NAIR ")
	require.NoError(t, err)
	require.NotNil(t, p.FatherPhotoURL)
	assert.Equal(t, "https://cdn.test/father.webp", *p.FatherPhotoURL)

	p, err = f.svc.Photos(ctx, f.class, "Unknown Child")
	require.NoError(t, err)
	assert.Nil(t, p.StudentPhotoURL)
	assert.Nil(t, p.MotherPhotoURL)
}

func TestCreateNormalizesMonthAndFillsStudentPhoto(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	m, err := f.svc.Create(ctx, f.request("Meera Nair"), nil)
	require.NoError(t, err)
	assert.Equal(t, "March", m.Month)
	require.NotNil(t, m.StudentPhotoURL)
	assert.Equal(t, "https://cdn.test/meera.webp", *m.StudentPhotoURL)
	assert.Nil(t, m.FatherPhotoURL, "parent photos wait for the certificate")

	bad := f.request("Meera Nair")
	bad.Month = "Marchember"
	_, err = f.svc.Create(ctx, bad, nil)
	assert.ErrorIs(t, err, helper.ErrInvalid)

	rows, err := f.svc.List(ctx, dto.SearchFilter{ClassID: &f.class, StudentName: "MEERA NAIR", Month: "MARCH"})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	rows, err = f.svc.List(ctx, dto.SearchFilter{Month: "April"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGenerateCertificateIsIdempotent(t *testing.T) {
	var uploads [][]byte
	var dirs []string
	blob := &helperOSS.MockBlobService{
		UploadBytesFn: func(_ context.Context, dir, filename, contentType string, data []byte) (string, error) {
			assert.Equal(t, "image/png", contentType)
			assert.True(t, strings.HasSuffix(filename, ".png"))
			uploads = append(uploads, data)
			dirs = append(dirs, dir)
			return "https://cdn.test/" + dir + "/" + filename, nil
		},
	}
	f := newFixture(t, blob)
	ctx := context.Background()
	fb, err := f.svc.Create(ctx, f.request("Meera Nair"), nil)
	require.NoError(t, err)

	first, err := f.svc.GenerateCertificate(ctx, fb.ID)
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, 0, first.Certificate.DownloadCount)
	require.NotNil(t, first.Certificate.CertificateURL)
	require.Len(t, uploads, 1)
	assert.Equal(t, "feedback-certificates/"+fb.ID.String(), dirs[0])

	cfg, err := png.DecodeConfig(bytes.NewReader(uploads[0]))
	require.NoError(t, err)
	assert.Equal(t, certWidth, cfg.Width)
	assert.Equal(t, certHeight, cfg.Height)

	// foto orang tua diambil dari ID card dan disimpan
	stored, err := f.repo.GetFeedback(ctx, fb.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.FatherPhotoURL)
	require.NotNil(t, stored.MotherPhotoURL)
	assert.Equal(t, "https://cdn.test/mother.webp", *stored.MotherPhotoURL)

	second, err := f.svc.GenerateCertificate(ctx, fb.ID)
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Certificate.ID, second.Certificate.ID)
	assert.Len(t, uploads, 1)
}

func TestGenerateCertificateWithoutBlobStillRecords(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	fb, err := f.svc.Create(ctx, f.request("Arjun"), nil)
	require.NoError(t, err)

	res, err := f.svc.GenerateCertificate(ctx, fb.ID)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Nil(t, res.Certificate.CertificateURL)

	_, err = f.svc.GenerateCertificate(ctx, uuid.New())
	assert.ErrorIs(t, err, helper.ErrNotFound)
}

func TestDownloadCountsAndRenders(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	fb, err := f.svc.Create(ctx, f.request("Meera Nair"), nil)
	require.NoError(t, err)

	_, err = f.svc.IncrementDownload(ctx, fb.ID)
	assert.ErrorIs(t, err, helper.ErrNotFound, "no certificate yet")

	data, name, err := f.svc.Download(ctx, fb.ID)
	require.NoError(t, err)
	assert.Equal(t, "meera-nair-march.png", name)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	cert, err := f.svc.IncrementDownload(ctx, fb.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, cert.DownloadCount)
}

func TestDeleteRemovesCertificate(t *testing.T) {
	var deleted []string
	blob := &helperOSS.MockBlobService{
		UploadBytesFn: func(_ context.Context, dir, filename, _ string, _ []byte) (string, error) {
			return "https://cdn.test/" + dir + "/" + filename, nil
		},
		DeleteByPublicURLFn: func(_ context.Context, url string) error {
			deleted = append(deleted, url)
			return nil
		},
	}
	f := newFixture(t, blob)
	ctx := context.Background()
	fb, err := f.svc.Create(ctx, f.request("Meera Nair"), nil)
	require.NoError(t, err)
	res, err := f.svc.GenerateCertificate(ctx, fb.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, fb.ID))
	assert.Equal(t, []string{*res.Certificate.CertificateURL}, deleted)
	_, err = f.repo.GetCertificate(ctx, fb.ID)
	assert.ErrorIs(t, err, helper.ErrNotFound)
}

func TestSubmitUpsertsPerStudentAndMonth(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	req := dto.SubmitRequest{
		ClassID:        f.class,
		StudentName:    "Meera Nair",
		ParentName:     "Lakshmi",
		ParentRelation: "Mother",
		Month:          "March",
		Feedback:       "Happy with the reading progress",
	}
	first, created, err := f.svc.Submit(ctx, req)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, model.SubmittedPending, first.Status)

	admin := uuid.New()
	responded, err := f.svc.Respond(ctx, first.ID, "  Thank you!  ", &admin)
	require.NoError(t, err)
	assert.Equal(t, model.SubmittedResponded, responded.Status)
	assert.Equal(t, "Thank you!", *responded.AdminFeedback)
	require.NotNil(t, responded.AdminFeedbackDate)

	req.StudentName = "  MEERA   nair "
	req.Feedback = "Please share more homework tips"
	again, created, err := f.svc.Submit(ctx, req)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, model.SubmittedPending, again.Status)
	assert.Equal(t, "Please share more homework tips", again.Feedback)

	hit, err := f.svc.CheckExisting(ctx, f.class, "meera nair", "march")
	require.NoError(t, err)
	require.NotNil(t, hit)
	miss, err := f.svc.CheckExisting(ctx, f.class, "meera nair", "April")
	require.NoError(t, err)
	assert.Nil(t, miss)

	rows, err := f.svc.ListSubmitted(ctx, dto.SubmittedFilter{Status: "pending"})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five", 9)
	assert.Equal(t, []string{"one two", "three", "four five"}, lines)
	assert.Empty(t, wrapText("   ", 10))
}
