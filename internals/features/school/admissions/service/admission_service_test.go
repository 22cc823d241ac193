package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooldesk_backend/internals/features/school/admissions/dto"
	"schooldesk_backend/internals/features/school/admissions/model"
	"schooldesk_backend/internals/features/school/admissions/repository"
	helper "schooldesk_backend/internals/helpers"
	helperOSS "schooldesk_backend/internals/helpers/oss"
)

func newSvc(blob helperOSS.BlobService) (*AdmissionService, *repository.MemoryAdmissionRepository) {
	repo := repository.NewMemoryAdmissionRepository()
	base := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	n := 0
	tick := func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Hour)
	}
	repo.Now = tick
	svc := NewAdmissionService(repo, blob)
	svc.Now = tick
	return svc, repo
}

func enquiry(name, grade string) dto.EnquiryRequest {
	return dto.EnquiryRequest{
		StudentName:   name,
		ParentName:    "Parent of " + name,
		Gender:        "Female",
		Email:         " " + strings.ToUpper(name) + "@Mail.test ",
		ContactNumber: "0812",
		GradeApplying: grade,
		Address:       "Jl. Mawar 1",
	}
}

func uploadingBlob() *helperOSS.MockBlobService {
	return &helperOSS.MockBlobService{
		UploadFileFn: func(_ context.Context, dir string, fh *multipart.FileHeader) (string, string, error) {
			return "https://cdn.test/" + dir + "/" + fh.Filename, "application/pdf", nil
		},
	}
}

func TestCreateEnquiryStartsProcess(t *testing.T) {
	svc, _ := newSvc(nil)
	ctx := context.Background()

	m, err := svc.CreateEnquiry(ctx, enquiry("Nadia", "Grade 1"))
	require.NoError(t, err)
	assert.Equal(t, model.StatusNew, m.Status)
	assert.Equal(t, "nadia@mail.test", m.Email)
	assert.False(t, m.AppliedDate.IsZero())

	docs, err := svc.Documents(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, docs, len(model.RequiredDocuments))
	for _, d := range model.RequiredDocuments {
		assert.Equal(t, model.DocMissing, docs[d].Status, d)
	}
}

func TestProgressTimeline(t *testing.T) {
	p := BuildProgress(model.StatusScheduledInterview, nil)
	assert.Equal(t, 3, p.CurrentStep)
	assert.Equal(t, []string{model.StatusNew, model.StatusInReview}, p.CompletedSteps)
	assert.Equal(t, model.StatusPendingDocuments, p.NextStep)
	require.Len(t, p.Timeline, len(model.Track))
	assert.True(t, p.Timeline[2].Current)
	assert.False(t, p.Timeline[3].Completed)

	last := BuildProgress(model.StatusEnrolled, nil)
	assert.Equal(t, "", last.NextStep)
	assert.Len(t, last.CompletedSteps, len(model.Track)-1)

	rejected := BuildProgress(model.StatusRejected, nil)
	assert.Equal(t, 0, rejected.CurrentStep)
	assert.Empty(t, rejected.CompletedSteps)
	assert.Equal(t, "", rejected.NextStep)
}

func TestUpdateProgressWritesStatusProcessAndNote(t *testing.T) {
	svc, _ := newSvc(nil)
	ctx := context.Background()
	m, err := svc.CreateEnquiry(ctx, enquiry("Bima", "Grade 2"))
	require.NoError(t, err)

	staff := uuid.New()
	class := uuid.New()
	interview := time.Date(2024, 4, 10, 3, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	status := model.StatusApproved
	p, err := svc.UpdateProgress(ctx, m.ID, dto.ProgressUpdateRequest{
		InterviewDate:   &interview,
		AssignedClassID: &class,
		Status:          &status,
		Notes:           " interview went well ",
	}, &staff)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, p.CurrentStatus)
	require.NotNil(t, p.InterviewDate)
	assert.Equal(t, time.UTC, p.InterviewDate.Location())
	assert.Equal(t, &class, p.AssignedClassID)

	notes, err := svc.Notes(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "interview went well", notes[0].Content)
	assert.Equal(t, &staff, notes[0].CreatedBy)

	got, err := svc.GetEnquiry(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Process)
	assert.Equal(t, &staff, got.Process.ApprovedBy)

	bad := "HIRED"
	_, err = svc.UpdateProgress(ctx, m.ID, dto.ProgressUpdateRequest{Status: &bad}, nil)
	assert.ErrorIs(t, err, helper.ErrInvalid)
}

func TestUpdateProgressIsAllOrNothing(t *testing.T) {
	svc, repo := newSvc(nil)
	ctx := context.Background()
	m, err := svc.CreateEnquiry(ctx, enquiry("Citra", "Grade 3"))
	require.NoError(t, err)

	repo.FailProgress = errors.New("db down")
	status := model.StatusInReview
	_, err = svc.UpdateProgress(ctx, m.ID, dto.ProgressUpdateRequest{Status: &status, Notes: "moved"}, nil)
	require.Error(t, err)

	got, err := svc.GetEnquiry(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusNew, got.Status)
	notes, err := svc.Notes(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestUploadAndVerifyDocument(t *testing.T) {
	svc, _ := newSvc(uploadingBlob())
	ctx := context.Background()
	m, err := svc.CreateEnquiry(ctx, enquiry("Dewi", "Grade 1"))
	require.NoError(t, err)

	_, err = svc.VerifyDocument(ctx, m.ID, model.DocBirthCertificate, dto.VerifyDocumentRequest{Status: model.DocVerified})
	assert.ErrorIs(t, err, helper.ErrInvalid, "nothing uploaded yet")

	st, err := svc.UploadDocument(ctx, m.ID, "birth_certificate", &multipart.FileHeader{Filename: "akta.pdf", Size: 1024})
	require.NoError(t, err)
	assert.Equal(t, model.DocPending, st.Status)
	require.Len(t, st.Submitted, 1)
	assert.Contains(t, st.Submitted[0].URL, "admissions/"+m.ID.String()+"/birth_certificate/")

	st, err = svc.VerifyDocument(ctx, m.ID, model.DocBirthCertificate, dto.VerifyDocumentRequest{Status: model.DocRejected, Remarks: "blurry"})
	require.NoError(t, err)
	assert.Equal(t, model.DocRejected, st.Status)
	assert.Equal(t, "blurry", st.RejectionReason)

	// upload ulang setelah ditolak: kembali PENDING, alasan dihapus
	st, err = svc.UploadDocument(ctx, m.ID, model.DocBirthCertificate, &multipart.FileHeader{Filename: "akta-2.pdf", Size: 1024})
	require.NoError(t, err)
	assert.Equal(t, model.DocPending, st.Status)
	assert.Empty(t, st.RejectionReason)
	assert.Len(t, st.Submitted, 2)

	docs, err := svc.Documents(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DocMissing, docs[model.DocAddressProof].Status)
	assert.Len(t, docs[model.DocBirthCertificate].Submitted, 2)
}

func TestUploadDocumentValidation(t *testing.T) {
	svc, _ := newSvc(uploadingBlob())
	ctx := context.Background()
	m, err := svc.CreateEnquiry(ctx, enquiry("Eka", "Grade 1"))
	require.NoError(t, err)

	_, err = svc.UploadDocument(ctx, m.ID, "DIPLOMA", &multipart.FileHeader{Filename: "a.pdf", Size: 1})
	assert.ErrorIs(t, err, helper.ErrInvalid)

	_, err = svc.UploadDocument(ctx, m.ID, model.DocPassportPhoto, &multipart.FileHeader{Filename: "a.exe", Size: 1})
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusUnsupportedMediaType, fe.Code)

	_, err = svc.UploadDocument(ctx, m.ID, model.DocPassportPhoto, &multipart.FileHeader{Filename: "a.png", Size: 6 * 1024 * 1024})
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusRequestEntityTooLarge, fe.Code)

	noStorage, _ := newSvc(nil)
	_, err = noStorage.UploadDocument(ctx, m.ID, model.DocPassportPhoto, &multipart.FileHeader{Filename: "a.png", Size: 1})
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusServiceUnavailable, fe.Code)
}

func TestCommunicationTypeMapping(t *testing.T) {
	svc, _ := newSvc(nil)
	ctx := context.Background()
	m, err := svc.CreateEnquiry(ctx, enquiry("Fajar", "Grade 4"))
	require.NoError(t, err)

	c, err := svc.AddCommunication(ctx, m.ID, dto.CommunicationRequest{Type: "in_person", Message: "Campus tour", Notes: "brought sibling"}, nil)
	require.NoError(t, err)
	assert.Equal(t, model.CommMeeting, c.CommunicationType)
	assert.Equal(t, model.DirectionOutgoing, c.Direction)
	assert.Equal(t, "Campus tour\n\nAdditional Notes: brought sibling", c.Notes)

	_, err = svc.AddCommunication(ctx, m.ID, dto.CommunicationRequest{Type: "phone", Message: "Called back", Direction: "incoming"}, nil)
	require.NoError(t, err)

	rows, err := svc.Communications(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, model.CommPhone, rows[0].CommunicationType, "newest first")
	assert.Equal(t, model.DirectionIncoming, rows[0].Direction)

	_, err = svc.Communications(ctx, uuid.New())
	assert.ErrorIs(t, err, helper.ErrNotFound)
}

func TestListEnquiriesAndStats(t *testing.T) {
	svc, _ := newSvc(nil)
	ctx := context.Background()
	a, _ := svc.CreateEnquiry(ctx, enquiry("Gita", "Grade 1"))
	_, _ = svc.CreateEnquiry(ctx, enquiry("Hadi", "Grade 2"))
	c, _ := svc.CreateEnquiry(ctx, enquiry("Indra", "Grade 1"))
	_, err := svc.UpdateStatus(ctx, a.ID, model.StatusRejected)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, c.ID, model.StatusInReview)
	require.NoError(t, err)

	rows, total, err := svc.ListEnquiries(ctx, dto.ListParams{GradeApplying: "Grade 1"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, "Indra", rows[0].StudentName, "newest application first")

	rows, _, err = svc.ListEnquiries(ctx, dto.ListParams{Search: "hadi@"})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	rows, total, err = svc.ListEnquiries(ctx, dto.ListParams{Statuses: []string{model.StatusNew, model.StatusInReview}, Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, rows, 1)

	_, _, err = svc.ListEnquiries(ctx, dto.ListParams{Statuses: []string{"LOST"}})
	assert.ErrorIs(t, err, helper.ErrInvalid)

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, st.TotalApplications)
	assert.EqualValues(t, 1, st.NewApplications)
	assert.EqualValues(t, 1, st.InReview)
	assert.EqualValues(t, 1, st.Rejected)
}
