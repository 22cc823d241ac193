package service

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/features/school/assignments/dto"
	"schooldesk_backend/internals/features/school/assignments/repository"
	helper "schooldesk_backend/internals/helpers"
	"schooldesk_backend/internals/helpers/dbtime"
	helperOSS "schooldesk_backend/internals/helpers/oss"
)

// tickingRepo: created_at naik satu detik per insert.
func tickingRepo() *repository.MemoryAssignmentRepository {
	repo := repository.NewMemoryAssignmentRepository()
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	n := 0
	repo.Now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
	return repo
}

func mustDate(t *testing.T, s string) dbtime.Date {
	d, err := dbtime.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestLoadAssignmentsFiltersByUTCDateUnlessEditable(t *testing.T) {
	svc := NewAssignmentService(tickingRepo(), nil)
	ctx := context.Background()

	_, err := svc.CreateOrUpdate(ctx, dto.AssignmentRequest{Title: "Math", AssignmentDate: mustDate(t, "2024-03-01")}, nil, nil)
	require.NoError(t, err)
	_, err = svc.CreateOrUpdate(ctx, dto.AssignmentRequest{Title: "Science", AssignmentDate: mustDate(t, "2024-03-01")}, nil, nil)
	require.NoError(t, err)
	_, err = svc.CreateOrUpdate(ctx, dto.AssignmentRequest{Title: "Art", AssignmentDate: mustDate(t, "2024-03-02")}, nil, nil)
	require.NoError(t, err)

	// 2024-03-01 23:30 di UTC-05:00 = 2024-03-02 04:30 UTC
	ny := time.FixedZone("EST", -5*3600)
	rows := svc.LoadAssignments(ctx, time.Date(2024, 3, 1, 23, 30, 0, 0, ny), false)
	require.Len(t, rows, 1)
	assert.Equal(t, "Art", rows[0].Title)

	rows = svc.LoadAssignments(ctx, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), false)
	require.Len(t, rows, 2)
	assert.Equal(t, "Science", rows[0].Title, "newest first")
	assert.NotNil(t, rows[0].Files)

	rows = svc.LoadAssignments(ctx, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), true)
	assert.Len(t, rows, 3)
}

func TestLoadAssignmentsSwallowsErrors(t *testing.T) {
	repo := tickingRepo()
	repo.FailWith = errors.New("boom")
	svc := NewAssignmentService(repo, nil)

	rows := svc.LoadAssignments(context.Background(), time.Now(), false)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
	assert.Empty(t, svc.LoadAllAssignments(context.Background()))
}

func TestCreateOrUpdateSurfacesErrors(t *testing.T) {
	svc := NewAssignmentService(tickingRepo(), nil)
	ctx := context.Background()

	missing := uuid.New()
	_, err := svc.CreateOrUpdate(ctx, dto.AssignmentRequest{Title: "X"}, &missing, nil)
	assert.ErrorIs(t, err, helper.ErrNotFound)

	created, err := svc.CreateOrUpdate(ctx, dto.AssignmentRequest{Title: "Draft"}, nil, nil)
	require.NoError(t, err)
	assert.False(t, created.AssignmentDate.IsZero())

	updated, err := svc.CreateOrUpdate(ctx, dto.AssignmentRequest{Title: "Final"}, &created.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Title)
	assert.Equal(t, created.AssignmentDate.String(), updated.AssignmentDate.String())
}

func TestAttachAndRemoveFile(t *testing.T) {
	var deleted []string
	blob := &helperOSS.MockBlobService{
		UploadFileFn: func(_ context.Context, dir string, fh *multipart.FileHeader) (string, string, error) {
			return "https://cdn.test/" + dir + "/" + fh.Filename, "application/pdf", nil
		},
		DeleteByPublicURLFn: func(_ context.Context, url string) error {
			deleted = append(deleted, url)
			return nil
		},
	}
	svc := NewAssignmentService(tickingRepo(), blob)
	ctx := context.Background()

	a, err := svc.CreateOrUpdate(ctx, dto.AssignmentRequest{Title: "Essay"}, nil, nil)
	require.NoError(t, err)

	f, err := svc.AttachFile(ctx, a.ID, &multipart.FileHeader{Filename: "brief.pdf", Size: 10}, nil)
	require.NoError(t, err)
	assert.Equal(t, constants.FileTypePDF, f.FileType)
	assert.Contains(t, f.FilePath, a.ID.String())

	got, err := svc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, got.Files, 1)

	require.NoError(t, svc.RemoveFile(ctx, f.ID))
	assert.Equal(t, []string{f.FilePath}, deleted)

	_, err = svc.AttachFile(ctx, uuid.New(), &multipart.FileHeader{Filename: "x.pdf"}, nil)
	assert.ErrorIs(t, err, helper.ErrNotFound)
}

func TestAttachFileWithoutStorage(t *testing.T) {
	svc := NewAssignmentService(tickingRepo(), nil)
	_, err := svc.AttachFile(context.Background(), uuid.New(), &multipart.FileHeader{Filename: "a.pdf"}, nil)
	assert.Error(t, err)
}
