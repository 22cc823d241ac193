package service

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/features/school/classwork/dto"
	"schooldesk_backend/internals/features/school/classwork/repository"
	studentModel "schooldesk_backend/internals/features/school/students/model"
	studentRepo "schooldesk_backend/internals/features/school/students/repository"
	helper "schooldesk_backend/internals/helpers"
	"schooldesk_backend/internals/helpers/dbtime"
	helperOSS "schooldesk_backend/internals/helpers/oss"
)

type fixture struct {
	svc     *ClassworkService
	classA  uuid.UUID
	classB  uuid.UUID
	student Viewer
	teacher Viewer
}

func newFixture(t *testing.T, blob helperOSS.BlobService) fixture {
	t.Helper()
	classA, classB := uuid.New(), uuid.New()
	userID := uuid.New()
	students := studentRepo.NewMemoryStudentRepository(
		studentModel.StudentModel{ID: uuid.New(), Name: "Asha", ClassID: &classA, UserID: &userID},
	)
	repo := repository.NewMemoryClassworkRepository()
	base := time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC)
	n := 0
	repo.Now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	return fixture{
		svc:     NewClassworkService(repo, students, blob),
		classA:  classA,
		classB:  classB,
		student: Viewer{Role: constants.RoleStudent, UserID: userID},
		teacher: Viewer{Role: constants.RoleTeacher, UserID: uuid.New()},
	}
}

func day(t *testing.T, s string) dbtime.Date {
	d, err := dbtime.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestListScopesStudentsToOwnClass(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, dto.ClassworkRequest{Title: "Fractions", ClassID: f.classA, Date: day(t, "2024-06-03")}, nil)
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, dto.ClassworkRequest{Title: "Poems", ClassID: f.classA, Date: day(t, "2024-06-04")}, nil)
	require.NoError(t, err)
	other, err := f.svc.Create(ctx, dto.ClassworkRequest{Title: "Maps", ClassID: f.classB, Date: day(t, "2024-06-05")}, nil)
	require.NoError(t, err)

	rows, err := f.svc.List(ctx, f.student, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Poems", rows[0].Title, "latest date first")

	_, err = f.svc.List(ctx, f.student, &f.classB)
	assert.Error(t, err)

	_, err = f.svc.GetByID(ctx, f.student, other.ID)
	assert.ErrorIs(t, err, helper.ErrForbidden)

	rows, err = f.svc.List(ctx, f.teacher, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	rows, err = f.svc.List(ctx, f.teacher, &f.classB)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Maps", rows[0].Title)
}

func TestStudentWithoutClassSeesNothing(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.svc.Create(ctx, dto.ClassworkRequest{Title: "Fractions", ClassID: f.classA}, nil)
	require.NoError(t, err)

	rows, err := f.svc.List(ctx, Viewer{Role: constants.RoleStudent, UserID: uuid.New()}, nil)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestCreateDefaultsDateAndUpdateKeepsIt(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	m, err := f.svc.Create(ctx, dto.ClassworkRequest{Title: "  Reading ", ClassID: f.classA}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Reading", m.Title)
	assert.False(t, m.Date.IsZero())

	updated, err := f.svc.Update(ctx, m.ID, dto.ClassworkRequest{Title: "Reading 2", ClassID: f.classB})
	require.NoError(t, err)
	assert.Equal(t, m.Date.String(), updated.Date.String())
	assert.Equal(t, f.classB, updated.ClassID)

	_, err = f.svc.Update(ctx, uuid.New(), dto.ClassworkRequest{Title: "x", ClassID: f.classA})
	assert.ErrorIs(t, err, helper.ErrNotFound)
}

func TestDeleteRemovesAttachments(t *testing.T) {
	var deleted []string
	blob := &helperOSS.MockBlobService{
		UploadFileFn: func(_ context.Context, dir string, fh *multipart.FileHeader) (string, string, error) {
			return "https://cdn.test/" + dir + "/" + fh.Filename, "image/png", nil
		},
		DeleteByPublicURLFn: func(_ context.Context, url string) error {
			deleted = append(deleted, url)
			return nil
		},
	}
	f := newFixture(t, blob)
	ctx := context.Background()

	m, err := f.svc.Create(ctx, dto.ClassworkRequest{Title: "Lab", ClassID: f.classA}, nil)
	require.NoError(t, err)
	file, err := f.svc.AttachFile(ctx, m.ID, &multipart.FileHeader{Filename: "board.png", Size: 10}, nil)
	require.NoError(t, err)
	assert.Equal(t, constants.FileTypeImage, file.FileType)

	got, err := f.svc.GetByID(ctx, f.student, m.ID)
	require.NoError(t, err)
	require.Len(t, got.Files, 1)

	require.NoError(t, f.svc.Delete(ctx, m.ID))
	assert.Equal(t, []string{file.FilePath}, deleted)
	_, err = f.svc.GetByID(ctx, f.teacher, m.ID)
	assert.ErrorIs(t, err, helper.ErrNotFound)
}
