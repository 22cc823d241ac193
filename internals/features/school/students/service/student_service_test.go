package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/features/school/students/dto"
	"schooldesk_backend/internals/features/school/students/model"
	"schooldesk_backend/internals/features/school/students/repository"
	authRepo "schooldesk_backend/internals/features/users/auth/repository"
	helper "schooldesk_backend/internals/helpers"
)

func newSvc(seed ...model.StudentModel) (*StudentService, *repository.MemoryStudentRepository, *authRepo.MemoryProfileRepository) {
	repo := repository.NewMemoryStudentRepository(seed...)
	profiles := authRepo.NewMemoryProfileRepository()
	return NewStudentService(repo, profiles), repo, profiles
}

func TestCreateBasicKeepsFields(t *testing.T) {
	svc, _, _ := newSvc()
	m, err := svc.CreateBasic(context.Background(), dto.LegacyCreateRequest{
		Name: "Asha", Grade: "5", Section: "B", RollNo: "12",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, m.ID)
	assert.Equal(t, "Asha", m.Name)
	assert.Equal(t, "5", m.Grade)
	assert.Equal(t, "B", m.Section)
	assert.Equal(t, "12", m.RollNo)
}

func TestCreateMakesParentAccount(t *testing.T) {
	svc, _, profiles := newSvc()
	ctx := context.Background()

	res, err := svc.Create(ctx, dto.CreateStudentRequest{
		AdmissionNumber: "A-001",
		Name:            "Ravi  Kumar",
		ParentEmail:     "Parent@Mail.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "parent@mail.com", res.Credentials.Email)
	assert.Equal(t, "Welcome@A-001", res.Credentials.Password)
	assert.Equal(t, "ravi.kumar", res.Credentials.Username)

	p, err := profiles.FindByEmail(ctx, "parent@mail.com")
	require.NoError(t, err)
	assert.Equal(t, constants.RoleStudent, p.Role)
	require.NotNil(t, p.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*p.PasswordHash), []byte("Welcome@A-001")))
	require.NotNil(t, res.Student.UserID)
	assert.Equal(t, p.ID, *res.Student.UserID)

	// saudara: akun sama, tanpa password baru
	res2, err := svc.Create(ctx, dto.CreateStudentRequest{
		AdmissionNumber: "A-002",
		Name:            "Mira Kumar",
		ParentEmail:     "parent@mail.com",
	})
	require.NoError(t, err)
	assert.Empty(t, res2.Credentials.Password)
	assert.Equal(t, p.ID, *res2.Student.UserID)

	_, err = svc.Create(ctx, dto.CreateStudentRequest{
		AdmissionNumber: "A-002",
		Name:            "Duplicate",
		ParentEmail:     "parent@mail.com",
	})
	assert.ErrorIs(t, err, helper.ErrConflict)
}

func TestUpdateAndDelete(t *testing.T) {
	svc, _, _ := newSvc(model.StudentModel{Name: "Old"})
	ctx := context.Background()
	all, _ := svc.FindMany(ctx, nil)
	require.Len(t, all, 1)

	name := "New"
	m, err := svc.Update(ctx, all[0].ID, dto.UpdateStudentRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New", m.Name)

	require.NoError(t, svc.Delete(ctx, m.ID))
	_, err = svc.FindOne(ctx, m.ID)
	assert.ErrorIs(t, err, helper.ErrNotFound)
}

func TestStudentsByClassPrefersIDCards(t *testing.T) {
	class := uuid.New()
	svc, repo, _ := newSvc(
		model.StudentModel{Name: "Zed", ClassID: &class},
		model.StudentModel{Name: "Amy", ClassID: &class},
		model.StudentModel{Name: "Other"},
	)
	ctx := context.Background()

	rows, err := svc.StudentsByClass(ctx, class)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Amy", rows[0].Name)
	assert.Nil(t, rows[0].PhotoURL)

	photo := "https://cdn.example.com/amy.webp"
	repo.IDCards[class] = []model.ClassStudent{{ID: uuid.New(), Name: "Amy", PhotoURL: &photo}}
	rows, err = svc.StudentsByClass(ctx, class)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, photo, *rows[0].PhotoURL)
}

func TestUsername(t *testing.T) {
	assert.Equal(t, "budi.santoso", Username("  Budi   Santoso "))
}
