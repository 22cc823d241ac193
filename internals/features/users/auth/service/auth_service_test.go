package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/features/users/auth/dto"
	"schooldesk_backend/internals/features/users/auth/repository"
	helper "schooldesk_backend/internals/helpers"
	helperAuth "schooldesk_backend/internals/helpers/auth"
)

const secret = "svc-secret"

func newService(google GoogleVerifier) (*AuthService, *helperAuth.MemoryBlacklist) {
	bl := helperAuth.NewMemoryBlacklist(secret)
	return NewAuthService(repository.NewMemoryProfileRepository(), bl, secret, google), bl
}

func register(t *testing.T, s *AuthService, email, role string) dto.ProfileResponse {
	t.Helper()
	p, err := s.Register(context.Background(), dto.RegisterRequest{
		Email: email, Password: "password123", FullName: "User " + email, Role: role,
	})
	require.NoError(t, err)
	return dto.NewProfileResponse(p)
}

func TestRegisterAndLogin(t *testing.T) {
	s, _ := newService(nil)
	ctx := context.Background()

	p := register(t, s, "  Anita@School.TEST ", "")
	assert.Equal(t, "anita@school.test", p.Email)
	assert.Equal(t, constants.RoleStudent, p.Role)

	_, err := s.Register(ctx, dto.RegisterRequest{Email: "anita@school.test", Password: "password123", FullName: "Dup"})
	assert.ErrorIs(t, err, helper.ErrConflict)

	_, err = s.Register(ctx, dto.RegisterRequest{Email: "boss@school.test", Password: "password123", FullName: "Boss", Role: "ADMIN"})
	assert.ErrorIs(t, err, helper.ErrForbidden)

	res, err := s.Login(ctx, dto.LoginRequest{Email: "ANITA@school.test", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, p.ID, res.User.ID)

	_, err = s.Login(ctx, dto.LoginRequest{Email: "anita@school.test", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Login(ctx, dto.LoginRequest{Email: "nobody@school.test", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	s, bl := newService(nil)
	ctx := context.Background()
	register(t, s, "t@school.test", constants.RoleTeacher)

	res, err := s.Login(ctx, dto.LoginRequest{Email: "t@school.test", Password: "password123"})
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx, res.AccessToken))

	ok, _ := bl.IsBlacklisted(ctx, res.AccessToken)
	assert.True(t, ok)
}

func TestLoginGoogle(t *testing.T) {
	google := func(tok string) (*GoogleIdentity, error) {
		if tok != "good" {
			return nil, errors.New("bad token")
		}
		return &GoogleIdentity{Email: "g@school.test", Name: "Gita", Sub: "g-123"}, nil
	}
	s, _ := newService(google)
	ctx := context.Background()

	_, err := s.LoginGoogle(ctx, "bad")
	assert.ErrorIs(t, err, ErrInvalidGoogleToken)

	first, err := s.LoginGoogle(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, constants.RoleStudent, first.User.Role)

	second, err := s.LoginGoogle(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)
}

func TestLoginGoogleLinksExistingEmail(t *testing.T) {
	google := func(string) (*GoogleIdentity, error) {
		return &GoogleIdentity{Email: "t@school.test", Name: "T", Sub: "g-9"}, nil
	}
	s, _ := newService(google)
	p := register(t, s, "t@school.test", constants.RoleTeacher)

	res, err := s.LoginGoogle(context.Background(), "any")
	require.NoError(t, err)
	assert.Equal(t, p.ID, res.User.ID)
	assert.Equal(t, constants.RoleTeacher, res.User.Role)
}

func TestUpdateUserRole(t *testing.T) {
	s, _ := newService(nil)
	ctx := context.Background()
	target := register(t, s, "s@school.test", "")

	_, err := s.UpdateUserRole(ctx, constants.RoleTeacher, target.ID, constants.RoleStudent)
	assert.ErrorIs(t, err, helper.ErrForbidden)

	_, err = s.UpdateUserRole(ctx, constants.RoleAdmin, target.ID, "JANITOR")
	assert.ErrorIs(t, err, helper.ErrInvalid)

	p, err := s.UpdateUserRole(ctx, constants.RoleAdmin, target.ID, constants.RoleTeacher)
	require.NoError(t, err)
	assert.Equal(t, constants.RoleTeacher, p.Role)
}

func TestInactiveUserCannotLogin(t *testing.T) {
	s, _ := newService(nil)
	ctx := context.Background()
	register(t, s, "x@school.test", "")

	repo := s.Repo.(*repository.MemoryProfileRepository)
	p, _ := repo.FindByEmail(ctx, "x@school.test")
	p.IsActive = false
	repo2 := repository.NewMemoryProfileRepository()
	require.NoError(t, repo2.Create(ctx, p))
	s.Repo = repo2

	_, err := s.Login(ctx, dto.LoginRequest{Email: "x@school.test", Password: "password123"})
	assert.ErrorIs(t, err, ErrInactive)
}
