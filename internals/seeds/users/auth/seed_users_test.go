package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"schooldesk_backend/internals/features/users/auth/repository"
)

func TestSeedUsersSkipsExistingAndInvalid(t *testing.T) {
	repo := repository.NewMemoryProfileRepository()
	ctx := context.Background()
	in := []UserSeed{
		{Email: " Admin@School.test ", Password: "secret", Role: "admin", FullName: "Admin"},
		{Email: "x@school.test", Password: "secret", Role: "OWNER"},
		{Email: "", Password: "secret", Role: "TEACHER"},
	}

	n, err := SeedUsers(ctx, repo, in)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	p, err := repo.FindByEmail(ctx, "admin@school.test")
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", p.Role)
	require.NotNil(t, p.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*p.PasswordHash), []byte("secret")))

	n, err = SeedUsers(ctx, repo, in)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
