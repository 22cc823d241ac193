package helper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestIssueAndParseAccessToken(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	uid := uuid.New()

	raw, exp, err := IssueAccessToken(testSecret, uid, "TEACHER", "t@school.test", now, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), exp)

	claims, err := ParseAccessToken(testSecret, raw, now.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, uid.String(), claims.Subject)
	assert.Equal(t, "TEACHER", claims.Role)
	assert.Equal(t, "t@school.test", claims.Email)
}

func TestParseAccessTokenRejects(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	raw, _, err := IssueAccessToken(testSecret, uuid.New(), "STUDENT", "", now, time.Minute)
	require.NoError(t, err)

	_, err = ParseAccessToken("other-secret", raw, now)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = ParseAccessToken(testSecret, raw, now.Add(2*time.Minute))
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, err = ParseAccessToken(testSecret, "", now)
	assert.ErrorIs(t, err, ErrTokenMissing)

	_, err = ParseAccessToken(testSecret, "not.a.jwt", now)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestMemoryBlacklist(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	bl := NewMemoryBlacklist(testSecret)
	bl.NowFunc = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, bl.Add(ctx, "tok-a", now.Add(time.Hour)))
	require.NoError(t, bl.Add(ctx, "tok-b", now.Add(-time.Hour)))

	ok, _ := bl.IsBlacklisted(ctx, "tok-a")
	assert.True(t, ok)
	ok, _ = bl.IsBlacklisted(ctx, "tok-b")
	assert.False(t, ok, "expired entry no longer blocks")
	ok, _ = bl.IsBlacklisted(ctx, "tok-c")
	assert.False(t, ok)

	n, err := bl.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
