package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreExpiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore().WithClock(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))
	b, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", string(b))

	now = now.Add(time.Minute)
	_, ok, _ = s.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryStoreDeletePrefix(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.Set(ctx, "classes:all", []byte("1"), 0)
	_ = s.Set(ctx, "classes:school:x", []byte("2"), 0)
	_ = s.Set(ctx, "places:reviews", []byte("3"), 0)

	require.NoError(t, s.DeletePrefix(ctx, "classes:"))
	_, ok, _ := s.Get(ctx, "classes:all")
	assert.False(t, ok)
	_, ok, _ = s.Get(ctx, "places:reviews")
	assert.True(t, ok)
}

func TestRemember(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	v, err := Remember(ctx, s, "list", time.Hour, load)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v)

	v, err = Remember(ctx, s, "list", time.Hour, load)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v)
	assert.Equal(t, 1, calls)

	_, err = Remember(ctx, s, "other", time.Hour, func(context.Context) (int, error) {
		return 0, errors.New("boom")
	})
	assert.EqualError(t, err, "boom")
	_, ok, _ := s.Get(ctx, "other")
	assert.False(t, ok)
}

func TestGetJSONCorruptIsMiss(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.Set(ctx, "bad", []byte("{not json"), 0)

	v, ok, err := GetJSON[map[string]int](ctx, s, "bad")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}
