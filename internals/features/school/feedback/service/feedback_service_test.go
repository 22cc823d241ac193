package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/features/school/feedback/dto"
	"schooldesk_backend/internals/features/school/feedback/model"
	"schooldesk_backend/internals/features/school/feedback/repository"
	helper "schooldesk_backend/internals/helpers"
)

func newSvc() (*FeedbackService, *repository.MemoryFeedbackRepository) {
	repo := repository.NewMemoryFeedbackRepository()
	clock := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	repo.Now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return NewFeedbackService(repo), repo
}

func TestCreateStartsRaised(t *testing.T) {
	svc, _ := newSvc()
	note := "  "
	m, err := svc.Create(context.Background(), uuid.New(), dto.CreateFeedbackRequest{Title: " Bus ", Description: "late", Note: &note})
	require.NoError(t, err)
	assert.Equal(t, model.StatusRaised, m.Status)
	assert.Equal(t, "Bus", m.Title)
	assert.Nil(t, m.Note)
	assert.NotNil(t, m.Replies)
}

func TestAddReplyResolvesAndOrdersReplies(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()
	parent, teacher := uuid.New(), uuid.New()
	fb, err := svc.Create(ctx, parent, dto.CreateFeedbackRequest{Title: "t", Description: "d"})
	require.NoError(t, err)

	_, err = svc.AddReply(ctx, fb.ID, teacher, "first")
	require.NoError(t, err)
	_, err = svc.AddReply(ctx, fb.ID, parent, "second")
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, fb.ID, parent, constants.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, model.StatusResolved, got.Status)
	require.Len(t, got.Replies, 2)
	assert.Equal(t, "first", got.Replies[0].Reply)
	assert.Equal(t, "second", got.Replies[1].Reply)

	_, err = svc.AddReply(ctx, uuid.New(), teacher, "x")
	assert.ErrorIs(t, err, helper.ErrNotFound)
}

func TestAddReplyFailureKeepsStatus(t *testing.T) {
	svc, repo := newSvc()
	ctx := context.Background()
	fb, err := svc.Create(ctx, uuid.New(), dto.CreateFeedbackRequest{Title: "t", Description: "d"})
	require.NoError(t, err)

	repo.FailReply = errors.New("insert failed")
	_, err = svc.AddReply(ctx, fb.ID, uuid.New(), "x")
	require.Error(t, err)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, model.StatusRaised, all[0].Status)
	assert.Empty(t, all[0].Replies)
}

func TestGetByUserAndVisibility(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()
	fa, _ := svc.Create(ctx, a, dto.CreateFeedbackRequest{Title: "a", Description: "d"})
	_, _ = svc.Create(ctx, b, dto.CreateFeedbackRequest{Title: "b", Description: "d"})

	mine, err := svc.GetByUserID(ctx, a)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "a", mine[0].Title)

	_, err = svc.GetByID(ctx, fa.ID, b, constants.RoleStudent)
	assert.ErrorIs(t, err, helper.ErrNotFound)
	_, err = svc.GetByID(ctx, fa.ID, b, constants.RoleTeacher)
	assert.NoError(t, err)

	upd, err := svc.UpdateStatus(ctx, fa.ID, model.StatusResolved)
	require.NoError(t, err)
	assert.Equal(t, model.StatusResolved, upd.Status)
}
