package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/features/school/interactive_assignments/dto"
	"schooldesk_backend/internals/features/school/interactive_assignments/model"
	"schooldesk_backend/internals/features/school/interactive_assignments/repository"
	helper "schooldesk_backend/internals/helpers"
)

func newSvc() (*InteractiveAssignmentService, *repository.MemoryRepository) {
	repo := repository.NewMemoryRepository()
	return NewInteractiveAssignmentService(repo), repo
}

func create(t *testing.T, svc *InteractiveAssignmentService, title, status string, questions ...map[string]any) *model.InteractiveAssignmentModel {
	t.Helper()
	m, err := svc.Create(context.Background(), dto.CreateInteractiveAssignmentRequest{
		Title:     title,
		Type:      "MULTIPLE_CHOICE",
		Status:    status,
		Questions: questions,
	}, nil)
	require.NoError(t, err)
	return m
}

func TestStudentsOnlySeePublished(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()
	draft := create(t, svc, "Draft", "")
	create(t, svc, "Live", model.StatusPublished)

	assert.Equal(t, model.StatusDraft, draft.Status)

	rows, err := svc.GetAll(ctx, constants.RoleStudent, repository.ListFilter{Status: model.StatusDraft})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Live", rows[0].Title)

	rows, err = svc.GetAll(ctx, constants.RoleTeacher, repository.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, err = svc.GetByID(ctx, draft.ID, constants.RoleStudent)
	assert.ErrorIs(t, err, helper.ErrNotFound)
	_, err = svc.GetByID(ctx, draft.ID, constants.RoleAdmin)
	assert.NoError(t, err)
}

func TestQuestionsNormalizedAndOrdered(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()
	m := create(t, svc, "Quiz", model.StatusPublished,
		map[string]any{"question_type": "MULTIPLE_CHOICE", "question_text": "2+2?", "question_order": 9, "question_data": map[string]any{"options": []any{"3", "4"}}},
		map[string]any{"questionType": "COUNTING", "questionText": "Count", "order": 1, "hint_text": "use fingers"},
	)
	require.Len(t, m.Questions, 2)

	got, err := svc.GetByID(ctx, m.ID, constants.RoleStudent)
	require.NoError(t, err)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, 1, got.Questions[0].QuestionOrder)
	assert.Equal(t, "2+2?", got.Questions[0].QuestionText)
	assert.JSONEq(t, `{"options":["3","4"]}`, string(got.Questions[0].QuestionData))
	assert.Equal(t, 2, got.Questions[1].QuestionOrder)
	require.NotNil(t, got.Questions[1].HintText)
	assert.Equal(t, "use fingers", *got.Questions[1].HintText)

	_, err = svc.UpdateQuestions(ctx, m.ID, []map[string]any{{"question_text": "missing type"}})
	assert.ErrorIs(t, err, helper.ErrInvalid)
}

func TestUpdateQuestionsReplacesAll(t *testing.T) {
	svc, repo := newSvc()
	ctx := context.Background()
	m := create(t, svc, "Quiz", model.StatusPublished,
		map[string]any{"questionType": "COUNTING", "questionText": "a"},
		map[string]any{"questionType": "COUNTING", "questionText": "b"},
	)

	qs, err := svc.UpdateQuestions(ctx, m.ID, []map[string]any{
		{"questionType": "SORTING", "questionText": "only one"},
	})
	require.NoError(t, err)
	require.Len(t, qs, 1)

	got, _ := svc.GetByID(ctx, m.ID, constants.RoleTeacher)
	require.Len(t, got.Questions, 1)
	assert.Equal(t, "only one", got.Questions[0].QuestionText)

	repo.FailReplace = errors.New("tx aborted")
	_, err = svc.UpdateQuestions(ctx, m.ID, []map[string]any{{"questionType": "X", "questionText": "y"}})
	require.Error(t, err)
	got, _ = svc.GetByID(ctx, m.ID, constants.RoleTeacher)
	assert.Len(t, got.Questions, 1, "failed replace keeps old questions")

	_, err = svc.UpdateQuestions(ctx, uuid.New(), nil)
	assert.ErrorIs(t, err, helper.ErrNotFound)
}

func TestSubmitAndGrade(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()
	m := create(t, svc, "Quiz", model.StatusPublished,
		map[string]any{"questionType": "COUNTING", "questionText": "How many?"},
	)
	qid := m.Questions[0].ID
	student := uuid.New()

	none, err := svc.GetStudentSubmission(ctx, m.ID, student)
	require.NoError(t, err)
	assert.Nil(t, none)

	yes := true
	sub, err := svc.Submit(ctx, m.ID, dto.SubmitRequest{
		StudentID: student,
		Responses: []dto.ResponseInput{{QuestionID: qid, ResponseData: 3, IsCorrect: &yes}},
	})
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionSubmitted, sub.Status)
	require.NotNil(t, sub.SubmittedAt)

	// submit ulang: id sama, jawaban diganti
	again, err := svc.Submit(ctx, m.ID, dto.SubmitRequest{
		StudentID: student,
		Responses: []dto.ResponseInput{{QuestionID: qid, ResponseData: 4}},
	})
	require.NoError(t, err)
	assert.Equal(t, sub.ID, again.ID)

	stored, err := svc.GetStudentSubmission(ctx, m.ID, student)
	require.NoError(t, err)
	require.Len(t, stored.Responses, 1)
	assert.JSONEq(t, "4", string(stored.Responses[0].ResponseData))

	_, err = svc.Submit(ctx, m.ID, dto.SubmitRequest{
		StudentID: student,
		Responses: []dto.ResponseInput{{QuestionID: uuid.New()}},
	})
	assert.ErrorIs(t, err, helper.ErrInvalid)

	fb := "Great counting"
	graded, err := svc.Grade(ctx, sub.ID, dto.GradeRequest{Score: 95, Feedback: &fb})
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionGraded, graded.Status)
	assert.Equal(t, 95.0, *graded.Score)

	_, err = svc.Submit(ctx, m.ID, dto.SubmitRequest{StudentID: student})
	assert.ErrorIs(t, err, helper.ErrConflict)

	subs, err := svc.GetSubmissions(ctx, m.ID)
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}

func TestSubmitDraftRejected(t *testing.T) {
	svc, _ := newSvc()
	m := create(t, svc, "Draft", "")
	_, err := svc.Submit(context.Background(), m.ID, dto.SubmitRequest{StudentID: uuid.New()})
	assert.ErrorIs(t, err, helper.ErrInvalid)
}

func TestShareableLinkExpires(t *testing.T) {
	svc, _ := newSvc()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return now })
	ctx := context.Background()
	m := create(t, svc, "Share", model.StatusPublished)

	shared, err := svc.GenerateShareableLink(ctx, m.ID, 7)
	require.NoError(t, err)
	require.NotNil(t, shared.ShareableLink)
	assert.Len(t, *shared.ShareableLink, 8)

	got, err := svc.GetByShareableLink(ctx, *shared.ShareableLink)
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)

	now = now.AddDate(0, 0, 8)
	_, err = svc.GetByShareableLink(ctx, *shared.ShareableLink)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusGone, fe.Code)
}
