package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"schooldesk_backend/internals/features/school/interactive_assignments/model"
	helper "schooldesk_backend/internals/helpers"
)

var validate = validator.New()

type CreateInteractiveAssignmentRequest struct {
	Title                string     `json:"title" validate:"required,max=200"`
	Description          string     `json:"description"`
	Type                 string     `json:"type" validate:"required,oneof=MATCHING COMPLETION DRAWING COLORING MULTIPLE_CHOICE ORDERING TRACING AUDIO_READING COUNTING IDENTIFICATION PUZZLE SORTING HANDWRITING LETTER_TRACING NUMBER_RECOGNITION PICTURE_WORD_MATCHING PATTERN_COMPLETION CATEGORIZATION"`
	Status               string     `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	DueDate              *time.Time `json:"dueDate"`
	ClassID              *uuid.UUID `json:"classId"`
	SubjectID            *uuid.UUID `json:"subjectId"`
	AudioInstructions    *string    `json:"audioInstructions"`
	DifficultyLevel      *string    `json:"difficultyLevel" validate:"omitempty,oneof=beginner intermediate advanced"`
	EstimatedTimeMinutes *int       `json:"estimatedTimeMinutes" validate:"omitempty,gte=1,lte=600"`
	HasAudioFeedback     bool       `json:"hasAudioFeedback"`
	HasCelebration       bool       `json:"hasCelebration"`
	AgeGroup             *string    `json:"ageGroup" validate:"omitempty,oneof=nursery lkg ukg elementary"`
	RequiresParentHelp   bool       `json:"requiresParentHelp"`

	// Questions: payload bebas, boleh camelCase maupun snake_case.
	Questions []map[string]any `json:"questions"`
}

func (r CreateInteractiveAssignmentRequest) ToModel(createdBy *uuid.UUID) *model.InteractiveAssignmentModel {
	status := r.Status
	if status == "" {
		status = model.StatusDraft
	}
	return &model.InteractiveAssignmentModel{
		Title:                strings.TrimSpace(r.Title),
		Description:          strings.TrimSpace(r.Description),
		Type:                 r.Type,
		Status:               status,
		DueDate:              r.DueDate,
		ClassID:              r.ClassID,
		SubjectID:            r.SubjectID,
		CreatedBy:            createdBy,
		AudioInstructions:    r.AudioInstructions,
		DifficultyLevel:      r.DifficultyLevel,
		EstimatedTimeMinutes: r.EstimatedTimeMinutes,
		HasAudioFeedback:     r.HasAudioFeedback,
		HasCelebration:       r.HasCelebration,
		AgeGroup:             r.AgeGroup,
		RequiresParentHelp:   r.RequiresParentHelp,
	}
}

type UpdateInteractiveAssignmentRequest struct {
	Title                *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description          *string    `json:"description"`
	Type                 *string    `json:"type" validate:"omitempty,oneof=MATCHING COMPLETION DRAWING COLORING MULTIPLE_CHOICE ORDERING TRACING AUDIO_READING COUNTING IDENTIFICATION PUZZLE SORTING HANDWRITING LETTER_TRACING NUMBER_RECOGNITION PICTURE_WORD_MATCHING PATTERN_COMPLETION CATEGORIZATION"`
	Status               *string    `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	DueDate              *time.Time `json:"dueDate"`
	ClassID              *uuid.UUID `json:"classId"`
	SubjectID            *uuid.UUID `json:"subjectId"`
	AudioInstructions    *string    `json:"audioInstructions"`
	DifficultyLevel      *string    `json:"difficultyLevel" validate:"omitempty,oneof=beginner intermediate advanced"`
	EstimatedTimeMinutes *int       `json:"estimatedTimeMinutes" validate:"omitempty,gte=1,lte=600"`
	HasAudioFeedback     *bool      `json:"hasAudioFeedback"`
	HasCelebration       *bool      `json:"hasCelebration"`
	AgeGroup             *string    `json:"ageGroup" validate:"omitempty,oneof=nursery lkg ukg elementary"`
	RequiresParentHelp   *bool      `json:"requiresParentHelp"`
}

func (r UpdateInteractiveAssignmentRequest) ApplyToModel(m *model.InteractiveAssignmentModel) {
	if r.Title != nil {
		m.Title = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		m.Description = strings.TrimSpace(*r.Description)
	}
	if r.Type != nil {
		m.Type = *r.Type
	}
	if r.Status != nil {
		m.Status = *r.Status
	}
	if r.DueDate != nil {
		m.DueDate = r.DueDate
	}
	if r.ClassID != nil {
		m.ClassID = r.ClassID
	}
	if r.SubjectID != nil {
		m.SubjectID = r.SubjectID
	}
	if r.AudioInstructions != nil {
		m.AudioInstructions = r.AudioInstructions
	}
	if r.DifficultyLevel != nil {
		m.DifficultyLevel = r.DifficultyLevel
	}
	if r.EstimatedTimeMinutes != nil {
		m.EstimatedTimeMinutes = r.EstimatedTimeMinutes
	}
	if r.HasAudioFeedback != nil {
		m.HasAudioFeedback = *r.HasAudioFeedback
	}
	if r.HasCelebration != nil {
		m.HasCelebration = *r.HasCelebration
	}
	if r.AgeGroup != nil {
		m.AgeGroup = r.AgeGroup
	}
	if r.RequiresParentHelp != nil {
		m.RequiresParentHelp = *r.RequiresParentHelp
	}
}

/* ===============================
   Questions
=================================*/

// alias ejaan lama -> nama kanonik (camelCase)
var questionAliases = map[string]string{
	"order": "questionOrder",
	"type":  "questionType",
	"text":  "questionText",
	"data":  "questionData",
}

type QuestionInput struct {
	QuestionType      string  `json:"questionType" validate:"required"`
	QuestionText      string  `json:"questionText" validate:"required"`
	QuestionData      any     `json:"questionData"`
	QuestionOrder     int     `json:"questionOrder"`
	AudioInstructions *string `json:"audioInstructions"`
	HintText          *string `json:"hintText"`
	HintImageURL      *string `json:"hintImageUrl"`
	FeedbackCorrect   *string `json:"feedbackCorrect"`
	FeedbackIncorrect *string `json:"feedbackIncorrect"`
}

// ParseQuestions menormalkan key (snake_case/alias -> camelCase) lalu memvalidasi.
func ParseQuestions(raw []map[string]any) ([]QuestionInput, error) {
	out := make([]QuestionInput, 0, len(raw))
	for i, r := range raw {
		b, err := sonic.Marshal(helper.NormalizeKeys(r, questionAliases))
		if err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", helper.ErrInvalid, i+1, err)
		}
		var q QuestionInput
		if err := sonic.Unmarshal(b, &q); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", helper.ErrInvalid, i+1, err)
		}
		if err := validate.Struct(q); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", helper.ErrInvalid, i+1, err)
		}
		out = append(out, q)
	}
	return out, nil
}

// ToQuestionModels: urutan selalu posisi dalam array (index+1), order dari input diabaikan.
func ToQuestionModels(assignmentID uuid.UUID, qs []QuestionInput) ([]model.InteractiveQuestionModel, error) {
	out := make([]model.InteractiveQuestionModel, 0, len(qs))
	for i, q := range qs {
		data := datatypes.JSON("null")
		if q.QuestionData != nil {
			b, err := sonic.Marshal(q.QuestionData)
			if err != nil {
				return nil, fmt.Errorf("%w: question %d data: %v", helper.ErrInvalid, i+1, err)
			}
			data = b
		}
		out = append(out, model.InteractiveQuestionModel{
			AssignmentID:      assignmentID,
			QuestionType:      q.QuestionType,
			QuestionText:      strings.TrimSpace(q.QuestionText),
			QuestionData:      data,
			QuestionOrder:     i + 1,
			AudioInstructions: q.AudioInstructions,
			HintText:          q.HintText,
			HintImageURL:      q.HintImageURL,
			FeedbackCorrect:   q.FeedbackCorrect,
			FeedbackIncorrect: q.FeedbackIncorrect,
		})
	}
	return out, nil
}

type UpdateQuestionsRequest struct {
	Questions []map[string]any `json:"questions"`
}

/* ===============================
   Submissions
=================================*/

type ResponseInput struct {
	QuestionID   uuid.UUID `json:"questionId" validate:"required"`
	ResponseData any       `json:"responseData"`
	IsCorrect    *bool     `json:"isCorrect"`
}

type SubmitRequest struct {
	StudentID uuid.UUID       `json:"studentId"` // role STUDENT: diisi dari akun login
	Responses []ResponseInput `json:"responses" validate:"dive"`
}

func (r SubmitRequest) ToResponseModels() ([]model.InteractiveResponseModel, error) {
	out := make([]model.InteractiveResponseModel, 0, len(r.Responses))
	for i, x := range r.Responses {
		b, err := sonic.Marshal(x.ResponseData)
		if err != nil {
			return nil, fmt.Errorf("%w: response %d: %v", helper.ErrInvalid, i+1, err)
		}
		out = append(out, model.InteractiveResponseModel{
			QuestionID:   x.QuestionID,
			ResponseData: b,
			IsCorrect:    x.IsCorrect,
		})
	}
	return out, nil
}

type GradeRequest struct {
	Score    float64 `json:"score" validate:"gte=0,lte=100"`
	Feedback *string `json:"feedback"`
}

type ShareLinkRequest struct {
	ExpiresInDays int `json:"expiresInDays" validate:"omitempty,gte=1,lte=365"`
}
