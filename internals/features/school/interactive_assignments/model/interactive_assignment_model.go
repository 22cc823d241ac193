package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"schooldesk_backend/internals/constants"
	studentModel "schooldesk_backend/internals/features/school/students/model"
)

const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
	StatusArchived  = "ARCHIVED"

	SubmissionPending   = "PENDING"
	SubmissionSubmitted = "SUBMITTED"
	SubmissionGraded    = "GRADED"
)

// AssignmentTypes: jenis aktivitas interaktif yang dikenali.
var AssignmentTypes = []string{
	"MATCHING", "COMPLETION", "DRAWING", "COLORING", "MULTIPLE_CHOICE",
	"ORDERING", "TRACING", "AUDIO_READING", "COUNTING", "IDENTIFICATION",
	"PUZZLE", "SORTING", "HANDWRITING", "LETTER_TRACING", "NUMBER_RECOGNITION",
	"PICTURE_WORD_MATCHING", "PATTERN_COMPLETION", "CATEGORIZATION",
}

type InteractiveAssignmentModel struct {
	ID                   uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title                string     `gorm:"column:title;size:200;not null" json:"title"`
	Description          string     `gorm:"column:description" json:"description"`
	Type                 string     `gorm:"column:type;size:40;not null;index" json:"type"`
	Status               string     `gorm:"column:status;size:20;not null;default:DRAFT;index" json:"status"`
	DueDate              *time.Time `gorm:"column:due_date" json:"dueDate,omitempty"`
	ClassID              *uuid.UUID `gorm:"column:class_id;type:uuid;index" json:"classId,omitempty"`
	SubjectID            *uuid.UUID `gorm:"column:subject_id;type:uuid" json:"subjectId,omitempty"`
	CreatedBy            *uuid.UUID `gorm:"column:created_by;type:uuid" json:"createdBy,omitempty"`
	AudioInstructions    *string    `gorm:"column:audio_instructions" json:"audioInstructions,omitempty"`
	DifficultyLevel      *string    `gorm:"column:difficulty_level;size:20" json:"difficultyLevel,omitempty"`
	EstimatedTimeMinutes *int       `gorm:"column:estimated_time_minutes" json:"estimatedTimeMinutes,omitempty"`
	HasAudioFeedback     bool       `gorm:"column:has_audio_feedback;not null;default:false" json:"hasAudioFeedback"`
	HasCelebration       bool       `gorm:"column:has_celebration;not null;default:false" json:"hasCelebration"`
	AgeGroup             *string    `gorm:"column:age_group;size:20" json:"ageGroup,omitempty"`
	RequiresParentHelp   bool       `gorm:"column:requires_parent_help;not null;default:false" json:"requiresParentHelp"`

	ShareableLink          *string    `gorm:"column:shareable_link;size:16;uniqueIndex" json:"shareableLink,omitempty"`
	ShareableLinkExpiresAt *time.Time `gorm:"column:shareable_link_expires_at" json:"shareableLinkExpiresAt,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Questions []InteractiveQuestionModel `gorm:"foreignKey:AssignmentID;references:ID" json:"questions,omitempty"`
}

func (InteractiveAssignmentModel) TableName() string {
	return constants.Table(constants.InteractiveAssignmentTable)
}

type InteractiveQuestionModel struct {
	ID                uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AssignmentID      uuid.UUID      `gorm:"column:assignment_id;type:uuid;not null;index:idx_iq_assignment_order,priority:1" json:"assignmentId"`
	QuestionType      string         `gorm:"column:question_type;size:40;not null" json:"questionType"`
	QuestionText      string         `gorm:"column:question_text;not null" json:"questionText"`
	QuestionData      datatypes.JSON `gorm:"column:question_data;type:jsonb" json:"questionData"`
	QuestionOrder     int            `gorm:"column:question_order;not null;index:idx_iq_assignment_order,priority:2" json:"questionOrder"`
	AudioInstructions *string        `gorm:"column:audio_instructions" json:"audioInstructions,omitempty"`
	HintText          *string        `gorm:"column:hint_text" json:"hintText,omitempty"`
	HintImageURL      *string        `gorm:"column:hint_image_url" json:"hintImageUrl,omitempty"`
	FeedbackCorrect   *string        `gorm:"column:feedback_correct" json:"feedbackCorrect,omitempty"`
	FeedbackIncorrect *string        `gorm:"column:feedback_incorrect" json:"feedbackIncorrect,omitempty"`
}

func (InteractiveQuestionModel) TableName() string {
	return constants.Table(constants.InteractiveQuestionTable)
}

type InteractiveSubmissionModel struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AssignmentID uuid.UUID  `gorm:"column:assignment_id;type:uuid;not null;uniqueIndex:uq_is_assignment_student,priority:1" json:"assignmentId"`
	StudentID    uuid.UUID  `gorm:"column:student_id;type:uuid;not null;uniqueIndex:uq_is_assignment_student,priority:2" json:"studentId"`
	Status       string     `gorm:"column:status;size:20;not null;default:PENDING" json:"status"`
	StartedAt    time.Time  `gorm:"column:started_at;not null" json:"startedAt"`
	SubmittedAt  *time.Time `gorm:"column:submitted_at" json:"submittedAt,omitempty"`
	Score        *float64   `gorm:"column:score" json:"score,omitempty"`
	Feedback     *string    `gorm:"column:feedback" json:"feedback,omitempty"`

	Responses []InteractiveResponseModel `gorm:"foreignKey:SubmissionID;references:ID" json:"responses,omitempty"`
	Student   *studentModel.StudentModel `gorm:"foreignKey:StudentID;references:ID" json:"student,omitempty"`
}

func (InteractiveSubmissionModel) TableName() string {
	return constants.Table(constants.InteractiveSubmissionTable)
}

type InteractiveResponseModel struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SubmissionID uuid.UUID      `gorm:"column:submission_id;type:uuid;not null;index" json:"submissionId"`
	QuestionID   uuid.UUID      `gorm:"column:question_id;type:uuid;not null" json:"questionId"`
	ResponseData datatypes.JSON `gorm:"column:response_data;type:jsonb" json:"responseData"`
	IsCorrect    *bool          `gorm:"column:is_correct" json:"isCorrect,omitempty"`
}

func (InteractiveResponseModel) TableName() string {
	return constants.Table(constants.InteractiveResponseTable)
}
