package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSnake(t *testing.T) {
	cases := map[string]string{
		"classId":       "class_id",
		"rollNo":        "roll_no",
		"hintImageUrl":  "hint_image_url",
		"hintImageURL":  "hint_image_url",
		"studentID":     "student_id",
		"already_snake": "already_snake",
		"name":          "name",
	}
	for in, want := range cases {
		assert.Equal(t, want, ToSnake(in), in)
	}
}

func TestToCamel(t *testing.T) {
	cases := map[string]string{
		"class_id":         "classId",
		"question_order":   "questionOrder",
		"hint_image_url":   "hintImageUrl",
		"questionText":     "questionText",
		"ID":               "id",
		"feedback-correct": "feedbackCorrect",
	}
	for in, want := range cases {
		assert.Equal(t, want, ToCamel(in), in)
	}
}

func TestColumnMapResolve(t *testing.T) {
	m := ColumnMap{"createdAt": "created_at", "name": "name"}
	assert.Equal(t, "created_at", m.Resolve("createdAt", "name"))
	assert.Equal(t, "created_at", m.Resolve("created_at", "name"))
	assert.Equal(t, "name", m.Resolve("drop table", "name"))
}

func TestNewColumnMapDerivesSnakeColumns(t *testing.T) {
	m := NewColumnMap("createdAt", "studentName", "downloadCount")
	assert.Equal(t, "student_name", m["studentName"])
	assert.Equal(t, "download_count", m.Resolve("download_count", "createdAt"))
	assert.Equal(t, "created_at", m.Resolve("unknown", "createdAt"))
}

func TestNormalizeKeysPrefersCamel(t *testing.T) {
	in := map[string]any{
		"question_text":  "snake",
		"questionText":   "camel",
		"question_order": 3,
		"hint_text":      "hint",
	}
	out := NormalizeKeys(in, map[string]string{"order": "questionOrder"})
	assert.Equal(t, "camel", out["questionText"])
	assert.Equal(t, 3, out["questionOrder"])
	assert.Equal(t, "hint", out["hintText"])
	assert.NotContains(t, out, "question_text")

	out = NormalizeKeys(map[string]any{"order": 2}, map[string]string{"order": "questionOrder"})
	assert.Equal(t, 2, out["questionOrder"])
}
