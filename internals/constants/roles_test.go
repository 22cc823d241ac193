package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		user, required string
		want           bool
	}{
		{RoleAdmin, RoleTeacher, true},
		{RoleAdmin, RoleStudent, true},
		{RoleTeacher, RoleStudent, true},
		{RoleTeacher, RoleAdmin, false},
		{RoleStudent, RoleTeacher, false},
		{"GUEST", RoleStudent, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HasPermission(tt.user, tt.required), "%s -> %s", tt.user, tt.required)
	}
}

func TestTableIsSchemaQualified(t *testing.T) {
	old := Schema
	defer func() { Schema = old }()

	Schema = "school"
	assert.Equal(t, "school.students", Table(StudentTable))
	Schema = ""
	assert.Equal(t, "students", Table(StudentTable))
}
