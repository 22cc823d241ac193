package policies

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileClauses(t *testing.T) {
	set := Set{
		"fees": {
			{Name: "Admin can manage fees", Operation: "ALL", Expression: "is_admin()"},
			{Name: "read", Operation: "select", Expression: "auth.uid() = student_id"},
		},
		"assignments": {
			{Name: "insert", Operation: OpInsert, Expression: "is_teacher()"},
			{Name: "drop", Operation: OpDelete, Expression: "false"},
		},
	}
	sql, err := Compile("school", set)
	require.NoError(t, err)

	assert.Contains(t, sql, `DROP POLICY IF EXISTS "Admin can manage fees" ON "school"."fees";`)
	assert.Contains(t, sql, `ALTER TABLE "school"."fees" ENABLE ROW LEVEL SECURITY;`)
	assert.Contains(t, sql, `CREATE POLICY "Admin can manage fees" ON "school"."fees" FOR ALL USING (is_admin()) WITH CHECK (is_admin());`)
	assert.Contains(t, sql, `CREATE POLICY "read" ON "school"."fees" FOR SELECT USING (auth.uid() = student_id);`)
	assert.Contains(t, sql, `CREATE POLICY "insert" ON "school"."assignments" FOR INSERT WITH CHECK (is_teacher());`)
	assert.Contains(t, sql, `CREATE POLICY "drop" ON "school"."assignments" FOR DELETE USING (false);`)

	// tabel urut nama: assignments sebelum fees
	assert.Less(t, strings.Index(sql, "-- assignments"), strings.Index(sql, "-- fees"))
	// drop sebelum create dalam satu tabel
	assert.Less(t, strings.Index(sql, `DROP POLICY IF EXISTS "read"`), strings.Index(sql, `CREATE POLICY "read"`))
}

func TestCompileDeterministic(t *testing.T) {
	a, err := Compile("school", Default("school"))
	require.NoError(t, err)
	b, err := Compile("school", Default("school"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Contains(t, a, `"school"."students" WHERE user_id = auth.uid()`)
	assert.Contains(t, a, `CREATE POLICY "Students can view their class classwork" ON "school"."classwork" FOR SELECT`)
}

func TestCompileQuotesIdentifiers(t *testing.T) {
	sql, err := Compile("", Set{"t": {{Name: `say "hi"`, Operation: OpSelect, Expression: "true"}}})
	require.NoError(t, err)
	assert.Contains(t, sql, `CREATE POLICY "say ""hi""" ON "t" FOR SELECT`)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		set  Set
		msg  string
	}{
		{"unknown op", Set{"t": {{Name: "a", Operation: "TRUNCATE", Expression: "true"}}}, "unknown operation"},
		{"empty name", Set{"t": {{Name: " ", Operation: OpSelect, Expression: "true"}}}, "empty name"},
		{"empty expr", Set{"t": {{Name: "a", Operation: OpSelect}}}, "empty expression"},
		{"duplicate", Set{"t": {
			{Name: "a", Operation: OpSelect, Expression: "true"},
			{Name: "a", Operation: OpUpdate, Expression: "true"},
		}}, "duplicate name"},
		{"empty table", Set{"": {{Name: "a", Operation: OpSelect, Expression: "true"}}}, "empty table"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compile("s", tc.set)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPolicy))
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestParse(t *testing.T) {
	set, err := Parse([]byte(`{"users":[{"name":"self","operation":"SELECT","expression":"auth.uid() = id"}]}`))
	require.NoError(t, err)
	require.Len(t, set["users"], 1)
	assert.Equal(t, "self", set["users"][0].Name)

	_, err = Parse([]byte(`{"users":`))
	assert.Error(t, err)
}
