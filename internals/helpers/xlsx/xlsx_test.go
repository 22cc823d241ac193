package helper

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildWritesHeaderAndRows(t *testing.T) {
	data, err := Build("Fees", []string{"Student", "Amount"}, [][]any{{"Ana", 1500}, {"Budi", 250.5}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Fees"}, f.GetSheetList())
	rows, err := f.GetRows("Fees")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Student", "Amount"}, rows[0])
	assert.Equal(t, []string{"Ana", "1500"}, rows[1])
	assert.Equal(t, "250.5", rows[2][1])
}
