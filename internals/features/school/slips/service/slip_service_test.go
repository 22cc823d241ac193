package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"schooldesk_backend/internals/features/school/slips/dto"
	"schooldesk_backend/internals/features/school/slips/repository"
	helper "schooldesk_backend/internals/helpers"
)

func newSvc() *SlipService {
	repo := repository.NewMemorySlipRepository()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.Now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return NewSlipService(repo)
}

func TestFieldsCRUD(t *testing.T) {
	svc := newSvc()
	ctx := context.Background()

	_, err := svc.AddField(ctx, "   ")
	assert.ErrorIs(t, err, helper.ErrInvalid)

	a, err := svc.AddField(ctx, " Name ")
	require.NoError(t, err)
	assert.Equal(t, "Name", a.Name)
	_, err = svc.AddField(ctx, "Amount")
	require.NoError(t, err)

	fields, err := svc.GetFields(ctx)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "Amount", fields[0].Name)

	upd, err := svc.UpdateField(ctx, a.ID, "Student Name")
	require.NoError(t, err)
	assert.Equal(t, "Student Name", upd.Name)

	require.NoError(t, svc.RemoveField(ctx, a.ID))
	assert.ErrorIs(t, svc.RemoveField(ctx, a.ID), helper.ErrNotFound)
}

func TestTemplateMappings(t *testing.T) {
	svc := newSvc()
	ctx := context.Background()
	f1, _ := svc.AddField(ctx, "Name")
	f2, _ := svc.AddField(ctx, "Amount")
	f3, _ := svc.AddField(ctx, "Month")

	_, err := svc.CreateTemplate(ctx, dto.CreateTemplateRequest{Name: "Fee slip", FieldIDs: []uuid.UUID{f1.ID, uuid.New()}})
	assert.ErrorIs(t, err, helper.ErrInvalid)

	tpl, err := svc.CreateTemplate(ctx, dto.CreateTemplateRequest{Name: "Fee slip", FieldIDs: []uuid.UUID{f2.ID, f1.ID, f2.ID}})
	require.NoError(t, err)
	require.Len(t, tpl.Fields, 2)
	assert.Equal(t, "Amount", tpl.Fields[0].Name)
	assert.Equal(t, "Name", tpl.Fields[1].Name)

	ids := []uuid.UUID{f3.ID}
	tpl, err = svc.UpdateTemplate(ctx, tpl.ID, dto.UpdateTemplateRequest{FieldIDs: &ids})
	require.NoError(t, err)
	assert.Equal(t, "Fee slip", tpl.Name)
	require.Len(t, tpl.Fields, 1)
	assert.Equal(t, "Month", tpl.Fields[0].Name)

	name := "Monthly slip"
	tpl, err = svc.UpdateTemplate(ctx, tpl.ID, dto.UpdateTemplateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Monthly slip", tpl.Name)
	assert.Len(t, tpl.Fields, 1)

	// field yang dihapus hilang dari template
	require.NoError(t, svc.RemoveField(ctx, f3.ID))
	tpl, err = svc.GetTemplate(ctx, tpl.ID)
	require.NoError(t, err)
	assert.Empty(t, tpl.Fields)
}

func TestSlipDataValidatedAgainstTemplate(t *testing.T) {
	svc := newSvc()
	ctx := context.Background()
	name, _ := svc.AddField(ctx, "Name")
	amount, _ := svc.AddField(ctx, "Amount")
	other, _ := svc.AddField(ctx, "Other")
	tpl, err := svc.CreateTemplate(ctx, dto.CreateTemplateRequest{Name: "Slip", FieldIDs: []uuid.UUID{name.ID, amount.ID}})
	require.NoError(t, err)

	_, err = svc.CreateSlipData(ctx, dto.SlipDataRequest{TemplateID: tpl.ID, Values: map[string]any{other.ID.String(): "x"}})
	assert.ErrorIs(t, err, helper.ErrInvalid)
	_, err = svc.CreateSlipData(ctx, dto.SlipDataRequest{TemplateID: tpl.ID, Values: map[string]any{"name": "x"}})
	assert.ErrorIs(t, err, helper.ErrInvalid)
	_, err = svc.CreateSlipData(ctx, dto.SlipDataRequest{TemplateID: tpl.ID, Values: map[string]any{name.ID.String(): []any{"x"}}})
	assert.ErrorIs(t, err, helper.ErrInvalid)
	_, err = svc.CreateSlipData(ctx, dto.SlipDataRequest{TemplateID: uuid.New(), Values: map[string]any{}})
	assert.ErrorIs(t, err, helper.ErrNotFound)

	d, err := svc.CreateSlipData(ctx, dto.SlipDataRequest{TemplateID: tpl.ID, Values: map[string]any{
		name.ID.String():   " Ana ",
		amount.ID.String(): float64(1500),
	}})
	require.NoError(t, err)
	assert.Equal(t, "Ana", d.Values[name.ID.String()])

	d, err = svc.UpdateSlipData(ctx, d.ID, map[string]any{name.ID.String(): "Budi"})
	require.NoError(t, err)
	assert.Equal(t, "Budi", d.Values[name.ID.String()])
	_, ok := d.Values[amount.ID.String()]
	assert.False(t, ok)

	_, err = svc.UpdateSlipData(ctx, d.ID, map[string]any{other.ID.String(): "x"})
	assert.ErrorIs(t, err, helper.ErrInvalid)

	rows, err := svc.GetSlipData(ctx, &tpl.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	require.NoError(t, svc.DeleteTemplate(ctx, tpl.ID))
	rows, err = svc.GetSlipData(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestExportUsesFieldNamesAsHeader(t *testing.T) {
	svc := newSvc()
	ctx := context.Background()
	name, _ := svc.AddField(ctx, "Name")
	amount, _ := svc.AddField(ctx, "Amount")
	tpl, err := svc.CreateTemplate(ctx, dto.CreateTemplateRequest{Name: "Fee Slip", FieldIDs: []uuid.UUID{name.ID, amount.ID}})
	require.NoError(t, err)
	for _, n := range []string{"Ana", "Budi"} {
		_, err := svc.CreateSlipData(ctx, dto.SlipDataRequest{TemplateID: tpl.ID, Values: map[string]any{name.ID.String(): n}})
		require.NoError(t, err)
	}

	data, filename, err := svc.Export(ctx, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "fee-slip.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	rows, err := f.GetRows("Slips")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"No", "Name", "Amount", "Created At"}, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "Ana", rows[1][1])
	assert.Equal(t, "Budi", rows[2][1])
}
