package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/school/slips/model"
	helper "schooldesk_backend/internals/helpers"
)

type SlipRepository interface {
	ListFields(ctx context.Context) ([]model.SlipFieldModel, error)
	// FindFields mengembalikan field sesuai urutan ids; id yang tidak ada dilewati.
	FindFields(ctx context.Context, ids []uuid.UUID) ([]model.SlipFieldModel, error)
	CreateField(ctx context.Context, m *model.SlipFieldModel) error
	RenameField(ctx context.Context, id uuid.UUID, name string) (*model.SlipFieldModel, error)
	DeleteField(ctx context.Context, id uuid.UUID) error

	ListTemplates(ctx context.Context) ([]model.SlipTemplateModel, error)
	GetTemplate(ctx context.Context, id uuid.UUID) (*model.SlipTemplateModel, error)
	CreateTemplate(ctx context.Context, m *model.SlipTemplateModel, fieldIDs []uuid.UUID) error
	UpdateTemplate(ctx context.Context, id uuid.UUID, name *string, fieldIDs *[]uuid.UUID) error
	DeleteTemplate(ctx context.Context, id uuid.UUID) error

	ListData(ctx context.Context, templateID *uuid.UUID) ([]model.SlipDataModel, error)
	GetData(ctx context.Context, id uuid.UUID) (*model.SlipDataModel, error)
	CreateData(ctx context.Context, m *model.SlipDataModel) error
	UpdateDataValues(ctx context.Context, m *model.SlipDataModel) error
	DeleteData(ctx context.Context, id uuid.UUID) error
}

type gormSlipRepository struct{ db *gorm.DB }

func NewGormSlipRepository(db *gorm.DB) SlipRepository {
	return &gormSlipRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.ErrNotFound
	}
	return err
}

func affected(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.ErrNotFound
	}
	return nil
}

/* ===================== fields ===================== */

func (r *gormSlipRepository) ListFields(ctx context.Context) ([]model.SlipFieldModel, error) {
	rows := []model.SlipFieldModel{}
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *gormSlipRepository) FindFields(ctx context.Context, ids []uuid.UUID) ([]model.SlipFieldModel, error) {
	if len(ids) == 0 {
		return []model.SlipFieldModel{}, nil
	}
	var rows []model.SlipFieldModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]model.SlipFieldModel, len(rows))
	for _, f := range rows {
		byID[f.ID] = f
	}
	out := make([]model.SlipFieldModel, 0, len(ids))
	for _, id := range ids {
		if f, ok := byID[id]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *gormSlipRepository) CreateField(ctx context.Context, m *model.SlipFieldModel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *gormSlipRepository) RenameField(ctx context.Context, id uuid.UUID, name string) (*model.SlipFieldModel, error) {
	res := r.db.WithContext(ctx).Model(&model.SlipFieldModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"name": name, "updated_at": time.Now()})
	if err := affected(res); err != nil {
		return nil, err
	}
	var m model.SlipFieldModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

// DeleteField ikut melepas field dari semua template.
func (r *gormSlipRepository) DeleteField(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("field_id = ?", id).Delete(&model.SlipTemplateFieldModel{}).Error; err != nil {
			return err
		}
		return affected(tx.Delete(&model.SlipFieldModel{}, "id = ?", id))
	})
}

/* ===================== templates ===================== */

type templateFieldRow struct {
	TemplateID uuid.UUID `gorm:"column:template_id"`
	ID         uuid.UUID `gorm:"column:id"`
	Name       string    `gorm:"column:name"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (r *gormSlipRepository) attachFields(ctx context.Context, templates []model.SlipTemplateModel) error {
	if len(templates) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(templates))
	for i, t := range templates {
		ids[i] = t.ID
	}
	fieldTable := model.SlipFieldModel{}.TableName()
	var rows []templateFieldRow
	err := r.db.WithContext(ctx).
		Table(model.SlipTemplateFieldModel{}.TableName()+" AS tf").
		Select("tf.template_id, f.id, f.name, f.created_at, f.updated_at").
		Joins("JOIN "+fieldTable+" AS f ON f.id = tf.field_id").
		Where("tf.template_id IN ?", ids).
		Order("tf.template_id, tf.position ASC").
		Scan(&rows).Error
	if err != nil {
		return err
	}
	byTemplate := map[uuid.UUID][]model.SlipFieldModel{}
	for _, row := range rows {
		byTemplate[row.TemplateID] = append(byTemplate[row.TemplateID], model.SlipFieldModel{
			ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt,
		})
	}
	for i := range templates {
		templates[i].Fields = byTemplate[templates[i].ID]
		if templates[i].Fields == nil {
			templates[i].Fields = []model.SlipFieldModel{}
		}
	}
	return nil
}

func (r *gormSlipRepository) ListTemplates(ctx context.Context) ([]model.SlipTemplateModel, error) {
	rows := []model.SlipTemplateModel{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	if err := r.attachFields(ctx, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormSlipRepository) GetTemplate(ctx context.Context, id uuid.UUID) (*model.SlipTemplateModel, error) {
	var m model.SlipTemplateModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	one := []model.SlipTemplateModel{m}
	if err := r.attachFields(ctx, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

func mappings(templateID uuid.UUID, fieldIDs []uuid.UUID) []model.SlipTemplateFieldModel {
	out := make([]model.SlipTemplateFieldModel, 0, len(fieldIDs))
	for i, fid := range fieldIDs {
		out = append(out, model.SlipTemplateFieldModel{TemplateID: templateID, FieldID: fid, Position: i + 1})
	}
	return out
}

func (r *gormSlipRepository) CreateTemplate(ctx context.Context, m *model.SlipTemplateModel, fieldIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		if len(fieldIDs) == 0 {
			return nil
		}
		return tx.Create(mappings(m.ID, fieldIDs)).Error
	})
}

func (r *gormSlipRepository) UpdateTemplate(ctx context.Context, id uuid.UUID, name *string, fieldIDs *[]uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{"updated_at": time.Now()}
		if name != nil {
			updates["name"] = *name
		}
		if err := affected(tx.Model(&model.SlipTemplateModel{}).Where("id = ?", id).Updates(updates)); err != nil {
			return err
		}
		if fieldIDs == nil {
			return nil
		}
		if err := tx.Where("template_id = ?", id).Delete(&model.SlipTemplateFieldModel{}).Error; err != nil {
			return err
		}
		if len(*fieldIDs) == 0 {
			return nil
		}
		return tx.Create(mappings(id, *fieldIDs)).Error
	})
}

func (r *gormSlipRepository) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", id).Delete(&model.SlipTemplateFieldModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("template_id = ?", id).Delete(&model.SlipDataModel{}).Error; err != nil {
			return err
		}
		return affected(tx.Delete(&model.SlipTemplateModel{}, "id = ?", id))
	})
}

/* ===================== data ===================== */

func (r *gormSlipRepository) ListData(ctx context.Context, templateID *uuid.UUID) ([]model.SlipDataModel, error) {
	q := r.db.WithContext(ctx).Model(&model.SlipDataModel{})
	if templateID != nil {
		q = q.Where("template_id = ?", *templateID)
	}
	rows := []model.SlipDataModel{}
	err := q.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *gormSlipRepository) GetData(ctx context.Context, id uuid.UUID) (*model.SlipDataModel, error) {
	var m model.SlipDataModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *gormSlipRepository) CreateData(ctx context.Context, m *model.SlipDataModel) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *gormSlipRepository) UpdateDataValues(ctx context.Context, m *model.SlipDataModel) error {
	m.UpdatedAt = time.Now()
	return affected(r.db.WithContext(ctx).Model(&model.SlipDataModel{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{"values": m.Values, "updated_at": m.UpdatedAt}))
}

func (r *gormSlipRepository) DeleteData(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Delete(&model.SlipDataModel{}, "id = ?", id))
}
