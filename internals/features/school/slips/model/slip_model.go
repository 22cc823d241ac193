package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"schooldesk_backend/internals/constants"
)

type SlipFieldModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"column:name;size:120;not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (SlipFieldModel) TableName() string {
	return constants.Table(constants.SlipFieldTable)
}

// SlipTemplateModel.Fields diisi repository dari join table (urut position).
type SlipTemplateModel struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string           `gorm:"column:name;size:150;not null" json:"name"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
	Fields    []SlipFieldModel `gorm:"-" json:"fields"`
}

func (SlipTemplateModel) TableName() string {
	return constants.Table(constants.SlipTemplateTable)
}

func (t SlipTemplateModel) FieldIDs() map[uuid.UUID]struct{} {
	out := make(map[uuid.UUID]struct{}, len(t.Fields))
	for _, f := range t.Fields {
		out[f.ID] = struct{}{}
	}
	return out
}

type SlipTemplateFieldModel struct {
	TemplateID uuid.UUID `gorm:"column:template_id;type:uuid;primaryKey"`
	FieldID    uuid.UUID `gorm:"column:field_id;type:uuid;primaryKey;index"`
	Position   int       `gorm:"column:position;not null;default:0"`
}

func (SlipTemplateFieldModel) TableName() string {
	return constants.Table(constants.SlipTemplateFieldTable)
}

// SlipDataModel.Values: key = field id (string), value = isian bebas (skalar).
type SlipDataModel struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TemplateID uuid.UUID         `gorm:"column:template_id;type:uuid;not null;index" json:"templateId"`
	Values     datatypes.JSONMap `gorm:"column:values;type:jsonb;not null" json:"values"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (SlipDataModel) TableName() string {
	return constants.Table(constants.SlipDataTable)
}
