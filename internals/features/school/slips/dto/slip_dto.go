package dto

import "github.com/google/uuid"

type FieldRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

type CreateTemplateRequest struct {
	Name     string      `json:"name" validate:"required,max=150"`
	FieldIDs []uuid.UUID `json:"fieldIds" validate:"required,min=1,dive,required"`
}

// UpdateTemplateRequest: nil = tidak diubah; FieldIDs non-nil mengganti seluruh mapping.
type UpdateTemplateRequest struct {
	Name     *string      `json:"name" validate:"omitempty,max=150"`
	FieldIDs *[]uuid.UUID `json:"fieldIds" validate:"omitempty,min=1,dive,required"`
}

type SlipDataRequest struct {
	TemplateID uuid.UUID      `json:"templateId" validate:"required"`
	Values     map[string]any `json:"values" validate:"required"`
}

type UpdateSlipDataRequest struct {
	Values map[string]any `json:"values" validate:"required"`
}
