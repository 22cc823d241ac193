package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/features/users/auth/model"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"fullName" validate:"required,min=2,max=150"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN TEACHER STUDENT"`
}

func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FullName = strings.TrimSpace(r.FullName)
	r.Role = strings.ToUpper(strings.TrimSpace(r.Role))
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN TEACHER STUDENT"`
}

type ProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	FullName  string    `json:"fullName"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewProfileResponse(m *model.ProfileModel) ProfileResponse {
	return ProfileResponse{
		ID:        m.ID,
		Email:     m.Email,
		Role:      m.Role,
		FullName:  m.FullName,
		AvatarURL: m.AvatarURL,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

func NewProfileResponses(rows []model.ProfileModel) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(rows))
	for i := range rows {
		out = append(out, NewProfileResponse(&rows[i]))
	}
	return out
}

type AuthResponse struct {
	AccessToken string          `json:"accessToken"`
	ExpiresAt   time.Time       `json:"expiresAt"`
	User        ProfileResponse `json:"user"`
}
