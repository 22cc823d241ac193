package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/features/users/auth/dto"
	"schooldesk_backend/internals/features/users/auth/model"
	"schooldesk_backend/internals/features/users/auth/repository"
	helper "schooldesk_backend/internals/helpers"
	helperAuth "schooldesk_backend/internals/helpers/auth"
)

var (
	ErrInvalidCredentials = errors.New("email atau password salah")
	ErrInactive           = errors.New("akun Anda telah dinonaktifkan")
	ErrInvalidGoogleToken = errors.New("invalid Google ID token")
)

const defaultAccessTTL = 24 * time.Hour

type AuthService struct {
	Repo         repository.ProfileRepository
	Blacklist    helperAuth.Blacklist
	Secret       string
	AccessTTL    time.Duration
	VerifyGoogle GoogleVerifier
	nowFunc      func() time.Time
}

func NewAuthService(repo repository.ProfileRepository, bl helperAuth.Blacklist, secret string, google GoogleVerifier) *AuthService {
	return &AuthService{
		Repo:         repo,
		Blacklist:    bl,
		Secret:       secret,
		AccessTTL:    defaultAccessTTL,
		VerifyGoogle: google,
		nowFunc:      time.Now,
	}
}

// Register membuat akun baru. Role kosong = STUDENT; ADMIN tidak bisa daftar sendiri.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*model.ProfileModel, error) {
	req.Normalize()
	if req.Role == "" {
		req.Role = constants.RoleStudent
	}
	if !constants.IsValidRole(req.Role) {
		return nil, fmt.Errorf("%w: role %q", helper.ErrInvalid, req.Role)
	}
	if req.Role == constants.RoleAdmin {
		return nil, fmt.Errorf("%w: admin accounts are created by an admin", helper.ErrForbidden)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	h := string(hash)
	p := &model.ProfileModel{
		Email:        req.Email,
		PasswordHash: &h,
		Role:         req.Role,
		FullName:     req.FullName,
		IsActive:     true,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		if errors.Is(err, helper.ErrConflict) {
			return nil, fmt.Errorf("%w: email already registered", helper.ErrConflict)
		}
		return nil, err
	}
	return p, nil
}

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	p, err := s.Repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, helper.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if p.PasswordHash == nil || bcrypt.CompareHashAndPassword([]byte(*p.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(p)
}

// LoginGoogle: cari by google_id, lalu by email (link), kalau belum ada buat STUDENT baru.
func (s *AuthService) LoginGoogle(ctx context.Context, idToken string) (*dto.AuthResponse, error) {
	if s.VerifyGoogle == nil {
		return nil, ErrInvalidGoogleToken
	}
	ident, err := s.VerifyGoogle(idToken)
	if err != nil {
		log.Debug().Err(err).Msg("google token rejected")
		return nil, ErrInvalidGoogleToken
	}

	p, err := s.Repo.FindByGoogleID(ctx, ident.Sub)
	if errors.Is(err, helper.ErrNotFound) {
		p, err = s.Repo.FindByEmail(ctx, ident.Email)
		switch {
		case err == nil:
			if err := s.Repo.LinkGoogle(ctx, p.ID, ident.Sub); err != nil {
				return nil, err
			}
		case errors.Is(err, helper.ErrNotFound):
			sub := ident.Sub
			p = &model.ProfileModel{
				Email:    strings.ToLower(ident.Email),
				Role:     constants.RoleStudent,
				FullName: ident.Name,
				GoogleID: &sub,
				IsActive: true,
			}
			if err := s.Repo.Create(ctx, p); err != nil {
				return nil, err
			}
		default:
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return s.issue(p)
}

func (s *AuthService) issue(p *model.ProfileModel) (*dto.AuthResponse, error) {
	if !p.IsActive {
		return nil, ErrInactive
	}
	tok, exp, err := helperAuth.IssueAccessToken(s.Secret, p.ID, p.Role, p.Email, s.nowFunc(), s.AccessTTL)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{AccessToken: tok, ExpiresAt: exp, User: dto.NewProfileResponse(p)}, nil
}

// Logout mem-blacklist token sampai exp-nya (idempotent).
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" || s.Blacklist == nil {
		return nil
	}
	exp := s.nowFunc().Add(s.AccessTTL)
	if claims, err := helperAuth.ParseAccessToken(s.Secret, rawToken, s.nowFunc()); err == nil && claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time.Add(time.Minute)
	}
	return s.Blacklist.Add(ctx, rawToken, exp)
}

func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*model.ProfileModel, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *AuthService) ListUsers(ctx context.Context, role string) ([]model.ProfileModel, error) {
	role = strings.ToUpper(strings.TrimSpace(role))
	if role != "" && !constants.IsValidRole(role) {
		return nil, fmt.Errorf("%w: role %q", helper.ErrInvalid, role)
	}
	return s.Repo.List(ctx, role)
}

// UpdateUserRole hanya untuk ADMIN, dan role target harus tercakup hirarki actor.
func (s *AuthService) UpdateUserRole(ctx context.Context, actorRole string, targetID uuid.UUID, newRole string) (*model.ProfileModel, error) {
	newRole = strings.ToUpper(strings.TrimSpace(newRole))
	if !constants.IsValidRole(newRole) {
		return nil, fmt.Errorf("%w: role %q", helper.ErrInvalid, newRole)
	}
	if actorRole != constants.RoleAdmin || !constants.HasPermission(actorRole, newRole) {
		return nil, fmt.Errorf("%w: %s", helper.ErrForbidden, constants.RoleErrorAdmin("role management"))
	}
	if err := s.Repo.UpdateRole(ctx, targetID, newRole); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(ctx, targetID)
}
