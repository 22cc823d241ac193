package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schooldesk_backend/internals/configs"
	"schooldesk_backend/internals/features/users/auth/dto"
	"schooldesk_backend/internals/features/users/auth/repository"
	"schooldesk_backend/internals/features/users/auth/service"
	helper "schooldesk_backend/internals/helpers"
	helperAuth "schooldesk_backend/internals/helpers/auth"
)

var validate = validator.New()

type AuthController struct {
	Svc *service.AuthService
}

func NewAuthController(db *gorm.DB) *AuthController {
	svc := service.NewAuthService(
		repository.NewGormProfileRepository(db),
		helperAuth.NewGormBlacklist(db, configs.JWTSecret),
		configs.JWTSecret,
		service.NewGoogleVerifier(configs.GoogleClientID),
	)
	return &AuthController{Svc: svc}
}

func authError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidGoogleToken):
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrInactive):
		return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan. Hubungi admin.")
	}
	return helper.FromServiceError(c, err)
}

func setAccessCookie(c *fiber.Ctx, token string, exp time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  exp,
	})
}

// POST /api/auth/register
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	p, err := ac.Svc.Register(c.UserContext(), req)
	if err != nil {
		return authError(c, err)
	}
	return helper.JsonCreated(c, "Registration successful", dto.NewProfileResponse(p))
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	res, err := ac.Svc.Login(c.UserContext(), req)
	if err != nil {
		return authError(c, err)
	}
	setAccessCookie(c, res.AccessToken, res.ExpiresAt)
	return helper.JsonOK(c, "Login successful", res)
}

// POST /api/auth/login-google
func (ac *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	res, err := ac.Svc.LoginGoogle(c.UserContext(), req.IDToken)
	if err != nil {
		return authError(c, err)
	}
	setAccessCookie(c, res.AccessToken, res.ExpiresAt)
	return helper.JsonOK(c, "Login successful", res)
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.Svc.Logout(c.UserContext(), helperAuth.GetRawAccessToken(c)); err != nil {
		return helper.FromServiceError(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
	})
	return helper.JsonOK(c, "Logout successful", nil)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	p, err := ac.Svc.GetUser(c.UserContext(), userID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.NewProfileResponse(p))
}
