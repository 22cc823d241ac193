package helper

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Locals key (HARUS seragam di semua middleware/controller)
const (
	LocUserID   = "user_id"
	LocRole     = "userRole"
	LocEmail    = "userEmail"
	LocRawToken = "raw_token"
)

var (
	ErrTokenMissing = errors.New("token tidak ditemukan")
	ErrTokenInvalid = errors.New("token tidak valid")
	ErrTokenExpired = errors.New("token expired")
)

// toleransi clock skew
const expLeeway = 30 * time.Second

type AccessClaims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// IssueAccessToken: HS256, sub=userID.
func IssueAccessToken(secret string, userID uuid.UUID, role, email string, now time.Time, ttl time.Duration) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, errors.New("missing JWT secret")
	}
	exp := now.Add(ttl)
	claims := AccessClaims{
		Role:  role,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// ParseAccessToken verifikasi signature lalu cek exp terhadap now (+leeway).
func ParseAccessToken(secret, raw string, now time.Time) (*AccessClaims, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrTokenMissing
	}
	claims := &AccessClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if _, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if claims.ExpiresAt == nil || now.After(claims.ExpiresAt.Time.Add(expLeeway)) {
		return nil, ErrTokenExpired
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, fmt.Errorf("%w: invalid sub", ErrTokenInvalid)
	}
	return claims, nil
}

// GetRawAccessToken: Authorization Bearer dulu, lalu cookie access_token.
func GetRawAccessToken(c *fiber.Ctx) string {
	authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return strings.TrimSpace(c.Cookies("access_token"))
}

func GetUserIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	s, _ := c.Locals(LocUserID).(string)
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user_id tidak ada")
	}
	return id, nil
}

func GetRoleFromLocals(c *fiber.Ctx) string {
	r, _ := c.Locals(LocRole).(string)
	return r
}
