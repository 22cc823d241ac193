package helper

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Sentinel error yang dipakai lapisan service; controller memetakan ke status HTTP.
var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("conflict")
	ErrInvalid   = errors.New("invalid input")
	ErrForbidden = errors.New("forbidden")
)

// --- PG error mapping (pgx/libpq) ---
func pgCodeStatus(code, msg string) (int, string, bool) {
	switch code {
	case "23505":
		return http.StatusConflict, "duplicate data (unique violation)", true
	case "23503":
		return http.StatusBadRequest, "referenced row not found (foreign key violation)", true
	case "23502":
		return http.StatusBadRequest, "missing required column (not null violation)", true
	case "22P02":
		return http.StatusBadRequest, "invalid input syntax", true
	}
	return 0, msg, false
}

// MapDBError menerjemahkan error service/gorm/postgres ke (status, pesan).
func MapDBError(err error) (int, string) {
	if err == nil {
		return http.StatusOK, ""
	}
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, ErrConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, err.Error()
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		if status, msg, ok := pgCodeStatus(pgxErr.Code, pgxErr.Message); ok {
			return status, msg
		}
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if status, msg, ok := pgCodeStatus(string(pqErr.Code), pqErr.Message); ok {
			return status, msg
		}
	}
	return http.StatusInternalServerError, "internal server error"
}

// IsUniqueViolation dipakai service yang ingin mengubah duplikat jadi ErrConflict.
func IsUniqueViolation(err error) bool {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == "23505"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
