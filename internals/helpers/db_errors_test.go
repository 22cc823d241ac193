package helper

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapDBError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"wrapped not found", fmt.Errorf("class 1: %w", ErrNotFound), http.StatusNotFound},
		{"gorm not found", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"conflict", fmt.Errorf("%w: duplicate", ErrConflict), http.StatusConflict},
		{"invalid", ErrInvalid, http.StatusBadRequest},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"pgx unique", &pgconn.PgError{Code: "23505"}, http.StatusConflict},
		{"pq fk", &pq.Error{Code: "23503"}, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := MapDBError(tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("x")))
}
