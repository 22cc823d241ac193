package repository

import (
	"context"

	"gorm.io/gorm"

	"schooldesk_backend/internals/constants"
)

// Query: tabel (tanpa schema) + filter kolom; nilai slice jadi IN.
type Query struct {
	Table string
	Where map[string]any
}

type Counter interface {
	Count(ctx context.Context, q Query) (int64, error)
	Sum(ctx context.Context, q Query, column string) (float64, error)
}

type gormCounter struct{ db *gorm.DB }

func NewGormCounter(db *gorm.DB) Counter {
	return &gormCounter{db: db}
}

func (r *gormCounter) scoped(ctx context.Context, q Query) *gorm.DB {
	tx := r.db.WithContext(ctx).Table(constants.Table(q.Table))
	if len(q.Where) > 0 {
		tx = tx.Where(q.Where)
	}
	return tx
}

func (r *gormCounter) Count(ctx context.Context, q Query) (int64, error) {
	var n int64
	err := r.scoped(ctx, q).Count(&n).Error
	return n, err
}

// Sum: column harus konstanta internal, bukan input user.
func (r *gormCounter) Sum(ctx context.Context, q Query, column string) (float64, error) {
	var total float64
	err := r.scoped(ctx, q).Select("COALESCE(SUM(" + column + "), 0)").Scan(&total).Error
	return total, err
}
