package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schooldesk_backend/internals/features/school/feedback/model"
	helper "schooldesk_backend/internals/helpers"
)

type FeedbackRepository interface {
	// List: userID nil -> semua. Selalu dengan profil pengirim + balasan (asc).
	List(ctx context.Context, userID *uuid.UUID) ([]model.FeedbackModel, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.FeedbackModel, error)
	Create(ctx context.Context, m *model.FeedbackModel) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.FeedbackModel, error)
	// AddReply: insert balasan + status RESOLVED dalam satu transaksi.
	AddReply(ctx context.Context, r *model.FeedbackReplyModel) error
}

type gormFeedbackRepository struct{ db *gorm.DB }

func NewGormFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &gormFeedbackRepository{db: db}
}

func profileCols(db *gorm.DB) *gorm.DB {
	return db.Select("id", "email", "full_name", "role", "avatar_url")
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User", profileCols).
		Preload("Replies", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at ASC") }).
		Preload("Replies.User", profileCols)
}

func (r *gormFeedbackRepository) List(ctx context.Context, userID *uuid.UUID) ([]model.FeedbackModel, error) {
	q := withRelations(r.db.WithContext(ctx))
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	rows := []model.FeedbackModel{}
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormFeedbackRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.FeedbackModel, error) {
	var m model.FeedbackModel
	if err := withRelations(r.db.WithContext(ctx)).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *gormFeedbackRepository) Create(ctx context.Context, m *model.FeedbackModel) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error
}

func (r *gormFeedbackRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.FeedbackModel, error) {
	var m model.FeedbackModel
	res := r.db.WithContext(ctx).Model(&m).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, helper.ErrNotFound
	}
	return &m, nil
}

func (r *gormFeedbackRepository) AddReply(ctx context.Context, reply *model.FeedbackReplyModel) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.FeedbackModel{}).
			Where("id = ?", reply.FeedbackID).
			Updates(map[string]any{"status": model.StatusResolved, "updated_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return helper.ErrNotFound
		}
		return tx.Omit(clause.Associations).Create(reply).Error
	})
}
