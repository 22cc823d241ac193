package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schooldesk_backend/internals/features/school/id_cards/dto"
	"schooldesk_backend/internals/features/school/id_cards/model"
	helper "schooldesk_backend/internals/helpers"
)

// sortColumns: whitelist ?sortBy (camel/snake) -> kolom.
var sortColumns = helper.NewColumnMap("createdAt", "studentName", "downloadCount")

type IDCardRepository interface {
	List(ctx context.Context, p dto.ListParams) ([]model.IDCardModel, int64, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.IDCardModel, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.IDCardModel, error)
	// FindByStudent: kartu terbaru untuk nama siswa (case-insensitive) di kelas itu.
	FindByStudent(ctx context.Context, classID uuid.UUID, studentName string) (*model.IDCardModel, error)
	Create(ctx context.Context, m *model.IDCardModel) error
	Save(ctx context.Context, m *model.IDCardModel) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DuplicateExists: dedup key sama, selain excludeID.
	DuplicateExists(ctx context.Context, key string, excludeID *uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
	SetPhoto(ctx context.Context, id uuid.UUID, photoType, url string) error
	IncrementDownloads(ctx context.Context, ids []uuid.UUID) error
}

type gormIDCardRepository struct{ db *gorm.DB }

func NewGormIDCardRepository(db *gorm.DB) IDCardRepository {
	return &gormIDCardRepository{db: db}
}

func withClass(db *gorm.DB) *gorm.DB {
	return db.Preload("Class", func(tx *gorm.DB) *gorm.DB { return tx.Select("id", "name", "section") })
}

func (r *gormIDCardRepository) List(ctx context.Context, p dto.ListParams) ([]model.IDCardModel, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.IDCardModel{})
	if p.ClassID != nil {
		q = q.Where("class_id = ?", *p.ClassID)
	}
	if p.Search != "" {
		like := "%" + p.Search + "%"
		q = q.Where("(student_name ILIKE ? OR father_name ILIKE ? OR mother_name ILIKE ? OR address ILIKE ?)", like, like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := sortColumns.Resolve(p.SortBy, "createdAt")
	if p.SortDesc {
		order += " DESC"
	} else {
		order += " ASC"
	}
	rows := []model.IDCardModel{}
	err := withClass(q).Order(order).Offset(p.Offset).Limit(p.Limit).Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *gormIDCardRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.IDCardModel, error) {
	rows := []model.IDCardModel{}
	q := withClass(r.db.WithContext(ctx))
	if len(ids) > 0 {
		q = q.Where("id IN ?", ids)
	}
	err := q.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *gormIDCardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.IDCardModel, error) {
	var m model.IDCardModel
	if err := withClass(r.db.WithContext(ctx)).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *gormIDCardRepository) FindByStudent(ctx context.Context, classID uuid.UUID, studentName string) (*model.IDCardModel, error) {
	var m model.IDCardModel
	err := r.db.WithContext(ctx).
		Where("class_id = ? AND LOWER(TRIM(student_name)) = LOWER(TRIM(?))", classID, studentName).
		Order("updated_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *gormIDCardRepository) Create(ctx context.Context, m *model.IDCardModel) error {
	return r.db.WithContext(ctx).Omit("Class").Create(m).Error
}

func (r *gormIDCardRepository) Save(ctx context.Context, m *model.IDCardModel) error {
	return r.db.WithContext(ctx).Omit("Class").Save(m).Error
}

func (r *gormIDCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.IDCardModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.ErrNotFound
	}
	return nil
}

func (r *gormIDCardRepository) DuplicateExists(ctx context.Context, key string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.IDCardModel{}).Where("dedup_key = ?", key)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var n int64
	if err := q.Limit(1).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *gormIDCardRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.IDCardModel{}).Count(&n).Error
	return n, err
}

func (r *gormIDCardRepository) SetPhoto(ctx context.Context, id uuid.UUID, photoType, url string) error {
	col, ok := model.PhotoColumns[photoType]
	if !ok {
		return helper.ErrInvalid
	}
	res := r.db.WithContext(ctx).Model(&model.IDCardModel{}).
		Where("id = ?", id).
		Updates(map[string]any{col: url, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.ErrNotFound
	}
	return nil
}

func (r *gormIDCardRepository) IncrementDownloads(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.IDCardModel{}).
		Where("id IN ?", ids).
		UpdateColumn("download_count", gorm.Expr("download_count + 1")).Error
}
