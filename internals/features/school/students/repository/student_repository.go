package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schooldesk_backend/internals/constants"
	"schooldesk_backend/internals/features/school/students/model"
	helper "schooldesk_backend/internals/helpers"
)

type StudentRepository interface {
	FindAllWithProfile(ctx context.Context) ([]model.StudentModel, error)
	FindMany(ctx context.Context, classID *uuid.UUID) ([]model.StudentModel, error)
	FindOne(ctx context.Context, id uuid.UUID) (*model.StudentModel, error)
	FindByParentEmail(ctx context.Context, email string) (*model.StudentModel, error)
	// FindByUserID: siswa yang tertaut ke satu akun (kakak/adik bisa berbagi akun).
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]model.StudentModel, error)
	Create(ctx context.Context, m *model.StudentModel) error
	Save(ctx context.Context, m *model.StudentModel) error
	Delete(ctx context.Context, id uuid.UUID) error
	// IDCardStudents: siswa kelas dari tabel kartu pelajar (punya foto).
	IDCardStudents(ctx context.Context, classID uuid.UUID) ([]model.ClassStudent, error)
}

type gormStudentRepository struct{ db *gorm.DB }

func NewGormStudentRepository(db *gorm.DB) StudentRepository {
	return &gormStudentRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.ErrNotFound
	}
	return err
}

func (r *gormStudentRepository) FindAllWithProfile(ctx context.Context) ([]model.StudentModel, error) {
	rows := []model.StudentModel{}
	err := r.db.WithContext(ctx).Preload("Profile").Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *gormStudentRepository) FindMany(ctx context.Context, classID *uuid.UUID) ([]model.StudentModel, error) {
	q := r.db.WithContext(ctx).Preload("Class")
	if classID != nil {
		q = q.Where("class_id = ?", *classID)
	}
	rows := []model.StudentModel{}
	if err := q.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormStudentRepository) FindOne(ctx context.Context, id uuid.UUID) (*model.StudentModel, error) {
	var m model.StudentModel
	if err := r.db.WithContext(ctx).Preload("Class").First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *gormStudentRepository) FindByParentEmail(ctx context.Context, email string) (*model.StudentModel, error) {
	var m model.StudentModel
	err := r.db.WithContext(ctx).Preload("Class").
		Where("LOWER(parent_email) = LOWER(?)", email).
		First(&m).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *gormStudentRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]model.StudentModel, error) {
	rows := []model.StudentModel{}
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *gormStudentRepository) Create(ctx context.Context, m *model.StudentModel) error {
	return r.db.WithContext(ctx).Omit("Class", "Profile").Create(m).Error
}

func (r *gormStudentRepository) Save(ctx context.Context, m *model.StudentModel) error {
	return r.db.WithContext(ctx).Omit("Class", "Profile").Save(m).Error
}

func (r *gormStudentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.StudentModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.ErrNotFound
	}
	return nil
}

func (r *gormStudentRepository) IDCardStudents(ctx context.Context, classID uuid.UUID) ([]model.ClassStudent, error) {
	rows := []model.ClassStudent{}
	err := r.db.WithContext(ctx).
		Table(constants.Table(constants.IDCardTable)).
		Select("id, student_name AS name, student_photo_url AS photo_url, admission_number").
		Where("class_id = ?", classID).
		Order("student_name ASC").
		Scan(&rows).Error
	return rows, err
}
