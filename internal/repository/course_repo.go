package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/coursesync/internal/models"
)

// CourseRepository persists catalog entries.
type CourseRepository interface {
	List(ctx context.Context) ([]models.CourseRecord, error)
	GetByID(ctx context.Context, id string) (models.CourseRecord, error)
	Create(ctx context.Context, course *models.CourseRecord) error
	Update(ctx context.Context, course *models.CourseRecord) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository constructs a course repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) List(ctx context.Context) ([]models.CourseRecord, error) {
	var courses []models.CourseRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) GetByID(ctx context.Context, id string) (models.CourseRecord, error) {
	var course models.CourseRecord
	if err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error; err != nil {
		return models.CourseRecord{}, err
	}
	return course, nil
}

func (r *courseRepository) Create(ctx context.Context, course *models.CourseRecord) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) Update(ctx context.Context, course *models.CourseRecord) error {
	return r.db.WithContext(ctx).Save(course).Error
}

// Delete removes the course and every enrollment that references it.
func (r *courseRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.CourseRecord{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Delete(&models.Enrollment{}, "course_id = ?", id).Error
	})
}

func (r *courseRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.CourseRecord{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
