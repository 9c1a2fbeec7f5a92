package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/coursesync/internal/models"
)

// EnrollmentRepository manages user schedules.
type EnrollmentRepository interface {
	ScheduleFor(ctx context.Context, userID string) ([]models.CourseRecord, error)
	Add(ctx context.Context, userID, courseID string) error
	Remove(ctx context.Context, userID, courseID string) (bool, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository constructs an enrollment repository.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

// ScheduleFor returns the user's courses in enrollment order.
func (r *enrollmentRepository) ScheduleFor(ctx context.Context, userID string) ([]models.CourseRecord, error) {
	var courses []models.CourseRecord
	err := r.db.WithContext(ctx).
		Model(&models.CourseRecord{}).
		Joins("JOIN enrollments ON enrollments.course_id = course_records.id").
		Where("enrollments.user_id = ?", userID).
		Order("enrollments.created_at ASC").
		Order("course_records.id ASC").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// Add is idempotent: enrolling twice keeps a single row.
func (r *enrollmentRepository) Add(ctx context.Context, userID, courseID string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Enrollment{UserID: userID, CourseID: courseID}).Error
}

func (r *enrollmentRepository) Remove(ctx context.Context, userID, courseID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Enrollment{}, "user_id = ? AND course_id = ?", userID, courseID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
