package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/coursesync/internal/models"
	"github.com/noah-isme/coursesync/internal/repository"
)

// ScheduleService manages a user's enrollments. Every call returns the full
// schedule afterwards.
type ScheduleService interface {
	Get(ctx context.Context, userID string) ([]models.Course, error)
	Add(ctx context.Context, userID, courseID string) ([]models.Course, error)
	Drop(ctx context.Context, userID, courseID string) ([]models.Course, error)
}

type scheduleService struct {
	courses     repository.CourseRepository
	enrollments repository.EnrollmentRepository
	logger      zerolog.Logger
}

// NewScheduleService constructs the schedule service.
func NewScheduleService(courses repository.CourseRepository, enrollments repository.EnrollmentRepository, logger zerolog.Logger) ScheduleService {
	return &scheduleService{
		courses:     courses,
		enrollments: enrollments,
		logger:      logger.With().Str("component", "schedule_service").Logger(),
	}
}

func (s *scheduleService) Get(ctx context.Context, userID string) ([]models.Course, error) {
	records, err := s.enrollments.ScheduleFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	schedule := make([]models.Course, 0, len(records))
	for _, record := range records {
		schedule = append(schedule, record.ToCourse())
	}
	return schedule, nil
}

func (s *scheduleService) Add(ctx context.Context, userID, courseID string) ([]models.Course, error) {
	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return nil, ErrInvalidInput
	}
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	if err := s.enrollments.Add(ctx, userID, courseID); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", userID).Str("course_id", courseID).Msg("enrolled")
	return s.Get(ctx, userID)
}

// Drop is idempotent; dropping a course that is not on the schedule is not an error.
func (s *scheduleService) Drop(ctx context.Context, userID, courseID string) ([]models.Course, error) {
	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return nil, ErrInvalidInput
	}
	removed, err := s.enrollments.Remove(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if removed {
		s.logger.Info().Str("user_id", userID).Str("course_id", courseID).Msg("dropped")
	}
	return s.Get(ctx, userID)
}
