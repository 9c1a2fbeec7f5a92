package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/coursesync/internal/dto"
	"github.com/noah-isme/coursesync/internal/models"
	"github.com/noah-isme/coursesync/internal/repository"
	"github.com/noah-isme/coursesync/pkg/apperrors"
)

// CourseService manages the catalog served by the development API.
type CourseService interface {
	List(ctx context.Context) ([]models.Course, error)
	Create(ctx context.Context, actorID string, req dto.CourseRequest) (models.Course, error)
	Update(ctx context.Context, id string, req dto.CourseRequest) (models.Course, error)
	Delete(ctx context.Context, id string) error
}

type courseService struct {
	repo      repository.CourseRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(repo repository.CourseRepository, validate *validator.Validate, logger zerolog.Logger) CourseService {
	return &courseService{
		repo:      repo,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "course_service").Logger(),
	}
}

func (s *courseService) List(ctx context.Context) ([]models.Course, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	courses := make([]models.Course, 0, len(records))
	for _, record := range records {
		courses = append(courses, record.ToCourse())
	}
	return courses, nil
}

func (s *courseService) Create(ctx context.Context, actorID string, req dto.CourseRequest) (models.Course, error) {
	req, err := s.clean(req)
	if err != nil {
		return models.Course{}, err
	}

	record := models.CourseRecord{
		ID:          uuid.NewString(),
		Subject:     req.Subject,
		Number:      req.Number,
		Name:        req.Name,
		Description: req.Description,
		Credits:     req.Credits,
		CreatedBy:   actorID,
	}
	if err := s.repo.Create(ctx, &record); err != nil {
		return models.Course{}, err
	}

	s.logger.Info().Str("course_id", record.ID).Str("actor", actorID).Msg("course created")
	return record.ToCourse(), nil
}

func (s *courseService) Update(ctx context.Context, id string, req dto.CourseRequest) (models.Course, error) {
	req, err := s.clean(req)
	if err != nil {
		return models.Course{}, err
	}

	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Course{}, ErrCourseNotFound
		}
		return models.Course{}, err
	}

	record.Subject = req.Subject
	record.Number = req.Number
	record.Name = req.Name
	record.Description = req.Description
	record.Credits = req.Credits
	if err := s.repo.Update(ctx, &record); err != nil {
		return models.Course{}, err
	}

	s.logger.Info().Str("course_id", record.ID).Msg("course updated")
	return record.ToCourse(), nil
}

func (s *courseService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return err
	}
	s.logger.Info().Str("course_id", id).Msg("course deleted")
	return nil
}

func (s *courseService) clean(req dto.CourseRequest) (dto.CourseRequest, error) {
	req.Name = strings.TrimSpace(s.sanitizer.Sanitize(req.Name))
	req.Subject = strings.ToUpper(strings.TrimSpace(s.sanitizer.Sanitize(req.Subject)))
	req.Description = strings.TrimSpace(s.sanitizer.Sanitize(req.Description))
	if err := s.validator.Struct(req); err != nil {
		return dto.CourseRequest{}, apperrors.Wrap(err, ErrInvalidInput.Code, ErrInvalidInput.Status, "Name, subject, number and credits (1-5) are required")
	}
	return req, nil
}
