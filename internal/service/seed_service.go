package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/coursesync/internal/models"
	"github.com/noah-isme/coursesync/internal/repository"
)

// DefaultCatalog is loaded into an empty development database.
var DefaultCatalog = []models.Course{
	{Subject: "CS", Number: 101, Name: "Introduction to Programming", Credits: 3, Description: "Variables, control flow and functions."},
	{Subject: "CS", Number: 201, Name: "Data Structures", Credits: 4, Description: "Lists, trees, hash tables and their costs."},
	{Subject: "MATH", Number: 210, Name: "Discrete Mathematics", Credits: 3},
	{Subject: "ENG", Number: 110, Name: "Composition", Credits: 3, Description: "Academic writing and revision."},
}

// SeedService fills the development catalog.
type SeedService interface {
	SeedCourses(ctx context.Context, courses []models.Course) (int, error)
}

type seedService struct {
	repo   repository.CourseRepository
	logger zerolog.Logger
}

// NewSeedService constructs a seeding service.
func NewSeedService(repo repository.CourseRepository, logger zerolog.Logger) SeedService {
	return &seedService{
		repo:   repo,
		logger: logger.With().Str("component", "seed_service").Logger(),
	}
}

// SeedCourses inserts courses only when the catalog is empty.
func (s *seedService) SeedCourses(ctx context.Context, courses []models.Course) (int, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if total > 0 {
		return 0, nil
	}

	for _, course := range courses {
		record := models.CourseRecord{
			ID:          course.ID,
			Subject:     course.Subject,
			Number:      course.Number,
			Name:        course.Name,
			Description: course.Description,
			Credits:     course.Credits,
		}
		if record.ID == "" {
			record.ID = uuid.NewString()
		}
		if err := s.repo.Create(ctx, &record); err != nil {
			return 0, err
		}
	}

	s.logger.Info().Int("count", len(courses)).Msg("catalog seeded")
	return len(courses), nil
}
