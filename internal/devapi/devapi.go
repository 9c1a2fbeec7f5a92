package devapi

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/coursesync/internal/config"
	"github.com/noah-isme/coursesync/internal/handler"
	"github.com/noah-isme/coursesync/internal/middleware"
	"github.com/noah-isme/coursesync/internal/models"
	"github.com/noah-isme/coursesync/internal/repository"
	"github.com/noah-isme/coursesync/internal/router"
	"github.com/noah-isme/coursesync/internal/service"
)

// Options tunes the assembled development API.
type Options struct {
	// Seed loads service.DefaultCatalog into an empty database.
	Seed bool
	// AuthRateLimit caps login/register calls per client per minute.
	AuthRateLimit int
}

// New migrates db and assembles the course service stand-in on top of it.
func New(ctx context.Context, cfg config.Config, db *gorm.DB, opts Options, logger zerolog.Logger) (*fiber.App, error) {
	if cfg.DevAPIJWTSecret == "" {
		return nil, fmt.Errorf("devapi jwt secret is required")
	}
	if err := db.AutoMigrate(&models.CourseRecord{}, &models.UserRecord{}, &models.Enrollment{}); err != nil {
		return nil, fmt.Errorf("migrate devapi schema: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	courseRepo := repository.NewCourseRepository(db)
	userRepo := repository.NewUserRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)

	if opts.Seed {
		if _, err := service.NewSeedService(courseRepo, logger).SeedCourses(ctx, service.DefaultCatalog); err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
	}

	courseService := service.NewCourseService(courseRepo, validate, logger)
	authService := service.NewAuthService(userRepo, validate, cfg.DevAPIJWTSecret, cfg.DevAPITokenTTL, logger)
	scheduleService := service.NewScheduleService(courseRepo, enrollmentRepo, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		CourseHandler:   handler.NewCourseHandler(courseService, logger),
		AuthHandler:     handler.NewAuthHandler(authService, logger),
		ScheduleHandler: handler.NewScheduleHandler(scheduleService, logger),
		JWTMiddleware:   middleware.JWTProtected(cfg.DevAPIJWTSecret),
		AuthRateLimit:   opts.AuthRateLimit,
	})

	return app, nil
}
