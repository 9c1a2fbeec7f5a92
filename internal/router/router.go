package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/coursesync/internal/config"
	"github.com/noah-isme/coursesync/internal/handler"
	"github.com/noah-isme/coursesync/internal/middleware"
	"github.com/noah-isme/coursesync/internal/models"
	"github.com/noah-isme/coursesync/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	CourseHandler   *handler.CourseHandler
	AuthHandler     *handler.AuthHandler
	ScheduleHandler *handler.ScheduleHandler
	JWTMiddleware   fiber.Handler
	// AuthRateLimit caps login/register attempts per client per minute. Zero disables it.
	AuthRateLimit int
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.CourseHandler != nil {
		deps.CourseHandler.Register(api.Group("/courses"),
			jwtMiddleware,
			middleware.RequireRole("Only teachers can manage courses", models.RoleTeacher),
		)
	}

	users := api.Group("/users")
	if deps.AuthHandler != nil {
		var guards []fiber.Handler
		if deps.AuthRateLimit > 0 {
			guards = append(guards, middleware.RateLimit("auth", deps.AuthRateLimit, time.Minute))
		}
		deps.AuthHandler.Register(users, guards...)
	}

	if deps.ScheduleHandler != nil {
		deps.ScheduleHandler.Register(users.Group("/schedule", jwtMiddleware))
	}
}
