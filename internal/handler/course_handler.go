package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/coursesync/internal/dto"
	"github.com/noah-isme/coursesync/internal/middleware"
	"github.com/noah-isme/coursesync/internal/service"
	"github.com/noah-isme/coursesync/internal/utils"
)

// CourseHandler serves the course catalog endpoints.
type CourseHandler struct {
	service service.CourseService
	logger  zerolog.Logger
}

// NewCourseHandler constructs the handler.
func NewCourseHandler(service service.CourseService, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		service: service,
		logger:  logger.With().Str("component", "course_handler").Logger(),
	}
}

// Register wires the public read route and the guarded mutation routes.
func (h *CourseHandler) Register(router fiber.Router, guards ...fiber.Handler) {
	router.Get("", h.list)
	router.Post("", chain(guards, h.create)...)
	router.Put("/:id", chain(guards, h.update)...)
	router.Delete("/:id", chain(guards, h.delete)...)
}

func (h *CourseHandler) list(c *fiber.Ctx) error {
	courses, err := h.service.List(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, "list_courses", err)
	}
	return utils.SendJSON(c, fiber.StatusOK, courses)
}

func (h *CourseHandler) create(c *fiber.Ctx) error {
	var req dto.CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	course, err := h.service.Create(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return respondError(c, h.logger, "create_course", err)
	}
	return utils.SendJSON(c, fiber.StatusCreated, course)
}

func (h *CourseHandler) update(c *fiber.Ctx) error {
	var req dto.CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	course, err := h.service.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.logger, "update_course", err)
	}
	return utils.SendJSON(c, fiber.StatusOK, course)
}

func (h *CourseHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.logger, "delete_course", err)
	}
	return utils.SendNoContent(c)
}
