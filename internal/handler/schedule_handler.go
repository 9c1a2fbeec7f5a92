package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/coursesync/internal/dto"
	"github.com/noah-isme/coursesync/internal/middleware"
	"github.com/noah-isme/coursesync/internal/service"
	"github.com/noah-isme/coursesync/internal/utils"
)

// ScheduleHandler serves the signed-in user's enrollment schedule.
type ScheduleHandler struct {
	service service.ScheduleService
	logger  zerolog.Logger
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(service service.ScheduleService, logger zerolog.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		logger:  logger.With().Str("component", "schedule_handler").Logger(),
	}
}

// Register wires the schedule routes. The group must already be authenticated.
func (h *ScheduleHandler) Register(router fiber.Router) {
	router.Get("", h.get)
	router.Post("/add", h.add)
	router.Delete("/drop", h.drop)
}

func (h *ScheduleHandler) get(c *fiber.Ctx) error {
	schedule, err := h.service.Get(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, h.logger, "get_schedule", err)
	}
	return utils.SendJSON(c, fiber.StatusOK, schedule)
}

func (h *ScheduleHandler) add(c *fiber.Ctx) error {
	var req dto.ScheduleChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	schedule, err := h.service.Add(c.UserContext(), middleware.UserID(c), req.CourseID)
	if err != nil {
		return respondError(c, h.logger, "enroll", err)
	}
	return utils.SendJSON(c, fiber.StatusOK, schedule)
}

func (h *ScheduleHandler) drop(c *fiber.Ctx) error {
	var req dto.ScheduleChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	schedule, err := h.service.Drop(c.UserContext(), middleware.UserID(c), req.CourseID)
	if err != nil {
		return respondError(c, h.logger, "drop", err)
	}
	return utils.SendJSON(c, fiber.StatusOK, schedule)
}
