package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/coursesync/internal/dto"
	"github.com/noah-isme/coursesync/internal/service"
	"github.com/noah-isme/coursesync/internal/utils"
)

// AuthHandler serves login and registration.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires the auth routes behind optional guards such as a rate limiter.
func (h *AuthHandler) Register(router fiber.Router, guards ...fiber.Handler) {
	router.Post("/login", chain(guards, h.login)...)
	router.Post("/register", chain(guards, h.register)...)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	resp, err := h.service.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, "login", err)
	}
	return utils.SendJSON(c, fiber.StatusOK, resp)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	resp, err := h.service.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, "register", err)
	}
	return utils.SendJSON(c, fiber.StatusCreated, resp)
}
