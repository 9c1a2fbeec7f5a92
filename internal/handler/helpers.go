package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/coursesync/internal/middleware"
	"github.com/noah-isme/coursesync/internal/utils"
	"github.com/noah-isme/coursesync/pkg/apperrors"
)

const msgInvalidBody = "Invalid request body"

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

// respondError sends service failures. Typed errors keep their status and
// message; anything else is logged and reported as a 500.
func respondError(c *fiber.Ctx, logger zerolog.Logger, op string, err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Status > 0 && appErr.Status < fiber.StatusInternalServerError {
		return utils.SendError(c, appErr.Status, appErr.Message)
	}
	requestLogger(logger, c).Error().Err(err).Str("op", op).Msg("request failed")
	return utils.SendAppError(c, err)
}

func chain(guards []fiber.Handler, final fiber.Handler) []fiber.Handler {
	handlers := make([]fiber.Handler, 0, len(guards)+1)
	handlers = append(handlers, guards...)
	return append(handlers, final)
}
