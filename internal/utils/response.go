package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/coursesync/internal/dto"
	"github.com/noah-isme/coursesync/pkg/apperrors"
)

// SendJSON writes data as the bare response body. The course service does not
// wrap payloads in an envelope.
func SendJSON(c *fiber.Ctx, status int, data interface{}) error {
	if status == 0 {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(data)
}

// SendNoContent replies 204 with an empty body.
func SendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// SendError writes the {"message": ...} failure body.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Message: message})
}

// SendAppError translates err into a failure response. Unknown errors become
// a generic 500 so internals never leak.
func SendAppError(c *fiber.Ctx, err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Status > 0 {
		return SendError(c, appErr.Status, appErr.Message)
	}
	return SendError(c, fiber.StatusInternalServerError, "Internal server error")
}
