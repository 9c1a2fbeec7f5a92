package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/coursesync/internal/models"
	"github.com/noah-isme/coursesync/internal/utils"
)

// RequireRole lets the request through only when the authenticated user holds
// one of roles. It must run after JWTProtected.
func RequireRole(message string, roles ...models.Role) fiber.Handler {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	if message == "" {
		message = "Insufficient permissions"
	}

	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalUserRole).(string)
		if _, ok := allowed[models.Role(strings.ToLower(strings.TrimSpace(role)))]; !ok {
			return utils.SendError(c, fiber.StatusForbidden, message)
		}
		return c.Next()
	}
}
