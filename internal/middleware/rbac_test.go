package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/coursesync/internal/models"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedApp(secret string) *fiber.App {
	app := fiber.New()
	app.Use(CorrelationID())
	app.Post("/courses", JWTProtected(secret), RequireRole("Only teachers can manage courses", models.RoleTeacher), func(c *fiber.Ctx) error {
		return c.SendString(UserID(c))
	})
	return app
}

func TestRequireRoleAllowsTeacher(t *testing.T) {
	app := protectedApp("secret")
	token := signToken(t, "secret", jwt.MapClaims{"sub": "u1", "role": "teacher", "exp": time.Now().Add(time.Hour).Unix()})

	req := httptest.NewRequest(http.MethodPost, "/courses", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(CorrelationHeader, "corr-1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "corr-1", resp.Header.Get(CorrelationHeader))
}

func TestRequireRoleRejectsStudent(t *testing.T) {
	app := protectedApp("secret")
	token := signToken(t, "secret", jwt.MapClaims{"sub": "u2", "role": "student", "exp": time.Now().Add(time.Hour).Unix()})

	req := httptest.NewRequest(http.MethodPost, "/courses", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestJWTProtectedRejectsBadTokens(t *testing.T) {
	app := protectedApp("secret")

	cases := map[string]string{
		"missing":      "",
		"not bearer":   "Basic abc",
		"wrong secret": "Bearer " + signToken(t, "other", jwt.MapClaims{"sub": "u1", "role": "teacher"}),
		"expired":      "Bearer " + signToken(t, "secret", jwt.MapClaims{"sub": "u1", "role": "teacher", "exp": time.Now().Add(-time.Hour).Unix()}),
		"no subject":   "Bearer " + signToken(t, "secret", jwt.MapClaims{"role": "teacher"}),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/courses", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
			require.NotEmpty(t, resp.Header.Get(CorrelationHeader))
		})
	}
}
