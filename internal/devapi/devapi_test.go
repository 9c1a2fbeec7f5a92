package devapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/coursesync/internal/config"
	"github.com/noah-isme/coursesync/internal/database"
	"github.com/noah-isme/coursesync/internal/dto"
	"github.com/noah-isme/coursesync/internal/models"
	"github.com/noah-isme/coursesync/internal/service"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := database.OpenGorm(database.DriverSQLite, "file:devapi_"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	cfg := config.Config{AppName: "coursesync-devapi", DevAPIJWTSecret: "secret", DevAPITokenTTL: time.Hour}
	app, err := New(context.Background(), cfg, db, Options{Seed: true}, zerolog.Nop())
	require.NoError(t, err)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token, body string, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestNewRequiresSecret(t *testing.T) {
	db, err := database.OpenGorm(database.DriverSQLite, "file:devapi_nosecret?mode=memory&cache=shared")
	require.NoError(t, err)
	_, err = New(context.Background(), config.Config{}, db, Options{}, zerolog.Nop())
	require.Error(t, err)
}

func TestDevAPIFlow(t *testing.T) {
	app := newApp(t)

	var catalog []models.Course
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/courses", "", "", &catalog))
	require.Len(t, catalog, len(service.DefaultCatalog))

	var teacher dto.AuthResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/users/register", "", `{"username":"ada","password":"lovelace","role":"teacher"}`, &teacher))
	var student dto.AuthResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/users/register", "", `{"username":"bob","password":"builder","role":"student"}`, &student))

	var failure dto.ErrorResponse
	require.Equal(t, http.StatusUnauthorized, call(t, app, http.MethodPost, "/api/courses", "", `{"name":"X","subject":"CS","number":1,"credits":1}`, &failure))
	require.Equal(t, http.StatusForbidden, call(t, app, http.MethodPost, "/api/courses", student.Token, `{"name":"X","subject":"CS","number":1,"credits":1}`, &failure))
	require.Equal(t, "Only teachers can manage courses", failure.Message)

	var created models.Course
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/courses", teacher.Token, `{"name":"Algorithms","subject":"CS","number":301,"credits":4}`, &created))
	require.Equal(t, teacher.User.ID, created.CreatedBy)

	var schedule []models.Course
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/users/schedule/add", student.Token, `{"courseId":"`+created.ID+`"}`, &schedule))
	require.Len(t, schedule, 1)

	require.Equal(t, http.StatusNoContent, call(t, app, http.MethodDelete, "/api/courses/"+created.ID, teacher.Token, "", nil))
	require.Equal(t, http.StatusNotFound, call(t, app, http.MethodDelete, "/api/courses/"+created.ID, teacher.Token, "", &failure))

	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/users/schedule", student.Token, "", &schedule))
	require.Empty(t, schedule)

	var login dto.AuthResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/users/login", "", `{"username":"bob","password":"builder"}`, &login))
	require.Equal(t, student.User, login.User)
}
