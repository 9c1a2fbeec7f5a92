package service

import (
	"net/http"

	"github.com/noah-isme/coursesync/pkg/apperrors"
)

// Errors returned by the development API services. Handlers send Message as
// the response body and Status as the response code.
var (
	ErrCourseNotFound     = apperrors.New(apperrors.CodeNotFound, http.StatusNotFound, "Course not found")
	ErrInvalidCredentials = apperrors.New(apperrors.CodeUnauthorized, http.StatusUnauthorized, "Invalid username or password")
	ErrUsernameTaken      = apperrors.New(apperrors.CodeConflict, http.StatusConflict, "Username already exists")
	ErrInvalidInput       = apperrors.New(apperrors.CodeValidation, http.StatusBadRequest, "Invalid request payload")
)
