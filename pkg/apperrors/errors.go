package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a typed failure that can be shown to the user as-is.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
	// Remote is set when Message was supplied by the server response body.
	Remote bool `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors by code so sentinel comparisons survive Clone.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) || e == nil || other == nil {
		return false
	}
	return e.Code == other.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Error codes.
const (
	CodeNetwork      = "NETWORK_UNREACHABLE"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeServer       = "SERVER_ERROR"
	CodeDecode       = "DECODE_ERROR"
)

// Predefined errors for the client's failure taxonomy.
var (
	ErrNetwork      = New(CodeNetwork, 0, "Could not connect to the backend API. Please ensure the server is running.")
	ErrUnauthorized = New(CodeUnauthorized, http.StatusUnauthorized, "You must be logged in to perform this action.")
	ErrValidation   = New(CodeValidation, http.StatusBadRequest, "Please fill in all required fields (Name, Subject, Number, Credits).")
	ErrNotFound     = New(CodeNotFound, http.StatusNotFound, "Course not found.")
	ErrServer       = New(CodeServer, http.StatusInternalServerError, "Request failed")
	ErrDecode       = New(CodeDecode, 0, "Unexpected response from the server.")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrServer.Code, ErrServer.Status, err.Error())
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// ForStatus builds the error for a non-success HTTP status. A non-empty server
// message is used verbatim; otherwise a generic status-based message is used.
func ForStatus(status int, serverMessage string) *Error {
	code := CodeServer
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		code = CodeUnauthorized
	case http.StatusNotFound:
		code = CodeNotFound
	case http.StatusConflict:
		code = CodeConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		code = CodeValidation
	}

	if serverMessage == "" {
		return New(code, status, fmt.Sprintf("Request failed with status %d", status))
	}
	e := New(code, status, serverMessage)
	e.Remote = true
	return e
}

// Message extracts the user-facing text of err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return FromError(err).Message
}

// HasCode reports whether err is an *Error with the given code.
func HasCode(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// FromServer reports whether err carries a message taken from a server response.
func FromServer(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Remote
}
