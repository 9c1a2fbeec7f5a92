package form

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/coursesync/internal/dto"
	"github.com/noah-isme/coursesync/internal/state"
	"github.com/noah-isme/coursesync/pkg/apperrors"
)

// RangeMessage is shown when numeric fields are filled in but out of bounds.
const RangeMessage = "Number must be a non-negative whole number and credits must be between 1 and 5."

// Length limits mirror the max tags on dto.CourseRequest.
const (
	NameLengthMessage    = "Course name must be at most 255 characters."
	SubjectLengthMessage = "Subject must be at most 32 characters."
)

var defaultValidator = validator.New(validator.WithRequiredStructEnabled())

type requiredFields struct {
	Name    string `validate:"required"`
	Subject string `validate:"required"`
	Number  string `validate:"required"`
	Credits string `validate:"required"`
}

// Validate checks a draft and converts it into the request body. It runs
// before any network call is attempted.
func Validate(v *validator.Validate, d state.Draft) (dto.CourseRequest, error) {
	if v == nil {
		v = defaultValidator
	}

	fields := requiredFields{
		Name:    strings.TrimSpace(d.Name),
		Subject: strings.TrimSpace(d.Subject),
		Number:  strings.TrimSpace(d.Number),
		Credits: strings.TrimSpace(d.Credits),
	}
	if err := v.Struct(fields); err != nil {
		return dto.CourseRequest{}, apperrors.Wrap(err, apperrors.CodeValidation, apperrors.ErrValidation.Status, apperrors.ErrValidation.Message)
	}

	number, numErr := strconv.Atoi(fields.Number)
	credits, credErr := strconv.Atoi(fields.Credits)
	if numErr != nil || credErr != nil {
		return dto.CourseRequest{}, apperrors.Clone(apperrors.ErrValidation, RangeMessage)
	}

	req := dto.CourseRequest{
		Name:        fields.Name,
		Subject:     fields.Subject,
		Number:      number,
		Credits:     credits,
		Description: strings.TrimSpace(d.Description),
	}
	if err := v.Struct(req); err != nil {
		return dto.CourseRequest{}, apperrors.Wrap(err, apperrors.CodeValidation, apperrors.ErrValidation.Status, messageFor(err))
	}

	return req, nil
}

// messageFor picks the user message for the first field that failed.
func messageFor(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return RangeMessage
	}
	switch fieldErrs[0].StructField() {
	case "Name":
		return NameLengthMessage
	case "Subject":
		return SubjectLengthMessage
	default:
		return RangeMessage
	}
}
