package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForStatusUsesServerMessageVerbatim(t *testing.T) {
	err := ForStatus(http.StatusNotFound, "Course does not exist")
	require.Equal(t, CodeNotFound, err.Code)
	require.Equal(t, "Course does not exist", err.Message)
	require.Equal(t, http.StatusNotFound, err.Status)
	require.True(t, FromServer(fmt.Errorf("delete: %w", err)))
}

func TestForStatusFallsBackToStatusText(t *testing.T) {
	err := ForStatus(http.StatusBadGateway, "")
	require.Equal(t, CodeServer, err.Code)
	require.Equal(t, "Request failed with status 502", err.Message)
	require.False(t, FromServer(err))
	require.False(t, FromServer(ErrNotFound))
}

func TestCloneKeepsIdentityForErrorsIs(t *testing.T) {
	cloned := Clone(ErrUnauthorized, "session expired")
	require.True(t, errors.Is(cloned, ErrUnauthorized))
	require.False(t, errors.Is(cloned, ErrValidation))
	require.Equal(t, "session expired", cloned.Message)
	require.Equal(t, "You must be logged in to perform this action.", ErrUnauthorized.Message)
}

func TestFromErrorWrapsPlainErrors(t *testing.T) {
	plain := errors.New("boom")
	err := FromError(fmt.Errorf("outer: %w", plain))
	require.Equal(t, CodeServer, err.Code)
	require.ErrorIs(t, err, plain)
	require.Nil(t, FromError(nil))
}

func TestMessageAndHasCode(t *testing.T) {
	wrapped := fmt.Errorf("submit: %w", ErrValidation)
	require.Equal(t, ErrValidation.Message, Message(wrapped))
	require.True(t, HasCode(wrapped, CodeValidation))
	require.False(t, HasCode(errors.New("x"), CodeValidation))
	require.Empty(t, Message(nil))
}
