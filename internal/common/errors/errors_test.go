package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnsupportedIntentError_CarriesName(t *testing.T) {
	err := NewUnsupportedIntentError("orderFlowers")

	assert.Equal(t, ErrCodeUnsupportedIntent, err.Code)
	assert.Contains(t, err.Error(), "orderFlowers")
	assert.Equal(t, "Intent with name orderFlowers not supported", err.Message)
	assert.False(t, err.Retryable)
}

func TestNormalize(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, Normalize(nil))
	})

	t.Run("wrapped standard error is found", func(t *testing.T) {
		inner := NewInvalidInvocationSourceError("Bogus")
		wrapped := fmt.Errorf("dispatch: %w", inner)

		got := Normalize(wrapped)
		require.NotNil(t, got)
		assert.Same(t, inner, got)
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		cause := stderrors.New("kaboom")
		got := Normalize(cause)

		assert.Equal(t, ErrCodeInternal, got.Code)
		assert.Equal(t, "kaboom", got.Details)
		assert.True(t, stderrors.Is(got, cause))
	})
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewInvalidRequestError("bad json", nil))

	assert.True(t, HasCode(err, ErrCodeInvalidRequest))
	assert.False(t, HasCode(err, ErrCodeUnsupportedIntent))
	assert.False(t, HasCode(stderrors.New("plain"), ErrCodeInvalidRequest))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeInvalidRequest, http.StatusBadRequest},
		{ErrCodeInvalidInvocationSource, http.StatusBadRequest},
		{ErrCodeUnsupportedIntent, http.StatusUnprocessableEntity},
		{ErrCodeNotificationSendFailed, http.StatusBadGateway},
		{ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.code))
		})
	}
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "CONFIGURATION", GetErrorCategory(ErrCodeUnsupportedIntent))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidRequest))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidInvocationSource))
	assert.Equal(t, "NOTIFICATION", GetErrorCategory(ErrCodeNotificationSendFailed))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}
