package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApiErrKinds(t *testing.T) {
	err := NewMissingRequiredFieldError("name", "All fields are required")
	assert.Equal(t, "All fields are required", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "name", err.Field)
	assert.ErrorIs(t, err, ErrMissingRequiredField)
	assert.NotErrorIs(t, err, ErrInvalidField)

	wrapped := fmt.Errorf("handler: %w", NewInvalidFieldError("email", "Invalid email address"))
	assert.ErrorIs(t, wrapped, ErrInvalidField)

	secret := NewSecretMismatchError()
	assert.ErrorIs(t, secret, ErrSecretMismatch)
	assert.Equal(t, http.StatusUnauthorized, secret.StatusCode)
	assert.Equal(t, "Invalid secret", secret.Message())

	cors := NewCORSError("https://evil.test")
	assert.ErrorIs(t, cors, ErrCORSBlocked)
	assert.Equal(t, "request blocked by CORS policy", cors.Message())
	assert.Contains(t, cors.Error(), "https://evil.test")
}

func TestGetFullError(t *testing.T) {
	inner := NewInvalidFieldError("email", "inner")
	outer := NewInternalErrorWithCause("outer", inner)
	assert.Equal(t, "outer -> inner", outer.GetFullError())
	assert.ErrorIs(t, outer, ErrInternal)

	plain := NewInternalErrorWithCause("outer", errors.New("boom"))
	assert.Equal(t, "outer -> boom", plain.GetFullError())
}

func TestContentFetchError(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("content.Fetch: %w", NewContentFetchError("allProjects", FetchNetwork, 0, cause))

	assert.True(t, IsContentFetchError(err))
	assert.True(t, errors.Is(err, cause))
	kind, ok := FetchKindOf(err)
	assert.True(t, ok)
	assert.Equal(t, FetchNetwork, kind)
	assert.Contains(t, err.Error(), `network query "allProjects"`)

	_, ok = FetchKindOf(errors.New("other"))
	assert.False(t, ok)
}

func TestEmailProviderError(t *testing.T) {
	err := fmt.Errorf("send: %w", &EmailProviderError{StatusCode: 422, Message: "invalid from"})
	assert.True(t, IsEmailProviderError(err))
	assert.Contains(t, err.Error(), "status 422")
	assert.True(t, IsConfigMissing(NewConfigMissingError("RESEND_API_KEY")))
}
