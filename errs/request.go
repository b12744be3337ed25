package errs

import (
	"errors"
	"net/http"
)

// Request & Input-Validation Errors
var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidField         = errors.New("invalid field")
	ErrSecretMismatch       = errors.New("secret mismatch")
)

// NewMissingRequiredFieldError reports an absent or empty field. message is what the caller sees.
func NewMissingRequiredFieldError(fieldName, message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        withKind(message, ErrMissingRequiredField),
		Field:      fieldName,
	}
}

// NewInvalidFieldError reports a field that is present but unacceptable.
func NewInvalidFieldError(fieldName, message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        withKind(message, ErrInvalidField),
		Field:      fieldName,
	}
}

func NewSecretMismatchError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        withKind("Invalid secret", ErrSecretMismatch),
	}
}
