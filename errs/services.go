package errs

import (
	"errors"
	"fmt"
)

// Upstream provider errors
var (
	ErrContentFetch  = errors.New("content fetch failed")
	ErrEmailProvider = errors.New("email provider error")
	ErrConfigMissing = errors.New("configuration missing")
)

// FetchKind classifies why a content-store call failed.
type FetchKind string

const (
	FetchNetwork   FetchKind = "network"
	FetchMalformed FetchKind = "malformed"
	FetchStore     FetchKind = "store"
)

// ContentFetchError is returned by the content client for any failed query.
// Callers decide whether it is fatal for the page being rendered.
type ContentFetchError struct {
	Query      string
	Kind       FetchKind
	StatusCode int
	Cause      error
}

func (e *ContentFetchError) Error() string {
	msg := fmt.Sprintf("%s: %s query %q", ErrContentFetch.Error(), e.Kind, e.Query)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ContentFetchError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrContentFetch}
	}
	return []error{ErrContentFetch, e.Cause}
}

func NewContentFetchError(query string, kind FetchKind, statusCode int, cause error) *ContentFetchError {
	return &ContentFetchError{Query: query, Kind: kind, StatusCode: statusCode, Cause: cause}
}

// EmailProviderError is a non-success answer from the email delivery API.
type EmailProviderError struct {
	StatusCode int
	Message    string
}

func (e *EmailProviderError) Error() string {
	return fmt.Sprintf("%s (status %d): %s", ErrEmailProvider.Error(), e.StatusCode, e.Message)
}

func (e *EmailProviderError) Unwrap() error {
	return ErrEmailProvider
}

func NewConfigMissingError(key string) error {
	return fmt.Errorf("%w: %s", ErrConfigMissing, key)
}

func IsContentFetchError(err error) bool {
	return errors.Is(err, ErrContentFetch)
}

// FetchKindOf returns the kind of a ContentFetchError anywhere in err's chain.
func FetchKindOf(err error) (FetchKind, bool) {
	var fetchErr *ContentFetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Kind, true
	}
	return "", false
}

func IsEmailProviderError(err error) bool {
	return errors.Is(err, ErrEmailProvider)
}

func IsConfigMissing(err error) bool {
	return errors.Is(err, ErrConfigMissing)
}
