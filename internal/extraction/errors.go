package extraction

import (
	"errors"
	"fmt"
)

// Category is the normalized failure taxonomy for extraction calls.
type Category string

const (
	// CategoryRateLimited indicates quota exhaustion or too many requests
	CategoryRateLimited Category = "rate_limited"

	// CategoryUnavailable indicates a 5xx answer from the model endpoint
	CategoryUnavailable Category = "unavailable"

	// CategoryAuthentication indicates a rejected or missing credential
	CategoryAuthentication Category = "authentication"

	// CategoryBadRequest indicates the endpoint refused the request itself
	CategoryBadRequest Category = "bad_request"

	// CategoryNetwork indicates the request never got an HTTP answer
	CategoryNetwork Category = "network"

	// CategoryTimeout indicates the call exceeded its deadline
	CategoryTimeout Category = "timeout"

	// CategoryEmptyResponse indicates a successful call with no text
	CategoryEmptyResponse Category = "empty_response"

	// CategoryInternal indicates an unexpected local failure
	CategoryInternal Category = "internal"
)

// ErrCredentialMissing is returned when no API key is configured. Scanning
// treats it as a silent no-op.
var ErrCredentialMissing = errors.New("extraction credential missing")

// ExtractionError is a failed call to a model endpoint.
type ExtractionError struct {
	Category   Category
	Model      string
	Status     int
	Message    string
	Underlying error
	Retryable  bool
}

func (e *ExtractionError) Error() string {
	msg := e.Message
	if msg == "" && e.Underlying != nil {
		msg = e.Underlying.Error()
	}
	if e.Status > 0 {
		return fmt.Sprintf("Gemini API error (%s, HTTP %d): %s", e.Model, e.Status, msg)
	}
	return fmt.Sprintf("Gemini API error (%s): %s", e.Model, msg)
}

func (e *ExtractionError) Unwrap() error {
	return e.Underlying
}

// StatusCode exposes the HTTP status to the backoff executor. Zero means the
// call had no HTTP answer.
func (e *ExtractionError) StatusCode() int {
	return e.Status
}

// NewExtractionError builds an ExtractionError, deriving Retryable from the
// category.
func NewExtractionError(category Category, model string, status int, message string, underlying error) *ExtractionError {
	retryable := category == CategoryRateLimited ||
		category == CategoryUnavailable ||
		category == CategoryNetwork ||
		category == CategoryTimeout

	return &ExtractionError{
		Category:   category,
		Model:      model,
		Status:     status,
		Message:    message,
		Underlying: underlying,
		Retryable:  retryable,
	}
}

// categoryForStatus maps an HTTP status to a category.
func categoryForStatus(status int) Category {
	switch {
	case status == 429:
		return CategoryRateLimited
	case status == 401 || status == 403:
		return CategoryAuthentication
	case status >= 500:
		return CategoryUnavailable
	case status >= 400:
		return CategoryBadRequest
	default:
		return CategoryInternal
	}
}

// GetCategory extracts the category from an error.
func GetCategory(err error) Category {
	var ee *ExtractionError
	if errors.As(err, &ee) {
		return ee.Category
	}
	return CategoryInternal
}

// ParseError means the model answered but no JSON object could be recovered
// from its text.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}
