package sheets

import (
	"errors"
	"fmt"
)

var ErrTargetNotConfigured = errors.New("spreadsheet target not configured")

// HTTPError is a non-2xx answer from the relay or the values API. It exposes
// the status so the backoff executor can tell terminal from transient.
type HTTPError struct {
	Endpoint string
	Status   int
	Message  string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: HTTP %d", e.Endpoint, e.Status)
}

func (e *HTTPError) StatusCode() int {
	return e.Status
}

// RejectedError is a relay answer of {"success": false}. The relay reached
// the spreadsheet and refused the row (missing tab, no permission), so
// retrying cannot help; it reports 422 to the backoff executor.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	if e.Reason == "" {
		return "relay rejected row"
	}
	return "relay rejected row: " + e.Reason
}

func (e *RejectedError) StatusCode() int {
	return 422
}
