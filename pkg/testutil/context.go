package testutil

import (
	"net/http"

	"dispatchflow/pkg/requestcontext"
)

// WithScanSession sets the scan session header and context value.
func WithScanSession(req *http.Request, sessionID string) *http.Request {
	req.Header.Set("X-Scan-Session", sessionID)
	return req.WithContext(requestcontext.WithScanSession(req.Context(), sessionID))
}
