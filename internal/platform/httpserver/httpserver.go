package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with defaults sized for image uploads: scans post
// a base64 photo, so reads get more headroom than a plain JSON API would.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      3 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
}
