// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets the values; services read them without importing net/http.
// Tests inject a fixed clock with WithTime so date-coded identifiers are
// deterministic:
//
//	ctx = requestcontext.WithTime(ctx, time.Date(2026, 1, 15, 9, 0, 0, 0, time.Local))
//	id, _ := generator.Next(ctx, "DS") // DS-260115-0001
package requestcontext

import (
	"context"
	"time"
)

type (
	requestIDKey   struct{}
	requestTimeKey struct{}
	scanSessionKey struct{}
)

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// ScanSession retrieves the scan session identifier chosen by the client.
func ScanSession(ctx context.Context) string {
	if id, ok := ctx.Value(scanSessionKey{}).(string); ok {
		return id
	}
	return ""
}

// WithScanSession injects a scan session identifier into the context.
func WithScanSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, scanSessionKey{}, id)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (workers, CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
