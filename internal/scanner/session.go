// Package scanner holds the per-client scan state machine.
//
//	idle ──Scan──▶ scanning ──▶ success
//	                  │
//	                  └──────▶ error ──Retry──▶ scanning
//
// Every Scan takes a fresh token. A completion whose token is no longer
// current (a newer Scan started, or Clear ran) is dropped: the state does not
// change and the success callback is not invoked.
package scanner

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"dispatchflow/internal/extraction"
	"dispatchflow/pkg/requestcontext"
)

type State string

const (
	StateIdle     State = "idle"
	StateScanning State = "scanning"
	StateSuccess  State = "success"
	StateError    State = "error"
)

const defaultErrorMessage = "OCR failed. Please try again."

// Extractor turns an image into sanitized fields.
type Extractor func(ctx context.Context, image, credential string) (extraction.Fields, error)

// SuccessFunc receives the sanitized fields of a successful scan. It runs with
// the session lock held, so a concurrent Clear waits for it and a scan that
// was cleared never reaches it. It must not call back into the Session.
type SuccessFunc func(extraction.Fields)

// Cascade is the subset of extraction.Cascade the default extractors need.
type Cascade interface {
	Extract(ctx context.Context, req extraction.Request, credential string) (map[string]any, error)
}

// SlipExtractor composes the cascade with the dispatch-tag sanitizer.
func SlipExtractor(c Cascade) Extractor {
	return func(ctx context.Context, image, credential string) (extraction.Fields, error) {
		raw, err := c.Extract(ctx, extraction.SlipRequest(image), credential)
		if err != nil {
			return nil, err
		}
		return extraction.Sanitize(raw, extraction.SlipFields), nil
	}
}

// InvoiceExtractor composes the cascade with the invoice sanitizer.
func InvoiceExtractor(c Cascade) Extractor {
	return func(ctx context.Context, image, credential string) (extraction.Fields, error) {
		raw, err := c.Extract(ctx, extraction.InvoiceRequest(image), credential)
		if err != nil {
			return nil, err
		}
		return extraction.Sanitize(raw, extraction.InvoiceFields), nil
	}
}

// Snapshot is the observable state of a session.
type Snapshot struct {
	State        State             `json:"state"`
	Error        string            `json:"error,omitempty"`
	IsQuota      bool              `json:"isQuota"`
	Result       string            `json:"result,omitempty"`
	Fields       extraction.Fields `json:"fields,omitempty"`
	HasLastImage bool              `json:"hasLastImage"`
}

type params struct {
	credential string
	extractor  Extractor
	onSuccess  SuccessFunc
}

// ScanOption customizes a single Scan. The options are remembered for Retry.
type ScanOption func(*params)

// WithExtractor replaces the session's default extractor for this scan.
func WithExtractor(fn Extractor) ScanOption {
	return func(p *params) {
		if fn != nil {
			p.extractor = fn
		}
	}
}

// OnSuccess registers the callback invoked once per successful scan.
func OnSuccess(fn SuccessFunc) ScanOption {
	return func(p *params) {
		p.onSuccess = fn
	}
}

// Session is one client's scanner. Safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	extractor Extractor
	logger    *slog.Logger

	token     uint64
	state     State
	err       string
	isQuota   bool
	result    string
	fields    extraction.Fields
	lastImage string
	last      *params
}

type Option func(*Session)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

func NewSession(extractor Extractor, opts ...Option) *Session {
	s := &Session{extractor: extractor, state: StateIdle, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan runs extraction for image and blocks until it completes. Without a
// credential it does nothing: no call is made and the state is untouched.
func (s *Session) Scan(ctx context.Context, image, credential string, opts ...ScanOption) Snapshot {
	if credential == "" {
		return s.Snapshot()
	}
	p := params{credential: credential, extractor: s.extractor}
	for _, opt := range opts {
		opt(&p)
	}
	return s.start(ctx, image, p)
}

// Retry replays the last scan with the same image and options. It is a no-op
// when nothing has been scanned since the last Clear.
func (s *Session) Retry(ctx context.Context) Snapshot {
	s.mu.Lock()
	if s.last == nil || s.lastImage == "" {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap
	}
	image, p := s.lastImage, *s.last
	s.mu.Unlock()
	return s.start(ctx, image, p)
}

// Clear resets the session to idle and forgets the retry buffer. Scans still
// in flight are suppressed when they finish.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token++
	s.state = StateIdle
	s.err = ""
	s.isQuota = false
	s.result = ""
	s.fields = nil
	s.lastImage = ""
	s.last = nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) start(ctx context.Context, image string, p params) Snapshot {
	s.mu.Lock()
	s.token++
	token := s.token
	s.lastImage = image
	s.last = &p
	s.state = StateScanning
	s.err = ""
	s.isQuota = false
	s.result = ""
	s.fields = nil
	s.mu.Unlock()

	fields, err := p.extractor(ctx, image, p.credential)

	s.mu.Lock()
	if token != s.token {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.logger.DebugContext(ctx, "stale scan result discarded", "request_id", requestcontext.RequestID(ctx))
		return snap
	}
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = defaultErrorMessage
		}
		s.state = StateError
		s.err = msg
		s.isQuota = extraction.IsQuotaError(err)
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.logger.WarnContext(ctx, "scan failed",
			"request_id", requestcontext.RequestID(ctx),
			"quota", snap.IsQuota,
			"error", err,
		)
		return snap
	}

	raw, _ := json.MarshalIndent(fields, "", "  ")
	s.state = StateSuccess
	s.result = string(raw)
	s.fields = fields
	if p.onSuccess != nil {
		p.onSuccess(fields)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	return snap
}

func (s *Session) snapshotLocked() Snapshot {
	var fields extraction.Fields
	if s.fields != nil {
		fields = make(extraction.Fields, len(s.fields))
		for k, v := range s.fields {
			fields[k] = v
		}
	}
	return Snapshot{
		State:        s.state,
		Error:        s.err,
		IsQuota:      s.isQuota,
		Result:       s.result,
		Fields:       fields,
		HasLastImage: s.lastImage != "",
	}
}
