package scanner

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"dispatchflow/internal/extraction"
	dErrors "dispatchflow/pkg/domain-errors"
)

// Draft is form state that a successful scan fills and the user edits.
type Draft interface {
	Fill(fields extraction.Fields)
	Set(field, value string) bool
}

// Kind is one document type the desk can scan.
type Kind struct {
	Name      string
	Extractor Extractor
	NewDraft  func() Draft
}

// View is what a client sees of its scanner: the session snapshot plus the
// draft the scan filled.
type View struct {
	Snapshot
	CredentialMissing bool            `json:"credentialMissing"`
	Draft             json.RawMessage `json:"draft"`
}

type station struct {
	kind     Kind
	sessions *Registry

	mu     sync.Mutex
	drafts map[string]Draft
}

// Desk keeps a scanner and a draft per kind and client session.
type Desk struct {
	stations   map[string]*station
	credential func() string
	logger     *slog.Logger
}

type DeskOption func(*Desk)

func WithDeskLogger(logger *slog.Logger) DeskOption {
	return func(d *Desk) {
		d.logger = logger
	}
}

// NewDesk builds a desk for kinds. credential is read on every scan so a key
// saved in settings takes effect immediately.
func NewDesk(credential func() string, kinds []Kind, opts ...DeskOption) *Desk {
	d := &Desk{stations: make(map[string]*station, len(kinds)), credential: credential, logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	for _, k := range kinds {
		extractor := k.Extractor
		d.stations[k.Name] = &station{
			kind: k,
			sessions: NewRegistry(func() *Session {
				return NewSession(extractor, WithLogger(d.logger))
			}),
			drafts: make(map[string]Draft),
		}
	}
	return d
}

// Kinds lists the configured kind names.
func (d *Desk) Kinds() []string {
	out := make([]string, 0, len(d.stations))
	for name := range d.stations {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Scan extracts image for the session and fills its draft on success.
// Extraction failures are reported in the view, not as an error.
func (d *Desk) Scan(ctx context.Context, kind, sessionID, image string) (View, error) {
	st, err := d.station(kind)
	if err != nil {
		return View{}, err
	}
	if strings.TrimSpace(extraction.StripDataURL(image)) == "" {
		return View{}, dErrors.New(dErrors.CodeBadRequest, "image is required")
	}
	credential := d.credential()
	session := st.sessions.Get(sessionID)
	snap := session.Scan(ctx, image, credential, OnSuccess(func(fields extraction.Fields) {
		st.mu.Lock()
		defer st.mu.Unlock()
		st.draftLocked(sessionID).Fill(fields)
	}))
	return d.view(st, sessionID, snap, credential == "")
}

// Retry replays the session's last scan.
func (d *Desk) Retry(ctx context.Context, kind, sessionID string) (View, error) {
	st, err := d.station(kind)
	if err != nil {
		return View{}, err
	}
	snap := st.sessions.Get(sessionID).Retry(ctx)
	return d.view(st, sessionID, snap, d.credential() == "")
}

// Clear resets the session and starts a fresh draft.
func (d *Desk) Clear(kind, sessionID string) (View, error) {
	st, err := d.station(kind)
	if err != nil {
		return View{}, err
	}
	if session, ok := st.sessions.Lookup(sessionID); ok {
		session.Clear()
	}
	st.mu.Lock()
	delete(st.drafts, sessionID)
	st.mu.Unlock()
	return d.State(kind, sessionID)
}

// State returns the current view. It counts as activity for Prune.
func (d *Desk) State(kind, sessionID string) (View, error) {
	st, err := d.station(kind)
	if err != nil {
		return View{}, err
	}
	snap := st.sessions.Get(sessionID).Snapshot()
	return d.view(st, sessionID, snap, d.credential() == "")
}

// SetFields applies user edits to the draft.
func (d *Desk) SetFields(kind, sessionID string, values map[string]string) (View, error) {
	st, err := d.station(kind)
	if err != nil {
		return View{}, err
	}
	st.mu.Lock()
	draft := st.draftLocked(sessionID)
	var unknown []string
	for field, value := range values {
		if !draft.Set(field, value) {
			unknown = append(unknown, field)
		}
	}
	st.mu.Unlock()
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return View{}, dErrors.New(dErrors.CodeValidation, "unknown field: "+strings.Join(unknown, ", "))
	}
	return d.State(kind, sessionID)
}

// Prune drops sessions and drafts idle for longer than idle.
func (d *Desk) Prune(idle time.Duration) int {
	removed := 0
	for _, st := range d.stations {
		removed += st.sessions.Prune(idle)
		st.mu.Lock()
		for id := range st.drafts {
			if _, ok := st.sessions.Lookup(id); !ok {
				delete(st.drafts, id)
			}
		}
		st.mu.Unlock()
	}
	return removed
}

func (d *Desk) station(kind string) (*station, error) {
	st, ok := d.stations[kind]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "unknown scan kind "+kind)
	}
	return st, nil
}

func (d *Desk) view(st *station, sessionID string, snap Snapshot, credentialMissing bool) (View, error) {
	st.mu.Lock()
	raw, err := json.Marshal(st.draftLocked(sessionID))
	st.mu.Unlock()
	if err != nil {
		return View{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode draft")
	}
	return View{Snapshot: snap, CredentialMissing: credentialMissing, Draft: raw}, nil
}

// draftLocked must be called with st.mu held.
func (st *station) draftLocked(sessionID string) Draft {
	draft, ok := st.drafts[sessionID]
	if !ok {
		draft = st.kind.NewDraft()
		st.drafts[sessionID] = draft
	}
	return draft
}
