package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and remote clients return
// these (optionally wrapped) so services can translate them into domain errors.
//
//   - ErrNotFound: key or record does not exist in the store
//   - ErrConflict: a record with the same identifier already exists
//   - ErrUnavailable: backing store or remote endpoint temporarily unavailable
//   - ErrNotConfigured: an optional collaborator has no configuration
var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrUnavailable   = errors.New("unavailable")
	ErrNotConfigured = errors.New("not configured")
)
