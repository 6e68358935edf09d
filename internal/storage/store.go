package storage

import (
	"context"
)

// Logical keys of the local persistent store. Each holds one JSON value that
// is loaded and written back whole on every access.
const (
	KeySlips       = "dispatchflow_slips"
	KeyInvoices    = "dispatchflow_invoices"
	KeySettings    = "dispatchflow_settings"
	KeySlipSeq     = "dispatchflow_seq"
	KeyInvoiceSeq  = "dispatchflow_inv_seq"
	KeyThemeChoice = "dispatchflow_theme"
)

// Store is a durable key-value map between a logical key and a JSON value.
// Get returns sentinel.ErrNotFound for a missing key.
//
// Stores are interface-driven so services stay testable and the backend
// (file, memory, Redis, PostgreSQL) is a deployment choice.
type Store interface {
	Get(ctx context.Context, key string, dst any) error
	Put(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}
