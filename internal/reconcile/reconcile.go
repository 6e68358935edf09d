// Package reconcile saves a finalized record locally and then mirrors it to
// the spreadsheet.
//
// The local prepend always happens first. The remote append is attempted only
// when the target is fully configured, exactly once per save, under the
// backoff executor. What happens to the local copy when the append fails is
// one named policy shared by every record type.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"dispatchflow/internal/platform/metrics"
	"dispatchflow/internal/sheets"
	dErrors "dispatchflow/pkg/domain-errors"
	"dispatchflow/pkg/platform/retry"
	"dispatchflow/pkg/platform/sentinel"
	"dispatchflow/pkg/requestcontext"
)

// Policy decides the fate of the local record when the remote append fails.
type Policy string

const (
	// PolicyRollback removes the local record and reports a sync failure.
	PolicyRollback Policy = "rollback"
	// PolicyKeepLocal keeps the local record and reports a warning.
	PolicyKeepLocal Policy = "keep-local"
)

// ParsePolicy accepts the SYNC_FAILURE_POLICY values.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyRollback:
		return PolicyRollback, nil
	case PolicyKeepLocal:
		return PolicyKeepLocal, nil
	default:
		return "", fmt.Errorf("unknown sync failure policy %q", s)
	}
}

type Status string

const (
	StatusLocalOnly  Status = "local_only"
	StatusSynced     Status = "synced"
	StatusSyncFailed Status = "sync_failed"
)

// Result reports how a save went.
type Result struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
}

const (
	msgLocalOnly  = "Saved successfully."
	msgSynced     = "Saved locally and synced to Google Sheets."
	msgKeptLocal  = "Saved locally. Cloud sync failed."
	msgRolledBack = "Cloud sync failed. The record was not saved."
)

// Record is a finalized record that can be rendered as a sheet row.
type Record interface {
	RecordID() string
	SheetRow() []string
}

// Collection is the local store the reconciler prepends to.
type Collection[T any] interface {
	Prepend(ctx context.Context, item T) error
	Remove(ctx context.Context, id string) error
}

// Appender pushes one row to the spreadsheet.
type Appender interface {
	Append(ctx context.Context, target sheets.Target, row []string) error
}

type config struct {
	policy    Policy
	retryOpts []retry.Option
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

type Option func(*config)

func WithPolicy(p Policy) Option {
	return func(c *config) {
		c.policy = p
	}
}

func WithRetryOptions(opts ...retry.Option) Option {
	return func(c *config) {
		c.retryOpts = append(c.retryOpts, opts...)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

type Reconciler[T Record] struct {
	kind       string
	collection Collection[T]
	appender   Appender
	cfg        config
}

// New builds a reconciler for one record kind ("slip", "invoice").
func New[T Record](kind string, collection Collection[T], appender Appender, opts ...Option) *Reconciler[T] {
	cfg := config{
		policy: PolicyRollback,
		logger: slog.Default(),
		tracer: otel.Tracer("dispatchflow/reconcile"),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Reconciler[T]{kind: kind, collection: collection, appender: appender, cfg: cfg}
}

func (r *Reconciler[T]) Policy() Policy {
	return r.cfg.policy
}

// Save stores rec locally and, if target can accept appends, mirrors it.
// Under PolicyRollback a failed append removes rec again and returns an error
// coded sync_failed alongside the result.
func (r *Reconciler[T]) Save(ctx context.Context, rec T, target sheets.Target) (Result, error) {
	id := rec.RecordID()
	ctx, span := r.cfg.tracer.Start(ctx, "reconcile.save", trace.WithAttributes(
		attribute.String("record.kind", r.kind),
		attribute.String("record.id", id),
	))
	defer span.End()

	if err := r.collection.Prepend(ctx, rec); err != nil {
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, sentinel.ErrConflict) {
			return Result{}, dErrors.Wrap(err, dErrors.CodeConflict, fmt.Sprintf("%s %s already exists", r.kind, id))
		}
		return Result{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save locally")
	}
	r.cfg.metrics.IncRecordSaved(r.kind)

	if !target.CanAppend() {
		r.cfg.metrics.IncSyncOutcome(r.kind, string(StatusLocalOnly))
		return Result{Status: StatusLocalOnly, Message: msgLocalOnly}, nil
	}

	row := rec.SheetRow()
	opts := append([]retry.Option{}, r.cfg.retryOpts...)
	opts = append(opts, retry.WithOnRetry(func(attempt int, delay time.Duration, err error) {
		r.cfg.metrics.IncRetry("relay")
		r.cfg.logger.InfoContext(ctx, "relay append failed, backing off",
			"kind", r.kind,
			"attempt", attempt+1,
			"delay_ms", delay.Milliseconds(),
			"error", err,
		)
	}))
	_, err := retry.Do(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.appender.Append(ctx, target, row)
	}, opts...)
	if err == nil {
		r.cfg.metrics.IncSyncOutcome(r.kind, string(StatusSynced))
		return Result{Status: StatusSynced, Message: msgSynced}, nil
	}

	r.cfg.metrics.IncSyncOutcome(r.kind, string(StatusSyncFailed))
	span.SetStatus(codes.Error, err.Error())
	r.cfg.logger.WarnContext(ctx, "cloud sync failed",
		"request_id", requestcontext.RequestID(ctx),
		"kind", r.kind,
		"id", id,
		"policy", string(r.cfg.policy),
		"error", err,
	)

	if r.cfg.policy == PolicyKeepLocal {
		return Result{Status: StatusSyncFailed, Message: msgKeptLocal}, nil
	}

	// The request context may already be done; the rollback must still land.
	if rmErr := r.collection.Remove(context.WithoutCancel(ctx), id); rmErr != nil && !errors.Is(rmErr, sentinel.ErrNotFound) {
		r.cfg.logger.ErrorContext(ctx, "rollback of local record failed",
			"kind", r.kind,
			"id", id,
			"error", rmErr,
		)
	}
	return Result{Status: StatusSyncFailed, Message: msgRolledBack},
		dErrors.Wrap(err, dErrors.CodeSyncFailed, msgRolledBack)
}
