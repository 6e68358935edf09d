// Package httptransport exposes the dispatch and invoice workflows as a JSON
// API. Handlers decode, delegate to a service, and encode; they hold no
// business rules.
package httptransport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"dispatchflow/internal/invoice"
	"dispatchflow/internal/platform/metrics"
	"dispatchflow/internal/reconcile"
	"dispatchflow/internal/records"
	"dispatchflow/internal/scanner"
	"dispatchflow/internal/settings"
	"dispatchflow/internal/slip"
	dErrors "dispatchflow/pkg/domain-errors"
	"dispatchflow/pkg/platform/httputil"
	"dispatchflow/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

// ScanDesk runs scans per kind and client session.
type ScanDesk interface {
	Scan(ctx context.Context, kind, sessionID, image string) (scanner.View, error)
	Retry(ctx context.Context, kind, sessionID string) (scanner.View, error)
	Clear(kind, sessionID string) (scanner.View, error)
	State(kind, sessionID string) (scanner.View, error)
	SetFields(kind, sessionID string, values map[string]string) (scanner.View, error)
}

// SlipService manages dispatch slips.
type SlipService interface {
	Preview(ctx context.Context, form slip.Form) (slip.DispatchSlip, error)
	Save(ctx context.Context, d slip.DispatchSlip) (slip.DispatchSlip, reconcile.Result, error)
	List(ctx context.Context, filter records.Filter) ([]slip.DispatchSlip, error)
	Get(ctx context.Context, slipNumber string) (slip.DispatchSlip, error)
	Delete(ctx context.Context, slipNumber string) error
	RemoteHistory(ctx context.Context) ([]slip.DispatchSlip, error)
	TodayCount(ctx context.Context) (int, error)
}

// InvoiceService manages invoice records.
type InvoiceService interface {
	Preview(ctx context.Context, form invoice.Form) (invoice.InvoiceRecord, error)
	Save(ctx context.Context, rec invoice.InvoiceRecord) (invoice.InvoiceRecord, reconcile.Result, error)
	List(ctx context.Context, filter records.Filter) ([]invoice.InvoiceRecord, error)
	Get(ctx context.Context, invoiceID string) (invoice.InvoiceRecord, error)
	Delete(ctx context.Context, invoiceID string) error
	MarkPaid(ctx context.Context, invoiceID string) (invoice.InvoiceRecord, error)
	RemoteHistory(ctx context.Context) ([]invoice.InvoiceRecord, error)
	TodayCount(ctx context.Context) (int, error)
}

// SettingsService owns user settings and the theme preference.
type SettingsService interface {
	Current() settings.Settings
	Overrides() settings.Overrides
	Save(ctx context.Context, o settings.Overrides) (settings.Settings, error)
	Theme(ctx context.Context) (string, error)
	SetTheme(ctx context.Context, theme string) error
}

// ConnectivityChecker probes the configured remote collaborators.
type ConnectivityChecker interface {
	Check(ctx context.Context) settings.CheckReport
}

// Handler serves the API.
type Handler struct {
	scans    ScanDesk
	slips    SlipService
	invoices InvoiceService
	settings SettingsService
	checker  ConnectivityChecker
	logger   *slog.Logger
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
}

type Option func(*Handler)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

// WithGatherer serves /metrics from g instead of the default registry.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(h *Handler) {
		h.gatherer = g
	}
}

func New(scans ScanDesk, slips SlipService, invoices InvoiceService, settings SettingsService, checker ConnectivityChecker, opts ...Option) *Handler {
	h := &Handler{
		scans:    scans,
		slips:    slips,
		invoices: invoices,
		settings: settings,
		checker:  checker,
		logger:   slog.Default(),
		gatherer: prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// fail logs err at a level matching its status and writes the error
// envelope. Validation errors carry their per-field messages.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if fields, ok := validationFields(err); ok {
		h.logger.InfoContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"fields", len(fields),
		)
		httputil.WriteErrorWithFields(w, dErrors.Wrap(err, dErrors.CodeValidation, "Please fix the highlighted fields."), fields)
		return
	}

	code, ok := dErrors.HasCode(err)
	if !ok {
		code = dErrors.CodeInternal
	}
	if dErrors.ToHTTPStatus(code) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	} else {
		h.logger.WarnContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}

func validationFields(err error) (map[string]string, bool) {
	var ve *records.ValidationError
	if errors.As(err, &ve) {
		return ve.Fields, true
	}
	return nil, false
}
