package invoice

import (
	"context"
	"errors"
	"log/slog"

	"dispatchflow/internal/reconcile"
	"dispatchflow/internal/records"
	"dispatchflow/internal/settings"
	"dispatchflow/internal/sheets"
	dErrors "dispatchflow/pkg/domain-errors"
	"dispatchflow/pkg/platform/sentinel"
	"dispatchflow/pkg/requestcontext"
)

// Store is the local invoice collection.
type Store interface {
	All(ctx context.Context) ([]InvoiceRecord, error)
	Find(ctx context.Context, invoiceID string) (InvoiceRecord, error)
	Remove(ctx context.Context, invoiceID string) error
	Update(ctx context.Context, invoiceID string, fn func(*InvoiceRecord) error) (InvoiceRecord, error)
}

type IDGenerator interface {
	Next(ctx context.Context, prefix string) (string, error)
	TodayCount(ctx context.Context) (int, error)
}

type Saver interface {
	Save(ctx context.Context, rec InvoiceRecord, target sheets.Target) (reconcile.Result, error)
}

type SettingsSource interface {
	Current() settings.Settings
}

type HistoryReader interface {
	Fetch(ctx context.Context, target sheets.Target, rangeSpec string) ([][]string, error)
}

type Service struct {
	store    Store
	ids      IDGenerator
	saver    Saver
	settings SettingsSource
	history  HistoryReader
	logger   *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithHistoryReader(r HistoryReader) Option {
	return func(s *Service) {
		s.history = r
	}
}

func NewService(store Store, ids IDGenerator, saver Saver, settings SettingsSource, opts ...Option) *Service {
	s := &Service{store: store, ids: ids, saver: saver, settings: settings, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Preview validates form and assigns an invoice ID. The ID is consumed even if
// the invoice is never saved.
func (s *Service) Preview(ctx context.Context, form Form) (InvoiceRecord, error) {
	if err := Validate(form); err != nil {
		return InvoiceRecord{}, err
	}
	id, err := s.ids.Next(ctx, s.settings.Current().InvoicePrefix)
	if err != nil {
		return InvoiceRecord{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate invoice id")
	}
	return InvoiceRecord{
		InvoiceID: id,
		CreatedAt: records.Timestamp(requestcontext.Now(ctx)),
		Form:      form,
		Status:    StatusReceived,
	}, nil
}

func (s *Service) Save(ctx context.Context, rec InvoiceRecord) (InvoiceRecord, reconcile.Result, error) {
	if rec.InvoiceID == "" {
		return InvoiceRecord{}, reconcile.Result{}, dErrors.New(dErrors.CodeBadRequest, "invoiceId is required; preview the invoice first")
	}
	if err := Validate(rec.Form); err != nil {
		return InvoiceRecord{}, reconcile.Result{}, err
	}
	rec.Status = StatusReceived
	if rec.PaymentStatus != "" && rec.PaymentStatus != PaymentPaid {
		rec.PaymentStatus = ""
	}
	if rec.CreatedAt == "" {
		rec.CreatedAt = records.Timestamp(requestcontext.Now(ctx))
	}

	res, err := s.saver.Save(ctx, rec, s.settings.Current().InvoiceStorage)
	if err != nil {
		return InvoiceRecord{}, res, err
	}
	s.logger.InfoContext(ctx, "invoice saved",
		"request_id", requestcontext.RequestID(ctx),
		"invoice_id", rec.InvoiceID,
		"sync", string(res.Status),
	)
	return rec, res, nil
}

// List returns local invoices, newest first, narrowed by filter.
func (s *Service) List(ctx context.Context, filter records.Filter) ([]InvoiceRecord, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load invoices")
	}
	out := make([]InvoiceRecord, 0, len(all))
	for _, r := range all {
		if filter.Match(r.CreatedAt, r.InvoiceID, r.InvoiceNumber, r.VendorName, r.BuyerName) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, invoiceID string) (InvoiceRecord, error) {
	r, err := s.store.Find(ctx, invoiceID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return InvoiceRecord{}, dErrors.New(dErrors.CodeNotFound, "invoice not found")
	}
	if err != nil {
		return InvoiceRecord{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load invoice")
	}
	return r, nil
}

func (s *Service) Delete(ctx context.Context, invoiceID string) error {
	err := s.store.Remove(ctx, invoiceID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "invoice not found")
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete invoice")
	}
	s.logger.InfoContext(ctx, "invoice deleted",
		"request_id", requestcontext.RequestID(ctx),
		"invoice_id", invoiceID,
	)
	return nil
}

// MarkPaid records payment locally. Marking an already paid invoice is a
// no-op.
func (s *Service) MarkPaid(ctx context.Context, invoiceID string) (InvoiceRecord, error) {
	r, err := s.store.Update(ctx, invoiceID, func(r *InvoiceRecord) error {
		r.PaymentStatus = PaymentPaid
		return nil
	})
	if errors.Is(err, sentinel.ErrNotFound) {
		return InvoiceRecord{}, dErrors.New(dErrors.CodeNotFound, "invoice not found")
	}
	if err != nil {
		return InvoiceRecord{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update invoice")
	}
	s.logger.InfoContext(ctx, "invoice marked paid",
		"request_id", requestcontext.RequestID(ctx),
		"invoice_id", invoiceID,
	)
	return r, nil
}

// RemoteHistory reads the invoice tab, most recent first.
func (s *Service) RemoteHistory(ctx context.Context) ([]InvoiceRecord, error) {
	target := s.settings.Current().InvoiceStorage.WithDefaultTab(sheets.DefaultInvoiceTab)
	if s.history == nil || !target.CanRead() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "invoice sheet is not configured for reading")
	}
	rows, err := s.history.Fetch(ctx, target, sheets.InvoiceRange)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read invoice sheet")
	}
	out := make([]InvoiceRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromSheetRow(row))
	}
	return out, nil
}

func (s *Service) TodayCount(ctx context.Context) (int, error) {
	return s.ids.TodayCount(ctx)
}
