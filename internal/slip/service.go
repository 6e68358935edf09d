package slip

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

// Store is the local slip collection.
type Store interface {
	All(ctx context.Context) ([]DispatchSlip, error)
	Find(ctx context.Context, slipNumber string) (DispatchSlip, error)
	Remove(ctx context.Context, slipNumber string) error
}

// IDGenerator issues slip numbers.
type IDGenerator interface {
	Next(ctx context.Context, prefix string) (string, error)
	TodayCount(ctx context.Context) (int, error)
}

// Saver persists a finalized slip locally and to the sheet.
type Saver interface {
	Save(ctx context.Context, rec DispatchSlip, target sheets.Target) (reconcile.Result, error)
}

// SettingsSource supplies the active settings.
type SettingsSource interface {
	Current() settings.Settings
}

// HistoryReader reads the remote slip tab.
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

// WithHistoryReader enables RemoteHistory.
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

// Preview validates form and turns it into a numbered slip ready for review.
// The slip number is consumed even if the slip is never saved.
func (s *Service) Preview(ctx context.Context, form Form) (DispatchSlip, error) {
	if err := Validate(form); err != nil {
		return DispatchSlip{}, err
	}
	number, err := s.ids.Next(ctx, s.settings.Current().SlipPrefix)
	if err != nil {
		return DispatchSlip{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate slip number")
	}
	return DispatchSlip{
		SlipNumber: number,
		CreatedAt:  records.Timestamp(requestcontext.Now(ctx)),
		Form:       form,
		Status:     StatusDispatched,
	}, nil
}

// Save finalizes a previewed slip.
func (s *Service) Save(ctx context.Context, d DispatchSlip) (DispatchSlip, reconcile.Result, error) {
	if d.SlipNumber == "" {
		return DispatchSlip{}, reconcile.Result{}, dErrors.New(dErrors.CodeBadRequest, "slipNumber is required; preview the slip first")
	}
	if err := Validate(d.Form); err != nil {
		return DispatchSlip{}, reconcile.Result{}, err
	}
	if d.Status == "" {
		d.Status = StatusDispatched
	}
	if !d.Status.Valid() {
		return DispatchSlip{}, reconcile.Result{}, dErrors.New(dErrors.CodeValidation, "status must be dispatched, pending or cancelled")
	}
	if d.CreatedAt == "" {
		d.CreatedAt = records.Timestamp(requestcontext.Now(ctx))
	}

	res, err := s.saver.Save(ctx, d, s.settings.Current().SlipStorage)
	if err != nil {
		return DispatchSlip{}, res, err
	}
	s.logger.InfoContext(ctx, "dispatch slip saved",
		"request_id", requestcontext.RequestID(ctx),
		"slip_number", d.SlipNumber,
		"sync", string(res.Status),
	)
	return d, res, nil
}

// List returns local slips, newest first, narrowed by filter.
func (s *Service) List(ctx context.Context, filter records.Filter) ([]DispatchSlip, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load slips")
	}
	out := make([]DispatchSlip, 0, len(all))
	for _, d := range all {
		if filter.Match(d.CreatedAt,
			d.SlipNumber, d.CustomerName, d.BatchLotNumber, d.ItemDescription, d.PONumber, d.VehicleNumber,
		) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, slipNumber string) (DispatchSlip, error) {
	d, err := s.store.Find(ctx, slipNumber)
	if errors.Is(err, sentinel.ErrNotFound) {
		return DispatchSlip{}, dErrors.New(dErrors.CodeNotFound, "slip not found")
	}
	if err != nil {
		return DispatchSlip{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load slip")
	}
	return d, nil
}

// Delete removes a slip from the local store. The sheet row is left alone.
func (s *Service) Delete(ctx context.Context, slipNumber string) error {
	err := s.store.Remove(ctx, slipNumber)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "slip not found")
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete slip")
	}
	s.logger.InfoContext(ctx, "dispatch slip deleted",
		"request_id", requestcontext.RequestID(ctx),
		"slip_number", slipNumber,
	)
	return nil
}

// RemoteHistory reads the slip tab, most recent first.
func (s *Service) RemoteHistory(ctx context.Context) ([]DispatchSlip, error) {
	target := s.settings.Current().SlipStorage.WithDefaultTab(sheets.DefaultSlipTab)
	if s.history == nil || !target.CanRead() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "slip sheet is not configured for reading")
	}
	rows, err := s.history.Fetch(ctx, target, sheets.SlipRange)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read slip sheet")
	}
	out := make([]DispatchSlip, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromSheetRow(row))
	}
	return out, nil
}

// TodayCount is the number of slip numbers issued today.
func (s *Service) TodayCount(ctx context.Context) (int, error) {
	return s.ids.TodayCount(ctx)
}
