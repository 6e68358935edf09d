// Package app assembles the service from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"dispatchflow/internal/extraction"
	"dispatchflow/internal/invoice"
	"dispatchflow/internal/platform/config"
	"dispatchflow/internal/platform/metrics"
	"dispatchflow/internal/platform/postgres"
	"dispatchflow/internal/platform/redis"
	"dispatchflow/internal/reconcile"
	"dispatchflow/internal/scanner"
	"dispatchflow/internal/sequence"
	"dispatchflow/internal/settings"
	"dispatchflow/internal/sheets"
	"dispatchflow/internal/slip"
	"dispatchflow/internal/storage"
	httptransport "dispatchflow/internal/transport/http"
	"dispatchflow/pkg/platform/retry"
)

// Scan sessions idle this long are forgotten.
const (
	SessionIdle   = 30 * time.Minute
	PruneInterval = 5 * time.Minute
)

// App is the assembled service.
type App struct {
	Handler  http.Handler
	Settings *settings.Service
	Desk     *scanner.Desk

	logger  *slog.Logger
	closers []func() error
}

// Registry is what the app needs from a Prometheus registry.
type Registry interface {
	prometheus.Registerer
	prometheus.Gatherer
}

// Build opens the configured store, loads settings and wires every component.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger, reg Registry) (*App, error) {
	a := &App{logger: logger}

	store, err := a.openStore(ctx, cfg.Store)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	m := metrics.New(reg)
	retryOpts := []retry.Option{
		retry.WithAttempts(cfg.Retry.Attempts),
		retry.WithBaseDelay(cfg.Retry.BaseDelay),
		retry.WithMaxDelay(cfg.Retry.MaxDelay),
	}
	policy, err := reconcile.ParsePolicy(cfg.SyncFailurePolicy)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	settingsSvc := settings.NewService(store, defaultsFrom(cfg), settings.WithLogger(logger))
	if err := settingsSvc.Load(ctx); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("load settings: %w", err)
	}

	primary := extraction.NewGeminiClient(cfg.Gemini.APIBase, cfg.Gemini.PrimaryModel, cfg.Gemini.Timeout)
	fallback := extraction.NewGeminiClient(cfg.Gemini.APIBase, cfg.Gemini.FallbackModel, cfg.Gemini.Timeout)
	cascade := extraction.NewCascade(primary, fallback,
		extraction.WithLogger(logger),
		extraction.WithMetrics(m),
		extraction.WithRetryOptions(retryOpts...),
	)

	relay := sheets.NewRelayClient(cfg.Sheets.Timeout)
	reader := sheets.NewReader(cfg.Sheets.APIBase, cfg.Sheets.Timeout)

	slipColl := storage.NewCollection(store, storage.KeySlips, slip.DispatchSlip.RecordID)
	slipSvc := slip.NewService(
		slipColl,
		sequence.New(store, storage.KeySlipSeq),
		reconcile.New[slip.DispatchSlip]("slip", slipColl, relay,
			reconcile.WithPolicy(policy),
			reconcile.WithRetryOptions(retryOpts...),
			reconcile.WithLogger(logger),
			reconcile.WithMetrics(m),
		),
		settingsSvc,
		slip.WithLogger(logger),
		slip.WithHistoryReader(reader),
	)

	invoiceColl := storage.NewCollection(store, storage.KeyInvoices, invoice.InvoiceRecord.RecordID)
	invoiceSvc := invoice.NewService(
		invoiceColl,
		sequence.New(store, storage.KeyInvoiceSeq),
		reconcile.New[invoice.InvoiceRecord]("invoice", invoiceColl, relay,
			reconcile.WithPolicy(policy),
			reconcile.WithRetryOptions(retryOpts...),
			reconcile.WithLogger(logger),
			reconcile.WithMetrics(m),
		),
		settingsSvc,
		invoice.WithLogger(logger),
		invoice.WithHistoryReader(reader),
	)

	desk := scanner.NewDesk(
		func() string { return settingsSvc.Current().GeminiAPIKey },
		[]scanner.Kind{
			{Name: "slip", Extractor: scanner.SlipExtractor(cascade), NewDraft: func() scanner.Draft { return slip.NewDraft() }},
			{Name: "invoice", Extractor: scanner.InvoiceExtractor(cascade), NewDraft: func() scanner.Draft { return invoice.NewDraft() }},
		},
		scanner.WithDeskLogger(logger),
	)

	handler := httptransport.New(desk, slipSvc, invoiceSvc, settingsSvc,
		settings.NewChecker(settingsSvc, primary, reader),
		httptransport.WithLogger(logger),
		httptransport.WithMetrics(m),
		httptransport.WithGatherer(reg),
	)

	a.Handler = httptransport.NewRouter(handler)
	a.Settings = settingsSvc
	a.Desk = desk
	logger.InfoContext(ctx, "service assembled",
		"store", cfg.Store.Backend,
		"sync_policy", string(policy),
		"primary_model", cfg.Gemini.PrimaryModel,
		"fallback_model", cfg.Gemini.FallbackModel,
	)
	return a, nil
}

func (a *App) openStore(ctx context.Context, cfg config.Store) (storage.Store, error) {
	switch cfg.Backend {
	case config.StoreMemory:
		return storage.NewMemoryStore(), nil
	case config.StoreFile:
		fs, err := storage.OpenFileStore(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		return fs, nil
	case config.StoreRedis:
		client, err := redis.New(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		return storage.NewRedisStore(client.Client, storage.WithKeyPrefix("dispatchflow:")), nil
	case config.StorePostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		ps := storage.NewPostgresStore(db)
		if err := ps.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		return ps, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func defaultsFrom(cfg *config.Config) settings.Defaults {
	return settings.Defaults{
		GeminiAPIKey:  cfg.Gemini.APIKey,
		SlipPrefix:    cfg.SlipPrefix,
		InvoicePrefix: cfg.InvoicePrefix,
		Company: settings.Company{
			Name:    cfg.Company.Name,
			Address: cfg.Company.Address,
			GSTIN:   cfg.Company.GSTIN,
			Phone:   cfg.Company.Phone,
			Email:   cfg.Company.Email,
			LogoURL: cfg.Company.LogoURL,
		},
		SlipStorage: sheets.Target{
			SheetID:  cfg.Sheets.SheetID,
			APIKey:   cfg.Sheets.APIKey,
			TabName:  sheets.DefaultSlipTab,
			RelayURL: cfg.Sheets.RelayURL,
		},
		InvoiceStorage: sheets.Target{
			APIKey:   cfg.Sheets.APIKey,
			TabName:  sheets.DefaultInvoiceTab,
			RelayURL: cfg.Sheets.RelayURL,
		},
	}
}

// PruneSessions drops idle scan sessions every interval until ctx is done.
func (a *App) PruneSessions(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := a.Desk.Prune(idle); n > 0 {
				a.logger.DebugContext(ctx, "idle scan sessions pruned", "count", n)
			}
		}
	}
}

// Close releases store connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
