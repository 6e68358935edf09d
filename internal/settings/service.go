package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"dispatchflow/internal/storage"
	dErrors "dispatchflow/pkg/domain-errors"
	"dispatchflow/pkg/platform/sentinel"
)

// Store is the subset of the local store settings persist to.
type Store interface {
	Get(ctx context.Context, key string, dst any) error
	Put(ctx context.Context, key string, value any) error
}

// Service owns the active settings. Reads are served from memory; Save writes
// the overrides back wholesale.
type Service struct {
	mu        sync.RWMutex
	store     Store
	defaults  Defaults
	overrides Overrides
	logger    *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(store Store, defaults Defaults, opts ...Option) *Service {
	s := &Service{store: store, defaults: defaults, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the stored overrides. A missing or unreadable value leaves the
// environment defaults in effect.
func (s *Service) Load(ctx context.Context) error {
	var o Overrides
	err := s.store.Get(ctx, storage.KeySettings, &o)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		o = Overrides{}
	case err != nil:
		s.logger.WarnContext(ctx, "stored settings unreadable, using defaults", "error", err)
		o = Overrides{}
	}
	s.mu.Lock()
	s.overrides = o
	s.mu.Unlock()
	return nil
}

// Current returns the merged settings.
func (s *Service) Current() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Merge(s.defaults, s.overrides)
}

// Overrides returns the stored overrides as last loaded or saved.
func (s *Service) Overrides() Overrides {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overrides
}

// Save replaces the stored overrides and returns the new merged view.
func (s *Service) Save(ctx context.Context, o Overrides) (Settings, error) {
	if err := s.store.Put(ctx, storage.KeySettings, o); err != nil {
		return Settings{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save settings")
	}
	s.mu.Lock()
	s.overrides = o
	merged := Merge(s.defaults, o)
	s.mu.Unlock()
	s.logger.InfoContext(ctx, "settings saved",
		"slip_sync", merged.SlipStorage.CanAppend(),
		"invoice_sync", merged.InvoiceStorage.CanAppend(),
	)
	return merged, nil
}

// Theme returns the stored theme preference, light when unset.
func (s *Service) Theme(ctx context.Context) (string, error) {
	var theme string
	err := s.store.Get(ctx, storage.KeyThemeChoice, &theme)
	if errors.Is(err, sentinel.ErrNotFound) {
		return ThemeLight, nil
	}
	if err != nil {
		return "", fmt.Errorf("load theme: %w", err)
	}
	if theme != ThemeDark {
		return ThemeLight, nil
	}
	return theme, nil
}

func (s *Service) SetTheme(ctx context.Context, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return dErrors.New(dErrors.CodeValidation, "theme must be light or dark")
	}
	if err := s.store.Put(ctx, storage.KeyThemeChoice, theme); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save theme")
	}
	return nil
}
