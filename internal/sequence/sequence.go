// Package sequence issues human-readable, date-coded record identifiers of the
// form PREFIX-YYMMDD-NNNN.
//
// Each Generator owns one counter key, so slip numbers and invoice IDs run in
// independent namespaces. The counter resets to 0001 on the first ID of each
// local calendar day.
package sequence

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"dispatchflow/pkg/platform/sentinel"
	"dispatchflow/pkg/requestcontext"
)

// Store is the subset of the local store the generator needs.
type Store interface {
	Get(ctx context.Context, key string, dst any) error
	Put(ctx context.Context, key string, value any) error
}

// counter mirrors the persisted {date, seq} value.
type counter struct {
	Date string `json:"date"`
	Seq  int    `json:"seq"`
}

type Generator struct {
	mu    sync.Mutex
	store Store
	key   string
}

func New(store Store, key string) *Generator {
	return &Generator{store: store, key: key}
}

// DateCode renders t as YYMMDD in its own location.
func DateCode(t time.Time) string {
	return t.Format("060102")
}

// Next advances the counter and returns the new identifier. The clock comes
// from requestcontext.Now so one request stamps a consistent date.
func (g *Generator) Next(ctx context.Context, prefix string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	today := DateCode(requestcontext.Now(ctx))
	c, err := g.load(ctx)
	if err != nil {
		return "", err
	}
	if c.Date == today {
		c.Seq++
	} else {
		c = counter{Date: today, Seq: 1}
	}
	if err := g.store.Put(ctx, g.key, c); err != nil {
		return "", fmt.Errorf("store sequence %s: %w", g.key, err)
	}
	return Format(prefix, today, c.Seq), nil
}

// TodayCount reports how many IDs were issued today.
func (g *Generator) TodayCount(ctx context.Context) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, err := g.load(ctx)
	if err != nil {
		return 0, err
	}
	if c.Date != DateCode(requestcontext.Now(ctx)) {
		return 0, nil
	}
	return c.Seq, nil
}

// Format renders an identifier. Sequence numbers past 9999 widen rather than
// wrap.
func Format(prefix, dateCode string, seq int) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, dateCode, seq)
}

func (g *Generator) load(ctx context.Context) (counter, error) {
	var c counter
	err := g.store.Get(ctx, g.key, &c)
	if errors.Is(err, sentinel.ErrNotFound) {
		return counter{}, nil
	}
	if err != nil {
		return counter{}, fmt.Errorf("load sequence %s: %w", g.key, err)
	}
	return c, nil
}
