package sequence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatchflow/internal/storage"
	"dispatchflow/pkg/requestcontext"
)

func at(year int, month time.Month, day int) context.Context {
	return requestcontext.WithTime(context.Background(), time.Date(year, month, day, 9, 30, 0, 0, time.Local))
}

func TestNextSameDayIncrements(t *testing.T) {
	gen := New(storage.NewMemoryStore(), storage.KeySlipSeq)
	ctx := at(2026, time.January, 15)

	first, err := gen.Next(ctx, "DS")
	require.NoError(t, err)
	second, err := gen.Next(ctx, "DS")
	require.NoError(t, err)

	assert.Equal(t, "DS-260115-0001", first)
	assert.Equal(t, "DS-260115-0002", second)
}

func TestNextResetsOnDateRollover(t *testing.T) {
	gen := New(storage.NewMemoryStore(), storage.KeySlipSeq)
	for i := 0; i < 3; i++ {
		_, err := gen.Next(at(2026, time.January, 15), "DS")
		require.NoError(t, err)
	}

	id, err := gen.Next(at(2026, time.January, 16), "DS")
	require.NoError(t, err)
	assert.Equal(t, "DS-260116-0001", id)
}

func TestNamespacesAreIndependent(t *testing.T) {
	store := storage.NewMemoryStore()
	slips := New(store, storage.KeySlipSeq)
	invoices := New(store, storage.KeyInvoiceSeq)
	ctx := at(2026, time.March, 2)

	_, err := slips.Next(ctx, "DS")
	require.NoError(t, err)
	_, err = slips.Next(ctx, "DS")
	require.NoError(t, err)

	id, err := invoices.Next(ctx, "INV")
	require.NoError(t, err)
	assert.Equal(t, "INV-260302-0001", id)
}

func TestCounterSurvivesNewGenerator(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := at(2026, time.January, 15)
	_, err := New(store, storage.KeySlipSeq).Next(ctx, "DS")
	require.NoError(t, err)

	id, err := New(store, storage.KeySlipSeq).Next(ctx, "DS")
	require.NoError(t, err)
	assert.Equal(t, "DS-260115-0002", id)
}

func TestTodayCount(t *testing.T) {
	gen := New(storage.NewMemoryStore(), storage.KeySlipSeq)
	ctx := at(2026, time.January, 15)

	count, err := gen.TodayCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	for i := 0; i < 4; i++ {
		_, err := gen.Next(ctx, "DS")
		require.NoError(t, err)
	}
	count, err = gen.TodayCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	count, err = gen.TodayCount(at(2026, time.January, 16))
	require.NoError(t, err)
	assert.Zero(t, count, "yesterday's counter does not count today")
}

type failingStore struct{ err error }

func (f failingStore) Get(context.Context, string, any) error { return f.err }
func (f failingStore) Put(context.Context, string, any) error { return f.err }

func TestNextPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("disk full")
	_, err := New(failingStore{err: boom}, storage.KeySlipSeq).Next(context.Background(), "DS")
	assert.ErrorIs(t, err, boom)
}

func TestFormatWidensPastFourDigits(t *testing.T) {
	assert.Equal(t, "DS-260115-10000", Format("DS", "260115", 10000))
}
