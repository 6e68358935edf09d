package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatchflow/pkg/platform/sentinel"
)

type record struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func newRecords() *Collection[record] {
	return NewCollection(NewMemoryStore(), KeySlips, func(r record) string { return r.ID })
}

func TestCollectionAllOnEmptyStore(t *testing.T) {
	items, err := newRecords().All(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCollectionPrependKeepsNewestFirst(t *testing.T) {
	ctx := context.Background()
	c := newRecords()
	require.NoError(t, c.Prepend(ctx, record{ID: "DS-260115-0001"}))
	require.NoError(t, c.Prepend(ctx, record{ID: "DS-260115-0002"}))

	items, err := c.All(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "DS-260115-0002", items[0].ID)
	assert.Equal(t, "DS-260115-0001", items[1].ID)
}

func TestCollectionPrependRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	c := newRecords()
	require.NoError(t, c.Prepend(ctx, record{ID: "A"}))

	err := c.Prepend(ctx, record{ID: "A"})
	assert.ErrorIs(t, err, sentinel.ErrConflict)

	items, err := c.All(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCollectionRemove(t *testing.T) {
	ctx := context.Background()
	c := newRecords()
	require.NoError(t, c.Prepend(ctx, record{ID: "A"}))
	require.NoError(t, c.Prepend(ctx, record{ID: "B"}))

	require.NoError(t, c.Remove(ctx, "A"))
	_, err := c.Find(ctx, "A")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	t.Run("missing record", func(t *testing.T) {
		assert.ErrorIs(t, c.Remove(ctx, "A"), sentinel.ErrNotFound)
	})
}

func TestCollectionUpdate(t *testing.T) {
	ctx := context.Background()
	c := newRecords()
	require.NoError(t, c.Prepend(ctx, record{ID: "INV-1", Status: "received"}))

	updated, err := c.Update(ctx, "INV-1", func(r *record) error {
		r.Status = "paid"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "paid", updated.Status)

	found, err := c.Find(ctx, "INV-1")
	require.NoError(t, err)
	assert.Equal(t, "paid", found.Status)

	t.Run("callback error aborts without writing", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := c.Update(ctx, "INV-1", func(r *record) error {
			r.Status = "cancelled"
			return boom
		})
		assert.ErrorIs(t, err, boom)
		found, err := c.Find(ctx, "INV-1")
		require.NoError(t, err)
		assert.Equal(t, "paid", found.Status)
	})

	t.Run("missing record", func(t *testing.T) {
		_, err := c.Update(ctx, "nope", func(*record) error { return nil })
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}
