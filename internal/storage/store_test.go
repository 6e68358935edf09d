package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"dispatchflow/pkg/platform/sentinel"
)

type counter struct {
	Date string `json:"date"`
	Seq  int    `json:"seq"`
}

// StoreContractSuite runs the same behaviour checks against every backend.
type StoreContractSuite struct {
	suite.Suite
	newStore func(t *testing.T) Store
	store    Store
	ctx      context.Context
}

func (s *StoreContractSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.newStore(s.T())
}

func (s *StoreContractSuite) TestGetMissingKey() {
	var c counter
	err := s.store.Get(s.ctx, "absent", &c)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *StoreContractSuite) TestPutThenGet() {
	s.Require().NoError(s.store.Put(s.ctx, KeySlipSeq, counter{Date: "260115", Seq: 3}))

	var c counter
	s.Require().NoError(s.store.Get(s.ctx, KeySlipSeq, &c))
	s.Equal(counter{Date: "260115", Seq: 3}, c)
}

func (s *StoreContractSuite) TestPutOverwrites() {
	s.Require().NoError(s.store.Put(s.ctx, KeySlipSeq, counter{Date: "260115", Seq: 1}))
	s.Require().NoError(s.store.Put(s.ctx, KeySlipSeq, counter{Date: "260116", Seq: 1}))

	var c counter
	s.Require().NoError(s.store.Get(s.ctx, KeySlipSeq, &c))
	s.Equal("260116", c.Date)
}

func (s *StoreContractSuite) TestDelete() {
	s.Require().NoError(s.store.Put(s.ctx, KeyThemeChoice, "dark"))
	s.Require().NoError(s.store.Delete(s.ctx, KeyThemeChoice))

	var theme string
	s.ErrorIs(s.store.Get(s.ctx, KeyThemeChoice, &theme), sentinel.ErrNotFound)
	s.Run("deleting a missing key is not an error", func() {
		s.NoError(s.store.Delete(s.ctx, "never-written"))
	})
}

func (s *StoreContractSuite) TestKeysAreIndependent() {
	s.Require().NoError(s.store.Put(s.ctx, KeySlipSeq, counter{Date: "260115", Seq: 9}))
	s.Require().NoError(s.store.Put(s.ctx, KeyInvoiceSeq, counter{Date: "260115", Seq: 2}))

	var slipSeq, invSeq counter
	s.Require().NoError(s.store.Get(s.ctx, KeySlipSeq, &slipSeq))
	s.Require().NoError(s.store.Get(s.ctx, KeyInvoiceSeq, &invSeq))
	s.Equal(9, slipSeq.Seq)
	s.Equal(2, invSeq.Seq)
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &StoreContractSuite{newStore: func(*testing.T) Store { return NewMemoryStore() }})
}

func TestFileStore(t *testing.T) {
	suite.Run(t, &StoreContractSuite{newStore: func(t *testing.T) Store {
		fs, err := OpenFileStore(filepath.Join(t.TempDir(), "store.json"))
		require.NoError(t, err)
		return fs
	}})
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	first, err := OpenFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, KeySettings, map[string]string{"slipPrefix": "DX"}))

	second, err := OpenFileStore(path)
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, second.Get(ctx, KeySettings, &got))
	assert.Equal(t, "DX", got["slipPrefix"])
}

func TestOpenFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := OpenFileStore(path)
	assert.ErrorContains(t, err, "decode store")
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	items := []string{"a", "b"}
	require.NoError(t, store.Put(ctx, KeySlips, items))
	items[0] = "mutated"

	var got []string
	require.NoError(t, store.Get(ctx, KeySlips, &got))
	assert.Equal(t, []string{"a", "b"}, got)
}
