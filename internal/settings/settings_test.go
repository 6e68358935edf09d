package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"dispatchflow/internal/sheets"
	"dispatchflow/internal/storage"
	dErrors "dispatchflow/pkg/domain-errors"
)

func ptr[T any](v T) *T { return &v }

func testDefaults() Defaults {
	return Defaults{
		GeminiAPIKey:  "env-gemini",
		SlipPrefix:    "DS",
		InvoicePrefix: "INV",
		Company:       Company{Name: "Acme Forge", GSTIN: "27ABCDE1234F1Z5"},
		SlipStorage: sheets.Target{
			SheetID:  "env-sheet",
			APIKey:   "env-sheets-key",
			RelayURL: "https://relay.example/exec",
		},
		InvoiceStorage: sheets.Target{RelayURL: "https://relay.example/exec"},
	}
}

func TestExtractSheetID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"full url", "https://docs.google.com/spreadsheets/d/1AbC-d_9/edit#gid=0", "1AbC-d_9"},
		{"bare id", "1AbC-d_9", "1AbC-d_9"},
		{"empty", "", ""},
		{"unmatched url returned as-is", "https://example.com/x", "https://example.com/x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSheetID(tt.in))
		})
	}
}

func TestMerge(t *testing.T) {
	t.Run("defaults only", func(t *testing.T) {
		s := Merge(testDefaults(), Overrides{})
		assert.Equal(t, "env-gemini", s.GeminiAPIKey)
		assert.Equal(t, "DS", s.SlipPrefix)
		assert.Equal(t, "Acme Forge", s.Company.Name)
		assert.Equal(t, "Sheet1", s.SlipStorage.TabName)
		assert.Equal(t, "Invoices", s.InvoiceStorage.TabName)
		assert.True(t, s.SlipStorage.CanAppend())
		assert.False(t, s.InvoiceStorage.CanAppend(), "invoice sheet has no environment default")
	})

	t.Run("overrides win, including empty strings", func(t *testing.T) {
		s := Merge(testDefaults(), Overrides{
			GeminiAPIKey: ptr(""),
			SlipPrefix:   ptr("DX"),
			CompanyName:  ptr("Bharat Castings"),
		})
		assert.Empty(t, s.GeminiAPIKey)
		assert.False(t, s.HasCredential())
		assert.Equal(t, "DX", s.SlipPrefix)
		assert.Equal(t, "Bharat Castings", s.Company.Name)
		assert.Equal(t, "27ABCDE1234F1Z5", s.Company.GSTIN)
	})

	t.Run("legacy single-sheet keys configure slip storage", func(t *testing.T) {
		s := Merge(testDefaults(), Overrides{
			SheetsID:     ptr("https://docs.google.com/spreadsheets/d/legacy-id/edit"),
			SheetsAPIKey: ptr("legacy-key"),
		})
		assert.Equal(t, "legacy-id", s.SlipStorage.SheetID)
		assert.Equal(t, "legacy-key", s.SlipStorage.APIKey)
	})

	t.Run("slip keys take precedence over legacy keys", func(t *testing.T) {
		s := Merge(testDefaults(), Overrides{
			SheetsID:     ptr("legacy-id"),
			SlipsSheetID: ptr("slips-id"),
		})
		assert.Equal(t, "slips-id", s.SlipStorage.SheetID)
	})

	t.Run("invoice storage can reuse the slip api key", func(t *testing.T) {
		s := Merge(testDefaults(), Overrides{
			InvoicesSheetID:     ptr("inv-id"),
			InvoicesSheetAPIKey: ptr("ignored"),
			InvoicesSameAPIKey:  ptr(true),
			InvoicesTabName:     ptr("Bills"),
		})
		assert.Equal(t, "inv-id", s.InvoiceStorage.SheetID)
		assert.Equal(t, "env-sheets-key", s.InvoiceStorage.APIKey)
		assert.Equal(t, "Bills", s.InvoiceStorage.TabName)
		assert.True(t, s.InvoiceStorage.CanAppend())
		assert.True(t, s.InvoiceStorage.CanRead())
	})
}

type ServiceSuite struct {
	suite.Suite
	store   *storage.MemoryStore
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = storage.NewMemoryStore()
	s.service = NewService(s.store, testDefaults())
}

func (s *ServiceSuite) TestLoadWithoutStoredOverrides() {
	s.Require().NoError(s.service.Load(s.ctx))
	s.Equal("env-gemini", s.service.Current().GeminiAPIKey)
}

func (s *ServiceSuite) TestSavePersistsWholesale() {
	merged, err := s.service.Save(s.ctx, Overrides{SlipPrefix: ptr("DX")})
	s.Require().NoError(err)
	s.Equal("DX", merged.SlipPrefix)

	s.Run("a new service sees the saved overrides after Load", func() {
		reloaded := NewService(s.store, testDefaults())
		s.Require().NoError(reloaded.Load(s.ctx))
		s.Equal("DX", reloaded.Current().SlipPrefix)
	})

	s.Run("saving again replaces rather than merges", func() {
		_, err := s.service.Save(s.ctx, Overrides{InvoicePrefix: ptr("BILL")})
		s.Require().NoError(err)
		current := s.service.Current()
		s.Equal("DS", current.SlipPrefix)
		s.Equal("BILL", current.InvoicePrefix)
	})
}

func (s *ServiceSuite) TestLoadIgnoresCorruptValue() {
	s.Require().NoError(s.store.Put(s.ctx, storage.KeySettings, "not an object"))
	s.Require().NoError(s.service.Load(s.ctx))
	s.Equal("DS", s.service.Current().SlipPrefix)
}

func (s *ServiceSuite) TestTheme() {
	theme, err := s.service.Theme(s.ctx)
	s.Require().NoError(err)
	s.Equal(ThemeLight, theme)

	s.Require().NoError(s.service.SetTheme(s.ctx, ThemeDark))
	theme, err = s.service.Theme(s.ctx)
	s.Require().NoError(err)
	s.Equal(ThemeDark, theme)

	err = s.service.SetTheme(s.ctx, "sepia")
	s.True(dErrors.Is(err, dErrors.CodeValidation))
}

func TestSettingsJSONUsesStoredKeyNames(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewService(store, testDefaults())
	_, err := svc.Save(context.Background(), Overrides{SlipsTabName: ptr("Dispatch")})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, store.Get(context.Background(), storage.KeySettings, &raw))
	assert.Equal(t, map[string]any{"slipsTabName": "Dispatch"}, raw)
}
