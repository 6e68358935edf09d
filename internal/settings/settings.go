// Package settings merges environment defaults with the overrides the user
// saves from the settings screen.
//
// The active settings are one explicitly constructed Service, loaded at
// startup and injected into every component that needs credentials, prefixes
// or spreadsheet targets.
package settings

import (
	"regexp"
	"strings"

	"dispatchflow/internal/sheets"
)

// Theme values accepted by SetTheme.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Company is the identity printed on dispatch slips.
type Company struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	GSTIN   string `json:"gstin"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	LogoURL string `json:"logo,omitempty"`
}

// Defaults are the environment-derived values used when the user has not
// overridden a field.
type Defaults struct {
	GeminiAPIKey   string
	SlipPrefix     string
	InvoicePrefix  string
	Company        Company
	SlipStorage    sheets.Target
	InvoiceStorage sheets.Target
}

// Overrides is the persisted, user-edited subset. A nil field is "not set".
// SheetsID and SheetsAPIKey are the legacy single-sheet keys; they still
// configure slip storage when the slip-specific keys are absent.
type Overrides struct {
	GeminiAPIKey  *string `json:"geminiApiKey,omitempty"`
	SlipPrefix    *string `json:"slipPrefix,omitempty"`
	InvoicePrefix *string `json:"invoicePrefix,omitempty"`

	CompanyName    *string `json:"companyName,omitempty"`
	CompanyAddress *string `json:"companyAddress,omitempty"`
	CompanyGSTIN   *string `json:"companyGstin,omitempty"`
	CompanyPhone   *string `json:"companyPhone,omitempty"`
	CompanyEmail   *string `json:"companyEmail,omitempty"`
	CompanyLogo    *string `json:"companyLogo,omitempty"`

	SheetsID     *string `json:"sheetsId,omitempty"`
	SheetsAPIKey *string `json:"sheetsApiKey,omitempty"`

	SlipsSheetID     *string `json:"slipsSheetId,omitempty"`
	SlipsSheetAPIKey *string `json:"slipsSheetApiKey,omitempty"`
	SlipsTabName     *string `json:"slipsTabName,omitempty"`
	SlipsRelayURL    *string `json:"slipsRelayUrl,omitempty"`

	InvoicesSheetID     *string `json:"invoicesSheetId,omitempty"`
	InvoicesSheetAPIKey *string `json:"invoicesSheetApiKey,omitempty"`
	InvoicesTabName     *string `json:"invoicesTabName,omitempty"`
	InvoicesRelayURL    *string `json:"invoicesRelayUrl,omitempty"`
	InvoicesSameAPIKey  *bool   `json:"invoicesSameApiKey,omitempty"`
}

// Settings is the merged view handed to services.
type Settings struct {
	GeminiAPIKey   string        `json:"geminiApiKey"`
	SlipPrefix     string        `json:"slipPrefix"`
	InvoicePrefix  string        `json:"invoicePrefix"`
	Company        Company       `json:"company"`
	SlipStorage    sheets.Target `json:"slipStorage"`
	InvoiceStorage sheets.Target `json:"invoiceStorage"`
}

// HasCredential reports whether scanning can call the extraction API.
func (s Settings) HasCredential() bool {
	return s.GeminiAPIKey != ""
}

var sheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

// ExtractSheetID returns the spreadsheet ID from a full spreadsheet URL. Bare
// IDs, and URLs that do not match, are returned unchanged.
func ExtractSheetID(urlOrID string) string {
	urlOrID = strings.TrimSpace(urlOrID)
	if !strings.Contains(urlOrID, "/") {
		return urlOrID
	}
	if m := sheetIDPattern.FindStringSubmatch(urlOrID); m != nil {
		return m[1]
	}
	return urlOrID
}

// Merge applies o over d.
func Merge(d Defaults, o Overrides) Settings {
	s := Settings{
		GeminiAPIKey:  pick(o.GeminiAPIKey, d.GeminiAPIKey),
		SlipPrefix:    pick(o.SlipPrefix, d.SlipPrefix),
		InvoicePrefix: pick(o.InvoicePrefix, d.InvoicePrefix),
		Company: Company{
			Name:    pick(o.CompanyName, d.Company.Name),
			Address: pick(o.CompanyAddress, d.Company.Address),
			GSTIN:   pick(o.CompanyGSTIN, d.Company.GSTIN),
			Phone:   pick(o.CompanyPhone, d.Company.Phone),
			Email:   pick(o.CompanyEmail, d.Company.Email),
			LogoURL: pick(o.CompanyLogo, d.Company.LogoURL),
		},
	}

	slipID := first(o.SlipsSheetID, o.SheetsID)
	slipKey := first(o.SlipsSheetAPIKey, o.SheetsAPIKey)
	s.SlipStorage = target(d.SlipStorage, slipID, slipKey, o.SlipsTabName, o.SlipsRelayURL, sheets.DefaultSlipTab)

	invoiceKey := o.InvoicesSheetAPIKey
	if o.InvoicesSameAPIKey != nil && *o.InvoicesSameAPIKey {
		k := s.SlipStorage.APIKey
		invoiceKey = &k
	}
	s.InvoiceStorage = target(d.InvoiceStorage, o.InvoicesSheetID, invoiceKey, o.InvoicesTabName, o.InvoicesRelayURL, sheets.DefaultInvoiceTab)
	return s
}

func target(d sheets.Target, id, key, tab, relay *string, defaultTab string) sheets.Target {
	t := sheets.Target{
		SheetID:  ExtractSheetID(d.SheetID),
		APIKey:   pick(key, d.APIKey),
		TabName:  d.TabName,
		RelayURL: pick(relay, d.RelayURL),
	}
	if id != nil && *id != "" {
		t.SheetID = ExtractSheetID(*id)
	}
	if tab != nil && *tab != "" {
		t.TabName = *tab
	}
	if t.TabName == "" {
		t.TabName = defaultTab
	}
	return t
}

func pick(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}

func first(vs ...*string) *string {
	for _, v := range vs {
		if v != nil {
			return v
		}
	}
	return nil
}
