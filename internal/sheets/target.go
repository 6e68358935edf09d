// Package sheets talks to the spreadsheet backend: appends go through a
// user-deployed relay script, history reads go to the spreadsheet values API.
package sheets

// Target identifies one tab of one spreadsheet together with the endpoints
// and credential used to reach it.
type Target struct {
	SheetID  string `json:"sheetId"`
	APIKey   string `json:"apiKey"`
	TabName  string `json:"tabName"`
	RelayURL string `json:"relayUrl"`
}

// CanAppend reports whether rows can be pushed through the relay.
func (t Target) CanAppend() bool {
	return t.SheetID != "" && t.TabName != "" && t.RelayURL != ""
}

// WithDefaultTab returns t with its tab set to tab when none is configured.
func (t Target) WithDefaultTab(tab string) Target {
	if t.TabName == "" {
		t.TabName = tab
	}
	return t
}

// CanRead reports whether history can be fetched from the values API.
func (t Target) CanRead() bool {
	return t.SheetID != "" && t.APIKey != ""
}
