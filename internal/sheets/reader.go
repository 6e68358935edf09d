package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultAPIBase is the spreadsheet values API root.
const DefaultAPIBase = "https://sheets.googleapis.com/v4/spreadsheets"

// Reader fetches tab contents from the spreadsheet values API.
type Reader struct {
	base       string
	httpClient *http.Client
}

type ReaderOption func(*Reader)

func WithReaderHTTPClient(c *http.Client) ReaderOption {
	return func(r *Reader) {
		r.httpClient = c
	}
}

func NewReader(base string, timeout time.Duration, opts ...ReaderOption) *Reader {
	if base == "" {
		base = DefaultAPIBase
	}
	r := &Reader{base: strings.TrimRight(base, "/"), httpClient: &http.Client{Timeout: timeout}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type valuesResponse struct {
	Values [][]any `json:"values"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Fetch reads rangeSpec (e.g. "A:R") of the target tab. The header row is
// dropped and the remaining rows come back most recent first.
func (r *Reader) Fetch(ctx context.Context, target Target, rangeSpec string) ([][]string, error) {
	if !target.CanRead() || target.TabName == "" {
		return nil, ErrTargetNotConfigured
	}
	endpoint := fmt.Sprintf("%s/%s/values/%s!%s?key=%s",
		r.base,
		url.PathEscape(target.SheetID),
		url.PathEscape(target.TabName),
		rangeSpec,
		url.QueryEscape(target.APIKey),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build values request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("values request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("read values response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		_ = json.Unmarshal(raw, &apiErr)
		return nil, &HTTPError{Endpoint: "sheets", Status: resp.StatusCode, Message: apiErr.Error.Message}
	}

	var out valuesResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode values response: %w", err)
	}
	if len(out.Values) <= 1 {
		return [][]string{}, nil
	}

	body := out.Values[1:]
	rows := make([][]string, 0, len(body))
	for i := len(body) - 1; i >= 0; i-- {
		rows = append(rows, stringify(body[i]))
	}
	return rows, nil
}

func stringify(cells []any) []string {
	row := make([]string, len(cells))
	for i, c := range cells {
		switch v := c.(type) {
		case string:
			row[i] = v
		case nil:
			row[i] = ""
		default:
			row[i] = fmt.Sprint(v)
		}
	}
	return row
}
