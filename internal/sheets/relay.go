package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// relayRequest is the body the relay script expects. The script reads the
// spreadsheet ID from "sheetId".
type relayRequest struct {
	SheetID string   `json:"sheetId"`
	TabName string   `json:"tabName"`
	Row     []string `json:"row"`
}

type relayResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// RelayClient appends rows through the relay script. It makes exactly one
// request per Append; callers wrap it in retry.Do.
type RelayClient struct {
	httpClient *http.Client
}

type RelayOption func(*RelayClient)

func WithRelayHTTPClient(c *http.Client) RelayOption {
	return func(r *RelayClient) {
		r.httpClient = c
	}
}

func NewRelayClient(timeout time.Duration, opts ...RelayOption) *RelayClient {
	r := &RelayClient{httpClient: &http.Client{Timeout: timeout}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Append posts row to the tab named by target. The body is sent as
// text/plain so a browser-hosted relay accepts it without a CORS preflight.
func (r *RelayClient) Append(ctx context.Context, target Target, row []string) error {
	if !target.CanAppend() {
		return ErrTargetNotConfigured
	}
	body, err := json.Marshal(relayRequest{SheetID: target.SheetID, TabName: target.TabName, Row: row})
	if err != nil {
		return fmt.Errorf("encode relay request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.RelayURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("relay request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read relay response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{Endpoint: "relay", Status: resp.StatusCode, Message: string(bytes.TrimSpace(raw))}
	}

	var out relayResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("decode relay response: %w", err)
	}
	if !out.Success {
		return &RejectedError{Reason: out.Error}
	}
	return nil
}
