package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultAPIBase is the generative language models endpoint root.
const DefaultAPIBase = "https://generativelanguage.googleapis.com/v1beta/models"

// Request is one image-to-text generation call.
type Request struct {
	Image           string // raw base64, no data URL prefix
	MimeType        string
	Prompt          string
	Temperature     float64
	MaxOutputTokens int
	ForceJSON       bool // ask the endpoint for application/json output
}

// Model generates text for a request. Implementations make exactly one call;
// retries belong to the caller.
type Model interface {
	Name() string
	Generate(ctx context.Context, req Request, credential string) (string, error)
}

// GeminiClient is a Model backed by the generateContent endpoint.
type GeminiClient struct {
	base       string
	model      string
	httpClient *http.Client
}

type GeminiOption func(*GeminiClient)

func WithHTTPClient(c *http.Client) GeminiOption {
	return func(g *GeminiClient) {
		g.httpClient = c
	}
}

func NewGeminiClient(base, model string, timeout time.Duration, opts ...GeminiOption) *GeminiClient {
	if base == "" {
		base = DefaultAPIBase
	}
	g := &GeminiClient{
		base:       strings.TrimRight(base, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *GeminiClient) Name() string {
	return g.model
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	InlineData *inlineData `json:"inlineData,omitempty"`
	Text       string      `json:"text,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	Temperature      *float64 `json:"temperature,omitempty"`
	MaxOutputTokens  int      `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string   `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends req and returns the first candidate's text, possibly empty.
func (g *GeminiClient) Generate(ctx context.Context, req Request, credential string) (string, error) {
	temp := req.Temperature
	body := generateRequest{
		Contents: []content{{Parts: []part{
			{InlineData: &inlineData{MimeType: req.MimeType, Data: req.Image}},
			{Text: req.Prompt},
		}}},
		GenerationConfig: generationConfig{
			Temperature:     &temp,
			MaxOutputTokens: req.MaxOutputTokens,
		},
	}
	if req.ForceJSON {
		body.GenerationConfig.ResponseMimeType = "application/json"
	}
	resp, err := g.post(ctx, body, credential)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// ProbeCredential checks that credential is accepted with a tiny text-only
// request. It is not retried.
func (g *GeminiClient) ProbeCredential(ctx context.Context, credential string) error {
	if credential == "" {
		return ErrCredentialMissing
	}
	body := generateRequest{
		Contents:         []content{{Parts: []part{{Text: "Reply with the single word: ok"}}}},
		GenerationConfig: generationConfig{MaxOutputTokens: 5},
	}
	_, err := g.post(ctx, body, credential)
	return err
}

func (g *GeminiClient) post(ctx context.Context, body generateRequest, credential string) (*generateResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, NewExtractionError(CategoryInternal, g.model, 0, "encode request", err)
	}
	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s", g.base, url.PathEscape(g.model), url.QueryEscape(credential))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, NewExtractionError(CategoryInternal, g.model, 0, "build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := g.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, NewExtractionError(CategoryTimeout, g.model, 0, "request timed out", err)
		}
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, NewExtractionError(CategoryNetwork, g.model, 0, "network error", err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, 8<<20))
	if err != nil {
		return nil, NewExtractionError(CategoryNetwork, g.model, 0, "read response", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		_ = json.Unmarshal(raw, &apiErr)
		msg := apiErr.Error.Message
		if msg == "" {
			msg = http.StatusText(httpResp.StatusCode)
		}
		return nil, NewExtractionError(categoryForStatus(httpResp.StatusCode), g.model, httpResp.StatusCode, msg, nil)
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, NewExtractionError(CategoryInternal, g.model, 0, "decode response", err)
	}
	return &out, nil
}
