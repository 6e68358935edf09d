// Package extraction turns an image into structured fields through a
// vision-language model.
//
// Cascade runs the primary model under the backoff executor and falls back to
// a second model with forced JSON output when the primary is exhausted,
// answers with nothing, or answers with text no JSON object can be recovered
// from. Terminal client errors (bad key, malformed request) skip the fallback.
package extraction

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"dispatchflow/internal/platform/metrics"
	"dispatchflow/pkg/platform/retry"
	"dispatchflow/pkg/requestcontext"
)

// Fallback reasons, also used as metric labels.
const (
	reasonExhausted = "primary_exhausted"
	reasonEmpty     = "empty_response"
	reasonParse     = "unparseable"
)

// Stage outcomes for metrics.
const (
	outcomeSuccess     = "success"
	outcomeUnparseable = "unparseable"
	outcomeEmpty       = "empty"
	outcomeRetryable   = "retryable_error"
	outcomeTerminal    = "terminal_error"
)

// Cascade orchestrates the primary and fallback models.
type Cascade struct {
	primary   Model
	fallback  Model
	retryOpts []retry.Option
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

type Option func(*Cascade)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Cascade) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cascade) {
		c.metrics = m
	}
}

// WithRetryOptions configures the backoff executor used for each stage.
func WithRetryOptions(opts ...retry.Option) Option {
	return func(c *Cascade) {
		c.retryOpts = append(c.retryOpts, opts...)
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(c *Cascade) {
		c.tracer = t
	}
}

func NewCascade(primary, fallback Model, opts ...Option) *Cascade {
	c := &Cascade{
		primary:  primary,
		fallback: fallback,
		logger:   slog.Default(),
		tracer:   otel.Tracer("dispatchflow/extraction"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Extract returns the JSON object recovered from the model output for req.
// A missing credential returns ErrCredentialMissing without any call.
func (c *Cascade) Extract(ctx context.Context, req Request, credential string) (map[string]any, error) {
	if credential == "" {
		return nil, ErrCredentialMissing
	}
	ctx, span := c.tracer.Start(ctx, "extraction.cascade")
	defer span.End()

	text, err := c.generate(ctx, c.primary, req, credential)
	var reason string
	switch {
	case err != nil:
		if retry.IsTerminal(err) || ctx.Err() != nil {
			c.metrics.IncExtractionAttempt(c.primary.Name(), outcomeTerminal)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		c.metrics.IncExtractionAttempt(c.primary.Name(), outcomeRetryable)
		reason = reasonExhausted
		c.logger.WarnContext(ctx, "primary model failed, trying fallback",
			"request_id", requestcontext.RequestID(ctx),
			"model", c.primary.Name(),
			"error", err,
		)
	case strings.TrimSpace(text) == "":
		c.metrics.IncExtractionAttempt(c.primary.Name(), outcomeEmpty)
		reason = reasonEmpty
	default:
		parsed, perr := ParseJSON(text)
		if perr == nil {
			c.metrics.IncExtractionAttempt(c.primary.Name(), outcomeSuccess)
			span.SetAttributes(attribute.String("extraction.model", c.primary.Name()))
			return parsed, nil
		}
		c.metrics.IncExtractionAttempt(c.primary.Name(), outcomeUnparseable)
		reason = reasonParse
		c.logger.WarnContext(ctx, "primary model returned unparseable output, trying fallback",
			"request_id", requestcontext.RequestID(ctx),
			"model", c.primary.Name(),
		)
	}

	c.metrics.IncFallback(reason)
	span.AddEvent("fallback", trace.WithAttributes(attribute.String("reason", reason)))

	fallbackReq := req
	fallbackReq.ForceJSON = true
	text, err = c.generate(ctx, c.fallback, fallbackReq, credential)
	if err != nil {
		outcome := outcomeRetryable
		if retry.IsTerminal(err) {
			outcome = outcomeTerminal
		}
		c.metrics.IncExtractionAttempt(c.fallback.Name(), outcome)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		c.metrics.IncExtractionAttempt(c.fallback.Name(), outcomeEmpty)
		err := NewExtractionError(CategoryEmptyResponse, c.fallback.Name(), 0,
			"No response from Gemini. Check your API key and try again.", nil)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	parsed, err := ParseJSON(text)
	if err != nil {
		c.metrics.IncExtractionAttempt(c.fallback.Name(), outcomeUnparseable)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	c.metrics.IncExtractionAttempt(c.fallback.Name(), outcomeSuccess)
	span.SetAttributes(attribute.String("extraction.model", c.fallback.Name()))
	return parsed, nil
}

// generate runs one model stage under the backoff executor.
func (c *Cascade) generate(ctx context.Context, model Model, req Request, credential string) (string, error) {
	start := time.Now()
	defer func() {
		c.metrics.ObserveExtractionLatency(model.Name(), time.Since(start))
	}()

	opts := append([]retry.Option{}, c.retryOpts...)
	opts = append(opts, retry.WithOnRetry(func(attempt int, delay time.Duration, err error) {
		c.metrics.IncRetry("extraction")
		c.logger.InfoContext(ctx, "extraction attempt failed, backing off",
			"model", model.Name(),
			"attempt", attempt+1,
			"delay_ms", delay.Milliseconds(),
			"error", err,
		)
	}))
	return retry.Do(ctx, func(ctx context.Context) (string, error) {
		return model.Generate(ctx, req, credential)
	}, opts...)
}
