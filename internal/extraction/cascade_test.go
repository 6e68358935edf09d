package extraction

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"dispatchflow/internal/platform/metrics"
	"dispatchflow/pkg/platform/retry"
)

// scriptedModel answers each Generate call with the next scripted reply and
// repeats the last one when the script runs out.
type scriptedModel struct {
	mu      sync.Mutex
	name    string
	replies []reply
	calls   []Request
}

type reply struct {
	text string
	err  error
}

func (m *scriptedModel) Name() string { return m.name }

func (m *scriptedModel) Generate(_ context.Context, req Request, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)
	r := m.replies[len(m.replies)-1]
	if idx := len(m.calls) - 1; idx < len(m.replies) {
		r = m.replies[idx]
	}
	return r.text, r.err
}

func (m *scriptedModel) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func statusErr(status int, msg string) error {
	return NewExtractionError(categoryForStatus(status), "m", status, msg, nil)
}

type CascadeSuite struct {
	suite.Suite
	primary  *scriptedModel
	fallback *scriptedModel
	metrics  *metrics.Metrics
	delays   []time.Duration
}

func TestCascadeSuite(t *testing.T) {
	suite.Run(t, new(CascadeSuite))
}

func (s *CascadeSuite) SetupTest() {
	s.primary = &scriptedModel{name: "gemini-2.5-flash"}
	s.fallback = &scriptedModel{name: "gemini-1.5-flash"}
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.delays = nil
}

func (s *CascadeSuite) cascade() *Cascade {
	return NewCascade(s.primary, s.fallback,
		WithMetrics(s.metrics),
		WithRetryOptions(retry.WithSleep(func(_ context.Context, d time.Duration) error {
			s.delays = append(s.delays, d)
			return nil
		})),
	)
}

func (s *CascadeSuite) TestMissingCredentialMakesNoCall() {
	_, err := s.cascade().Extract(context.Background(), SlipRequest("QUJD"), "")
	s.ErrorIs(err, ErrCredentialMissing)
	s.Zero(s.primary.callCount())
	s.Zero(s.fallback.callCount())
}

func (s *CascadeSuite) TestPrimarySuccessNeverCallsFallback() {
	s.primary.replies = []reply{{text: "```json\n{\"itemDescription\":\"MS Plate\"}\n```"}}

	got, err := s.cascade().Extract(context.Background(), SlipRequest("QUJD"), "key")
	s.Require().NoError(err)
	s.Equal("MS Plate", got["itemDescription"])
	s.Equal(1, s.primary.callCount())
	s.Zero(s.fallback.callCount())
	s.False(s.primary.calls[0].ForceJSON)
}

func (s *CascadeSuite) TestRateLimitedPrimaryFallsBack() {
	s.primary.replies = []reply{{err: statusErr(429, "Resource has been exhausted")}}
	s.fallback.replies = []reply{{text: `{"customerName":"Tata Steel"}`}}

	got, err := s.cascade().Extract(context.Background(), SlipRequest("QUJD"), "key")
	s.Require().NoError(err)
	s.Equal("Tata Steel", got["customerName"])

	s.Equal(retry.DefaultAttempts, s.primary.callCount(), "primary retries within its budget first")
	s.Equal([]time.Duration{500 * time.Millisecond, time.Second}, s.delays)
	s.Equal(1, s.fallback.callCount())
	s.True(s.fallback.calls[0].ForceJSON, "fallback forces JSON output")
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ExtractionFallback.WithLabelValues(reasonExhausted)))
}

func (s *CascadeSuite) TestServerErrorRecoversWithinPrimaryBudget() {
	s.primary.replies = []reply{
		{err: statusErr(503, "overloaded")},
		{text: `{"grade":"SS304"}`},
	}

	got, err := s.cascade().Extract(context.Background(), SlipRequest("QUJD"), "key")
	s.Require().NoError(err)
	s.Equal("SS304", got["grade"])
	s.Equal(2, s.primary.callCount())
	s.Zero(s.fallback.callCount())
}

func (s *CascadeSuite) TestTerminalPrimaryErrorSkipsFallback() {
	s.primary.replies = []reply{{err: statusErr(401, "API key not valid")}}

	_, err := s.cascade().Extract(context.Background(), SlipRequest("QUJD"), "bad-key")
	var ee *ExtractionError
	s.Require().ErrorAs(err, &ee)
	s.Equal(CategoryAuthentication, ee.Category)
	s.Equal(1, s.primary.callCount())
	s.Zero(s.fallback.callCount())
}

func (s *CascadeSuite) TestUnparseablePrimaryFallsBack() {
	s.primary.replies = []reply{{text: "I see a dispatch tag but cannot format it."}}
	s.fallback.replies = []reply{{text: `{"weight":"186.5 kg"}`}}

	got, err := s.cascade().Extract(context.Background(), SlipRequest("QUJD"), "key")
	s.Require().NoError(err)
	s.Equal("186.5 kg", got["weight"])
	s.Equal(1, s.primary.callCount(), "unparseable output is not retried on the primary")
}

func (s *CascadeSuite) TestEmptyPrimaryFallsBack() {
	s.primary.replies = []reply{{text: "   "}}
	s.fallback.replies = []reply{{text: `{"unit":"kg"}`}}

	got, err := s.cascade().Extract(context.Background(), SlipRequest("QUJD"), "key")
	s.Require().NoError(err)
	s.Equal("kg", got["unit"])
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ExtractionFallback.WithLabelValues(reasonEmpty)))
}

func (s *CascadeSuite) TestNetworkErrorsFallBack() {
	s.primary.replies = []reply{{err: NewExtractionError(CategoryNetwork, "m", 0, "network error", errors.New("connection refused"))}}
	s.fallback.replies = []reply{{text: `{"poNumber":"PO-77"}`}}

	got, err := s.cascade().Extract(context.Background(), SlipRequest("QUJD"), "key")
	s.Require().NoError(err)
	s.Equal("PO-77", got["poNumber"])
}

func (s *CascadeSuite) TestFallbackFailureIsFinal() {
	s.primary.replies = []reply{{err: statusErr(500, "internal")}}

	s.Run("fallback error", func() {
		s.fallback.replies = []reply{{err: statusErr(429, "quota exceeded")}}
		_, err := s.cascade().Extract(context.Background(), SlipRequest("QUJD"), "key")
		s.True(IsQuotaError(err))
	})

	s.Run("fallback empty", func() {
		s.fallback.replies = []reply{{text: ""}}
		_, err := s.cascade().Extract(context.Background(), SlipRequest("QUJD"), "key")
		s.Equal(CategoryEmptyResponse, GetCategory(err))
	})

	s.Run("fallback unparseable", func() {
		s.fallback.replies = []reply{{text: "no json here"}}
		_, err := s.cascade().Extract(context.Background(), SlipRequest("QUJD"), "key")
		var perr *ParseError
		s.ErrorAs(err, &perr)
	})
}

func (s *CascadeSuite) TestCancelledContextSkipsFallback() {
	ctx, cancel := context.WithCancel(context.Background())
	s.primary.replies = []reply{{err: statusErr(503, "overloaded")}}
	c := NewCascade(s.primary, s.fallback, WithRetryOptions(retry.WithSleep(func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	})))

	_, err := c.Extract(ctx, SlipRequest("QUJD"), "key")
	s.ErrorIs(err, context.Canceled)
	s.Zero(s.fallback.callCount())
}
