package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatchflow/internal/platform/config"
	"dispatchflow/internal/platform/logger"
	"dispatchflow/internal/reconcile"
	"dispatchflow/internal/scanner"
	"dispatchflow/internal/slip"
	httptransport "dispatchflow/internal/transport/http"
	"dispatchflow/pkg/testutil"
)

type relayRecorder struct {
	mu     sync.Mutex
	bodies []map[string]any
}

func (r *relayRecorder) handler(w http.ResponseWriter, req *http.Request) {
	raw, _ := io.ReadAll(req.Body)
	var body map[string]any
	_ = json.Unmarshal(raw, &body)
	r.mu.Lock()
	r.bodies = append(r.bodies, body)
	r.mu.Unlock()
	_, _ = w.Write([]byte(`{"success":true}`))
}

func (r *relayRecorder) last() map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.bodies) == 0 {
		return nil
	}
	return r.bodies[len(r.bodies)-1]
}

func geminiReturning(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		raw, _ := json.Marshal(text)
		_, _ = fmt.Fprintf(w, `{"candidates":[{"content":{"parts":[{"text":%s}]}}]}`, raw)
	}
}

func testConfig(geminiURL, relayURL string) *config.Config {
	return &config.Config{
		Server: config.Server{Addr: ":0", ShutdownTimeout: time.Second, LogLevel: "error"},
		Store:  config.Store{Backend: config.StoreMemory},
		Gemini: config.Gemini{
			APIKey:        "test-key",
			APIBase:       geminiURL,
			PrimaryModel:  "primary",
			FallbackModel: "fallback",
			Timeout:       5 * time.Second,
		},
		Sheets: config.Sheets{
			APIBase:  geminiURL,
			SheetID:  "sheet-1",
			RelayURL: relayURL,
			Timeout:  5 * time.Second,
		},
		Company:           config.Company{Name: "Acme Forge"},
		Retry:             config.Retry{Attempts: 1, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond},
		SlipPrefix:        "DS",
		InvoicePrefix:     "INV",
		SyncFailurePolicy: "rollback",
	}
}

func TestDispatchSlipScenario(t *testing.T) {
	gemini := httptest.NewServer(geminiReturning(`{"itemDescription":"Steel Rods","customerName":"Acme Builders","quantity":"12"}`))
	t.Cleanup(gemini.Close)
	relay := &relayRecorder{}
	relaySrv := httptest.NewServer(http.HandlerFunc(relay.handler))
	t.Cleanup(relaySrv.Close)

	var a *App
	var draft slip.Draft
	var preview slip.DispatchSlip

	testutil.Given(t, "an assembled service with a credential and a slip relay", func(t *testing.T) {
		var err error
		a, err = Build(context.Background(), testConfig(gemini.URL, relaySrv.URL), logger.Discard(), prometheus.NewRegistry())
		require.NoError(t, err)
		t.Cleanup(func() { _ = a.Close() })
	})

	testutil.When(t, "a dispatch tag is scanned", func(t *testing.T) {
		rr := testutil.DoRequest(a.Handler, testutil.NewScanRequest(t, "/api/scan/slip", "session-1", []byte("jpeg")))
		testutil.AssertStatus(t, rr, http.StatusOK)

		view := testutil.UnmarshalResponse[scanner.View](t, rr)
		assert.Equal(t, scanner.StateSuccess, view.State)
		assert.False(t, view.CredentialMissing)
		require.NoError(t, json.Unmarshal(view.Draft, &draft))
	})

	testutil.Then(t, "the draft carries the extracted fields", func(t *testing.T) {
		assert.Equal(t, "Steel Rods", draft.Form.ItemDescription)
		assert.Equal(t, "Acme Builders", draft.Form.CustomerName)
		assert.Equal(t, "12", draft.Form.Quantity)
		assert.Equal(t, slip.DefaultUnit, draft.Form.Unit)
	})

	testutil.When(t, "the draft is previewed", func(t *testing.T) {
		rr := testutil.DoRequest(a.Handler, testutil.NewJSONRequest(t, http.MethodPost, "/api/slips/preview", draft.Form))
		testutil.AssertStatus(t, rr, http.StatusOK)
		preview = *testutil.UnmarshalResponse[slip.DispatchSlip](t, rr)
		assert.Regexp(t, `^DS-\d{6}-0001$`, preview.SlipNumber)
	})

	testutil.When(t, "the previewed slip is saved", func(t *testing.T) {
		rr := testutil.DoRequest(a.Handler, testutil.NewJSONRequest(t, http.MethodPost, "/api/slips", preview))
		testutil.AssertStatus(t, rr, http.StatusCreated)
		saved := testutil.UnmarshalResponse[httptransport.SlipSaved](t, rr)
		assert.Equal(t, reconcile.StatusSynced, saved.Sync.Status)
	})

	testutil.Then(t, "the row reached the relay", func(t *testing.T) {
		body := relay.last()
		require.NotNil(t, body)
		assert.Equal(t, "sheet-1", body["sheetId"])
		row, ok := body["row"].([]any)
		require.True(t, ok)
		assert.Equal(t, preview.SlipNumber, row[0])
	})

	testutil.Then(t, "the slip is listed and counted on the dashboard", func(t *testing.T) {
		rr := testutil.DoRequest(a.Handler, httptest.NewRequest(http.MethodGet, "/api/slips?q=acme", nil))
		testutil.AssertStatus(t, rr, http.StatusOK)
		list := testutil.UnmarshalResponse[httptransport.SlipList](t, rr)
		require.Equal(t, 1, list.Count)
		assert.Equal(t, preview.SlipNumber, list.Slips[0].SlipNumber)

		rr = testutil.DoRequest(a.Handler, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
		testutil.AssertStatus(t, rr, http.StatusOK)
		dash := testutil.UnmarshalResponse[httptransport.Dashboard](t, rr)
		assert.Equal(t, 1, dash.SlipsToday)
		assert.True(t, dash.SlipSyncEnabled)
		assert.False(t, dash.InvoiceSyncEnabled)
		assert.Equal(t, "Acme Forge", dash.Company.Name)
	})
}

func TestRollbackWhenRelayFails(t *testing.T) {
	gemini := httptest.NewServer(geminiReturning(`{}`))
	t.Cleanup(gemini.Close)
	relaySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(relaySrv.Close)

	a, err := Build(context.Background(), testConfig(gemini.URL, relaySrv.URL), logger.Discard(), prometheus.NewRegistry())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	form := slip.Form{ItemDescription: "Pipes", CustomerName: "Beta", Unit: "pcs"}
	rr := testutil.DoRequest(a.Handler, testutil.NewJSONRequest(t, http.MethodPost, "/api/slips/preview", form))
	testutil.AssertStatus(t, rr, http.StatusOK)
	preview := testutil.UnmarshalResponse[slip.DispatchSlip](t, rr)

	rr = testutil.DoRequest(a.Handler, testutil.NewJSONRequest(t, http.MethodPost, "/api/slips", preview))
	testutil.AssertStatusAndError(t, rr, http.StatusBadGateway, "sync_failed")

	rr = testutil.DoRequest(a.Handler, httptest.NewRequest(http.MethodGet, "/api/slips", nil))
	list := testutil.UnmarshalResponse[httptransport.SlipList](t, rr)
	assert.Zero(t, list.Count)
}

func TestBuildRejectsUnknownPolicy(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:0", "")
	cfg.SyncFailurePolicy = "shrug"
	_, err := Build(context.Background(), cfg, logger.Discard(), prometheus.NewRegistry())
	assert.ErrorContains(t, err, "unknown sync failure policy")
}

func TestPruneSessionsStopsWithContext(t *testing.T) {
	a, err := Build(context.Background(), testConfig("http://127.0.0.1:0", ""), logger.Discard(), prometheus.NewRegistry())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.PruneSessions(ctx, time.Millisecond, time.Hour)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("PruneSessions did not return after cancel")
	}
}
