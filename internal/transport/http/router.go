package httptransport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dispatchflow/internal/platform/middleware"
	"dispatchflow/pkg/platform/httputil"
)

// requestTimeout bounds one API call. A scan may run two models with backoff.
const requestTimeout = 3 * time.Minute

// NewRouter wires every endpoint. API routes live under /api.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(h.logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(h.logger))
	r.Use(middleware.Latency(h.metrics, routePattern))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))

		r.Route("/scan/{kind}", func(r chi.Router) {
			r.Use(middleware.ScanSession)
			r.Get("/", h.handleScanState)
			r.Post("/", h.handleScan)
			r.Delete("/", h.handleScanClear)
			r.Post("/retry", h.handleScanRetry)
			r.Patch("/draft", h.handleScanDraft)
		})

		r.Route("/slips", func(r chi.Router) {
			r.Get("/", h.handleListSlips)
			r.Post("/", h.handleSaveSlip)
			r.Post("/preview", h.handlePreviewSlip)
			r.Get("/export.xlsx", h.handleExportSlips)
			r.Get("/remote", h.handleRemoteSlips)
			r.Get("/{slipNumber}", h.handleGetSlip)
			r.Delete("/{slipNumber}", h.handleDeleteSlip)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", h.handleListInvoices)
			r.Post("/", h.handleSaveInvoice)
			r.Post("/preview", h.handlePreviewInvoice)
			r.Get("/export.xlsx", h.handleExportInvoices)
			r.Get("/remote", h.handleRemoteInvoices)
			r.Get("/{invoiceID}", h.handleGetInvoice)
			r.Delete("/{invoiceID}", h.handleDeleteInvoice)
			r.Post("/{invoiceID}/paid", h.handleMarkInvoicePaid)
		})

		r.Get("/settings", h.handleGetSettings)
		r.Put("/settings", h.handleSaveSettings)
		r.Get("/settings/check", h.handleCheckSettings)
		r.Get("/settings/theme", h.handleGetTheme)
		r.Put("/settings/theme", h.handleSetTheme)

		r.Get("/dashboard", h.handleDashboard)
	})
	return r
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
