package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dispatchflow/pkg/platform/httputil"
	"dispatchflow/pkg/requestcontext"
)

// ScanRequest carries a captured frame as base64 or a data URL.
type ScanRequest struct {
	Image string `json:"image"`
}

// handleScan runs extraction synchronously. A failed scan is still a 200: the
// snapshot says what went wrong and the draft stays editable.
func (h *Handler) handleScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := httputil.Decode[ScanRequest](w, r)
	if err != nil {
		h.fail(ctx, w, "invalid scan request", err)
		return
	}
	view, err := h.scans.Scan(ctx, chi.URLParam(r, "kind"), requestcontext.ScanSession(ctx), req.Image)
	if err != nil {
		h.fail(ctx, w, "scan rejected", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) handleScanRetry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	view, err := h.scans.Retry(ctx, chi.URLParam(r, "kind"), requestcontext.ScanSession(ctx))
	if err != nil {
		h.fail(ctx, w, "scan retry rejected", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) handleScanClear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	view, err := h.scans.Clear(chi.URLParam(r, "kind"), requestcontext.ScanSession(ctx))
	if err != nil {
		h.fail(ctx, w, "scan clear rejected", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) handleScanState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	view, err := h.scans.State(chi.URLParam(r, "kind"), requestcontext.ScanSession(ctx))
	if err != nil {
		h.fail(ctx, w, "scan state rejected", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

// handleScanDraft applies manual edits, a map of field to value.
func (h *Handler) handleScanDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	values, err := httputil.Decode[map[string]string](w, r)
	if err != nil {
		h.fail(ctx, w, "invalid draft edit", err)
		return
	}
	view, err := h.scans.SetFields(chi.URLParam(r, "kind"), requestcontext.ScanSession(ctx), values)
	if err != nil {
		h.fail(ctx, w, "draft edit rejected", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}
