package httptransport

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"dispatchflow/internal/export"
	"dispatchflow/internal/invoice"
	"dispatchflow/internal/reconcile"
	"dispatchflow/internal/records"
	"dispatchflow/internal/slip"
	dErrors "dispatchflow/pkg/domain-errors"
	"dispatchflow/pkg/platform/httputil"
	"dispatchflow/pkg/requestcontext"
)

// SlipSaved is the response to a slip save.
type SlipSaved struct {
	Slip slip.DispatchSlip `json:"slip"`
	Sync reconcile.Result  `json:"sync"`
}

type SlipList struct {
	Slips []slip.DispatchSlip `json:"slips"`
	Count int                 `json:"count"`
}

// InvoiceView is an invoice with its display payment status.
type InvoiceView struct {
	invoice.InvoiceRecord
	Payment invoice.PaymentStatus `json:"payment"`
}

type InvoiceSaved struct {
	Invoice InvoiceView      `json:"invoice"`
	Sync    reconcile.Result `json:"sync"`
}

type InvoiceList struct {
	Invoices []InvoiceView `json:"invoices"`
	Count    int           `json:"count"`
}

func parseFilter(r *http.Request) (records.Filter, error) {
	q := r.URL.Query()
	f := records.Filter{Query: q.Get("q"), From: q.Get("from"), To: q.Get("to")}
	for name, v := range map[string]string{"from": f.From, "to": f.To} {
		if v == "" {
			continue
		}
		if _, err := time.Parse(time.DateOnly, v); err != nil {
			return records.Filter{}, dErrors.New(dErrors.CodeBadRequest, name+" must be a YYYY-MM-DD date")
		}
	}
	return f, nil
}

func (h *Handler) writeXLSX(w http.ResponseWriter, r *http.Request, kind string, render func(*bytes.Buffer) error) {
	ctx := r.Context()
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		h.fail(ctx, w, "export failed", dErrors.Wrap(err, dErrors.CodeInternal, "failed to render workbook"))
		return
	}
	name := export.Filename(kind, requestcontext.Now(ctx))
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) handlePreviewSlip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	form, err := httputil.Decode[slip.Form](w, r)
	if err != nil {
		h.fail(ctx, w, "invalid slip form", err)
		return
	}
	d, err := h.slips.Preview(ctx, form)
	if err != nil {
		h.fail(ctx, w, "slip preview rejected", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) handleSaveSlip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d, err := httputil.Decode[slip.DispatchSlip](w, r)
	if err != nil {
		h.fail(ctx, w, "invalid slip", err)
		return
	}
	saved, res, err := h.slips.Save(ctx, d)
	if err != nil {
		h.fail(ctx, w, "slip save failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, SlipSaved{Slip: saved, Sync: res})
}

func (h *Handler) handleListSlips(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter, err := parseFilter(r)
	if err != nil {
		h.fail(ctx, w, "invalid slip filter", err)
		return
	}
	slips, err := h.slips.List(ctx, filter)
	if err != nil {
		h.fail(ctx, w, "slip list failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SlipList{Slips: slips, Count: len(slips)})
}

func (h *Handler) handleExportSlips(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter, err := parseFilter(r)
	if err != nil {
		h.fail(ctx, w, "invalid slip filter", err)
		return
	}
	slips, err := h.slips.List(ctx, filter)
	if err != nil {
		h.fail(ctx, w, "slip export failed", err)
		return
	}
	h.writeXLSX(w, r, "slips", func(buf *bytes.Buffer) error {
		return export.Slips(buf, slips)
	})
}

func (h *Handler) handleRemoteSlips(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slips, err := h.slips.RemoteHistory(ctx)
	if err != nil {
		h.fail(ctx, w, "remote slip history failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SlipList{Slips: slips, Count: len(slips)})
}

func (h *Handler) handleGetSlip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d, err := h.slips.Get(ctx, chi.URLParam(r, "slipNumber"))
	if err != nil {
		h.fail(ctx, w, "slip lookup failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) handleDeleteSlip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.slips.Delete(ctx, chi.URLParam(r, "slipNumber")); err != nil {
		h.fail(ctx, w, "slip delete failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func viewOf(rec invoice.InvoiceRecord, now time.Time) InvoiceView {
	return InvoiceView{InvoiceRecord: rec, Payment: invoice.DerivePaymentStatus(rec, now)}
}

func viewsOf(recs []invoice.InvoiceRecord, now time.Time) []InvoiceView {
	out := make([]InvoiceView, len(recs))
	for i, rec := range recs {
		out[i] = viewOf(rec, now)
	}
	return out
}

func (h *Handler) handlePreviewInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	form, err := httputil.Decode[invoice.Form](w, r)
	if err != nil {
		h.fail(ctx, w, "invalid invoice form", err)
		return
	}
	rec, err := h.invoices.Preview(ctx, form)
	if err != nil {
		h.fail(ctx, w, "invoice preview rejected", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, viewOf(rec, requestcontext.Now(ctx)))
}

func (h *Handler) handleSaveInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rec, err := httputil.Decode[invoice.InvoiceRecord](w, r)
	if err != nil {
		h.fail(ctx, w, "invalid invoice", err)
		return
	}
	saved, res, err := h.invoices.Save(ctx, rec)
	if err != nil {
		h.fail(ctx, w, "invoice save failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, InvoiceSaved{Invoice: viewOf(saved, requestcontext.Now(ctx)), Sync: res})
}

func (h *Handler) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter, err := parseFilter(r)
	if err != nil {
		h.fail(ctx, w, "invalid invoice filter", err)
		return
	}
	recs, err := h.invoices.List(ctx, filter)
	if err != nil {
		h.fail(ctx, w, "invoice list failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, InvoiceList{Invoices: viewsOf(recs, requestcontext.Now(ctx)), Count: len(recs)})
}

func (h *Handler) handleExportInvoices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter, err := parseFilter(r)
	if err != nil {
		h.fail(ctx, w, "invalid invoice filter", err)
		return
	}
	recs, err := h.invoices.List(ctx, filter)
	if err != nil {
		h.fail(ctx, w, "invoice export failed", err)
		return
	}
	h.writeXLSX(w, r, "invoices", func(buf *bytes.Buffer) error {
		return export.Invoices(buf, recs)
	})
}

func (h *Handler) handleRemoteInvoices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	recs, err := h.invoices.RemoteHistory(ctx)
	if err != nil {
		h.fail(ctx, w, "remote invoice history failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, InvoiceList{Invoices: viewsOf(recs, requestcontext.Now(ctx)), Count: len(recs)})
}

func (h *Handler) handleGetInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rec, err := h.invoices.Get(ctx, chi.URLParam(r, "invoiceID"))
	if err != nil {
		h.fail(ctx, w, "invoice lookup failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, viewOf(rec, requestcontext.Now(ctx)))
}

func (h *Handler) handleDeleteInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.invoices.Delete(ctx, chi.URLParam(r, "invoiceID")); err != nil {
		h.fail(ctx, w, "invoice delete failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleMarkInvoicePaid(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rec, err := h.invoices.MarkPaid(ctx, chi.URLParam(r, "invoiceID"))
	if err != nil {
		h.fail(ctx, w, "mark paid failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, viewOf(rec, requestcontext.Now(ctx)))
}
