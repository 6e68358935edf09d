package httptransport

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"dispatchflow/internal/settings"
	dErrors "dispatchflow/pkg/domain-errors"
	"dispatchflow/pkg/platform/httputil"
)

// SettingsResponse shows the merged settings next to what the user saved, so
// the form can tell a stored value from an environment default.
type SettingsResponse struct {
	Settings  settings.Settings  `json:"settings"`
	Overrides settings.Overrides `json:"overrides"`
}

type ThemeBody struct {
	Theme string `json:"theme"`
}

// Dashboard summarizes today's activity and configuration gaps.
type Dashboard struct {
	SlipsToday         int              `json:"slipsToday"`
	InvoicesToday      int              `json:"invoicesToday"`
	CredentialMissing  bool             `json:"credentialMissing"`
	SlipSyncEnabled    bool             `json:"slipSyncEnabled"`
	InvoiceSyncEnabled bool             `json:"invoiceSyncEnabled"`
	Company            settings.Company `json:"company"`
}

func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, SettingsResponse{
		Settings:  h.settings.Current(),
		Overrides: h.settings.Overrides(),
	})
}

func (h *Handler) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	o, err := httputil.Decode[settings.Overrides](w, r)
	if err != nil {
		h.fail(ctx, w, "invalid settings", err)
		return
	}
	merged, err := h.settings.Save(ctx, o)
	if err != nil {
		h.fail(ctx, w, "settings save failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SettingsResponse{Settings: merged, Overrides: h.settings.Overrides()})
}

func (h *Handler) handleCheckSettings(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.checker.Check(r.Context()))
}

func (h *Handler) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	theme, err := h.settings.Theme(ctx)
	if err != nil {
		h.fail(ctx, w, "theme lookup failed", dErrors.Wrap(err, dErrors.CodeInternal, "failed to load theme"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ThemeBody{Theme: theme})
}

func (h *Handler) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, err := httputil.Decode[ThemeBody](w, r)
	if err != nil {
		h.fail(ctx, w, "invalid theme", err)
		return
	}
	if err := h.settings.SetTheme(ctx, body.Theme); err != nil {
		h.fail(ctx, w, "theme save failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, body)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	current := h.settings.Current()
	d := Dashboard{
		CredentialMissing:  !current.HasCredential(),
		SlipSyncEnabled:    current.SlipStorage.CanAppend(),
		InvoiceSyncEnabled: current.InvoiceStorage.CanAppend(),
		Company:            current.Company,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := h.slips.TodayCount(gctx)
		d.SlipsToday = n
		return err
	})
	g.Go(func() error {
		n, err := h.invoices.TodayCount(gctx)
		d.InvoicesToday = n
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(ctx, w, "dashboard failed", dErrors.Wrap(err, dErrors.CodeInternal, "failed to count today's records"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, d)
}
