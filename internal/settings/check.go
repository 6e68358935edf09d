package settings

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"dispatchflow/internal/sheets"
)

const checkTimeout = 15 * time.Second

// Probe results.
const (
	CheckOK      = "ok"
	CheckFailed  = "failed"
	CheckSkipped = "skipped"
)

// CredentialProber verifies an extraction API key.
type CredentialProber interface {
	ProbeCredential(ctx context.Context, credential string) error
}

// SheetReader reads a range of a target tab.
type SheetReader interface {
	Fetch(ctx context.Context, target sheets.Target, rangeSpec string) ([][]string, error)
}

// CheckResult is the outcome of one connectivity probe.
type CheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// CheckReport covers every remote collaborator the settings point at.
type CheckReport struct {
	Gemini   CheckResult `json:"gemini"`
	Slips    CheckResult `json:"slips"`
	Invoices CheckResult `json:"invoices"`
}

// Checker runs the settings page connectivity tests.
type Checker struct {
	source interface{ Current() Settings }
	prober CredentialProber
	reader SheetReader
}

func NewChecker(source interface{ Current() Settings }, prober CredentialProber, reader SheetReader) *Checker {
	return &Checker{source: source, prober: prober, reader: reader}
}

// Check probes the API key and both sheets concurrently. One failing probe
// does not cancel the others.
func (c *Checker) Check(ctx context.Context) CheckReport {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	s := c.source.Current()
	var report CheckReport
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if !s.HasCredential() {
			report.Gemini = CheckResult{Status: CheckSkipped, Message: "Gemini API key is not set"}
			return nil
		}
		report.Gemini = result(c.prober.ProbeCredential(ctx, s.GeminiAPIKey))
		return nil
	})
	g.Go(func() error {
		report.Slips = c.probeSheet(ctx, s.SlipStorage)
		return nil
	})
	g.Go(func() error {
		report.Invoices = c.probeSheet(ctx, s.InvoiceStorage)
		return nil
	})
	_ = g.Wait()
	return report
}

func (c *Checker) probeSheet(ctx context.Context, target sheets.Target) CheckResult {
	if !target.CanRead() {
		return CheckResult{Status: CheckSkipped, Message: "sheet ID or API key is not set"}
	}
	_, err := c.reader.Fetch(ctx, target, "A1:A1")
	return result(err)
}

func result(err error) CheckResult {
	if err != nil {
		return CheckResult{Status: CheckFailed, Message: err.Error()}
	}
	return CheckResult{Status: CheckOK}
}
