package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"dispatchflow/internal/sheets"
)

type staticSource struct{ s Settings }

func (f staticSource) Current() Settings { return f.s }

type proberFunc func(ctx context.Context, credential string) error

func (f proberFunc) ProbeCredential(ctx context.Context, credential string) error {
	return f(ctx, credential)
}

type readerFunc func(ctx context.Context, target sheets.Target, rangeSpec string) ([][]string, error)

func (f readerFunc) Fetch(ctx context.Context, target sheets.Target, rangeSpec string) ([][]string, error) {
	return f(ctx, target, rangeSpec)
}

func TestCheckerReportsEachProbe(t *testing.T) {
	s := Settings{
		GeminiAPIKey:   "AIza-test",
		SlipStorage:    sheets.Target{SheetID: "slips", APIKey: "k", TabName: "Sheet1"},
		InvoiceStorage: sheets.Target{SheetID: "invoices", APIKey: "k", TabName: "Invoices"},
	}
	prober := proberFunc(func(_ context.Context, cred string) error {
		assert.Equal(t, "AIza-test", cred)
		return nil
	})
	reader := readerFunc(func(_ context.Context, target sheets.Target, rangeSpec string) ([][]string, error) {
		assert.Equal(t, "A1:A1", rangeSpec)
		if target.SheetID == "invoices" {
			return nil, errors.New("Requested entity was not found.")
		}
		return nil, nil
	})

	report := NewChecker(staticSource{s}, prober, reader).Check(context.Background())

	assert.Equal(t, CheckOK, report.Gemini.Status)
	assert.Equal(t, CheckOK, report.Slips.Status)
	assert.Equal(t, CheckResult{Status: CheckFailed, Message: "Requested entity was not found."}, report.Invoices)
}

func TestCheckerSkipsUnconfigured(t *testing.T) {
	called := false
	prober := proberFunc(func(context.Context, string) error { called = true; return nil })
	reader := readerFunc(func(context.Context, sheets.Target, string) ([][]string, error) { called = true; return nil, nil })

	report := NewChecker(staticSource{}, prober, reader).Check(context.Background())

	assert.False(t, called)
	assert.Equal(t, CheckSkipped, report.Gemini.Status)
	assert.Equal(t, CheckSkipped, report.Slips.Status)
	assert.Equal(t, CheckSkipped, report.Invoices.Status)
}
