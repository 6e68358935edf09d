package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"dispatchflow/internal/invoice"
	"dispatchflow/internal/sheets"
	"dispatchflow/internal/slip"
)

func readBack(t *testing.T, buf *bytes.Buffer, sheet string) (*excelize.File, [][]string) {
	t.Helper()
	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return f, rows
}

func TestSlips(t *testing.T) {
	slips := []slip.DispatchSlip{
		{SlipNumber: "DS-260115-0002", CreatedAt: "2026-01-15T05:00:00.000Z", Form: slip.Form{ItemDescription: "Bar", CustomerName: "JSW", Quantity: "3"}},
		{SlipNumber: "DS-260115-0001", CreatedAt: "2026-01-15T04:00:00.000Z", Form: slip.Form{ItemDescription: "Plate", CustomerName: "Tata", HSNCode: "0072"}},
	}

	var buf bytes.Buffer
	require.NoError(t, Slips(&buf, slips))

	f, rows := readBack(t, &buf, SlipSheet)
	require.Len(t, rows, 3)
	assert.Equal(t, sheets.SlipHeaders, rows[0])
	assert.Equal(t, "DS-260115-0002", rows[1][0])
	assert.Equal(t, "Plate", rows[2][2])
	assert.Equal(t, "0072", rows[2][14], "text cells keep leading zeros")
	assert.Equal(t, "dispatched", rows[2][17])

	styleID, err := f.GetCellStyle(SlipSheet, "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}

func TestInvoicesEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Invoices(&buf, nil))

	_, rows := readBack(t, &buf, InvoiceSheet)
	require.Len(t, rows, 1)
	assert.Equal(t, sheets.InvoiceHeaders, rows[0])
}

func TestInvoices(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Invoices(&buf, []invoice.InvoiceRecord{
		{InvoiceID: "INV-260115-0001", Form: invoice.Form{VendorName: "Acme", TotalAmount: "1,180.00"}},
	}))

	_, rows := readBack(t, &buf, InvoiceSheet)
	require.Len(t, rows, 2)
	assert.Equal(t, "Acme", rows[1][5])
	assert.Equal(t, "1,180.00", rows[1][22])
	assert.Equal(t, invoice.StatusReceived, rows[1][30])
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "dispatchflow-slips-2026-01-15.xlsx", Filename("slips", time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)))
}
