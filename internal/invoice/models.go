package invoice

import (
	"strings"
	"time"

	"dispatchflow/internal/extraction"
	"dispatchflow/internal/records"
	"dispatchflow/internal/sheets"
)

// StatusReceived is the only lifecycle status an invoice record carries.
const StatusReceived = "received"

// PaymentStatus is derived for display; only PaymentPaid is ever stored.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentOverdue PaymentStatus = "overdue"
)

// Form holds the fields read off an invoice, all as free text.
type Form struct {
	InvoiceNumber string `json:"invoiceNumber"`
	InvoiceDate   string `json:"invoiceDate"`
	DueDate       string `json:"dueDate"`
	PaymentTerms  string `json:"paymentTerms"`
	VendorName    string `json:"vendorName"`
	VendorAddress string `json:"vendorAddress"`
	VendorGSTIN   string `json:"vendorGstin"`
	VendorPhone   string `json:"vendorPhone"`
	VendorEmail   string `json:"vendorEmail"`
	BuyerName     string `json:"buyerName"`
	BuyerAddress  string `json:"buyerAddress"`
	BuyerGSTIN    string `json:"buyerGstin"`
	PlaceOfSupply string `json:"placeOfSupply"`
	ReverseCharge string `json:"reverseCharge"`
	HSNCodes      string `json:"hsnCodes"`
	LineItems     string `json:"lineItems"`
	Subtotal      string `json:"subtotal"`
	CGST          string `json:"cgst"`
	SGST          string `json:"sgst"`
	IGST          string `json:"igst"`
	TotalTax      string `json:"totalTax"`
	TotalAmount   string `json:"totalAmount"`
	TotalInWords  string `json:"totalInWords"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	IFSCCode      string `json:"ifscCode"`
	UPIID         string `json:"upiId"`
	Notes         string `json:"notes"`
}

func (f *Form) fields() map[string]*string {
	return map[string]*string{
		"invoiceNumber": &f.InvoiceNumber,
		"invoiceDate":   &f.InvoiceDate,
		"dueDate":       &f.DueDate,
		"paymentTerms":  &f.PaymentTerms,
		"vendorName":    &f.VendorName,
		"vendorAddress": &f.VendorAddress,
		"vendorGstin":   &f.VendorGSTIN,
		"vendorPhone":   &f.VendorPhone,
		"vendorEmail":   &f.VendorEmail,
		"buyerName":     &f.BuyerName,
		"buyerAddress":  &f.BuyerAddress,
		"buyerGstin":    &f.BuyerGSTIN,
		"placeOfSupply": &f.PlaceOfSupply,
		"reverseCharge": &f.ReverseCharge,
		"hsnCodes":      &f.HSNCodes,
		"lineItems":     &f.LineItems,
		"subtotal":      &f.Subtotal,
		"cgst":          &f.CGST,
		"sgst":          &f.SGST,
		"igst":          &f.IGST,
		"totalTax":      &f.TotalTax,
		"totalAmount":   &f.TotalAmount,
		"totalInWords":  &f.TotalInWords,
		"bankName":      &f.BankName,
		"accountNumber": &f.AccountNumber,
		"ifscCode":      &f.IFSCCode,
		"upiId":         &f.UPIID,
		"notes":         &f.Notes,
	}
}

func (f Form) Values() map[string]string {
	out := make(map[string]string, len(extraction.InvoiceFields))
	for k, p := range f.fields() {
		out[k] = *p
	}
	return out
}

func FormFromFields(values map[string]string) Form {
	var f Form
	for k, p := range f.fields() {
		*p = values[k]
	}
	return f
}

var amountFields = []struct{ key, label string }{
	{"subtotal", "Subtotal"},
	{"cgst", "CGST"},
	{"sgst", "SGST"},
	{"igst", "IGST"},
	{"totalTax", "Total tax"},
	{"totalAmount", "Total amount"},
}

// Validate checks that every amount present is numeric. Nothing else is
// required: a scanned invoice may legitimately lack any single field.
func Validate(f Form) error {
	errs := records.Errors{}
	values := f.Values()
	for _, a := range amountFields {
		if v := strings.TrimSpace(values[a.key]); v != "" && !records.IsAmount(v) {
			errs.Add(a.key, a.label+" must be a number")
		}
	}
	return errs.Err()
}

// InvoiceRecord is a saved invoice.
type InvoiceRecord struct {
	InvoiceID string `json:"invoiceId"`
	CreatedAt string `json:"createdAt"`
	Form
	Status        string        `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus,omitempty"`
}

func (r InvoiceRecord) RecordID() string {
	return r.InvoiceID
}

// SheetRow renders the invoice in the fixed sheet column order. Payment status
// is local only.
func (r InvoiceRecord) SheetRow() []string {
	values := r.Form.Values()
	values["invoiceId"] = r.InvoiceID
	values["createdAt"] = r.CreatedAt
	status := r.Status
	if status == "" {
		status = StatusReceived
	}
	values["status"] = status
	return sheets.Row(sheets.InvoiceColumns, values)
}

func FromSheetRow(row []string) InvoiceRecord {
	rec := sheets.Record(sheets.InvoiceColumns, row)
	return InvoiceRecord{
		InvoiceID: rec["invoiceId"],
		CreatedAt: rec["createdAt"],
		Form:      FormFromFields(rec),
		Status:    rec["status"],
	}
}

var dueDateLayouts = []string{
	time.DateOnly,
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02-Jan-2006",
	"2-Jan-2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"02.01.2006",
}

// ParseDueDate reads the common Indian invoice date spellings, day first. The
// result is the last millisecond of that day in loc.
func ParseDueDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.Add(24*time.Hour - time.Millisecond), true
		}
	}
	return time.Time{}, false
}

// DerivePaymentStatus reports paid when the record was marked paid, overdue
// when the due date has fully passed, and pending otherwise, including when
// the due date cannot be read.
func DerivePaymentStatus(r InvoiceRecord, now time.Time) PaymentStatus {
	if r.PaymentStatus == PaymentPaid {
		return PaymentPaid
	}
	if due, ok := ParseDueDate(r.DueDate, now.Location()); ok && due.Before(now) {
		return PaymentOverdue
	}
	return PaymentPending
}

// Draft is invoice form state being reviewed before preview.
type Draft struct {
	Form   Form              `json:"form"`
	Errors map[string]string `json:"errors,omitempty"`
}

func NewDraft() *Draft {
	return &Draft{}
}

func (d *Draft) Fill(fields extraction.Fields) {
	ptrs := d.Form.fields()
	for k, v := range fields {
		if v == "" {
			continue
		}
		if p, ok := ptrs[k]; ok {
			*p = v
		}
	}
	d.Errors = nil
}

func (d *Draft) Set(field, value string) bool {
	p, ok := d.Form.fields()[field]
	if !ok {
		return false
	}
	*p = value
	delete(d.Errors, field)
	return true
}
