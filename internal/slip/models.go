package slip

import (
	"strings"

	"dispatchflow/internal/extraction"
	"dispatchflow/internal/records"
	"dispatchflow/internal/sheets"
)

type Status string

const (
	StatusDispatched Status = "dispatched"
	StatusPending    Status = "pending"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDispatched, StatusPending, StatusCancelled:
		return true
	}
	return false
}

// DefaultUnit is the unit a new form starts with.
const DefaultUnit = "pcs"

// Units offered on the slip form.
var Units = []string{"pcs", "kg", "tons", "ltrs", "boxes", "rolls", "bags", "drums", "sets", "nos", "meters"}

// Form is the user-editable part of a dispatch slip.
type Form struct {
	ItemDescription string `json:"itemDescription"`
	BatchLotNumber  string `json:"batchLotNumber"`
	Grade           string `json:"grade"`
	Quantity        string `json:"quantity"`
	Unit            string `json:"unit"`
	Weight          string `json:"weight"`
	PONumber        string `json:"poNumber"`
	CustomerName    string `json:"customerName"`
	Destination     string `json:"destination"`
	VehicleNumber   string `json:"vehicleNumber"`
	DriverName      string `json:"driverName"`
	Transporter     string `json:"transporter"`
	HSNCode         string `json:"hsnCode"`
	InvoiceNumber   string `json:"invoiceNumber"`
	Remarks         string `json:"remarks"`
}

// fields exposes the form by its wire keys, ordered as extraction.SlipFields.
func (f *Form) fields() map[string]*string {
	return map[string]*string{
		"itemDescription": &f.ItemDescription,
		"batchLotNumber":  &f.BatchLotNumber,
		"grade":           &f.Grade,
		"quantity":        &f.Quantity,
		"unit":            &f.Unit,
		"weight":          &f.Weight,
		"poNumber":        &f.PONumber,
		"customerName":    &f.CustomerName,
		"destination":     &f.Destination,
		"vehicleNumber":   &f.VehicleNumber,
		"driverName":      &f.DriverName,
		"transporter":     &f.Transporter,
		"hsnCode":         &f.HSNCode,
		"invoiceNumber":   &f.InvoiceNumber,
		"remarks":         &f.Remarks,
	}
}

// Values returns the form as key/value pairs.
func (f Form) Values() map[string]string {
	out := make(map[string]string, len(extraction.SlipFields))
	for k, p := range f.fields() {
		out[k] = *p
	}
	return out
}

// FormFromFields builds a form from sanitized extraction output.
func FormFromFields(values map[string]string) Form {
	var f Form
	for k, p := range f.fields() {
		*p = values[k]
	}
	return f
}

// Validate checks the fields that block a slip from being finalized.
func Validate(f Form) error {
	errs := records.Errors{}
	if strings.TrimSpace(f.ItemDescription) == "" {
		errs.Add("itemDescription", "Item description is required")
	}
	if strings.TrimSpace(f.CustomerName) == "" {
		errs.Add("customerName", "Customer name is required")
	}
	if f.Quantity != "" && !records.IsNumber(f.Quantity) {
		errs.Add("quantity", "Quantity must be a number")
	}
	return errs.Err()
}

// DispatchSlip is a finalized slip. It is immutable after save except for
// deletion.
type DispatchSlip struct {
	SlipNumber string `json:"slipNumber"`
	CreatedAt  string `json:"createdAt"`
	Form
	Status Status `json:"status"`
}

func (d DispatchSlip) RecordID() string {
	return d.SlipNumber
}

// SheetRow renders the slip in the fixed sheet column order.
func (d DispatchSlip) SheetRow() []string {
	values := d.Form.Values()
	values["slipNumber"] = d.SlipNumber
	values["createdAt"] = d.CreatedAt
	status := d.Status
	if status == "" {
		status = StatusDispatched
	}
	values["status"] = string(status)
	return sheets.Row(sheets.SlipColumns, values)
}

// FromSheetRow maps a row read from the slip tab back into a slip.
func FromSheetRow(row []string) DispatchSlip {
	rec := sheets.Record(sheets.SlipColumns, row)
	return DispatchSlip{
		SlipNumber: rec["slipNumber"],
		CreatedAt:  rec["createdAt"],
		Form:       FormFromFields(rec),
		Status:     Status(rec["status"]),
	}
}

// Draft is form state being reviewed before preview.
type Draft struct {
	Form   Form              `json:"form"`
	Errors map[string]string `json:"errors,omitempty"`
}

func NewDraft() *Draft {
	return &Draft{Form: Form{Unit: DefaultUnit}}
}

// Fill merges extraction output into the draft. Empty values never overwrite
// what the user typed, and pending validation errors are cleared.
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

// Set updates one field and clears its validation error.
func (d *Draft) Set(field, value string) bool {
	p, ok := d.Form.fields()[field]
	if !ok {
		return false
	}
	*p = value
	delete(d.Errors, field)
	return true
}
