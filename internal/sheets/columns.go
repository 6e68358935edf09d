package sheets

// Tab defaults and read ranges for the two record types.
const (
	DefaultSlipTab    = "Sheet1"
	DefaultInvoiceTab = "Invoices"
	SlipRange         = "A:R"
	InvoiceRange      = "A:AE"
)

// SlipColumns is the fixed column order of the dispatch slip tab. It must
// match the header row of the sheet exactly.
var SlipColumns = []string{
	"slipNumber",
	"createdAt",
	"itemDescription",
	"batchLotNumber",
	"grade",
	"quantity",
	"unit",
	"weight",
	"poNumber",
	"customerName",
	"destination",
	"vehicleNumber",
	"driverName",
	"transporter",
	"hsnCode",
	"invoiceNumber",
	"remarks",
	"status",
}

var SlipHeaders = []string{
	"Slip No", "Date", "Item", "Batch", "Grade", "Qty", "Unit", "Weight", "PO",
	"Customer", "Destination", "Vehicle", "Driver", "Transporter", "HSN",
	"Invoice", "Remarks", "Status",
}

// InvoiceColumns is the fixed column order of the invoice tab.
var InvoiceColumns = []string{
	"invoiceId",
	"createdAt",
	"invoiceNumber",
	"invoiceDate",
	"dueDate",
	"vendorName",
	"vendorGstin",
	"vendorPhone",
	"vendorEmail",
	"vendorAddress",
	"buyerName",
	"buyerGstin",
	"buyerAddress",
	"placeOfSupply",
	"reverseCharge",
	"hsnCodes",
	"lineItems",
	"subtotal",
	"cgst",
	"sgst",
	"igst",
	"totalTax",
	"totalAmount",
	"totalInWords",
	"paymentTerms",
	"bankName",
	"accountNumber",
	"ifscCode",
	"upiId",
	"notes",
	"status",
}

var InvoiceHeaders = []string{
	"Invoice ID", "Created At", "Invoice No.", "Invoice Date", "Due Date",
	"Vendor Name", "Vendor GSTIN", "Vendor Phone", "Vendor Email", "Vendor Address",
	"Buyer Name", "Buyer GSTIN", "Buyer Address",
	"Place of Supply", "Reverse Charge", "HSN Codes",
	"Line Items",
	"Subtotal", "CGST", "SGST", "IGST", "Total Tax", "Total Amount", "Total in Words",
	"Payment Terms", "Bank Name", "Account No.", "IFSC", "UPI ID",
	"Notes", "Status",
}

// Row renders values in columns order. Missing values become "".
func Row(columns []string, values map[string]string) []string {
	row := make([]string, len(columns))
	for i, col := range columns {
		row[i] = values[col]
	}
	return row
}

// Record maps a positional row back to named fields. Short rows (the values
// API trims trailing empty cells) yield "" for the missing columns.
func Record(columns []string, row []string) map[string]string {
	rec := make(map[string]string, len(columns))
	for i, col := range columns {
		if i < len(row) {
			rec[col] = row[i]
		} else {
			rec[col] = ""
		}
	}
	return rec
}
