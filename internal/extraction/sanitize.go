package extraction

import "strings"

// Fields is a sanitized extraction result: exactly the allowlisted keys,
// every value a trimmed string.
type Fields map[string]string

// SlipFields are the keys extracted from a dispatch tag.
var SlipFields = []string{
	"itemDescription", "batchLotNumber", "grade", "quantity", "unit",
	"weight", "poNumber", "customerName", "destination", "vehicleNumber",
	"driverName", "transporter", "hsnCode", "invoiceNumber", "remarks",
}

// InvoiceFields are the keys extracted from an invoice.
var InvoiceFields = []string{
	"invoiceNumber", "invoiceDate", "dueDate", "paymentTerms",
	"vendorName", "vendorAddress", "vendorGstin", "vendorPhone", "vendorEmail",
	"buyerName", "buyerAddress", "buyerGstin",
	"placeOfSupply", "reverseCharge", "hsnCodes",
	"lineItems",
	"subtotal", "cgst", "sgst", "igst", "totalTax", "totalAmount", "totalInWords",
	"bankName", "accountNumber", "ifscCode", "upiId",
	"notes",
}

// Sanitize projects raw onto allow. Keys outside allow are dropped; absent or
// non-string values become "".
func Sanitize(raw map[string]any, allow []string) Fields {
	out := make(Fields, len(allow))
	for _, key := range allow {
		s, _ := raw[key].(string)
		out[key] = strings.TrimSpace(s)
	}
	return out
}
