package extraction

import "regexp"

const (
	temperature      = 0.1
	slipMaxTokens    = 2048
	invoiceMaxTokens = 4096
	imageMimeType    = "image/jpeg"
)

var dataURLPrefix = regexp.MustCompile(`^data:image/\w+;base64,`)

// StripDataURL removes a data:image/...;base64, prefix if present.
func StripDataURL(image string) string {
	return dataURLPrefix.ReplaceAllString(image, "")
}

// SlipRequest builds the dispatch-tag extraction request for image, given as
// raw base64 or a data URL.
func SlipRequest(image string) Request {
	return Request{
		Image:           StripDataURL(image),
		MimeType:        imageMimeType,
		Prompt:          slipPrompt,
		Temperature:     temperature,
		MaxOutputTokens: slipMaxTokens,
	}
}

// InvoiceRequest builds the invoice extraction request.
func InvoiceRequest(image string) Request {
	return Request{
		Image:           StripDataURL(image),
		MimeType:        imageMimeType,
		Prompt:          invoicePrompt,
		Temperature:     temperature,
		MaxOutputTokens: invoiceMaxTokens,
	}
}

const slipPrompt = `You are a dispatch tag/label reader for a manufacturing/warehouse environment.

Carefully examine this image of a dispatch tag or label and extract ALL visible information.

Return ONLY a valid JSON object with these fields (use empty string "" if a field is not visible or not applicable):

{
  "itemDescription": "Full item/product name and specification",
  "batchLotNumber": "Batch number, lot number, or production batch ID",
  "grade": "Material grade, quality grade, or specification grade (e.g., SS304, IS2062, Grade A)",
  "quantity": "Numeric quantity only (no units)",
  "unit": "Unit of measurement (pcs, kg, tons, ltrs, boxes, rolls, bags, drums, sets, nos, meters)",
  "weight": "Total weight with unit (e.g., 186.5 kg)",
  "poNumber": "Purchase order number or sales order number",
  "customerName": "Customer or buyer company name",
  "destination": "Delivery address or destination",
  "vehicleNumber": "Vehicle registration number if visible",
  "driverName": "Driver name if visible",
  "transporter": "Transport company name if visible",
  "hsnCode": "HSN/SAC code if visible",
  "invoiceNumber": "Invoice number if visible",
  "remarks": "Any other relevant notes, handling instructions, or special markings"
}

IMPORTANT:
- Read carefully, industrial tags can be smudged or partially printed
- If text is unclear, make your best interpretation and note uncertainty in remarks
- For Indian dispatch tags, look for: challan numbers, GSTIN, lorry receipt numbers
- Return ONLY the JSON object, no markdown, no backticks, no explanation`

const invoicePrompt = `You are an expert invoice reader for Indian business documents.

Carefully examine this invoice image and extract ALL visible information.

Return ONLY a valid JSON object with these exact fields (use empty string "" if a field is not visible):

{
  "invoiceNumber": "Invoice number or bill number",
  "invoiceDate": "Invoice date (DD/MM/YYYY format)",
  "dueDate": "Due date or payment due date if visible",
  "paymentTerms": "Payment terms (e.g., Net 30, Immediate, 15 days)",

  "vendorName": "Seller / supplier company name",
  "vendorAddress": "Seller full address",
  "vendorGstin": "Seller GSTIN (15-character alphanumeric)",
  "vendorPhone": "Seller phone number",
  "vendorEmail": "Seller email address",

  "buyerName": "Buyer / bill-to company name",
  "buyerAddress": "Buyer full address",
  "buyerGstin": "Buyer GSTIN if visible",

  "placeOfSupply": "Place of supply (state name or code)",
  "reverseCharge": "Yes or No, whether reverse charge applies",
  "hsnCodes": "Comma-separated list of HSN/SAC codes from line items",

  "lineItems": "Formatted as: '1. [description] | [qty] [unit] | [rate] | [amount]; 2. ...' (include ALL line items)",

  "subtotal": "Subtotal before tax (numeric, no currency symbol)",
  "cgst": "CGST amount (numeric)",
  "sgst": "SGST amount (numeric)",
  "igst": "IGST amount (numeric)",
  "totalTax": "Total tax amount (numeric)",
  "totalAmount": "Final invoice total including tax (numeric)",
  "totalInWords": "Total amount in words if printed on invoice",

  "bankName": "Bank name for payment",
  "accountNumber": "Bank account number",
  "ifscCode": "IFSC code",
  "upiId": "UPI ID if visible",

  "notes": "Any additional notes, terms, or conditions printed on the invoice"
}

IMPORTANT:
- For Indian GST invoices, look carefully for: GSTIN, SAC/HSN codes, CGST/SGST/IGST split
- Vendor = the one issuing the invoice (FROM); Buyer = the one receiving (TO/BILL TO)
- Line items: capture ALL rows in the items table, numbered sequentially
- If amounts use commas as thousand separators (e.g., 1,25,000), keep them as-is
- Return ONLY the JSON object, no markdown, no backticks, no explanation`
