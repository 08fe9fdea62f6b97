package dto

import "github.com/shopspring/decimal"

// Extraction error kinds. All failures are surfaced as a structured
// ExtractionResult, never as a propagating error from the core parser.
const (
	ErrEmptyFile             = "empty_file"
	ErrPDFExtractionFailed   = "pdf_extraction_failed"
	ErrImageFileNotSupported = "image_file_not_supported"
	ErrUnsupportedFileType   = "unsupported_file_type"
	ErrParsingFailed         = "parsing_failed"
	ErrNoTextExtracted       = "no_text_extracted"
)

// LineItem is one priced row of an invoice item table.
// An empty Code means no item code was detected on the line.
type LineItem struct {
	Code        string           `json:"code,omitempty"`
	Description string           `json:"description"`
	Unit        string           `json:"unit"`
	Quantity    int              `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	Total       *decimal.Decimal `json:"total,omitempty"`
}

// InvoiceRecord holds everything the parser could extract from one document.
// String fields use "" as the absence marker: the extractor never stores an
// empty string as a found value. Monetary fields are nil when absent so that
// a missing total stays distinguishable from a zero total.
type InvoiceRecord struct {
	InvoiceNo    string           `json:"invoice_no,omitempty"`
	CodeNo       string           `json:"code_no,omitempty"`
	Date         string           `json:"date,omitempty"`
	CustomerName string           `json:"customer_name,omitempty"`
	Address      string           `json:"address,omitempty"`
	Phone        string           `json:"phone,omitempty"`
	Email        string           `json:"email,omitempty"`
	Reference    string           `json:"reference,omitempty"`
	Subtotal     *decimal.Decimal `json:"subtotal,omitempty"`
	Tax          *decimal.Decimal `json:"tax,omitempty"`
	Total        *decimal.Decimal `json:"total,omitempty"`
	Items        []LineItem       `json:"items"`
}

// InvoiceHeader is the header portion of an InvoiceRecord, without items.
type InvoiceHeader struct {
	InvoiceNo    string           `json:"invoice_no,omitempty"`
	CodeNo       string           `json:"code_no,omitempty"`
	Date         string           `json:"date,omitempty"`
	CustomerName string           `json:"customer_name,omitempty"`
	Address      string           `json:"address,omitempty"`
	Phone        string           `json:"phone,omitempty"`
	Email        string           `json:"email,omitempty"`
	Reference    string           `json:"reference,omitempty"`
	Subtotal     *decimal.Decimal `json:"subtotal,omitempty"`
	Tax          *decimal.Decimal `json:"tax,omitempty"`
	Total        *decimal.Decimal `json:"total,omitempty"`
}

// Header returns the record's header fields without the item list.
func (r InvoiceRecord) Header() InvoiceHeader {
	return InvoiceHeader{
		InvoiceNo:    r.InvoiceNo,
		CodeNo:       r.CodeNo,
		Date:         r.Date,
		CustomerName: r.CustomerName,
		Address:      r.Address,
		Phone:        r.Phone,
		Email:        r.Email,
		Reference:    r.Reference,
		Subtotal:     r.Subtotal,
		Tax:          r.Tax,
		Total:        r.Total,
	}
}

// ExtractionResult is the tagged outcome of a byte-level extraction call.
// Success carries header fields, items and the raw extracted text; every
// failure carries an error kind plus a human-readable remediation message.
type ExtractionResult struct {
	Success      bool          `json:"success"`
	Error        string        `json:"error,omitempty"`
	Message      string        `json:"message"`
	OCRAvailable bool          `json:"ocr_available"`
	Header       InvoiceHeader `json:"header"`
	Items        []LineItem    `json:"items"`
	RawText      string        `json:"raw_text,omitempty"`
}
