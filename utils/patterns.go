package utils

import "regexp"

// PatternTable is the ordered recognition configuration for the field
// extractor. For every field the candidate patterns are tried in priority
// order and the first match in document order wins. Each pattern carries
// exactly one capture group: the field value.
//
// Separator classes deliberately exclude newlines so a label never captures
// a value from a following line; capture classes stop at line breaks and
// separating commas/semicolons to keep runaway matches bounded.
type PatternTable struct {
	CodeNo       []*regexp.Regexp
	InvoiceNo    []*regexp.Regexp
	Date         []*regexp.Regexp
	CustomerName []*regexp.Regexp
	Phone        []*regexp.Regexp
	Email        []*regexp.Regexp
	Reference    []*regexp.Regexp
	Subtotal     []*regexp.Regexp
	Tax          []*regexp.Regexp
	Total        []*regexp.Regexp

	// AddressLabel marks a line that starts an address block; collection of
	// following lines stops at a line matching ContactLabel.
	AddressLabel *regexp.Regexp
	ContactLabel *regexp.Regexp
}

const (
	// sep joins a label to its value on the same line
	sep = `[ \t:\-]*`
	// amountGroup captures a numeric run with optional thousands separators
	// and up to two decimal digits
	amountGroup = `([0-9][0-9,]*(?:\.[0-9]{1,2})?)`
	// currency is an optional currency code between label and amount
	currency = `(?:TSH|TZS|UGX|USD)[ \t]*`
)

// amountPatterns builds the two candidate patterns for a monetary label set:
// label followed by a currency code and amount, then label followed by a
// bare amount.
func amountPatterns(labels string) []*regexp.Regexp {
	return []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:` + labels + `)` + sep + currency + amountGroup),
		regexp.MustCompile(`(?i)(?:` + labels + `)` + sep + amountGroup),
	}
}

// DefaultPatternTable returns the built-in recognition table for common
// professional invoice layouts (pro forma invoices with Code No / PI No as
// well as traditional Invoice Number documents).
func DefaultPatternTable() PatternTable {
	t := PatternTable{
		CodeNo: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bCode\s*(?:No|Number)\.?` + sep + `([A-Z0-9][A-Z0-9\-/]*)`),
			regexp.MustCompile(`(?i)\bCode\s*#[ \t]*([A-Z0-9][A-Z0-9\-/]*)`),
		},
		InvoiceNo: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bInvoice\s*(?:Number|No\.?|#)` + sep + `([A-Z0-9][A-Z0-9\-/]*)`),
			// the captured identifier must contain a digit, so the INV prefix
			// can never swallow the tail of the word "Invoice"
			regexp.MustCompile(`(?i)\b(?:PI|P\.I\.|INV)\s*(?:No\.?)?` + sep + `([A-Z]{0,4}[\-/]?[0-9][A-Z0-9\-/]{2,})`),
			// digits-heavy token fallback; identifiers on real documents are
			// mostly numeric with a short alpha prefix
			regexp.MustCompile(`(?i)\b([A-Z]{0,3}[0-9]{5,20})\b`),
		},
		Date: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:Invoice\s*Date|Date|Dated)` + sep + `([0-3]?[0-9][ /\-][01]?[0-9][ /\-][0-9]{2,4})`),
		},
		CustomerName: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bCustomer\s*Name` + sep + `([A-Za-z][^,;\n\r]{3,150})`),
			regexp.MustCompile(`(?i)\bBill\s*To` + sep + `([A-Za-z][^,;\n\r]{3,150})`),
			regexp.MustCompile(`(?i)\bSold\s*To` + sep + `([A-Za-z][^,;\n\r]{3,150})`),
			regexp.MustCompile(`(?i)\bCustomer` + sep + `([A-Za-z][^,;\n\r]{3,150})`),
			regexp.MustCompile(`(?i)\bBuyer` + sep + `([A-Za-z][^,;\n\r]{3,150})`),
		},
		Phone: []*regexp.Regexp{
			// 7 to 25 characters including the leading digit
			regexp.MustCompile(`(?i)\b(?:Tel|Telephone|Phone|Mobile|Contact\s*(?:Number|Tel)|Fax)\b\.?` + sep + `(\+?[0-9][0-9 .\-()]{6,24})`),
		},
		Email: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bE-?mail\b` + sep + `([^\s@:,;]+@[^\s:,;]+)`),
			regexp.MustCompile(`(?i)\bMail\b` + sep + `([^\s@:,;]+@[^\s:,;]+)`),
		},
		Reference: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bReference` + sep + `([A-Z0-9][A-Z0-9 \-/]{1,48})`),
			regexp.MustCompile(`(?i)\bCust\s*Ref` + sep + `([A-Z0-9][A-Z0-9 \-/]{1,48})`),
			regexp.MustCompile(`(?i)\bRef\.?[ \t:\-]+([A-Z0-9][A-Z0-9 \-/]{1,48})`),
			regexp.MustCompile(`(?i)\bOrder\s*(?:Number|Ref|No\.?)` + sep + `([A-Z0-9][A-Z0-9 \-/]{1,48})`),
			regexp.MustCompile(`(?i)\bFOR[ \t:\-]+([A-Z0-9][A-Z0-9 \-/]{1,48})`),
		},
		Subtotal: amountPatterns(`Sub\s*Total|Subtotal|Net\s*Value|Net\s*Amount|\bNet\b`),
		Tax:      amountPatterns(`VAT|GST|Sales\s*Tax|\bTax\b`),

		AddressLabel: regexp.MustCompile(`(?i)\b(?:Address|Addr|ADD)\b`),
		ContactLabel: regexp.MustCompile(`(?i)\b(?:Tel|Telephone|Phone|Mobile|Fax|E-?mail|Contact)\b`),
	}

	// Total is stricter than the other monetary fields: the label synonyms
	// that cannot appear mid-sentence come first, and a bare "Total" only
	// matches when immediately followed by a value-terminating separator, so
	// "Total" inside prose (or inside "Sub Total") never wins.
	for _, label := range []string{`Grand\s*Total`, `Gross\s*Value`, `Total\s*Amount`, `Amount\s*Due`} {
		t.Total = append(t.Total, amountPatterns(label)...)
	}
	t.Total = append(t.Total,
		regexp.MustCompile(`(?i)\bTotal[ \t]*:[ \t]*(?:`+currency+`)?`+amountGroup),
		regexp.MustCompile(`(?i)\bTotal[ \t]+`+currency+amountGroup),
	)

	return t
}
