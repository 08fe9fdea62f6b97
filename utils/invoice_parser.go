package utils

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/invoicetrack/ocr-invoice-extraction/dto"
)

// customerNameScanLines bounds the positional fallback for the customer name
// to the header region, so body text is never mistaken for a name.
const customerNameScanLines = 10

// maxAddressLines caps how many lines after the address label are collected.
const maxAddressLines = 3

// InvoiceParser extracts structured invoice data from raw text using an
// ordered pattern table. It is pure and stateless: the same text always
// yields the same record, and nothing is carried between calls.
type InvoiceParser struct {
	table PatternTable
	seg   SegmenterConfig
}

// NewInvoiceParser builds a parser from a pattern table and segmenter
// thresholds.
func NewInvoiceParser(table PatternTable, seg SegmenterConfig) *InvoiceParser {
	return &InvoiceParser{table: table, seg: seg}
}

var defaultParser = NewInvoiceParser(DefaultPatternTable(), DefaultSegmenterConfig())

// ParseInvoice parses invoice text with the default pattern table. It never
// fails: empty or whitespace-only input yields a record with every field
// absent and an empty item list.
func ParseInvoice(text string) dto.InvoiceRecord {
	return defaultParser.Parse(text)
}

// Parse extracts header fields and line items from raw invoice text.
func (p *InvoiceParser) Parse(text string) dto.InvoiceRecord {
	record := dto.InvoiceRecord{Items: []dto.LineItem{}}

	n := NormalizeText(text)
	if n.IsEmpty() {
		return record
	}

	record.CodeNo = findFirst(p.table.CodeNo, n.Text)

	// invoice and code numbers are frequently the same identifier on pro
	// forma documents, so the code number doubles as the last fallback
	record.InvoiceNo = findFirst(p.table.InvoiceNo, n.Text)
	if record.InvoiceNo == "" {
		record.InvoiceNo = record.CodeNo
	}

	record.Date = findFirst(p.table.Date, n.Text)

	record.CustomerName = findFirst(p.table.CustomerName, n.Text)
	if record.CustomerName == "" {
		record.CustomerName = fallbackCustomerName(n.Lines)
	}

	record.Address = p.extractAddress(n.Lines)
	record.Phone = findFirst(p.table.Phone, n.Text)
	record.Email = findFirst(p.table.Email, n.Text)
	record.Reference = findFirst(p.table.Reference, n.Text)

	record.Subtotal = findAmount(p.table.Subtotal, n.Text)
	record.Tax = findAmount(p.table.Tax, n.Text)
	record.Total = findAmount(p.table.Total, n.Text)

	record.Items = SegmentItems(n.Lines, p.seg)

	return record
}

// findFirst tries the candidate patterns in priority order and returns the
// first captured value, whitespace-collapsed. An unmatched field is the
// empty string (absent), never an error.
func findFirst(patterns []*regexp.Regexp, text string) string {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if len(m) > 1 {
			if v := CollapseWhitespace(m[1]); v != "" {
				return v
			}
		}
	}
	return ""
}

// findAmount tries the candidate patterns in priority order and normalizes
// the first captured amount. nil means absent.
func findAmount(patterns []*regexp.Regexp, text string) *decimal.Decimal {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if len(m) > 1 {
			if d, ok := ParseAmount(m[1]); ok {
				return &d
			}
		}
	}
	return nil
}

// fallbackCustomerName scans the header region for the first line of at
// least two words that are all title-cased or all upper-cased.
func fallbackCustomerName(lines []string) string {
	limit := len(lines)
	if limit > customerNameScanLines {
		limit = customerNameScanLines
	}
	for _, line := range lines[:limit] {
		words := strings.Fields(line)
		if len(words) < 2 {
			continue
		}
		capitalized := true
		for _, w := range words {
			if len(w) <= 1 {
				continue
			}
			r := []rune(w)[0]
			if !unicode.IsUpper(r) {
				capitalized = false
				break
			}
		}
		if capitalized {
			return CollapseWhitespace(line)
		}
	}
	return ""
}

// extractAddress finds the labeled address line and collects it together
// with the following lines, stopping as soon as a line carries a phone or
// email label so contact fields are never swallowed into the address.
func (p *InvoiceParser) extractAddress(lines []string) string {
	for i, line := range lines {
		loc := p.table.AddressLabel.FindStringIndex(line)
		if loc == nil {
			continue
		}

		var parts []string
		if rest := strings.Trim(line[loc[1]:], " \t:.-"); rest != "" {
			parts = append(parts, rest)
		}
		for j := i + 1; j < len(lines) && j <= i+maxAddressLines; j++ {
			if p.table.ContactLabel.MatchString(lines[j]) {
				break
			}
			parts = append(parts, lines[j])
		}
		if len(parts) == 0 {
			return ""
		}
		return CollapseWhitespace(strings.Join(parts, " "))
	}
	return ""
}
