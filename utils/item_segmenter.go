package utils

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/invoicetrack/ocr-invoice-extraction/dto"
)

// SegmenterConfig holds the tunable thresholds of the item segmenter. The
// defaults match the documented sample invoices but none of the values is
// law; callers may override them per document family.
type SegmenterConfig struct {
	// MaxQuantity is the largest integer accepted as a quantity candidate.
	MaxQuantity int
	// MinLineLength rejects lines at or below this trimmed length.
	MinLineLength int
	// MaxDescriptionLen truncates item descriptions.
	MaxDescriptionLen int
	// DefaultUnit is used when no unit token is found on the line.
	DefaultUnit string
}

// DefaultSegmenterConfig returns the thresholds used by the default parser.
func DefaultSegmenterConfig() SegmenterConfig {
	return SegmenterConfig{
		MaxQuantity:       1000,
		MinLineLength:     5,
		MaxDescriptionLen: 255,
		DefaultUnit:       "NOS",
	}
}

type segmenterState int

const (
	stateSeekingHeader segmenterState = iota
	stateInItems
	stateDone
)

var (
	// A real item-table header must satisfy both keyword tests; a prose line
	// that merely mentions "description" fails the second.
	headerTabularRe = regexp.MustCompile(`(?i)(?:Item|Description|Product|Service|Code|Sr\.|S\.N)`)
	headerColumnRe  = regexp.MustCompile(`(?i)(?:Qty|Quantity|Unit|Price|Rate|Amount|Value)`)

	summaryRe = regexp.MustCompile(`(?i)(?:Sub\s*Total|Grand\s*Total|Total|VAT|Tax|Payment|Amount\s*Due|Summary)`)

	numberTokenRe = regexp.MustCompile(`[0-9][0-9,]*(?:\.[0-9]+)?`)
	itemCodeRe    = regexp.MustCompile(`^([A-Za-z0-9]*[0-9]{4,}[A-Za-z0-9\-/]*)\s+`)
	unitTokenRe   = regexp.MustCompile(`(?i)\b(PCS|NOS|UNT|UNIT|SET|BOX|KG|LTR|MTR|PRS|EA)\b`)
	pureNumberRe  = regexp.MustCompile(`^[0-9.,\s]+$`)
)

// SegmentItems walks the document lines through a
// SEEKING_HEADER -> IN_ITEMS -> DONE state machine and parses the item
// section into line items. The scan is a single bounded pass: one state
// decision per line, terminating at the summary/footer section or at end of
// input.
func SegmentItems(lines []string, cfg SegmenterConfig) []dto.LineItem {
	items := []dto.LineItem{}
	state := stateSeekingHeader

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch state {
		case stateSeekingHeader:
			if headerTabularRe.MatchString(line) && headerColumnRe.MatchString(line) {
				// header row itself is not an item
				state = stateInItems
			}
		case stateInItems:
			if summaryRe.MatchString(line) && len(items) > 0 {
				state = stateDone
				continue
			}
			if item, ok := parseItemLine(line, cfg); ok {
				items = append(items, item)
			}
		case stateDone:
			// remaining lines are ignored for item purposes
		}
	}
	return items
}

// parseItemLine applies the numeric-token heuristic to one candidate line:
// the last number is the line value, a qualifying second-to-last small
// integer is the quantity, and the residual text is the description.
func parseItemLine(line string, cfg SegmenterConfig) (dto.LineItem, bool) {
	if len(line) <= cfg.MinLineLength {
		return dto.LineItem{}, false
	}

	rest := line
	code := ""
	if m := itemCodeRe.FindStringSubmatch(rest); m != nil {
		code = m[1]
		rest = strings.TrimSpace(rest[len(m[0]):])
	}

	unit := cfg.DefaultUnit
	if u := unitTokenRe.FindString(rest); u != "" {
		unit = strings.ToUpper(u)
		rest = unitTokenRe.ReplaceAllString(rest, " ")
	}

	numbers := numberTokenRe.FindAllString(rest, -1)
	if len(numbers) == 0 {
		return dto.LineItem{}, false
	}

	// Pure-number lines are separate columns (sequence numbers, amounts),
	// never items by themselves.
	residual := CollapseWhitespace(numberTokenRe.ReplaceAllString(rest, " "))
	if residual == "" || pureNumberRe.MatchString(residual) {
		return dto.LineItem{}, false
	}

	item := dto.LineItem{
		Code:     code,
		Unit:     unit,
		Quantity: 1,
	}

	if v, ok := ParseAmount(numbers[len(numbers)-1]); ok {
		item.Total = &v
	}

	if len(numbers) >= 2 {
		cand := numbers[len(numbers)-2]
		if qty, ok := parseQuantity(cand, cfg.MaxQuantity); ok {
			item.Quantity = qty
			// with a quantity in place, a preceding decimal-bearing token is
			// the unit price
			if len(numbers) >= 3 && strings.Contains(numbers[len(numbers)-3], ".") {
				if p, ok := ParseAmount(numbers[len(numbers)-3]); ok {
					item.UnitPrice = &p
				}
			}
		} else if p, ok := ParseAmount(cand); ok {
			item.UnitPrice = &p
		}
	}

	// single-quantity rows price the whole line
	if item.UnitPrice == nil && item.Quantity == 1 && item.Total != nil {
		p := *item.Total
		item.UnitPrice = &p
	}

	// the residual was already checked non-empty and not purely numeric
	item.Description = truncate(residual, cfg.MaxDescriptionLen)

	return item, true
}

// parseQuantity reports whether a numeric token qualifies as a quantity:
// an integer without a decimal point in (0, limit].
func parseQuantity(token string, limit int) (int, bool) {
	if strings.Contains(token, ".") {
		return 0, false
	}
	q, err := strconv.Atoi(strings.ReplaceAll(token, ",", ""))
	if err != nil || q <= 0 || q > limit {
		return 0, false
	}
	return q, true
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
