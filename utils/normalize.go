package utils

import "strings"

// NormalizedText is the working form of a raw extracted document: the
// trimmed original-case text, a lowercased copy for keyword search, and the
// non-empty trimmed lines in document order.
type NormalizedText struct {
	Text  string
	Lower string
	Lines []string
}

// NormalizeText prepares raw extracted text for pattern matching.
// It never fails; empty or whitespace-only input yields an empty result.
func NormalizeText(raw string) NormalizedText {
	trimmed := strings.TrimSpace(raw)
	n := NormalizedText{
		Text:  trimmed,
		Lower: strings.ToLower(trimmed),
	}
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			n.Lines = append(n.Lines, line)
		}
	}
	return n
}

// IsEmpty reports whether the document contained no usable text.
func (n NormalizedText) IsEmpty() bool {
	return n.Text == ""
}

// CollapseWhitespace folds runs of whitespace inside a field value into
// single spaces and trims the ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
