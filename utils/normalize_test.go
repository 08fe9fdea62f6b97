package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	n := NormalizeText("  Proforma Invoice \r\n\n  Code No : A01696  \n")

	assert.False(t, n.IsEmpty())
	assert.Equal(t, []string{"Proforma Invoice", "Code No : A01696"}, n.Lines)
	assert.Contains(t, n.Lower, "proforma invoice")
}

func TestNormalizeTextEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t\r\n"} {
		n := NormalizeText(raw)

		assert.True(t, n.IsEmpty())
		assert.Empty(t, n.Lines)
	}
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "STATEOIL TANZANIA LIMITED", CollapseWhitespace("  STATEOIL \t TANZANIA\n LIMITED "))
	assert.Equal(t, "", CollapseWhitespace(" \t "))
}
