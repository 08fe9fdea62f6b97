package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	cases := map[string]string{
		"1,037,400.00":     "1037400.00",
		"3,484,144.00":     "3484144.00",
		"TSH 4,111,289.92": "4111289.92",
		"627,145.92":       "627145.92",
		"25424":            "25424",
		"1,300.":           "1300",
		"-500.00":          "-500.00",
	}

	for in, want := range cases {
		got, ok := ParseAmount(in)
		assert.True(t, ok, in)
		assert.True(t, got.Equal(decimal.RequireFromString(want)), in)
	}
}

func TestParseAmountAbsent(t *testing.T) {
	for _, in := range []string{"", "   ", "N/A", "TSH", "1.2.3", "-", ","} {
		_, ok := ParseAmount(in)
		assert.False(t, ok, in)
	}
}
