package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{
			name:     "dollar sign and thousands separator",
			input:    "$12,345.67",
			expected: 12345.67,
		},
		{
			name:     "plain number",
			input:    "19.99",
			expected: 19.99,
		},
		{
			name:     "surrounding whitespace",
			input:    "  $5.00  ",
			expected: 5,
		},
		{
			name:     "empty cell",
			input:    "",
			expected: 0,
		},
		{
			name:     "whitespace only",
			input:    "   ",
			expected: 0,
		},
		{
			name:     "unparseable text",
			input:    "abc",
			expected: 0,
		},
		{
			name:     "lone dollar sign",
			input:    "$",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCurrency(tt.input))
		})
	}
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback float64
		expected float64
	}{
		{
			name:     "percent sign",
			input:    "20%",
			fallback: 0.20,
			expected: 0.20,
		},
		{
			name:     "bare number still divided by 100",
			input:    "33",
			fallback: 0.20,
			expected: 0.33,
		},
		{
			name:     "unparseable falls back to category default",
			input:    "n/a",
			fallback: 0.20,
			expected: 0.20,
		},
		{
			name:     "empty falls back",
			input:    "",
			fallback: 0.33,
			expected: 0.33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ParsePercent(tt.input, tt.fallback), 1e-9)
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback float64
		expected float64
	}{
		{
			name:     "plain number",
			input:    "25.4",
			fallback: 33.8,
			expected: 25.4,
		},
		{
			name:     "thousands separator",
			input:    "1,200",
			fallback: 0,
			expected: 1200,
		},
		{
			name:     "missing uses fallback",
			input:    "",
			fallback: 33.8,
			expected: 33.8,
		},
		{
			name:     "unparseable uses fallback",
			input:    "a bottle",
			fallback: 25.3,
			expected: 25.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseNumber(tt.input, tt.fallback))
		})
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		decimals int
		expected float64
	}{
		{
			name:     "four places",
			input:    20.0 / 25.4,
			decimals: 4,
			expected: 0.7874,
		},
		{
			name:     "whole dollar",
			input:    1.9685,
			decimals: 0,
			expected: 2,
		},
		{
			name:     "cents",
			input:    6.66666,
			decimals: 2,
			expected: 6.67,
		},
		{
			name:     "half rounds away from zero",
			input:    3.75,
			decimals: 0,
			expected: 4,
		},
		{
			name:     "zero",
			input:    0,
			decimals: 2,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Round(tt.input, tt.decimals))
		})
	}
}

func TestSuggestedPriceGuards(t *testing.T) {
	assert.Equal(t, 0.0, suggestedPrice(PriceCost, 0, 10, 1.0, 0), "margin of exactly 1 must price at 0")
	assert.Equal(t, 0.0, suggestedPrice(PriceUnitCost, 5, 120, 1.5, 2), "margin above 1 must price at 0")
	assert.Equal(t, 0.0, suggestedPrice(PriceNone, 5, 120, 0.25, 2))
	assert.Equal(t, 2.0, suggestedPrice(PriceDoubleUnitCost, 0.7874, 20, 0.20, 0))
}
