package inventory

import (
	"math"
	"strconv"
	"strings"
)

// ParseCurrency parses a currency cell like "$12,345.67". Empty and
// unparseable cells become 0; a dirty cell never fails an import.
func ParseCurrency(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParsePercent parses a percentage cell like "20%" into a fraction (0.20).
// The divide-by-100 applies whether or not the percent sign is present,
// mirroring the source spreadsheet. Unparseable cells fall back.
func ParsePercent(s string, fallback float64) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "%", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v / 100
}

// ParseNumber parses a plain numeric cell, tolerating thousands separators.
// Missing or unparseable cells fall back to the category default.
func ParseNumber(s string, fallback float64) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}

// Round rounds half away from zero to the given number of decimal places,
// matching spreadsheet ROUND semantics.
func Round(v float64, decimals int) float64 {
	shift := math.Pow(10, float64(decimals))
	return math.Round(v*shift) / shift
}

// ratio divides cost by size, substituting 0 when the denominator is not
// positive.
func ratio(cost, size float64) float64 {
	if size > 0 {
		return cost / size
	}
	return 0
}

// suggestedPrice applies a category's price basis with the Margin < 1
// guard: a margin at or above 100% prices at 0 rather than infinity.
func suggestedPrice(basis PriceBasis, unitCost, cost, margin float64, decimals int) float64 {
	if basis == PriceNone || margin >= 1 {
		return 0
	}
	var raw float64
	switch basis {
	case PriceDoubleUnitCost:
		raw = unitCost * 2 / (1 - margin)
	case PriceCost:
		raw = cost / (1 - margin)
	case PriceUnitCost:
		raw = unitCost / (1 - margin)
	}
	return Round(raw, decimals)
}
