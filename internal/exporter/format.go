package exporter

import (
	"strconv"
)

// formatCell serializes one cell for CSV output. Numeric cells keep full
// precision; display rounding is the dashboard's concern, not the export's.
func formatCell(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
