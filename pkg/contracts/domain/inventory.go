package domain

import "fmt"

// Category identifies one of the four inventory programs tracked by the
// dashboard. Categories are fixed; there is no user-defined category support.
type Category string

const (
	CategorySpirits     Category = "spirits"
	CategoryWine        Category = "wine"
	CategoryBeer        Category = "beer"
	CategoryIngredients Category = "ingredients"
)

// Categories lists every supported category in display order.
var Categories = []Category{
	CategorySpirits,
	CategoryWine,
	CategoryBeer,
	CategoryIngredients,
}

// ParseCategory validates a category string from an external caller.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Row holds one inventory line item as a cell map keyed by canonical column
// name. Canonical numeric fields are float64 after normalization; columns
// that passed through the normalizer unmapped keep their raw string cells.
// A missing key means the column has no value for this row.
type Row map[string]any

// Clone returns a shallow-independent copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Number returns the float64 cell for name, or fallback when the cell is
// absent or not numeric.
func (r Row) Number(name string, fallback float64) float64 {
	if v, ok := r[name].(float64); ok {
		return v
	}
	return fallback
}

// String returns the string cell for name, or "" when absent or non-string.
func (r Row) String(name string) string {
	if v, ok := r[name].(string); ok {
		return v
	}
	return ""
}

// Dataset is the in-memory table for one category. Column order is display
// order and is preserved through import, edits and export. A dataset is
// always replaced wholesale by an import; it is never merged with a
// previous version.
type Dataset struct {
	Category Category `json:"category"`
	Columns  []string `json:"columns"`
	Rows     []Row    `json:"rows"`
}

// NewDataset returns an empty dataset for the given category.
func NewDataset(category Category) *Dataset {
	return &Dataset{Category: category, Columns: []string{}, Rows: []Row{}}
}

// Clone deep-copies the dataset so callers can hand it out without
// exposing internal state to mutation.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Category: d.Category,
		Columns:  append([]string(nil), d.Columns...),
		Rows:     make([]Row, len(d.Rows)),
	}
	for i, row := range d.Rows {
		out.Rows[i] = row.Clone()
	}
	return out
}

// HasColumn reports whether the dataset carries the named column.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends a column if it is not already present.
func (d *Dataset) AddColumn(name string) {
	if !d.HasColumn(name) {
		d.Columns = append(d.Columns, name)
	}
}

// Empty reports whether the dataset has no rows.
func (d *Dataset) Empty() bool {
	return len(d.Rows) == 0
}

// Table is a raw tabular payload as read from an uploaded CSV or Excel
// file, before any normalization. All cells are strings.
type Table struct {
	Header  []string
	Records [][]string
}
