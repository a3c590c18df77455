package inventory

import (
	"strings"

	"barpulse/pkg/contracts/domain"
)

// Normalize turns a raw uploaded table into a typed dataset for the given
// category. It trims headers, renames known source columns to canonical
// names, cleans currency and percentage text, coerces the numeric columns
// with category defaults, derives any computed columns the upload did not
// supply, recomputes Value, and drops legacy columns.
//
// The import is best-effort: a malformed cell becomes its category default
// and the row survives. The only failure is a domain.FormatError for input
// that is not a table at all (no header row).
func Normalize(table *domain.Table, category domain.Category) (*domain.Dataset, error) {
	if table == nil || len(table.Header) == 0 {
		return nil, domain.NewFormatError("missing header row", nil)
	}
	spec := Spec(category)

	// Steps 1-2: trim headers and apply the rename map. Step 8 (legacy
	// column drop) happens here as well so dropped cells are never copied.
	type column struct {
		name string
		idx  int
	}
	var columns []column
	seen := map[string]bool{}
	for i, raw := range table.Header {
		name := strings.TrimSpace(raw)
		if canonical, ok := spec.Rename[name]; ok {
			name = canonical
		}
		if name == "" || dropped(spec, name) || seen[name] {
			continue
		}
		seen[name] = true
		columns = append(columns, column{name: name, idx: i})
	}
	if len(columns) == 0 {
		return nil, domain.NewFormatError("no usable columns", nil)
	}

	ds := domain.NewDataset(category)
	for _, c := range columns {
		ds.AddColumn(c.name)
	}

	// Remember which canonical columns the upload itself supplied; derived
	// columns are only computed when absent from the input.
	supplied := func(name string) bool { return seen[name] }

	for _, record := range table.Records {
		row := domain.Row{}
		for _, c := range columns {
			if c.idx < len(record) {
				row[c.name] = record[c.idx]
			}
		}
		normalizeRow(row, spec)
		ds.Rows = append(ds.Rows, row)
	}

	// Steps 3-5 created typed cells row by row; the numeric columns with
	// defaults always exist afterwards, even when the upload omitted them.
	for _, name := range spec.NumericColumns {
		ds.AddColumn(name)
	}

	deriveMissing(ds, spec, supplied)
	return ds, nil
}

// normalizeRow applies the cell-level cleanups (steps 3-5) to one row.
func normalizeRow(row domain.Row, spec FieldSpec) {
	for _, name := range spec.CurrencyColumns {
		if cell, ok := row[name]; ok {
			row[name] = ParseCurrency(asString(cell))
		}
	}
	for _, name := range spec.PercentColumns {
		row[name] = ParsePercent(asString(row[name]), spec.Defaults[name])
	}
	for _, name := range spec.NumericColumns {
		if percentColumn(spec, name) {
			continue // already handled above
		}
		row[name] = ParseNumber(asString(row[name]), spec.Defaults[name])
	}
	// A supplied ratio column feeds the price derivation, so it gets the
	// same numeric coercion as everything else.
	if spec.UnitCostColumn != "" {
		if cell, ok := row[spec.UnitCostColumn]; ok {
			row[spec.UnitCostColumn] = ParseNumber(asString(cell), 0)
		}
	}
}

// deriveMissing computes the derived columns the upload did not supply
// (step 6), then unconditionally recomputes Value (step 7).
func deriveMissing(ds *domain.Dataset, spec FieldSpec, supplied func(string) bool) {
	deriveUnitCost := spec.UnitCostColumn != "" && !supplied(spec.UnitCostColumn)
	derivePrice := spec.PriceColumn != "" && !supplied(spec.PriceColumn)

	for _, row := range ds.Rows {
		cost := row.Number(spec.CostColumn, 0)
		margin := row.Number(ColMargin, spec.MarginDefault())

		if deriveUnitCost {
			row[spec.UnitCostColumn] = Round(ratio(cost, row.Number(spec.SizeColumn, 0)), 4)
		}
		if derivePrice {
			unitCost := 0.0
			if spec.UnitCostColumn != "" {
				unitCost = row.Number(spec.UnitCostColumn, 0)
			}
			row[spec.PriceColumn] = suggestedPrice(spec.PriceBasis, unitCost, cost, margin, spec.PriceDecimals)
		}
		if spec.HasBTG {
			row[ColBTGPrice] = btgPrice(row)
		}
		row[ColValue] = Round(row.Number(ColInventory, 0)*cost, 2)
	}

	if deriveUnitCost {
		ds.AddColumn(spec.UnitCostColumn)
	}
	if derivePrice {
		ds.AddColumn(spec.PriceColumn)
	}
	if spec.HasBTG {
		ds.AddColumn(ColBTGPrice)
	}
	ds.AddColumn(ColValue)
}

// btgPrice derives wine's by-the-glass price: a quarter of the bottle
// price when the BTG flag is exactly "Yes", otherwise 0.
func btgPrice(row domain.Row) float64 {
	if strings.TrimSpace(row.String(ColBTG)) != BTGYes {
		return 0
	}
	return Round(row.Number(ColBottlePrice, 0)/4, 0)
}

func dropped(spec FieldSpec, name string) bool {
	for _, d := range spec.DropColumns {
		if d == name {
			return true
		}
	}
	return false
}

func percentColumn(spec FieldSpec, name string) bool {
	for _, p := range spec.PercentColumns {
		if p == name {
			return true
		}
	}
	return false
}

func asString(cell any) string {
	if s, ok := cell.(string); ok {
		return s
	}
	return ""
}
