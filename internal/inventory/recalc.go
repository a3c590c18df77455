package inventory

import (
	"barpulse/pkg/contracts/domain"
)

// Recalculate re-derives every computed column of a dataset from its
// editable columns, overwriting whatever was there. It is a total
// function: an empty dataset comes back unchanged, and every division
// guards its denominator instead of raising.
//
// Derivation order per row: unit cost (4 decimal places), Value
// (2 decimal places), the category's suggested price, then wine's BTG
// price. Running it twice is a fixed point.
func Recalculate(ds *domain.Dataset) *domain.Dataset {
	out := ds.Clone()
	if out.Empty() {
		return out
	}
	spec := Spec(out.Category)

	for _, row := range out.Rows {
		cost := row.Number(spec.CostColumn, 0)
		margin := row.Number(ColMargin, spec.MarginDefault())

		unitCost := 0.0
		if spec.UnitCostColumn != "" {
			unitCost = Round(ratio(cost, row.Number(spec.SizeColumn, spec.Defaults[spec.SizeColumn])), 4)
			row[spec.UnitCostColumn] = unitCost
		}

		row[ColValue] = Round(row.Number(ColInventory, 0)*cost, 2)

		if spec.PriceColumn != "" {
			row[spec.PriceColumn] = suggestedPrice(spec.PriceBasis, unitCost, cost, margin, spec.PriceDecimals)
		}
		if spec.HasBTG {
			row[ColBTGPrice] = btgPrice(row)
		}
	}

	if spec.UnitCostColumn != "" {
		out.AddColumn(spec.UnitCostColumn)
	}
	out.AddColumn(ColValue)
	if spec.PriceColumn != "" {
		out.AddColumn(spec.PriceColumn)
	}
	if spec.HasBTG {
		out.AddColumn(ColBTGPrice)
	}
	return out
}

// NewRow returns a blank editable row for manual entry in the grid:
// numeric columns at their category defaults, text columns empty. A
// subsequent recalculation fills the derived columns.
func NewRow(category domain.Category) domain.Row {
	spec := Spec(category)
	row := domain.Row{}
	for _, name := range spec.EditableColumns() {
		if def, ok := spec.Defaults[name]; ok {
			row[name] = def
		} else if name == spec.CostColumn {
			row[name] = 0.0
		} else {
			row[name] = ""
		}
	}
	return row
}
