package inventory

import (
	"barpulse/pkg/contracts/domain"
)

// Canonical column names. Uploaded headers are renamed to these before any
// computation, and exports are written with them.
const (
	ColProduct     = "Product"
	ColType        = "Type"
	ColCost        = "Cost"
	ColCostKeg     = "Cost/Keg"
	ColSizeOz      = "Size (oz)"
	ColSize        = "Size"
	ColSizeYield   = "Size/Yield"
	ColMargin      = "Margin"
	ColInventory   = "Inventory"
	ColUse         = "Use"
	ColUoM         = "UoM"
	ColDistributor = "Distributor"
	ColNotes       = "Notes"
	ColBTG         = "BTG"

	ColCostOz      = "Cost/Oz"
	ColCostUnit    = "Cost/Unit"
	ColValue       = "Value"
	ColNeatPrice   = "Neat Price"
	ColBottlePrice = "Bottle Price"
	ColMenuPrice   = "Menu Price"
	ColBTGPrice    = "BTG Price"

	// ColPar is a legacy par-level column from older spreadsheet exports.
	// The feature was removed; the column is dropped on import.
	ColPar = "Par"
)

// BTGYes is the only value of the BTG flag that marks a wine as poured by
// the glass. The comparison is an exact match: "yes" and "Y" mean no.
const BTGYes = "Yes"

// PriceBasis selects the suggested-price formula for a category.
type PriceBasis int

const (
	// PriceNone means the category has no suggested price column.
	PriceNone PriceBasis = iota
	// PriceDoubleUnitCost prices at 2 x unit cost / (1 - margin).
	PriceDoubleUnitCost
	// PriceCost prices at cost / (1 - margin).
	PriceCost
	// PriceUnitCost prices at unit cost / (1 - margin).
	PriceUnitCost
)

// FieldSpec is the declarative description of one category's columns:
// which uploaded headers map to which canonical names, which cells carry
// currency or percentage text, what each numeric field defaults to, and
// how the derived columns are computed. The normalizer and the
// recalculation engine are both driven entirely by these tables.
type FieldSpec struct {
	Category domain.Category

	// Rename maps known source header spellings to canonical names.
	// Headers not in the map pass through unchanged.
	Rename map[string]string

	// CurrencyColumns are cleaned of "$", "," and surrounding whitespace
	// when present; empty or unparseable cells become 0.
	CurrencyColumns []string

	// PercentColumns are stripped of "%" and divided by 100; unparseable
	// cells fall back to the column's entry in Defaults.
	PercentColumns []string

	// Defaults lists the numeric columns the normalizer guarantees to
	// exist, with the value used for missing or unparseable cells.
	Defaults map[string]float64

	// NumericColumns fixes the coercion order for Defaults so derived
	// column ordering is deterministic.
	NumericColumns []string

	// CostColumn is the basis for Value and the unit-cost ratio.
	CostColumn string
	// SizeColumn is the unit-cost denominator (empty for wine, which has
	// no unit-cost column).
	SizeColumn string
	// UnitCostColumn is the derived ratio column (empty for wine).
	UnitCostColumn string

	// PriceColumn, PriceBasis and PriceDecimals describe the category's
	// suggested price. PriceColumn is empty for ingredients.
	PriceColumn   string
	PriceBasis    PriceBasis
	PriceDecimals int

	// HasBTG marks wine's by-the-glass flag and BTG Price derivation.
	HasBTG bool

	// Editable lists the columns staff may change directly in the grid.
	// Derived columns are owned by the recalculation engine.
	Editable []string

	// DropColumns are removed on import regardless of content.
	DropColumns []string
}

var specs = map[domain.Category]FieldSpec{
	domain.CategorySpirits: {
		Category: domain.CategorySpirits,
		Rename: map[string]string{
			"Product Name":         ColProduct,
			"Item":                 ColProduct,
			"Liquor Type":          ColType,
			"Spirit Type":          ColType,
			"Cost ($)":             ColCost,
			"Bottle Cost":          ColCost,
			"Size(oz)":             ColSizeOz,
			"Bottle Size (oz)":     ColSizeOz,
			"Margin %":             ColMargin,
			"Target Margin":        ColMargin,
			"On Hand":              ColInventory,
			"Qty":                  ColInventory,
			"Primary Use":          ColUse,
			"Vendor":               ColDistributor,
			"Cost per Oz":          ColCostOz,
			"Cost/oz":              ColCostOz,
			"Inventory Value":      ColValue,
			"Suggested Neat Price": ColNeatPrice,
			"Neat Pour Price":      ColNeatPrice,
		},
		CurrencyColumns: []string{ColCost, ColNeatPrice},
		PercentColumns:  []string{ColMargin},
		Defaults: map[string]float64{
			ColSizeOz:    33.8,
			ColMargin:    0.20,
			ColInventory: 0,
		},
		NumericColumns: []string{ColSizeOz, ColMargin, ColInventory},
		CostColumn:     ColCost,
		SizeColumn:     ColSizeOz,
		UnitCostColumn: ColCostOz,
		PriceColumn:    ColNeatPrice,
		PriceBasis:     PriceDoubleUnitCost,
		PriceDecimals:  0,
		Editable:       []string{ColProduct, ColType, ColCost, ColSizeOz, ColMargin, ColInventory, ColUse, ColDistributor, ColNotes},
		DropColumns:    []string{ColPar},
	},
	domain.CategoryWine: {
		Category: domain.CategoryWine,
		Rename: map[string]string{
			"Product Name":           ColProduct,
			"Wine":                   ColProduct,
			"Wine Type":              ColType,
			"Varietal":               ColType,
			"Cost ($)":               ColCost,
			"Bottle Cost":            ColCost,
			"Size(oz)":               ColSizeOz,
			"Bottle Size (oz)":       ColSizeOz,
			"Margin %":               ColMargin,
			"On Hand":                ColInventory,
			"Qty":                    ColInventory,
			"Vendor":                 ColDistributor,
			"By The Glass":           ColBTG,
			"BTG?":                   ColBTG,
			"Suggested Bottle Price": ColBottlePrice,
			"Inventory Value":        ColValue,
			"Glass Price":            ColBTGPrice,
		},
		CurrencyColumns: []string{ColCost, ColBottlePrice},
		Defaults: map[string]float64{
			ColSizeOz:    25.3,
			ColMargin:    0.33,
			ColInventory: 0,
		},
		NumericColumns: []string{ColSizeOz, ColMargin, ColInventory},
		CostColumn:     ColCost,
		PriceColumn:    ColBottlePrice,
		PriceBasis:     PriceCost,
		PriceDecimals:  0,
		HasBTG:         true,
		Editable:       []string{ColProduct, ColType, ColCost, ColSizeOz, ColMargin, ColInventory, ColDistributor, ColBTG},
		DropColumns:    []string{ColPar},
	},
	domain.CategoryBeer: {
		Category: domain.CategoryBeer,
		Rename: map[string]string{
			"Product Name":         ColProduct,
			"Beer":                 ColProduct,
			"Beer Type":            ColType,
			"Style":                ColType,
			"Cost per Keg/Case":    ColCostKeg,
			"Keg/Case Cost":        ColCostKeg,
			"Cost ($)":             ColCostKeg,
			"Units per Keg/Case":   ColSize,
			"Unit of Measure":      ColUoM,
			"Margin %":             ColMargin,
			"On Hand":              ColInventory,
			"Qty":                  ColInventory,
			"Vendor":               ColDistributor,
			"Cost per Unit":        ColCostUnit,
			"Inventory Value":      ColValue,
			"Suggested Menu Price": ColMenuPrice,
		},
		CurrencyColumns: []string{ColCostKeg, ColMenuPrice},
		Defaults: map[string]float64{
			ColSize:      1,
			ColMargin:    0.25,
			ColInventory: 0,
		},
		NumericColumns: []string{ColSize, ColMargin, ColInventory},
		CostColumn:     ColCostKeg,
		SizeColumn:     ColSize,
		UnitCostColumn: ColCostUnit,
		PriceColumn:    ColMenuPrice,
		PriceBasis:     PriceUnitCost,
		PriceDecimals:  2,
		Editable:       []string{ColProduct, ColType, ColCostKeg, ColSize, ColUoM, ColMargin, ColInventory, ColDistributor, ColNotes},
		DropColumns:    []string{ColPar},
	},
	domain.CategoryIngredients: {
		Category: domain.CategoryIngredients,
		Rename: map[string]string{
			"Ingredient":      ColProduct,
			"Product Name":    ColProduct,
			"Cost ($)":        ColCost,
			"Size / Yield":    ColSizeYield,
			"Yield":           ColSizeYield,
			"Unit of Measure": ColUoM,
			"On Hand":         ColInventory,
			"Qty":             ColInventory,
			"Vendor":          ColDistributor,
			"Cost per Unit":   ColCostUnit,
			"Inventory Value": ColValue,
		},
		CurrencyColumns: []string{ColCost},
		Defaults: map[string]float64{
			ColSizeYield: 1,
			ColInventory: 0,
		},
		NumericColumns: []string{ColSizeYield, ColInventory},
		CostColumn:     ColCost,
		SizeColumn:     ColSizeYield,
		UnitCostColumn: ColCostUnit,
		PriceBasis:     PriceNone,
		Editable:       []string{ColProduct, ColCost, ColSizeYield, ColUoM, ColInventory, ColDistributor, ColNotes},
		DropColumns:    []string{ColPar},
	},
}

// Spec returns the field spec for a category. The zero FieldSpec is
// returned for unknown categories; callers validate categories at the
// boundary with domain.ParseCategory.
func Spec(category domain.Category) FieldSpec {
	return specs[category]
}

// EditableColumns returns the canonical columns staff may edit directly.
func (s FieldSpec) EditableColumns() []string {
	return s.Editable
}

// DerivedColumns returns the columns the recalculation engine overwrites.
func (s FieldSpec) DerivedColumns() []string {
	var out []string
	if s.UnitCostColumn != "" {
		out = append(out, s.UnitCostColumn)
	}
	out = append(out, ColValue)
	if s.PriceColumn != "" {
		out = append(out, s.PriceColumn)
	}
	if s.HasBTG {
		out = append(out, ColBTGPrice)
	}
	return out
}

// IsDerived reports whether name is owned by the recalculation engine for
// this category.
func (s FieldSpec) IsDerived(name string) bool {
	for _, d := range s.DerivedColumns() {
		if d == name {
			return true
		}
	}
	return false
}

// MarginDefault returns the category's fallback margin fraction.
func (s FieldSpec) MarginDefault() float64 {
	return s.Defaults[ColMargin]
}
