package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barpulse/pkg/contracts/domain"
)

func spiritsDataset(rows ...domain.Row) *domain.Dataset {
	ds := domain.NewDataset(domain.CategorySpirits)
	ds.Columns = []string{ColProduct, ColCost, ColSizeOz, ColMargin, ColInventory}
	ds.Rows = rows
	return ds
}

func TestRecalculateEmptyDataset(t *testing.T) {
	ds := domain.NewDataset(domain.CategoryBeer)
	out := Recalculate(ds)
	assert.True(t, out.Empty())
	assert.Empty(t, out.Columns)
}

func TestRecalculateSpirits(t *testing.T) {
	ds := spiritsDataset(domain.Row{
		ColProduct:   "Rye",
		ColCost:      20.0,
		ColSizeOz:    25.4,
		ColMargin:    0.20,
		ColInventory: 6.0,
		ColCostOz:    99.0, // stale
		ColNeatPrice: 99.0, // stale
		ColValue:     99.0, // stale
	})
	ds.AddColumn(ColCostOz)
	ds.AddColumn(ColNeatPrice)
	ds.AddColumn(ColValue)

	out := Recalculate(ds)
	row := out.Rows[0]

	assert.Equal(t, 0.7874, row[ColCostOz])
	assert.Equal(t, 2.0, row[ColNeatPrice])
	assert.Equal(t, 120.0, row[ColValue])

	// Input dataset is untouched.
	assert.Equal(t, 99.0, ds.Rows[0][ColCostOz])
}

func TestRecalculateIsIdempotent(t *testing.T) {
	table := &domain.Table{
		Header: []string{"Product", "Cost", "Size (oz)", "Margin", "Inventory"},
		Records: [][]string{
			{"Rye", "$20", "25.4", "20%", "6"},
			{"Gin", "$15.50", "33.8", "22%", "3"},
		},
	}
	ds, err := Normalize(table, domain.CategorySpirits)
	require.NoError(t, err)

	once := Recalculate(ds)
	twice := Recalculate(once)
	assert.Equal(t, once, twice, "recalculation must be a fixed point")
}

func TestRecalculateDivisionGuards(t *testing.T) {
	tests := []struct {
		name     string
		row      domain.Row
		wantCost float64
		wantNeat float64
	}{
		{
			name:     "zero size",
			row:      domain.Row{ColCost: 10.0, ColSizeOz: 0.0, ColMargin: 0.2, ColInventory: 1.0},
			wantCost: 0,
			wantNeat: 0,
		},
		{
			name:     "margin exactly one",
			row:      domain.Row{ColCost: 10.0, ColSizeOz: 25.4, ColMargin: 1.0, ColInventory: 1.0},
			wantCost: 0.3937,
			wantNeat: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Recalculate(spiritsDataset(tt.row))
			assert.Equal(t, tt.wantCost, out.Rows[0][ColCostOz])
			assert.Equal(t, tt.wantNeat, out.Rows[0][ColNeatPrice])
		})
	}
}

func TestRecalculateWineBTG(t *testing.T) {
	ds := domain.NewDataset(domain.CategoryWine)
	ds.Columns = []string{ColProduct, ColCost, ColMargin, ColInventory, ColBTG}
	ds.Rows = []domain.Row{
		{ColProduct: "House Cab", ColCost: 10.0, ColMargin: 0.33, ColInventory: 12.0, ColBTG: "Yes"},
		{ColProduct: "Reserve", ColCost: 30.0, ColMargin: 0.33, ColInventory: 4.0, ColBTG: "No"},
	}

	out := Recalculate(ds)

	house := out.Rows[0]
	assert.Equal(t, 15.0, house[ColBottlePrice])
	assert.Equal(t, 4.0, house[ColBTGPrice])
	assert.Equal(t, 120.0, house[ColValue])

	reserve := out.Rows[1]
	assert.Equal(t, 45.0, reserve[ColBottlePrice]) // round(30/0.67)
	assert.Equal(t, 0.0, reserve[ColBTGPrice])
}

func TestRecalculateAfterEdit(t *testing.T) {
	table := &domain.Table{
		Header: []string{"Product", "Cost per Keg/Case", "Units per Keg/Case", "Margin", "Inventory"},
		Records: [][]string{
			{"Lager", "$96", "24", "0.25", "2"},
		},
	}
	ds, err := Normalize(table, domain.CategoryBeer)
	require.NoError(t, err)
	assert.Equal(t, 4.0, ds.Rows[0][ColCostUnit])

	// A manual edit leaves derived cells stale until recalculation runs.
	ds.Rows[0][ColCostKeg] = 120.0
	assert.Equal(t, 4.0, ds.Rows[0][ColCostUnit])

	out := Recalculate(ds)
	row := out.Rows[0]
	assert.Equal(t, 5.0, row[ColCostUnit])
	assert.Equal(t, 6.67, row[ColMenuPrice])
	assert.Equal(t, 240.0, row[ColValue])
}

func TestRecalculateIngredientsHasNoPrice(t *testing.T) {
	ds := domain.NewDataset(domain.CategoryIngredients)
	ds.Columns = []string{ColProduct, ColCost, ColSizeYield, ColInventory}
	ds.Rows = []domain.Row{
		{ColProduct: "Lime Juice", ColCost: 9.0, ColSizeYield: 32.0, ColInventory: 2.0},
	}

	out := Recalculate(ds)
	assert.Equal(t, 0.2813, out.Rows[0][ColCostUnit])
	assert.Equal(t, 18.0, out.Rows[0][ColValue])
	assert.False(t, out.HasColumn(ColMenuPrice))
	assert.False(t, out.HasColumn(ColNeatPrice))
}

func TestNewRow(t *testing.T) {
	row := NewRow(domain.CategoryWine)
	assert.Equal(t, "", row[ColProduct])
	assert.Equal(t, 0.0, row[ColCost])
	assert.Equal(t, 25.3, row[ColSizeOz])
	assert.Equal(t, 0.33, row[ColMargin])
	assert.Equal(t, 0.0, row[ColInventory])
	assert.Equal(t, "", row[ColBTG])

	_, hasValue := row[ColValue]
	assert.False(t, hasValue, "derived cells appear only after recalculation")
}
