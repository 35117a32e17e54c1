package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/stock"
)

func row(overrides map[string]string) map[string]string {
	r := map[string]string{
		"name": "Tito's", "category": "Vodka", "unit": "bottle",
		"case_size": "12", "par_cases": "3", "par_units": "",
		"current_units": "10", "vendor": "RNDC",
		"cost_per_case": "180", "lead_time_days": "", "notes": "",
	}
	for k, v := range overrides {
		r[k] = v
	}
	return r
}

func TestKeyForRow_DefaultsCategoryBeforeMatching(t *testing.T) {
	k := stock.KeyForRow(row(map[string]string{"category": "  "}))
	assert.Equal(t, stock.FoldKey("Spirits"), k.Category)
}

func TestKeyForRow_MatchesItemCaseInsensitively(t *testing.T) {
	it := &entity.Item{Name: "TITO'S", Category: "vodka", Vendor: strp("rndc")}
	assert.Equal(t, stock.KeyForItem(it), stock.KeyForRow(row(nil)))
}

func TestKeyForItem_NilVendorMatchesEmpty(t *testing.T) {
	it := &entity.Item{Name: "Tito's", Category: "Vodka"}
	k := stock.KeyForRow(row(map[string]string{"vendor": ""}))
	assert.Equal(t, stock.KeyForItem(it), k)
}

func TestApplyRow_BlankFieldsLeaveExistingValues(t *testing.T) {
	it := &entity.Item{
		Name: "Tito's", Category: "Vodka", CaseSize: 12,
		ParCases: intp(3), CurrentUnits: 10, CostPerCase: decp("180"),
		LeadTimeDays: intp(5),
	}
	err := stock.ApplyRow(it, row(map[string]string{
		"case_size": "", "par_cases": "", "cost_per_case": "", "lead_time_days": "",
		"current_units": "",
	}))
	require.NoError(t, err)
	assert.Equal(t, 12, it.CaseSize)
	assert.Equal(t, 3, *it.ParCases)
	assert.Equal(t, 10, it.CurrentUnits, "blank incoming units never zero stock")
	assert.True(t, it.CostPerCase.Equal(*decp("180")))
	assert.Equal(t, 5, *it.LeadTimeDays)
}

func TestApplyRow_NonBlankFieldsOverwrite(t *testing.T) {
	it := &entity.Item{Name: "Tito's", CaseSize: 6, ParCases: intp(1), CostPerCase: decp("100")}
	err := stock.ApplyRow(it, row(map[string]string{
		"case_size": "12", "par_cases": "4", "cost_per_case": "185.50",
	}))
	require.NoError(t, err)
	assert.Equal(t, 12, it.CaseSize)
	assert.Equal(t, 4, *it.ParCases)
	assert.True(t, it.CostPerCase.Equal(*decp("185.50")))
}

func TestApplyRow_CurrentUnitsNeverDecreases(t *testing.T) {
	it := &entity.Item{Name: "Tito's", CurrentUnits: 20}
	require.NoError(t, stock.ApplyRow(it, row(map[string]string{"current_units": "8"})))
	assert.Equal(t, 20, it.CurrentUnits)

	require.NoError(t, stock.ApplyRow(it, row(map[string]string{"current_units": "25"})))
	assert.Equal(t, 25, it.CurrentUnits)
}

func TestApplyRow_NotesAppendOncePerImport(t *testing.T) {
	it := &entity.Item{Name: "Tito's", Notes: strp("call rep")}
	require.NoError(t, stock.ApplyRow(it, row(map[string]string{"notes": "back-ordered"})))
	assert.Equal(t, "call rep | back-ordered", *it.Notes)

	require.NoError(t, stock.ApplyRow(it, row(map[string]string{"notes": "back-ordered"})))
	assert.Equal(t, "call rep | back-ordered | back-ordered", *it.Notes,
		"each import appends exactly once; dedupe of content is not merge's job")
}

func TestApplyRow_ConversionFailureReportsField(t *testing.T) {
	it := &entity.Item{Name: "Tito's"}
	err := stock.ApplyRow(it, row(map[string]string{"par_cases": "three"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "par_cases")
}

func TestNewItemFromRow_Defaults(t *testing.T) {
	it, err := stock.NewItemFromRow(map[string]string{"name": "  Well Gin  "})
	require.NoError(t, err)
	assert.Equal(t, "Well Gin", it.Name)
	assert.Equal(t, "Spirits", it.Category)
	assert.Equal(t, "bottle", it.Unit)
	assert.Equal(t, 0, it.CaseSize)
	assert.Nil(t, it.ParCases)
	assert.Nil(t, it.ParUnits)
	assert.Equal(t, 0, it.CurrentUnits)
	assert.Nil(t, it.Vendor)
	assert.Nil(t, it.CostPerCase)
	assert.Nil(t, it.LeadTimeDays)
	assert.Nil(t, it.Notes)
}

func TestNewItemFromRow_FullRow(t *testing.T) {
	it, err := stock.NewItemFromRow(row(map[string]string{"notes": "ask for deal"}))
	require.NoError(t, err)
	assert.Equal(t, "Tito's", it.Name)
	assert.Equal(t, "Vodka", it.Category)
	assert.Equal(t, 12, it.CaseSize)
	assert.Equal(t, 3, *it.ParCases)
	assert.Nil(t, it.ParUnits)
	assert.Equal(t, 10, it.CurrentUnits)
	assert.Equal(t, "RNDC", *it.Vendor)
	assert.True(t, it.CostPerCase.Equal(*decp("180")))
	assert.Equal(t, "ask for deal", *it.Notes)
}

func TestNewItemFromRow_MalformedNumericFails(t *testing.T) {
	_, err := stock.NewItemFromRow(row(map[string]string{"cost_per_case": "cheap"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cost_per_case")
}

// Re-importing an exported row must be a no-op for numeric fields: values equal
// to the stored ones overwrite with themselves, units take max(x, x).
func TestApplyRow_IdenticalRowIsNoOp(t *testing.T) {
	before := entity.Item{
		Name: "Tito's", Category: "Vodka", Unit: "bottle", CaseSize: 12,
		ParCases: intp(3), CurrentUnits: 10, Vendor: strp("RNDC"), CostPerCase: decp("180"),
	}
	it := before
	require.NoError(t, stock.ApplyRow(&it, row(nil)))
	assert.Equal(t, before.CaseSize, it.CaseSize)
	assert.Equal(t, *before.ParCases, *it.ParCases)
	assert.Equal(t, before.CurrentUnits, it.CurrentUnits)
	assert.True(t, before.CostPerCase.Equal(*it.CostPerCase))
	assert.Nil(t, it.Notes)
}
