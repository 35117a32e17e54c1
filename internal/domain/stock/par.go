// Package stock implements the inventory reconciliation rules: par and need
// resolution, case rounding for orders, the vendor-grouped order summary, the
// CSV import merge and the duplicate merge. Everything here is a pure function
// over values; persistence and rendering live in infrastructure.
package stock

import "github.com/jhoicas/barstock-api/internal/domain/entity"

// ResolvePar returns the item's target stock in units. ParUnits wins when set,
// even at zero; otherwise par is derived from ParCases when the item has a
// case size. ok is false when no par can be determined.
func ResolvePar(it *entity.Item) (par int, ok bool) {
	if it.ParUnits != nil {
		return *it.ParUnits, true
	}
	if it.ParCases != nil && it.CaseSize > 0 {
		return *it.ParCases * it.CaseSize, true
	}
	return 0, false
}

// NeededUnits returns par minus on-hand. The result may be negative
// (overstocked); callers clamp where that matters. ok is false when par is
// undefined.
func NeededUnits(it *entity.Item) (need int, ok bool) {
	par, ok := ResolvePar(it)
	if !ok {
		return 0, false
	}
	return par - it.CurrentUnits, true
}

// CasesToOrder returns the minimum whole cases that cover the need. A partial
// case still requires a full case. Zero when par is undefined, the item has no
// case size, or nothing is needed.
func CasesToOrder(it *entity.Item) int {
	par, ok := ResolvePar(it)
	if !ok || it.CaseSize <= 0 {
		return 0
	}
	needed := par - it.CurrentUnits
	if needed <= 0 {
		return 0
	}
	return (needed + it.CaseSize - 1) / it.CaseSize
}
