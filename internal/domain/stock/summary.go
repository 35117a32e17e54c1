package stock

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
)

// UnassignedVendor is the display bucket for items without a vendor.
const UnassignedVendor = "Unassigned Vendor"

// Row is one line of the purchase order.
type Row struct {
	ItemID      int64
	Vendor      string
	Category    string
	Name        string
	CaseSize    int
	ParUnits    int
	OnHand      int
	NeedUnits   int
	OrderCases  int
	CostPerCase *decimal.Decimal
	EstTotal    decimal.Decimal
	Notes       string
}

// CategoryGroup groups rows of one category within a vendor.
type CategoryGroup struct {
	Category string
	Rows     []Row
}

// VendorGroup groups one vendor's categories with a running cost subtotal.
type VendorGroup struct {
	Vendor     string
	Categories []CategoryGroup
	Total      decimal.Decimal
}

// Summary is the vendor-grouped purchase order. The on-screen view, the
// spreadsheet and the PDF all consume this structure unchanged; renderers
// differ only in presentation.
type Summary struct {
	Vendors    []VendorGroup
	GrandTotal decimal.Decimal
	RowCount   int
	IncludeAll bool
}

// BuildOrderSummary computes the purchase order for the given items, grouped
// by vendor then category in first-seen order (callers pass items already
// sorted by vendor, category, name). Items with nothing to order are skipped
// unless includeAll is set, in which case every item is listed and zero
// order/cost columns are legitimate.
func BuildOrderSummary(items []entity.Item, includeAll bool) Summary {
	s := Summary{GrandTotal: decimal.Zero, IncludeAll: includeAll}
	vendorIdx := make(map[string]int)

	for i := range items {
		it := &items[i]
		row, ok := buildRow(it)
		if !ok && !includeAll {
			continue
		}

		vi, seen := vendorIdx[row.Vendor]
		if !seen {
			vi = len(s.Vendors)
			vendorIdx[row.Vendor] = vi
			s.Vendors = append(s.Vendors, VendorGroup{Vendor: row.Vendor, Total: decimal.Zero})
		}
		vg := &s.Vendors[vi]

		ci := -1
		for j := range vg.Categories {
			if vg.Categories[j].Category == row.Category {
				ci = j
				break
			}
		}
		if ci < 0 {
			ci = len(vg.Categories)
			vg.Categories = append(vg.Categories, CategoryGroup{Category: row.Category})
		}
		vg.Categories[ci].Rows = append(vg.Categories[ci].Rows, row)

		vg.Total = vg.Total.Add(row.EstTotal)
		s.GrandTotal = s.GrandTotal.Add(row.EstTotal)
		s.RowCount++
	}
	return s
}

// buildRow computes one summary row. ok is false when the item needs nothing,
// meaning the row only belongs in include-all exports.
func buildRow(it *entity.Item) (Row, bool) {
	caseSize := clampNonNeg(it.CaseSize)
	parUnits := 0
	if p, ok := ResolvePar(it); ok {
		parUnits = clampNonNeg(p)
	}
	onHand := clampNonNeg(it.CurrentUnits)

	need := parUnits - onHand
	if need < 0 {
		need = 0
	}

	orderCases := 0
	if caseSize > 0 && need > 0 {
		orderCases = (need + caseSize - 1) / caseSize
	}

	est := decimal.Zero
	if orderCases > 0 && it.CostPerCase != nil {
		est = it.CostPerCase.Mul(decimal.NewFromInt(int64(orderCases)))
	}

	vendor := it.VendorName()
	if vendor == "" {
		vendor = UnassignedVendor
	}

	return Row{
		ItemID:      it.ID,
		Vendor:      vendor,
		Category:    it.Category,
		Name:        it.Name,
		CaseSize:    caseSize,
		ParUnits:    parUnits,
		OnHand:      onHand,
		NeedUnits:   need,
		OrderCases:  orderCases,
		CostPerCase: it.CostPerCase,
		EstTotal:    est,
		Notes:       it.NotesText(),
	}, need > 0
}

func clampNonNeg(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
