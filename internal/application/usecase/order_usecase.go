package usecase

import (
	"context"

	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
	"github.com/jhoicas/barstock-api/internal/domain/stock"
)

// OrderUseCase computes the vendor-grouped purchase order. The JSON endpoint,
// the spreadsheet and the PDF all go through Summary, so the three renditions
// can never disagree on row selection or arithmetic.
type OrderUseCase struct {
	repo repository.ItemRepository
}

// NewOrderUseCase constructs the use case.
func NewOrderUseCase(repo repository.ItemRepository) *OrderUseCase {
	return &OrderUseCase{repo: repo}
}

// Summary builds the purchase order for the filtered items. includeAll lists
// every item rather than only those needing stock.
func (uc *OrderUseCase) Summary(ctx context.Context, f repository.ItemFilter, includeAll bool) (stock.Summary, error) {
	items, err := uc.repo.List(ctx, f)
	if err != nil {
		return stock.Summary{}, err
	}
	return stock.BuildOrderSummary(items, includeAll), nil
}

// SummaryToResponse maps the domain summary to the API payload.
func SummaryToResponse(s stock.Summary) *dto.OrderSummaryResponse {
	resp := &dto.OrderSummaryResponse{
		GrandTotal: s.GrandTotal,
		Count:      s.RowCount,
		Vendors:    make([]dto.OrderVendorResponse, 0, len(s.Vendors)),
	}
	for _, vg := range s.Vendors {
		vr := dto.OrderVendorResponse{
			Vendor:     vg.Vendor,
			Total:      vg.Total,
			Categories: make([]dto.OrderCategoryResponse, 0, len(vg.Categories)),
		}
		for _, cg := range vg.Categories {
			cr := dto.OrderCategoryResponse{
				Category: cg.Category,
				Rows:     make([]dto.OrderRowResponse, 0, len(cg.Rows)),
			}
			for _, r := range cg.Rows {
				cr.Rows = append(cr.Rows, dto.OrderRowResponse{
					Vendor:      r.Vendor,
					Category:    r.Category,
					Name:        r.Name,
					CaseSize:    r.CaseSize,
					ParUnits:    r.ParUnits,
					OnHand:      r.OnHand,
					NeedUnits:   r.NeedUnits,
					OrderCases:  r.OrderCases,
					CostPerCase: r.CostPerCase,
					EstTotal:    r.EstTotal,
					Notes:       r.Notes,
				})
			}
			vr.Categories = append(vr.Categories, cr)
		}
		resp.Vendors = append(resp.Vendors, vr)
	}
	return resp
}
