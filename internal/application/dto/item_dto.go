package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemRequest carries create/edit input. Numeric fields are strings on
// purpose: the stock count sheet posts whatever staff typed, and blank or
// unparseable numbers coerce to zero/absent instead of failing the form. This
// tolerant behavior is load-bearing; do not tighten it to typed numbers.
type ItemRequest struct {
	Name         string `json:"name" form:"name"`
	Category     string `json:"category" form:"category"`
	Unit         string `json:"unit" form:"unit"`
	CaseSize     string `json:"case_size" form:"case_size"`
	ParCases     string `json:"par_cases" form:"par_cases"`
	ParUnits     string `json:"par_units" form:"par_units"`
	CurrentUnits string `json:"current_units" form:"current_units"`
	Vendor       string `json:"vendor" form:"vendor"`
	CostPerCase  string `json:"cost_per_case" form:"cost_per_case"`
	LeadTimeDays string `json:"lead_time_days" form:"lead_time_days"`
	Notes        string `json:"notes" form:"notes"`
}

// ItemResponse is one item as returned by the API.
type ItemResponse struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Unit         string           `json:"unit"`
	CaseSize     int              `json:"case_size"`
	ParCases     *int             `json:"par_cases"`
	ParUnits     *int             `json:"par_units"`
	CurrentUnits int              `json:"current_units"`
	Vendor       *string          `json:"vendor"`
	CostPerCase  *decimal.Decimal `json:"cost_per_case"`
	LeadTimeDays *int             `json:"lead_time_days"`
	Notes        *string          `json:"notes"`
	UpdatedAt    time.Time        `json:"updated_at"`

	// Derived, so list views need no arithmetic of their own.
	ParResolved *int `json:"par_resolved"`
	NeededUnits *int `json:"needed_units"`
	CasesToOrder int `json:"cases_to_order"`
}

// ItemListResponse is the listing payload.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Count int            `json:"count"`
}

// FacetsResponse lists the distinct categories and vendors for filter menus.
type FacetsResponse struct {
	Categories []string `json:"categories"`
	Vendors    []string `json:"vendors"`
}
