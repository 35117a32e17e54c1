package dto

import "github.com/shopspring/decimal"

// OrderRowResponse is one purchase-order line.
type OrderRowResponse struct {
	Vendor      string           `json:"vendor"`
	Category    string           `json:"category"`
	Name        string           `json:"name"`
	CaseSize    int              `json:"case_size"`
	ParUnits    int              `json:"par_units"`
	OnHand      int              `json:"on_hand"`
	NeedUnits   int              `json:"need_units"`
	OrderCases  int              `json:"order_cases"`
	CostPerCase *decimal.Decimal `json:"cost_per_case"`
	EstTotal    decimal.Decimal  `json:"est_total"`
	Notes       string           `json:"notes"`
}

// OrderCategoryResponse groups rows of one category.
type OrderCategoryResponse struct {
	Category string             `json:"category"`
	Rows     []OrderRowResponse `json:"rows"`
}

// OrderVendorResponse groups one vendor's categories with its subtotal.
type OrderVendorResponse struct {
	Vendor     string                  `json:"vendor"`
	Categories []OrderCategoryResponse `json:"categories"`
	Total      decimal.Decimal         `json:"total"`
}

// OrderSummaryResponse is the vendor-grouped purchase order.
type OrderSummaryResponse struct {
	Vendors    []OrderVendorResponse `json:"vendors"`
	GrandTotal decimal.Decimal       `json:"grand_total"`
	Count      int                   `json:"count"`
}

// ImportResponse reports a CSV import run. Updated existing items are not
// counted separately.
type ImportResponse struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// DedupeResponse reports a duplicate-removal run.
type DedupeResponse struct {
	Removed int `json:"removed"`
}
