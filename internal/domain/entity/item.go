package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is one stocked product of the establishment.
//
// Optional fields are pointers so "not provided" stays distinct from an
// explicit zero: ParUnits nil means par is unknown, ParUnits 0 means the item
// is deliberately stocked to zero. Vendor nil renders as "Unassigned Vendor"
// only at the presentation boundary, never in storage.
type Item struct {
	ID           int64
	Name         string
	Category     string // defaults to "Spirits"
	Unit         string // smallest countable unit: bottle, can, keg, ml
	CaseSize     int    // units per case; 0 means no case concept
	ParCases     *int   // target stock in cases
	ParUnits     *int   // target stock in units, wins over ParCases when set
	CurrentUnits int    // on-hand in units
	Vendor       *string
	CostPerCase  *decimal.Decimal
	LeadTimeDays *int // informational only
	Notes        *string
	UpdatedAt    time.Time
}

// VendorName returns the vendor or the empty string when unassigned.
func (i *Item) VendorName() string {
	if i.Vendor == nil {
		return ""
	}
	return *i.Vendor
}

// NotesText returns the notes or the empty string when unset.
func (i *Item) NotesText() string {
	if i.Notes == nil {
		return ""
	}
	return *i.Notes
}
