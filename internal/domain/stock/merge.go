package stock

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
)

// Defaults applied when a field is blank on creation.
const (
	DefaultCategory = "Spirits"
	DefaultUnit     = "bottle"
)

// NotesSeparator joins merged notes; notes are appended, never overwritten.
const NotesSeparator = " | "

// MatchKey identifies the item a CSV row corresponds to: case-insensitive
// (name, vendor-or-empty, category) with category defaulted before matching.
type MatchKey struct {
	Name     string
	Vendor   string
	Category string
}

// KeyForRow builds the match key of an import row.
func KeyForRow(row map[string]string) MatchKey {
	category := row["category"]
	if Blank(category) {
		category = DefaultCategory
	}
	return MatchKey{
		Name:     FoldKey(row["name"]),
		Vendor:   FoldKey(row["vendor"]),
		Category: FoldKey(category),
	}
}

// KeyForItem builds the match key of an existing item.
func KeyForItem(it *entity.Item) MatchKey {
	return MatchKey{
		Name:     FoldKey(it.Name),
		Vendor:   FoldKey(it.VendorName()),
		Category: FoldKey(it.Category),
	}
}

// ApplyRow merges an import row into an existing item. Blank fields leave the
// stored value untouched; current_units never decreases (max of both sides);
// notes are appended. A type-conversion failure returns an error so the caller
// can skip the row without aborting the batch.
func ApplyRow(it *entity.Item, row map[string]string) error {
	if !Blank(row["case_size"]) {
		n, err := ParseIntStrict(row["case_size"])
		if err != nil {
			return fmt.Errorf("case_size %q: %w", row["case_size"], err)
		}
		it.CaseSize = n
	}
	if !Blank(row["par_cases"]) {
		n, err := ParseIntStrict(row["par_cases"])
		if err != nil {
			return fmt.Errorf("par_cases %q: %w", row["par_cases"], err)
		}
		it.ParCases = &n
	}
	if !Blank(row["par_units"]) {
		n, err := ParseIntStrict(row["par_units"])
		if err != nil {
			return fmt.Errorf("par_units %q: %w", row["par_units"], err)
		}
		it.ParUnits = &n
	}

	incoming := 0
	if !Blank(row["current_units"]) {
		n, err := ParseIntStrict(row["current_units"])
		if err != nil {
			return fmt.Errorf("current_units %q: %w", row["current_units"], err)
		}
		incoming = n
	}
	if incoming > it.CurrentUnits {
		it.CurrentUnits = incoming
	}

	if !Blank(row["cost_per_case"]) {
		d, err := decimal.NewFromString(row["cost_per_case"])
		if err != nil {
			return fmt.Errorf("cost_per_case %q: %w", row["cost_per_case"], err)
		}
		it.CostPerCase = &d
	}
	if !Blank(row["lead_time_days"]) {
		n, err := ParseIntStrict(row["lead_time_days"])
		if err != nil {
			return fmt.Errorf("lead_time_days %q: %w", row["lead_time_days"], err)
		}
		it.LeadTimeDays = &n
	}
	if row["notes"] != "" {
		appendNotes(it, row["notes"])
	}
	return nil
}

// NewItemFromRow builds a fresh item from an import row, applying the same
// blank-means-default rules as direct creation. The caller has already
// rejected blank names.
func NewItemFromRow(row map[string]string) (*entity.Item, error) {
	it := &entity.Item{
		Name:     trimmed(row["name"]),
		Category: DefaultCategory,
		Unit:     DefaultUnit,
	}
	if !Blank(row["category"]) {
		it.Category = trimmed(row["category"])
	}
	if !Blank(row["unit"]) {
		it.Unit = trimmed(row["unit"])
	}
	if !Blank(row["vendor"]) {
		v := row["vendor"]
		it.Vendor = &v
	}
	if row["notes"] != "" {
		n := row["notes"]
		it.Notes = &n
	}

	if !Blank(row["case_size"]) {
		n, err := ParseIntStrict(row["case_size"])
		if err != nil {
			return nil, fmt.Errorf("case_size %q: %w", row["case_size"], err)
		}
		it.CaseSize = n
	}
	if !Blank(row["par_cases"]) {
		n, err := ParseIntStrict(row["par_cases"])
		if err != nil {
			return nil, fmt.Errorf("par_cases %q: %w", row["par_cases"], err)
		}
		it.ParCases = &n
	}
	if !Blank(row["par_units"]) {
		n, err := ParseIntStrict(row["par_units"])
		if err != nil {
			return nil, fmt.Errorf("par_units %q: %w", row["par_units"], err)
		}
		it.ParUnits = &n
	}
	if !Blank(row["current_units"]) {
		n, err := ParseIntStrict(row["current_units"])
		if err != nil {
			return nil, fmt.Errorf("current_units %q: %w", row["current_units"], err)
		}
		it.CurrentUnits = n
	}
	if !Blank(row["cost_per_case"]) {
		d, err := decimal.NewFromString(row["cost_per_case"])
		if err != nil {
			return nil, fmt.Errorf("cost_per_case %q: %w", row["cost_per_case"], err)
		}
		it.CostPerCase = &d
	}
	if !Blank(row["lead_time_days"]) {
		n, err := ParseIntStrict(row["lead_time_days"])
		if err != nil {
			return nil, fmt.Errorf("lead_time_days %q: %w", row["lead_time_days"], err)
		}
		it.LeadTimeDays = &n
	}
	return it, nil
}

func trimmed(s string) string { return strings.TrimSpace(s) }

func appendNotes(it *entity.Item, notes string) {
	if it.Notes == nil || *it.Notes == "" {
		n := notes
		it.Notes = &n
		return
	}
	n := *it.Notes + NotesSeparator + notes
	it.Notes = &n
}
