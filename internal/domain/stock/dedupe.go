package stock

import "github.com/jhoicas/barstock-api/internal/domain/entity"

// DedupePlan is the outcome of duplicate reconciliation: kept records with
// their merged state, and the ids to delete. Applying the plan twice in a row
// removes nothing the second time.
type DedupePlan struct {
	Keep   []entity.Item // merged survivors that must be persisted
	Remove []int64       // absorbed duplicates, ascending id
}

// Removed returns the number of records the plan deletes.
func (p DedupePlan) Removed() int { return len(p.Remove) }

// PlanDedupe groups items by the case-insensitive (vendor, category, name)
// triple and merges each group into its lowest-id member. Items must arrive
// sorted by id ascending; duplicates are folded in that order, so for par and
// cost fields the first duplicate carrying a value wins. current_units takes
// the max, case_size is adopted only when the survivor has none, notes are
// concatenated.
func PlanDedupe(items []entity.Item) DedupePlan {
	type group struct {
		keep   *entity.Item
		merged bool
	}
	groups := make(map[MatchKey]*group)
	order := make([]MatchKey, 0, len(items))

	var plan DedupePlan
	for i := range items {
		it := items[i]
		k := dedupeKey(&it)
		g, ok := groups[k]
		if !ok {
			kept := it
			groups[k] = &group{keep: &kept}
			order = append(order, k)
			continue
		}
		mergeDuplicate(g.keep, &it)
		g.merged = true
		plan.Remove = append(plan.Remove, it.ID)
	}

	for _, k := range order {
		if g := groups[k]; g.merged {
			plan.Keep = append(plan.Keep, *g.keep)
		}
	}
	return plan
}

// dedupeKey differs from the import key: the category is not defaulted, empty
// stays empty, matching how duplicates were historically grouped.
func dedupeKey(it *entity.Item) MatchKey {
	return MatchKey{
		Name:     FoldKey(it.Name),
		Vendor:   FoldKey(it.VendorName()),
		Category: FoldKey(it.Category),
	}
}

func mergeDuplicate(keep, dup *entity.Item) {
	if dup.CurrentUnits > keep.CurrentUnits {
		keep.CurrentUnits = dup.CurrentUnits
	}
	if keep.CaseSize == 0 && dup.CaseSize != 0 {
		keep.CaseSize = dup.CaseSize
	}
	if keep.ParCases == nil && dup.ParCases != nil {
		keep.ParCases = dup.ParCases
	}
	if keep.ParUnits == nil && dup.ParUnits != nil {
		keep.ParUnits = dup.ParUnits
	}
	if keep.CostPerCase == nil && dup.CostPerCase != nil {
		keep.CostPerCase = dup.CostPerCase
	}
	if keep.LeadTimeDays == nil && dup.LeadTimeDays != nil {
		keep.LeadTimeDays = dup.LeadTimeDays
	}
	if dup.Notes != nil && *dup.Notes != "" {
		appendNotes(keep, *dup.Notes)
	}
}
