// Package excel renders the purchase-order summary as an .xlsx workbook, one
// sheet per vendor plus an "All Vendors" recap.
package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/barstock-api/internal/domain/stock"
)

// OrderHeader is the column header of every vendor sheet.
var OrderHeader = []string{
	"Vendor", "Category", "Item", "Case Size", "Par (units)", "On Hand (units)",
	"Need (units)", "Order (cases)", "Cost/Case", "Est. Total", "Notes",
}

const (
	summarySheet  = "All Vendors"
	emptySheet    = "No Items"
	maxSheetTitle = 31
	maxColWidth   = 40
)

// Filename returns the download name: bar_order_<ISO date>[_all].xlsx.
func Filename(includeAll bool, now time.Time) string {
	suffix := ""
	if includeAll {
		suffix = "_all"
	}
	return fmt.Sprintf("bar_order_%s%s.xlsx", now.Format("2006-01-02"), suffix)
}

// BuildOrderWorkbook renders the summary. Sheet titles truncate to 31
// characters (the xlsx limit); an empty summary yields a single explanatory
// sheet so the download is never a corrupt zero-sheet file.
func BuildOrderWorkbook(s stock.Summary, generated time.Time) (*excelize.File, error) {
	f := excelize.NewFile()

	// Sheet names compare case-insensitively in xlsx; reserve the recap and
	// placeholder names plus the implicit default sheet so no vendor sheet
	// can overwrite them.
	used := map[string]bool{
		strings.ToLower(f.GetSheetName(0)): true,
		strings.ToLower(summarySheet):      true,
		strings.ToLower(emptySheet):        true,
	}

	if len(s.Vendors) == 0 {
		if _, err := f.NewSheet(emptySheet); err != nil {
			return nil, fmt.Errorf("create sheet: %w", err)
		}
		if err := f.SetSheetRow(emptySheet, "A1",
			&[]any{"Nothing to export based on current inputs/filters."}); err != nil {
			return nil, fmt.Errorf("write sheet: %w", err)
		}
	}

	for _, vg := range s.Vendors {
		if err := writeVendorSheet(f, sheetTitle(vg.Vendor, used), vg); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("create summary sheet: %w", err)
	}
	if err := f.SetSheetRow(summarySheet, "A1",
		&[]any{"Generated", generated.Format("2006-01-02")}); err != nil {
		return nil, fmt.Errorf("write summary sheet: %w", err)
	}
	if err := f.SetSheetRow(summarySheet, "A2",
		&[]any{"Grand Total (if costs set)", s.GrandTotal.InexactFloat64()}); err != nil {
		return nil, fmt.Errorf("write summary sheet: %w", err)
	}

	// The workbook always has real content by now; drop the implicit sheet.
	if err := f.DeleteSheet(f.GetSheetName(0)); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeVendorSheet(f *excelize.File, title string, vg stock.VendorGroup) error {
	if _, err := f.NewSheet(title); err != nil {
		return fmt.Errorf("create sheet %q: %w", title, err)
	}

	widths := make([]int, len(OrderHeader))
	writeRow := func(n int, cells []any) error {
		for i, c := range cells {
			if l := len(fmt.Sprint(c)); l > widths[i] {
				widths[i] = l
			}
		}
		return f.SetSheetRow(title, fmt.Sprintf("A%d", n), &cells)
	}

	header := make([]any, len(OrderHeader))
	for i, h := range OrderHeader {
		header[i] = h
	}
	if err := writeRow(1, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	n := 2
	for _, cg := range vg.Categories {
		for _, r := range cg.Rows {
			cost := any("")
			if r.CostPerCase != nil {
				cost = r.CostPerCase.InexactFloat64()
			}
			est := any("")
			if r.OrderCases > 0 && r.CostPerCase != nil {
				est = r.EstTotal.InexactFloat64()
			}
			cells := []any{
				vg.Vendor, r.Category, r.Name, r.CaseSize, r.ParUnits,
				r.OnHand, r.NeedUnits, r.OrderCases, cost, est, r.Notes,
			}
			if err := writeRow(n, cells); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
			n++
		}
	}

	// Blank spacer row, then the vendor total.
	n++
	total := []any{"", "", "", "", "", "", "", "Vendor Total", "",
		vg.Total.InexactFloat64(), ""}
	if err := f.SetSheetRow(title, fmt.Sprintf("A%d", n), &total); err != nil {
		return fmt.Errorf("write vendor total: %w", err)
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := w + 2
		if width > maxColWidth {
			width = maxColWidth
		}
		if err := f.SetColWidth(title, col, col, float64(width)); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}
	return nil
}

// sheetTitle returns a workbook-unique title for the vendor within the 31
// character xlsx limit. Vendors whose names collide after truncation, or that
// match a reserved name, get a numeric suffix instead of overwriting each
// other's rows.
func sheetTitle(vendor string, used map[string]bool) string {
	base := vendor
	if base == "" {
		base = "Vendor"
	}
	title := truncateRunes(base, maxSheetTitle)
	for n := 2; used[strings.ToLower(title)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		title = truncateRunes(base, maxSheetTitle-len(suffix)) + suffix
	}
	used[strings.ToLower(title)] = true
	return title
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max])
	}
	return s
}
