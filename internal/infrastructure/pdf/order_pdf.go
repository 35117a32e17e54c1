// Package pdf renders the purchase-order summary as a printable document:
// one section per vendor with its rows and subtotal, then the grand total.
// It consumes the exact same summary as the spreadsheet, so the two downloads
// can never disagree on rows or amounts.
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/barstock-api/internal/domain/stock"
)

var (
	colorPrimary = &props.Color{Red: 30, Green: 41, Blue: 59}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Filename returns the download name: bar_order_<ISO date>[_all].pdf.
func Filename(includeAll bool, now time.Time) string {
	suffix := ""
	if includeAll {
		suffix = "_all"
	}
	return fmt.Sprintf("bar_order_%s%s.pdf", now.Format("2006-01-02"), suffix)
}

// BuildOrderPDF renders the summary and returns the document bytes.
func BuildOrderPDF(s stock.Summary, generated time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Purchase Order", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(s, generated))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(s.Vendors) == 0 {
		m.AddRows(row.New(8).Add(
			col.New(12).Add(text.New("Nothing to order for the current filters.",
				props.Text{Size: 10, Color: colorGray, Top: 2})),
		))
	}
	for _, vg := range s.Vendors {
		addVendorSection(m, vg)
	}

	m.AddRows(line.NewRow(2))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(row.New(8).Add(
		col.New(8).Add(text.New("Grand Total (if costs set)",
			props.Text{Style: fontstyle.Bold, Size: 10, Top: 1})),
		col.New(4).Add(text.New("$"+s.GrandTotal.StringFixed(2),
			props.Text{Style: fontstyle.Bold, Size: 10, Top: 1, Align: align.Right})),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

func titleRow(s stock.Summary, generated time.Time) core.Row {
	subtitle := fmt.Sprintf("Generated %s - %d items to order",
		generated.Format("2006-01-02"), s.RowCount)
	if s.IncludeAll {
		subtitle = fmt.Sprintf("Generated %s - all %d items",
			generated.Format("2006-01-02"), s.RowCount)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("Bar Purchase Order", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(subtitle, props.Text{Size: 9, Top: 8, Color: colorGray}),
		),
	)
}

func addVendorSection(m core.Maroto, vg stock.VendorGroup) {
	m.AddRows(row.New(9).Add(
		col.New(12).Add(text.New(vg.Vendor, props.Text{
			Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 3,
		})),
	))
	m.AddRows(tableHeaderRow())

	for _, cg := range vg.Categories {
		for _, r := range cg.Rows {
			m.AddRows(dataRow(cg.Category, r))
		}
	}

	m.AddRows(row.New(7).Add(
		col.New(8).Add(text.New("Vendor Total", props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 1, Align: align.Right,
		})),
		col.New(4).Add(text.New("$"+vg.Total.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 1, Align: align.Right,
		})),
	))
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Color: colorGray}
	return row.New(6).Add(
		col.New(2).Add(text.New("Category", header)),
		col.New(3).Add(text.New("Item", header)),
		col.New(1).Add(text.New("Case", alignedRight(header))),
		col.New(1).Add(text.New("Par", alignedRight(header))),
		col.New(1).Add(text.New("On Hand", alignedRight(header))),
		col.New(1).Add(text.New("Need", alignedRight(header))),
		col.New(1).Add(text.New("Cases", alignedRight(header))),
		col.New(2).Add(text.New("Est. Total", alignedRight(header))),
	)
}

func dataRow(category string, r stock.Row) core.Row {
	cell := props.Text{Size: 8, Top: 1}
	est := ""
	if r.OrderCases > 0 && r.CostPerCase != nil {
		est = "$" + r.EstTotal.StringFixed(2)
	}
	return row.New(5).Add(
		col.New(2).Add(text.New(category, cell)),
		col.New(3).Add(text.New(r.Name, cell)),
		col.New(1).Add(text.New(fmt.Sprint(r.CaseSize), alignedRight(cell))),
		col.New(1).Add(text.New(fmt.Sprint(r.ParUnits), alignedRight(cell))),
		col.New(1).Add(text.New(fmt.Sprint(r.OnHand), alignedRight(cell))),
		col.New(1).Add(text.New(fmt.Sprint(r.NeedUnits), alignedRight(cell))),
		col.New(1).Add(text.New(fmt.Sprint(r.OrderCases), alignedRight(cell))),
		col.New(2).Add(text.New(est, alignedRight(cell))),
	)
}

func alignedRight(t props.Text) props.Text {
	t.Align = align.Right
	return t
}
