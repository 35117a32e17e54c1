// Package csvio encodes and decodes the inventory CSV: header-named string
// rows in a fixed column order, tolerant of extra columns and ragged rows.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
)

// Header is the canonical column order for export and the field names the
// import recognizes.
var Header = []string{
	"name", "category", "unit", "case_size", "par_cases", "par_units",
	"current_units", "vendor", "cost_per_case", "lead_time_days", "notes",
}

// ExportFilename is the download name for full inventory exports.
const ExportFilename = "bar_inventory_export.csv"

// Codec reads and writes inventory CSV files.
type Codec struct{}

// NewCodec constructs the codec.
func NewCodec() *Codec { return &Codec{} }

// Write renders items in the canonical column order. Absent optional fields
// become empty cells; current_units is always numeric.
func (c *Codec) Write(w io.Writer, items []entity.Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range items {
		if err := cw.Write(record(&items[i])); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Parse reads a CSV with a header row into header-named string maps. Header
// names are trimmed; columns outside Header are ignored; short rows leave the
// missing fields empty.
func (c *Codec) Parse(r io.Reader) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	known := make(map[string]bool, len(Header))
	for _, h := range Header {
		known[h] = true
	}
	index := make(map[int]string, len(head))
	for i, h := range head {
		h = strings.TrimSpace(h)
		if known[h] {
			index[i] = h
		}
	}

	var rows []map[string]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		row := make(map[string]string, len(Header))
		for _, h := range Header {
			row[h] = ""
		}
		for i, v := range rec {
			if h, ok := index[i]; ok {
				row[h] = v
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func record(it *entity.Item) []string {
	return []string{
		it.Name,
		it.Category,
		it.Unit,
		strconv.Itoa(it.CaseSize),
		intCell(it.ParCases),
		intCell(it.ParUnits),
		strconv.Itoa(it.CurrentUnits),
		it.VendorName(),
		costCell(it),
		intCell(it.LeadTimeDays),
		it.NotesText(),
	}
}

func intCell(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func costCell(it *entity.Item) string {
	if it.CostPerCase == nil {
		return ""
	}
	return it.CostPerCase.String()
}
