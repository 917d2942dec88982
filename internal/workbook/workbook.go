// Package workbook is the boundary to the input spreadsheet. It extracts the
// five required sheets as untyped tables; all typing happens downstream.
package workbook

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet names required in every input workbook.
const (
	SheetRevenue      = "revenue"
	SheetPlan         = "plan"
	SheetCountries    = "countries"
	SheetSubscription = "subscription"
	SheetCustomers    = "customers"
)

// RequiredSheets lists every sheet Load must find.
var RequiredSheets = []string{
	SheetRevenue,
	SheetPlan,
	SheetCountries,
	SheetSubscription,
	SheetCustomers,
}

// Table is one sheet: a header row and raw string cells. Rows are padded to
// the header width because xlsx readers trim trailing empty cells.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Column returns the index of the named header column, matching after
// whitespace trimming only. A missing column is a schema error, never
// auto-corrected.
func (t *Table) Column(name string) (int, error) {
	for i, h := range t.Header {
		if strings.TrimSpace(h) == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: sheet %q has no column %q", ErrSchemaMismatch, t.Name, name)
}

// Load opens the workbook at path and returns the five required sheets keyed
// by sheet name. It only reads; the file handle is released before returning.
func Load(path string) (map[string]*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrSourceUnavailable, path, err)
	}
	defer f.Close()

	tables := make(map[string]*Table, len(RequiredSheets))
	for _, name := range RequiredSheets {
		idx, err := f.GetSheetIndex(name)
		if err != nil {
			return nil, fmt.Errorf("%w: sheet %q: %v", ErrSourceUnavailable, name, err)
		}
		if idx < 0 {
			return nil, fmt.Errorf("%w: workbook %s has no sheet %q", ErrSourceUnavailable, path, name)
		}

		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("%w: read sheet %q: %v", ErrSourceUnavailable, name, err)
		}

		t := &Table{Name: name}
		if len(rows) > 0 {
			t.Header = rows[0]
			t.Rows = padRows(rows[1:], len(rows[0]))
		}
		tables[name] = t
	}

	return tables, nil
}

func padRows(rows [][]string, width int) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		if len(r) < width {
			padded := make([]string, width)
			copy(padded, r)
			r = padded
		}
		out = append(out, r)
	}
	return out
}
