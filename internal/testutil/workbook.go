// Package testutil builds workbook fixtures for tests.
package testutil

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// WriteWorkbook writes an xlsx file with one sheet per map entry. Rows are
// written top to bottom starting at A1; the first row is the header.
func WriteWorkbook(t *testing.T, path string, sheets map[string][][]any) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	names := make([]string, 0, len(sheets))
	for name := range sheets {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	require.NoError(t, f.SaveAs(path))
}

// Sheets returns a fully-matching five-sheet fixture: three revenue rows of
// which one has a negative amount, one an unparsable date, and one is valid.
func Sheets() map[string][][]any {
	return map[string][][]any{
		"revenue": {
			{"order_id", "payment_date", "amount", "coupon_code"},
			{"ord-1", "2024-03-01", "9.99", ""},
			{"ord-2", "2024-03-02", "-5.00", ""},
			{"ord-3", "not a date", "12.50", "SPRING10"},
		},
		"subscription": {
			{"order_id", "customer_id", "plan_id"},
			{"ord-1", "cust-1", "plan-1"},
			{"ord-2", "cust-1", "plan-1"},
			{"ord-3", "cust-2", "plan-2"},
		},
		"customers": {
			{"id", "email", "name", "country_id", "signup_coupon_flag"},
			{"cust-1", "ada@example.com", "Ada", "c-1", "0"},
			{"cust-2", "bo@example.com", "Bo", "c-2", "1"},
		},
		"countries": {
			{"id", "country_name", "region"},
			{"c-1", "Norway", "EMEA"},
			{"c-2", "Chile", "LATAM"},
		},
		"plan": {
			{"Id", "plan_name", "duration"},
			{"plan-1", "Basic", "1 month"},
			{"plan-2", "Premium", "12 months"},
		},
	}
}
