// Package profile produces a dataframe summary of the raw workbook before
// any cleaning, the inspection counterpart to the silent-exclusion policy
// downstream.
package profile

import (
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"

	"ott-analytics/internal/workbook"
)

// SheetProfile is the shape of one raw sheet.
type SheetProfile struct {
	Sheet   string   `json:"sheet"`
	Rows    int      `json:"rows"`
	Columns int      `json:"columns"`
	Names   []string `json:"column_names"`
}

// Sheets profiles every loaded sheet, ordered by sheet name.
func Sheets(tables map[string]*workbook.Table) []SheetProfile {
	profiles := make([]SheetProfile, 0, len(tables))
	for name, t := range tables {
		df := frame(t)
		p := SheetProfile{Sheet: name}
		if df.Err == nil {
			p.Rows = df.Nrow()
			p.Columns = df.Ncol()
			p.Names = df.Names()
		}
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Sheet < profiles[j].Sheet })
	return profiles
}

// Describe renders the dataframe summary statistics of one sheet, as
// printed by gota.
func Describe(t *workbook.Table) (string, error) {
	df := frame(t)
	if df.Err != nil {
		return "", fmt.Errorf("profile sheet %q: %w", t.Name, df.Err)
	}
	return df.Describe().String(), nil
}

func frame(t *workbook.Table) dataframe.DataFrame {
	recs := make([][]string, 0, len(t.Rows)+1)
	recs = append(recs, t.Header)
	recs = append(recs, t.Rows...)
	return dataframe.LoadRecords(recs)
}
