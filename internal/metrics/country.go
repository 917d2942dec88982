// Package metrics computes the aggregate views over the fact table. Views
// are derived copies; the fact table is never mutated.
package metrics

import (
	"sort"

	"github.com/montanaflynn/stats"

	"ott-analytics/internal/joining"
)

// CountryStat is one row of the per-country view.
type CountryStat struct {
	CountryName   string  `json:"country_name"`
	Orders        int     `json:"orders"`
	TotalRevenue  float64 `json:"total_revenue"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

// CountryView groups fact rows by country_name. The result is sorted by
// total revenue descending, name ascending on ties, so top-N selection is
// a prefix.
func CountryView(fact []joining.FactRow) []CountryStat {
	amounts := make(map[string][]float64)
	for _, row := range fact {
		amounts[row.CountryName] = append(amounts[row.CountryName], row.Amount)
	}

	view := make([]CountryStat, 0, len(amounts))
	for name, vals := range amounts {
		total := 0.0
		for _, v := range vals {
			total += v
		}
		avg, err := stats.Mean(vals)
		if err != nil {
			avg = 0
		}
		view = append(view, CountryStat{
			CountryName:   name,
			Orders:        len(vals),
			TotalRevenue:  total,
			AvgOrderValue: avg,
		})
	}

	sort.Slice(view, func(i, j int) bool {
		if view[i].TotalRevenue != view[j].TotalRevenue {
			return view[i].TotalRevenue > view[j].TotalRevenue
		}
		return view[i].CountryName < view[j].CountryName
	})
	return view
}

// TopCountries returns the first n entries of an already-sorted country
// view.
func TopCountries(view []CountryStat, n int) []CountryStat {
	if n > len(view) {
		n = len(view)
	}
	return view[:n]
}
