package metrics

import (
	"sort"

	"ott-analytics/internal/joining"
)

// MonthStat is one calendar month of revenue.
type MonthStat struct {
	Month        string  `json:"month"`
	Orders       int     `json:"orders"`
	TotalRevenue float64 `json:"total_revenue"`
}

// MonthlyView groups fact rows by calendar month of payment_date, oldest
// first. Month keys use the "2006-01" form so lexical and chronological
// order coincide.
func MonthlyView(fact []joining.FactRow) []MonthStat {
	byMonth := make(map[string]*MonthStat)
	for _, row := range fact {
		key := row.PaymentDate.Format("2006-01")
		m := byMonth[key]
		if m == nil {
			m = &MonthStat{Month: key}
			byMonth[key] = m
		}
		m.Orders++
		m.TotalRevenue += row.Amount
	}

	view := make([]MonthStat, 0, len(byMonth))
	for _, m := range byMonth {
		view = append(view, *m)
	}
	sort.Slice(view, func(i, j int) bool { return view[i].Month < view[j].Month })
	return view
}
