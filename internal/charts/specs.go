package charts

import "ott-analytics/internal/metrics"

// CountryRevenueSpec charts total revenue for the given country view rows.
// Categories are reversed so the highest-revenue country lands at the top
// of the horizontal chart.
func CountryRevenueSpec(view []metrics.CountryStat) Spec {
	n := len(view)
	categories := make([]string, n)
	values := make([]float64, n)
	for i, row := range view {
		categories[n-1-i] = row.CountryName
		values[n-1-i] = row.TotalRevenue
	}
	return Spec{
		Title:      "Total revenue by country",
		ValueLabel: "revenue",
		Categories: categories,
		Series:     []Series{{Label: "revenue", Values: values}},
	}
}

// CohortCustomersSpec charts unique customers per country, split by cohort.
func CohortCustomersSpec(view []metrics.CohortStat) Spec {
	index := make(map[string]int)
	var categories []string
	for _, row := range view {
		if _, ok := index[row.CountryName]; !ok {
			index[row.CountryName] = len(categories)
			categories = append(categories, row.CountryName)
		}
	}

	with := make([]float64, len(categories))
	without := make([]float64, len(categories))
	for _, row := range view {
		i := index[row.CountryName]
		switch row.Cohort {
		case metrics.CohortWithCoupon:
			with[i] = float64(row.Customers)
		case metrics.CohortWithoutCoupon:
			without[i] = float64(row.Customers)
		}
	}
	return Spec{
		Title:      "Customers by country and coupon cohort",
		ValueLabel: "unique customers",
		Categories: categories,
		Series: []Series{
			{Label: string(metrics.CohortWithCoupon), Values: with},
			{Label: string(metrics.CohortWithoutCoupon), Values: without},
		},
	}
}

// MonthlyRevenueSpec charts revenue per calendar month, oldest at the top.
func MonthlyRevenueSpec(view []metrics.MonthStat) Spec {
	n := len(view)
	categories := make([]string, n)
	values := make([]float64, n)
	for i, row := range view {
		categories[n-1-i] = row.Month
		values[n-1-i] = row.TotalRevenue
	}
	return Spec{
		Title:      "Monthly revenue",
		ValueLabel: "revenue",
		Categories: categories,
		Series:     []Series{{Label: "revenue", Values: values}},
	}
}
