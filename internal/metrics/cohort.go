package metrics

import (
	"sort"

	"ott-analytics/internal/joining"
)

// Cohort labels a coupon-usage group.
type Cohort string

const (
	CohortWithCoupon    Cohort = "with-coupon"
	CohortWithoutCoupon Cohort = "without-coupon"
)

// CohortSource selects how a fact row is assigned to a cohort.
type CohortSource string

const (
	// SourceTransaction derives the cohort from the coupon code on the
	// payment itself.
	SourceTransaction CohortSource = "transaction"
	// SourceSignup derives the cohort from the customer's coupon-at-signup
	// flag; a customer's rows all land in one cohort.
	SourceSignup CohortSource = "signup"
)

// CohortStat is one (country, cohort) cell of the cohort view.
type CohortStat struct {
	CountryName   string  `json:"country_name"`
	Cohort        Cohort  `json:"cohort"`
	Customers     int     `json:"customers"`
	RetentionRate float64 `json:"retention_rate"`
}

// CohortView groups fact rows by (country_name, cohort). Customers counts
// unique customer ids in the cell; RetentionRate is the fraction of those
// customers with more than one purchase in the cell. signupFlags maps
// customer_id to the signup coupon flag and is consulted only under
// SourceSignup. Under SourceTransaction a customer with both coupon and
// non-coupon purchases appears in both cohorts.
func CohortView(fact []joining.FactRow, source CohortSource, signupFlags map[string]bool) []CohortStat {
	type cell struct {
		country string
		cohort  Cohort
	}
	purchases := make(map[cell]map[string]int)
	for _, row := range fact {
		withCoupon := row.CouponCode != ""
		if source == SourceSignup {
			withCoupon = signupFlags[row.CustomerID]
		}
		cohort := CohortWithoutCoupon
		if withCoupon {
			cohort = CohortWithCoupon
		}
		k := cell{country: row.CountryName, cohort: cohort}
		if purchases[k] == nil {
			purchases[k] = make(map[string]int)
		}
		purchases[k][row.CustomerID]++
	}

	view := make([]CohortStat, 0, len(purchases))
	for k, byCustomer := range purchases {
		retained := 0
		for _, n := range byCustomer {
			if n > 1 {
				retained++
			}
		}
		view = append(view, CohortStat{
			CountryName:   k.country,
			Cohort:        k.cohort,
			Customers:     len(byCustomer),
			RetentionRate: float64(retained) / float64(len(byCustomer)),
		})
	}

	sort.Slice(view, func(i, j int) bool {
		if view[i].CountryName != view[j].CountryName {
			return view[i].CountryName < view[j].CountryName
		}
		return view[i].Cohort < view[j].Cohort
	})
	return view
}

// TopCohortCountries restricts the cohort view to the n countries with the
// most unique customers summed across cohorts. Relative order of the kept
// rows is preserved.
func TopCohortCountries(view []CohortStat, n int) []CohortStat {
	totals := make(map[string]int)
	for _, row := range view {
		totals[row.CountryName] += row.Customers
	}

	countries := make([]string, 0, len(totals))
	for name := range totals {
		countries = append(countries, name)
	}
	sort.Slice(countries, func(i, j int) bool {
		if totals[countries[i]] != totals[countries[j]] {
			return totals[countries[i]] > totals[countries[j]]
		}
		return countries[i] < countries[j]
	})
	if n > len(countries) {
		n = len(countries)
	}

	keep := make(map[string]bool, n)
	for _, name := range countries[:n] {
		keep[name] = true
	}

	out := make([]CohortStat, 0, len(view))
	for _, row := range view {
		if keep[row.CountryName] {
			out = append(out, row)
		}
	}
	return out
}
