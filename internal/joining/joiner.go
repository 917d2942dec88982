// Package joining builds the denormalized fact table: one row per cleaned
// revenue event that finds a match in all four dimension tables.
package joining

import (
	"time"

	"ott-analytics/internal/cleaning"
	"ott-analytics/internal/records"
)

// FactRow is the fixed projection of the fact table. Nothing outside these
// fields survives the join.
type FactRow struct {
	OrderID     string    `json:"order_id"`
	PaymentDate time.Time `json:"payment_date"`
	Amount      float64   `json:"amount"`
	CouponCode  string    `json:"coupon_code"`
	CustomerID  string    `json:"customer_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	CountryName string    `json:"country_name"`
	PlanName    string    `json:"plan_name"`
}

// Stats counts rows lost at each join stage. Attrition is a data-quality
// signal, not a fault; it never fails the run.
type Stats struct {
	Input          int `json:"input"`
	NoSubscription int `json:"no_subscription"`
	NoCustomer     int `json:"no_customer"`
	NoCountry      int `json:"no_country"`
	NoPlan         int `json:"no_plan"`
	Output         int `json:"output"`
}

// Join runs the four inner joins in order: subscription, customer, country,
// plan. A revenue row must match at every stage to reach the fact table.
// Dimension keys are unique; on duplicates the first record wins, so the
// joins never increase cardinality.
func Join(
	revenue []cleaning.Revenue,
	subs []records.Subscription,
	customers []records.Customer,
	countries []records.Country,
	plans []records.Plan,
) ([]FactRow, Stats) {
	subByOrder := make(map[string]records.Subscription, len(subs))
	for _, s := range subs {
		if _, ok := subByOrder[s.OrderID]; !ok {
			subByOrder[s.OrderID] = s
		}
	}
	customerByID := make(map[string]records.Customer, len(customers))
	for _, c := range customers {
		if _, ok := customerByID[c.ID]; !ok {
			customerByID[c.ID] = c
		}
	}
	countryByID := make(map[string]records.Country, len(countries))
	for _, c := range countries {
		if _, ok := countryByID[c.ID]; !ok {
			countryByID[c.ID] = c
		}
	}
	planByID := make(map[string]records.Plan, len(plans))
	for _, p := range plans {
		if _, ok := planByID[p.ID]; !ok {
			planByID[p.ID] = p
		}
	}

	stats := Stats{Input: len(revenue)}
	fact := make([]FactRow, 0, len(revenue))
	for _, r := range revenue {
		sub, ok := subByOrder[r.OrderID]
		if !ok {
			stats.NoSubscription++
			continue
		}
		customer, ok := customerByID[sub.CustomerID]
		if !ok {
			stats.NoCustomer++
			continue
		}
		country, ok := countryByID[customer.CountryID]
		if !ok {
			stats.NoCountry++
			continue
		}
		plan, ok := planByID[sub.PlanID]
		if !ok {
			stats.NoPlan++
			continue
		}

		fact = append(fact, FactRow{
			OrderID:     r.OrderID,
			PaymentDate: r.PaymentDate,
			Amount:      r.Amount,
			CouponCode:  r.CouponCode,
			CustomerID:  sub.CustomerID,
			Email:       customer.Email,
			Name:        customer.Name,
			CountryName: country.Name,
			PlanName:    plan.Name,
		})
	}

	stats.Output = len(fact)
	return fact, stats
}
