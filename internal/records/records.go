// Package records decodes the dimension sheets (subscription, customers,
// countries, plan) into typed records. The revenue sheet is not decoded here;
// it goes through the cleaning step, which owns its stricter policy.
package records

import (
	"strings"

	"ott-analytics/internal/workbook"
)

// Subscription relates a revenue event to a customer and a plan.
type Subscription struct {
	OrderID    string
	CustomerID string
	PlanID     string
}

// Customer carries the attributes joined onto fact rows plus the signup
// coupon flag used by the signup cohort rule.
type Customer struct {
	ID           string
	Email        string
	Name         string
	CountryID    string
	SignupCoupon bool
}

type Country struct {
	ID     string
	Name   string
	Region string
}

type Plan struct {
	ID       string
	Name     string
	Duration string
}

// DecodeSubscriptions reads the subscription sheet. Rows without an order id
// or customer id can never join and are skipped.
func DecodeSubscriptions(t *workbook.Table) ([]Subscription, error) {
	orderCol, err := t.Column("order_id")
	if err != nil {
		return nil, err
	}
	custCol, err := t.Column("customer_id")
	if err != nil {
		return nil, err
	}
	planCol, err := t.Column("plan_id")
	if err != nil {
		return nil, err
	}

	subs := make([]Subscription, 0, len(t.Rows))
	for _, row := range t.Rows {
		s := Subscription{
			OrderID:    strings.TrimSpace(row[orderCol]),
			CustomerID: strings.TrimSpace(row[custCol]),
			PlanID:     strings.TrimSpace(row[planCol]),
		}
		if s.OrderID == "" || s.CustomerID == "" {
			continue
		}
		subs = append(subs, s)
	}
	return subs, nil
}

func DecodeCustomers(t *workbook.Table) ([]Customer, error) {
	idCol, err := t.Column("id")
	if err != nil {
		return nil, err
	}
	emailCol, err := t.Column("email")
	if err != nil {
		return nil, err
	}
	nameCol, err := t.Column("name")
	if err != nil {
		return nil, err
	}
	countryCol, err := t.Column("country_id")
	if err != nil {
		return nil, err
	}
	couponCol, err := t.Column("signup_coupon_flag")
	if err != nil {
		return nil, err
	}

	customers := make([]Customer, 0, len(t.Rows))
	for _, row := range t.Rows {
		c := Customer{
			ID:           strings.TrimSpace(row[idCol]),
			Email:        strings.TrimSpace(row[emailCol]),
			Name:         strings.TrimSpace(row[nameCol]),
			CountryID:    strings.TrimSpace(row[countryCol]),
			SignupCoupon: parseFlag(row[couponCol]),
		}
		if c.ID == "" {
			continue
		}
		customers = append(customers, c)
	}
	return customers, nil
}

func DecodeCountries(t *workbook.Table) ([]Country, error) {
	idCol, err := t.Column("id")
	if err != nil {
		return nil, err
	}
	nameCol, err := t.Column("country_name")
	if err != nil {
		return nil, err
	}
	regionCol, err := t.Column("region")
	if err != nil {
		return nil, err
	}

	countries := make([]Country, 0, len(t.Rows))
	for _, row := range t.Rows {
		c := Country{
			ID:     strings.TrimSpace(row[idCol]),
			Name:   strings.TrimSpace(row[nameCol]),
			Region: strings.TrimSpace(row[regionCol]),
		}
		if c.ID == "" {
			continue
		}
		countries = append(countries, c)
	}
	return countries, nil
}

// DecodePlans reads the plan sheet. The source data headers this column "Id";
// both spellings are accepted because they appear interchangeably in exports.
func DecodePlans(t *workbook.Table) ([]Plan, error) {
	idCol, err := t.Column("Id")
	if err != nil {
		idCol, err = t.Column("id")
		if err != nil {
			return nil, err
		}
	}
	nameCol, err := t.Column("plan_name")
	if err != nil {
		return nil, err
	}
	durationCol, err := t.Column("duration")
	if err != nil {
		return nil, err
	}

	plans := make([]Plan, 0, len(t.Rows))
	for _, row := range t.Rows {
		p := Plan{
			ID:       strings.TrimSpace(row[idCol]),
			Name:     strings.TrimSpace(row[nameCol]),
			Duration: strings.TrimSpace(row[durationCol]),
		}
		if p.ID == "" {
			continue
		}
		plans = append(plans, p)
	}
	return plans, nil
}

// parseFlag reads the signup coupon marker. Exports encode it as a boolean,
// a 0/1 integer, or the coupon code itself; anything non-empty and non-falsy
// counts as flagged.
func parseFlag(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "", "0", "false", "no", "n", "null", "none":
		return false
	}
	return true
}
