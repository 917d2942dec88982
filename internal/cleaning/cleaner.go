// Package cleaning normalizes the raw revenue sheet. Rows are accepted or
// dropped, never repaired; every drop is counted so the loss stays visible.
package cleaning

import (
	"strconv"
	"strings"
	"time"

	"ott-analytics/internal/workbook"
)

// Revenue is one cleaned payment event.
type Revenue struct {
	OrderID     string
	PaymentDate time.Time
	Amount      float64
	CouponCode  string
}

// Stats counts what the cleaner dropped and why. The counters are
// informational: row-level quality problems never fail the run.
type Stats struct {
	Input      int `json:"input"`
	BadDate    int `json:"bad_date"`
	BadAmount  int `json:"bad_amount"`
	Duplicates int `json:"duplicates"`
	Output     int `json:"output"`
}

// dateLayouts are the accepted payment_date renderings. Anything else, and
// anything that is not an Excel serial number, drops the row.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
	"1/2/06 15:04",
	"01-02-06",
}

// Clean types and filters the revenue table. The passes run in a fixed
// order: date parsing, then amount coercion, then de-duplication. Later
// passes see only rows the earlier ones accepted.
func Clean(t *workbook.Table) ([]Revenue, Stats, error) {
	orderCol, err := t.Column("order_id")
	if err != nil {
		return nil, Stats{}, err
	}
	dateCol, err := t.Column("payment_date")
	if err != nil {
		return nil, Stats{}, err
	}
	amountCol, err := t.Column("amount")
	if err != nil {
		return nil, Stats{}, err
	}
	couponCol, err := t.Column("coupon_code")
	if err != nil {
		return nil, Stats{}, err
	}

	stats := Stats{Input: len(t.Rows)}

	type datedRow struct {
		orderID string
		date    time.Time
		amount  string
		coupon  string
	}

	// Pass 1: payment_date must parse.
	dated := make([]datedRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		ts, ok := parseDate(row[dateCol])
		if !ok {
			stats.BadDate++
			continue
		}
		dated = append(dated, datedRow{
			orderID: strings.TrimSpace(row[orderCol]),
			date:    ts,
			amount:  row[amountCol],
			coupon:  strings.TrimSpace(row[couponCol]),
		})
	}

	// Pass 2: amount must coerce to a positive number.
	typed := make([]Revenue, 0, len(dated))
	for _, r := range dated {
		amount, err := strconv.ParseFloat(strings.TrimSpace(r.amount), 64)
		if err != nil || amount <= 0 {
			stats.BadAmount++
			continue
		}
		typed = append(typed, Revenue{
			OrderID:     r.orderID,
			PaymentDate: r.date,
			Amount:      amount,
			CouponCode:  r.coupon,
		})
	}

	// Pass 3: drop exact duplicates, keeping first occurrence.
	seen := make(map[Revenue]struct{}, len(typed))
	out := make([]Revenue, 0, len(typed))
	for _, r := range typed {
		if _, dup := seen[r]; dup {
			stats.Duplicates++
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}

	stats.Output = len(out)
	return out, stats, nil
}

// excelEpoch is day zero of the 1900 date system, offset for the historical
// leap-year bug that serial numbers carry.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

func parseDate(cell string) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), true
		}
	}
	// Date cells stored without a format surface as serial numbers.
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		days := time.Duration(serial * 24 * float64(time.Hour))
		return excelEpoch.Add(days), true
	}
	return time.Time{}, false
}
