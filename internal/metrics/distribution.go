package metrics

import (
	"math"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/montanaflynn/stats"

	"ott-analytics/internal/joining"
)

// Distribution summarizes the order-value distribution across the whole
// fact table. Percentiles come from an HDR histogram over amounts in cents.
type Distribution struct {
	Orders int     `json:"orders"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P95    float64 `json:"p95"`
	P99    float64 `json:"p99"`
}

// Histogram bounds: one cent to one million currency units, three
// significant figures.
const (
	minCents = 1
	maxCents = 100_000_000
)

// AmountDistribution computes the summary. An empty fact table yields the
// zero value.
func AmountDistribution(fact []joining.FactRow) Distribution {
	if len(fact) == 0 {
		return Distribution{}
	}

	hist := hdrhistogram.New(minCents, maxCents, 3)
	amounts := make([]float64, 0, len(fact))
	for _, row := range fact {
		amounts = append(amounts, row.Amount)
		cents := int64(math.Round(row.Amount * 100))
		if cents < minCents {
			cents = minCents
		}
		if cents > maxCents {
			cents = maxCents
		}
		hist.RecordValue(cents)
	}

	d := Distribution{
		Orders: len(fact),
		P50:    float64(hist.ValueAtQuantile(50)) / 100,
		P90:    float64(hist.ValueAtQuantile(90)) / 100,
		P95:    float64(hist.ValueAtQuantile(95)) / 100,
		P99:    float64(hist.ValueAtQuantile(99)) / 100,
	}
	d.Mean, _ = stats.Mean(amounts)
	d.Median, _ = stats.Median(amounts)
	d.StdDev, _ = stats.StandardDeviation(amounts)
	return d
}
