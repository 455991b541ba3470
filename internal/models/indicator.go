package models

import "time"

// Indicator types as used by the economic data source.
const (
	IndicatorInterestRate  = "interest-rate"
	IndicatorInflationRate = "inflation-rate"
	IndicatorGDPGrowth     = "gdp-growth"
	IndicatorHousingIndex  = "housing-index"
	IndicatorHousingStarts = "housing-starts"
	IndicatorHomeSales     = "home-sales"
)

// EconomicIndicator is a single observation of an economic time series.
// Immutable once created.
type EconomicIndicator struct {
	IndicatorType string    `json:"indicator_type"`
	Value         float64   `json:"value"`
	Date          time.Time `json:"date"`
	Country       string    `json:"country"`
	Forecast      *float64  `json:"forecast"`
	Source        string    `json:"source"`
}

// MaterialPrice is a construction material spot price quote.
type MaterialPrice struct {
	Material string    `json:"material"`
	Price    float64   `json:"price"`
	Unit     string    `json:"unit"`
	Date     time.Time `json:"date"`
	Source   string    `json:"source"`
}

// IndicatorSeries is an ordered sequence of observations. Callers must not
// assume input order; Sorted returns a copy ordered ascending by date.
type IndicatorSeries []EconomicIndicator

// Sorted returns a date-ascending copy of the series.
func (s IndicatorSeries) Sorted() IndicatorSeries {
	out := make(IndicatorSeries, len(s))
	copy(out, s)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Date.Before(out[j-1].Date); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Values returns the series values in the receiver's order.
func (s IndicatorSeries) Values() []float64 {
	vals := make([]float64, len(s))
	for i, ind := range s {
		vals[i] = ind.Value
	}
	return vals
}

// Mean returns the arithmetic mean of the series values, or 0 for an empty
// series.
func (s IndicatorSeries) Mean() float64 {
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, ind := range s {
		sum += ind.Value
	}
	return sum / float64(len(s))
}
