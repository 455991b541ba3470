package models

import "time"

// Property types accepted across the scoring components.
const (
	PropertyResidential = "residential"
	PropertyCommercial  = "commercial"
	PropertyLand        = "land"
	PropertyIndustrial  = "industrial"
)

// PropertyPrice is a price observation or prediction for a location.
type PropertyPrice struct {
	Location       string    `json:"location"`
	Price          float64   `json:"price"`
	Date           time.Time `json:"date"`
	PropertyType   string    `json:"property_type"`
	PredictedPrice *float64  `json:"predicted_price"`
	Confidence     *float64  `json:"confidence"`
}

// ForecastPoint is one month of a compounding price or index forecast.
type ForecastPoint struct {
	Date      string  `json:"date"`
	Price     float64 `json:"price,omitempty"`
	Index     float64 `json:"index,omitempty"`
	ChangePct float64 `json:"change_pct"`
}

// MarketAssessment is the under/overvalued verdict for a property. The
// assessment is currently drawn at random (documented stub).
type MarketAssessment struct {
	Assessment string  `json:"assessment"`
	Percentage float64 `json:"percentage"`
}

// PricePrediction is the full output of the property price predictor.
type PricePrediction struct {
	CurrentPrice     float64          `json:"current_price"`
	PricePerSqft     float64          `json:"price_per_sqft"`
	Confidence       float64          `json:"confidence"`
	MarketAssessment MarketAssessment `json:"market_assessment"`
	Forecast         []ForecastPoint  `json:"forecast"`
}
