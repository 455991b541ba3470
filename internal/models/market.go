package models

// Market direction labels produced by the direction forecaster.
const (
	DirectionStrongGrowth    = "strong growth"
	DirectionModerateGrowth  = "moderate growth"
	DirectionNeutral         = "neutral"
	DirectionModerateDecline = "moderate decline"
	DirectionSharpDecline    = "sharp decline"
	DirectionUncertain       = "uncertain"
)

// FactorAssessment describes one economic factor's contribution to a
// market forecast.
type FactorAssessment struct {
	Trend  string `json:"trend"`
	Impact string `json:"impact"`
}

// MarketForecast is the output of the market direction forecaster.
type MarketForecast struct {
	MarketDirection string                      `json:"market_direction"`
	Confidence      float64                     `json:"confidence"`
	ForecastPoints  []ForecastPoint             `json:"forecast_points"`
	Factors         map[string]FactorAssessment `json:"factors,omitempty"`
	Error           string                      `json:"error,omitempty"`
}
