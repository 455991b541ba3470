package models

// MonthlyWeather is one month of the synthetic construction weather forecast.
type MonthlyWeather struct {
	Month             string  `json:"month"`
	AvgTemp           float64 `json:"avg_temp"`
	PrecipitationDays int     `json:"precipitation_days"`
	FavorableDays     int     `json:"favorable_days"`
	Season            string  `json:"season"`
}

// WindowScore rates a month for construction suitability.
type WindowScore struct {
	Month         string  `json:"month"`
	Score         float64 `json:"score"`
	FavorableDays int     `json:"favorable_days"`
	Rating        string  `json:"rating"`
}

// ConstructionWindow is a favorable stretch of months. Low-flexibility
// plans report runs of consecutive good months (Duration set); otherwise
// months are grouped by season (Season and Months set).
type ConstructionWindow struct {
	Season       string        `json:"season,omitempty"`
	Start        string        `json:"start"`
	End          string        `json:"end,omitempty"`
	Duration     int           `json:"duration,omitempty"`
	Months       []WindowScore `json:"months,omitempty"`
	AverageScore float64       `json:"average_score"`
	Rating       string        `json:"rating"`
}

// MaterialCost is the per-material line of a construction cost breakdown.
type MaterialCost struct {
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Cost      float64 `json:"cost"`
}

// CostEstimate is the output of the construction cost estimator.
type CostEstimate struct {
	TotalCost    float64                 `json:"total_cost"`
	CostPerSqft  float64                 `json:"cost_per_sqft"`
	Breakdown    CostBreakdown           `json:"breakdown"`
	Materials    map[string]MaterialCost `json:"materials_breakdown"`
	TimeEstimate string                  `json:"time_estimate"`
	Confidence   float64                 `json:"confidence"`
}

// CostBreakdown splits a total construction cost into its major components.
type CostBreakdown struct {
	Materials   float64 `json:"materials"`
	Labor       float64 `json:"labor"`
	SoftCosts   float64 `json:"soft_costs"`
	Contingency float64 `json:"contingency"`
}

// ConstructionPlan is the persisted summary of a planned build.
type ConstructionPlan struct {
	Location         string             `json:"location"`
	OptimalStartDate string             `json:"optimal_start_date"`
	MaterialPrices   map[string]float64 `json:"material_prices"`
	WeatherForecast  []MonthlyWeather   `json:"weather_forecast"`
	EstimatedCost    float64            `json:"estimated_cost"`
}

// StartTiming is the selected construction start window.
type StartTiming struct {
	StartDate            string  `json:"start_date"`
	StartMonthIndex      int     `json:"start_month_index"`
	WeatherScore         float64 `json:"weather_score"`
	Confidence           float64 `json:"confidence"`
	MaterialPurchaseTime string  `json:"material_purchase_time"`
}
