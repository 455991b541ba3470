package models

// Recommendation values emitted by the investment timing engine.
const (
	RecommendBuy          = "buy"
	RecommendWait         = "wait"
	RecommendNeutral      = "neutral"
	RecommendHold         = "hold"
	RecommendSave         = "save"
	RecommendResearchAlts = "research alternatives"
)

// Investment goals accepted by the timing and ROI engines.
const (
	GoalFlip = "flip"
	GoalRent = "rent"
	GoalHold = "hold"
)

// InvestmentRecommendation is the output of the timing engine.
type InvestmentRecommendation struct {
	Location       string            `json:"location"`
	Recommendation string            `json:"recommendation"`
	Confidence     float64           `json:"confidence"`
	PriceForecast  []ForecastPoint   `json:"price_forecast"`
	OptimalTime    string            `json:"optimal_time,omitempty"`
	ROIEstimate    float64           `json:"roi_estimate"`
	Factors        map[string]string `json:"factors"`
}

// FlipROI is the flip-strategy result of the timing-engine ROI calculator.
type FlipROI struct {
	InvestmentType     string  `json:"investment_type"`
	Location           string  `json:"location"`
	PropertyType       string  `json:"property_type"`
	InitialInvestment  float64 `json:"initial_investment"`
	HoldingPeriod      string  `json:"holding_period"`
	ProjectedSalePrice float64 `json:"projected_sale_price"`
	TotalCosts         float64 `json:"total_costs"`
	NetProfit          float64 `json:"net_profit"`
	ROIPercent         float64 `json:"roi_percent"`
	AnnualizedROI      float64 `json:"annualized_roi_percent"`
	BreakevenMonths    float64 `json:"breakeven_months"`
	Confidence         string  `json:"confidence"`
}

// RentalROI is the rental-strategy result of the timing-engine ROI calculator.
// BreakevenMonths is +Inf when monthly cash flow is non-positive.
type RentalROI struct {
	InvestmentType       string  `json:"investment_type"`
	Location             string  `json:"location"`
	PropertyType         string  `json:"property_type"`
	InitialInvestment    float64 `json:"initial_investment"`
	MonthlyCashFlow      float64 `json:"monthly_cash_flow"`
	AnnualCashFlow       float64 `json:"annual_cash_flow"`
	ProjectedFutureValue float64 `json:"projected_future_value"`
	TotalRentalIncome    float64 `json:"total_rental_income"`
	EquityGain           float64 `json:"equity_gain"`
	TotalReturn          float64 `json:"total_return"`
	CashOnCashROI        float64 `json:"cash_on_cash_roi_percent"`
	TotalROIPercent      float64 `json:"total_roi_percent"`
	AnnualizedROI        float64 `json:"annualized_roi_percent"`
	BreakevenMonths      float64 `json:"breakeven_months"`
	Confidence           string  `json:"confidence"`
}

// HoldROI is the hold-strategy result of the timing-engine ROI calculator.
type HoldROI struct {
	InvestmentType       string  `json:"investment_type"`
	Location             string  `json:"location"`
	PropertyType         string  `json:"property_type"`
	InitialInvestment    float64 `json:"initial_investment"`
	HoldingPeriod        string  `json:"holding_period"`
	ProjectedFutureValue float64 `json:"projected_future_value"`
	TotalHoldingCosts    float64 `json:"total_holding_costs"`
	SellingCosts         float64 `json:"selling_costs"`
	NetProfit            float64 `json:"net_profit"`
	ROIPercent           float64 `json:"roi_percent"`
	AnnualizedROI        float64 `json:"annualized_roi_percent"`
	BreakevenMonths      float64 `json:"breakeven_months"`
	Confidence           string  `json:"confidence"`
}

// StandaloneROI is the result of the separately-tunable ROI strategy. Its
// coefficients intentionally differ from the timing-engine calculators; the
// two are distinct strategies selected per endpoint.
type StandaloneROI struct {
	Strategy         string             `json:"strategy"`
	ROIPercentage    float64            `json:"roi_percentage"`
	AnnualROI        float64            `json:"annual_roi,omitempty"`
	BreakevenMonths  float64            `json:"breakeven_months"`
	MonthlyCashFlow  float64            `json:"monthly_cash_flow"`
	AnnualCashFlow   float64            `json:"annual_cash_flow,omitempty"`
	TotalReturn      float64            `json:"total_return"`
	FutureValue      float64            `json:"future_value"`
	TotalCosts       float64            `json:"total_costs,omitempty"`
	TotalRentalIncome float64           `json:"total_rental_income,omitempty"`
	TotalHoldingCosts float64           `json:"total_holding_costs,omitempty"`
	CapRate          float64            `json:"cap_rate,omitempty"`
	CashOnCashReturn float64            `json:"cash_on_cash_return,omitempty"`
	AppreciationRate float64            `json:"appreciation_rate"`
	TimeframeYears   int                `json:"timeframe_years"`
	ReturnDrivers    map[string]float64 `json:"return_drivers"`
}

// MomentumAction is the discrete action derived from a momentum score.
type MomentumAction struct {
	Action      string `json:"action"`
	Confidence  string `json:"confidence"`
	Description string `json:"description"`
}
