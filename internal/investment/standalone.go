package investment

import (
	"math"

	"smartestate/server/config"
	"smartestate/server/internal/models"
	"smartestate/server/internal/pricing"
)

// StandaloneRequest carries the inputs of the standalone ROI strategy.
// ExpectedRent and ExpectedExpenses are optional for rentals; zero means
// estimate them from the location.
type StandaloneRequest struct {
	Location             string
	PropertyType         string
	PurchasePrice        float64
	InvestmentGoal       string
	TimeframeYears       int
	AdditionalInvestment float64
	ExpectedRent         float64
	ExpectedExpenses     float64
}

// StandaloneROI computes ROI with its own coefficient set, separate from the
// flip/rent/hold calculators above. The two disagree on transaction costs
// and appreciation sources; callers pick one per endpoint, so both sets are
// kept as-is rather than unified.
func (e *Engine) StandaloneROI(req StandaloneRequest) (models.StandaloneROI, error) {
	if req.TimeframeYears < 1 {
		return models.StandaloneROI{}, ErrInvalidTimeframe
	}

	totalInvestment := req.PurchasePrice + req.AdditionalInvestment
	years := float64(req.TimeframeYears)

	appreciationRate := config.GrowthRate(req.Location, req.PropertyType)
	futureValue := req.PurchasePrice * math.Pow(1+appreciationRate, years)
	appreciationGain := futureValue - req.PurchasePrice

	switch req.InvestmentGoal {
	case models.GoalFlip:
		// Flips hold for at most a year regardless of the timeframe.
		transactionCosts := req.PurchasePrice*0.05 + futureValue*0.06
		monthlyHoldingCost := req.PurchasePrice * 0.01 / 12
		holdingCosts := monthlyHoldingCost * 12

		profit := futureValue - req.PurchasePrice - req.AdditionalInvestment - transactionCosts - holdingCosts
		roiPercentage := profit / totalInvestment * 100

		breakevenMonths := 0.0
		if profit <= 0 {
			breakevenMonths = years * 12 * 2
		}

		return models.StandaloneROI{
			Strategy:         models.GoalFlip,
			ROIPercentage:    roiPercentage,
			BreakevenMonths:  breakevenMonths,
			MonthlyCashFlow:  0,
			TotalReturn:      profit,
			FutureValue:      futureValue,
			TotalCosts:       transactionCosts + holdingCosts + req.AdditionalInvestment,
			AppreciationRate: appreciationRate * 100,
			TimeframeYears:   req.TimeframeYears,
			ReturnDrivers: map[string]float64{
				"appreciation":  appreciationGain,
				"improvements":  req.AdditionalInvestment * 0.3,
				"market_timing": futureValue * 0.05,
			},
		}, nil

	case models.GoalRent:
		expectedRent := req.ExpectedRent
		if expectedRent <= 0 {
			expectedRent = pricing.EstimateMonthlyRent(req.Location, req.PropertyType, req.PurchasePrice)
		}
		expectedExpenses := req.ExpectedExpenses
		if expectedExpenses <= 0 {
			expectedExpenses = expectedRent * 0.4
		}

		monthlyCashFlow := expectedRent - expectedExpenses
		annualCashFlow := monthlyCashFlow * 12
		totalRentalIncome := annualCashFlow * years

		totalReturn := totalRentalIncome + appreciationGain
		roiPercentage := totalReturn / totalInvestment * 100
		annualROI := roiPercentage / years

		breakevenMonths := math.Inf(1)
		if monthlyCashFlow > 0 {
			breakevenMonths = totalInvestment / monthlyCashFlow
		}

		return models.StandaloneROI{
			Strategy:          models.GoalRent,
			ROIPercentage:     roiPercentage,
			AnnualROI:         annualROI,
			BreakevenMonths:   breakevenMonths,
			MonthlyCashFlow:   monthlyCashFlow,
			AnnualCashFlow:    annualCashFlow,
			TotalReturn:       totalReturn,
			FutureValue:       futureValue,
			TotalRentalIncome: totalRentalIncome,
			CapRate:           annualCashFlow / req.PurchasePrice * 100,
			CashOnCashReturn:  annualCashFlow / totalInvestment * 100,
			AppreciationRate:  appreciationRate * 100,
			TimeframeYears:    req.TimeframeYears,
			ReturnDrivers: map[string]float64{
				"rental_income": totalRentalIncome,
				"appreciation":  appreciationGain,
			},
		}, nil

	default: // hold
		annualHoldingCosts := req.PurchasePrice * 0.015
		totalHoldingCosts := annualHoldingCosts * years

		profit := futureValue - req.PurchasePrice - totalHoldingCosts
		roiPercentage := profit / totalInvestment * 100
		annualROI := roiPercentage / years

		breakevenMonths := math.Inf(1)
		valueIncreasePerYear := appreciationGain / years
		if valueIncreasePerYear > annualHoldingCosts {
			breakevenMonths = totalInvestment / (valueIncreasePerYear - annualHoldingCosts) * 12
		}

		return models.StandaloneROI{
			Strategy:          models.GoalHold,
			ROIPercentage:     roiPercentage,
			AnnualROI:         annualROI,
			BreakevenMonths:   breakevenMonths,
			MonthlyCashFlow:   -annualHoldingCosts / 12,
			TotalReturn:       profit,
			FutureValue:       futureValue,
			TotalHoldingCosts: totalHoldingCosts,
			AppreciationRate:  appreciationRate * 100,
			TimeframeYears:    req.TimeframeYears,
			ReturnDrivers: map[string]float64{
				"appreciation":  appreciationGain,
				"market_timing": futureValue * 0.1,
			},
		}, nil
	}
}
