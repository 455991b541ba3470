package investment

import (
	"fmt"
	"math"

	"smartestate/server/config"
	"smartestate/server/internal/models"
)

// sellingCostPercent covers agent commission and closing costs.
const sellingCostPercent = 0.075

// FlipROI projects a renovate-and-sell investment. The holding period is
// capped at 12 months regardless of the requested timeframe.
func (e *Engine) FlipROI(location, propertyType string, purchasePrice, renovationCost float64, timeframeYears int) (models.FlipROI, error) {
	if timeframeYears < 1 {
		return models.FlipROI{}, ErrInvalidTimeframe
	}

	initialInvestment := purchasePrice + renovationCost

	monthlyHoldingCost := purchasePrice * 0.015 / 12
	holdingMonths := timeframeYears * 12
	if holdingMonths > 12 {
		holdingMonths = 12
	}
	totalHoldingCosts := monthlyHoldingCost * float64(holdingMonths)

	marketAdjustment := 1.0
	if config.IsHotMarket(location) {
		marketAdjustment = 1.2
	}

	// Each unit spent on renovation adds 1.5 units of value.
	appreciationFactor := math.Pow(1.03, float64(holdingMonths)/12)
	projectedSalePrice := (purchasePrice*appreciationFactor + renovationCost*1.5) * marketAdjustment
	projectedSalePrice *= e.uniform(0.95, 1.05)

	sellingCosts := projectedSalePrice * sellingCostPercent
	netProfit := projectedSalePrice - initialInvestment - totalHoldingCosts - sellingCosts
	roiPercent := netProfit / initialInvestment * 100
	annualizedROI := (math.Pow(1+roiPercent/100, 12/float64(holdingMonths)) - 1) * 100

	breakevenMonths := 0.0
	if netProfit <= 0 {
		breakevenMonths = float64(timeframeYears * 12 * 2)
	}

	return models.FlipROI{
		InvestmentType:     "flip",
		Location:           location,
		PropertyType:       propertyType,
		InitialInvestment:  round2(initialInvestment),
		HoldingPeriod:      fmt.Sprintf("%d months", holdingMonths),
		ProjectedSalePrice: round2(projectedSalePrice),
		TotalCosts:         round2(totalHoldingCosts + sellingCosts),
		NetProfit:          round2(netProfit),
		ROIPercent:         round2(roiPercent),
		AnnualizedROI:      round2(annualizedROI),
		BreakevenMonths:    breakevenMonths,
		Confidence:         "medium",
	}, nil
}

// RentalROI projects a buy-and-rent investment over the timeframe, including
// the equity gained if sold at the end. BreakevenMonths is +Inf when the
// monthly cash flow is non-positive.
func (e *Engine) RentalROI(location, propertyType string, purchasePrice, renovationCost, monthlyRent, monthlyExpenses float64, timeframeYears int) (models.RentalROI, error) {
	if timeframeYears < 1 {
		return models.RentalROI{}, ErrInvalidTimeframe
	}

	initialInvestment := purchasePrice + renovationCost
	monthlyCashFlow := monthlyRent - monthlyExpenses
	annualCashFlow := monthlyCashFlow * 12

	appreciationRate := 0.03
	if config.IsHotMarket(location) {
		appreciationRate *= 1.5
	}
	if propertyType == models.PropertyCommercial {
		appreciationRate *= 0.9
	}

	futureValue := purchasePrice * math.Pow(1+appreciationRate, float64(timeframeYears))
	futureValue *= e.uniform(0.95, 1.05)

	sellingCosts := futureValue * sellingCostPercent
	totalRentalIncome := annualCashFlow * float64(timeframeYears)
	equityGain := futureValue - purchasePrice - sellingCosts
	totalReturn := totalRentalIncome + equityGain

	cashOnCashROI := annualCashFlow / initialInvestment * 100
	totalROI := totalReturn / initialInvestment * 100
	annualizedROI := (math.Pow(1+totalROI/100, 1/float64(timeframeYears)) - 1) * 100

	breakevenMonths := math.Inf(1)
	if monthlyCashFlow > 0 {
		breakevenMonths = round2(initialInvestment / monthlyCashFlow)
	}

	return models.RentalROI{
		InvestmentType:       "rental",
		Location:             location,
		PropertyType:         propertyType,
		InitialInvestment:    round2(initialInvestment),
		MonthlyCashFlow:      round2(monthlyCashFlow),
		AnnualCashFlow:       round2(annualCashFlow),
		ProjectedFutureValue: round2(futureValue),
		TotalRentalIncome:    round2(totalRentalIncome),
		EquityGain:           round2(equityGain),
		TotalReturn:          round2(totalReturn),
		CashOnCashROI:        round2(cashOnCashROI),
		TotalROIPercent:      round2(totalROI),
		AnnualizedROI:        round2(annualizedROI),
		BreakevenMonths:      breakevenMonths,
		Confidence:           "medium",
	}, nil
}

// HoldROI projects appreciation-only returns net of holding and selling
// costs. BreakevenMonths is +Inf when yearly appreciation never exceeds the
// yearly holding cost.
func (e *Engine) HoldROI(location, propertyType string, purchasePrice, renovationCost float64, timeframeYears int) (models.HoldROI, error) {
	if timeframeYears < 1 {
		return models.HoldROI{}, ErrInvalidTimeframe
	}

	initialInvestment := purchasePrice + renovationCost

	appreciationRate := 0.03
	if config.IsHotMarket(location) {
		appreciationRate *= 1.5
	}
	switch propertyType {
	case models.PropertyLand:
		appreciationRate *= 1.2
	case models.PropertyCommercial:
		appreciationRate *= 0.9
	}

	futureValue := purchasePrice * math.Pow(1+appreciationRate, float64(timeframeYears))
	futureValue *= e.uniform(0.95, 1.05)

	sellingCosts := futureValue * sellingCostPercent
	annualCosts := purchasePrice * 0.02
	totalHoldingCosts := annualCosts * float64(timeframeYears)

	netProfit := futureValue - purchasePrice - sellingCosts - totalHoldingCosts
	roiPercent := netProfit / initialInvestment * 100
	annualizedROI := (math.Pow(1+roiPercent/100, 1/float64(timeframeYears)) - 1) * 100

	breakevenMonths := math.Inf(1)
	valueIncreasePerYear := (futureValue - purchasePrice) / float64(timeframeYears)
	if valueIncreasePerYear > annualCosts {
		breakevenMonths = round2(initialInvestment / (valueIncreasePerYear - annualCosts) * 12)
	}

	return models.HoldROI{
		InvestmentType:       "hold",
		Location:             location,
		PropertyType:         propertyType,
		InitialInvestment:    round2(initialInvestment),
		HoldingPeriod:        fmt.Sprintf("%d years", timeframeYears),
		ProjectedFutureValue: round2(futureValue),
		TotalHoldingCosts:    round2(totalHoldingCosts),
		SellingCosts:         round2(sellingCosts),
		NetProfit:            round2(netProfit),
		ROIPercent:           round2(roiPercent),
		AnnualizedROI:        round2(annualizedROI),
		BreakevenMonths:      breakevenMonths,
		Confidence:           "medium",
	}, nil
}
