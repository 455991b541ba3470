package construction

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"smartestate/server/config"
	"smartestate/server/internal/models"
)

// ErrInvalidArea is returned when a cost estimate is requested for a
// non-positive floor area.
var ErrInvalidArea = errors.New("area must be positive")

// Quality levels accepted by the cost estimator.
const (
	QualityBasic    = "basic"
	QualityStandard = "standard"
	QualityPremium  = "premium"
)

// baseCostsPerSqft hold per-sqft construction costs by property type and
// quality level.
var baseCostsPerSqft = map[string]map[string]float64{
	models.PropertyResidential: {QualityBasic: 125, QualityStandard: 175, QualityPremium: 300},
	models.PropertyCommercial:  {QualityBasic: 150, QualityStandard: 200, QualityPremium: 350},
	models.PropertyIndustrial:  {QualityBasic: 100, QualityStandard: 150, QualityPremium: 250},
}

// materialRequirements are quantities needed per square foot.
var materialRequirements = map[string]float64{
	"lumber":     0.5,   // board feet
	"concrete":   0.03,  // cubic yards
	"steel":      0.001, // tons
	"insulation": 1.0,   // sqft
	"drywall":    1.0,   // sqft
}

var qualityFactors = map[string]float64{
	QualityBasic:    0.8,
	QualityStandard: 1.0,
	QualityPremium:  1.4,
}

// EstimateCosts produces a full construction cost estimate with a material
// breakdown priced from the supplied material prices.
func (p *Planner) EstimateCosts(location, propertyType string, areaSqft float64, qualityLevel string, stories int, materialPrices map[string]float64) (models.CostEstimate, error) {
	if areaSqft <= 0 {
		return models.CostEstimate{}, ErrInvalidArea
	}

	p.logger.WithFields(logrus.Fields{
		"location":      location,
		"property_type": propertyType,
	}).Info("estimating construction costs")

	baseCost := baseCostPerSqft(location, propertyType, qualityLevel)

	storyFactor := 1.0
	if stories > 1 {
		storyFactor = 1 + float64(stories-1)*0.05
	}

	basicCost := baseCost * areaSqft * storyFactor

	laborCost := basicCost * 0.4
	softCosts := basicCost * 0.18
	contingency := basicCost * 0.08
	totalCost := basicCost + softCosts + contingency

	return models.CostEstimate{
		TotalCost:   round2(totalCost),
		CostPerSqft: round2(totalCost / areaSqft),
		Breakdown: models.CostBreakdown{
			Materials:   round2(basicCost * 0.6),
			Labor:       round2(laborCost),
			SoftCosts:   round2(softCosts),
			Contingency: round2(contingency),
		},
		Materials:    MaterialBreakdown(areaSqft, qualityLevel, materialPrices),
		TimeEstimate: timeEstimate(areaSqft),
		Confidence:   0.85,
	}, nil
}

// MaterialBreakdown prices the required material quantities, falling back
// to a unit price of 1 for materials with no quote.
func MaterialBreakdown(areaSqft float64, qualityLevel string, materialPrices map[string]float64) map[string]models.MaterialCost {
	qualityFactor, ok := qualityFactors[qualityLevel]
	if !ok {
		qualityFactor = 1.0
	}

	breakdown := make(map[string]models.MaterialCost, len(materialRequirements))
	for material, requirement := range materialRequirements {
		quantity := requirement * areaSqft * qualityFactor
		unitPrice, ok := materialPrices[material]
		if !ok {
			unitPrice = 1.0
		}
		breakdown[material] = models.MaterialCost{
			Quantity:  round2(quantity),
			UnitPrice: round2(unitPrice),
			Cost:      round2(quantity * unitPrice),
		}
	}
	return breakdown
}

func baseCostPerSqft(location, propertyType, qualityLevel string) float64 {
	cost := 175.0
	if costs, ok := baseCostsPerSqft[propertyType]; ok {
		if c, ok := costs[qualityLevel]; ok {
			cost = c
		}
	}
	return cost * config.ConstructionCostFactor(location)
}

func timeEstimate(areaSqft float64) string {
	low := int(math.Round(areaSqft/1000)) + 2
	high := int(math.Round(areaSqft/800)) + 4
	return fmt.Sprintf("%d-%d months", low, high)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
