// Package investment produces buy/hold/wait timing recommendations, ROI
// projections for flip/rent/hold strategies, and a price momentum score.
package investment

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"smartestate/server/config"
	"smartestate/server/internal/models"
	"smartestate/server/internal/pricing"
	"smartestate/server/internal/trend"
)

// ErrInvalidTimeframe is returned when a timeframe shorter than one year is
// supplied; annualization is undefined over zero years.
var ErrInvalidTimeframe = errors.New("timeframe must be at least 1 year")

// averageSizeSqft is the assumed floor area used to estimate a property
// value when none is supplied.
var averageSizeSqft = map[string]float64{
	models.PropertyResidential: 2000,
	models.PropertyCommercial:  5000,
	models.PropertyLand:        10000,
}

// TimingRequest carries the inputs of a timing recommendation. Budget and
// ROIExpectation are optional; zero means not supplied.
type TimingRequest struct {
	Location       string
	PropertyType   string
	InvestmentGoal string
	TimeframeYears int
	Budget         float64
	ROIExpectation float64
}

type Engine struct {
	classifier *trend.Classifier
	predictor  *pricing.Predictor
	rng        *rand.Rand
	logger     *logrus.Logger
}

func NewEngine(classifier *trend.Classifier, predictor *pricing.Predictor, rng *rand.Rand, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
	}
	if classifier == nil {
		classifier = trend.NewClassifier(logger)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if predictor == nil {
		predictor = pricing.NewPredictor(rng, logger)
	}
	return &Engine{classifier: classifier, predictor: predictor, rng: rng, logger: logger}
}

// RecommendTiming applies the goal-specific decision table to the interest
// and inflation trends, then adjusts for budget and ROI expectations.
func (e *Engine) RecommendTiming(req TimingRequest, interestRates, inflation models.IndicatorSeries) (models.InvestmentRecommendation, error) {
	if req.TimeframeYears < 1 {
		return models.InvestmentRecommendation{}, ErrInvalidTimeframe
	}

	e.logger.WithFields(logrus.Fields{
		"location":        req.Location,
		"property_type":   req.PropertyType,
		"investment_goal": req.InvestmentGoal,
	}).Info("predicting investment timing")

	interestTrend := e.classifier.Classify(interestRates)
	inflationTrend := e.classifier.Classify(inflation)

	recommendation, confidence, optimalTime := decideTiming(req.InvestmentGoal, interestTrend, inflationTrend)

	basePrice := config.BasePrice(req.Location, req.PropertyType)
	size, ok := averageSizeSqft[req.PropertyType]
	if !ok {
		size = 2000
	}
	currentPrice := basePrice * size

	roiEstimate := e.ExpectedROI(req.Location, req.PropertyType, req.InvestmentGoal, req.TimeframeYears, currentPrice)

	if req.Budget > 0 && req.Budget < currentPrice && recommendation == models.RecommendBuy {
		recommendation = models.RecommendSave
		// 20% of budget saved per month toward the shortfall.
		monthsToSave := math.Round((currentPrice - req.Budget) / (req.Budget * 0.2))
		optimalTime = fmt.Sprintf("%.0f months", monthsToSave)
	}

	if req.ROIExpectation > 0 && roiEstimate < req.ROIExpectation && recommendation == models.RecommendBuy {
		recommendation = models.RecommendResearchAlts
		confidence -= 0.1
	}

	months := req.TimeframeYears * 12
	if months > 24 {
		months = 24
	}
	priceForecast := e.predictor.ForecastPrice(req.Location, req.PropertyType, currentPrice, months)

	return models.InvestmentRecommendation{
		Location:       req.Location,
		Recommendation: recommendation,
		Confidence:     round2(confidence),
		PriceForecast:  priceForecast,
		OptimalTime:    optimalTime,
		ROIEstimate:    round2(roiEstimate),
		Factors: map[string]string{
			"interest_rates":   interestTrend,
			"inflation":        inflationTrend,
			"market_direction": marketDirectionLabel(recommendation),
		},
	}, nil
}

func decideTiming(goal, interestTrend, inflationTrend string) (recommendation string, confidence float64, optimalTime string) {
	switch goal {
	case models.GoalFlip:
		switch {
		case interestTrend == trend.Decreasing && inflationTrend != trend.Increasing:
			return models.RecommendBuy, 0.85, "1-3 months"
		case interestTrend == trend.Increasing && inflationTrend == trend.Increasing:
			return models.RecommendWait, 0.8, "6-12 months"
		default:
			return models.RecommendNeutral, 0.7, "3-6 months"
		}
	case models.GoalRent:
		if interestTrend != trend.Increasing {
			return models.RecommendBuy, 0.8, "1-3 months"
		}
		return models.RecommendNeutral, 0.7, "3-6 months"
	default: // hold
		if interestTrend == trend.Decreasing || inflationTrend == trend.Increasing {
			return models.RecommendBuy, 0.75, "1-6 months"
		}
		return models.RecommendNeutral, 0.65, "6-12 months"
	}
}

func marketDirectionLabel(recommendation string) string {
	switch recommendation {
	case models.RecommendBuy:
		return "favorable"
	case models.RecommendNeutral:
		return "uncertain"
	default:
		return "unfavorable"
	}
}

// ExpectedROI is the coarse, goal-specific ROI heuristic feeding the timing
// recommendation. It is intentionally looser than the full ROI calculators.
func (e *Engine) ExpectedROI(location, propertyType, goal string, timeframeYears int, currentPrice float64) float64 {
	annualGrowth := config.GrowthRate(location, propertyType)

	var roi float64
	switch goal {
	case models.GoalFlip:
		renovationCost := currentPrice * 0.15
		sellingPrice := currentPrice * (1 + annualGrowth) * 1.2
		investment := currentPrice + renovationCost
		roi = (sellingPrice - investment) / investment * 100
	case models.GoalRent:
		monthlyRent := pricing.EstimateMonthlyRent(location, propertyType, currentPrice)
		annualRentalIncome := monthlyRent * 12
		netAnnualIncome := annualRentalIncome * 0.7
		totalRentalIncome := netAnnualIncome * float64(timeframeYears)
		futureValue := currentPrice * math.Pow(1+annualGrowth, float64(timeframeYears))
		roi = (totalRentalIncome + futureValue - currentPrice) / currentPrice * 100
	default: // hold
		futureValue := currentPrice * math.Pow(1+annualGrowth, float64(timeframeYears))
		roi = (futureValue - currentPrice) / currentPrice * 100
	}

	return roi * e.uniform(0.9, 1.1)
}

func (e *Engine) uniform(lo, hi float64) float64 {
	return lo + e.rng.Float64()*(hi-lo)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
