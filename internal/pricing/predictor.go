// Package pricing estimates property prices from market lookup tables and
// projects compounding monthly forecasts.
package pricing

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"smartestate/server/config"
	"smartestate/server/internal/models"
)

// ErrInvalidArea is returned when a prediction is requested for a
// non-positive floor area.
var ErrInvalidArea = errors.New("area must be positive")

// PredictionRequest carries the inputs of a price prediction. Bedrooms,
// Bathrooms and YearBuilt are optional; zero means not supplied.
type PredictionRequest struct {
	Location     string
	PropertyType string
	AreaSqft     float64
	Bedrooms     int
	Bathrooms    int
	YearBuilt    int
	Period       string
}

type Predictor struct {
	rng    *rand.Rand
	nowFn  func() time.Time
	logger *logrus.Logger
}

func NewPredictor(rng *rand.Rand, logger *logrus.Logger) *Predictor {
	if logger == nil {
		logger = logrus.New()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Predictor{rng: rng, nowFn: time.Now, logger: logger}
}

// SetNowFunc overrides the clock used for age adjustment and forecast dates.
func (p *Predictor) SetNowFunc(nowFn func() time.Time) {
	p.nowFn = nowFn
}

// Predict estimates the current price of a property and projects it over the
// requested period. Optional attributes tighten the estimate and raise the
// reported confidence.
func (p *Predictor) Predict(req PredictionRequest) (models.PricePrediction, error) {
	if req.AreaSqft <= 0 {
		return models.PricePrediction{}, ErrInvalidArea
	}

	p.logger.WithFields(logrus.Fields{
		"location":      req.Location,
		"property_type": req.PropertyType,
	}).Info("predicting property price")

	basePricePerSqft := config.BasePrice(req.Location, req.PropertyType)
	currentPrice := basePricePerSqft * req.AreaSqft

	if req.PropertyType == models.PropertyResidential && req.Bedrooms > 0 && req.Bathrooms > 0 {
		currentPrice *= bedroomFactor(req.Bedrooms) * bathroomFactor(req.Bathrooms)
	}
	if req.YearBuilt > 0 {
		currentPrice *= ageFactor(p.nowFn().Year() - req.YearBuilt)
	}

	months := ForecastMonths(req.Period)
	forecast := p.ForecastPrice(req.Location, req.PropertyType, currentPrice, months)

	return models.PricePrediction{
		CurrentPrice:     round2(currentPrice),
		PricePerSqft:     round2(basePricePerSqft),
		Confidence:       confidence(req),
		MarketAssessment: p.AssessMarketValue(),
		Forecast:         forecast,
	}, nil
}

// ForecastPrice compounds the price forward at the location's annual growth
// rate converted to monthly, with a small random jitter per step.
func (p *Predictor) ForecastPrice(location, propertyType string, currentPrice float64, months int) []models.ForecastPoint {
	annualRate := config.GrowthRate(location, propertyType)
	monthlyRate := math.Pow(1+annualRate, 1.0/12) - 1

	now := p.nowFn()
	forecast := make([]models.ForecastPoint, 0, months)
	price := currentPrice
	for i := 0; i < months; i++ {
		monthGrowth := monthlyRate + p.uniform(-0.005, 0.005)
		price *= 1 + monthGrowth
		forecast = append(forecast, models.ForecastPoint{
			Date:      now.AddDate(0, 0, 30*i).Format("2006-01"),
			Price:     round2(price),
			ChangePct: round2(monthGrowth * 100),
		})
	}
	return forecast
}

// EstimateMonthlyRent derives rent from the location's annual price-to-rent
// ratio.
func EstimateMonthlyRent(location, propertyType string, propertyValue float64) float64 {
	ratio := config.PriceToRentRatio(location, propertyType)
	return propertyValue / (ratio * 12)
}

// AssessMarketValue draws an under/over/fairly-valued verdict. The draw is
// uniform random rather than derived from the price; a real valuation model
// would replace this without changing the shape.
func (p *Predictor) AssessMarketValue() models.MarketAssessment {
	assessments := []string{"undervalued", "fairly valued", "overvalued"}
	assessment := assessments[p.rng.Intn(len(assessments))]

	var percentage float64
	if assessment == "fairly valued" {
		percentage = p.uniform(0, 3)
	} else {
		percentage = p.uniform(5, 15)
	}

	return models.MarketAssessment{
		Assessment: assessment,
		Percentage: math.Round(percentage*10) / 10,
	}
}

// ForecastMonths maps a period token to a month count, defaulting to a year.
func ForecastMonths(period string) int {
	switch period {
	case "6m":
		return 6
	case "1y":
		return 12
	case "5y":
		return 60
	default:
		return 12
	}
}

func bedroomFactor(bedrooms int) float64 {
	switch {
	case bedrooms <= 1:
		return 0.9
	case bedrooms == 2:
		return 1.0
	case bedrooms == 3:
		return 1.1
	case bedrooms == 4:
		return 1.2
	default:
		return 1.25
	}
}

func bathroomFactor(bathrooms int) float64 {
	switch {
	case bathrooms <= 1:
		return 0.95
	case bathrooms == 2:
		return 1.05
	default:
		return 1.1
	}
}

func ageFactor(age int) float64 {
	switch {
	case age <= 2:
		return 1.2
	case age <= 10:
		return 1.1
	case age <= 20:
		return 1.0
	case age <= 40:
		return 0.9
	default:
		return 0.85
	}
}

func confidence(req PredictionRequest) float64 {
	switch {
	case req.Bedrooms > 0 && req.Bathrooms > 0 && req.YearBuilt > 0:
		return 0.85
	case req.Bedrooms > 0 && req.Bathrooms > 0:
		return 0.8
	case req.YearBuilt > 0:
		return 0.75
	default:
		return 0.7
	}
}

func (p *Predictor) uniform(lo, hi float64) float64 {
	return lo + p.rng.Float64()*(hi-lo)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
