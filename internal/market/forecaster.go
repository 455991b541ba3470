// Package market turns trend-classified economic series into a scored
// market direction with a synthetic monthly index forecast.
package market

import (
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"smartestate/server/internal/models"
	"smartestate/server/internal/trend"
)

// forecastMonths is the horizon of the synthetic index forecast.
const forecastMonths = 12

// startIndex is the arbitrary base of the synthetic index.
const startIndex = 100.0

type Forecaster struct {
	classifier *trend.Classifier
	rng        *rand.Rand
	nowFn      func() time.Time
	logger     *logrus.Logger
}

// NewForecaster builds a Forecaster. A nil rng gets a time-seeded source;
// tests pass a fixed seed to pin forecast output.
func NewForecaster(classifier *trend.Classifier, rng *rand.Rand, logger *logrus.Logger) *Forecaster {
	if logger == nil {
		logger = logrus.New()
	}
	if classifier == nil {
		classifier = trend.NewClassifier(logger)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Forecaster{
		classifier: classifier,
		rng:        rng,
		nowFn:      time.Now,
		logger:     logger,
	}
}

// SetNowFunc overrides the clock used to date forecast points.
func (f *Forecaster) SetNowFunc(nowFn func() time.Time) {
	f.nowFn = nowFn
}

// Forecast scores the three indicator series and maps the sum to a market
// direction label with a 12-month synthetic index forecast.
func (f *Forecaster) Forecast(interestRates, inflation, gdp models.IndicatorSeries) models.MarketForecast {
	interestTrend := f.classifier.Classify(interestRates)
	inflationTrend := f.classifier.Classify(inflation)
	gdpTrend := f.classifier.Classify(gdp)
	inflationMean := inflation.Mean()

	score := ScoreIndicators(interestTrend, inflationTrend, gdpTrend, inflationMean)
	direction := DirectionForScore(score)
	confidence := math.Min(0.6+math.Abs(float64(score))*0.05, 0.95)

	f.logger.WithFields(logrus.Fields{
		"interest_trend":  interestTrend,
		"inflation_trend": inflationTrend,
		"gdp_trend":       gdpTrend,
		"market_score":    score,
		"direction":       direction,
	}).Info("forecasted market direction")

	return models.MarketForecast{
		MarketDirection: direction,
		Confidence:      round2(confidence),
		ForecastPoints:  f.ForecastPoints(forecastMonths, direction),
		Factors: map[string]models.FactorAssessment{
			"interest_rates": {
				Trend:  interestTrend,
				Impact: interestImpact(interestTrend),
			},
			"inflation": {
				Trend:  inflationTrend,
				Impact: inflationImpact(inflationTrend, inflationMean),
			},
			"gdp": {
				Trend:  gdpTrend,
				Impact: gdpImpact(gdpTrend),
			},
		},
	}
}

// Fallback returns the payload used when indicator data cannot be obtained:
// an uncertain direction with a neutral-band forecast.
func (f *Forecaster) Fallback(err error) models.MarketForecast {
	f.logger.WithError(err).Error("falling back to uncertain market forecast")
	return models.MarketForecast{
		MarketDirection: models.DirectionUncertain,
		Confidence:      0.5,
		ForecastPoints:  f.ForecastPoints(forecastMonths, models.DirectionNeutral),
		Error:           err.Error(),
	}
}

// ScoreIndicators sums the per-factor contributions. Falling interest rates
// and rising GDP push the score up; hot inflation pushes it down.
func ScoreIndicators(interestTrend, inflationTrend, gdpTrend string, inflationMean float64) int {
	score := 0

	switch interestTrend {
	case trend.Decreasing:
		score += 2
	case trend.Neutral:
		score++
	default:
		score--
	}

	if inflationTrend == trend.Increasing && inflationMean > 4.0 {
		score--
	} else if inflationTrend == trend.Stable || (inflationTrend == trend.Increasing && inflationMean <= 4.0) {
		score++
	}

	switch gdpTrend {
	case trend.Increasing:
		score += 2
	case trend.Neutral:
		// no contribution
	default:
		score -= 2
	}

	return score
}

// DirectionForScore maps a market score to its direction label.
func DirectionForScore(score int) string {
	switch {
	case score >= 3:
		return models.DirectionStrongGrowth
	case score >= 1:
		return models.DirectionModerateGrowth
	case score <= -3:
		return models.DirectionSharpDecline
	case score <= -1:
		return models.DirectionModerateDecline
	default:
		return models.DirectionNeutral
	}
}

// ForecastPoints compounds the synthetic index month over month, with a
// per-label monthly change range and volatility band.
func (f *Forecaster) ForecastPoints(months int, direction string) []models.ForecastPoint {
	var monthlyChange, volatility float64
	switch direction {
	case models.DirectionStrongGrowth:
		monthlyChange = f.uniform(0.8, 1.5)
		volatility = 0.3
	case models.DirectionModerateGrowth:
		monthlyChange = f.uniform(0.3, 0.8)
		volatility = 0.2
	case models.DirectionNeutral:
		monthlyChange = f.uniform(-0.2, 0.3)
		volatility = 0.2
	case models.DirectionModerateDecline:
		monthlyChange = f.uniform(-0.8, -0.3)
		volatility = 0.3
	case models.DirectionSharpDecline:
		monthlyChange = f.uniform(-1.5, -0.8)
		volatility = 0.4
	default:
		monthlyChange = 0
		volatility = 0.1
	}

	now := f.nowFn()
	points := make([]models.ForecastPoint, 0, months)
	for i := 0; i < months; i++ {
		change := monthlyChange + f.uniform(-volatility, volatility)
		index := startIndex * math.Pow(1+change/100, float64(i))
		points = append(points, models.ForecastPoint{
			Date:      now.AddDate(0, 0, 30*i).Format("2006-01"),
			Index:     round2(index),
			ChangePct: round2(change),
		})
	}
	return points
}

func interestImpact(t string) string {
	switch t {
	case trend.Decreasing:
		return "positive"
	case trend.Increasing:
		return "negative"
	default:
		return "neutral"
	}
}

func inflationImpact(t string, mean float64) string {
	if t == trend.Increasing && mean > 4.0 {
		return "negative"
	}
	return "neutral"
}

func gdpImpact(t string) string {
	switch t {
	case trend.Increasing:
		return "positive"
	case trend.Decreasing:
		return "negative"
	default:
		return "neutral"
	}
}

func (f *Forecaster) uniform(lo, hi float64) float64 {
	return lo + f.rng.Float64()*(hi-lo)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
