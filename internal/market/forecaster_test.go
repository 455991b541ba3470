package market

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"smartestate/server/internal/models"
	"smartestate/server/internal/trend"
)

func indicatorSeries(indicatorType string, values ...float64) models.IndicatorSeries {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(models.IndicatorSeries, 0, len(values))
	for i, v := range values {
		series = append(series, models.EconomicIndicator{
			IndicatorType: indicatorType,
			Value:         v,
			Date:          base.AddDate(0, 0, i),
		})
	}
	return series
}

func newTestForecaster() *Forecaster {
	return NewForecaster(nil, rand.New(rand.NewSource(1)), nil)
}

func TestScoreIndicators(t *testing.T) {
	tests := []struct {
		name           string
		interest       string
		inflation      string
		gdp            string
		inflationMean  float64
		want           int
	}{
		{"all favorable", trend.Decreasing, trend.Stable, trend.Increasing, 2.0, 5},
		{"all unfavorable", trend.Increasing, trend.Increasing, trend.Decreasing, 6.0, -4},
		{"moderate inflation rising", trend.Neutral, trend.Increasing, trend.Neutral, 3.0, 2},
		{"hot inflation rising", trend.Neutral, trend.Increasing, trend.Neutral, 5.0, 0},
		{"empty series all neutral", trend.Neutral, trend.Neutral, trend.Neutral, 0, 1},
		{"stable interest counts against", trend.Stable, trend.Neutral, trend.Neutral, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreIndicators(tt.interest, tt.inflation, tt.gdp, tt.inflationMean)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDirectionForScore(t *testing.T) {
	assert.Equal(t, models.DirectionStrongGrowth, DirectionForScore(4))
	assert.Equal(t, models.DirectionStrongGrowth, DirectionForScore(3))
	assert.Equal(t, models.DirectionModerateGrowth, DirectionForScore(1))
	assert.Equal(t, models.DirectionNeutral, DirectionForScore(0))
	assert.Equal(t, models.DirectionModerateDecline, DirectionForScore(-2))
	assert.Equal(t, models.DirectionSharpDecline, DirectionForScore(-3))
}

func TestForecast_StrongGrowth(t *testing.T) {
	f := newTestForecaster()

	// Falling rates, flat inflation at 2.0, rising GDP: score 2+1+2 = 5.
	interest := indicatorSeries(models.IndicatorInterestRate, 6, 5.5, 5, 4.5, 4, 3.5)
	inflation := indicatorSeries(models.IndicatorInflationRate, 2, 2, 2, 2, 2, 2)
	gdp := indicatorSeries(models.IndicatorGDPGrowth, 1, 1.5, 2, 2.5, 3, 3.5)

	forecast := f.Forecast(interest, inflation, gdp)

	assert.Equal(t, models.DirectionStrongGrowth, forecast.MarketDirection)
	assert.Equal(t, 0.85, forecast.Confidence)
	assert.Len(t, forecast.ForecastPoints, 12)
	assert.Equal(t, "positive", forecast.Factors["interest_rates"].Impact)
	assert.Equal(t, "neutral", forecast.Factors["inflation"].Impact)
	assert.Equal(t, "positive", forecast.Factors["gdp"].Impact)
}

func TestForecast_EmptySeries(t *testing.T) {
	f := newTestForecaster()

	forecast := f.Forecast(nil, nil, nil)

	// Three neutral trends score 1+0+0 = 1.
	assert.Equal(t, models.DirectionModerateGrowth, forecast.MarketDirection)
	assert.Equal(t, 0.65, forecast.Confidence)
}

func TestForecastPoints_StartNearBaseIndex(t *testing.T) {
	f := newTestForecaster()
	f.SetNowFunc(func() time.Time {
		return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	})

	points := f.ForecastPoints(12, models.DirectionStrongGrowth)

	assert.Len(t, points, 12)
	assert.Equal(t, "2025-06", points[0].Date)
	// Index compounds from 100; the first point is exponent zero.
	assert.Equal(t, 100.0, points[0].Index)
	for _, p := range points {
		assert.InDelta(t, 1.15, p.ChangePct, 0.65)
	}
}

func TestForecastPoints_DeterministicWithSeed(t *testing.T) {
	nowFn := func() time.Time {
		return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	}

	f1 := NewForecaster(nil, rand.New(rand.NewSource(42)), nil)
	f1.SetNowFunc(nowFn)
	f2 := NewForecaster(nil, rand.New(rand.NewSource(42)), nil)
	f2.SetNowFunc(nowFn)

	assert.Equal(t, f1.ForecastPoints(12, models.DirectionModerateDecline),
		f2.ForecastPoints(12, models.DirectionModerateDecline))
}

func TestFallback(t *testing.T) {
	f := newTestForecaster()

	forecast := f.Fallback(errors.New("indicator source unavailable"))

	assert.Equal(t, models.DirectionUncertain, forecast.MarketDirection)
	assert.Equal(t, 0.5, forecast.Confidence)
	assert.Len(t, forecast.ForecastPoints, 12)
	assert.Equal(t, "indicator source unavailable", forecast.Error)
}
