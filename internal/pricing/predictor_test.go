package pricing

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"smartestate/server/internal/models"
)

func newTestPredictor() *Predictor {
	p := NewPredictor(rand.New(rand.NewSource(1)), nil)
	p.SetNowFunc(func() time.Time {
		return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	})
	return p
}

func TestPredict_BaseLookup(t *testing.T) {
	p := newTestPredictor()

	pred, err := p.Predict(PredictionRequest{
		Location:     "Chicago, IL",
		PropertyType: models.PropertyResidential,
		AreaSqft:     1000,
		Period:       "1y",
	})

	assert.NoError(t, err)
	assert.Equal(t, 350.0, pred.PricePerSqft)
	assert.Equal(t, 350000.0, pred.CurrentPrice)
	assert.Equal(t, 0.7, pred.Confidence)
	assert.Len(t, pred.Forecast, 12)
}

func TestPredict_UnknownCityUsesDefault(t *testing.T) {
	p := newTestPredictor()

	pred, err := p.Predict(PredictionRequest{
		Location:     "Unknown City, ZZ",
		PropertyType: models.PropertyResidential,
		AreaSqft:     500,
	})

	assert.NoError(t, err)
	assert.Equal(t, 300.0, pred.PricePerSqft)
	assert.Equal(t, 150000.0, pred.CurrentPrice)
}

func TestPredict_ResidentialAdjustments(t *testing.T) {
	p := newTestPredictor()

	pred, err := p.Predict(PredictionRequest{
		Location:     "Houston, TX",
		PropertyType: models.PropertyResidential,
		AreaSqft:     2000,
		Bedrooms:     4,
		Bathrooms:    2,
	})

	assert.NoError(t, err)
	// 200 * 2000 * 1.2 (4br) * 1.05 (2ba)
	assert.Equal(t, 504000.0, pred.CurrentPrice)
	assert.Equal(t, 0.8, pred.Confidence)
}

func TestPredict_AgeAdjustment(t *testing.T) {
	p := newTestPredictor()

	// Built 2024: age 1 in 2025, new construction premium.
	pred, err := p.Predict(PredictionRequest{
		Location:     "Houston, TX",
		PropertyType: models.PropertyCommercial,
		AreaSqft:     1000,
		YearBuilt:    2024,
	})

	assert.NoError(t, err)
	assert.Equal(t, 420000.0, pred.CurrentPrice) // 350 * 1000 * 1.2
	assert.Equal(t, 0.75, pred.Confidence)
}

func TestPredict_FullAttributesConfidence(t *testing.T) {
	p := newTestPredictor()

	pred, err := p.Predict(PredictionRequest{
		Location:     "Dallas, TX",
		PropertyType: models.PropertyResidential,
		AreaSqft:     1500,
		Bedrooms:     3,
		Bathrooms:    3,
		YearBuilt:    2000,
	})

	assert.NoError(t, err)
	assert.Equal(t, 0.85, pred.Confidence)
}

func TestPredict_InvalidArea(t *testing.T) {
	p := newTestPredictor()

	_, err := p.Predict(PredictionRequest{
		Location:     "Dallas, TX",
		PropertyType: models.PropertyResidential,
		AreaSqft:     0,
	})

	assert.ErrorIs(t, err, ErrInvalidArea)
}

func TestForecastMonths(t *testing.T) {
	assert.Equal(t, 6, ForecastMonths("6m"))
	assert.Equal(t, 12, ForecastMonths("1y"))
	assert.Equal(t, 60, ForecastMonths("5y"))
	assert.Equal(t, 12, ForecastMonths("bogus"))
}

func TestForecastPrice_CompoundsWithinJitter(t *testing.T) {
	p := newTestPredictor()

	forecast := p.ForecastPrice("Chicago, IL", models.PropertyResidential, 100000, 12)
	assert.Len(t, forecast, 12)

	// Chicago residential grows 2.5%/yr, about 0.2%/mo; jitter is ±0.5%.
	prev := 100000.0
	for _, point := range forecast {
		growth := (point.Price - prev) / prev
		assert.InDelta(t, 0.002, growth, 0.006)
		prev = point.Price
	}
	assert.Equal(t, "2025-06", forecast[0].Date)
}

func TestEstimateMonthlyRent(t *testing.T) {
	// San Francisco residential ratio 25: 600000 / (25*12) = 2000.
	assert.InDelta(t, 2000, EstimateMonthlyRent("San Francisco, CA", models.PropertyResidential, 600000), 1e-9)

	// Unknown city falls back to the default residential ratio of 18.
	assert.InDelta(t, 600000.0/(18*12), EstimateMonthlyRent("Nowhere, ZZ", models.PropertyResidential, 600000), 1e-9)
}

func TestAssessMarketValue_Bounds(t *testing.T) {
	p := newTestPredictor()

	for i := 0; i < 50; i++ {
		a := p.AssessMarketValue()
		switch a.Assessment {
		case "fairly valued":
			assert.GreaterOrEqual(t, a.Percentage, 0.0)
			assert.LessOrEqual(t, a.Percentage, 3.0)
		case "undervalued", "overvalued":
			assert.GreaterOrEqual(t, a.Percentage, 5.0)
			assert.LessOrEqual(t, a.Percentage, 15.0)
		default:
			t.Fatalf("unexpected assessment %q", a.Assessment)
		}
	}
}
