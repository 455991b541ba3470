package trend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"smartestate/server/internal/models"
)

func seriesFrom(values []float64) models.IndicatorSeries {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(models.IndicatorSeries, 0, len(values))
	for i, v := range values {
		series = append(series, models.EconomicIndicator{
			IndicatorType: models.IndicatorInterestRate,
			Value:         v,
			Date:          base.AddDate(0, 0, i),
		})
	}
	return series
}

func TestClassify(t *testing.T) {
	classifier := NewClassifier(nil)

	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{"empty", nil, Neutral},
		{"single point", []float64{4.5}, Neutral},
		{"rising", []float64{1, 2, 3, 4, 5}, Increasing},
		{"falling", []float64{5, 4, 3, 2, 1}, Decreasing},
		{"flat", []float64{3, 3, 3, 3}, Stable},
		{"small drift within band", []float64{3.0, 3.05, 3.1, 3.15}, Stable},
		{"slope just above band", []float64{1.0, 1.15, 1.3, 1.45}, Increasing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(seriesFrom(tt.values)))
		})
	}
}

func TestClassify_UsesRecentWindow(t *testing.T) {
	classifier := NewClassifier(nil)

	// A long falling run followed by six rising points: only the recent
	// window should count.
	values := []float64{10, 9, 8, 7, 6, 5, 1, 2, 3, 4, 5, 6}
	assert.Equal(t, Increasing, classifier.Classify(seriesFrom(values)))
}

func TestClassify_SortsByDate(t *testing.T) {
	classifier := NewClassifier(nil)

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	// Delivered newest-first; sorted oldest-first the series rises.
	series := models.IndicatorSeries{
		{IndicatorType: models.IndicatorGDPGrowth, Value: 5, Date: base.AddDate(0, 0, 4)},
		{IndicatorType: models.IndicatorGDPGrowth, Value: 4, Date: base.AddDate(0, 0, 3)},
		{IndicatorType: models.IndicatorGDPGrowth, Value: 3, Date: base.AddDate(0, 0, 2)},
		{IndicatorType: models.IndicatorGDPGrowth, Value: 2, Date: base.AddDate(0, 0, 1)},
		{IndicatorType: models.IndicatorGDPGrowth, Value: 1, Date: base},
	}
	assert.Equal(t, Increasing, classifier.Classify(series))
}

func TestLeastSquaresSlope(t *testing.T) {
	slope, ok := leastSquaresSlope([]float64{2, 4, 6, 8})
	assert.True(t, ok)
	assert.InDelta(t, 2.0, slope, 1e-9)

	_, ok = leastSquaresSlope([]float64{7})
	assert.False(t, ok)
}
