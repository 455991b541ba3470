// Package trend classifies the short-term direction of an indicator series.
package trend

import (
	"math"

	"github.com/sirupsen/logrus"

	"smartestate/server/internal/models"
)

const (
	Increasing = "increasing"
	Decreasing = "decreasing"
	Stable     = "stable"
	Neutral    = "neutral"
)

// slopeBand is the least-squares slope magnitude below which a series is
// considered stable.
const slopeBand = 0.1

// recentWindow caps how many trailing points feed the regression.
const recentWindow = 6

type Classifier struct {
	logger *logrus.Logger
}

func NewClassifier(logger *logrus.Logger) *Classifier {
	if logger == nil {
		logger = logrus.New()
	}
	return &Classifier{logger: logger}
}

// Classify fits a least-squares line through the most recent points of the
// series (oldest first) and maps the slope to a direction label. Series with
// fewer than two points carry no direction and come back neutral.
func (c *Classifier) Classify(series models.IndicatorSeries) string {
	if len(series) < 2 {
		return Neutral
	}

	sorted := series.Sorted()
	if len(sorted) > recentWindow {
		sorted = sorted[len(sorted)-recentWindow:]
	}
	values := sorted.Values()

	slope, ok := leastSquaresSlope(values)
	if !ok {
		c.logger.WithField("points", len(values)).Warn("degenerate series, cannot fit trend line")
		return Neutral
	}

	switch {
	case slope > slopeBand:
		return Increasing
	case slope < -slopeBand:
		return Decreasing
	default:
		return Stable
	}
}

// leastSquaresSlope fits y = a + b*x over x = 0..n-1 and returns b.
func leastSquaresSlope(values []float64) (float64, bool) {
	n := float64(len(values))
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 || math.IsNaN(denom) {
		return 0, false
	}

	slope := (n*sumXY - sumX*sumY) / denom
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		return 0, false
	}
	return slope, true
}
