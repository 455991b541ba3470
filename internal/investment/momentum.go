package investment

import (
	"math"

	"smartestate/server/config"
	"smartestate/server/internal/models"
)

// MomentumScore compares the endpoints of the interest and inflation series,
// adds location and property-type factors plus a small random perturbation,
// and normalizes to [-100, 100].
func (e *Engine) MomentumScore(interestRates, inflation models.IndicatorSeries, location, propertyType string) float64 {
	var interestScore float64
	if len(interestRates) > 1 {
		first := interestRates[0].Value
		last := interestRates[len(interestRates)-1].Value
		switch {
		case last < first:
			interestScore = 20
		case last > first:
			interestScore = -10
		default:
			interestScore = 5
		}
	}

	var inflationScore float64
	if len(inflation) > 1 {
		first := inflation[0].Value
		last := inflation[len(inflation)-1].Value
		switch {
		case last > 4.0:
			inflationScore = -5
		case last > first:
			inflationScore = 5
		default:
			inflationScore = 0
		}
	}

	var locationFactor float64
	if config.IsHotMarket(location) {
		locationFactor = 10
	}

	var typeFactor float64
	switch propertyType {
	case models.PropertyResidential:
		typeFactor = 5
	case models.PropertyCommercial:
		typeFactor = 0
	default: // land moves slowest
		typeFactor = -5
	}

	total := interestScore + inflationScore + locationFactor + typeFactor
	total += float64(e.rng.Intn(11) - 5)

	normalized := math.Max(-100, math.Min(100, total*3))
	return math.Round(normalized*10) / 10
}

// DetermineAction maps a momentum score to a discrete investment action.
func DetermineAction(momentumScore float64) models.MomentumAction {
	switch {
	case momentumScore > 60:
		return models.MomentumAction{
			Action:      "Strong Buy",
			Confidence:  "High",
			Description: "Market conditions are highly favorable for investment.",
		}
	case momentumScore > 20:
		return models.MomentumAction{
			Action:      "Buy",
			Confidence:  "Medium",
			Description: "Market conditions are favorable for investment.",
		}
	case momentumScore > -20:
		return models.MomentumAction{
			Action:      "Hold",
			Confidence:  "Medium",
			Description: "Market conditions are neutral. Monitor the market before making decisions.",
		}
	case momentumScore > -60:
		return models.MomentumAction{
			Action:      "Sell",
			Confidence:  "Medium",
			Description: "Market conditions are unfavorable. Consider selling properties not performing well.",
		}
	default:
		return models.MomentumAction{
			Action:      "Strong Sell",
			Confidence:  "High",
			Description: "Market conditions are highly unfavorable. Consider selling properties to preserve capital.",
		}
	}
}
