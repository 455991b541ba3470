package pricing

import (
	"time"

	"smartestate/server/internal/models"
)

// Baseline monthly price levels and jitter per property type, used when no
// stored prices cover a location.
var (
	historyBasePrices = map[string]float64{
		models.PropertyResidential: 350000,
		models.PropertyCommercial:  750000,
		models.PropertyLand:        200000,
	}
	historyVolatility = map[string]float64{
		models.PropertyResidential: 10000,
		models.PropertyCommercial:  25000,
		models.PropertyLand:        5000,
	}
	historyTypes = []string{models.PropertyResidential, models.PropertyCommercial, models.PropertyLand}
)

// SampleHistory synthesizes a monthly price history for the window. Roughly
// two thirds of the points carry a predicted price and confidence alongside
// the observed price.
func (p *Predictor) SampleHistory(location, propertyType string, start, end time.Time) []models.PropertyPrice {
	if propertyType == "" {
		propertyType = historyTypes[p.rng.Intn(len(historyTypes))]
	}

	base, ok := historyBasePrices[propertyType]
	if !ok {
		base = 300000
	}
	vol, ok := historyVolatility[propertyType]
	if !ok {
		vol = 10000
	}

	months := int(end.Sub(start).Hours() / 24 / 30)
	if months < 1 {
		months = 1
	}

	prices := make([]models.PropertyPrice, 0, months)
	for i := 0; i < months; i++ {
		price := base + p.uniform(-vol, vol)
		entry := models.PropertyPrice{
			Location:     location,
			Price:        round2(price),
			Date:         start.AddDate(0, 0, i*30),
			PropertyType: propertyType,
		}
		if p.rng.Float64() > 0.3 {
			predicted := round2(price * (1 + p.uniform(0.01, 0.05)))
			conf := round2(p.uniform(0.6, 0.9))
			entry.PredictedPrice = &predicted
			entry.Confidence = &conf
		}
		prices = append(prices, entry)
	}
	return prices
}
