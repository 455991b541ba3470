package api

import (
	"github.com/gin-gonic/gin"

	"smartestate/server/internal/database"
	"smartestate/server/internal/economic"
	"smartestate/server/internal/models"
	"smartestate/server/internal/pricing"
)

type predictRequest struct {
	Location       string  `json:"location"`
	PropertyType   string  `json:"property_type"`
	AreaSqft       float64 `json:"area_sqft"`
	Bedrooms       int     `json:"bedrooms"`
	Bathrooms      int     `json:"bathrooms"`
	YearBuilt      int     `json:"year_built"`
	ForecastPeriod string  `json:"forecast_period"`
}

// PredictPrice estimates a property's price and forecast from its location,
// type and attributes, and stores the result.
func (h *Handler) PredictPrice(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if req.Location == "" || req.PropertyType == "" || req.AreaSqft == 0 {
		badRequest(c, "Missing required parameters: location, property_type, and area_sqft are required")
		return
	}
	if req.ForecastPeriod == "" {
		req.ForecastPeriod = "1y"
	}

	prediction, err := h.predictor.Predict(pricing.PredictionRequest{
		Location:     req.Location,
		PropertyType: req.PropertyType,
		AreaSqft:     req.AreaSqft,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		YearBuilt:    req.YearBuilt,
		Period:       req.ForecastPeriod,
	})
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	if h.store != nil {
		record := &database.PredictionRecord{
			Location:       req.Location,
			PropertyType:   req.PropertyType,
			AreaSqft:       req.AreaSqft,
			PredictedPrice: prediction.CurrentPrice,
			PricePerSqft:   prediction.PricePerSqft,
			Confidence:     prediction.Confidence,
		}
		if err := h.store.SavePrediction(record); err != nil {
			h.logger.WithError(err).Warn("Failed to persist price prediction")
		}
	}

	success(c, prediction)
}

// PriceHistory returns past price observations for a location. When the
// store has nothing for the window, a synthetic monthly history stands in.
func (h *Handler) PriceHistory(c *gin.Context) {
	location := c.Query("location")
	if location == "" {
		badRequest(c, "Missing required parameter: location")
		return
	}
	propertyType := c.Query("property_type")
	period := c.DefaultQuery("period", "1y")
	start, end := economic.ResolveDateRange(period, h.nowFn())

	var history []models.PropertyPrice
	if h.store != nil {
		records, err := h.store.PredictionHistory(location, 0)
		if err != nil {
			h.logger.WithError(err).Warn("Failed to read price history")
		}
		for _, rec := range records {
			if rec.CreatedAt.Before(start) || rec.CreatedAt.After(end) {
				continue
			}
			if propertyType != "" && rec.PropertyType != propertyType {
				continue
			}
			price := rec.PredictedPrice
			conf := rec.Confidence
			history = append(history, models.PropertyPrice{
				Location:       rec.Location,
				Price:          rec.PredictedPrice,
				Date:           rec.CreatedAt,
				PropertyType:   rec.PropertyType,
				PredictedPrice: &price,
				Confidence:     &conf,
			})
		}
	}
	if len(history) == 0 {
		history = h.predictor.SampleHistory(location, propertyType, start, end)
	}

	success(c, history)
}

// PropertyValuation returns the under/overvalued assessment for a location,
// derived from a default-size prediction.
func (h *Handler) PropertyValuation(c *gin.Context) {
	location := c.Query("location")
	if location == "" {
		badRequest(c, "Missing required parameter: location")
		return
	}
	propertyType := c.DefaultQuery("property_type", models.PropertyResidential)

	prediction, err := h.predictor.Predict(pricing.PredictionRequest{
		Location:     location,
		PropertyType: propertyType,
		AreaSqft:     2000,
	})
	if err != nil {
		serverError(c, err.Error())
		return
	}

	success(c, gin.H{
		"location":      location,
		"property_type": propertyType,
		"assessment":    prediction.MarketAssessment,
		"confidence":    prediction.Confidence,
	})
}
