package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"smartestate/server/internal/database"
	"smartestate/server/internal/economic"
	"smartestate/server/internal/investment"
	"smartestate/server/internal/models"
)

type timingRequest struct {
	Location       string  `json:"location"`
	PropertyType   string  `json:"property_type"`
	InvestmentGoal string  `json:"investment_goal"`
	Timeframe      int     `json:"timeframe"`
	Budget         float64 `json:"budget"`
	ROIExpectation float64 `json:"roi_expectation"`
}

// RecommendInvestment produces a buy/wait/hold recommendation for a location
// from the national interest and inflation trends, and stores it.
func (h *Handler) RecommendInvestment(c *gin.Context) {
	var req timingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if req.Location == "" || req.PropertyType == "" || req.InvestmentGoal == "" || req.Timeframe == 0 {
		badRequest(c, "Missing required parameters: location, property_type, investment_goal, and timeframe are required")
		return
	}

	interest, inflation, err := h.nationalIndicators(c, "1y")
	if err != nil {
		serverError(c, err.Error())
		return
	}

	recommendation, err := h.engine.RecommendTiming(investment.TimingRequest{
		Location:       req.Location,
		PropertyType:   req.PropertyType,
		InvestmentGoal: req.InvestmentGoal,
		TimeframeYears: req.Timeframe,
		Budget:         req.Budget,
		ROIExpectation: req.ROIExpectation,
	}, interest, inflation)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	if h.store != nil {
		record := &database.RecommendationRecord{
			Location:       req.Location,
			PropertyType:   req.PropertyType,
			InvestmentGoal: req.InvestmentGoal,
			Recommendation: recommendation.Recommendation,
			Confidence:     recommendation.Confidence,
			ExpectedROI:    recommendation.ROIEstimate,
		}
		if len(recommendation.PriceForecast) > 0 {
			record.EstimatedPrice = recommendation.PriceForecast[0].Price
		}
		if err := h.store.SaveRecommendation(record); err != nil {
			h.logger.WithError(err).Warn("Failed to persist investment recommendation")
		}
	}

	success(c, recommendation)
}

// InvestmentHistory lists stored recommendations for a location.
func (h *Handler) InvestmentHistory(c *gin.Context) {
	location := c.Query("location")
	if location == "" {
		badRequest(c, "Missing required parameter: location")
		return
	}
	limit := intQuery(c, "limit", 10)

	records, err := h.store.RecommendationHistory(location, limit)
	if err != nil {
		serverError(c, "Failed to fetch investment history")
		return
	}
	if records == nil {
		records = []database.RecommendationRecord{}
	}
	success(c, records)
}

// PriceMomentum scores a location's price momentum from recent national
// indicators and maps it to a discrete action.
func (h *Handler) PriceMomentum(c *gin.Context) {
	location := c.Query("location")
	if location == "" {
		badRequest(c, "Missing required parameter: location")
		return
	}
	propertyType := c.DefaultQuery("property_type", models.PropertyResidential)
	period := c.DefaultQuery("period", "1y")

	interest, inflation, err := h.nationalIndicators(c, period)
	if err != nil {
		serverError(c, err.Error())
		return
	}

	score := h.engine.MomentumScore(interest, inflation, location, propertyType)
	action := investment.DetermineAction(score)

	success(c, gin.H{
		"location":       location,
		"property_type":  propertyType,
		"period":         period,
		"momentum_score": score,
		"recommendation": action,
		"indicators": gin.H{
			"interest_rates": tail(interest, 3),
			"inflation":      tail(inflation, 3),
		},
	})
}

type roiRequest struct {
	Location             string  `json:"location"`
	PropertyType         string  `json:"property_type"`
	PurchasePrice        float64 `json:"purchase_price"`
	InvestmentGoal       string  `json:"investment_goal"`
	Timeframe            int     `json:"timeframe"`
	AdditionalInvestment float64 `json:"additional_investment"`
	ExpectedRent         float64 `json:"expected_rent"`
	ExpectedExpenses     float64 `json:"expected_expenses"`
}

// InvestmentROI runs the goal-specific ROI calculator: flip, rent, or hold.
func (h *Handler) InvestmentROI(c *gin.Context) {
	var req roiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if req.Location == "" || req.PropertyType == "" || req.PurchasePrice == 0 || req.InvestmentGoal == "" || req.Timeframe == 0 {
		badRequest(c, "Missing required parameters: location, property_type, purchase_price, investment_goal, and timeframe are required")
		return
	}

	var (
		result interface{}
		err    error
	)
	switch req.InvestmentGoal {
	case models.GoalFlip:
		result, err = h.engine.FlipROI(req.Location, req.PropertyType, req.PurchasePrice, req.AdditionalInvestment, req.Timeframe)
	case models.GoalRent:
		if req.ExpectedRent == 0 {
			badRequest(c, "Missing required parameter for rental properties: expected_rent")
			return
		}
		result, err = h.engine.RentalROI(req.Location, req.PropertyType, req.PurchasePrice, req.AdditionalInvestment, req.ExpectedRent, req.ExpectedExpenses, req.Timeframe)
	default:
		result, err = h.engine.HoldROI(req.Location, req.PropertyType, req.PurchasePrice, req.AdditionalInvestment, req.Timeframe)
	}
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	success(c, result)
}

// nationalIndicators fetches the default country's interest and inflation
// series over the period window.
func (h *Handler) nationalIndicators(c *gin.Context, period string) (models.IndicatorSeries, models.IndicatorSeries, error) {
	start, end := economic.ResolveDateRange(period, h.nowFn())
	ctx := c.Request.Context()
	country := h.config.Collaborators.DefaultCountry

	interest, err := h.economic.FetchIndicatorSeries(ctx, models.IndicatorInterestRate, country, start, end)
	if err != nil {
		return nil, nil, err
	}
	inflation, err := h.economic.FetchIndicatorSeries(ctx, models.IndicatorInflationRate, country, start, end)
	if err != nil {
		return nil, nil, err
	}
	return interest, inflation, nil
}

// tail returns the last n points of a series, date-ascending.
func tail(series models.IndicatorSeries, n int) models.IndicatorSeries {
	sorted := series.Sorted()
	if len(sorted) <= n {
		return sorted
	}
	return sorted[len(sorted)-n:]
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
