package api

import (
	"github.com/gin-gonic/gin"

	"smartestate/server/internal/database"
	"smartestate/server/internal/investment"
)

// CalculateROI runs the standalone ROI strategy and stores the calculation.
func (h *Handler) CalculateROI(c *gin.Context) {
	var req roiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if req.Location == "" || req.PropertyType == "" || req.PurchasePrice == 0 || req.InvestmentGoal == "" || req.Timeframe == 0 {
		badRequest(c, "Missing required fields")
		return
	}

	result, err := h.engine.StandaloneROI(investment.StandaloneRequest{
		Location:             req.Location,
		PropertyType:         req.PropertyType,
		PurchasePrice:        req.PurchasePrice,
		InvestmentGoal:       req.InvestmentGoal,
		TimeframeYears:       req.Timeframe,
		AdditionalInvestment: req.AdditionalInvestment,
		ExpectedRent:         req.ExpectedRent,
		ExpectedExpenses:     req.ExpectedExpenses,
	})
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	if h.store != nil {
		record := &database.ROIRecord{
			Location:         req.Location,
			PropertyType:     req.PropertyType,
			InvestmentGoal:   req.InvestmentGoal,
			InvestmentAmount: req.PurchasePrice + req.AdditionalInvestment,
			TimeframeYears:   req.Timeframe,
			TotalROI:         result.ROIPercentage,
			AnnualizedROI:    result.AnnualROI,
			BreakevenMonths:  result.BreakevenMonths,
		}
		if err := h.store.SaveROI(record); err != nil {
			h.logger.WithError(err).Warn("Failed to persist ROI calculation")
		}
	}

	success(c, result)
}

// ROIHistory lists stored ROI calculations for a location.
func (h *Handler) ROIHistory(c *gin.Context) {
	location := c.Query("location")
	if location == "" {
		badRequest(c, "Location is required")
		return
	}
	limit := intQuery(c, "limit", 10)

	records, err := h.store.ROIHistory(location, limit)
	if err != nil {
		serverError(c, "Failed to fetch ROI history")
		return
	}
	if records == nil {
		records = []database.ROIRecord{}
	}
	success(c, records)
}
