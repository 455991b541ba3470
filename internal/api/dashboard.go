package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"smartestate/server/internal/database"
	"smartestate/server/internal/economic"
	"smartestate/server/internal/models"
)

// DashboardSummary aggregates the market picture for a user's dashboard:
// latest indicator values, the market direction, local price trends and the
// user's alert and calculation activity.
func (h *Handler) DashboardSummary(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		badRequest(c, "User ID is required")
		return
	}
	location := c.DefaultQuery("location", h.config.Collaborators.DefaultCountry)
	now := h.nowFn()

	interest := h.indicatorWindow(c, models.IndicatorInterestRate, now.AddDate(0, 0, -90), now)
	inflation := h.indicatorWindow(c, models.IndicatorInflationRate, now.AddDate(0, 0, -90), now)
	gdp := h.indicatorWindow(c, models.IndicatorGDPGrowth, now.AddDate(0, 0, -90), now)

	forecast := h.forecaster.Forecast(interest, inflation, gdp)

	var propertyTrends []models.PropertyPrice
	if location != "" && location != h.config.Collaborators.DefaultCountry {
		start, end := economic.ResolveDateRange("1y", now)
		propertyTrends = h.predictor.SampleHistory(location, "", start, end)
	}

	alertsCount := 0
	var recentCalculations []database.ROIRecord
	if h.store != nil {
		if records, err := h.alerts.List(userID); err == nil {
			alertsCount = len(records)
		}
		if records, err := h.store.ROIHistory("", 5); err == nil {
			recentCalculations = records
		}
	}
	if recentCalculations == nil {
		recentCalculations = []database.ROIRecord{}
	}

	success(c, gin.H{
		"market_summary": gin.H{
			"interest_rate":    latestValue(interest),
			"inflation_rate":   latestValue(inflation),
			"gdp_growth":       latestValue(gdp),
			"market_direction": forecast.MarketDirection,
			"confidence":       forecast.Confidence,
		},
		"property_trends":      propertyTrends,
		"alerts_count":         alertsCount,
		"saved_searches_count": 5,
		"recent_calculations":  recentCalculations,
	})
}

// MarketIndicators returns the four core series shaped for dashboard charts.
func (h *Handler) MarketIndicators(c *gin.Context) {
	period := c.DefaultQuery("period", "1y")
	country := h.country(c)
	start, end := economic.ResolveDateRange(period, h.nowFn())

	chart := gin.H{}
	for key, indicatorType := range map[string]string{
		"interest_rates": models.IndicatorInterestRate,
		"inflation":      models.IndicatorInflationRate,
		"gdp":            models.IndicatorGDPGrowth,
		"housing_index":  models.IndicatorHousingIndex,
	} {
		series, err := h.economic.FetchIndicatorSeries(c.Request.Context(), indicatorType, country, start, end)
		if err != nil {
			serverError(c, err.Error())
			return
		}
		chart[key] = chartPoints(series)
	}

	success(c, chart)
}

// indicatorWindow reads a series from the store, falling back to the
// economic client when nothing is persisted for the window.
func (h *Handler) indicatorWindow(c *gin.Context, indicatorType string, start, end time.Time) models.IndicatorSeries {
	country := h.config.Collaborators.DefaultCountry
	if h.store != nil {
		series, err := h.store.IndicatorSeries(indicatorType, country, start, end)
		if err == nil && len(series) > 0 {
			return series
		}
	}
	series, err := h.economic.FetchIndicatorSeries(c.Request.Context(), indicatorType, country, start, end)
	if err != nil {
		h.logger.WithError(err).WithField("indicator", indicatorType).Warn("Failed to fetch indicator window")
		return nil
	}
	return series
}

type chartPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

func chartPoints(series models.IndicatorSeries) []chartPoint {
	points := make([]chartPoint, 0, len(series))
	for _, ind := range series.Sorted() {
		points = append(points, chartPoint{Date: ind.Date.Format("2006-01-02"), Value: ind.Value})
	}
	return points
}

// latestValue returns the newest observation's value, or nil for an empty
// series so the JSON field renders as null.
func latestValue(series models.IndicatorSeries) interface{} {
	sorted := series.Sorted()
	if len(sorted) == 0 {
		return nil
	}
	return sorted[len(sorted)-1].Value
}
