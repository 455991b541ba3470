package api

import (
	"github.com/gin-gonic/gin"

	"smartestate/server/internal/economic"
	"smartestate/server/internal/models"
)

// EconomicTrends returns the full market picture for a country: the three
// core indicator series, housing data and a direction forecast.
func (h *Handler) EconomicTrends(c *gin.Context) {
	country := h.country(c)
	period := c.DefaultQuery("period", "1y")
	start, end := economic.ResolveDateRange(period, h.nowFn())
	ctx := c.Request.Context()

	interest, err := h.economic.FetchIndicatorSeries(ctx, models.IndicatorInterestRate, country, start, end)
	if err != nil {
		serverError(c, err.Error())
		return
	}
	inflation, _ := h.economic.FetchIndicatorSeries(ctx, models.IndicatorInflationRate, country, start, end)
	gdp, _ := h.economic.FetchIndicatorSeries(ctx, models.IndicatorGDPGrowth, country, start, end)
	housing, _ := h.economic.FetchIndicatorSeries(ctx, models.IndicatorHousingIndex, country, start, end)

	forecast := h.forecaster.Forecast(interest, inflation, gdp)

	h.persistIndicators(interest, inflation, gdp, housing)

	success(c, gin.H{
		"interest_rates":  interest,
		"inflation_data":  inflation,
		"gdp_data":        gdp,
		"housing_data":    housing,
		"market_forecast": forecast,
	})
}

// InterestRates returns the interest rate series for a country and period.
func (h *Handler) InterestRates(c *gin.Context) {
	h.singleIndicator(c, models.IndicatorInterestRate)
}

// Inflation returns the inflation series for a country and period.
func (h *Handler) Inflation(c *gin.Context) {
	h.singleIndicator(c, models.IndicatorInflationRate)
}

// GDP returns the GDP growth series for a country and period.
func (h *Handler) GDP(c *gin.Context) {
	h.singleIndicator(c, models.IndicatorGDPGrowth)
}

func (h *Handler) singleIndicator(c *gin.Context, indicatorType string) {
	country := h.country(c)
	period := c.DefaultQuery("period", "1y")
	start, end := economic.ResolveDateRange(period, h.nowFn())

	series, err := h.economic.FetchIndicatorSeries(c.Request.Context(), indicatorType, country, start, end)
	if err != nil {
		serverError(c, err.Error())
		return
	}
	h.persistIndicators(series)
	success(c, series)
}

// MarketForecast returns a one-year market direction forecast for a country.
func (h *Handler) MarketForecast(c *gin.Context) {
	country := h.country(c)
	start, end := economic.ResolveDateRange("1y", h.nowFn())
	ctx := c.Request.Context()

	interest, err := h.economic.FetchIndicatorSeries(ctx, models.IndicatorInterestRate, country, start, end)
	if err != nil {
		serverError(c, err.Error())
		return
	}
	inflation, _ := h.economic.FetchIndicatorSeries(ctx, models.IndicatorInflationRate, country, start, end)
	gdp, _ := h.economic.FetchIndicatorSeries(ctx, models.IndicatorGDPGrowth, country, start, end)

	success(c, h.forecaster.Forecast(interest, inflation, gdp))
}

// persistIndicators saves the fetched series so dashboard reads and alert
// sweeps see fresh data. Storage failures are logged, never surfaced.
func (h *Handler) persistIndicators(series ...models.IndicatorSeries) {
	if h.store == nil {
		return
	}
	for _, s := range series {
		if len(s) == 0 {
			continue
		}
		if err := h.store.SaveIndicators(s); err != nil {
			h.logger.WithError(err).Warn("Failed to persist indicator series")
		}
	}
}
