package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"smartestate/server/internal/construction"
	"smartestate/server/internal/database"
)

type estimateRequest struct {
	Location     string  `json:"location"`
	PropertyType string  `json:"property_type"`
	AreaSqft     float64 `json:"area_sqft"`
	QualityLevel string  `json:"quality_level"`
	Stories      int     `json:"stories"`
}

// EstimateConstruction prices a build from current material quotes and
// stores the resulting plan summary.
func (h *Handler) EstimateConstruction(c *gin.Context) {
	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if req.Location == "" || req.PropertyType == "" || req.AreaSqft == 0 {
		badRequest(c, "Missing required parameters: location, property_type, and area_sqft are required")
		return
	}
	if req.QualityLevel == "" {
		req.QualityLevel = "standard"
	}
	if req.Stories == 0 {
		req.Stories = 1
	}

	prices := h.materialPriceMap(c)
	estimate, err := h.planner.EstimateCosts(req.Location, req.PropertyType, req.AreaSqft, req.QualityLevel, req.Stories, prices)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	if h.store != nil {
		timing := h.planner.OptimalStartTiming(req.Location, req.AreaSqft, nil, construction.FlexibilityMedium)
		record := &database.ConstructionPlanRecord{
			Location:         req.Location,
			ProjectType:      req.PropertyType,
			AreaSqft:         req.AreaSqft,
			OptimalStartDate: timing.StartDate,
			EstimatedCost:    estimate.TotalCost,
		}
		if err := h.store.SaveConstructionPlan(record); err != nil {
			h.logger.WithError(err).Warn("Failed to persist construction plan")
		}
	}

	success(c, estimate)
}

// MaterialPrices returns current construction material quotes, optionally
// filtered to a comma-separated list. Unknown materials report zero.
func (h *Handler) MaterialPrices(c *gin.Context) {
	prices := h.materialPriceMap(c)

	if raw := c.Query("materials"); raw != "" {
		filtered := make(map[string]float64)
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			filtered[name] = prices[name]
		}
		prices = filtered
	}

	success(c, gin.H{
		"materials":    prices,
		"last_updated": h.nowFn().Format(time.RFC3339),
		"currency":     "USD",
		"notes":        "Prices are average national values and may vary by region",
	})
}

// ConstructionWeather forecasts monthly construction weather for a location.
func (h *Handler) ConstructionWeather(c *gin.Context) {
	location := c.Query("location")
	if location == "" {
		badRequest(c, "Missing required parameter: location")
		return
	}
	months := intQuery(c, "months", 3)

	success(c, gin.H{
		"location": location,
		"forecast": h.planner.WeatherForecast(location, months),
	})
}

type optimalTimingRequest struct {
	Location     string                 `json:"location"`
	PropertyType string                 `json:"property_type"`
	AreaSqft     float64                `json:"area_sqft"`
	Budget       float64                `json:"budget"`
	Timeline     *construction.Timeline `json:"timeline"`
	Flexibility  string                 `json:"flexibility"`
}

// OptimalConstructionTiming picks the best start window for a build within
// budget. An insufficient budget short-circuits with a warning payload.
func (h *Handler) OptimalConstructionTiming(c *gin.Context) {
	var req optimalTimingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if req.Location == "" || req.PropertyType == "" || req.AreaSqft == 0 || req.Budget == 0 {
		badRequest(c, "Missing required parameters: location, property_type, area_sqft, and budget are required")
		return
	}
	if req.Flexibility == "" {
		req.Flexibility = construction.FlexibilityMedium
	}

	prices := h.materialPriceMap(c)
	estimate, err := h.planner.EstimateCosts(req.Location, req.PropertyType, req.AreaSqft, "standard", 1, prices)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	if estimate.TotalCost > req.Budget {
		c.JSON(http.StatusOK, gin.H{
			"status":  "warning",
			"message": "Budget is insufficient for the planned construction",
			"data": gin.H{
				"estimated_cost": estimate.TotalCost,
				"budget":         req.Budget,
				"shortfall":      estimate.TotalCost - req.Budget,
				"recommendations": []string{
					"Consider reducing the area",
					"Choose a lower quality level",
					"Wait for material prices to decrease",
					"Increase your budget",
				},
			},
		})
		return
	}

	timing := h.planner.OptimalStartTiming(req.Location, req.AreaSqft, req.Timeline, req.Flexibility)
	forecast := h.planner.WeatherForecast(req.Location, 12)
	durationMonths := construction.EstimateCompletionMonths(req.AreaSqft, req.PropertyType)

	completion := ""
	if start, err := time.Parse("2006-01-02", timing.StartDate); err == nil {
		completion = start.AddDate(0, 0, int(30*durationMonths)).Format("2006-01-02")
	}

	currentPrices := make(map[string]float64, 3)
	for _, name := range []string{"lumber", "concrete", "steel"} {
		if price, ok := prices[name]; ok {
			currentPrices[name] = price
		}
	}

	success(c, gin.H{
		"optimal_timing": gin.H{
			"start_date":           timing.StartDate,
			"estimated_completion": completion,
			"duration_months":      durationMonths,
			"confidence":           timing.Confidence,
		},
		"cost_summary": gin.H{
			"total_cost":    estimate.TotalCost,
			"cost_per_sqft": estimate.CostPerSqft,
			"budget":        req.Budget,
			"buffer":        req.Budget - estimate.TotalCost,
		},
		"material_recommendations": gin.H{
			"best_purchase_time": timing.MaterialPurchaseTime,
			"current_prices":     currentPrices,
		},
		"construction_windows":   construction.IdentifyWindows(forecast, req.Flexibility),
		"weather_considerations": construction.RelevantWeather(forecast, timing.StartDate, durationMonths),
	})
}

// materialPriceMap flattens the material quotes into a name-to-price map.
func (h *Handler) materialPriceMap(c *gin.Context) map[string]float64 {
	quotes := h.economic.MaterialPrices(c.Request.Context())
	prices := make(map[string]float64, len(quotes))
	for _, quote := range quotes {
		prices[quote.Material] = quote.Price
	}
	return prices
}
