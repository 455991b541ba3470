package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes mounts every API group on the router.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	economic := router.Group("/api/economic-trends")
	{
		economic.GET("", handler.EconomicTrends)
		economic.GET("/interest-rates", handler.InterestRates)
		economic.GET("/inflation", handler.Inflation)
		economic.GET("/gdp", handler.GDP)
		economic.GET("/forecast", handler.MarketForecast)
	}

	property := router.Group("/api/property-price")
	{
		property.POST("/predict", handler.PredictPrice)
		property.GET("/history", handler.PriceHistory)
		property.GET("/valuation", handler.PropertyValuation)
	}

	investment := router.Group("/api/investment-timing")
	{
		investment.POST("/recommend", handler.RecommendInvestment)
		investment.GET("/history", handler.InvestmentHistory)
		investment.GET("/momentum", handler.PriceMomentum)
		investment.POST("/roi", handler.InvestmentROI)
	}

	roi := router.Group("/api/roi-calculator")
	{
		roi.POST("/calculate", handler.CalculateROI)
		roi.GET("/history", handler.ROIHistory)
	}

	location := router.Group("/api/location-intelligence")
	{
		location.GET("/score", handler.LocationScore)
		location.GET("/compare", handler.CompareLocations)
		location.GET("/heatmap", handler.LocationHeatmap)
	}

	construction := router.Group("/api/construction-planning")
	{
		construction.POST("/estimate", handler.EstimateConstruction)
		construction.GET("/materials", handler.MaterialPrices)
		construction.GET("/weather", handler.ConstructionWeather)
		construction.POST("/optimal-timing", handler.OptimalConstructionTiming)
	}

	dashboard := router.Group("/api/dashboard")
	{
		dashboard.GET("/summary", handler.DashboardSummary)
		dashboard.GET("/market-indicators", handler.MarketIndicators)
	}

	alerts := router.Group("/api/alerts")
	{
		alerts.POST("/create", handler.CreateAlert)
		alerts.GET("/list", handler.ListAlerts)
		alerts.DELETE("/delete/:id", handler.DeleteAlert)
		alerts.POST("/test", handler.TestNotification)
	}

	router.GET("/api/health", handler.Health)
}
