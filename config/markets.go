package config

import "strings"

// MarketPrices holds per-square-foot base prices by property type.
type MarketPrices struct {
	Residential float64
	Commercial  float64
	Land        float64
}

// CityMarkets maps known cities to their base unit prices. Unknown cities
// fall back to DefaultPrices.
var CityMarkets = map[string]MarketPrices{
	"New York":      {Residential: 750, Commercial: 950, Land: 450},
	"Los Angeles":   {Residential: 650, Commercial: 850, Land: 400},
	"Chicago":       {Residential: 350, Commercial: 500, Land: 200},
	"Houston":       {Residential: 200, Commercial: 350, Land: 100},
	"Phoenix":       {Residential: 180, Commercial: 300, Land: 90},
	"Philadelphia":  {Residential: 225, Commercial: 375, Land: 125},
	"San Antonio":   {Residential: 160, Commercial: 280, Land: 80},
	"San Diego":     {Residential: 570, Commercial: 780, Land: 350},
	"Dallas":        {Residential: 210, Commercial: 360, Land: 110},
	"San Francisco": {Residential: 1050, Commercial: 1200, Land: 600},
}

// DefaultPrices apply when a location has no entry in CityMarkets.
var DefaultPrices = MarketPrices{Residential: 300, Commercial: 400, Land: 150}

// GrowthRates holds annual appreciation rates by property type.
type GrowthRates struct {
	Residential float64
	Commercial  float64
	Land        float64
}

// CityGrowthRates maps known cities to their annual growth rates.
var CityGrowthRates = map[string]GrowthRates{
	"New York":      {Residential: 0.04, Commercial: 0.035, Land: 0.045},
	"Los Angeles":   {Residential: 0.045, Commercial: 0.04, Land: 0.05},
	"Chicago":       {Residential: 0.025, Commercial: 0.02, Land: 0.03},
	"Houston":       {Residential: 0.035, Commercial: 0.03, Land: 0.04},
	"Phoenix":       {Residential: 0.05, Commercial: 0.045, Land: 0.055},
	"Philadelphia":  {Residential: 0.025, Commercial: 0.02, Land: 0.03},
	"San Antonio":   {Residential: 0.04, Commercial: 0.035, Land: 0.045},
	"San Diego":     {Residential: 0.045, Commercial: 0.04, Land: 0.05},
	"Dallas":        {Residential: 0.04, Commercial: 0.035, Land: 0.045},
	"San Francisco": {Residential: 0.035, Commercial: 0.03, Land: 0.04},
}

// DefaultGrowthRates apply when a location has no entry in CityGrowthRates.
var DefaultGrowthRates = GrowthRates{Residential: 0.03, Commercial: 0.025, Land: 0.035}

// PriceToRentRatios maps cities to annual price-to-rent ratios by type.
var PriceToRentRatios = map[string]map[string]float64{
	"New York":      {"residential": 20, "commercial": 12},
	"Los Angeles":   {"residential": 22, "commercial": 13},
	"Chicago":       {"residential": 16, "commercial": 10},
	"Houston":       {"residential": 14, "commercial": 9},
	"Phoenix":       {"residential": 15, "commercial": 10},
	"Philadelphia":  {"residential": 15, "commercial": 10},
	"San Antonio":   {"residential": 14, "commercial": 9},
	"San Diego":     {"residential": 20, "commercial": 12},
	"Dallas":        {"residential": 15, "commercial": 10},
	"San Francisco": {"residential": 25, "commercial": 14},
}

// DefaultPriceToRentRatios apply for unknown cities or property types.
var DefaultPriceToRentRatios = map[string]float64{
	"residential": 18,
	"commercial":  11,
	"land":        40,
}

// ConstructionCostFactors are city multipliers on base construction cost.
var ConstructionCostFactors = map[string]float64{
	"New York":      1.5,
	"Los Angeles":   1.35,
	"Chicago":       1.2,
	"Houston":       0.95,
	"Phoenix":       0.9,
	"Philadelphia":  1.15,
	"San Antonio":   0.9,
	"San Diego":     1.25,
	"Dallas":        0.95,
	"San Francisco": 1.6,
}

// HotMarkets are cities given appreciation and ROI multipliers.
var HotMarkets = []string{
	"New York",
	"San Francisco",
	"Los Angeles",
	"Seattle",
	"Austin",
	"Miami",
}

// IsHotMarket reports whether the location names any hot-market city.
func IsHotMarket(location string) bool {
	for _, market := range HotMarkets {
		if strings.Contains(location, market) {
			return true
		}
	}
	return false
}

// CityFromLocation extracts the city part of a "City, State" location string.
func CityFromLocation(location string) string {
	city, _, _ := strings.Cut(location, ",")
	return strings.TrimSpace(city)
}

// BasePrice returns the per-sqft base price for a location and property type.
// Unknown cities use the default table; an unknown type returns 300.
func BasePrice(location, propertyType string) float64 {
	prices, ok := CityMarkets[CityFromLocation(location)]
	if !ok {
		prices = DefaultPrices
	}
	switch propertyType {
	case "residential":
		return prices.Residential
	case "commercial":
		return prices.Commercial
	case "land":
		return prices.Land
	default:
		return 300
	}
}

// GrowthRate returns the annual appreciation rate for a location and
// property type, defaulting to 0.03 for unknown types.
func GrowthRate(location, propertyType string) float64 {
	rates, ok := CityGrowthRates[CityFromLocation(location)]
	if !ok {
		rates = DefaultGrowthRates
	}
	switch propertyType {
	case "residential":
		return rates.Residential
	case "commercial":
		return rates.Commercial
	case "land":
		return rates.Land
	default:
		return 0.03
	}
}

// PriceToRentRatio returns the annual price-to-rent ratio for a location and
// property type.
func PriceToRentRatio(location, propertyType string) float64 {
	if ratios, ok := PriceToRentRatios[CityFromLocation(location)]; ok {
		if ratio, ok := ratios[propertyType]; ok {
			return ratio
		}
	}
	if ratio, ok := DefaultPriceToRentRatios[propertyType]; ok {
		return ratio
	}
	return 18
}

// ConstructionCostFactor returns the city cost multiplier, 1.0 if unknown.
func ConstructionCostFactor(location string) float64 {
	if factor, ok := ConstructionCostFactors[CityFromLocation(location)]; ok {
		return factor
	}
	return 1.0
}
