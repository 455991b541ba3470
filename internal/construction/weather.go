// Package construction synthesizes monthly construction weather, scores
// favorable windows, and selects optimal start timing under budget and
// timeline constraints.
package construction

import (
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"smartestate/server/internal/models"
)

// regionBaseTemps hold per-season base temperatures by climate region.
var regionBaseTemps = map[string]map[string]float64{
	"north":   {"summer": 80, "winter": 30, "spring": 60, "fall": 65},
	"south":   {"summer": 95, "winter": 50, "spring": 75, "fall": 80},
	"east":    {"summer": 85, "winter": 35, "spring": 65, "fall": 70},
	"west":    {"summer": 90, "winter": 45, "spring": 70, "fall": 75},
	"midwest": {"summer": 85, "winter": 25, "spring": 60, "fall": 65},
}

type Planner struct {
	rng    *rand.Rand
	nowFn  func() time.Time
	logger *logrus.Logger
}

func NewPlanner(rng *rand.Rand, logger *logrus.Logger) *Planner {
	if logger == nil {
		logger = logrus.New()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Planner{rng: rng, nowFn: time.Now, logger: logger}
}

// SetNowFunc overrides the clock used to anchor forecasts and start dates.
func (p *Planner) SetNowFunc(nowFn func() time.Time) {
	p.nowFn = nowFn
}

// Region buckets a location into a climate region by state/city keywords,
// defaulting to midwest.
func Region(location string) string {
	lower := strings.ToLower(location)
	switch {
	case strings.Contains(lower, "new york") || strings.Contains(lower, "boston"):
		return "east"
	case strings.Contains(lower, "florida") || strings.Contains(lower, "texas"):
		return "south"
	case strings.Contains(lower, "california") || strings.Contains(lower, "oregon"):
		return "west"
	default:
		return "midwest"
	}
}

// WeatherForecast synthesizes a monthly forecast for the location's climate
// region: seasonal base temperature with jitter, precipitation days, and
// favorable construction days peaking in summer.
func (p *Planner) WeatherForecast(location string, months int) []models.MonthlyWeather {
	region := Region(location)
	bases := regionBaseTemps[region]

	now := p.nowFn()
	forecast := make([]models.MonthlyWeather, 0, months)
	for i := 0; i < months; i++ {
		monthDate := now.AddDate(0, 0, 30*i)
		season := seasonOf(monthDate.Month())

		avgTemp := bases[season] + p.uniform(-5, 5)

		precipitationDays := int(math.Round(p.uniform(5, 15)))
		switch season {
		case "spring":
			precipitationDays += 3
		case "summer", "fall":
			precipitationDays -= 2
		}

		var favorableDays int
		switch season {
		case "summer":
			favorableDays = int(math.Round(p.uniform(20, 28)))
		case "spring", "fall":
			favorableDays = int(math.Round(p.uniform(15, 25)))
		default:
			favorableDays = int(math.Round(p.uniform(8, 18)))
		}

		forecast = append(forecast, models.MonthlyWeather{
			Month:             monthDate.Format("2006-01"),
			AvgTemp:           math.Round(avgTemp*10) / 10,
			PrecipitationDays: precipitationDays,
			FavorableDays:     favorableDays,
			Season:            season,
		})
	}
	return forecast
}

func seasonOf(month time.Month) string {
	switch {
	case month >= time.March && month <= time.May:
		return "spring"
	case month >= time.June && month <= time.August:
		return "summer"
	case month >= time.September && month <= time.November:
		return "fall"
	default:
		return "winter"
	}
}

func (p *Planner) uniform(lo, hi float64) float64 {
	return lo + p.rng.Float64()*(hi-lo)
}
