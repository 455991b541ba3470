package construction

import (
	"math"
	"sort"
	"time"

	"smartestate/server/internal/models"
)

// Flexibility levels controlling how close to the single best weather
// window the optimizer must stay.
const (
	FlexibilityLow    = "low"
	FlexibilityMedium = "medium"
	FlexibilityHigh   = "high"
)

// Timeline optionally constrains when construction may start and by when it
// must complete.
type Timeline struct {
	EarliestStart    string `json:"earliest_start"`
	LatestCompletion string `json:"latest_completion"`
}

type weatherWindow struct {
	startMonth int
	score      float64
	startDate  time.Time
}

// OptimalStartTiming ranks 3-month rolling weather windows across a
// 12-month horizon, applies the timeline constraint when given, and picks a
// window per the flexibility level. The material purchase recommendation
// lands 30-60 days before the start, never in the past.
func (p *Planner) OptimalStartTiming(location string, areaSqft float64, timeline *Timeline, flexibility string) models.StartTiming {
	forecast := p.WeatherForecast(location, 12)
	now := p.nowFn()

	windows := make([]weatherWindow, 0, len(forecast)-3)
	for i := 0; i+3 < len(forecast); i++ {
		var sum float64
		for _, m := range forecast[i : i+3] {
			sum += float64(m.FavorableDays)
		}
		windows = append(windows, weatherWindow{
			startMonth: i,
			score:      sum / 3,
			startDate:  now.AddDate(0, 0, 30*i),
		})
	}

	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].score > windows[j].score
	})

	if timeline != nil && timeline.EarliestStart != "" && timeline.LatestCompletion != "" {
		if filtered := filterByTimeline(windows, areaSqft, *timeline); len(filtered) > 0 {
			windows = filtered
		}
	}

	var selected weatherWindow
	switch {
	case flexibility == FlexibilityLow:
		selected = windows[0]
	case flexibility == FlexibilityMedium && len(windows) >= 3:
		selected = windows[p.rng.Intn(3)]
	case flexibility == FlexibilityMedium:
		selected = windows[0]
	case len(windows) >= 5:
		selected = windows[p.rng.Intn(5)]
	default:
		selected = windows[0]
	}

	purchaseDate := selected.startDate.AddDate(0, 0, -(30 + p.rng.Intn(31)))
	if purchaseDate.Before(now) {
		purchaseDate = now.AddDate(0, 0, 15)
	}

	return models.StartTiming{
		StartDate:            selected.startDate.Format("2006-01-02"),
		StartMonthIndex:      selected.startMonth,
		WeatherScore:         selected.score,
		Confidence:           p.uniform(0.75, 0.95),
		MaterialPurchaseTime: purchaseDate.Format("2006-01-02"),
	}
}

func filterByTimeline(windows []weatherWindow, areaSqft float64, timeline Timeline) []weatherWindow {
	earliest, err := time.Parse("2006-01-02", timeline.EarliestStart)
	if err != nil {
		return nil
	}
	latest, err := time.Parse("2006-01-02", timeline.LatestCompletion)
	if err != nil {
		return nil
	}

	// The constraint check assumes a residential build time.
	completionMonths := EstimateCompletionMonths(areaSqft, models.PropertyResidential)

	filtered := make([]weatherWindow, 0, len(windows))
	for _, w := range windows {
		completion := w.startDate.AddDate(0, 0, int(30*completionMonths))
		if !w.startDate.Before(earliest) && !completion.After(latest) {
			filtered = append(filtered, w)
		}
	}
	return filtered
}

// EstimateCompletionMonths estimates build duration: a month per thousand
// square feet, longer for commercial and industrial, plus a buffer of at
// least one month.
func EstimateCompletionMonths(areaSqft float64, propertyType string) float64 {
	baseTime := areaSqft / 1000

	switch propertyType {
	case models.PropertyCommercial:
		baseTime *= 1.5
	case models.PropertyIndustrial:
		baseTime *= 1.2
	}

	buffer := math.Max(1, baseTime*0.2)
	return math.Round((baseTime+buffer)*10) / 10
}

// RelevantWeather trims a forecast to the months covered by the build.
func RelevantWeather(forecast []models.MonthlyWeather, startDate string, durationMonths float64) []models.MonthlyWeather {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return forecast
	}
	startMonth := start.Format("2006-01")

	startIndex := -1
	for i, month := range forecast {
		if month.Month == startMonth {
			startIndex = i
			break
		}
	}
	if startIndex == -1 {
		return forecast
	}

	endIndex := startIndex + int(durationMonths)
	if endIndex > len(forecast) {
		endIndex = len(forecast)
	}
	return forecast[startIndex:endIndex]
}
