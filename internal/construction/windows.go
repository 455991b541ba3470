package construction

import (
	"math"
	"time"

	"smartestate/server/internal/models"
)

// ScoreWindow rates one month for construction suitability. The favorable
// day count is discounted for temperature extremes and heavy precipitation.
func ScoreWindow(month models.MonthlyWeather) models.WindowScore {
	tempFactor := 1.0
	if month.AvgTemp > 90 {
		tempFactor = 0.8
	} else if month.AvgTemp < 40 {
		tempFactor = 0.7
	}

	precipFactor := 1.0
	if month.PrecipitationDays > 15 {
		precipFactor = 0.7
	} else if month.PrecipitationDays > 10 {
		precipFactor = 0.85
	}

	score := float64(month.FavorableDays) * tempFactor * precipFactor
	return models.WindowScore{
		Month:         month.Month,
		Score:         math.Round(score*10) / 10,
		FavorableDays: month.FavorableDays,
		Rating:        windowRating(score),
	}
}

func windowRating(score float64) string {
	switch {
	case score > 22:
		return "Excellent"
	case score > 18:
		return "Good"
	case score > 14:
		return "Average"
	default:
		return "Poor"
	}
}

// IdentifyWindows finds favorable construction windows in a forecast. Low
// flexibility demands runs of at least three consecutive good months;
// otherwise months are grouped by season with average ratings.
func IdentifyWindows(forecast []models.MonthlyWeather, flexibility string) []models.ConstructionWindow {
	scores := make([]models.WindowScore, 0, len(forecast))
	for _, month := range forecast {
		scores = append(scores, ScoreWindow(month))
	}

	if flexibility == FlexibilityLow {
		return consecutiveWindows(scores)
	}
	return seasonWindows(scores)
}

func consecutiveWindows(scores []models.WindowScore) []models.ConstructionWindow {
	windows := make([]models.ConstructionWindow, 0)
	var run []models.WindowScore

	for _, score := range scores {
		if score.Score <= 18 {
			run = nil
			continue
		}
		run = append(run, score)
		if len(run) < 3 {
			continue
		}

		var sum float64
		for _, s := range run {
			sum += s.Score
		}
		avg := sum / float64(len(run))

		rating := "Good"
		if avg > 22 {
			rating = "Excellent"
		}
		windows = append(windows, models.ConstructionWindow{
			Start:        run[0].Month,
			End:          run[len(run)-1].Month,
			Duration:     len(run),
			AverageScore: math.Round(avg*10) / 10,
			Rating:       rating,
		})
	}
	return windows
}

func seasonWindows(scores []models.WindowScore) []models.ConstructionWindow {
	windows := make([]models.ConstructionWindow, 0)

	for _, score := range scores {
		season := seasonLabel(score.Month)
		if len(windows) == 0 || windows[len(windows)-1].Season != season {
			windows = append(windows, models.ConstructionWindow{
				Season: season,
				Start:  score.Month,
				Months: []models.WindowScore{score},
			})
			continue
		}
		last := &windows[len(windows)-1]
		last.Months = append(last.Months, score)
		last.End = score.Month
	}

	for i := range windows {
		var sum float64
		for _, m := range windows[i].Months {
			sum += m.Score
		}
		avg := sum / float64(len(windows[i].Months))
		windows[i].AverageScore = math.Round(avg*10) / 10
		windows[i].Rating = windowRating(avg)
	}
	return windows
}

func seasonLabel(month string) string {
	parsed, err := time.Parse("2006-01", month)
	if err != nil {
		return "Winter"
	}
	switch seasonOf(parsed.Month()) {
	case "spring":
		return "Spring"
	case "summer":
		return "Summer"
	case "fall":
		return "Fall"
	default:
		return "Winter"
	}
}
