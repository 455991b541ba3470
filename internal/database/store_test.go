package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"smartestate/server/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	return store
}

func TestSaveIndicators_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	series := models.IndicatorSeries{
		{IndicatorType: models.IndicatorInterestRate, Value: 4.25, Date: base, Country: "United States", Source: "Trading Economics"},
		{IndicatorType: models.IndicatorInterestRate, Value: 4.0, Date: base.AddDate(0, 1, 0), Country: "United States", Source: "Trading Economics"},
		{IndicatorType: models.IndicatorInflationRate, Value: 2.9, Date: base, Country: "United States", Source: "Trading Economics"},
	}
	require.NoError(t, store.SaveIndicators(series))

	got, err := store.IndicatorSeries(models.IndicatorInterestRate, "United States", base, base.AddDate(0, 2, 0))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 4.25, got[0].Value)
	assert.True(t, got[0].Date.Before(got[1].Date))
}

func TestSaveIndicators_UpsertDoesNotDuplicate(t *testing.T) {
	store := newTestStore(t)

	date := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	first := models.IndicatorSeries{{IndicatorType: models.IndicatorGDPGrowth, Value: 2.1, Date: date, Country: "United States"}}
	require.NoError(t, store.SaveIndicators(first))

	updated := models.IndicatorSeries{{IndicatorType: models.IndicatorGDPGrowth, Value: 2.4, Date: date, Country: "United States"}}
	require.NoError(t, store.SaveIndicators(updated))

	got, err := store.IndicatorSeries(models.IndicatorGDPGrowth, "United States", date.AddDate(0, 0, -1), date.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2.4, got[0].Value)
}

func TestSaveIndicators_EmptyIsNoop(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.SaveIndicators(nil))
}

func TestPredictionHistory_FiltersAndOrders(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SavePrediction(&PredictionRecord{Location: "Chicago", PredictedPrice: 350000}))
	require.NoError(t, store.SavePrediction(&PredictionRecord{Location: "Dallas", PredictedPrice: 280000}))
	require.NoError(t, store.SavePrediction(&PredictionRecord{Location: "Chicago", PredictedPrice: 360000}))

	chicago, err := store.PredictionHistory("Chicago", 10)
	require.NoError(t, err)
	require.Len(t, chicago, 2)

	all, err := store.PredictionHistory("", 2)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTopLocationScores(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveLocationScore(models.LocationScore{Location: "Phoenix", TotalScore: 61.2}))
	require.NoError(t, store.SaveLocationScore(models.LocationScore{Location: "Austin", TotalScore: 74.8}))
	require.NoError(t, store.SaveLocationScore(models.LocationScore{Location: "Houston", TotalScore: 58.3}))

	top, err := store.TopLocationScores(2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Austin", top[0].Location)
	assert.Equal(t, "Phoenix", top[1].Location)
}

func TestRecommendationHistory(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveRecommendation(&RecommendationRecord{Location: "Dallas", Recommendation: models.RecommendBuy, Confidence: 0.8}))
	require.NoError(t, store.SaveRecommendation(&RecommendationRecord{Location: "Dallas", Recommendation: models.RecommendWait, Confidence: 0.7}))

	got, err := store.RecommendationHistory("Dallas", 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	none, err := store.RecommendationHistory("Boston", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestROIHistory(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveROI(&ROIRecord{Location: "Miami", InvestmentGoal: models.GoalRent, TotalROI: 42.5}))
	require.NoError(t, store.SaveROI(&ROIRecord{Location: "Tampa", InvestmentGoal: models.GoalHold, TotalROI: 18.0}))

	got, err := store.ROIHistory("Miami", 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 42.5, got[0].TotalROI)

	all, err := store.ROIHistory("", 5)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAlerts_CreateListDelete(t *testing.T) {
	store := newTestStore(t)

	record := &AlertRecord{
		AlertType:          models.AlertPriceChange,
		Location:           "Chicago",
		ThresholdValue:     5,
		NotificationMethod: models.NotifyEmail,
		Email:              "buyer@example.com",
		Active:             true,
	}
	require.NoError(t, store.CreateAlert(record))
	require.NotZero(t, record.ID)

	inactive := &AlertRecord{AlertType: models.AlertMarketTrend, Location: "Chicago", NotificationMethod: models.NotifyEmail, Email: "x@example.com"}
	require.NoError(t, store.CreateAlert(inactive))

	active, err := store.ListAlerts(true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "buyer@example.com", active[0].Alert().Email)

	all, err := store.ListAlerts(false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, store.DeleteAlert(record.ID))
	assert.ErrorIs(t, store.DeleteAlert(record.ID), gorm.ErrRecordNotFound)
}

func TestCounts(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SavePrediction(&PredictionRecord{Location: "Chicago"}))
	require.NoError(t, store.SaveConstructionPlan(&ConstructionPlanRecord{Location: "Dallas", EstimatedCost: 500000}))

	counts, err := store.Counts()
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts["predictions"])
	assert.Equal(t, int64(1), counts["construction_plans"])
	assert.Equal(t, int64(0), counts["alerts"])
}
