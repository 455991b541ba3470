package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	// Registers the sqlite3 driver the gorm dialect rides on.
	_ "github.com/mattn/go-sqlite3"

	"smartestate/server/internal/models"
)

// Store is the sqlite-backed record store for produced analysis artifacts.
type Store struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// New opens (or creates) the database at path and runs migrations. A nil
// logger falls back to the logrus standard logger.
func New(path string, logger *logrus.Logger) (*Store, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database at %s: %w", path, err)
	}

	store := &Store{db: db, logger: logger}
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	return s.db.AutoMigrate(
		&IndicatorRecord{},
		&PredictionRecord{},
		&LocationScoreRecord{},
		&RecommendationRecord{},
		&ROIRecord{},
		&ConstructionPlanRecord{},
		&AlertRecord{},
	)
}

// SaveIndicators upserts a batch of observations in one transaction. An
// observation is identified by type, country and date; re-fetching a window
// must not duplicate rows.
func (s *Store) SaveIndicators(series models.IndicatorSeries) error {
	if len(series) == 0 {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, ind := range series {
			record := IndicatorRecord{
				IndicatorType: ind.IndicatorType,
				Country:       ind.Country,
				Value:         ind.Value,
				Date:          ind.Date,
				Forecast:      ind.Forecast,
				Source:        ind.Source,
			}
			err := tx.Where(IndicatorRecord{
				IndicatorType: ind.IndicatorType,
				Country:       ind.Country,
				Date:          ind.Date,
			}).Assign(map[string]interface{}{
				"value":    ind.Value,
				"forecast": ind.Forecast,
				"source":   ind.Source,
			}).FirstOrCreate(&record).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// IndicatorSeries returns stored observations of one indicator for a country
// within [start, end], date-ascending.
func (s *Store) IndicatorSeries(indicatorType, country string, start, end time.Time) (models.IndicatorSeries, error) {
	var records []IndicatorRecord
	err := s.db.
		Where("indicator_type = ? AND country = ? AND date BETWEEN ? AND ?", indicatorType, country, start, end).
		Order("date asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	series := make(models.IndicatorSeries, 0, len(records))
	for _, r := range records {
		series = append(series, models.EconomicIndicator{
			IndicatorType: r.IndicatorType,
			Value:         r.Value,
			Date:          r.Date,
			Country:       r.Country,
			Forecast:      r.Forecast,
			Source:        r.Source,
		})
	}
	return series, nil
}

// SavePrediction records a price prediction result.
func (s *Store) SavePrediction(record *PredictionRecord) error {
	return s.db.Create(record).Error
}

// PredictionHistory returns the most recent predictions for a location,
// newest first. An empty location matches all; a non-positive limit means
// no limit.
func (s *Store) PredictionHistory(location string, limit int) ([]PredictionRecord, error) {
	var records []PredictionRecord
	q := s.db.Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if location != "" {
		q = q.Where("location = ?", location)
	}
	return records, q.Find(&records).Error
}

// SaveLocationScore records a computed location intelligence score.
func (s *Store) SaveLocationScore(score models.LocationScore) error {
	return s.db.Create(&LocationScoreRecord{
		Location:         score.Location,
		TotalScore:       score.TotalScore,
		SchoolsScore:     score.SchoolsScore,
		HospitalsScore:   score.HospitalsScore,
		TransportScore:   score.TransportScore,
		CrimeScore:       score.CrimeScore,
		GreenZonesScore:  score.GreenZonesScore,
		DevelopmentScore: score.DevelopmentScore,
	}).Error
}

// TopLocationScores returns the highest-scoring stored locations.
func (s *Store) TopLocationScores(limit int) ([]LocationScoreRecord, error) {
	var records []LocationScoreRecord
	return records, s.db.Order("total_score desc").Limit(limit).Find(&records).Error
}

// SaveRecommendation records an investment timing recommendation.
func (s *Store) SaveRecommendation(record *RecommendationRecord) error {
	return s.db.Create(record).Error
}

// RecommendationHistory returns recent recommendations for a location,
// newest first. An empty location matches all; a non-positive limit means
// no limit.
func (s *Store) RecommendationHistory(location string, limit int) ([]RecommendationRecord, error) {
	var records []RecommendationRecord
	q := s.db.Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if location != "" {
		q = q.Where("location = ?", location)
	}
	return records, q.Find(&records).Error
}

// SaveROI records a standalone ROI calculation.
func (s *Store) SaveROI(record *ROIRecord) error {
	return s.db.Create(record).Error
}

// ROIHistory returns recent ROI calculations, newest first. An empty
// location matches all; a non-positive limit means no limit.
func (s *Store) ROIHistory(location string, limit int) ([]ROIRecord, error) {
	var records []ROIRecord
	q := s.db.Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if location != "" {
		q = q.Where("location = ?", location)
	}
	return records, q.Find(&records).Error
}

// SaveConstructionPlan records a construction plan summary.
func (s *Store) SaveConstructionPlan(record *ConstructionPlanRecord) error {
	return s.db.Create(record).Error
}

// CreateAlert stores a validated alert subscription.
func (s *Store) CreateAlert(record *AlertRecord) error {
	return s.db.Create(record).Error
}

// ListAlerts returns alerts, optionally only active ones, newest first.
func (s *Store) ListAlerts(activeOnly bool) ([]AlertRecord, error) {
	var records []AlertRecord
	q := s.db.Order("created_at desc")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	return records, q.Find(&records).Error
}

// DeleteAlert removes an alert by id. Returns gorm.ErrRecordNotFound when no
// such alert exists.
func (s *Store) DeleteAlert(id uint) error {
	result := s.db.Delete(&AlertRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Counts reports per-entity row counts for the dashboard summary.
func (s *Store) Counts() (map[string]int64, error) {
	counts := make(map[string]int64)
	tables := map[string]interface{}{
		"indicators":         &IndicatorRecord{},
		"predictions":        &PredictionRecord{},
		"location_scores":    &LocationScoreRecord{},
		"recommendations":    &RecommendationRecord{},
		"roi_calculations":   &ROIRecord{},
		"construction_plans": &ConstructionPlanRecord{},
		"alerts":             &AlertRecord{},
	}
	for name, model := range tables {
		var n int64
		if err := s.db.Model(model).Count(&n).Error; err != nil {
			return nil, err
		}
		counts[name] = n
	}
	return counts, nil
}
