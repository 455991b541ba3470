package database

import (
	"time"

	"smartestate/server/internal/models"
)

// IndicatorRecord is one stored economic indicator observation. The
// type+country+date triple is unique.
type IndicatorRecord struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	IndicatorType string    `gorm:"index:idx_indicator,unique" json:"indicator_type"`
	Country       string    `gorm:"index:idx_indicator,unique" json:"country"`
	Date          time.Time `gorm:"index:idx_indicator,unique" json:"date"`
	Value         float64   `json:"value"`
	Forecast      *float64  `json:"forecast"`
	Source        string    `json:"source"`
	CreatedAt     time.Time `json:"created_at"`
}

// PredictionRecord is a stored property price prediction.
type PredictionRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Location       string    `gorm:"index" json:"location"`
	PropertyType   string    `json:"property_type"`
	AreaSqft       float64   `json:"area_sqft"`
	PredictedPrice float64   `json:"predicted_price"`
	PricePerSqft   float64   `json:"price_per_sqft"`
	Confidence     float64   `json:"confidence"`
	CreatedAt      time.Time `json:"created_at"`
}

// LocationScoreRecord is a stored location intelligence score.
type LocationScoreRecord struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Location         string    `gorm:"index" json:"location"`
	TotalScore       float64   `json:"total_score"`
	SchoolsScore     float64   `json:"schools_score"`
	HospitalsScore   float64   `json:"hospitals_score"`
	TransportScore   float64   `json:"transport_score"`
	CrimeScore       float64   `json:"crime_score"`
	GreenZonesScore  float64   `json:"green_zones_score"`
	DevelopmentScore float64   `json:"development_score"`
	CreatedAt        time.Time `json:"created_at"`
}

// RecommendationRecord is a stored investment timing recommendation.
type RecommendationRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Location       string    `gorm:"index" json:"location"`
	PropertyType   string    `json:"property_type"`
	InvestmentGoal string    `json:"investment_goal"`
	Recommendation string    `json:"recommendation"`
	Confidence     float64   `json:"confidence"`
	EstimatedPrice float64   `json:"estimated_price"`
	ExpectedROI    float64   `json:"expected_roi"`
	CreatedAt      time.Time `json:"created_at"`
}

// ROIRecord is a stored standalone ROI calculation.
type ROIRecord struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Location         string    `gorm:"index" json:"location"`
	PropertyType     string    `json:"property_type"`
	InvestmentGoal   string    `json:"investment_goal"`
	InvestmentAmount float64   `json:"investment_amount"`
	TimeframeYears   int       `json:"timeframe_years"`
	TotalROI         float64   `json:"total_roi"`
	AnnualizedROI    float64   `json:"annualized_roi"`
	BreakevenMonths  float64   `json:"breakeven_months"`
	CreatedAt        time.Time `json:"created_at"`
}

// ConstructionPlanRecord is a stored construction plan summary.
type ConstructionPlanRecord struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Location         string    `gorm:"index" json:"location"`
	ProjectType      string    `json:"project_type"`
	AreaSqft         float64   `json:"area_sqft"`
	OptimalStartDate string    `json:"optimal_start_date"`
	EstimatedCost    float64   `json:"estimated_cost"`
	CreatedAt        time.Time `json:"created_at"`
}

// AlertRecord is a stored alert subscription, mirroring models.Alert.
type AlertRecord struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             string    `json:"user_id"`
	AlertType          string    `json:"alert_type"`
	Location           string    `json:"location"`
	PropertyType       string    `json:"property_type"`
	Condition          string    `json:"condition"`
	ThresholdValue     float64   `json:"threshold_value"`
	NotificationMethod string    `json:"notification_method"`
	PhoneNumber        string    `json:"phone_number,omitempty"`
	Email              string    `json:"email,omitempty"`
	Frequency          string    `json:"frequency"`
	Active             bool      `json:"active"`
	CreatedAt          time.Time `json:"created_at"`
}

// Alert converts the record to its model form.
func (r AlertRecord) Alert() models.Alert {
	return models.Alert{
		ID:                 int64(r.ID),
		UserID:             r.UserID,
		AlertType:          r.AlertType,
		Location:           r.Location,
		PropertyType:       r.PropertyType,
		Condition:          r.Condition,
		ThresholdValue:     r.ThresholdValue,
		NotificationMethod: r.NotificationMethod,
		PhoneNumber:        r.PhoneNumber,
		Email:              r.Email,
		Frequency:          r.Frequency,
		Active:             r.Active,
		CreatedAt:          r.CreatedAt,
	}
}
