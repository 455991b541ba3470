package models

import "time"

// Alert condition and notification constants.
const (
	AlertPriceChange           = "price_change"
	AlertInvestmentOpportunity = "investment_opportunity"
	AlertMarketTrend           = "market_trend"

	NotifySMS   = "sms"
	NotifyEmail = "email"
	NotifyBoth  = "both"
)

// Alert is a user-defined market condition watch. Delivery of triggered
// alerts goes through the notification collaborator; the core only stores
// and evaluates them.
type Alert struct {
	ID                 int64     `json:"id"`
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
