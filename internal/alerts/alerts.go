package alerts

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"smartestate/server/internal/database"
	"smartestate/server/internal/models"
)

// Conditions an alert can watch for.
const (
	ConditionAbove = "above"
	ConditionBelow = "below"
	ConditionEqual = "equal"
)

// Frequencies accepted on alert creation.
const (
	FrequencyImmediately = "immediately"
	FrequencyDaily       = "daily"
	FrequencyWeekly      = "weekly"
)

// Notifier delivers a triggered alert. Implementations own the transport;
// the core never sends SMS or email itself.
type Notifier interface {
	Notify(ctx context.Context, alert models.Alert, message string) error
}

// LogNotifier is the default Notifier. It only logs, which keeps alert
// evaluation usable before a delivery integration is configured.
type LogNotifier struct {
	Logger *logrus.Logger
}

func (n LogNotifier) Notify(_ context.Context, alert models.Alert, message string) error {
	logger := n.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger.WithFields(logrus.Fields{
		"alert_id": alert.ID,
		"method":   alert.NotificationMethod,
		"location": alert.Location,
	}).Info(message)
	return nil
}

// Store is the persistence surface the alert service needs.
type Store interface {
	CreateAlert(record *database.AlertRecord) error
	ListAlerts(activeOnly bool) ([]database.AlertRecord, error)
	DeleteAlert(id uint) error
}

// Service validates, stores and evaluates alert subscriptions.
type Service struct {
	store    Store
	notifier Notifier
	logger   *logrus.Logger
}

// NewService creates the alert service. A nil notifier defaults to the
// logging notifier and a nil logger to the logrus standard logger.
func NewService(store Store, notifier Notifier, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if notifier == nil {
		notifier = LogNotifier{Logger: logger}
	}
	return &Service{store: store, notifier: notifier, logger: logger}
}

// Validate checks an alert subscription for completeness. The notification
// method dictates which contact fields are required.
func Validate(alert models.Alert) error {
	switch {
	case alert.UserID == "", alert.AlertType == "", alert.Location == "",
		alert.PropertyType == "", alert.Condition == "",
		alert.ThresholdValue == 0, alert.NotificationMethod == "":
		return fmt.Errorf("missing required fields")
	}

	switch alert.Condition {
	case ConditionAbove, ConditionBelow, ConditionEqual:
	default:
		return fmt.Errorf("invalid condition %q", alert.Condition)
	}

	switch alert.NotificationMethod {
	case models.NotifySMS, models.NotifyEmail, models.NotifyBoth:
	default:
		return fmt.Errorf("invalid notification method %q", alert.NotificationMethod)
	}

	if (alert.NotificationMethod == models.NotifySMS || alert.NotificationMethod == models.NotifyBoth) && alert.PhoneNumber == "" {
		return fmt.Errorf("phone number is required for SMS notifications")
	}
	if (alert.NotificationMethod == models.NotifyEmail || alert.NotificationMethod == models.NotifyBoth) && alert.Email == "" {
		return fmt.Errorf("email is required for email notifications")
	}
	return nil
}

// Create validates and stores a new alert, returning its id. An empty
// frequency defaults to immediate delivery.
func (s *Service) Create(alert models.Alert) (uint, error) {
	if alert.Frequency == "" {
		alert.Frequency = FrequencyImmediately
	}
	if err := Validate(alert); err != nil {
		return 0, err
	}

	record := database.AlertRecord{
		UserID:             alert.UserID,
		AlertType:          alert.AlertType,
		Location:           alert.Location,
		PropertyType:       alert.PropertyType,
		Condition:          alert.Condition,
		ThresholdValue:     alert.ThresholdValue,
		NotificationMethod: alert.NotificationMethod,
		PhoneNumber:        alert.PhoneNumber,
		Email:              alert.Email,
		Frequency:          alert.Frequency,
		Active:             true,
	}
	if err := s.store.CreateAlert(&record); err != nil {
		return 0, fmt.Errorf("saving alert: %w", err)
	}
	return record.ID, nil
}

// List returns a user's alerts. An empty userID returns everything.
func (s *Service) List(userID string) ([]models.Alert, error) {
	records, err := s.store.ListAlerts(false)
	if err != nil {
		return nil, err
	}
	out := make([]models.Alert, 0, len(records))
	for _, r := range records {
		if userID != "" && r.UserID != userID {
			continue
		}
		out = append(out, r.Alert())
	}
	return out, nil
}

// Delete removes an alert by id.
func (s *Service) Delete(id uint) error {
	return s.store.DeleteAlert(id)
}

// Notify sends a one-off message through the configured notifier, outside
// any stored alert. Used to verify a user's delivery setup.
func (s *Service) Notify(ctx context.Context, alert models.Alert, message string) error {
	return s.notifier.Notify(ctx, alert, message)
}

// Triggered reports whether a current value satisfies the alert condition.
// Equality uses a small tolerance since watched values are floats.
func Triggered(alert models.Alert, current float64) bool {
	switch alert.Condition {
	case ConditionAbove:
		return current > alert.ThresholdValue
	case ConditionBelow:
		return current < alert.ThresholdValue
	case ConditionEqual:
		diff := current - alert.ThresholdValue
		return diff < 1e-9 && diff > -1e-9
	default:
		return false
	}
}

// ValueLookup resolves the current value an alert watches. The second return
// reports whether a value is available.
type ValueLookup func(alert models.Alert) (float64, bool)

// Sweep evaluates all active alerts against current values and notifies for
// each triggered one. Notification failures are logged, not returned; the
// sweep always covers every alert.
func (s *Service) Sweep(ctx context.Context, lookup ValueLookup) (int, error) {
	records, err := s.store.ListAlerts(true)
	if err != nil {
		return 0, fmt.Errorf("listing active alerts: %w", err)
	}

	triggered := 0
	for _, record := range records {
		alert := record.Alert()
		current, ok := lookup(alert)
		if !ok {
			continue
		}
		if !Triggered(alert, current) {
			continue
		}
		triggered++
		message := fmt.Sprintf("Alert %d: %s in %s is %s %.2f (current %.2f)",
			alert.ID, alert.AlertType, alert.Location, alert.Condition, alert.ThresholdValue, current)
		if err := s.notifier.Notify(ctx, alert, message); err != nil {
			s.logger.WithError(err).WithField("alert_id", alert.ID).Error("Failed to deliver alert notification")
		}
	}
	return triggered, nil
}
