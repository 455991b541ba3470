package api

import (
	"errors"
	"net/http"
	"strconv"
	"unicode"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"smartestate/server/internal/models"
)

type createAlertRequest struct {
	UserID             string  `json:"user_id"`
	AlertType          string  `json:"alert_type"`
	Location           string  `json:"location"`
	PropertyType       string  `json:"property_type"`
	Condition          string  `json:"condition"`
	ThresholdValue     float64 `json:"threshold_value"`
	NotificationMethod string  `json:"notification_method"`
	Frequency          string  `json:"frequency"`
	PhoneNumber        string  `json:"phone_number"`
	Email              string  `json:"email"`
}

// CreateAlert stores a market condition watch for a user.
func (h *Handler) CreateAlert(c *gin.Context) {
	var req createAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	id, err := h.alerts.Create(models.Alert{
		UserID:             req.UserID,
		AlertType:          req.AlertType,
		Location:           req.Location,
		PropertyType:       req.PropertyType,
		Condition:          req.Condition,
		ThresholdValue:     req.ThresholdValue,
		NotificationMethod: req.NotificationMethod,
		Frequency:          req.Frequency,
		PhoneNumber:        req.PhoneNumber,
		Email:              req.Email,
	})
	if err != nil {
		badRequest(c, capitalizeFirst(err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"message":  "Alert created successfully",
		"alert_id": id,
	})
}

// ListAlerts returns a user's stored alerts.
func (h *Handler) ListAlerts(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		badRequest(c, "User ID is required")
		return
	}

	records, err := h.alerts.List(userID)
	if err != nil {
		serverError(c, "Failed to fetch alerts")
		return
	}
	if records == nil {
		records = []models.Alert{}
	}
	success(c, records)
}

// DeleteAlert removes an alert by id.
func (h *Handler) DeleteAlert(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		badRequest(c, "Invalid alert id")
		return
	}

	if err := h.alerts.Delete(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Failed to delete alert or alert not found",
			})
			return
		}
		serverError(c, "Failed to delete alert")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Alert deleted successfully"})
}

type testNotificationRequest struct {
	NotificationMethod string `json:"notification_method"`
	PhoneNumber        string `json:"phone_number"`
	Email              string `json:"email"`
	Message            string `json:"message"`
}

// TestNotification sends a one-off message to verify delivery setup.
func (h *Handler) TestNotification(c *gin.Context) {
	var req testNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if req.NotificationMethod == "" {
		badRequest(c, "Notification method is required")
		return
	}
	if (req.NotificationMethod == models.NotifySMS || req.NotificationMethod == models.NotifyBoth) && req.PhoneNumber == "" {
		badRequest(c, "Phone number is required for SMS notifications")
		return
	}
	if (req.NotificationMethod == models.NotifyEmail || req.NotificationMethod == models.NotifyBoth) && req.Email == "" {
		badRequest(c, "Email is required for email notifications")
		return
	}
	if req.Message == "" {
		req.Message = "This is a test notification"
	}

	results := gin.H{}
	probe := models.Alert{
		NotificationMethod: req.NotificationMethod,
		PhoneNumber:        req.PhoneNumber,
		Email:              req.Email,
	}
	if err := h.alerts.Notify(c.Request.Context(), probe, req.Message); err != nil {
		results["delivery"] = err.Error()
	} else {
		results["delivery"] = "ok"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Test notification(s) sent",
		"results": results,
	})
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
