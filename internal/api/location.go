package api

import (
	"strings"

	"github.com/gin-gonic/gin"

	"smartestate/server/internal/models"
)

// LocationScore computes the composite intelligence score for a location.
// Repeat requests for the same location are served from the scorer's cache.
func (h *Handler) LocationScore(c *gin.Context) {
	location := c.Query("location")
	if location == "" {
		badRequest(c, "Missing required parameter: location")
		return
	}
	radius := intQuery(c, "radius", 1000)

	score, err := h.scorer.Score(c.Request.Context(), location, radius)
	if err != nil {
		serverError(c, "Failed to calculate location score")
		return
	}
	h.persistLocationScore(score)

	success(c, score)
}

// CompareLocations scores a comma-separated list of locations side by side.
func (h *Handler) CompareLocations(c *gin.Context) {
	raw := c.Query("locations")
	if raw == "" {
		badRequest(c, "Missing required parameter: locations")
		return
	}
	radius := intQuery(c, "radius", 1000)

	var locations []string
	for _, loc := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(loc); trimmed != "" {
			locations = append(locations, trimmed)
		}
	}

	scores := h.scorer.Compare(c.Request.Context(), locations, radius)
	for _, score := range scores {
		h.persistLocationScore(score)
	}

	success(c, scores)
}

// LocationHeatmap samples a spatial grid of desirability weights around a
// center point.
func (h *Handler) LocationHeatmap(c *gin.Context) {
	center := c.Query("center")
	if center == "" {
		badRequest(c, "Missing required parameter: center")
		return
	}
	radius := intQuery(c, "radius", 5000)
	heatmapType := c.DefaultQuery("type", "all")

	heatmap, err := h.scorer.Heatmap(c.Request.Context(), center, radius, heatmapType)
	if err != nil {
		serverError(c, "Failed to generate heatmap data")
		return
	}

	success(c, heatmap)
}

func (h *Handler) persistLocationScore(score models.LocationScore) {
	if h.store == nil {
		return
	}
	if err := h.store.SaveLocationScore(score); err != nil {
		h.logger.WithError(err).Warn("Failed to persist location score")
	}
}
