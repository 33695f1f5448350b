package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mandeepmildura/irrigation-web-mvp/config"
	"github.com/mandeepmildura/irrigation-web-mvp/models"
	"github.com/mandeepmildura/irrigation-web-mvp/scheduler"
)

// Runner is the shared run executor, set once at startup.
var Runner *scheduler.Service

// TriggerRun starts a manual run for a zone name. The zone is not required
// to exist: the run log records what was asked for, and an operator testing
// a relay before registering the zone is a supported path.
func TriggerRun(c *gin.Context) {
	if Runner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Run executor not ready"})
		return
	}

	minutes := 10
	if raw := c.Query("minutes"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minutes must be an integer"})
			return
		}
		minutes = parsed
	}
	source := c.DefaultQuery("source", "manual")

	run, err := Runner.ExecuteRun(c.Param("zone_name"), minutes, source)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record run"})
		return
	}
	c.JSON(http.StatusOK, run)
}

// ListRuns returns run history, newest first, optionally filtered by zone.
func ListRuns(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	q := config.DB.Order("ts desc").Limit(limit)
	if zoneName := c.Query("zone_name"); zoneName != "" {
		q = q.Where("zone_name = ?", zoneName)
	}

	var runs []models.IrrigationRun
	if err := q.Find(&runs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch runs"})
		return
	}
	c.JSON(http.StatusOK, runs)
}
