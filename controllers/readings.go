package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mandeepmildura/irrigation-web-mvp/config"
	"github.com/mandeepmildura/irrigation-web-mvp/models"
)

// CreateReading appends one sensor reading. The server assigns the
// timestamp; readings arrive in real time or not at all.
func CreateReading(c *gin.Context) {
	var req models.ReadingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reading payload"})
		return
	}

	reading := models.SensorReading{
		ZoneName:  req.ZoneName,
		Metric:    req.Metric,
		Value:     *req.Value,
		Timestamp: time.Now().UTC(),
	}
	if err := config.DB.Create(&reading).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store reading"})
		return
	}

	Broadcast("reading", reading)
	c.JSON(http.StatusOK, reading)
}

// ListReadings returns the most recent readings, newest first, optionally
// filtered by zone or metric.
func ListReadings(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	q := config.DB.Order("ts desc").Limit(limit)
	if zoneName := c.Query("zone_name"); zoneName != "" {
		q = q.Where("zone_name = ?", zoneName)
	}
	if metric := c.Query("metric"); metric != "" {
		q = q.Where("metric = ?", metric)
	}

	var readings []models.SensorReading
	if err := q.Find(&readings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch readings"})
		return
	}
	c.JSON(http.StatusOK, readings)
}
