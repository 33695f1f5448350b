package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mandeepmildura/irrigation-web-mvp/config"
	"github.com/mandeepmildura/irrigation-web-mvp/models"
	"github.com/mandeepmildura/irrigation-web-mvp/scheduler"
	"github.com/mandeepmildura/irrigation-web-mvp/utils"
)

// CreateSchedule attaches a watering schedule to a zone. Validation happens
// here in full so the tick loop only ever sees well-formed rows.
func CreateSchedule(c *gin.Context) {
	var req models.ScheduleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule payload"})
		return
	}

	if !utils.ValidStartTime(req.StartTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_time must be HH:MM between 00:00 and 23:59"})
		return
	}
	if req.DurationMinutes < 1 || req.DurationMinutes > 1440 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "duration_minutes must be between 1 and 1440"})
		return
	}
	if req.SkipIfMoistureOver != nil && *req.SkipIfMoistureOver < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "skip_if_moisture_over must not be negative"})
		return
	}
	lookback := scheduler.DefaultLookbackMinutes
	if req.MoistureLookbackMinutes != nil {
		lookback = *req.MoistureLookbackMinutes
		if lookback < 1 || lookback > 1440 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "moisture_lookback_minutes must be between 1 and 1440"})
			return
		}
	}
	days, err := utils.NormalizeDays(req.DaysOfWeek)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var zone models.Zone
	if err := config.DB.First(&zone, req.ZoneID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Zone not found"})
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	schedule := models.Schedule{
		ZoneID:                  zone.ID,
		StartTime:               req.StartTime,
		DurationMinutes:         req.DurationMinutes,
		Enabled:                 enabled,
		DaysOfWeek:              days,
		SkipIfMoistureOver:      req.SkipIfMoistureOver,
		MoistureLookbackMinutes: lookback,
	}
	if err := config.DB.Create(&schedule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create schedule"})
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// ListSchedules returns every schedule, oldest first.
func ListSchedules(c *gin.Context) {
	var schedules []models.Schedule
	if err := config.DB.Order("id").Find(&schedules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedules"})
		return
	}
	c.JSON(http.StatusOK, schedules)
}

// GetSchedule returns one schedule by id.
func GetSchedule(c *gin.Context) {
	var schedule models.Schedule
	if err := config.DB.First(&schedule, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// DeleteSchedule removes one schedule by id.
func DeleteSchedule(c *gin.Context) {
	var schedule models.Schedule
	if err := config.DB.First(&schedule, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}
	if err := config.DB.Delete(&schedule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete schedule"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted"})
}
