package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mandeepmildura/irrigation-web-mvp/config"
	"github.com/mandeepmildura/irrigation-web-mvp/models"
)

// CreateZone registers a new irrigation zone.
func CreateZone(c *gin.Context) {
	var req models.ZoneCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid zone payload"})
		return
	}

	var existing models.Zone
	if err := config.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Zone name already exists"})
		return
	}

	zone := models.Zone{Name: req.Name, Description: req.Description}
	if err := config.DB.Create(&zone).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create zone"})
		return
	}
	c.JSON(http.StatusOK, zone)
}

// ListZones returns every zone, oldest first.
func ListZones(c *gin.Context) {
	var zones []models.Zone
	if err := config.DB.Order("id").Find(&zones).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch zones"})
		return
	}
	c.JSON(http.StatusOK, zones)
}

// GetZone returns one zone by id.
func GetZone(c *gin.Context) {
	var zone models.Zone
	if err := config.DB.First(&zone, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Zone not found"})
		return
	}
	c.JSON(http.StatusOK, zone)
}

// DeleteZone removes a zone together with its schedules. Readings and runs
// reference the zone by name only and stay behind as history.
func DeleteZone(c *gin.Context) {
	var zone models.Zone
	if err := config.DB.First(&zone, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Zone not found"})
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	schedulesResult := tx.Where("zone_id = ?", zone.ID).Delete(&models.Schedule{})
	if schedulesResult.Error != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete zone schedules"})
		return
	}
	if err := tx.Delete(&zone).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete zone"})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":           "Zone deleted",
		"deleted_schedules": schedulesResult.RowsAffected,
	})
}
