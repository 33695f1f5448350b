package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mandeepmildura/irrigation-web-mvp/config"
)

// LocalTZ is the zone the scheduler matches minutes in, set at startup.
var LocalTZ = time.UTC

// Health reports liveness plus whether startup reached a migrated store.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"ts":       time.Now().UTC().Format(time.RFC3339),
		"db_ready": config.DBReady(),
	})
}

// Now returns the server's idea of local and UTC time, for sanity-checking
// schedule minutes from the dashboard.
func Now(c *gin.Context) {
	const layout = "2006-01-02 15:04:05"
	c.JSON(http.StatusOK, gin.H{
		"local": time.Now().In(LocalTZ).Format(layout),
		"tz":    LocalTZ.String(),
		"utc":   time.Now().UTC().Format(layout),
	})
}
