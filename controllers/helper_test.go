package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/mandeepmildura/irrigation-web-mvp/config"
	"github.com/mandeepmildura/irrigation-web-mvp/models"
	"github.com/mandeepmildura/irrigation-web-mvp/scheduler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTest swaps the shared store for a fresh in-memory one and returns a
// router with the same routes main registers. Handlers read package globals,
// so these tests must not run in parallel.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	config.DB = db
	config.SetDBReady(true)
	Runner = scheduler.New(scheduler.Config{DB: db, Logger: zerolog.Nop()})
	t.Cleanup(func() {
		config.DB = nil
		config.SetDBReady(false)
		Runner = nil
	})

	r := gin.New()
	r.GET("/health", Health)
	r.GET("/now", Now)
	r.GET("/zones", ListZones)
	r.GET("/zones/:id", GetZone)
	r.POST("/zones", CreateZone)
	r.DELETE("/zones/:id", DeleteZone)
	r.GET("/schedules", ListSchedules)
	r.GET("/schedules/:id", GetSchedule)
	r.POST("/schedules", CreateSchedule)
	r.DELETE("/schedules/:id", DeleteSchedule)
	r.POST("/run/:zone_name", TriggerRun)
	r.GET("/runs", ListRuns)
	r.POST("/readings", CreateReading)
	r.GET("/readings", ListReadings)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, w.Body.String())
	}
}

func seedZone(t *testing.T, name string) models.Zone {
	t.Helper()
	zone := models.Zone{Name: name}
	if err := config.DB.Create(&zone).Error; err != nil {
		t.Fatalf("seed zone: %v", err)
	}
	return zone
}
