package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/mandeepmildura/irrigation-web-mvp/config"
	"github.com/mandeepmildura/irrigation-web-mvp/models"
)

func TestTriggerRunDefaults(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/run/veggie-bed", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	var run models.IrrigationRun
	decodeJSON(t, w, &run)
	if run.ZoneName != "veggie-bed" {
		t.Errorf("zone = %q, want veggie-bed", run.ZoneName)
	}
	if run.DurationMinutes != 10 {
		t.Errorf("duration = %d, want default 10", run.DurationMinutes)
	}
	if run.Source != "manual" {
		t.Errorf("source = %q, want manual", run.Source)
	}
}

func TestTriggerRunClampsMinutes(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/run/veggie-bed?minutes=0", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	var run models.IrrigationRun
	decodeJSON(t, w, &run)
	if run.DurationMinutes != 1 {
		t.Errorf("duration = %d, want clamped 1", run.DurationMinutes)
	}
}

func TestTriggerRunRejectsBadMinutes(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/run/veggie-bed?minutes=soon", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestTriggerRunWithoutExecutor(t *testing.T) {
	r := setupTest(t)
	Runner = nil

	w := doJSON(t, r, http.MethodPost, "/run/veggie-bed", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func seedRun(t *testing.T, zone string, ts time.Time) {
	t.Helper()
	run := models.IrrigationRun{ZoneName: zone, DurationMinutes: 5, Source: "manual", Timestamp: ts.UTC()}
	if err := config.DB.Create(&run).Error; err != nil {
		t.Fatalf("seed run: %v", err)
	}
}

func TestListRuns(t *testing.T) {
	r := setupTest(t)
	base := time.Date(2025, 3, 4, 6, 0, 0, 0, time.UTC)
	seedRun(t, "veggie-bed", base)
	seedRun(t, "orchard", base.Add(1*time.Minute))
	seedRun(t, "veggie-bed", base.Add(2*time.Minute))

	w := doJSON(t, r, http.MethodGet, "/runs", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var runs []models.IrrigationRun
	decodeJSON(t, w, &runs)
	if len(runs) != 3 {
		t.Fatalf("run count = %d, want 3", len(runs))
	}
	if !runs[0].Timestamp.After(runs[1].Timestamp) || !runs[1].Timestamp.After(runs[2].Timestamp) {
		t.Errorf("runs not newest first: %v, %v, %v", runs[0].Timestamp, runs[1].Timestamp, runs[2].Timestamp)
	}

	w = doJSON(t, r, http.MethodGet, "/runs?zone_name=orchard", nil)
	decodeJSON(t, w, &runs)
	if len(runs) != 1 || runs[0].ZoneName != "orchard" {
		t.Errorf("filtered runs = %+v, want the single orchard run", runs)
	}

	w = doJSON(t, r, http.MethodGet, "/runs?limit=1", nil)
	decodeJSON(t, w, &runs)
	if len(runs) != 1 {
		t.Errorf("limited run count = %d, want 1", len(runs))
	}
}
