package controllers

import (
	"net/http"
	"testing"

	"github.com/mandeepmildura/irrigation-web-mvp/config"
)

func TestHealth(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp map[string]any
	decodeJSON(t, w, &resp)
	if resp["ok"] != true {
		t.Errorf("ok = %v, want true", resp["ok"])
	}
	if resp["db_ready"] != true {
		t.Errorf("db_ready = %v, want true", resp["db_ready"])
	}
	if _, found := resp["ts"]; !found {
		t.Error("ts missing from health response")
	}
}

func TestHealthReportsStoreDown(t *testing.T) {
	r := setupTest(t)
	config.SetDBReady(false)

	w := doJSON(t, r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp map[string]any
	decodeJSON(t, w, &resp)
	if resp["db_ready"] != false {
		t.Errorf("db_ready = %v, want false", resp["db_ready"])
	}
}

func TestNow(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodGet, "/now", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp map[string]any
	decodeJSON(t, w, &resp)
	for _, key := range []string{"local", "tz", "utc"} {
		if _, found := resp[key]; !found {
			t.Errorf("%s missing from now response", key)
		}
	}
	if resp["tz"] != LocalTZ.String() {
		t.Errorf("tz = %v, want %v", resp["tz"], LocalTZ.String())
	}
}
