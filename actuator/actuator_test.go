package actuator

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sony/gobreaker"
)

func TestWebhookPostsStartCommand(t *testing.T) {
	var body atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q, want application/json", ct)
		}
		raw, _ := io.ReadAll(r.Body)
		body.Store(raw)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	hook := NewWebhook(srv.URL)
	if err := hook.StartWatering(context.Background(), "veggie-bed", 15); err != nil {
		t.Fatalf("StartWatering: %v", err)
	}

	var cmd struct {
		ZoneName string `json:"zone_name"`
		Minutes  int    `json:"minutes"`
	}
	if err := json.Unmarshal(body.Load().([]byte), &cmd); err != nil {
		t.Fatalf("decode command: %v", err)
	}
	if cmd.ZoneName != "veggie-bed" || cmd.Minutes != 15 {
		t.Errorf("command = %+v, want veggie-bed for 15 minutes", cmd)
	}
}

func TestWebhookRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	hook := NewWebhook(srv.URL)
	if err := hook.StartWatering(context.Background(), "veggie-bed", 15); err == nil {
		t.Fatal("non-2xx response passed silently")
	}
}

func TestWebhookBreakerOpensAfterRepeatedFailures(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	hook := NewWebhook(srv.URL)
	for i := 0; i < 3; i++ {
		if err := hook.StartWatering(context.Background(), "veggie-bed", 15); err == nil {
			t.Fatalf("attempt %d passed against a failing relay", i+1)
		}
	}
	before := hits.Load()

	err := hook.StartWatering(context.Background(), "veggie-bed", 15)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("err = %v, want open-circuit", err)
	}
	if hits.Load() != before {
		t.Errorf("open breaker still reached the relay (%d -> %d hits)", before, hits.Load())
	}
}

func TestNoop(t *testing.T) {
	if err := (Noop{}).StartWatering(context.Background(), "veggie-bed", 1); err != nil {
		t.Fatalf("Noop: %v", err)
	}
}
