package actuator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// Actuator starts a watering cycle on whatever is attached to a zone. The
// run record is already durable before an actuator is invoked; failures are
// reported to the caller for logging and never undo the record.
type Actuator interface {
	StartWatering(ctx context.Context, zoneName string, minutes int) error
}

// Noop satisfies Actuator without touching hardware.
type Noop struct{}

func (Noop) StartWatering(context.Context, string, int) error { return nil }

// Webhook posts start commands to an HTTP relay controller. The circuit
// breaker opens after repeated failures so a dead relay stops costing a
// full timeout on every run.
type Webhook struct {
	url    string
	client *http.Client
	cb     *gobreaker.CircuitBreaker
}

func NewWebhook(url string) *Webhook {
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:     "actuator",
			Interval: time.Minute,
			Timeout:  30 * time.Second,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= 3
			},
		}),
	}
}

type startCommand struct {
	ZoneName string `json:"zone_name"`
	Minutes  int    `json:"minutes"`
}

func (w *Webhook) StartWatering(ctx context.Context, zoneName string, minutes int) error {
	_, err := w.cb.Execute(func() (any, error) {
		body, err := json.Marshal(startCommand{ZoneName: zoneName, Minutes: minutes})
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		res, err := w.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()
		if res.StatusCode < 200 || res.StatusCode >= 300 {
			return nil, fmt.Errorf("POST %s -> %s", w.url, res.Status)
		}
		return nil, nil
	})
	return err
}
