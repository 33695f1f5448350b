// Package ingest bridges MQTT sensor traffic into the readings table, for
// field sensors that publish instead of calling the HTTP API.
package ingest

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/mandeepmildura/irrigation-web-mvp/models"
	"github.com/mandeepmildura/irrigation-web-mvp/scheduler"
)

// Bridge subscribes to a readings topic and appends each message to the
// store. A token bucket caps the insert rate so one chattering sensor
// cannot flood the table.
type Bridge struct {
	db      *gorm.DB
	client  mqtt.Client
	topic   string
	log     zerolog.Logger
	limiter *rate.Limiter
	notify  func(event string, payload any)
}

type readingMessage struct {
	ZoneName string   `json:"zone_name"`
	Metric   string   `json:"metric"`
	Value    *float64 `json:"value"`
}

// NewBridge dials the broker and waits for the first connection.
func NewBridge(db *gorm.DB, broker, clientID, topic string, log zerolog.Logger, notify func(event string, payload any)) (*Bridge, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return &Bridge{
		db:      db,
		client:  client,
		topic:   topic,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(20), 40),
		notify:  notify,
	}, nil
}

// Start subscribes to the readings topic. Messages are handled on paho's
// own goroutines from here on.
func (b *Bridge) Start() error {
	token := b.client.Subscribe(b.topic, 0, b.handle)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribe %s: %w", b.topic, token.Error())
	}
	b.log.Info().Str("topic", b.topic).Msg("mqtt ingest subscribed")
	return nil
}

func (b *Bridge) handle(_ mqtt.Client, msg mqtt.Message) {
	if !b.limiter.Allow() {
		b.log.Warn().Str("topic", msg.Topic()).Msg("reading dropped, rate limit")
		return
	}

	var payload readingMessage
	if err := json.Unmarshal(msg.Payload(), &payload); err != nil {
		b.log.Warn().Err(err).Str("topic", msg.Topic()).Msg("unparseable reading")
		return
	}
	if payload.ZoneName == "" || payload.Value == nil {
		b.log.Warn().Str("topic", msg.Topic()).Msg("reading missing zone_name or value")
		return
	}
	metric := payload.Metric
	if metric == "" {
		metric = scheduler.MoistureMetric
	}

	reading := models.SensorReading{
		ZoneName:  payload.ZoneName,
		Metric:    metric,
		Value:     *payload.Value,
		Timestamp: time.Now().UTC(),
	}
	if err := b.db.Create(&reading).Error; err != nil {
		b.log.Error().Err(err).Str("zone", reading.ZoneName).Msg("storing mqtt reading failed")
		return
	}
	if b.notify != nil {
		b.notify("reading", reading)
	}
}

// Close drops the subscription and disconnects.
func (b *Bridge) Close() {
	b.client.Unsubscribe(b.topic).Wait()
	b.client.Disconnect(1000)
}
