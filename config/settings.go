package config

import (
	"os"
	"strings"
	"time"
)

// Settings carries process configuration resolved from the environment.
type Settings struct {
	Port         string
	DatabaseURL  string
	Timezone     string
	TickInterval time.Duration
	ActuatorURL  string
	APIToken     string
	MQTTBroker   string
	MQTTTopic    string
	MQTTClientID string
	LogLevel     string
	CORSOrigins  string
}

// LoadSettings reads the environment. Optional integrations (actuator
// webhook, API token, MQTT bridge) stay off when their variable is unset.
func LoadSettings() Settings {
	return Settings{
		Port:         getenv("PORT", "8080"),
		DatabaseURL:  getenv("DATABASE_URL", "irrigation.db"),
		Timezone:     getenv("TZ", "Australia/Melbourne"),
		TickInterval: getenvDuration("TICK_INTERVAL", 20*time.Second),
		ActuatorURL:  os.Getenv("ACTUATOR_URL"),
		APIToken:     os.Getenv("API_TOKEN"),
		MQTTBroker:   os.Getenv("MQTT_BROKER"),
		MQTTTopic:    getenv("MQTT_TOPIC", "irrigation/readings"),
		MQTTClientID: getenv("MQTT_CLIENT_ID", "irrigation-web"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		CORSOrigins:  getenv("CORS_ORIGINS", "*"),
	}
}

// Origins splits the comma-separated CORS origin list.
func (s Settings) Origins() []string {
	parts := strings.Split(s.CORSOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// Location resolves the scheduling timezone, falling back to UTC when the
// host does not know the zone name.
func (s Settings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
