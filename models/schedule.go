package models

import "time"

// Schedule fires on exact HH:MM minutes in the configured timezone.
// LastRunMinute remembers the last local minute a run was recorded for,
// so a minute that spans several ticks still produces at most one run.
type Schedule struct {
	ID                      uint      `json:"id" gorm:"primaryKey"`
	ZoneID                  uint      `json:"zone_id" gorm:"index;not null"`
	StartTime               string    `json:"start_time" gorm:"type:char(5);not null"`
	DurationMinutes         int       `json:"duration_minutes" gorm:"not null"`
	Enabled                 bool      `json:"enabled"`
	DaysOfWeek              string    `json:"days_of_week" gorm:"not null;default:'*'"`
	SkipIfMoistureOver      *float64  `json:"skip_if_moisture_over"`
	MoistureLookbackMinutes int       `json:"moisture_lookback_minutes" gorm:"default:120"`
	LastRunMinute           *string   `json:"last_run_minute" gorm:"type:varchar(16)"`
	CreatedAt               time.Time `json:"created_at"`
}
