package models

import "time"

// IrrigationRun records a watering event. Source is "manual" for the HTTP
// trigger or "schedule:<id>" when the scheduler fired it.
type IrrigationRun struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	ZoneName        string    `json:"zone_name" gorm:"index;not null"`
	DurationMinutes int       `json:"duration_minutes" gorm:"not null"`
	Source          string    `json:"source" gorm:"index;not null"`
	Timestamp       time.Time `json:"ts" gorm:"column:ts;index"`
}
