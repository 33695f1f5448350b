package models

import "time"

// SensorReading is append-only. ZoneName is stored denormalized so readings
// survive zone renames and deletes.
type SensorReading struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ZoneName  string    `json:"zone_name" gorm:"index;not null"`
	Metric    string    `json:"metric" gorm:"index;not null"`
	Value     float64   `json:"value" gorm:"not null"`
	Timestamp time.Time `json:"ts" gorm:"column:ts;index"`
}
