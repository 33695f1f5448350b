package scheduler

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mandeepmildura/irrigation-web-mvp/models"
)

// MoistureMetric is the reading metric the pre-run gate consults.
const MoistureMetric = "moisture"

// DefaultLookbackMinutes bounds how far back the gate searches when a
// schedule carries no explicit lookback.
const DefaultLookbackMinutes = 120

// SkipForMoisture decides whether a due schedule is held back because the
// zone is already wet. The gate is opt-in per schedule. Only the newest
// reading inside the lookback window counts, and the threshold is inclusive.
// A zone with no usable reading waters anyway: a dead sensor must not
// strand the plants.
func SkipForMoisture(db *gorm.DB, s models.Schedule, zoneName string, nowUTC time.Time) (bool, float64, error) {
	if s.SkipIfMoistureOver == nil {
		return false, 0, nil
	}
	lookback := s.MoistureLookbackMinutes
	if lookback <= 0 {
		lookback = DefaultLookbackMinutes
	}
	cutoff := nowUTC.Add(-time.Duration(lookback) * time.Minute)

	var reading models.SensorReading
	err := db.Where("zone_name = ? AND metric = ? AND ts >= ?", zoneName, MoistureMetric, cutoff).
		Order("ts desc").
		First(&reading).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}
	return reading.Value >= *s.SkipIfMoistureOver, reading.Value, nil
}
