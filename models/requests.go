package models

type ZoneCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type ScheduleCreateRequest struct {
	ZoneID                  uint     `json:"zone_id" binding:"required"`
	StartTime               string   `json:"start_time" binding:"required"`
	DurationMinutes         int      `json:"duration_minutes" binding:"required"`
	Enabled                 *bool    `json:"enabled"`
	DaysOfWeek              string   `json:"days_of_week"`
	SkipIfMoistureOver      *float64 `json:"skip_if_moisture_over"`
	MoistureLookbackMinutes *int     `json:"moisture_lookback_minutes"`
}

// ReadingCreateRequest takes Value as a pointer so an explicit 0.0 still
// passes the required check.
type ReadingCreateRequest struct {
	ZoneName string   `json:"zone_name" binding:"required"`
	Metric   string   `json:"metric" binding:"required"`
	Value    *float64 `json:"value" binding:"required"`
}
