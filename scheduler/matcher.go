package scheduler

import (
	"time"

	"github.com/mandeepmildura/irrigation-web-mvp/models"
	"github.com/mandeepmildura/irrigation-web-mvp/utils"
)

// Due reports whether the schedule should fire during the minute containing
// nowLocal. The start time must equal the current "HH:MM" exactly; a minute
// missed while the process was down stays missed, there is no catch-up.
// Duplicate firings within the same minute are the trigger marker's problem,
// not the matcher's.
func Due(s models.Schedule, nowLocal time.Time) bool {
	if !s.Enabled {
		return false
	}
	if s.StartTime != nowLocal.Format("15:04") {
		return false
	}
	return utils.DayMatches(s.DaysOfWeek, nowLocal.Weekday())
}
