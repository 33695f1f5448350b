package scheduler

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mandeepmildura/irrigation-web-mvp/models"
)

// MinRunMinutes replaces a non-positive requested duration. A misconfigured
// schedule still waters briefly instead of logging a zero-length run.
const MinRunMinutes = 1

const actuatorTimeout = 30 * time.Second

// ExecuteRun appends a run to the log and kicks the actuator. This is the
// manual-trigger entry point; the tick shares insertRun inside its own
// transaction. The log is the truth: once the row is in, an actuator
// failure is only logged.
func (s *Service) ExecuteRun(zoneName string, minutes int, source string) (models.IrrigationRun, error) {
	run, err := s.insertRun(s.db, zoneName, minutes, source)
	if err != nil {
		return models.IrrigationRun{}, err
	}
	CountRun(source)
	s.fireActuator(run)
	s.emit("run", run)
	return run, nil
}

func (s *Service) insertRun(db *gorm.DB, zoneName string, minutes int, source string) (models.IrrigationRun, error) {
	if minutes <= 0 {
		minutes = MinRunMinutes
	}
	run := models.IrrigationRun{
		ZoneName:        zoneName,
		DurationMinutes: minutes,
		Source:          source,
		Timestamp:       s.clock.Now().UTC(),
	}
	if err := db.Create(&run).Error; err != nil {
		return models.IrrigationRun{}, err
	}
	return run, nil
}

// fireActuator starts the watering hardware without holding up the caller.
func (s *Service) fireActuator(run models.IrrigationRun) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), actuatorTimeout)
		defer cancel()
		if err := s.act.StartWatering(ctx, run.ZoneName, run.DurationMinutes); err != nil {
			s.log.Warn().Err(err).Str("zone", run.ZoneName).Msg("actuator start failed")
		}
	}()
}
