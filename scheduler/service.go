package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/mandeepmildura/irrigation-web-mvp/actuator"
	"github.com/mandeepmildura/irrigation-web-mvp/models"
)

// DefaultTickInterval is short enough to observe every wall-clock minute
// with a couple of ticks to spare.
const DefaultTickInterval = 20 * time.Second

// Config wires a Service. Zero fields fall back to production defaults.
type Config struct {
	DB       *gorm.DB
	Clock    Clock
	Location *time.Location
	Interval time.Duration
	Actuator actuator.Actuator
	Logger   zerolog.Logger
	Notify   func(event string, payload any)
}

// Service evaluates schedules on a fixed cadence and records irrigation
// runs. One instance per process; Start and Stop bracket its lifetime.
type Service struct {
	db       *gorm.DB
	clock    Clock
	loc      *time.Location
	interval time.Duration
	act      actuator.Actuator
	log      zerolog.Logger
	notify   func(event string, payload any)
	cron     *cron.Cron
}

func New(cfg Config) *Service {
	s := &Service{
		db:       cfg.DB,
		clock:    cfg.Clock,
		loc:      cfg.Location,
		interval: cfg.Interval,
		act:      cfg.Actuator,
		log:      cfg.Logger,
		notify:   cfg.Notify,
	}
	if s.clock == nil {
		s.clock = SystemClock()
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.interval <= 0 {
		s.interval = DefaultTickInterval
	}
	if s.act == nil {
		s.act = actuator.Noop{}
	}
	return s
}

// Start registers the periodic tick and begins firing it. A tick that
// overruns the interval makes the next invocation skip instead of running
// concurrently; last_run_minute keeps a single writer.
func (s *Service) Start() error {
	c := cron.New(
		cron.WithLocation(s.loc),
		cron.WithChain(cron.SkipIfStillRunning(cronLog{s.log})),
	)
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", s.interval), s.Tick); err != nil {
		return err
	}
	c.Start()
	s.cron = c
	s.log.Info().Str("interval", s.interval.String()).Str("tz", s.loc.String()).Msg("scheduler started")
	return nil
}

// Stop halts the timer and waits for an in-flight tick to finish.
func (s *Service) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// Tick runs one full evaluation pass over the enabled schedules. Exported
// so tests and the cron timer drive the same code.
func (s *Service) Tick() {
	tickID := uuid.New().String()[:8]
	nowLocal := s.clock.Now().In(s.loc)
	minute := nowLocal.Format("15:04")

	var schedules []models.Schedule
	if err := s.db.Where("enabled = ?", true).Order("id").Find(&schedules).Error; err != nil {
		s.log.Error().Err(err).Str("tick", tickID).Msg("loading schedules failed")
		return
	}
	for i := range schedules {
		s.evaluate(tickID, schedules[i], nowLocal, minute)
	}
	tickTotal.Inc()
}

// evaluate handles one schedule. Every failure is contained here; a broken
// schedule must not stop the rest of the batch or the timer.
func (s *Service) evaluate(tickID string, sched models.Schedule, nowLocal time.Time, minute string) {
	defer func() {
		if r := recover(); r != nil {
			scheduleErrorTotal.Inc()
			s.log.Error().Str("tick", tickID).Uint("schedule", sched.ID).
				Interface("panic", r).Msg("schedule evaluation panicked")
		}
	}()

	if !Due(sched, nowLocal) {
		return
	}
	if sched.LastRunMinute != nil && *sched.LastRunMinute == minute {
		// already handled during an earlier tick of this minute
		return
	}

	var zone models.Zone
	err := s.db.First(&zone, sched.ZoneID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// orphaned schedule, leave it inert
		return
	}
	if err != nil {
		scheduleErrorTotal.Inc()
		s.log.Error().Err(err).Str("tick", tickID).Uint("schedule", sched.ID).Msg("zone lookup failed")
		return
	}

	skip, moisture, err := SkipForMoisture(s.db, sched, zone.Name, nowLocal.UTC())
	if err != nil {
		scheduleErrorTotal.Inc()
		s.log.Error().Err(err).Str("tick", tickID).Uint("schedule", sched.ID).Msg("moisture lookup failed")
		return
	}
	if skip {
		if err := markHandled(s.db, sched.ID, minute); err != nil {
			scheduleErrorTotal.Inc()
			s.log.Error().Err(err).Str("tick", tickID).Uint("schedule", sched.ID).Msg("marker update failed")
			return
		}
		moistureSkipTotal.Inc()
		s.log.Info().Str("tick", tickID).Uint("schedule", sched.ID).Str("zone", zone.Name).
			Float64("moisture", moisture).Float64("threshold", *sched.SkipIfMoistureOver).
			Str("minute", minute).Msg("run skipped, zone wet enough")
		return
	}

	// The run row and the marker land together or not at all. A run without
	// a marker duplicates on the next tick; a marker without a run drops an
	// irrigation silently.
	source := fmt.Sprintf("schedule:%d", sched.ID)
	var run models.IrrigationRun
	err = s.db.Transaction(func(tx *gorm.DB) error {
		r, err := s.insertRun(tx, zone.Name, sched.DurationMinutes, source)
		if err != nil {
			return err
		}
		run = r
		return markHandled(tx, sched.ID, minute)
	})
	if err != nil {
		scheduleErrorTotal.Inc()
		s.log.Error().Err(err).Str("tick", tickID).Uint("schedule", sched.ID).Msg("recording run failed")
		return
	}

	CountRun(source)
	s.log.Info().Str("tick", tickID).Uint("schedule", sched.ID).Str("zone", zone.Name).
		Int("minutes", run.DurationMinutes).Str("minute", minute).Msg("irrigation run recorded")
	s.fireActuator(run)
	s.emit("run", run)
}

func markHandled(db *gorm.DB, scheduleID uint, minute string) error {
	return db.Model(&models.Schedule{}).Where("id = ?", scheduleID).
		Update("last_run_minute", minute).Error
}

func (s *Service) emit(event string, payload any) {
	if s.notify != nil {
		s.notify(event, payload)
	}
}

// cronLog adapts zerolog to the cron logger so skipped overlapping ticks
// stay visible.
type cronLog struct{ l zerolog.Logger }

func (c cronLog) Info(msg string, kv ...any) {
	c.l.Debug().Fields(kv).Msg(msg)
}

func (c cronLog) Error(err error, msg string, kv ...any) {
	c.l.Error().Err(err).Fields(kv).Msg(msg)
}
