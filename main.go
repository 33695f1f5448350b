package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mandeepmildura/irrigation-web-mvp/actuator"
	"github.com/mandeepmildura/irrigation-web-mvp/config"
	"github.com/mandeepmildura/irrigation-web-mvp/controllers"
	"github.com/mandeepmildura/irrigation-web-mvp/ingest"
	"github.com/mandeepmildura/irrigation-web-mvp/middlewares"
	"github.com/mandeepmildura/irrigation-web-mvp/scheduler"
)

func main() {
	// Load environment variables
	godotenv.Load()
	settings := config.LoadSettings()
	log := config.NewLogger(settings.LogLevel)

	loc := settings.Location()
	controllers.LocalTZ = loc

	// Connect and migrate. A broken store keeps the HTTP surface up for
	// diagnostics but leaves the scheduler off.
	if err := config.Connect(settings.DatabaseURL); err != nil {
		log.Error().Err(err).Msg("database connection failed, serving with db_ready=false")
	} else if err := config.Migrate(config.DB); err != nil {
		log.Error().Err(err).Msg("schema migration failed, serving with db_ready=false")
	} else {
		config.SetDBReady(true)
	}

	// Set up Gin router with CORS configuration
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins: settings.Origins(),
		AllowMethods: []string{"GET", "POST", "DELETE"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
	}))

	// Public routes
	r.GET("/", controllers.Dashboard)
	r.GET("/health", controllers.Health)
	r.GET("/now", controllers.Now)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/ws", controllers.HandleWebSocket)
	r.GET("/zones", controllers.ListZones)
	r.GET("/zones/:id", controllers.GetZone)
	r.GET("/schedules", controllers.ListSchedules)
	r.GET("/schedules/:id", controllers.GetSchedule)
	r.GET("/runs", controllers.ListRuns)
	r.GET("/readings", controllers.ListReadings)

	// Mutating routes, guarded when API_TOKEN is set
	guarded := r.Group("/")
	guarded.Use(middlewares.RequireToken(settings.APIToken))
	guarded.POST("/zones", controllers.CreateZone)
	guarded.DELETE("/zones/:id", controllers.DeleteZone)
	guarded.POST("/schedules", controllers.CreateSchedule)
	guarded.DELETE("/schedules/:id", controllers.DeleteSchedule)
	guarded.POST("/run/:zone_name", controllers.TriggerRun)
	guarded.POST("/readings", controllers.CreateReading)

	var svc *scheduler.Service
	var bridge *ingest.Bridge
	if config.DBReady() {
		var act actuator.Actuator = actuator.Noop{}
		if settings.ActuatorURL != "" {
			act = actuator.NewWebhook(settings.ActuatorURL)
		}

		svc = scheduler.New(scheduler.Config{
			DB:       config.DB,
			Location: loc,
			Interval: settings.TickInterval,
			Actuator: act,
			Logger:   log,
			Notify:   controllers.Broadcast,
		})
		controllers.Runner = svc
		if err := svc.Start(); err != nil {
			log.Error().Err(err).Msg("scheduler failed to start")
		}

		if settings.MQTTBroker != "" {
			b, err := ingest.NewBridge(config.DB, settings.MQTTBroker, settings.MQTTClientID,
				settings.MQTTTopic, log, controllers.Broadcast)
			if err != nil {
				log.Error().Err(err).Msg("mqtt ingest unavailable")
			} else if err := b.Start(); err != nil {
				log.Error().Err(err).Msg("mqtt subscribe failed")
			} else {
				bridge = b
			}
		}
	} else {
		log.Warn().Msg("store not ready, scheduler not started")
	}

	srv := &http.Server{Addr: ":" + settings.Port, Handler: r}
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	if bridge != nil {
		bridge.Close()
	}
	if svc != nil {
		svc.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}
