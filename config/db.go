package config

import (
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mandeepmildura/irrigation-web-mvp/models"
)

// DB is a global variable to hold the database connection
var DB *gorm.DB

var (
	dbReady   bool
	readyLock sync.Mutex
)

// Connect opens the database and stores the handle in DB, retrying with
// exponential backoff while the server comes up. A postgres:// URL selects
// the Postgres driver; anything else is treated as a SQLite file path.
func Connect(databaseURL string) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	bo.MaxElapsedTime = time.Minute

	return backoff.Retry(func() error {
		db, err := Open(databaseURL)
		if err != nil {
			return err
		}
		DB = db
		return nil
	}, backoff.WithMaxRetries(bo, 5))
}

// Open dials the store once, without retry. Callers that need their own
// handle (tests) use this directly.
func Open(databaseURL string) (*gorm.DB, error) {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(databaseURL), &gorm.Config{})
}

// Migrate creates or updates the schema for every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Zone{},
		&models.Schedule{},
		&models.SensorReading{},
		&models.IrrigationRun{},
	)
}

// SetDBReady records whether startup reached a migrated, reachable store.
// The scheduler only starts, and /health only reports db_ready=true, after
// this is flipped on.
func SetDBReady(ready bool) {
	readyLock.Lock()
	defer readyLock.Unlock()
	dbReady = ready
}

// DBReady reports the startup readiness flag.
func DBReady() bool {
	readyLock.Lock()
	defer readyLock.Unlock()
	return dbReady
}
