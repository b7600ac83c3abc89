package services

import (
	"log"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sakhigps/internal/models"
)

const sqlitePrefix = "sqlite://"

// InitDB opens the database named by dsn. A "sqlite://" prefix selects the
// embedded SQLite driver; anything else is handed to Postgres.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(dialectorFor(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(dsn, sqlitePrefix) {
		// sqlite allows one writer at a time
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	log.Println("Database connection established")
	return db, nil
}

func dialectorFor(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, sqlitePrefix) {
		return sqlite.Open(strings.TrimPrefix(dsn, sqlitePrefix))
	}
	return postgres.Open(dsn)
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.ScheduledTask{},
		&models.ScheduledTaskHistory{},
	)
	if err != nil {
		return err
	}

	log.Println("Database migrations completed")
	return nil
}
