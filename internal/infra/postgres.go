package infra

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"wanderwise/internal/models/db_models"
	"wanderwise/pkg/logger"
)

// InitPostgresql opens the pool and migrates the saved search table.
func InitPostgresql(dsn string, log logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := db.AutoMigrate(&db_models.SavedSearch{}); err != nil {
		return nil, fmt.Errorf("error migrating saved searches: %w", err)
	}

	log.Info("PostgreSQL connected")
	return db, nil
}

func ClosePostgresql(db *gorm.DB, log logger.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("error getting database instance", logger.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Error("error closing database connection", logger.Error(err))
	} else {
		log.Info("PostgreSQL database connection closed successfully")
	}
}
