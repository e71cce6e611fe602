package db

import (
	"context"

	"hackathon_system/common/config"
	"hackathon_system/common/db/models"
	"hackathon_system/lib/logger"

	"github.com/cenkalti/backoff/v5"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func NewDB(ctx context.Context, config config.DBConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormLogLevel()),
	}

	var db *gorm.DB
	var err error
	if config.InMemory {
		db, err = gorm.Open(sqlite.Open(":memory:"), gormConfig)
		if err != nil {
			return nil, logger.Error("Can't open in memory database because of %v", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, logger.Error("Can't get in memory database connection: %v", err)
		}
		// Every new connection to :memory: is a new database
		sqlDB.SetMaxOpenConns(1)
	} else {
		db, err = backoff.Retry(
			ctx,
			func() (*gorm.DB, error) {
				db, err := gorm.Open(postgres.Open(config.Dsn), gormConfig)
				if err != nil {
					logger.Warn("Can't open database, retrying, error: %v", err)
				}
				return db, err
			},
			backoff.WithBackOff(backoff.NewExponentialBackOff()),
			backoff.WithMaxElapsedTime(config.ConnectTimeout.Val()),
		)
		if err != nil {
			return nil, logger.Error("Can't open database because of %v", err)
		}
	}

	if err = Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	for _, model := range models.All() {
		if err := db.AutoMigrate(model); err != nil {
			return logger.Error("Can't migrate %T: %v", model, err)
		}
	}
	return nil
}

// Close closes underlying connection pool
func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Can't get database connection to close: %v", err)
		return
	}
	if err = sqlDB.Close(); err != nil {
		logger.Error("Can't close database: %v", err)
	}
}

func gormLogLevel() gormlogger.LogLevel {
	if logger.GetLevel() <= logger.LogLevelTrace {
		return gormlogger.Info
	}
	return gormlogger.Silent
}
