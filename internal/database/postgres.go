package database

import (
	"fmt"

	"github.com/vladimiradmaev/fittrack/internal/config"
	"github.com/vladimiradmaev/fittrack/internal/database/migrations"
	"github.com/vladimiradmaev/fittrack/internal/domain"
	"github.com/vladimiradmaev/fittrack/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Models lists every table AutoMigrate manages.
func Models() []interface{} {
	return []interface{}{
		&domain.User{},
		&domain.FoodItem{},
		&domain.ExerciseType{},
		&domain.FoodLogEntry{},
		&domain.ExerciseLogEntry{},
		&domain.WaterLogEntry{},
		&domain.Recipe{},
		&domain.Product{},
		&domain.CartLine{},
	}
}

// NewPostgresDB connects, creates the tables and then applies the SQL
// migrations, which add constraints on top of them.
func NewPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	if err := migrations.LoadSQLMigrations(migrations.SQLFiles, "sql"); err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	if err := migrations.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Database connection established and migrations completed",
		"host", cfg.Host, "database", cfg.DBName)
	return db, nil
}
