package app

import (
	"fmt"
	"os"
	"strconv"

	"github.com/reportsink/reportsink/models"
	"github.com/reportsink/reportsink/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB connects to PostgreSQL and migrates the schema. The handle is
// constructed once in main and injected into the stores; nothing holds it
// as process-wide state.
func OpenDB() (*gorm.DB, error) {
	port, err := strconv.Atoi(os.Getenv("DB_PORT"))
	if err != nil {
		port = 5432
	}

	dsn := fmt.Sprintf(
		"postgres://%[4]s:%[5]s@%[1]s:%[2]d/%[3]s",
		os.Getenv("DB_HOST"),
		port,
		os.Getenv("DB_NAME"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASS"),
	)

	logLevel := logger.Warn

	if utils.IsDebug() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("could not connect to PostgreSQL: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Endpoint{},
		&models.Report{},
	); err != nil {
		return nil, fmt.Errorf("could not migrate models: %w", err)
	}

	return db, nil
}
