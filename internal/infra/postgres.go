package infra

import (
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"runmind/internal/models/db_models"
	"runmind/pkg/log"
)

// InitPostgresql opens the connection pool. TranslateError makes unique
// violations come back as gorm.ErrDuplicatedKey.
func InitPostgresql(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "connect to postgres")
	}
	return db, nil
}

// Migrate creates or updates every RunMind table.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&db_models.User{},
		&db_models.StravaToken{},
		&db_models.CoachAthleteLink{},
		&db_models.Activity{},
		&db_models.MentalState{},
		&db_models.Comment{},
		&db_models.DiaryEntry{},
		&db_models.DietLog{},
		&db_models.Goal{},
		&db_models.TrainingNote{},
	)
	return errors.Wrap(err, "auto migrate")
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Log.WithError(err).Error("Error getting database instance")
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Log.WithError(err).Error("Error closing database connection")
	} else {
		log.Log.Info("PostgreSQL database connection closed successfully")
	}
}
