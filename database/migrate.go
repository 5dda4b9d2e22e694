package database

import (
	"chainwork_backend/internal/logger"
	"chainwork_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate applies the schema for every model. AutoMigrate is additive, it
// never drops columns.
func Migrate(db *gorm.DB) error {
	logger.Info("running migrations")

	return db.AutoMigrate(
		&models.User{},
		&models.UserExperience{},
		&models.UserEducation{},
		&models.Connection{},
		&models.SavedJob{},
		&models.Job{},
		&models.JobApplication{},
		&models.Post{},
		&models.PostLike{},
		&models.PostComment{},
		&models.Message{},
		&models.Notification{},
		&models.Payment{},
	)
}
