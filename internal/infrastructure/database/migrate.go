package database

import (
	"cups-server/internal/domain/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&model.User{},
		&model.Organization{},
		&model.OrganizationRequest{},
		&model.Task{},
		&model.Subtask{},
		&model.Performer{},
		&model.TaskImage{},
		&model.Chat{},
		&model.ChatMember{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}
