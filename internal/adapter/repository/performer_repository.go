package repository

import (
	"context"

	"cups-server/internal/domain/model"
	domainRepo "cups-server/internal/domain/repository"
	"cups-server/pkg/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// performerRepository implements the PerformerRepository interface
type performerRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPerformerRepository creates a new performer repository instance
func NewPerformerRepository(db *gorm.DB, logger *zap.Logger) domainRepo.PerformerRepository {
	return &performerRepository{
		db:     db,
		logger: logger,
	}
}

func (r *performerRepository) CreateBatch(ctx context.Context, performers []*model.Performer) error {
	if len(performers) == 0 {
		return nil
	}

	if err := conn(ctx, r.db).Create(&performers).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.Conflict("performer already assigned")
		}
		r.logger.Error("Failed to create performers", zap.Int("count", len(performers)), zap.Error(err))
		return errors.Storage("failed to create performers", err)
	}
	return nil
}

func (r *performerRepository) ListByTask(ctx context.Context, taskID int64) ([]*model.Performer, error) {
	var performers []*model.Performer

	err := conn(ctx, r.db).
		Preload("User").
		Where("task_id = ?", taskID).
		Find(&performers).Error
	if err != nil {
		r.logger.Error("Failed to list performers", zap.Int64("task_id", taskID), zap.Error(err))
		return nil, errors.Storage("failed to list performers", err)
	}
	return performers, nil
}

func (r *performerRepository) Exists(ctx context.Context, taskID, userID int64) (bool, error) {
	var count int64

	err := conn(ctx, r.db).Model(&model.Performer{}).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Count(&count).Error
	if err != nil {
		r.logger.Error("Failed to check performer",
			zap.Int64("task_id", taskID),
			zap.Int64("user_id", userID),
			zap.Error(err))
		return false, errors.Storage("failed to check performer", err)
	}

	return count > 0, nil
}

func (r *performerRepository) DeleteByTask(ctx context.Context, taskID int64) error {
	err := conn(ctx, r.db).
		Where("task_id = ?", taskID).
		Delete(&model.Performer{}).Error
	if err != nil {
		r.logger.Error("Failed to delete performers", zap.Int64("task_id", taskID), zap.Error(err))
		return errors.Storage("failed to delete performers", err)
	}
	return nil
}
